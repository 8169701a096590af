package install

import (
	"errors"
	"strings"
	"testing"

	"github.com/frameforge/frameforge-setup/internal/platform"
	"github.com/frameforge/frameforge-setup/internal/testutil"
)

const dist = "https://nodejs.org/dist"

func TestMatrixInstallerURLs(t *testing.T) {
	m := NewMatrix(dist, "20.10.0", "")
	none := testutil.NewFakeRunner()

	tests := []struct {
		target platform.Target
		want   string
	}{
		{platform.Target{OS: platform.OSWindows, Arch: platform.ArchX64}, "https://nodejs.org/dist/v20.10.0/node-v20.10.0-x64.msi"},
		{platform.Target{OS: platform.OSWindows, Arch: platform.ArchARM64}, "https://nodejs.org/dist/v20.10.0/node-v20.10.0-arm64.msi"},
		{platform.Target{OS: platform.OSMacOS, Arch: platform.ArchX64}, "https://nodejs.org/dist/v20.10.0/node-v20.10.0.pkg"},
		{platform.Target{OS: platform.OSMacOS, Arch: platform.ArchARM64}, "https://nodejs.org/dist/v20.10.0/node-v20.10.0.pkg"},
		{platform.Target{OS: platform.OSLinux, Arch: platform.ArchX64}, "https://nodejs.org/dist/v20.10.0/node-v20.10.0-linux-x64.tar.xz"},
		{platform.Target{OS: platform.OSLinux, Arch: platform.ArchARM64}, "https://nodejs.org/dist/v20.10.0/node-v20.10.0-linux-arm64.tar.xz"},
	}

	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			s, err := m.Plan(tt.target, none.LookPath)
			if err != nil {
				t.Fatalf("Plan() error = %v", err)
			}

			var got string
			switch s := s.(type) {
			case RunInstaller:
				got = s.URL
			case ExtractArchive:
				got = s.URL
			default:
				t.Fatalf("Plan() = %T, want a download strategy", s)
			}
			if got != tt.want {
				t.Errorf("URL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatrixLinuxManagerPriority(t *testing.T) {
	m := NewMatrix(dist, "20.10.0", "")
	target := platform.Target{OS: platform.OSLinux, Arch: platform.ArchX64}

	tests := []struct {
		name      string
		installed []string
		want      string
	}{
		{"apt wins over everything", []string{"apt", "dnf", "pacman"}, "apt"},
		{"dnf before pacman", []string{"dnf", "pacman"}, "dnf"},
		{"pacman alone", []string{"pacman"}, "pacman"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := m.Plan(target, testutil.NewFakeRunner(tt.installed...).LookPath)
			if err != nil {
				t.Fatalf("Plan() error = %v", err)
			}
			d, ok := s.(DelegateToManager)
			if !ok {
				t.Fatalf("Plan() = %T, want DelegateToManager", s)
			}
			if d.Manager.Name != tt.want {
				t.Errorf("manager = %q, want %q", d.Manager.Name, tt.want)
			}
		})
	}
}

func TestMatrixMacOSPrefersBrew(t *testing.T) {
	m := NewMatrix(dist, "20.10.0", "")
	target := platform.Target{OS: platform.OSMacOS, Arch: platform.ArchARM64}

	s, err := m.Plan(target, testutil.NewFakeRunner("brew").LookPath)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if got := Summary(s); got != "brew install node" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestMatrixUnsupported(t *testing.T) {
	m := NewMatrix(dist, "20.10.0", "")

	targets := []platform.Target{
		{OS: platform.OSOther, Arch: platform.ArchX64},
		{OS: platform.OSLinux, Arch: platform.ArchUnknown},
		{OS: platform.OSWindows, Arch: platform.ArchUnknown},
	}

	for _, target := range targets {
		t.Run(target.String(), func(t *testing.T) {
			_, err := m.Plan(target, testutil.NewFakeRunner("apt").LookPath)
			if !errors.Is(err, ErrUnsupportedPlatform) {
				t.Fatalf("error = %v, want ErrUnsupportedPlatform", err)
			}
			if !strings.Contains(err.Error(), ManualDownloadPage) {
				t.Errorf("error %q should point to %s", err, ManualDownloadPage)
			}
		})
	}
}

func TestMatrixCustomRelease(t *testing.T) {
	m := NewMatrix("https://mirror.example.com/node/", "v22.11.0", "/opt/node")
	s, err := m.Plan(platform.Target{OS: platform.OSLinux, Arch: platform.ArchARM64}, nil)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	want := ExtractArchive{
		URL:    "https://mirror.example.com/node/v22.11.0/node-v22.11.0-linux-arm64.tar.xz",
		Prefix: "/opt/node",
	}
	if s != want {
		t.Errorf("Plan() = %+v, want %+v", s, want)
	}
}

func TestStrategyCommands(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		want     string
	}{
		{"msi", RunInstaller{URL: "u", Kind: KindMSI}, "msiexec /i <u> /passive"},
		{"pkg", RunInstaller{URL: "u", Kind: KindPkg}, "installer -pkg <u> -target /"},
		{"archive", ExtractArchive{URL: "u", Prefix: "/usr/local"}, "tar -xJf <u> -C /usr/local --strip-components=1"},
		{"apt", DelegateToManager{Manager: apt}, "apt update && apt install -y nodejs npm"},
		{"dnf", DelegateToManager{Manager: dnf}, "dnf install -y nodejs npm"},
		{"pacman", DelegateToManager{Manager: pacman}, "pacman -S --noconfirm nodejs npm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summary(tt.strategy); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}
