package platform

import (
	"context"
	"runtime"
	"testing"
)

func TestRealDetector_Detect(t *testing.T) {
	detector := NewDetector()

	info, err := detector.Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if info.GOOS != runtime.GOOS {
		t.Errorf("GOOS = %v, want %v", info.GOOS, runtime.GOOS)
	}
	if info.ArchRaw != runtime.GOARCH {
		t.Errorf("ArchRaw = %v, want %v", info.ArchRaw, runtime.GOARCH)
	}
	if info.OS != normalizeOS(runtime.GOOS) {
		t.Errorf("OS = %v, want %v", info.OS, normalizeOS(runtime.GOOS))
	}

	// On Linux, distro fields may be empty if detection fails
	if runtime.GOOS == "linux" && info.Platform != "" && info.Family == "" {
		t.Error("Family should be set when Platform is set")
	}

	if runtime.GOOS != "linux" {
		if info.Platform != "" || info.Family != "" || info.Version != "" {
			t.Errorf("distro fields should be empty on non-Linux, got %+v", info)
		}
	}
}

func TestInfoTarget(t *testing.T) {
	tests := []struct {
		goos   string
		goarch string
		want   Target
		str    string
	}{
		{"windows", "arm64", Target{OSWindows, ArchARM64}, "windows/arm64"},
		{"windows", "amd64", Target{OSWindows, ArchX64}, "windows/x64"},
		{"darwin", "arm64", Target{OSMacOS, ArchARM64}, "macos/arm64"},
		{"linux", "amd64", Target{OSLinux, ArchX64}, "linux/x64"},
		{"freebsd", "amd64", Target{OSOther, ArchX64}, "other/x64"},
		{"linux", "riscv64", Target{OSLinux, ArchUnknown}, "linux/unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			got := NewInfo(tt.goos, tt.goarch).Target()
			if got != tt.want {
				t.Errorf("Target() = %v, want %v", got, tt.want)
			}
			if got.String() != tt.str {
				t.Errorf("String() = %q, want %q", got.String(), tt.str)
			}
		})
	}
}

func TestInfoHelpers(t *testing.T) {
	mac := &Info{OS: OSMacOS, Arch: ArchARM64}
	if !mac.IsMacOS() || !mac.IsAppleSilicon() || mac.IsLinux() || mac.IsWindows() {
		t.Errorf("unexpected helpers for %+v", mac)
	}
	if mac.GetDistro() != nil {
		t.Error("GetDistro() should be nil on macOS")
	}

	ubuntu := &Info{OS: OSLinux, Arch: ArchX64, Platform: "ubuntu", Family: FamilyDebian, Version: "22.04"}
	if !ubuntu.IsFamily(FamilyDebian) || ubuntu.IsFamily(FamilyArch) {
		t.Errorf("unexpected family helpers for %+v", ubuntu)
	}
	distro := ubuntu.GetDistro()
	if distro == nil || distro.ID != "ubuntu" || distro.Version != "22.04" {
		t.Errorf("GetDistro() = %+v", distro)
	}
}

func TestStaticDetector(t *testing.T) {
	want := &Info{OS: OSWindows, Arch: ArchARM64}
	got, err := StaticDetector{Info: want}.Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if got != want {
		t.Errorf("Detect() = %+v, want %+v", got, want)
	}
}
