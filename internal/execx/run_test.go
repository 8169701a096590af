package execx

import (
	"context"
	"errors"
	"reflect"
	"runtime"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		cmd  Cmd
		goos string
		euid int
		want Cmd
	}{
		{
			name: "unprivileged command untouched",
			cmd:  Cmd{Name: "npm", Args: []string{"install"}},
			goos: "linux",
			euid: 1000,
			want: Cmd{Name: "npm", Args: []string{"install"}},
		},
		{
			name: "elevated on linux gets sudo",
			cmd:  Cmd{Name: "apt", Args: []string{"update"}, Elevated: true},
			goos: "linux",
			euid: 1000,
			want: Cmd{Name: "sudo", Args: []string{"apt", "update"}},
		},
		{
			name: "elevated as root runs directly",
			cmd:  Cmd{Name: "tar", Args: []string{"-xJf", "node.tar.xz"}, Elevated: true},
			goos: "linux",
			euid: 0,
			want: Cmd{Name: "tar", Args: []string{"-xJf", "node.tar.xz"}, Elevated: true},
		},
		{
			name: "elevated on windows runs directly",
			cmd:  Cmd{Name: "msiexec", Args: []string{"/i", "node.msi", "/passive"}, Elevated: true},
			goos: "windows",
			euid: -1,
			want: Cmd{Name: "msiexec", Args: []string{"/i", "node.msi", "/passive"}, Elevated: true},
		},
		{
			name: "elevated on darwin keeps dir",
			cmd:  Cmd{Name: "installer", Args: []string{"-pkg", "n.pkg"}, Dir: "/tmp", Elevated: true},
			goos: "darwin",
			euid: 501,
			want: Cmd{Name: "sudo", Args: []string{"installer", "-pkg", "n.pkg"}, Dir: "/tmp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.cmd, tt.goos, tt.euid)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCmdString(t *testing.T) {
	c := Cmd{Name: "npm", Args: []string{"run", "build"}}
	if got := c.String(); got != "npm run build" {
		t.Errorf("String() = %q", got)
	}
	if got := (Cmd{Name: "brew"}).String(); got != "brew" {
		t.Errorf("String() = %q", got)
	}
}

func TestLookPathMissing(t *testing.T) {
	r := NewRunner(nil)
	_, err := r.LookPath("frameforge-definitely-not-installed")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("LookPath() error = %v, want ErrNotFound", err)
	}
}

func TestOutputMissingExecutable(t *testing.T) {
	r := NewRunner(nil)
	_, err := r.Output(context.Background(), Cmd{Name: "frameforge-definitely-not-installed", Args: []string{"--version"}})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Output() error = %v, want ErrNotFound", err)
	}
}

func TestRunExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	r := NewRunner(nil)
	err := r.Run(context.Background(), Cmd{Name: "sh", Args: []string{"-c", "exit 3"}})

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Run() error = %v, want *ExitError", err)
	}
	if exitErr.Code != 3 {
		t.Errorf("Code = %d, want 3", exitErr.Code)
	}
}

func TestOutputTrimmed(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	r := NewRunner(nil)
	out, err := r.Output(context.Background(), Cmd{Name: "sh", Args: []string{"-c", "echo v20.10.0"}})
	if err != nil {
		t.Fatalf("Output() error = %v", err)
	}
	if out != "v20.10.0" {
		t.Errorf("Output() = %q, want v20.10.0", out)
	}
}
