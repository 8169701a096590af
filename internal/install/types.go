// Package install decides whether the runtime needs installing and carries
// out the install with the mechanism appropriate to the host platform.
//
// The decision is a pure function of the probed State and the caller's
// flags. Platform selection is a lookup in a Matrix keyed by
// platform.Target; each entry yields one Strategy:
//
//   - DelegateToManager: a system package manager (brew, apt, dnf, pacman)
//   - RunInstaller: a downloaded .msi or .pkg handed to the OS installer
//   - ExtractArchive: a downloaded .tar.xz unpacked into a prefix
//
// Download-based strategies work inside a temporary directory that is
// removed on every exit path.
package install

import (
	"errors"
	"fmt"
	"strings"

	"github.com/frameforge/frameforge-setup/internal/execx"
)

// ManualDownloadPage is where users are sent when no strategy applies.
const ManualDownloadPage = "https://nodejs.org/"

// ErrUnsupportedPlatform is returned for targets without an install strategy.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Strategy is one way of installing the runtime.
type Strategy interface {
	// Describe returns a short description for messages and logs.
	Describe() string
	strategy()
}

// PackageManager is a system package manager and the commands that install
// the runtime with it.
type PackageManager struct {
	Name  string
	Steps []execx.Cmd
}

// DelegateToManager installs through a system package manager.
type DelegateToManager struct {
	Manager PackageManager
}

func (s DelegateToManager) Describe() string { return "via " + s.Manager.Name }
func (DelegateToManager) strategy()          {}

// InstallerKind is the installer package format.
type InstallerKind string

const (
	KindMSI InstallerKind = "msi"
	KindPkg InstallerKind = "pkg"
)

// RunInstaller downloads an installer package and runs it.
type RunInstaller struct {
	URL  string
	Kind InstallerKind
}

func (s RunInstaller) Describe() string { return "using the " + string(s.Kind) + " installer" }
func (RunInstaller) strategy()          {}

// Command returns the invocation that installs the package at file.
func (s RunInstaller) Command(file string) execx.Cmd {
	switch s.Kind {
	case KindMSI:
		return execx.Cmd{Name: "msiexec", Args: []string{"/i", file, "/passive"}}
	default:
		return execx.Cmd{Name: "installer", Args: []string{"-pkg", file, "-target", "/"}, Elevated: true}
	}
}

// ExtractArchive downloads a .tar.xz release archive and unpacks it into
// Prefix, dropping the archive's top-level directory.
type ExtractArchive struct {
	URL    string
	Prefix string
}

func (s ExtractArchive) Describe() string { return "by extracting to " + s.Prefix }
func (ExtractArchive) strategy()          {}

// Command returns the tar invocation used when not running as root.
func (s ExtractArchive) Command(file string) execx.Cmd {
	return execx.Cmd{
		Name:     "tar",
		Args:     []string{"-xJf", file, "-C", s.Prefix, "--strip-components=1"},
		Elevated: true,
	}
}

// UnsupportedError carries the target that has no install strategy.
type UnsupportedError struct {
	Target string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: %s; install manually from %s", ErrUnsupportedPlatform, e.Target, ManualDownloadPage)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupportedPlatform
}

// Result describes a completed install.
type Result struct {
	Strategy Strategy
	// RestartRequired is set when the new runtime is not visible to the
	// current process environment until the shell is restarted.
	RestartRequired bool
	// Checksum is the verified SHA-256 of the downloaded artifact, if any.
	Checksum string
}

// Summary renders the commands a strategy runs, for dry-run style output.
func Summary(s Strategy) string {
	switch s := s.(type) {
	case DelegateToManager:
		var steps []string
		for _, c := range s.Manager.Steps {
			steps = append(steps, c.String())
		}
		return strings.Join(steps, " && ")
	case RunInstaller:
		return s.Command("<" + s.URL + ">").String()
	case ExtractArchive:
		return s.Command("<" + s.URL + ">").String()
	default:
		return ""
	}
}
