// Package platform detects the host operating system family, architecture
// and Linux distribution, and exposes them to Lua project configs.
//
// OS and architecture come from the Go runtime. Linux distribution details
// come from gopsutil; detection failures there degrade gracefully to OS and
// architecture only.
package platform

import "context"

// OSFamily is the operating system family used to pick an install strategy.
type OSFamily string

const (
	OSWindows OSFamily = "windows"
	OSMacOS   OSFamily = "macos"
	OSLinux   OSFamily = "linux"
	OSOther   OSFamily = "other"
)

// Arch is a normalized CPU architecture.
type Arch string

const (
	ArchX64   Arch = "x64"
	ArchARM64 Arch = "arm64"
	// ArchUnknown marks an architecture no installer exists for.
	ArchUnknown Arch = ""
)

// Linux distribution family constants.
// These represent canonical family names for grouping related distributions.
const (
	FamilyDebian  = "debian"  // Debian, Ubuntu, Linux Mint
	FamilyRHEL    = "rhel"    // RHEL, CentOS, Rocky Linux, AlmaLinux
	FamilyFedora  = "fedora"  // Fedora
	FamilySUSE    = "suse"    // openSUSE, SLES
	FamilyArch    = "arch"    // Arch Linux, Manjaro
	FamilyAlpine  = "alpine"  // Alpine Linux
	FamilyGentoo  = "gentoo"  // Gentoo
	FamilyUnknown = "unknown" // Unrecognized distributions
)

// Target is the (OS family, architecture) pair that selects an installer.
type Target struct {
	OS   OSFamily
	Arch Arch
}

func (t Target) String() string {
	arch := string(t.Arch)
	if arch == "" {
		arch = "unknown"
	}
	return string(t.OS) + "/" + arch
}

// Info contains platform detection information.
type Info struct {
	OS       OSFamily
	Arch     Arch
	GOOS     string // original GOOS (e.g., "darwin")
	ArchRaw  string // original GOARCH (e.g., "amd64")
	Platform string // distro ID (Linux only, e.g., "ubuntu", "arch")
	Family   string // canonical family (e.g., "debian", "rhel", "arch")
	Version  string // distro version (Linux only, e.g., "22.04")
}

// Target returns the install target for this platform.
func (i *Info) Target() Target {
	return Target{OS: i.OS, Arch: i.Arch}
}

// Distro contains Linux distribution information.
type Distro struct {
	ID      string
	Family  string
	Version string
}

// GetDistro returns distro information if this is a Linux platform.
// Returns nil for non-Linux platforms or if distro detection failed.
func (i *Info) GetDistro() *Distro {
	if i.OS != OSLinux || i.Platform == "" {
		return nil
	}
	return &Distro{
		ID:      i.Platform,
		Family:  i.Family,
		Version: i.Version,
	}
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == OSLinux
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == OSMacOS
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == OSWindows
}

// IsAppleSilicon returns true if running on Apple Silicon (macOS + arm64).
func (i *Info) IsAppleSilicon() bool {
	return i.OS == OSMacOS && i.Arch == ArchARM64
}

// IsFamily returns true if this is a Linux distribution of the given family.
func (i *Info) IsFamily(family string) bool {
	return i.OS == OSLinux && i.Family == family
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}

// StaticDetector returns a fixed Info. It is used when the target is
// forced, and in tests.
type StaticDetector struct {
	Info *Info
}

// Detect returns the configured Info.
func (s StaticDetector) Detect(ctx context.Context) (*Info, error) {
	return s.Info, nil
}
