package install

import (
	"fmt"
	"strings"

	"github.com/frameforge/frameforge-setup/internal/execx"
	"github.com/frameforge/frameforge-setup/internal/platform"
)

// DefaultPrefix is where release archives are extracted on Linux.
const DefaultPrefix = "/usr/local"

// LookPathFunc reports whether an executable is on the search path.
type LookPathFunc func(name string) (string, error)

// candidate is a Matrix entry. A candidate with a non-empty requires is
// only usable when that executable is on the search path.
type candidate struct {
	requires string
	strategy Strategy
}

// Matrix maps a platform target to its ordered install candidates.
type Matrix struct {
	entries map[platform.Target][]candidate
}

// Managers for the runtime's system packages, in priority order.
var (
	brew = PackageManager{Name: "Homebrew", Steps: []execx.Cmd{
		{Name: "brew", Args: []string{"install", "node"}},
	}}
	apt = PackageManager{Name: "apt", Steps: []execx.Cmd{
		{Name: "apt", Args: []string{"update"}, Elevated: true},
		{Name: "apt", Args: []string{"install", "-y", "nodejs", "npm"}, Elevated: true},
	}}
	dnf = PackageManager{Name: "dnf", Steps: []execx.Cmd{
		{Name: "dnf", Args: []string{"install", "-y", "nodejs", "npm"}, Elevated: true},
	}}
	pacman = PackageManager{Name: "pacman", Steps: []execx.Cmd{
		{Name: "pacman", Args: []string{"-S", "--noconfirm", "nodejs", "npm"}, Elevated: true},
	}}
)

// NewMatrix builds the matrix for a pinned release. dist is the download
// base ("https://nodejs.org/dist") and release the version ("20.10.0").
// Linux archives are extracted into prefix, DefaultPrefix when empty.
func NewMatrix(dist, release, prefix string) *Matrix {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	base := fmt.Sprintf("%s/v%s/node-v%s", strings.TrimRight(dist, "/"), strings.TrimPrefix(release, "v"), strings.TrimPrefix(release, "v"))

	// One pkg serves both macOS architectures.
	pkg := RunInstaller{URL: base + ".pkg", Kind: KindPkg}

	linux := func(arch string) []candidate {
		return []candidate{
			{requires: "apt", strategy: DelegateToManager{Manager: apt}},
			{requires: "dnf", strategy: DelegateToManager{Manager: dnf}},
			{requires: "pacman", strategy: DelegateToManager{Manager: pacman}},
			{strategy: ExtractArchive{URL: base + "-linux-" + arch + ".tar.xz", Prefix: prefix}},
		}
	}

	return &Matrix{entries: map[platform.Target][]candidate{
		{OS: platform.OSWindows, Arch: platform.ArchX64}: {
			{strategy: RunInstaller{URL: base + "-x64.msi", Kind: KindMSI}},
		},
		{OS: platform.OSWindows, Arch: platform.ArchARM64}: {
			{strategy: RunInstaller{URL: base + "-arm64.msi", Kind: KindMSI}},
		},
		{OS: platform.OSMacOS, Arch: platform.ArchX64}: {
			{requires: "brew", strategy: DelegateToManager{Manager: brew}},
			{strategy: pkg},
		},
		{OS: platform.OSMacOS, Arch: platform.ArchARM64}: {
			{requires: "brew", strategy: DelegateToManager{Manager: brew}},
			{strategy: pkg},
		},
		{OS: platform.OSLinux, Arch: platform.ArchX64}:   linux("x64"),
		{OS: platform.OSLinux, Arch: platform.ArchARM64}: linux("arm64"),
	}}
}

// Plan returns the first usable strategy for target. Targets missing from
// the matrix yield an *UnsupportedError.
func (m *Matrix) Plan(target platform.Target, lookPath LookPathFunc) (Strategy, error) {
	candidates, ok := m.entries[target]
	if !ok {
		return nil, &UnsupportedError{Target: target.String()}
	}

	for _, c := range candidates {
		if c.requires != "" {
			if lookPath == nil {
				continue
			}
			if _, err := lookPath(c.requires); err != nil {
				continue
			}
		}
		return c.strategy, nil
	}

	return nil, &UnsupportedError{Target: target.String()}
}
