package platform

import (
	"strings"
)

// familyMap maps distribution names to their canonical family names.
// This is used to normalize variations of family strings from gopsutil.
var familyMap = map[string]string{
	"debian":   FamilyDebian,
	"ubuntu":   FamilyDebian, // gopsutil might return ubuntu as family
	"rhel":     FamilyRHEL,
	"centos":   FamilyRHEL,
	"rocky":    FamilyRHEL,
	"fedora":   FamilyFedora,
	"suse":     FamilySUSE,
	"opensuse": FamilySUSE,
	"arch":     FamilyArch,
	"manjaro":  FamilyArch,
	"alpine":   FamilyAlpine,
	"gentoo":   FamilyGentoo,
}

// osFamilies maps GOOS values to the OS families installers exist for.
var osFamilies = map[string]OSFamily{
	"windows": OSWindows,
	"darwin":  OSMacOS,
	"linux":   OSLinux,
}

// normalizeOS maps a GOOS value to its OS family, or OSOther.
func normalizeOS(goos string) OSFamily {
	if family, ok := osFamilies[strings.ToLower(strings.TrimSpace(goos))]; ok {
		return family
	}
	return OSOther
}

// normalizeArch converts GOARCH or uname-style values to an Arch.
// Only x64 and arm64 have installers; everything else is ArchUnknown.
func normalizeArch(arch string) Arch {
	switch strings.ToLower(strings.TrimSpace(arch)) {
	case "amd64", "x86_64", "x64":
		return ArchX64
	case "arm64", "aarch64":
		return ArchARM64
	default:
		return ArchUnknown
	}
}

// normalizePlatform converts platform IDs to lowercase for consistency.
func normalizePlatform(platform string) string {
	return strings.ToLower(strings.TrimSpace(platform))
}

// mapFamily maps distribution family strings to canonical family names.
func mapFamily(family string) string {
	normalized := strings.ToLower(strings.TrimSpace(family))
	if canonical, ok := familyMap[normalized]; ok {
		return canonical
	}
	return FamilyUnknown
}

// NewInfo builds an Info from raw GOOS and GOARCH values.
func NewInfo(goos, goarch string) *Info {
	return &Info{
		OS:      normalizeOS(goos),
		Arch:    normalizeArch(goarch),
		GOOS:    goos,
		ArchRaw: goarch,
	}
}
