package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// FileName is the project config looked up in the project root.
const FileName = "setup.lua"

// VerifyMode selects how downloaded installers are checked.
type VerifyMode string

const (
	// VerifyNone skips verification.
	VerifyNone VerifyMode = "none"
	// VerifyChecksum compares SHA-256 against the release's SHASUMS256.txt.
	VerifyChecksum VerifyMode = "checksum"
	// VerifySignature authenticates SHASUMS256.txt.asc with a keyring,
	// then compares SHA-256.
	VerifySignature VerifyMode = "signature"
)

// IsValid returns true for known verification modes.
func (m VerifyMode) IsValid() bool {
	switch m {
	case VerifyNone, VerifyChecksum, VerifySignature:
		return true
	default:
		return false
	}
}

// Config is the complete project configuration.
type Config struct {
	Runtime Runtime
	Deps    Deps
	Scripts Scripts
	Verify  VerifyMode
	// Keyring is a path to armored OpenPGP public keys, relative to the
	// project root unless absolute.
	Keyring string
}

// Runtime describes the runtime to bootstrap and where its installers live.
type Runtime struct {
	Name string
	// Label is the human-readable runtime name used in messages.
	Label       string
	PackageTool string
	MinMajor    int
	Release     string
	Dist        string
}

// Deps describes how installed dependencies are detected.
type Deps struct {
	// Marker is a directory, relative to the project root, whose existence
	// means dependencies were installed.
	Marker string
}

// Scripts names the package scripts run by the tool.
type Scripts struct {
	Dev   string
	Build string
	// Output is the build output directory, only mentioned to the user.
	Output string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Runtime: Runtime{
			Name:        "node",
			Label:       "Node.js",
			PackageTool: "npm",
			MinMajor:    18,
			Release:     "20.10.0",
			Dist:        "https://nodejs.org/dist",
		},
		Deps: Deps{
			Marker: "node_modules",
		},
		Scripts: Scripts{
			Dev:    "dev",
			Build:  "build",
			Output: "dist",
		},
		Verify: VerifyChecksum,
	}
}

// ReleaseVersion parses the pinned release.
func (c *Config) ReleaseVersion() (*semver.Version, error) {
	return semver.StrictNewVersion(strings.TrimPrefix(c.Runtime.Release, "v"))
}

// KeyringPath resolves Keyring against the project root.
func (c *Config) KeyringPath(projectRoot string) string {
	if c.Keyring == "" || filepath.IsAbs(c.Keyring) {
		return c.Keyring
	}
	return filepath.Join(projectRoot, c.Keyring)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Runtime.Name) == "" {
		errs = append(errs, errors.New("runtime.name cannot be empty"))
	}
	if strings.TrimSpace(c.Runtime.Label) == "" {
		errs = append(errs, errors.New("runtime.label cannot be empty"))
	}
	if strings.TrimSpace(c.Runtime.PackageTool) == "" {
		errs = append(errs, errors.New("runtime.package_tool cannot be empty"))
	}
	if c.Runtime.MinMajor < 1 {
		errs = append(errs, fmt.Errorf("runtime.min_major must be at least 1, got %d", c.Runtime.MinMajor))
	}
	if _, err := c.ReleaseVersion(); err != nil {
		errs = append(errs, fmt.Errorf("runtime.release %q is not a valid version: %w", c.Runtime.Release, err))
	}
	if err := validateDist(c.Runtime.Dist); err != nil {
		errs = append(errs, err)
	}

	if !filepath.IsLocal(c.Deps.Marker) {
		errs = append(errs, fmt.Errorf("deps.marker %q must be a relative path inside the project", c.Deps.Marker))
	}

	if strings.TrimSpace(c.Scripts.Dev) == "" {
		errs = append(errs, errors.New("scripts.dev cannot be empty"))
	}
	if strings.TrimSpace(c.Scripts.Build) == "" {
		errs = append(errs, errors.New("scripts.build cannot be empty"))
	}

	if !c.Verify.IsValid() {
		errs = append(errs, fmt.Errorf("verify must be one of none, checksum, signature; got %q", c.Verify))
	}
	if c.Verify == VerifySignature && c.Keyring == "" {
		errs = append(errs, errors.New("verify = \"signature\" requires keyring"))
	}

	return errors.Join(errs...)
}

func validateDist(dist string) error {
	u, err := url.Parse(dist)
	if err != nil {
		return fmt.Errorf("runtime.dist %q: %w", dist, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("runtime.dist %q must be an http(s) URL", dist)
	}
	if u.Host == "" {
		return fmt.Errorf("runtime.dist %q has no host", dist)
	}
	return nil
}
