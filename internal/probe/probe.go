// Package probe detects whether an executable is installed and which
// version it reports.
package probe

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"github.com/Masterminds/semver/v3"

	"github.com/frameforge/frameforge-setup/internal/execx"
	"github.com/frameforge/frameforge-setup/internal/logging"
)

// DefaultVersionFlag is passed to executables to make them print a version.
const DefaultVersionFlag = "--version"

// VersionInfo is the result of probing an executable.
type VersionInfo struct {
	Installed bool
	Raw       string
	Major     int
}

// Meets reports whether the probed executable is installed at min or newer.
func (v VersionInfo) Meets(min int) bool {
	return v.Installed && v.Major >= min
}

// Semver parses Raw as a semantic version. It returns nil when Raw is not
// one; Major stays authoritative for comparisons.
func (v VersionInfo) Semver() *semver.Version {
	if v.Raw == "" {
		return nil
	}
	sv, err := semver.NewVersion(v.Raw)
	if err != nil {
		return nil
	}
	return sv
}

// Prober runs executables with a version flag.
type Prober struct {
	runner execx.Runner
	logger logging.Logger
}

// NewProber creates a Prober.
func NewProber(runner execx.Runner, logger logging.Logger) *Prober {
	return &Prober{runner: runner, logger: logging.OrNop(logger)}
}

// Probe invokes name with flag and parses its standard output. A missing
// executable or a failing invocation yields Installed=false; Probe never
// returns an error.
func (p *Prober) Probe(ctx context.Context, name, flag string) VersionInfo {
	out, err := p.runner.Output(ctx, execx.Cmd{Name: name, Args: []string{flag}})
	if err != nil {
		p.logger.Debug("probe failed", "cmd", name, "error", err)
		return VersionInfo{}
	}

	info := VersionInfo{
		Installed: true,
		Raw:       out,
		Major:     ParseMajor(out),
	}
	p.logger.Debug("probed", "cmd", name, "version", info.Raw, "major", info.Major)
	return info
}

// ParseMajor extracts the major version from strings such as "v20.10.0" or
// "10.2.3": the leading "v" prefix is stripped and the segment before the
// first "." must be an integer. Malformed input yields 0.
func ParseMajor(s string) int {
	s = strings.TrimLeft(strings.TrimSpace(s), "vV")
	head, _, _ := strings.Cut(s, ".")
	if head == "" {
		return 0
	}
	for _, r := range head {
		if !unicode.IsDigit(r) {
			return 0
		}
	}

	major, err := strconv.Atoi(head)
	if err != nil {
		return 0
	}
	return major
}
