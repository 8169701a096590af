package shell

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// Detector finds the user's shell.
type Detector struct {
	getenv     func(string) string
	parentName func(ctx context.Context) (string, error)
}

// NewDetector creates a Detector for the current process.
func NewDetector() *Detector {
	return &Detector{
		getenv:     os.Getenv,
		parentName: parentProcessName,
	}
}

// Detect never fails; an undetectable shell is reported as ShellUnknown.
func (d *Detector) Detect(ctx context.Context) *DetectionResult {
	// Method 1: Try $SHELL environment variable (most reliable)
	if shell := d.getenv("SHELL"); shell != "" {
		if shellType := parseShellFromPath(shell); shellType.IsValid() {
			return &DetectionResult{
				Shell:      shellType,
				Method:     "$SHELL environment variable",
				ShellPath:  shell,
				Confidence: "high",
			}
		}
	}

	// Method 2: Try parent process (fallback, and the only source on Windows)
	if name, err := d.parentName(ctx); err == nil && name != "" {
		if shellType := parseShellFromPath(name); shellType.IsValid() {
			return &DetectionResult{
				Shell:      shellType,
				Method:     "parent process",
				ShellPath:  name,
				Confidence: "medium",
			}
		}
	}

	return &DetectionResult{
		Shell:      ShellUnknown,
		Method:     "detection failed",
		Confidence: "none",
	}
}

// parseShellFromPath extracts the shell type from a shell binary path or
// process name.
// Examples:
//   - /bin/bash -> bash
//   - /usr/bin/zsh -> zsh
//   - pwsh.exe -> powershell
func parseShellFromPath(shellPath string) ShellType {
	// filepath.Base does not split on '\' off Windows
	baseName := shellPath
	if i := strings.LastIndexAny(baseName, `/\`); i >= 0 {
		baseName = baseName[i+1:]
	}
	baseName = strings.TrimSuffix(strings.ToLower(baseName), ".exe")
	// login shells appear as "-bash"
	baseName = strings.TrimPrefix(baseName, "-")

	switch baseName {
	case "bash":
		return ShellBash
	case "zsh":
		return ShellZsh
	case "fish":
		return ShellFish
	case "powershell", "pwsh":
		return ShellPowerShell
	case "cmd":
		return ShellCmd
	default:
		return ShellUnknown
	}
}

// parentProcessName returns the executable name of the parent process.
func parentProcessName(ctx context.Context) (string, error) {
	p, err := process.NewProcessWithContext(ctx, int32(os.Getppid()))
	if err != nil {
		return "", err
	}
	name, err := p.NameWithContext(ctx)
	if err != nil {
		return "", err
	}
	return filepath.Base(name), nil
}
