package project

import (
	"context"
	"os"
	"path/filepath"

	"github.com/frameforge/frameforge-setup/internal/execx"
)

// Dependencies manages the project's installed packages.
type Dependencies struct {
	root   string
	marker string
	tool   string
	runner execx.Runner
}

// NewDependencies creates a Dependencies for the project at root. marker is
// the directory, relative to root, that exists once packages are installed;
// tool is the package tool ("npm").
func NewDependencies(root, marker, tool string, runner execx.Runner) *Dependencies {
	return &Dependencies{root: root, marker: marker, tool: tool, runner: runner}
}

// MarkerPath returns the absolute marker path.
func (d *Dependencies) MarkerPath() string {
	return filepath.Join(d.root, d.marker)
}

// Installed reports whether the marker exists.
func (d *Dependencies) Installed() bool {
	_, err := os.Stat(d.MarkerPath())
	return err == nil
}

// Install runs "<tool> install" in the project root.
func (d *Dependencies) Install(ctx context.Context) error {
	return d.runner.Run(ctx, execx.Cmd{Name: d.tool, Args: []string{"install"}, Dir: d.root})
}
