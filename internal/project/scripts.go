package project

import (
	"context"

	"github.com/frameforge/frameforge-setup/internal/execx"
)

// Scripts runs the project's package scripts.
type Scripts struct {
	root   string
	tool   string
	dev    string
	build  string
	output string
	runner execx.Runner
}

// ScriptNames names the dev and build scripts and the build output dir.
type ScriptNames struct {
	Dev    string
	Build  string
	Output string
}

// NewScripts creates a Scripts runner for the project at root.
func NewScripts(root, tool string, names ScriptNames, runner execx.Runner) *Scripts {
	return &Scripts{
		root:   root,
		tool:   tool,
		dev:    names.Dev,
		build:  names.Build,
		output: names.Output,
		runner: runner,
	}
}

// Dev runs the development server in the foreground until it exits.
func (s *Scripts) Dev(ctx context.Context) error {
	return s.runner.Run(ctx, s.DevCommand())
}

// Build runs the production build.
func (s *Scripts) Build(ctx context.Context) error {
	return s.runner.Run(ctx, s.BuildCommand())
}

// DevCommand is the development server invocation.
func (s *Scripts) DevCommand() execx.Cmd {
	return execx.Cmd{Name: s.tool, Args: []string{"run", s.dev}, Dir: s.root}
}

// BuildCommand is the production build invocation.
func (s *Scripts) BuildCommand() execx.Cmd {
	return execx.Cmd{Name: s.tool, Args: []string{"run", s.build}, Dir: s.root}
}

// Output is the build output directory named in messages.
func (s *Scripts) Output() string {
	return s.output
}
