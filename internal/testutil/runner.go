package testutil

import (
	"context"
	"fmt"

	"github.com/frameforge/frameforge-setup/internal/execx"
)

// FakeRunner implements execx.Runner without spawning processes.
// Run calls are recorded in Calls, Output calls in Probes.
type FakeRunner struct {
	// Installed lists executables LookPath and Output can find.
	Installed map[string]bool
	// Outputs maps a rendered command ("node --version") to its stdout.
	Outputs map[string]string
	// ExitCodes maps a rendered command to a non-zero exit code.
	ExitCodes map[string]int
	// OnRun, when set, is called for each Run after recording.
	OnRun func(c execx.Cmd) error

	Calls  []execx.Cmd
	Probes []execx.Cmd
}

// NewFakeRunner creates a FakeRunner with the given executables on PATH.
func NewFakeRunner(installed ...string) *FakeRunner {
	f := &FakeRunner{
		Installed: map[string]bool{},
		Outputs:   map[string]string{},
		ExitCodes: map[string]int{},
	}
	for _, name := range installed {
		f.Installed[name] = true
	}
	return f
}

// WithVersion marks name as installed and answers "name --version" with v.
func (f *FakeRunner) WithVersion(name, v string) *FakeRunner {
	f.Installed[name] = true
	f.Outputs[name+" --version"] = v
	return f
}

// Failing makes the rendered command exit with code.
func (f *FakeRunner) Failing(cmd string, code int) *FakeRunner {
	f.ExitCodes[cmd] = code
	return f
}

// Run implements execx.Runner.
func (f *FakeRunner) Run(ctx context.Context, c execx.Cmd) error {
	f.Calls = append(f.Calls, c)
	if code, ok := f.ExitCodes[c.String()]; ok {
		return &execx.ExitError{Cmd: c.String(), Code: code}
	}
	if f.OnRun != nil {
		return f.OnRun(c)
	}
	return nil
}

// Output implements execx.Runner.
func (f *FakeRunner) Output(ctx context.Context, c execx.Cmd) (string, error) {
	f.Probes = append(f.Probes, c)
	if !f.Installed[c.Name] {
		return "", fmt.Errorf("%s: %w", c.Name, execx.ErrNotFound)
	}
	if code, ok := f.ExitCodes[c.String()]; ok {
		return "", &execx.ExitError{Cmd: c.String(), Code: code}
	}
	return f.Outputs[c.String()], nil
}

// LookPath implements execx.Runner.
func (f *FakeRunner) LookPath(name string) (string, error) {
	if !f.Installed[name] {
		return "", fmt.Errorf("%s: %w", name, execx.ErrNotFound)
	}
	return "/usr/bin/" + name, nil
}

// Ran returns the rendered commands passed to Run, in order.
func (f *FakeRunner) Ran() []string {
	var out []string
	for _, c := range f.Calls {
		out = append(out, c.String())
	}
	return out
}

// CountRan counts Run invocations of the rendered command.
func (f *FakeRunner) CountRan(cmd string) int {
	n := 0
	for _, got := range f.Ran() {
		if got == cmd {
			n++
		}
	}
	return n
}
