// Package execx runs the external processes frameforge-setup orchestrates:
// the runtime, its package tool, platform package managers and installers.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/frameforge/frameforge-setup/internal/logging"
)

// ErrNotFound is returned when an executable is not on the search path.
var ErrNotFound = errors.New("executable not found")

// Cmd describes a single process invocation.
type Cmd struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Elevated commands are run through sudo on Unix unless already root.
	Elevated bool
}

// String renders the command the way a user would type it.
func (c Cmd) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// ExitError reports a "must succeed" process that exited non-zero.
type ExitError struct {
	Cmd  string
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Cmd, e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Runner is the interface for process execution.
type Runner interface {
	// Run executes c with stdio passed through and blocks until it exits.
	// A non-zero exit is reported as *ExitError.
	Run(ctx context.Context, c Cmd) error

	// Output executes c and returns its trimmed standard output.
	Output(ctx context.Context, c Cmd) (string, error)

	// LookPath reports where name is on the search path, or ErrNotFound.
	LookPath(name string) (string, error)
}

// OSRunner implements Runner with os/exec.
type OSRunner struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger logging.Logger
	goos   string
	euid   int
}

// NewRunner creates a Runner bound to the process's standard streams.
func NewRunner(logger logging.Logger) *OSRunner {
	return &OSRunner{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: logging.OrNop(logger),
		goos:   runtime.GOOS,
		euid:   os.Geteuid(),
	}
}

// Run implements Runner.
func (r *OSRunner) Run(ctx context.Context, c Cmd) error {
	c = Resolve(c, r.goos, r.euid)
	r.logger.Debug("run", "cmd", c.String(), "dir", c.Dir)

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	return classify(c, cmd.Run())
}

// Output implements Runner.
func (r *OSRunner) Output(ctx context.Context, c Cmd) (string, error) {
	c = Resolve(c, r.goos, r.euid)
	r.logger.Debug("capture", "cmd", c.String())

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		r.logger.Debug("capture failed", "cmd", c.String(), "stderr", strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(string(out)), classify(c, err)
}

// LookPath implements Runner.
func (r *OSRunner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return path, nil
}

// Resolve rewrites an elevated command for the host. On Unix, a process not
// running as root gets a sudo prefix; Windows installers request elevation
// themselves.
func Resolve(c Cmd, goos string, euid int) Cmd {
	if !c.Elevated || goos == "windows" || euid == 0 {
		return c
	}
	return Cmd{
		Name: "sudo",
		Args: append([]string{c.Name}, c.Args...),
		Dir:  c.Dir,
	}
}

// classify maps exec errors onto ErrNotFound and *ExitError.
func classify(c Cmd, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%s: %w", c.Name, ErrNotFound)
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) && errors.Is(pathErr.Err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", c.Name, ErrNotFound)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Cmd: c.String(), Code: exitErr.ExitCode(), Err: err}
	}
	return fmt.Errorf("run %s: %w", c.String(), err)
}
