// Package app runs the setup flow: runtime check and install, package tool
// check, dependency install, then the development server, the production
// build or the interactive menu.
package app

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/frameforge/frameforge-setup/internal/config"
	"github.com/frameforge/frameforge-setup/internal/execx"
	"github.com/frameforge/frameforge-setup/internal/install"
	"github.com/frameforge/frameforge-setup/internal/logging"
	"github.com/frameforge/frameforge-setup/internal/platform"
	"github.com/frameforge/frameforge-setup/internal/probe"
	"github.com/frameforge/frameforge-setup/internal/project"
	"github.com/frameforge/frameforge-setup/internal/prompt"
	"github.com/frameforge/frameforge-setup/internal/shell"
	"github.com/frameforge/frameforge-setup/internal/ui"
)

// Title is printed in the header.
const Title = "FrameForge - Animation Tracer Setup"

// RuntimeInstaller installs the runtime for a platform target.
type RuntimeInstaller interface {
	Install(ctx context.Context, target platform.Target) (*install.Result, error)
}

// ShellDetector finds the user's shell for post-install guidance.
type ShellDetector interface {
	Detect(ctx context.Context) *shell.DetectionResult
}

// Outcome is how a flow ended. Every outcome maps to exit status 0.
type Outcome int

const (
	// OutcomeCompleted means the flow ran to the end.
	OutcomeCompleted Outcome = iota
	// OutcomeInstalled means the runtime was installed and the user must
	// re-run setup.
	OutcomeInstalled
	// OutcomeAborted means the user declined a required install.
	OutcomeAborted
	// OutcomeFailed means a step failed and was reported.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeInstalled:
		return "installed"
	case OutcomeAborted:
		return "aborted"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Options wires the flow's collaborators.
type Options struct {
	Flags  project.Flags
	Config *config.Config
	// Root is the project root; every project operation runs there.
	Root   string
	Target platform.Target

	Runner    execx.Runner
	Installer RuntimeInstaller
	Prompter  prompt.Prompter
	Printer   *ui.Printer
	Logger    logging.Logger
	// Shell is optional; without it guidance is shell-agnostic.
	Shell ShellDetector
}

// App is the setup flow.
type App struct {
	opts    Options
	cfg     *config.Config
	prober  *probe.Prober
	deps    *project.Dependencies
	scripts *project.Scripts
	printer *ui.Printer
	logger  logging.Logger
}

// New creates the flow. Config defaults to config.Default(); a missing
// Prompter answers every question as if input were closed.
func New(opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := logging.OrNop(opts.Logger)
	if opts.Printer == nil {
		opts.Printer = ui.NewPrinter(io.Discard)
	}
	if opts.Prompter == nil {
		// behaves like closed input
		opts.Prompter = prompt.NewConsole(strings.NewReader(""), io.Discard)
	}

	return &App{
		opts:   opts,
		cfg:    cfg,
		prober: probe.NewProber(opts.Runner, logger),
		deps:   project.NewDependencies(opts.Root, cfg.Deps.Marker, cfg.Runtime.PackageTool, opts.Runner),
		scripts: project.NewScripts(opts.Root, cfg.Runtime.PackageTool, project.ScriptNames{
			Dev:    cfg.Scripts.Dev,
			Build:  cfg.Scripts.Build,
			Output: cfg.Scripts.Output,
		}, opts.Runner),
		printer: opts.Printer,
		logger:  logger,
	}
}

// Run executes the flow and reports how it ended. Failures are printed, not
// returned.
func (a *App) Run(ctx context.Context) Outcome {
	a.printer.Header(Title)
	a.logger.Debug("setup", "root", a.opts.Root, "target", a.opts.Target.String(),
		"install", a.opts.Flags.Install, "run", a.opts.Flags.Run, "build", a.opts.Flags.Build)

	if outcome, done := a.runtimeStage(ctx); done {
		return outcome
	}

	if !a.packageToolStage(ctx) {
		return OutcomeFailed
	}

	if !a.dependencyStage(ctx) {
		return OutcomeFailed
	}

	a.printer.Println()
	return a.dispatch(ctx)
}

// runtimeStage checks the runtime and installs it when needed. done is set
// when the flow must stop here.
func (a *App) runtimeStage(ctx context.Context) (Outcome, bool) {
	rt := a.cfg.Runtime
	a.printer.Step("Checking %s installation...", rt.Label)

	info := a.prober.Probe(ctx, rt.Name, probe.DefaultVersionFlag)
	state := install.Classify(info, rt.MinMajor)
	if v := info.Semver(); v != nil {
		a.logger.Debug("runtime version", "version", v.String(), "state", state.String())
	}

	switch state {
	case install.StateOK:
		a.printer.Success("%s %s found", rt.Label, info.Raw)
	case install.StateBelowMinimum:
		a.printer.Success("%s %s found", rt.Label, info.Raw)
		a.printer.Error("%s %d+ is required (you have %s)", rt.Label, rt.MinMajor, info.Raw)
	case install.StateNotInstalled:
		a.printer.Error("%s is not installed", rt.Label)
	}

	decision := install.Decide(state, a.opts.Flags.Install)
	if decision == install.DecisionAsk {
		decision = install.Resolve(a.opts.Prompter.Confirm(ctx, install.Question(state, rt.Label)))
	}
	a.logger.Debug("runtime decision", "state", state.String(), "decision", decision.String())

	switch decision {
	case install.DecisionInstall:
		return a.installRuntime(ctx), true

	case install.DecisionAbort:
		a.printer.Info("Please install %s from %s", rt.Label, install.ManualDownloadPage)
		a.printer.Info("Then run this script again.")
		return OutcomeAborted, true
	}

	f := a.opts.Flags
	if f.Install && !f.Run && !f.Build {
		a.printer.Success("%s %d+ is already installed, nothing to do", rt.Label, rt.MinMajor)
		return OutcomeCompleted, true
	}
	return OutcomeCompleted, false
}

func (a *App) installRuntime(ctx context.Context) Outcome {
	label := a.cfg.Runtime.Label

	result, err := a.opts.Installer.Install(ctx, a.opts.Target)
	if err != nil {
		if errors.Is(err, install.ErrUnsupportedPlatform) {
			a.printer.Error("Unsupported platform: %s", a.opts.Target)
			a.printer.Info("Please install %s manually from %s", label, install.ManualDownloadPage)
		} else {
			a.printer.Error("Failed to install %s: %v", label, err)
		}
		a.logger.Debug("install failed", "error", err)
		return OutcomeFailed
	}

	if result.RestartRequired {
		a.printer.Success("%s installed! Please restart your terminal/command prompt.", label)
	} else {
		a.printer.Success("%s installed!", label)
	}

	detected := shell.ShellUnknown
	if a.opts.Shell != nil {
		detected = a.opts.Shell.Detect(ctx).Shell
	}
	for _, line := range shell.Guidance(detected, result.RestartRequired) {
		a.printer.Info("%s", line)
	}
	return OutcomeInstalled
}

func (a *App) packageToolStage(ctx context.Context) bool {
	tool := a.cfg.Runtime.PackageTool
	a.printer.Step("Checking %s installation...", tool)

	info := a.prober.Probe(ctx, tool, probe.DefaultVersionFlag)
	if !info.Installed {
		a.printer.Error("%s is not installed (should come with %s)", tool, a.cfg.Runtime.Label)
		return false
	}
	a.printer.Success("%s %s found", tool, info.Raw)
	return true
}

func (a *App) dependencyStage(ctx context.Context) bool {
	if !a.deps.Installed() {
		a.printer.Step("%s not found, installing dependencies...", a.cfg.Deps.Marker)
		return a.installDependencies(ctx)
	}

	a.printer.Success("Dependencies already installed")
	if project.DecideReinstallPrompt(a.opts.Flags) && a.opts.Prompter.Confirm(ctx, "Reinstall dependencies?") {
		// The existing dependencies remain usable when a reinstall fails.
		a.installDependencies(ctx)
	}
	return true
}

func (a *App) installDependencies(ctx context.Context) bool {
	a.printer.Step("Installing project dependencies...")
	if err := a.deps.Install(ctx); err != nil {
		a.logger.Debug("dependency install failed", "error", err)
		a.printer.Error("Failed to install dependencies")
		return false
	}
	a.printer.Success("Dependencies installed successfully!")
	return true
}

func (a *App) dispatch(ctx context.Context) Outcome {
	action := project.DecideRun(a.opts.Flags)
	if action == project.ActionMenu {
		a.printer.Println("What would you like to do?")
		a.printer.Println("  1. Start development server")
		a.printer.Println("  2. Build for production")
		a.printer.Println("  3. Exit")
		a.printer.Println()
		action = project.ParseMenuChoice(a.opts.Prompter.Choose(ctx, "Enter choice [1/2/3]"))
	}

	switch action {
	case project.ActionDev:
		a.printer.Step("Starting development server...")
		a.printer.Info("Press Ctrl+C to stop the server")
		a.printer.Println()
		// The server's own output is the report; its exit status is not judged.
		if err := a.scripts.Dev(ctx); err != nil {
			a.logger.Debug("dev server exited", "error", err)
		}
		return OutcomeCompleted

	case project.ActionBuild:
		a.printer.Step("Building for production...")
		if err := a.scripts.Build(ctx); err != nil {
			a.logger.Debug("build failed", "error", err)
			a.printer.Error("Build failed")
			return OutcomeFailed
		}
		a.printer.Success("Build completed! Output is in the '%s' folder.", a.scripts.Output())
		return OutcomeCompleted

	default:
		a.printer.Success("Setup complete! You can run manually:")
		a.printer.Info("  %-14s - Start dev server", a.scripts.DevCommand().String())
		a.printer.Info("  %-14s - Build for production", a.scripts.BuildCommand().String())
		return OutcomeCompleted
	}
}
