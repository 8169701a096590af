package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/frameforge/frameforge-setup/internal/app"
	"github.com/frameforge/frameforge-setup/internal/config"
	"github.com/frameforge/frameforge-setup/internal/download"
	"github.com/frameforge/frameforge-setup/internal/execx"
	"github.com/frameforge/frameforge-setup/internal/install"
	"github.com/frameforge/frameforge-setup/internal/logging"
	"github.com/frameforge/frameforge-setup/internal/platform"
	"github.com/frameforge/frameforge-setup/internal/project"
	"github.com/frameforge/frameforge-setup/internal/prompt"
	"github.com/frameforge/frameforge-setup/internal/shell"
	"github.com/frameforge/frameforge-setup/internal/ui"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

// options holds the parsed command line.
type options struct {
	flags      project.Flags
	dir        string
	configPath string
	verbose    bool
}

// streams are the process's standard streams, swapped out in tests.
type streams struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// Interrupts keep the default handling: Ctrl+C ends this process and the
// child in the foreground, at a prompt or while a script runs.
func main() {
	cmd := newRootCmd(streams{in: os.Stdin, out: os.Stdout, errOut: os.Stderr})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(s streams) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "frameforge-setup",
		Short: "Set up the FrameForge animation tracer for development",
		Long: `frameforge-setup checks for Node.js and npm, installs Node.js when it is
missing or too old, installs the project's dependencies and then starts
the development server, builds for production, or offers a menu.

Without flags every question is asked interactively.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd.Context(), opts, s)
		},
	}
	cmd.SetIn(s.in)
	cmd.SetOut(s.out)
	cmd.SetErr(s.errOut)

	f := cmd.Flags()
	f.BoolVar(&opts.flags.Install, "install", false, "install or upgrade the runtime without asking")
	f.BoolVar(&opts.flags.Run, "run", false, "start the development server after setup")
	f.BoolVar(&opts.flags.Build, "build", false, "build for production after setup (wins over --run)")
	f.StringVar(&opts.dir, "dir", "", "project root (default: enclosing git worktree or current directory)")
	f.StringVar(&opts.configPath, "config", "", "config file (default: <root>/"+config.FileName+")")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug details to stderr")

	return cmd
}

// runSetup wires the collaborators and runs the flow. Only startup problems
// are returned; flow outcomes are reported on out and end with status 0.
func runSetup(ctx context.Context, opts options, s streams) error {
	logger := logging.FromEnv(s.errOut, opts.verbose)

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	root, err := project.FindRoot(opts.dir, wd)
	if err != nil {
		return err
	}

	detector := platform.NewDetector()
	info, err := detector.Detect(ctx)
	if err != nil {
		return fmt.Errorf("detect platform: %w", err)
	}

	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = filepath.Join(root, config.FileName)
	}
	cfg, err := config.NewParser(platform.StaticDetector{Info: info}).Load(ctx, cfgPath)
	if err != nil {
		return errors.New(config.FormatError(err, opts.verbose))
	}

	runner := execx.NewRunner(logger)
	printer := ui.NewPrinter(s.out)

	var reporter download.Reporter = download.NopReporter{}
	if isTerminal(s.errOut) {
		reporter = download.NewBarReporter(s.errOut)
	}
	dl := download.NewDownloader(download.WithReporter(reporter), download.WithLogger(logger))

	p := app.New(app.Options{
		Flags:  opts.flags,
		Config: cfg,
		Root:   root,
		Target: info.Target(),
		Runner: runner,
		Installer: install.NewInstaller(
			install.NewMatrix(cfg.Runtime.Dist, cfg.Runtime.Release, ""),
			runner,
			dl,
			install.WithVerifier(download.NewVerifier(dl, cfg.Verify, cfg.KeyringPath(root))),
			install.WithPrinter(printer),
			install.WithLogger(logger),
			install.WithLabel(cfg.Runtime.Label),
		),
		Prompter: prompt.NewConsole(s.in, s.out),
		Printer:  printer,
		Logger:   logger,
		Shell:    shell.NewDetector(),
	})

	if opts.flags.Interactive() && !isTerminal(s.in) {
		logger.Warn("stdin is not a terminal; unanswered questions count as no")
	}

	outcome := p.Run(ctx)
	logger.Debug("setup finished", "outcome", outcome.String())
	return nil
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && prompt.IsTerminal(f)
}
