package install

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/frameforge/frameforge-setup/internal/download"
	"github.com/frameforge/frameforge-setup/internal/execx"
	"github.com/frameforge/frameforge-setup/internal/logging"
	"github.com/frameforge/frameforge-setup/internal/platform"
	"github.com/frameforge/frameforge-setup/internal/ui"
)

// tempPattern names the scoped directory holding a downloaded artifact.
const tempPattern = "frameforge-setup-*"

// Downloader fetches an artifact to a local path.
type Downloader interface {
	Download(ctx context.Context, url, destPath string) error
}

// Verifier checks a downloaded artifact.
type Verifier interface {
	Verify(ctx context.Context, artifactURL, filePath string) (*download.Result, error)
}

// Installer executes install strategies.
type Installer struct {
	matrix     *Matrix
	runner     execx.Runner
	downloader Downloader
	verifier   Verifier
	extractor  *Extractor
	printer    *ui.Printer
	logger     logging.Logger
	label      string
	euid       int
	lockDir    string
}

// Option configures an Installer.
type Option func(*Installer)

// WithVerifier verifies downloads before they are installed.
func WithVerifier(v Verifier) Option {
	return func(i *Installer) { i.verifier = v }
}

// WithPrinter sets where progress messages go.
func WithPrinter(p *ui.Printer) Option {
	return func(i *Installer) { i.printer = p }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logging.Logger) Option {
	return func(i *Installer) { i.logger = logging.OrNop(l) }
}

// WithLabel sets the runtime name used in messages.
func WithLabel(label string) Option {
	return func(i *Installer) { i.label = label }
}

// WithEUID overrides the effective user id. Archives are extracted
// in-process when it is 0.
func WithEUID(euid int) Option {
	return func(i *Installer) { i.euid = euid }
}

// WithLockDir sets where the install lock is created. The default is the
// system temporary directory.
func WithLockDir(dir string) Option {
	return func(i *Installer) { i.lockDir = dir }
}

// NewInstaller creates an installer for the strategies in m.
func NewInstaller(m *Matrix, runner execx.Runner, dl Downloader, opts ...Option) *Installer {
	i := &Installer{
		matrix:     m,
		runner:     runner,
		downloader: dl,
		extractor:  NewExtractor(),
		printer:    ui.NewPrinter(io.Discard),
		logger:     logging.Nop(),
		label:      "Node.js",
		euid:       os.Geteuid(),
		lockDir:    os.TempDir(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Plan returns the strategy Install would use for target.
func (i *Installer) Plan(target platform.Target) (Strategy, error) {
	return i.matrix.Plan(target, i.runner.LookPath)
}

// Install installs the runtime on target. Any failing step aborts the
// attempt; nothing is rolled back.
func (i *Installer) Install(ctx context.Context, target platform.Target) (*Result, error) {
	i.printer.Step("Installing %s for %s...", i.label, target)

	strategy, err := i.Plan(target)
	if err != nil {
		return nil, err
	}
	i.logger.Debug("install plan", "target", target.String(), "strategy", strategy.Describe(), "commands", Summary(strategy))

	lock, err := AcquireLock(ctx, i.lockDir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			i.logger.Warn("failed to release install lock", "error", err)
		}
	}()

	result := &Result{Strategy: strategy}

	switch s := strategy.(type) {
	case DelegateToManager:
		i.printer.Step("Installing %s via %s...", i.label, s.Manager.Name)
		for _, c := range s.Manager.Steps {
			if err := i.runner.Run(ctx, c); err != nil {
				return nil, fmt.Errorf("%s install: %w", s.Manager.Name, err)
			}
		}

	case RunInstaller:
		result.Checksum, err = i.withArtifact(ctx, s.URL, func(file string) error {
			i.printer.Step("Running %s installer (this may require admin privileges)...", i.label)
			return i.runner.Run(ctx, s.Command(file))
		})
		if err != nil {
			return nil, err
		}

	case ExtractArchive:
		i.printer.Info("No package manager found, installing manually...")
		result.Checksum, err = i.withArtifact(ctx, s.URL, func(file string) error {
			i.printer.Step("Extracting to %s...", s.Prefix)
			if i.euid == 0 {
				i.logger.Debug("extracting in-process", "archive", file, "prefix", s.Prefix)
				return i.extractor.ExtractTarXz(file, s.Prefix, 1)
			}
			return i.runner.Run(ctx, s.Command(file))
		})
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unknown strategy %T", strategy)
	}

	result.RestartRequired = target.OS == platform.OSWindows
	return result, nil
}

// withArtifact downloads artifactURL into a fresh temporary directory,
// verifies it and hands its path to use. The directory is removed on every
// return path.
func (i *Installer) withArtifact(ctx context.Context, artifactURL string, use func(file string) error) (string, error) {
	name, err := fileName(artifactURL)
	if err != nil {
		return "", err
	}

	tmpDir, err := os.MkdirTemp("", tempPattern)
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			i.logger.Warn("failed to remove temp dir", "path", tmpDir, "error", err)
		}
	}()

	file := filepath.Join(tmpDir, name)
	i.printer.Info("Downloading from %s", artifactURL)
	if err := i.downloader.Download(ctx, artifactURL, file); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}

	var checksum string
	if i.verifier != nil {
		res, err := i.verifier.Verify(ctx, artifactURL, file)
		if err != nil {
			return "", fmt.Errorf("verify: %w", err)
		}
		checksum = res.Checksum
		i.logger.Debug("artifact verified", "method", string(res.Method), "sha256", res.Checksum)
	}

	if err := use(file); err != nil {
		return "", err
	}
	return checksum, nil
}

func fileName(artifactURL string) (string, error) {
	u, err := url.Parse(artifactURL)
	if err != nil {
		return "", fmt.Errorf("parse artifact url: %w", err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("artifact url %q has no file name", artifactURL)
	}
	return name, nil
}
