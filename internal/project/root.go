package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// Manifest is the file that marks a project root.
const Manifest = "package.json"

// ErrNotADirectory is returned when an explicit root is not a directory.
var ErrNotADirectory = errors.New("not a directory")

// FindRoot resolves the project root. An explicit override wins. Otherwise
// the enclosing git worktree is used when it holds a manifest, falling back
// to wd.
func FindRoot(override, wd string) (string, error) {
	if override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", override, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", fmt.Errorf("project root: %w", err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("project root %s: %w", abs, ErrNotADirectory)
		}
		return abs, nil
	}

	wd, err := filepath.Abs(wd)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", wd, err)
	}

	if root, ok := worktreeRoot(wd); ok && hasManifest(root) {
		return root, nil
	}
	return wd, nil
}

// worktreeRoot returns the root of the git worktree containing dir.
func worktreeRoot(dir string) (string, bool) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}
	worktree, err := repo.Worktree()
	if err != nil {
		// bare repository
		return "", false
	}
	return worktree.Filesystem.Root(), true
}

func hasManifest(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, Manifest))
	return err == nil && !info.IsDir()
}
