// Package testutil provides utilities for testing frameforge-setup in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Env describes an isolated test environment.
type Env struct {
	// ProjectDir is a project root containing package.json.
	ProjectDir string
	// TempDir is where scoped temporary directories are created.
	// It starts empty so tests can assert that nothing is left behind.
	TempDir string
}

// SetupTestEnv creates isolated test directories for each test.
// This ensures tests never interfere with:
// - System installations of the runtime
// - The real temporary directory
// - The user's debug settings
//
// Cleanup is handled by t.TempDir().
func SetupTestEnv(t *testing.T) *Env {
	t.Helper()

	root := t.TempDir()
	env := &Env{
		ProjectDir: filepath.Join(root, "project"),
		TempDir:    filepath.Join(root, "tmp"),
	}

	for _, dir := range []string{env.ProjectDir, env.TempDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}

	manifest := filepath.Join(env.ProjectDir, "package.json")
	if err := os.WriteFile(manifest, []byte(`{"name":"frameforge","private":true}`), 0o644); err != nil {
		t.Fatalf("failed to write package.json: %v", err)
	}

	// os.MkdirTemp honors these
	t.Setenv("TMPDIR", env.TempDir)
	t.Setenv("TMP", env.TempDir)
	t.Setenv("TEMP", env.TempDir)

	t.Setenv("FRAMEFORGE_DEBUG", "")

	return env
}

// WithDependencies creates the dependency marker directory.
func (e *Env) WithDependencies(t *testing.T) *Env {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(e.ProjectDir, "node_modules"), 0o755); err != nil {
		t.Fatalf("failed to create node_modules: %v", err)
	}
	return e
}

// TempEntries lists what remains in the isolated temporary directory.
func (e *Env) TempEntries(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(e.TempDir)
	if err != nil {
		t.Fatalf("failed to read temp dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}
