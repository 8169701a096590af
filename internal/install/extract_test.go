package install

import (
	"archive/tar"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"
)

type tarEntry struct {
	name string
	body string
	mode int64
	dir  bool
	link string
}

// buildTarXz returns the bytes of a .tar.xz archive holding entries.
func buildTarXz(t *testing.T, entries []tarEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	xzWriter, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("failed to create xz writer: %v", err)
	}
	tarWriter := tar.NewWriter(xzWriter)

	for _, e := range entries {
		header := &tar.Header{Name: e.name, Mode: e.mode}
		switch {
		case e.dir:
			header.Typeflag = tar.TypeDir
			header.Mode = 0o755
		case e.link != "":
			header.Typeflag = tar.TypeSymlink
			header.Linkname = e.link
			header.Mode = 0o777
		default:
			header.Typeflag = tar.TypeReg
			header.Size = int64(len(e.body))
			if header.Mode == 0 {
				header.Mode = 0o644
			}
		}

		if err := tarWriter.WriteHeader(header); err != nil {
			t.Fatalf("failed to write header for %s: %v", e.name, err)
		}
		if header.Typeflag == tar.TypeReg {
			if _, err := tarWriter.Write([]byte(e.body)); err != nil {
				t.Fatalf("failed to write content for %s: %v", e.name, err)
			}
		}
	}

	if err := tarWriter.Close(); err != nil {
		t.Fatal(err)
	}
	if err := xzWriter.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func writeArchive(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "node.tar.xz")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractTarXz(t *testing.T) {
	archive := writeArchive(t, buildTarXz(t, []tarEntry{
		{name: "node-v20.10.0-linux-x64/", dir: true},
		{name: "node-v20.10.0-linux-x64/bin/", dir: true},
		{name: "node-v20.10.0-linux-x64/bin/node", body: "binary", mode: 0o755},
		{name: "node-v20.10.0-linux-x64/include/node/node.h", body: "header"},
		{name: "node-v20.10.0-linux-x64/CHANGELOG.md", body: "log"},
	}))
	dest := t.TempDir()

	if err := NewExtractor().ExtractTarXz(archive, dest, 1); err != nil {
		t.Fatalf("ExtractTarXz() error = %v", err)
	}

	files := map[string]string{
		"bin/node":            "binary",
		"include/node/node.h": "header",
		"CHANGELOG.md":        "log",
	}
	for rel, want := range files {
		got, err := os.ReadFile(filepath.Join(dest, filepath.FromSlash(rel)))
		if err != nil {
			t.Errorf("missing %s: %v", rel, err)
			continue
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", rel, got, want)
		}
	}

	info, err := os.Stat(filepath.Join(dest, "bin", "node"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o100 == 0 {
		t.Errorf("bin/node mode = %v, want executable", info.Mode())
	}

	if _, err := os.Stat(filepath.Join(dest, "node-v20.10.0-linux-x64")); !os.IsNotExist(err) {
		t.Error("top-level directory should have been stripped")
	}
}

func TestExtractTarXzOverwritesExisting(t *testing.T) {
	dest := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dest, "bin"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dest, "bin", "node"), []byte("old"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink("node", filepath.Join(dest, "bin", "npm")); err != nil {
		t.Fatal(err)
	}

	archive := writeArchive(t, buildTarXz(t, []tarEntry{
		{name: "node/bin/node", body: "new", mode: 0o755},
		{name: "node/lib/npm-cli.js", body: "cli"},
		{name: "node/bin/npm", link: "../lib/npm-cli.js"},
	}))

	if err := NewExtractor().ExtractTarXz(archive, dest, 1); err != nil {
		t.Fatalf("ExtractTarXz() error = %v", err)
	}

	if got, _ := os.ReadFile(filepath.Join(dest, "bin", "node")); string(got) != "new" {
		t.Errorf("bin/node = %q, want new", got)
	}
	if link, _ := os.Readlink(filepath.Join(dest, "bin", "npm")); link != "../lib/npm-cli.js" {
		t.Errorf("bin/npm -> %q", link)
	}
}

func TestExtractTarXzRejectsEscapingSymlink(t *testing.T) {
	archive := writeArchive(t, buildTarXz(t, []tarEntry{
		{name: "node/bin/evil", link: "../../../etc/passwd"},
	}))

	if err := NewExtractor().ExtractTarXz(archive, t.TempDir(), 1); err == nil {
		t.Error("expected error for symlink escaping the prefix")
	}
}

func TestExtractTarXzContainsTraversal(t *testing.T) {
	parent := t.TempDir()
	dest := filepath.Join(parent, "prefix")

	archive := writeArchive(t, buildTarXz(t, []tarEntry{
		{name: "node/../../escaped.txt", body: "x"},
	}))

	if err := NewExtractor().ExtractTarXz(archive, dest, 1); err != nil {
		t.Fatalf("ExtractTarXz() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(parent, "escaped.txt")); !os.IsNotExist(err) {
		t.Error("entry escaped the destination directory")
	}
}

func TestExtractTarXzInvalidArchive(t *testing.T) {
	archive := writeArchive(t, []byte("not xz"))
	if err := NewExtractor().ExtractTarXz(archive, t.TempDir(), 1); err == nil {
		t.Error("expected error for invalid archive")
	}
}

func TestStripComponents(t *testing.T) {
	tests := []struct {
		name   string
		strip  int
		want   string
		wantOK bool
	}{
		{"node-v20/bin/node", 1, "bin/node", true},
		{"node-v20/", 1, "", false},
		{"node-v20", 1, "", false},
		{"./node-v20/bin/node", 1, "bin/node", true},
		{"bin/node", 0, "bin/node", true},
		{"a/b/c", 2, "c", true},
	}

	for _, tt := range tests {
		got, ok := stripComponents(tt.name, tt.strip)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("stripComponents(%q, %d) = %q, %v; want %q, %v", tt.name, tt.strip, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestExtractTarXzContainsSymlinkChain(t *testing.T) {
	parent := t.TempDir()
	dest := filepath.Join(parent, "prefix")

	// Each link stays inside the prefix lexically; together they point above it.
	archive := writeArchive(t, buildTarXz(t, []tarEntry{
		{name: "node/d1/", dir: true},
		{name: "node/d1/d2/", dir: true},
		{name: "node/d1/d2/l", link: ".."},
		{name: "node/d1/d2/l/l2", link: "../.."},
		{name: "node/d1/l2/escaped.txt", body: "x"},
	}))

	if err := NewExtractor().ExtractTarXz(archive, dest, 1); err == nil {
		t.Error("expected error for a write through a symlink chain leaving the prefix")
	}
	if _, err := os.Stat(filepath.Join(parent, "escaped.txt")); !os.IsNotExist(err) {
		t.Error("entry escaped the destination directory")
	}
}
