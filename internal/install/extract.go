package install

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// Extractor unpacks release archives.
type Extractor struct{}

// NewExtractor creates a new extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractTarXz extracts a .tar.xz archive into destDir, dropping the first
// strip leading path components of every entry like tar --strip-components.
func (e *Extractor) ExtractTarXz(archivePath, destDir string, strip int) error {
	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer archiveFile.Close()

	xzReader, err := xz.NewReader(archiveFile)
	if err != nil {
		return fmt.Errorf("create xz reader: %w", err)
	}

	return e.extractTar(tar.NewReader(xzReader), destDir, strip)
}

func (e *Extractor) extractTar(tarReader *tar.Reader, destDir string, strip int) error {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}
	// Every write goes through root, which refuses paths that resolve
	// outside destDir, including through symlinks created by the archive.
	root, err := os.OpenRoot(destDir)
	if err != nil {
		return fmt.Errorf("open dest dir: %w", err)
	}
	defer root.Close()

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read tar header: %w", err)
		}

		name, ok := stripComponents(header.Name, strip)
		if !ok {
			continue
		}

		target := filepath.FromSlash(name)

		// Security check: prevent path traversal
		if !filepath.IsLocal(target) {
			return fmt.Errorf("illegal file path: %s", header.Name)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := root.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}

		case tar.TypeReg:
			if err := mkdirParent(root, target); err != nil {
				return fmt.Errorf("create parent dir for %s: %w", target, err)
			}
			// Replace rather than write through an existing symlink.
			if err := removeExisting(root, target); err != nil {
				return err
			}

			outFile, err := root.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode).Perm())
			if err != nil {
				return fmt.Errorf("create file %s: %w", target, err)
			}
			if _, err := io.Copy(outFile, tarReader); err != nil {
				outFile.Close()
				return fmt.Errorf("write file %s: %w", target, err)
			}
			if err := outFile.Close(); err != nil {
				return fmt.Errorf("close file %s: %w", target, err)
			}

		case tar.TypeSymlink:
			resolved := filepath.Join(filepath.Dir(target), filepath.FromSlash(header.Linkname))
			if filepath.IsAbs(header.Linkname) || !filepath.IsLocal(resolved) {
				return fmt.Errorf("illegal symlink target: %s -> %s", header.Name, header.Linkname)
			}
			if err := mkdirParent(root, target); err != nil {
				return fmt.Errorf("create parent dir for %s: %w", target, err)
			}
			if err := removeExisting(root, target); err != nil {
				return err
			}
			if err := root.Symlink(header.Linkname, target); err != nil {
				return fmt.Errorf("create symlink %s: %w", target, err)
			}

		default:
			// Skip other types (char devices, block devices, etc.)
			continue
		}
	}

	return nil
}

// stripComponents drops the first n slash-separated elements of name. It
// reports false when nothing remains.
func stripComponents(name string, n int) (string, bool) {
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	for i := 0; i < n; i++ {
		_, rest, found := strings.Cut(name, "/")
		if !found {
			return "", false
		}
		name = rest
	}
	if name == "" || name == "." {
		return "", false
	}
	return name, true
}

func mkdirParent(root *os.Root, target string) error {
	dir := filepath.Dir(target)
	if dir == "." {
		return nil
	}
	return root.MkdirAll(dir, 0755)
}

func removeExisting(root *os.Root, target string) error {
	info, err := root.Lstat(target)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", target, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s exists and is a directory", target)
	}
	if err := root.Remove(target); err != nil {
		return fmt.Errorf("replace %s: %w", target, err)
	}
	return nil
}
