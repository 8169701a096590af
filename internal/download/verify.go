package download

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
	"github.com/ProtonMail/go-crypto/openpgp/clearsign"

	"github.com/frameforge/frameforge-setup/internal/config"
)

const (
	// ChecksumsFile is the checksum manifest published with each release.
	ChecksumsFile = "SHASUMS256.txt"
	// SignedChecksumsFile is the clearsigned variant of ChecksumsFile.
	SignedChecksumsFile = "SHASUMS256.txt.asc"
)

// ErrChecksumMismatch is returned when an artifact's digest differs from the
// published one.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// Fetcher retrieves small files over the network.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Result describes a completed verification.
type Result struct {
	Method   config.VerifyMode
	Checksum string
}

// Verifier checks downloaded artifacts against the release's checksums.
type Verifier struct {
	fetcher     Fetcher
	mode        config.VerifyMode
	keyringPath string
}

// NewVerifier creates a verifier. keyringPath is only read in signature mode.
func NewVerifier(fetcher Fetcher, mode config.VerifyMode, keyringPath string) *Verifier {
	return &Verifier{fetcher: fetcher, mode: mode, keyringPath: keyringPath}
}

// Verify checks the file at filePath, which was downloaded from artifactURL.
func (v *Verifier) Verify(ctx context.Context, artifactURL, filePath string) (*Result, error) {
	name, err := artifactName(artifactURL)
	if err != nil {
		return nil, err
	}

	var sums []byte
	switch v.mode {
	case config.VerifyNone, "":
		return &Result{Method: config.VerifyNone}, nil

	case config.VerifyChecksum:
		sums, err = v.fetcher.Fetch(ctx, siblingURL(artifactURL, ChecksumsFile))
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", ChecksumsFile, err)
		}

	case config.VerifySignature:
		keyring, err := loadKeyring(v.keyringPath)
		if err != nil {
			return nil, err
		}
		signed, err := v.fetcher.Fetch(ctx, siblingURL(artifactURL, SignedChecksumsFile))
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", SignedChecksumsFile, err)
		}
		sums, err = verifyClearsigned(keyring, signed)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unknown verify mode: %q", v.mode)
	}

	expected, err := findChecksum(sums, name)
	if err != nil {
		return nil, err
	}

	actual, err := calculateSHA256(filePath)
	if err != nil {
		return nil, fmt.Errorf("calculate checksum: %w", err)
	}

	if !strings.EqualFold(actual, expected) {
		return nil, fmt.Errorf("%w for %s:\nactual:   %s\nexpected: %s",
			ErrChecksumMismatch, name, actual, expected)
	}

	return &Result{Method: v.mode, Checksum: actual}, nil
}

// verifyClearsigned authenticates a clearsigned document and returns its
// plaintext.
func verifyClearsigned(keyring openpgp.EntityList, data []byte) ([]byte, error) {
	block, _ := clearsign.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%s is not a clearsigned document", SignedChecksumsFile)
	}

	_, err := openpgp.CheckDetachedSignature(keyring, bytes.NewReader(block.Bytes), block.ArmoredSignature.Body, nil)
	if err != nil {
		return nil, fmt.Errorf("verify signature: %w", err)
	}
	return block.Plaintext, nil
}

// loadKeyring reads an armored or binary OpenPGP keyring.
func loadKeyring(keyringPath string) (openpgp.EntityList, error) {
	if keyringPath == "" {
		return nil, fmt.Errorf("signature verification requires a keyring")
	}

	data, err := os.ReadFile(keyringPath)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}

	keyring, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		keyring, err = openpgp.ReadKeyRing(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("read keyring: %w", err)
		}
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("keyring is empty")
	}
	return keyring, nil
}

// artifactName returns the last path segment of an artifact URL.
func artifactName(artifactURL string) (string, error) {
	u, err := url.Parse(artifactURL)
	if err != nil {
		return "", fmt.Errorf("parse artifact url: %w", err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return "", fmt.Errorf("artifact url %q has no file name", artifactURL)
	}
	return name, nil
}

// siblingURL replaces the last path segment of artifactURL with name.
func siblingURL(artifactURL, name string) string {
	i := strings.LastIndex(artifactURL, "/")
	if i < 0 {
		return name
	}
	return artifactURL[:i+1] + name
}

// calculateSHA256 calculates the SHA256 checksum of a file
func calculateSHA256(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// findChecksum finds the checksum for filename in a manifest.
// Format: "abc123def456  node-v20.10.0.pkg"
func findChecksum(sums []byte, filename string) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(sums))
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}

		// "*name" marks binary mode in sha256sum output
		entry := strings.TrimPrefix(parts[1], "*")
		if entry == filename || path.Base(entry) == filename {
			return parts[0], nil
		}
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan checksums: %w", err)
	}

	return "", fmt.Errorf("checksum not found for %s", filename)
}
