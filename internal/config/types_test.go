package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestReleaseVersion(t *testing.T) {
	tests := []string{"20.10.0", "v20.10.0"}

	for _, release := range tests {
		t.Run(release, func(t *testing.T) {
			cfg := Default()
			cfg.Runtime.Release = release
			v, err := cfg.ReleaseVersion()
			if err != nil {
				t.Fatalf("ReleaseVersion() error = %v", err)
			}
			if v.Major() != 20 {
				t.Errorf("Major() = %d, want 20", v.Major())
			}
		})
	}
}

func TestKeyringPath(t *testing.T) {
	root := filepath.Join("home", "dev", "frameforge")
	abs, err := filepath.Abs(filepath.Join("keys", "nodejs.asc"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		keyring string
		want    string
	}{
		{"empty", "", ""},
		{"relative", "keys/nodejs.asc", filepath.Join(root, "keys", "nodejs.asc")},
		{"absolute", abs, abs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Keyring = tt.keyring
			if got := cfg.KeyringPath(root); got != tt.want {
				t.Errorf("KeyringPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVerifyModeIsValid(t *testing.T) {
	for _, m := range []VerifyMode{VerifyNone, VerifyChecksum, VerifySignature} {
		if !m.IsValid() {
			t.Errorf("%q should be valid", m)
		}
	}
	if VerifyMode("sha1").IsValid() {
		t.Error("sha1 should be invalid")
	}
}
