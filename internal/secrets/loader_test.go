package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  file-secret \n"), 0o600); err != nil {
		t.Fatalf("write secret file: %v", err)
	}

	got, err := Load(Source{Name: "api key", File: path, Value: "inline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "file-secret" {
		t.Fatalf("expected file secret to win, got %q", got)
	}
}

func TestLoadFromValue(t *testing.T) {
	got, err := Load(Source{Name: "api key", Value: " inline-secret "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "inline-secret" {
		t.Fatalf("expected inline secret, got %q", got)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JOBSIFT_TEST_SECRET", " env-secret ")

	got, err := Load(Source{Name: "api key", Env: "JOBSIFT_TEST_SECRET"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "env-secret" {
		t.Fatalf("expected env secret, got %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(Source{Name: "api key"}); err == nil {
		t.Fatalf("expected error for empty source")
	}

	if _, err := Load(Source{Name: "api key", File: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatalf("expected error for missing file")
	}

	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(empty, []byte("   "), 0o600); err != nil {
		t.Fatalf("write empty file: %v", err)
	}
	if _, err := Load(Source{Name: "api key", File: empty}); err == nil {
		t.Fatalf("expected error for empty file")
	}
}
