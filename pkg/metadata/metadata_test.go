package metadata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSignAndVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.json")
	content := []byte(`{"be":[]}`)

	if err := Sign(path, content); err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	ok, err := Verify(path, content)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if !ok {
		t.Error("Expected content to verify against its own sidecar")
	}
}

func TestVerify_Mismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.json")

	if err := Sign(path, []byte("original")); err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	ok, err := Verify(path, []byte("tampered"))
	if ok {
		t.Error("Expected verification to fail for altered content")
	}

	if !errors.Is(err, ErrHashMismatch) {
		t.Errorf("Expected ErrHashMismatch, got %v", err)
	}
}

func TestVerify_NoSidecar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.json")

	_, err := Verify(path, []byte("content"))
	if !errors.Is(err, ErrNoSidecar) {
		t.Errorf("Expected ErrNoSidecar, got %v", err)
	}
}

func TestRead_ParsesAllFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.json")
	content := []byte("payload")

	if err := Sign(path, content); err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	meta, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if meta.Version != Version {
		t.Errorf("Expected version %s, got %s", Version, meta.Version)
	}

	if meta.Hash != CalculateHash(content) {
		t.Errorf("Expected hash %s, got %s", CalculateHash(content), meta.Hash)
	}

	if meta.LastModify.IsZero() {
		t.Error("Expected LAST_MODIFY to be parsed")
	}
}

func TestRead_NoHashLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.json")

	if err := os.WriteFile(SidecarPath(path), []byte("VERSION: 1\n"), 0644); err != nil {
		t.Fatalf("Failed to write sidecar fixture: %v", err)
	}

	_, err := Verify(path, []byte("content"))
	if !errors.Is(err, ErrNoHashFound) {
		t.Errorf("Expected ErrNoHashFound, got %v", err)
	}
}
