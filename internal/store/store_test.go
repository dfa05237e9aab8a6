package store

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"leaderswiki/internal/config"
	"leaderswiki/internal/logger"
	"leaderswiki/internal/models"
	"leaderswiki/pkg/metadata"
)

func testStore(cfg config.OutputConfig) *Store {
	return NewStore(cfg, logger.NewLoggerWithWriter("error", io.Discard))
}

func sampleCollection() *models.Collection {
	c := models.NewCollection()
	c.Set("be", []models.Leader{
		{
			FirstName:    "Example",
			LastName:     "Leader",
			StartMandate: "1981-01-01",
			EndMandate:   "1985-12-31",
			WikipediaURL: "https://en.wikipedia.org/wiki/Example_Leader",
			Biography:    "Example summary text.",
		},
		{
			FirstName:    "Second",
			LastName:     "Leader",
			WikipediaURL: "https://en.wikipedia.org/wiki/Second_Leader",
			Biography:    "",
		},
	})
	c.Set("ma", []models.Leader{})
	c.Set("fr", nil)

	return c
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaders.json")
	st := testStore(config.OutputConfig{PrettyPrint: true})

	original := sampleCollection()

	if err := st.Save(original, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := st.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !reflect.DeepEqual(original, loaded) {
		t.Errorf("Round trip mismatch:\noriginal: %#v\nloaded:   %#v", original, loaded)
	}

	// Country order must survive the round trip exactly.
	if !reflect.DeepEqual(original.Codes(), loaded.Codes()) {
		t.Errorf("Expected codes %v, got %v", original.Codes(), loaded.Codes())
	}
}

func TestStore_RoundTrip_Compact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaders.json")
	st := testStore(config.OutputConfig{PrettyPrint: false})

	original := sampleCollection()

	if err := st.Save(original, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := st.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !reflect.DeepEqual(original, loaded) {
		t.Error("Round trip mismatch with compact output")
	}
}

func TestStore_SaveCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "leaders.json")
	st := testStore(config.OutputConfig{})

	if err := st.Save(sampleCollection(), path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected artifact at %s: %v", path, err)
	}
}

func TestStore_SaveOverwritesWithBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaders.json")
	st := testStore(config.OutputConfig{CreateBackup: true})

	if err := st.Save(sampleCollection(), path); err != nil {
		t.Fatalf("First save failed: %v", err)
	}

	second := models.NewCollection()
	second.Set("us", nil)

	if err := st.Save(second, path); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Errorf("Expected backup file: %v", err)
	}

	loaded, err := st.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !reflect.DeepEqual(loaded.Codes(), []string{"us"}) {
		t.Errorf("Expected overwritten artifact, got codes %v", loaded.Codes())
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	st := testStore(config.OutputConfig{})

	_, err := st.Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrCorruptData) {
		t.Fatalf("Expected ErrCorruptData, got %v", err)
	}
}

func TestStore_LoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaders.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	st := testStore(config.OutputConfig{})

	_, err := st.Load(path)
	if !errors.Is(err, ErrCorruptData) {
		t.Fatalf("Expected ErrCorruptData, got %v", err)
	}
}

func TestStore_ChecksumSidecar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaders.json")
	st := testStore(config.OutputConfig{WriteChecksum: true})

	if err := st.Save(sampleCollection(), path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(metadata.SidecarPath(path)); err != nil {
		t.Fatalf("Expected checksum sidecar: %v", err)
	}

	if err := st.Verify(path); err != nil {
		t.Errorf("Verify failed on untouched artifact: %v", err)
	}

	// Tamper with the artifact; verification must now fail.
	if err := os.WriteFile(path, []byte(`{"xx":[]}`), 0644); err != nil {
		t.Fatalf("Failed to tamper with artifact: %v", err)
	}

	if err := st.Verify(path); !errors.Is(err, metadata.ErrHashMismatch) {
		t.Errorf("Expected ErrHashMismatch after tampering, got %v", err)
	}
}
