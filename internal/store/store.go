// Package store persists the leader collection as a JSON artifact and loads
// it back.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"leaderswiki/internal/config"
	"leaderswiki/internal/logger"
	"leaderswiki/internal/models"
	"leaderswiki/pkg/metadata"
)

// ErrCorruptData indicates the artifact is missing or not valid JSON.
var ErrCorruptData = errors.New("corrupt leaders data")

// Store writes and reads leader collection artifacts.
type Store struct {
	log *logger.Logger
	cfg config.OutputConfig
}

// NewStore creates a store with the given output behavior.
func NewStore(cfg config.OutputConfig, log *logger.Logger) *Store {
	return &Store{
		cfg: cfg,
		log: log,
	}
}

// Save serializes the collection to path, overwriting any existing file.
// What is written is exactly what Load reconstructs.
func (s *Store) Save(collection *models.Collection, path string) error {
	var (
		data []byte
		err  error
	)

	if s.cfg.PrettyPrint {
		data, err = json.MarshalIndent(collection, "", "  ")
	} else {
		data, err = json.Marshal(collection)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}

	// Ensure output directory exists
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Create backup if file exists
	if s.cfg.CreateBackup {
		if _, statErr := os.Stat(path); statErr == nil {
			backupPath := path + ".bak"
			if renameErr := os.Rename(path, backupPath); renameErr != nil {
				s.log.Warn("could not create backup", "path", backupPath, "err", renameErr)
			} else {
				s.log.Info("backed up existing artifact", "path", backupPath)
			}
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if s.cfg.WriteChecksum {
		if err := metadata.Sign(path, data); err != nil {
			return fmt.Errorf("failed to sign artifact: %w", err)
		}
	}

	return nil
}

// Load deserializes the artifact at path back into a collection.
func (s *Store) Load(path string) (*models.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	collection := models.NewCollection()
	if err := json.Unmarshal(data, collection); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	return collection, nil
}

// Verify checks the artifact against its checksum sidecar.
func (s *Store) Verify(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	if _, err := metadata.Verify(path, data); err != nil {
		return err
	}

	return nil
}
