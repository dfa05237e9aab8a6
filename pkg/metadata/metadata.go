// Package metadata provides checksum sidecar signing and verification for
// saved artifacts. The sidecar lives next to the artifact (<path>.meta) and
// never alters the artifact itself, so saved data round-trips untouched.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Version is the sidecar format version.
const Version = "1"

// Metadata verification errors.
var (
	ErrNoSidecar    = errors.New("no metadata sidecar found")
	ErrNoHashFound  = errors.New("no hash found in metadata")
	ErrHashMismatch = errors.New("hash mismatch")
)

// Metadata contains the artifact status information.
type Metadata struct {
	LastModify time.Time
	Version    string
	Hash       string
}

// SidecarPath returns the sidecar path for an artifact path.
func SidecarPath(artifactPath string) string {
	return artifactPath + ".meta"
}

// CalculateHash computes the SHA-256 hash of the artifact content.
func CalculateHash(content []byte) string {
	hash := sha256.Sum256(content)

	return hex.EncodeToString(hash[:])
}

// Sign writes a fresh sidecar for the given artifact content.
func Sign(artifactPath string, content []byte) error {
	block := fmt.Sprintf("VERSION: %s\nLAST_MODIFY: %s\nHASH: %s\n",
		Version,
		time.Now().UTC().Format(time.RFC3339),
		CalculateHash(content),
	)

	if err := os.WriteFile(SidecarPath(artifactPath), []byte(block), 0644); err != nil {
		return fmt.Errorf("failed to write metadata sidecar: %w", err)
	}

	return nil
}

// Read parses the sidecar for an artifact path.
func Read(artifactPath string) (*Metadata, error) {
	data, err := os.ReadFile(SidecarPath(artifactPath))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSidecar, SidecarPath(artifactPath))
	}

	meta := &Metadata{}

	for _, line := range strings.Split(string(data), "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])

		switch key {
		case "VERSION":
			meta.Version = val
		case "LAST_MODIFY":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				meta.LastModify = t
			}
		case "HASH":
			meta.Hash = val
		}
	}

	return meta, nil
}

// Verify checks if the artifact content matches the hash in its sidecar.
func Verify(artifactPath string, content []byte) (bool, error) {
	meta, err := Read(artifactPath)
	if err != nil {
		return false, err
	}

	if meta.Hash == "" {
		return false, ErrNoHashFound
	}

	calculated := CalculateHash(content)
	if calculated != meta.Hash {
		return false, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, meta.Hash, calculated)
	}

	return true, nil
}
