package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver"

	"github.com/raktar-project/raktar/pkg/apperr"
)

const (
	// DefaultArchivesPath is the base directory for stored crate archives
	DefaultArchivesPath = "/var/lib/raktar/crates"

	// keyPrefix namespaces archive keys within the store
	keyPrefix = "crates"
)

// LocalStore implements Store on the local filesystem
type LocalStore struct {
	basePath string
}

// NewLocalStore creates a filesystem-backed archive store
func NewLocalStore(basePath string) (*LocalStore, error) {
	if basePath == "" {
		basePath = DefaultArchivesPath
	}

	// Ensure base directory exists
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archives directory: %w", err)
	}

	return &LocalStore{
		basePath: basePath,
	}, nil
}

// crateKey is the object key layout shared with external tooling:
// <prefix>/<name>/<name>-<version>.crate
func (s *LocalStore) crateKey(crateName string, version *semver.Version) string {
	return filepath.Join(keyPrefix, crateName, fmt.Sprintf("%s-%s.crate", crateName, version))
}

// Store writes the archive bytes for a version
func (s *LocalStore) Store(crateName string, version *semver.Version, data []byte) error {
	path := filepath.Join(s.basePath, s.crateKey(crateName, version))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create crate directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write crate archive: %w", err)
	}

	return nil
}

// Get returns the archive bytes for a version
func (s *LocalStore) Get(crateName string, version *semver.Version) ([]byte, error) {
	path := filepath.Join(s.basePath, s.crateKey(crateName, version))

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, apperr.NonExistentCrateVersion(crateName, version.String())
	}
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to read crate archive: %w", err))
	}

	return data, nil
}
