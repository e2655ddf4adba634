package archive

import (
	"github.com/Masterminds/semver"
)

// Store holds the crate archive bytes for published versions.
type Store interface {
	// Store writes the archive for a version. The write is unconditional:
	// re-publishing guards live in the index, not here.
	Store(crateName string, version *semver.Version, data []byte) error

	// Get returns the archive bytes for a version.
	Get(crateName string, version *semver.Version) ([]byte, error)
}
