package storage

import (
	"github.com/Masterminds/semver"

	"github.com/raktar-project/raktar/pkg/types"
)

// CrateRepository holds the per-crate index state: version records, the
// full publish metadata, and the crate summary head pointer.
type CrateRepository interface {
	// GetPackageInfo returns the crate's index document: one JSON object
	// per published version, joined with newlines.
	GetPackageInfo(crateName string) (string, error)

	// StorePackageInfo commits a published version. The first publish of
	// a crate atomically creates the summary head pointer alongside the
	// version record; later publishes require the publisher to be an
	// owner and advance the head pointer only for a higher version.
	StorePackageInfo(crateName string, version *semver.Version, info types.PackageInfo, metadata types.Metadata, user types.AuthenticatedUser) error

	// SetYanked flips the yanked flag on an existing version record.
	SetYanked(crateName string, version *semver.Version, yanked bool) error

	// ListOwners resolves the crate's owner ids to user records.
	ListOwners(crateName string) ([]types.User, error)

	// AddOwners unions the given ids into the crate's owner set.
	AddOwners(crateName string, userIDs []types.UserID) error

	// GetCrateSummary returns the head pointer, or nil when the crate has
	// never been published.
	GetCrateSummary(crateName string) (*types.CrateSummary, error)

	// GetAllCrateDetails lists crate summaries, optionally restricted to
	// names starting with filter. The limit is capped server-side.
	GetAllCrateDetails(filter string, limit int) ([]types.CrateSummary, error)

	// GetCrateMetadata returns the full publish payload for one version,
	// or nil when absent.
	GetCrateMetadata(crateName string, version *semver.Version) (*types.Metadata, error)

	// ListCrateVersions returns the published versions in the store's
	// natural sort-key order, which is lexicographic rather than semver.
	// Callers needing semver order must sort.
	ListCrateVersions(crateName string) ([]*semver.Version, error)
}

// TokenRepository stores API tokens keyed by the hash of the raw
// credential.
type TokenRepository interface {
	// StoreToken persists a fresh token record for the raw credential.
	StoreToken(token []byte, name string, userID types.UserID) (*types.Token, error)

	// GetToken looks a token up by its raw credential bytes. An unknown
	// credential returns nil with no error.
	GetToken(token []byte) (*types.Token, error)

	// ListTokens enumerates the user's tokens.
	ListTokens(userID types.UserID) ([]*types.Token, error)

	// DeleteToken revokes one of the user's tokens. An unknown token id
	// is a no-op.
	DeleteToken(userID types.UserID, tokenID string) error
}

// UserRepository stores registry users with dense, monotonically
// assigned numeric ids.
type UserRepository interface {
	// UpdateOrCreateUser is the idempotent upsert driven by the identity
	// provider's claims. New logins get the next free id; existing users
	// have divergent profile fields overwritten.
	UpdateOrCreateUser(data types.UserData) (*types.User, error)

	// GetUserByID returns the user, or nil when absent.
	GetUserByID(userID types.UserID) (*types.User, error)

	// GetUserByLogin returns the user, or nil when absent.
	GetUserByLogin(login string) (*types.User, error)

	// GetUsers lists all users.
	GetUsers() ([]types.User, error)
}

// Repository is the full persistence surface of the registry.
type Repository interface {
	CrateRepository
	TokenRepository
	UserRepository

	Close() error
}
