package storage

import (
	"path/filepath"
	"testing"

	"github.com/Masterminds/semver"
	"github.com/stretchr/testify/require"

	"github.com/raktar-project/raktar/pkg/types"
)

// newTestStore opens a fresh store in a temp dir
func newTestStore(t *testing.T) *BoltStore {
	t.Helper()

	store, err := NewBoltStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

// newTestUser creates a user and returns its record
func newTestUser(t *testing.T, store *BoltStore, login string) *types.User {
	t.Helper()

	user, err := store.UpdateOrCreateUser(types.UserData{
		Login:      login,
		GivenName:  "Test",
		FamilyName: "User",
	})
	require.NoError(t, err)

	return user
}

func mustVersion(t *testing.T, raw string) *semver.Version {
	t.Helper()

	version, err := semver.NewVersion(raw)
	require.NoError(t, err)
	return version
}

// testMetadata builds a minimal publish payload
func testMetadata(t *testing.T, name, version, description string) types.Metadata {
	t.Helper()

	return types.Metadata{
		Name:        name,
		Vers:        mustVersion(t, version),
		Features:    map[string][]string{},
		Description: &description,
	}
}

// storeVersion publishes one version on behalf of user
func storeVersion(t *testing.T, store *BoltStore, user *types.User, name, version, description string) error {
	t.Helper()

	metadata := testMetadata(t, name, version, description)
	info := types.PackageInfoFromMetadata(metadata, "cafebabe")
	return store.StorePackageInfo(name, metadata.Vers, info, metadata, types.AuthenticatedUser{ID: user.ID})
}
