package archive

import (
	"testing"

	"github.com/Masterminds/semver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raktar-project/raktar/pkg/apperr"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	version := semver.MustParse("0.1.0")
	data := []byte{0x00, 0x01, 0x02, 0x03, 0x04}

	require.NoError(t, store.Store("widget", version, data))

	got, err := store.Get("widget", version)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestLocalStoreOverwrite(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	version := semver.MustParse("0.1.0")
	require.NoError(t, store.Store("widget", version, []byte{0x01}))
	require.NoError(t, store.Store("widget", version, []byte{0x02}))

	got, err := store.Get("widget", version)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02}, got)
}

func TestLocalStoreMissingArchive(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get("widget", semver.MustParse("0.1.0"))
	require.Error(t, err)
	assert.Equal(t, apperr.KindNonExistentCrateVersion, apperr.KindOf(err))
}

func TestCrateKeyLayout(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	key := store.crateKey("widget", semver.MustParse("0.1.0"))
	assert.Equal(t, "crates/widget/widget-0.1.0.crate", key)
}
