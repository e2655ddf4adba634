package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAndGetToken(t *testing.T) {
	store := newTestStore(t)

	record, err := store.StoreToken([]byte("secret-token"), "laptop", 7)
	require.NoError(t, err)
	assert.NotEmpty(t, record.TokenID)
	assert.Equal(t, "laptop", record.Name)
	assert.Equal(t, uint32(7), record.UserID)

	found, err := store.GetToken([]byte("secret-token"))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, record.TokenID, found.TokenID)

	// An unknown credential is not an error.
	found, err = store.GetToken([]byte("secret-tokenx"))
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestListTokens(t *testing.T) {
	store := newTestStore(t)

	first, err := store.StoreToken([]byte("token-one"), "laptop", 7)
	require.NoError(t, err)
	second, err := store.StoreToken([]byte("token-two"), "ci", 7)
	require.NoError(t, err)
	_, err = store.StoreToken([]byte("token-three"), "other", 8)
	require.NoError(t, err)

	tokens, err := store.ListTokens(7)
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	ids := []string{tokens[0].TokenID, tokens[1].TokenID}
	assert.Contains(t, ids, first.TokenID)
	assert.Contains(t, ids, second.TokenID)

	tokens, err = store.ListTokens(9)
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestDeleteToken(t *testing.T) {
	store := newTestStore(t)

	record, err := store.StoreToken([]byte("secret-token"), "laptop", 7)
	require.NoError(t, err)

	require.NoError(t, store.DeleteToken(7, record.TokenID))

	found, err := store.GetToken([]byte("secret-token"))
	require.NoError(t, err)
	assert.Nil(t, found)

	tokens, err := store.ListTokens(7)
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestDeleteTokenUnknownIDIsNoOp(t *testing.T) {
	store := newTestStore(t)

	record, err := store.StoreToken([]byte("secret-token"), "laptop", 7)
	require.NoError(t, err)

	require.NoError(t, store.DeleteToken(7, "not-a-token-id"))

	// Another user cannot revoke the token either.
	require.NoError(t, store.DeleteToken(8, record.TokenID))

	found, err := store.GetToken([]byte("secret-token"))
	require.NoError(t, err)
	assert.NotNil(t, found)
}
