package auth

import (
	"crypto/sha256"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken()
	require.NoError(t, err)

	assert.Len(t, token, 32)
	for _, c := range token {
		assert.True(t, strings.ContainsRune(tokenChars, c), "unexpected character %q", c)
	}
}

func TestGenerateTokenIsNotRepeated(t *testing.T) {
	first, err := GenerateToken()
	require.NoError(t, err)
	second, err := GenerateToken()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashToken(t *testing.T) {
	digest := sha256.Sum256([]byte("secret"))

	assert.Equal(t, digest[:], HashToken([]byte("secret")))

	// Hashing is deterministic and sensitive to every byte.
	assert.Equal(t, HashToken([]byte("secret")), HashToken([]byte("secret")))
	assert.NotEqual(t, HashToken([]byte("secret")), HashToken([]byte("secret ")))
}
