package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"math/big"
)

const tokenLength = 32

// tokenChars is the 62-symbol alphabet registry tokens are drawn from.
const tokenChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateToken produces a fresh registry token from a cryptographically
// secure source. The returned plaintext is handed to the user exactly once
// and never stored.
func GenerateToken() (string, error) {
	buf := make([]byte, tokenLength)
	max := big.NewInt(int64(len(tokenChars)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random token: %w", err)
		}
		buf[i] = tokenChars[n.Int64()]
	}
	return string(buf), nil
}

// HashToken returns the SHA-256 digest of the raw token bytes. The digest
// is the only form of the credential the store ever sees.
func HashToken(token []byte) []byte {
	sum := sha256.Sum256(token)
	return sum[:]
}
