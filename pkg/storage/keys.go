package storage

import (
	"encoding/base64"
	"fmt"

	"github.com/Masterminds/semver"

	"github.com/raktar-project/raktar/pkg/auth"
	"github.com/raktar-project/raktar/pkg/types"
)

// Partition keys for the singleton partitions.
const (
	cratesPartitionKey = "CRATES"
	usersPartitionKey  = "USERS"
)

// tokenSortKey is the fixed sort key of token records; the hash in the
// partition key already identifies the token.
const tokenSortKey = "TOK"

func packageKey(crateName string) string {
	return "CRT#" + crateName
}

func packageVersionKey(version *semver.Version) string {
	return "V#" + version.String()
}

func packageMetadataKey(version *semver.Version) string {
	return "META#" + version.String()
}

func userLoginKey(login string) string {
	return "LOGIN#" + login
}

func userIDKey(userID types.UserID) string {
	return fmt.Sprintf("ID#%06d", userID)
}

// tokenKey derives a token's partition key from the raw credential. Only
// the hash ever reaches the store.
func tokenKey(token []byte) string {
	return "TOK#" + base64.StdEncoding.EncodeToString(auth.HashToken(token))
}

func userTokenIndexKey(userID types.UserID, pk string) string {
	return fmt.Sprintf("%06d#%s", userID, pk)
}

func userTokenIndexPrefix(userID types.UserID) string {
	return fmt.Sprintf("%06d#", userID)
}
