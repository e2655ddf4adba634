package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/raktar-project/raktar/pkg/types"
)

// StoreToken persists a fresh token record keyed by the hash of the raw
// credential, plus a user_tokens index entry for per-user listing.
func (s *BoltStore) StoreToken(token []byte, name string, userID types.UserID) (*types.Token, error) {
	record := types.Token{
		TokenID: uuid.NewString(),
		Name:    name,
		UserID:  userID,
	}
	value, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode token record: %w", err)
	}

	pk := tokenKey(token)
	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := ensurePartition(tx, pk)
		if err != nil {
			return err
		}
		if err := b.Put([]byte(tokenSortKey), value); err != nil {
			return err
		}
		return tx.Bucket(bucketUserTokens).Put([]byte(userTokenIndexKey(userID, pk)), []byte(pk))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	return &record, nil
}

// GetToken looks up a token by its raw credential bytes. An unknown
// credential is not an error; it returns nil.
func (s *BoltStore) GetToken(token []byte) (*types.Token, error) {
	var record *types.Token

	err := s.db.View(func(tx *bolt.Tx) error {
		raw := getRecord(tx, tokenKey(token), tokenSortKey)
		if raw == nil {
			return nil
		}
		record = &types.Token{}
		return json.Unmarshal(raw, record)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}

	return record, nil
}

// ListTokens enumerates the user's tokens through the user_tokens index.
func (s *BoltStore) ListTokens(userID types.UserID) ([]*types.Token, error) {
	var tokens []*types.Token

	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketUserTokens).Cursor()
		prefix := []byte(userTokenIndexPrefix(userID))
		for k, pk := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, pk = c.Next() {
			raw := getRecord(tx, string(pk), tokenSortKey)
			if raw == nil {
				continue
			}
			record := &types.Token{}
			if err := json.Unmarshal(raw, record); err != nil {
				return fmt.Errorf("failed to decode token record: %w", err)
			}
			tokens = append(tokens, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// DeleteToken revokes the user's token with the given id. A token id that
// doesn't match any of the user's tokens is a silent no-op.
func (s *BoltStore) DeleteToken(userID types.UserID, tokenID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketUserTokens).Cursor()
		prefix := []byte(userTokenIndexPrefix(userID))
		for k, pk := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, pk = c.Next() {
			raw := getRecord(tx, string(pk), tokenSortKey)
			if raw == nil {
				continue
			}
			var record types.Token
			if err := json.Unmarshal(raw, &record); err != nil {
				return fmt.Errorf("failed to decode token record: %w", err)
			}
			if record.TokenID != tokenID {
				continue
			}

			if err := tx.Bucket(bucketRecords).DeleteBucket(pk); err != nil {
				return fmt.Errorf("failed to delete token record: %w", err)
			}
			return c.Delete()
		}
		return nil
	})
}
