package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/raktar-project/raktar/pkg/types"
)

// UpdateOrCreateUser is the idempotent upsert driven by the identity
// provider's claims.
//
// A new login allocates the next free id and writes the login record and
// the id record in one transaction, conditional on the login record not
// existing. An existing login has divergent profile fields overwritten in
// both records.
func (s *BoltStore) UpdateOrCreateUser(data types.UserData) (*types.User, error) {
	var user types.User

	err := s.db.Update(func(tx *bolt.Tx) error {
		users, err := ensurePartition(tx, usersPartitionKey)
		if err != nil {
			return err
		}

		raw := users.Get([]byte(userLoginKey(data.Login)))
		if raw == nil {
			nextID := nextUserID(users) + 1
			s.logger.Info().Uint32("user_id", nextID).Msg("next available user ID")

			user = data.IntoUser(nextID)
			value, err := json.Marshal(user)
			if err != nil {
				return fmt.Errorf("failed to encode user record: %w", err)
			}
			if err := putIfAbsent(users, userLoginKey(user.Login), value); err != nil {
				return fmt.Errorf("conflicting concurrent creation of user %s: %w", user.Login, err)
			}
			if err := putIfAbsent(users, userIDKey(user.ID), value); err != nil {
				return fmt.Errorf("conflicting concurrent allocation of user id %d: %w", user.ID, err)
			}
			return nil
		}

		if err := json.Unmarshal(raw, &user); err != nil {
			return fmt.Errorf("failed to decode user record: %w", err)
		}
		if user.Login == data.Login && user.GivenName == data.GivenName && user.FamilyName == data.FamilyName {
			return nil
		}

		user.Login = data.Login
		user.GivenName = data.GivenName
		user.FamilyName = data.FamilyName
		value, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("failed to encode user record: %w", err)
		}
		if err := users.Put([]byte(userLoginKey(user.Login)), value); err != nil {
			return err
		}
		return users.Put([]byte(userIDKey(user.ID)), value)
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// nextUserID returns the highest assigned user id, or 0 when no users
// exist. The zero-padded id keys make the last key in the prefix range
// the highest id.
func nextUserID(users *bolt.Bucket) types.UserID {
	c := users.Cursor()
	prefix := []byte("ID#")

	var last []byte
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		last = k
	}
	if last == nil {
		return 0
	}

	var id types.UserID
	if _, err := fmt.Sscanf(string(last), "ID#%06d", &id); err != nil {
		return 0
	}
	return id
}

// GetUserByID returns the user, or nil when absent.
func (s *BoltStore) GetUserByID(userID types.UserID) (*types.User, error) {
	return s.getUser(userIDKey(userID))
}

// GetUserByLogin returns the user, or nil when absent.
func (s *BoltStore) GetUserByLogin(login string) (*types.User, error) {
	return s.getUser(userLoginKey(login))
}

func (s *BoltStore) getUser(sk string) (*types.User, error) {
	var user *types.User

	err := s.db.View(func(tx *bolt.Tx) error {
		raw := getRecord(tx, usersPartitionKey, sk)
		if raw == nil {
			return nil
		}
		user = &types.User{}
		return json.Unmarshal(raw, user)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read user record: %w", err)
	}

	return user, nil
}

// GetUsers lists all users in id order.
func (s *BoltStore) GetUsers() ([]types.User, error) {
	var users []types.User

	err := s.db.View(func(tx *bolt.Tx) error {
		b := partition(tx, usersPartitionKey)
		if b == nil {
			return nil
		}

		c := b.Cursor()
		prefix := []byte("ID#")
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var user types.User
			if err := json.Unmarshal(v, &user); err != nil {
				return fmt.Errorf("failed to decode user record %s: %w", k, err)
			}
			users = append(users, user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}
