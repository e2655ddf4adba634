package storage

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	bolt "go.etcd.io/bbolt"

	"github.com/raktar-project/raktar/pkg/log"
)

var (
	// Bucket names
	bucketRecords    = []byte("records")
	bucketUserTokens = []byte("user_tokens")
)

// errConditionFailed is the store-level conditional put failure. It never
// escapes this package: every caller translates it into the taxonomy
// error appropriate for its operation.
var errConditionFailed = errors.New("conditional check failed")

// BoltStore implements Repository using BoltDB
type BoltStore struct {
	db     *bolt.DB
	logger zerolog.Logger
}

// NewBoltStore opens (creating if necessary) a BoltDB-backed store
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketRecords, bucketUserTokens} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{
		db:     db,
		logger: log.WithComponent("storage"),
	}, nil
}

// Close closes the database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// partition returns the bucket holding one partition's records, or nil
// when nothing was ever written under the partition key.
func partition(tx *bolt.Tx, pk string) *bolt.Bucket {
	return tx.Bucket(bucketRecords).Bucket([]byte(pk))
}

func ensurePartition(tx *bolt.Tx, pk string) (*bolt.Bucket, error) {
	b, err := tx.Bucket(bucketRecords).CreateBucketIfNotExists([]byte(pk))
	if err != nil {
		return nil, fmt.Errorf("failed to open partition %s: %w", pk, err)
	}
	return b, nil
}

func getRecord(tx *bolt.Tx, pk, sk string) []byte {
	b := partition(tx, pk)
	if b == nil {
		return nil
	}
	return b.Get([]byte(sk))
}

// putIfAbsent writes the record only when no record exists under the sort
// key yet.
func putIfAbsent(b *bolt.Bucket, sk string, value []byte) error {
	if b.Get([]byte(sk)) != nil {
		return errConditionFailed
	}
	return b.Put([]byte(sk), value)
}
