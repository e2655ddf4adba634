package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/sync/errgroup"

	"github.com/raktar-project/raktar/pkg/apperr"
	"github.com/raktar-project/raktar/pkg/metrics"
	"github.com/raktar-project/raktar/pkg/types"
)

// maxCrateDetailsLimit caps how many summaries a single browse query may
// return regardless of what the caller asked for.
const maxCrateDetailsLimit = 20

// GetPackageInfo returns the index document for a crate: each stored
// version record serialized as one JSON object, joined with newlines.
func (s *BoltStore) GetPackageInfo(crateName string) (string, error) {
	var lines []string

	err := s.db.View(func(tx *bolt.Tx) error {
		b := partition(tx, packageKey(crateName))
		if b == nil {
			return nil
		}

		c := b.Cursor()
		prefix := []byte("V#")
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var info types.PackageInfo
			if err := json.Unmarshal(v, &info); err != nil {
				return fmt.Errorf("failed to decode version record %s: %w", k, err)
			}
			line, err := json.Marshal(info)
			if err != nil {
				return fmt.Errorf("failed to encode index line: %w", err)
			}
			lines = append(lines, string(line))
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if len(lines) == 0 {
		return "", apperr.NonExistentPackageInfo(crateName)
	}

	return strings.Join(lines, "\n"), nil
}

// StorePackageInfo commits a published version together with its full
// metadata record.
//
// The summary head pointer is the only mutable record per crate. Creating
// it in the same transaction as the first version record gives "new crate
// created iff first version stored"; later versions only need version
// level uniqueness, and the head pointer update is a plain overwrite.
func (s *BoltStore) StorePackageInfo(crateName string, version *semver.Version, info types.PackageInfo, metadata types.Metadata, user types.AuthenticatedUser) error {
	infoValue, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to encode package info: %w", err)
	}
	metadataValue, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	description := ""
	if metadata.Description != nil {
		description = *metadata.Description
	}

	newCrate := false
	err = s.db.Update(func(tx *bolt.Tx) error {
		crates, err := ensurePartition(tx, cratesPartitionKey)
		if err != nil {
			return err
		}
		versions, err := ensurePartition(tx, packageKey(crateName))
		if err != nil {
			return err
		}

		rawSummary := crates.Get([]byte(crateName))
		if rawSummary == nil {
			// this is a brand new crate
			newCrate = true
			summary := types.CrateSummary{
				Name:        crateName,
				Owners:      []types.UserID{user.ID},
				MaxVersion:  version,
				Description: description,
			}
			summaryValue, err := json.Marshal(summary)
			if err != nil {
				return fmt.Errorf("failed to encode crate summary: %w", err)
			}
			if err := putIfAbsent(crates, crateName, summaryValue); err != nil {
				if errors.Is(err, errConditionFailed) {
					return apperr.ConflictOnNewCrate(crateName)
				}
				return err
			}
			if err := versions.Put([]byte(packageVersionKey(version)), infoValue); err != nil {
				return err
			}
		} else {
			// this is an update to an existing crate
			var summary types.CrateSummary
			if err := json.Unmarshal(rawSummary, &summary); err != nil {
				return fmt.Errorf("failed to decode crate summary: %w", err)
			}

			if !summary.IsOwner(user.ID) {
				return apperr.Unauthorized("user is not an owner of this package")
			}

			// The head pointer tracks the latest version. Publishing a
			// non-head version is valid and must not touch it.
			if summary.MaxVersion.LessThan(version) {
				summary.MaxVersion = version
				summary.Description = description
				summaryValue, err := json.Marshal(summary)
				if err != nil {
					return fmt.Errorf("failed to encode crate summary: %w", err)
				}
				if err := crates.Put([]byte(crateName), summaryValue); err != nil {
					return err
				}
				if err := versions.Put([]byte(packageVersionKey(version)), infoValue); err != nil {
					return err
				}
			} else {
				if err := putIfAbsent(versions, packageVersionKey(version), infoValue); err != nil {
					if errors.Is(err, errConditionFailed) {
						return apperr.DuplicateCrateVersion(crateName, version.String())
					}
					return err
				}
			}
		}

		return versions.Put([]byte(packageMetadataKey(version)), metadataValue)
	})
	if err != nil {
		return err
	}

	if newCrate {
		metrics.CratesTotal.Inc()
	}
	s.logger.Info().
		Str("crate", crateName).
		Str("vers", version.String()).
		Uint32("user_id", user.ID).
		Msg("stored package info")
	return nil
}

// SetYanked flips the yanked flag on an existing version record.
func (s *BoltStore) SetYanked(crateName string, version *semver.Version, yanked bool) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := partition(tx, packageKey(crateName))
		if b == nil {
			return errConditionFailed
		}

		key := []byte(packageVersionKey(version))
		raw := b.Get(key)
		if raw == nil {
			return errConditionFailed
		}

		var info types.PackageInfo
		if err := json.Unmarshal(raw, &info); err != nil {
			return fmt.Errorf("failed to decode version record: %w", err)
		}
		info.Yanked = yanked

		value, err := json.Marshal(info)
		if err != nil {
			return fmt.Errorf("failed to encode version record: %w", err)
		}
		return b.Put(key, value)
	})
	if errors.Is(err, errConditionFailed) {
		// The same condition failure means "no such version" here, not a
		// duplicate: translate at the call site.
		return apperr.NonExistentCrateVersion(crateName, version.String())
	}
	if err != nil {
		s.logger.Error().Err(err).Str("crate", crateName).Msg("failed to set yanked flag")
		return err
	}
	return nil
}

// ListOwners resolves the crate's owner ids to user records. The point
// reads run concurrently.
func (s *BoltStore) ListOwners(crateName string) ([]types.User, error) {
	summary, err := s.GetCrateSummary(crateName)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, apperr.NonExistentPackageInfo(crateName)
	}

	users := make([]types.User, len(summary.Owners))
	var g errgroup.Group
	for i, ownerID := range summary.Owners {
		g.Go(func() error {
			user, err := s.GetUserByID(ownerID)
			if err != nil {
				return err
			}
			if user == nil {
				return fmt.Errorf("owner %d of %s has no user record", ownerID, crateName)
			}
			users[i] = *user
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return users, nil
}

// AddOwners unions the given user ids into the crate's owner set. Ids
// that are already members are fine; set semantics apply.
func (s *BoltStore) AddOwners(crateName string, userIDs []types.UserID) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		crates := partition(tx, cratesPartitionKey)
		var raw []byte
		if crates != nil {
			raw = crates.Get([]byte(crateName))
		}
		if raw == nil {
			return apperr.NonExistentCrate(crateName)
		}

		var summary types.CrateSummary
		if err := json.Unmarshal(raw, &summary); err != nil {
			return fmt.Errorf("failed to decode crate summary: %w", err)
		}

		members := make(map[types.UserID]struct{}, len(summary.Owners))
		for _, id := range summary.Owners {
			members[id] = struct{}{}
		}
		for _, id := range userIDs {
			if _, ok := members[id]; !ok {
				members[id] = struct{}{}
				summary.Owners = append(summary.Owners, id)
			}
		}
		sort.Slice(summary.Owners, func(i, j int) bool { return summary.Owners[i] < summary.Owners[j] })

		value, err := json.Marshal(summary)
		if err != nil {
			return fmt.Errorf("failed to encode crate summary: %w", err)
		}
		return crates.Put([]byte(crateName), value)
	})
}

// CrateCount returns the number of crates with at least one published
// version. Used to seed the crates gauge at startup.
func (s *BoltStore) CrateCount() (int, error) {
	count := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		if b := partition(tx, cratesPartitionKey); b != nil {
			count = b.Stats().KeyN
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// GetCrateSummary returns the head pointer, or nil when the crate has
// never been published.
func (s *BoltStore) GetCrateSummary(crateName string) (*types.CrateSummary, error) {
	var summary *types.CrateSummary

	err := s.db.View(func(tx *bolt.Tx) error {
		raw := getRecord(tx, cratesPartitionKey, crateName)
		if raw == nil {
			return nil
		}
		summary = &types.CrateSummary{}
		return json.Unmarshal(raw, summary)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read crate summary: %w", err)
	}

	return summary, nil
}

// GetAllCrateDetails lists crate summaries in name order, optionally
// restricted to names starting with filter.
func (s *BoltStore) GetAllCrateDetails(filter string, limit int) ([]types.CrateSummary, error) {
	if limit <= 0 || limit > maxCrateDetailsLimit {
		limit = maxCrateDetailsLimit
	}

	var crates []types.CrateSummary
	err := s.db.View(func(tx *bolt.Tx) error {
		b := partition(tx, cratesPartitionKey)
		if b == nil {
			return nil
		}

		c := b.Cursor()
		prefix := []byte(filter)
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var summary types.CrateSummary
			if err := json.Unmarshal(v, &summary); err != nil {
				return fmt.Errorf("failed to decode crate summary %s: %w", k, err)
			}
			crates = append(crates, summary)
			if len(crates) == limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return crates, nil
}

// GetCrateMetadata returns the stored publish payload for one version, or
// nil when absent.
func (s *BoltStore) GetCrateMetadata(crateName string, version *semver.Version) (*types.Metadata, error) {
	var metadata *types.Metadata

	err := s.db.View(func(tx *bolt.Tx) error {
		raw := getRecord(tx, packageKey(crateName), packageMetadataKey(version))
		if raw == nil {
			return nil
		}
		metadata = &types.Metadata{}
		return json.Unmarshal(raw, metadata)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read crate metadata: %w", err)
	}

	return metadata, nil
}

// ListCrateVersions returns the published versions of a crate. Order
// follows the store's sort keys, which is lexicographic: V#0.10.0 sorts
// before V#0.2.0. Callers wanting semver order must sort.
func (s *BoltStore) ListCrateVersions(crateName string) ([]*semver.Version, error) {
	var versions []*semver.Version

	err := s.db.View(func(tx *bolt.Tx) error {
		b := partition(tx, packageKey(crateName))
		if b == nil {
			return nil
		}

		c := b.Cursor()
		prefix := []byte("V#")
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			version, err := semver.NewVersion(string(bytes.TrimPrefix(k, prefix)))
			if err != nil {
				return fmt.Errorf("failed to parse stored version key %s: %w", k, err)
			}
			versions = append(versions, version)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return versions, nil
}
