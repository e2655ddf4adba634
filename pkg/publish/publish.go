package publish

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/raktar-project/raktar/pkg/apperr"
	"github.com/raktar-project/raktar/pkg/archive"
	"github.com/raktar-project/raktar/pkg/log"
	"github.com/raktar-project/raktar/pkg/storage"
	"github.com/raktar-project/raktar/pkg/types"
)

// Warnings is the publish response payload cargo expects. The registry
// accepts everything it can store, so the lists stay empty.
type Warnings struct {
	InvalidCategories []string `json:"invalid_categories"`
	InvalidBadges     []string `json:"invalid_badges"`
	Other             []string `json:"other"`
}

// Publisher runs the publish pipeline: frame parsing, checksum, index
// commit, archive write.
type Publisher struct {
	crates   storage.CrateRepository
	archives archive.Store
	logger   zerolog.Logger
}

// NewPublisher creates a publisher over the given stores
func NewPublisher(crates storage.CrateRepository, archives archive.Store) *Publisher {
	return &Publisher{
		crates:   crates,
		archives: archives,
		logger:   log.WithComponent("publish"),
	}
}

// Publish ingests one publish request body for the authenticated user.
//
// The index commit precedes the archive write: once the client sees a
// success it can immediately resolve and download. A failure in between
// leaves the index referencing an absent archive; downloads for that
// version fail until the client re-publishes.
func (p *Publisher) Publish(user types.AuthenticatedUser, body []byte) (*Warnings, *types.Metadata, error) {
	metadataBytes, crateBytes, err := ParseFrame(body)
	if err != nil {
		return nil, nil, err
	}

	var metadata types.Metadata
	if err := json.Unmarshal(metadataBytes, &metadata); err != nil {
		return nil, nil, apperr.BadRequest("malformed publish request: invalid metadata JSON")
	}
	if metadata.Name == "" || metadata.Vers == nil {
		return nil, nil, apperr.BadRequest("malformed publish request: metadata is missing name or vers")
	}

	digest := sha256.Sum256(crateBytes)
	checksum := hex.EncodeToString(digest[:])
	info := types.PackageInfoFromMetadata(metadata, checksum)

	p.logger.Info().
		Str("crate", metadata.Name).
		Str("vers", metadata.Vers.String()).
		Uint32("user_id", user.ID).
		Msg("publishing new crate version")

	if err := p.crates.StorePackageInfo(metadata.Name, metadata.Vers, info, metadata, user); err != nil {
		return nil, nil, err
	}
	if err := p.archives.Store(metadata.Name, metadata.Vers, crateBytes); err != nil {
		return nil, nil, err
	}

	warnings := &Warnings{
		InvalidCategories: []string{},
		InvalidBadges:     []string{},
		Other:             []string{},
	}
	return warnings, &metadata, nil
}
