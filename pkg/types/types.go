package types

import (
	"github.com/Masterminds/semver"
)

// DependencyKind defines how a dependency is used by the depending crate
type DependencyKind string

const (
	DependencyKindNormal DependencyKind = "normal"
	DependencyKindBuild  DependencyKind = "build"
	DependencyKindDev    DependencyKind = "dev"
)

// MetadataDependency is a dependency exactly as cargo uploads it in the
// publish payload.
type MetadataDependency struct {
	Name               string         `json:"name"`
	VersionReq         string         `json:"version_req"`
	Features           []string       `json:"features"`
	Optional           bool           `json:"optional"`
	DefaultFeatures    bool           `json:"default_features"`
	Target             *string        `json:"target"`
	Kind               DependencyKind `json:"kind,omitempty"`
	Registry           *string        `json:"registry"`
	ExplicitNameInToml *string        `json:"explicit_name_in_toml,omitempty"`
}

// Metadata is the full publish payload in the format `cargo publish`
// uploads it. It is stored verbatim alongside the index record and never
// updated afterwards.
type Metadata struct {
	Name          string                       `json:"name"`
	Vers          *semver.Version              `json:"vers"`
	Deps          []MetadataDependency         `json:"deps"`
	Features      map[string][]string          `json:"features"`
	Authors       []string                     `json:"authors"`
	Description   *string                      `json:"description"`
	Documentation *string                      `json:"documentation"`
	Homepage      *string                      `json:"homepage"`
	Readme        *string                      `json:"readme"`
	ReadmeFile    *string                      `json:"readme_file"`
	Keywords      []string                     `json:"keywords"`
	Categories    []string                     `json:"categories"`
	License       *string                      `json:"license"`
	LicenseFile   *string                      `json:"license_file"`
	Repository    *string                      `json:"repository"`
	Badges        map[string]map[string]string `json:"badges"`
	Links         *string                      `json:"links"`
	Yanked        bool                         `json:"yanked"`
}

// Dependency is a dependency in the shape the index serves it.
type Dependency struct {
	Name            string         `json:"name"`
	Req             string         `json:"req"`
	Features        []string       `json:"features"`
	Optional        bool           `json:"optional"`
	DefaultFeatures bool           `json:"default_features"`
	Target          *string        `json:"target"`
	Kind            DependencyKind `json:"kind"`
	Registry        *string        `json:"registry"`
	Package         *string        `json:"package"`
}

// PackageInfo is the per-version index record as described in the cargo
// registry index reference. One JSON line per published version is served
// to the client at resolve time.
type PackageInfo struct {
	Name     string              `json:"name"`
	Vers     *semver.Version     `json:"vers"`
	Deps     []Dependency        `json:"deps"`
	Cksum    string              `json:"cksum"`
	Features map[string][]string `json:"features"`
	Yanked   bool                `json:"yanked"`
	Links    *string             `json:"links"`
}

// PackageInfoFromMetadata flattens a publish payload into the index record
// for the uploaded version. checksum is the lowercase hex SHA-256 of the
// crate archive bytes.
func PackageInfoFromMetadata(metadata Metadata, checksum string) PackageInfo {
	deps := make([]Dependency, 0, len(metadata.Deps))
	for _, dep := range metadata.Deps {
		deps = append(deps, dependencyFromMetadata(dep))
	}

	// The index always serves a features object, even when the upload
	// omitted it.
	features := metadata.Features
	if features == nil {
		features = map[string][]string{}
	}

	return PackageInfo{
		Name:     metadata.Name,
		Vers:     metadata.Vers,
		Deps:     deps,
		Cksum:    checksum,
		Features: features,
		Yanked:   metadata.Yanked,
		Links:    metadata.Links,
	}
}

// dependencyFromMetadata converts an uploaded dependency into its index
// form. When the dependency is renamed in the depending crate's manifest,
// the index record's name carries the local alias and package carries the
// upstream name.
func dependencyFromMetadata(dep MetadataDependency) Dependency {
	name := dep.Name
	var pkg *string
	if dep.ExplicitNameInToml != nil {
		upstream := dep.Name
		name = *dep.ExplicitNameInToml
		pkg = &upstream
	}

	kind := dep.Kind
	if kind == "" {
		kind = DependencyKindNormal
	}

	return Dependency{
		Name:            name,
		Req:             dep.VersionReq,
		Features:        dep.Features,
		Optional:        dep.Optional,
		DefaultFeatures: dep.DefaultFeatures,
		Target:          dep.Target,
		Kind:            kind,
		Registry:        dep.Registry,
		Package:         pkg,
	}
}

// CrateSummary is the head pointer for a crate: the owner set, the highest
// published version and its description. Exactly one summary exists per
// published crate.
type CrateSummary struct {
	Name        string          `json:"name"`
	Owners      []UserID        `json:"owners"`
	MaxVersion  *semver.Version `json:"max_version"`
	Description string          `json:"description"`
}

// IsOwner reports whether the user is in the crate's owner set.
func (s *CrateSummary) IsOwner(userID UserID) bool {
	for _, owner := range s.Owners {
		if owner == userID {
			return true
		}
	}
	return false
}
