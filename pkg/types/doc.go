/*
Package types defines the registry's domain entities.

These are plain value types shared across packages: the full publish payload
(Metadata), the per-version index record served to cargo (PackageInfo), the
per-crate head pointer (CrateSummary), users, tokens, and the authenticated
principal attached to requests.

PackageInfo and Metadata share (name, version) identity. PackageInfo is
immutable after creation except for its yanked flag; Metadata is never
updated. CrateSummary is the only mutable record per crate: its owners set
grows through owner additions, and max_version/description advance when a
higher version is published.

Versions are Masterminds semver values so comparisons and sorting follow
semver precedence rather than string order.
*/
package types
