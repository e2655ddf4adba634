/*
Package archive stores the uploaded crate archive bytes.

Archives are bulk blobs keyed by (name, version); the index in pkg/storage
is the source of truth for which versions exist. A publish writes the index
record before the archive, so a version can transiently reference an
archive that is not there yet — downloads for it fail with a not-found
until the client re-publishes.
*/
package archive
