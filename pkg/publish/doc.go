/*
Package publish implements the ingestion pipeline for `cargo publish`
uploads: decoding the framed request body, computing the archive checksum,
flattening the metadata into the index record, and dispatching the commit
to the crate repository and archive store in that order.
*/
package publish
