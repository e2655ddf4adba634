/*
Package storage persists all registry state in a single ordered key-value
namespace backed by BoltDB.

Every record lives under a (pk, sk) pair. The partition key selects a
nested bucket; within it, records are ordered by sort key, which gives the
prefix range scans the read paths need. The key scheme is a wire contract
shared with external tooling and must not change without a migration:

	PackageInfo      CRT#<name>              V#<version>
	Metadata         CRT#<name>              META#<version>
	CrateSummary     CRATES                  <name>
	User (by login)  USERS                   LOGIN#<login>
	User (by id)     USERS                   ID#<id, zero-padded to 6>
	Token            TOK#<base64(sha256)>    TOK

Tokens are additionally indexed in a user_tokens bucket keyed by
(user id, pk) for per-user enumeration.

Writes that the protocol requires to be atomic (the first publish of a
crate, the dual user records) are grouped into a single BoltDB update
transaction. Conditional puts are expressed as an existence check inside
the same transaction; the resulting condition failure is translated into a
taxonomy error at each call site, because the same failure means different
things to different operations.
*/
package storage
