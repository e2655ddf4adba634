/*
Package api serves the registry's HTTP surface.

Two groups of endpoints share one router. The cargo-facing group speaks
the registry web API protocol — publish, yank, download, owners and the
sparse index lookups — and is gated by registry tokens. The management
group — token and user administration, crate browsing — is gated by the
identity provider's JWT and backs the web frontend.

Index lookup paths follow the sparse registry layout: one- and two-letter
crate names live under /1/ and /2/, three-letter names under
/3/<first letter>/, and everything else under the four-letter prefix
split. The path prefix must match the crate name or the lookup is
rejected.

All errors are rendered as {"errors":[{"detail":...}]} with the status
from the error taxonomy.
*/
package api
