/*
Package auth implements the registry's credential handling.

Two authenticators gate the HTTP surface. The cargo-facing endpoints use
registry tokens: 32-character alphanumeric credentials generated here, of
which only the SHA-256 hash is ever persisted. The management endpoints use
the identity provider's JWT, whose signature has already been checked by the
SSO gateway in front of the service.

A good chunk of the token scheme follows the official crates.io code.
*/
package auth
