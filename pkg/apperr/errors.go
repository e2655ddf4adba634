package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into one of the stable registry error
// categories. Kinds are part of the API contract: each one maps to a
// fixed HTTP status and a predictable response body, so callers across
// layers match on the kind rather than on error strings.
type Kind int

const (
	// KindInternal is any failure without a more specific classification.
	KindInternal Kind = iota

	// KindNonExistentPackageInfo means an index query found no versions.
	KindNonExistentPackageInfo

	// KindNonExistentCrate means the crate summary record is missing.
	KindNonExistentCrate

	// KindNonExistentCrateVersion means a version record or its archive
	// is missing.
	KindNonExistentCrateVersion

	// KindDuplicateCrateVersion means the version has already been
	// published.
	KindDuplicateCrateVersion

	// KindConflictOnNewCrate means two first publishes of the same crate
	// raced and this one lost. Clients may retry.
	KindConflictOnNewCrate

	// KindUnauthorized means the request carried no valid credential, or
	// the authenticated user is not permitted to perform the operation.
	KindUnauthorized

	// KindBadRequest means the request itself was malformed.
	KindBadRequest
)

// HTTPStatus returns the response status for the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNonExistentPackageInfo, KindNonExistentCrate, KindNonExistentCrateVersion:
		return http.StatusNotFound
	case KindDuplicateCrateVersion, KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error is the registry error type. Detail is safe to surface to
// clients; Err carries the underlying cause for logs only.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	return e.Detail
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the kind from err, or KindInternal if err is not an
// *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// NonExistentPackageInfo reports that no index entries exist for the crate.
func NonExistentPackageInfo(crateName string) *Error {
	return &Error{
		Kind:   KindNonExistentPackageInfo,
		Detail: fmt.Sprintf("package info for %s does not exist", crateName),
	}
}

// NonExistentCrate reports a missing crate summary.
func NonExistentCrate(crateName string) *Error {
	return &Error{
		Kind:   KindNonExistentCrate,
		Detail: fmt.Sprintf("crate %s does not exist", crateName),
	}
}

// NonExistentCrateVersion reports a missing version record or archive.
func NonExistentCrateVersion(crateName, version string) *Error {
	return &Error{
		Kind:   KindNonExistentCrateVersion,
		Detail: fmt.Sprintf("version %s for %s does not exist", version, crateName),
	}
}

// DuplicateCrateVersion reports an attempt to re-publish an existing version.
func DuplicateCrateVersion(crateName, version string) *Error {
	return &Error{
		Kind:   KindDuplicateCrateVersion,
		Detail: fmt.Sprintf("version %s for %s already exists", version, crateName),
	}
}

// ConflictOnNewCrate reports a lost race on the first publish of a crate.
func ConflictOnNewCrate(crateName string) *Error {
	return &Error{
		Kind:   KindConflictOnNewCrate,
		Detail: fmt.Sprintf("conflicting concurrent publish of new crate %s", crateName),
	}
}

// Unauthorized reports a missing or rejected credential.
func Unauthorized(detail string) *Error {
	return &Error{Kind: KindUnauthorized, Detail: detail}
}

// BadRequest reports a malformed request.
func BadRequest(detail string) *Error {
	return &Error{Kind: KindBadRequest, Detail: detail}
}

// Internal wraps an unexpected failure. The underlying error is kept
// for logging; clients only ever see the generic detail.
func Internal(err error) *Error {
	return &Error{
		Kind:   KindInternal,
		Detail: "internal server error",
		Err:    err,
	}
}
