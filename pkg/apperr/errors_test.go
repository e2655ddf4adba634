package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		kind   Kind
		status int
	}{
		{KindNonExistentPackageInfo, http.StatusNotFound},
		{KindNonExistentCrate, http.StatusNotFound},
		{KindNonExistentCrateVersion, http.StatusNotFound},
		{KindDuplicateCrateVersion, http.StatusBadRequest},
		{KindBadRequest, http.StatusBadRequest},
		{KindConflictOnNewCrate, http.StatusInternalServerError},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.kind.HTTPStatus())
	}
}

func TestKindOf(t *testing.T) {
	err := DuplicateCrateVersion("widget", "0.1.0")
	assert.Equal(t, KindDuplicateCrateVersion, KindOf(err))

	// Wrapping keeps the kind visible.
	wrapped := fmt.Errorf("publish failed: %w", err)
	assert.Equal(t, KindDuplicateCrateVersion, KindOf(wrapped))

	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestErrorDetail(t *testing.T) {
	err := NonExistentCrateVersion("widget", "0.1.0")
	assert.Equal(t, "version 0.1.0 for widget does not exist", err.Error())

	err = NonExistentPackageInfo("widget")
	assert.Equal(t, "package info for widget does not exist", err.Error())

	err = DuplicateCrateVersion("widget", "0.1.0")
	assert.Equal(t, "version 0.1.0 for widget already exists", err.Error())
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.Equal(t, "internal server error", err.Error())
	assert.ErrorIs(t, err, cause)
}
