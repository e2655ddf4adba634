package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raktar-project/raktar/pkg/types"
)

func TestManagementRequiresIdentity(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/tokens", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/users", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenManagement(t *testing.T) {
	s, store := newTestServer(t)
	user, err := store.UpdateOrCreateUser(types.UserData{Login: "alice"})
	require.NoError(t, err)
	identity := identityToken(t, user.ID)

	// Mint a token.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tokens", strings.NewReader(`{"name":"laptop"}`))
	req.Header.Set("Authorization", identity)
	rec := do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var created struct {
		TokenID string `json:"token_id"`
		Name    string `json:"name"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "laptop", created.Name)
	assert.NotEmpty(t, created.TokenID)
	assert.Len(t, created.Token, 32)

	// The raw value works as a registry credential.
	found, err := store.GetToken([]byte(created.Token))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.UserID)

	// Listing shows it without the raw value.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/tokens", nil)
	req.Header.Set("Authorization", identity)
	rec = do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), created.TokenID)
	assert.NotContains(t, rec.Body.String(), created.Token)

	// Revoking removes it.
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/tokens/"+created.TokenID, nil)
	req.Header.Set("Authorization", identity)
	rec = do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code)

	found, err = store.GetToken([]byte(created.Token))
	require.NoError(t, err)
	assert.Nil(t, found)

	// An empty name is rejected.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/tokens", strings.NewReader(`{}`))
	req.Header.Set("Authorization", identity)
	rec = do(t, s, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserProvisioning(t *testing.T) {
	s, _ := newTestServer(t)
	identity := identityToken(t, 1)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/users",
		strings.NewReader(`{"login":"alice","given_name":"Alice","family_name":"Archer"}`))
	req.Header.Set("Authorization", identity)
	rec := do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var user types.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, types.UserID(1), user.ID)
	assert.Equal(t, "alice", user.Login)

	// Upserting again with the same claims is idempotent.
	req = httptest.NewRequest(http.MethodPut, "/api/v1/users",
		strings.NewReader(`{"login":"alice","given_name":"Alice","family_name":"Archer"}`))
	req.Header.Set("Authorization", identity)
	rec = do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, types.UserID(1), user.ID)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", identity)
	rec = do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Users []types.User `json:"users"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed.Users, 1)
}

func TestAuditTrail(t *testing.T) {
	s, store := newTestServer(t)
	seedUser(t, store, "alice", "alice-token")
	identity := identityToken(t, 1)

	rec := do(t, s, publishReq(t, "alice-token", `{"name":"widget","vers":"0.1.0"}`, widgetArchive))
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/crates/widget/0.1.0/yank", nil)
	req.Header.Set("Authorization", "alice-token")
	rec = do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// The trail serves both mutations, newest first.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	req.Header.Set("Authorization", identity)
	rec = do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var trail struct {
		Events []struct {
			Type     string            `json:"type"`
			Metadata map[string]string `json:"metadata"`
		} `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trail))
	require.Len(t, trail.Events, 2)
	assert.Equal(t, "version.yanked", trail.Events[0].Type)
	assert.Equal(t, "crate.published", trail.Events[1].Type)
	assert.Equal(t, "widget", trail.Events[0].Metadata["crate"])

	// A limit restricts the slice; the trail needs an identity.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/events?limit=1", nil)
	req.Header.Set("Authorization", identity)
	rec = do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trail))
	assert.Len(t, trail.Events, 1)

	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/events", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCrateBrowsing(t *testing.T) {
	s, store := newTestServer(t)
	seedUser(t, store, "alice", "alice-token")
	identity := identityToken(t, 1)

	for _, meta := range []string{
		`{"name":"widget","vers":"0.2.0"}`,
		`{"name":"widget","vers":"0.10.0"}`,
		`{"name":"gadget","vers":"1.0.0","description":"G"}`,
	} {
		rec := do(t, s, publishReq(t, "alice-token", meta, widgetArchive))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// Browse with a prefix filter.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/crates?filter=wid&limit=5", nil)
	req.Header.Set("Authorization", identity)
	rec := do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var browsed struct {
		Crates []types.CrateSummary `json:"crates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &browsed))
	require.Len(t, browsed.Crates, 1)
	assert.Equal(t, "widget", browsed.Crates[0].Name)
	assert.Equal(t, "0.10.0", browsed.Crates[0].MaxVersion.String())

	// Versions come back semver-sorted regardless of key order.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/crates/widget/versions", nil)
	req.Header.Set("Authorization", identity)
	rec = do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"versions":["0.2.0","0.10.0"]}`, rec.Body.String())

	// The stored metadata is served as uploaded.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/crates/gadget/metadata/1.0.0", nil)
	req.Header.Set("Authorization", identity)
	rec = do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var metadata types.Metadata
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metadata))
	assert.Equal(t, "gadget", metadata.Name)
	require.NotNil(t, metadata.Description)
	assert.Equal(t, "G", *metadata.Description)

	// Metadata for an unknown version is 404.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/crates/gadget/metadata/9.9.9", nil)
	req.Header.Set("Authorization", identity)
	rec = do(t, s, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
