package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/smart-inventory/internal/identity/repository"
	"github.com/tair/smart-inventory/pkg/logger"
	"github.com/tair/smart-inventory/pkg/storage"
)

// The metrics register against the default prometheus registry, so the whole
// auth surface is exercised through one handler in a single flow.
func TestIdentityHTTPFlow(t *testing.T) {
	logger.Init("identity-test", false)

	store, err := storage.NewBlobStore(t.TempDir())
	require.NoError(t, err)
	repo, err := repository.NewSnapshotRepository(store)
	require.NoError(t, err)

	router := mux.NewRouter()
	NewIdentityHandler(repo).RegisterRoutes(router)

	do := func(method, path string, body interface{}) (*httptest.ResponseRecorder, Response) {
		t.Helper()
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		var resp Response
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		return rec, resp
	}

	// No session before anyone registers.
	rec, resp := do(http.MethodGet, "/api/auth/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	session := resp.Data.(map[string]interface{})
	assert.Equal(t, false, session["isAuthenticated"])

	// Registration logs the user in and never echoes the password.
	rec, resp = do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Tair", "email": "tair@example.com", "password": "secret",
		"storeName": "Corner Store",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	user := resp.Data.(map[string]interface{})
	assert.Equal(t, "tair@example.com", user["email"])
	assert.NotContains(t, user, "password")

	rec, resp = do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Other", "email": "TAIR@example.com", "password": "other",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User already exists with this email", resp.Message)

	rec, _ = do(http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp = do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "tair@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", resp.Message)

	rec, resp = do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "tair@example.com", "password": "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, resp.Data.(map[string]interface{}), "password")

	rec, resp = do(http.MethodPut, "/api/auth/profile", map[string]string{
		"name": "Tair K", "email": "tair@example.com", "storeName": "Corner Store 2",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Corner Store 2", resp.Data.(map[string]interface{})["storeName"])

	rec, resp = do(http.MethodGet, "/api/auth/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	session = resp.Data.(map[string]interface{})
	assert.Equal(t, true, session["isAuthenticated"])
	assert.Equal(t, "Tair K", session["user"].(map[string]interface{})["name"])
}
