// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/algoarena/internal/platform/apperr"
	"github.com/taibuivan/algoarena/internal/platform/ctxutil"
	"github.com/taibuivan/algoarena/internal/platform/middleware"
	"github.com/taibuivan/algoarena/internal/platform/sec"
)

// fakeLoader resolves user IDs against a fixed identity table.
type fakeLoader struct {
	identities map[string]*sec.Identity
}

func (loader *fakeLoader) LoadIdentity(_ context.Context, userID string) (*sec.Identity, error) {
	if identity, ok := loader.identities[userID]; ok {
		clone := *identity
		return &clone, nil
	}
	return nil, apperr.NotFound("user")
}

func newAuthChain(t *testing.T, gate func(http.Handler) http.Handler) (*sec.TokenService, http.Handler) {
	t.Helper()

	tokens, err := sec.NewTokenService("unit-test-secret-0123456789", "algoarena.test", time.Minute)
	require.NoError(t, err)

	loader := &fakeLoader{identities: map[string]*sec.Identity{
		"user-1":  {ID: "user-1", Username: "alice", Role: sec.RoleUser},
		"admin-1": {ID: "admin-1", Username: "root", Role: sec.RoleAdmin},
	}}

	final := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetIdentity(request.Context())
		if identity != nil {
			writer.Header().Set("X-Test-User", identity.ID)
			writer.Header().Set("X-Test-Session", identity.SessionID)
		}
		writer.WriteHeader(http.StatusOK)
	})

	chain := middleware.Authenticate(tokens, loader)(final)
	if gate != nil {
		chain = middleware.Authenticate(tokens, loader)(gate(final))
	}
	return tokens, chain
}

func doRequest(handler http.Handler, authorization string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func errorCode(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Code    string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Code
}

/*
TestAuthenticate_AttachesIdentity verifies that a valid bearer token resolves
to the live identity, with the session ID carried over from the claims.
*/
func TestAuthenticate_AttachesIdentity(t *testing.T) {
	tokens, chain := newAuthChain(t, nil)

	accessToken, err := tokens.GenerateAccessToken("user-1", "session-1")
	require.NoError(t, err)

	recorder := doRequest(chain, "Bearer "+accessToken)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "user-1", recorder.Header().Get("X-Test-User"))
	assert.Equal(t, "session-1", recorder.Header().Get("X-Test-Session"))
}

func TestAuthenticate_Rejections(t *testing.T) {
	tokens, chain := newAuthChain(t, nil)

	deletedUserToken, err := tokens.GenerateAccessToken("ghost-1", "session-1")
	require.NoError(t, err)

	otherSecret, err := sec.NewTokenService("a-different-secret-9876543210", "algoarena.test", time.Minute)
	require.NoError(t, err)
	forgedToken, err := otherSecret.GenerateAccessToken("user-1", "session-1")
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
	}{
		{"malformed_header", "NotBearer xyz"},
		{"garbage_token", "Bearer not-a-jwt"},
		{"wrong_signature", "Bearer " + forgedToken},
		{"deleted_account", "Bearer " + deletedUserToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := doRequest(chain, tt.authorization)
			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.Equal(t, "INVALID_SESSION", errorCode(t, recorder))
		})
	}
}

/*
TestRequireAuth verifies the protect gate: anonymous requests pass through
Authenticate but are stopped at RequireAuth with 401.
*/
func TestRequireAuth(t *testing.T) {
	tokens, chain := newAuthChain(t, middleware.RequireAuth)

	t.Run("anonymous_rejected", func(t *testing.T) {
		recorder := doRequest(chain, "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "INVALID_SESSION", errorCode(t, recorder))
	})

	t.Run("authenticated_allowed", func(t *testing.T) {
		accessToken, err := tokens.GenerateAccessToken("user-1", "session-1")
		require.NoError(t, err)

		recorder := doRequest(chain, "Bearer "+accessToken)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

/*
TestRequireAdmin verifies the admin gate: a valid non-admin token gets 403,
an admin token passes, and no token at all gets 401.
*/
func TestRequireAdmin(t *testing.T) {
	tokens, chain := newAuthChain(t, middleware.RequireAdmin)

	t.Run("anonymous_gets_401", func(t *testing.T) {
		recorder := doRequest(chain, "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("user_gets_403", func(t *testing.T) {
		accessToken, err := tokens.GenerateAccessToken("user-1", "session-1")
		require.NoError(t, err)

		recorder := doRequest(chain, "Bearer "+accessToken)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
		assert.Equal(t, "FORBIDDEN", errorCode(t, recorder))
	})

	t.Run("admin_passes", func(t *testing.T) {
		accessToken, err := tokens.GenerateAccessToken("admin-1", "session-2")
		require.NoError(t, err)

		recorder := doRequest(chain, "Bearer "+accessToken)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "admin-1", recorder.Header().Get("X-Test-User"))
	})
}
