// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/algoarena/internal/platform/sec"
)

func newTokenService(t *testing.T, ttl time.Duration) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService("unit-test-secret-0123456789", "algoarena.test", ttl)
	require.NoError(t, err)
	return service
}

func TestNewTokenService_RejectsShortSecret(t *testing.T) {
	_, err := sec.NewTokenService("short", "algoarena.test", time.Minute)
	assert.Error(t, err)
}

/*
TestTokenService_RoundTrip verifies that a generated token carries the user
and session bindings back through verification.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, 15*time.Minute)

	token, err := service.GenerateAccessToken("user-1", "session-1")
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "session-1", claims.SessionID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "algoarena.test", claims.Issuer)
}

func TestTokenService_Rejections(t *testing.T) {
	service := newTokenService(t, 15*time.Minute)

	t.Run("garbage", func(t *testing.T) {
		_, err := service.VerifyToken("not-a-jwt")
		assert.Error(t, err)
	})

	t.Run("wrong_secret", func(t *testing.T) {
		other := newTokenService(t, 15*time.Minute)
		forged, err := sec.NewTokenService("another-secret-entirely-12345", "algoarena.test", time.Minute)
		require.NoError(t, err)

		token, err := forged.GenerateAccessToken("user-1", "session-1")
		require.NoError(t, err)

		_, err = other.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong_issuer", func(t *testing.T) {
		foreign, err := sec.NewTokenService("unit-test-secret-0123456789", "someone-else.app", time.Minute)
		require.NoError(t, err)

		token, err := foreign.GenerateAccessToken("user-1", "session-1")
		require.NoError(t, err)

		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expiring := newTokenService(t, -time.Minute)

		token, err := expiring.GenerateAccessToken("user-1", "session-1")
		require.NoError(t, err)

		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("tampered_payload", func(t *testing.T) {
		token, err := service.GenerateAccessToken("user-1", "session-1")
		require.NoError(t, err)

		_, err = service.VerifyToken(token + "x")
		assert.Error(t, err)
	})
}
