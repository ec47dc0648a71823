// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/algoarena/internal/platform/apperr"
	"github.com/taibuivan/algoarena/internal/users/auth"
)

func newResetRepo(t *testing.T) (*auth.RedisResetTokenRepository, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return auth.NewRedisResetTokenRepository(client), server
}

func TestRedisResetTokenRepository_SaveAndConsume(t *testing.T) {
	repo, _ := newResetRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "hash-1", "user-1", time.Hour))

	userID, err := repo.Consume(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	// Consuming is destructive: the second redemption fails.
	_, err = repo.Consume(ctx, "hash-1")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

func TestRedisResetTokenRepository_Expiry(t *testing.T) {
	repo, server := newResetRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "hash-1", "user-1", time.Hour))

	// Advance past the TTL; miniredis expires the key lazily.
	server.FastForward(2 * time.Hour)

	_, err := repo.Consume(ctx, "hash-1")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

func TestRedisResetTokenRepository_UnknownToken(t *testing.T) {
	repo, _ := newResetRepo(t)

	_, err := repo.Consume(context.Background(), "never-saved")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
