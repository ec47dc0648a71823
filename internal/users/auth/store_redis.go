// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/algoarena/internal/platform/apperr"
	"github.com/taibuivan/algoarena/internal/platform/constants"
)

// # Reset Token Repository (Redis)

// RedisResetTokenRepository stores hashed password-reset tokens in Redis with a
// TTL, so expiry needs no janitor.
type RedisResetTokenRepository struct {
	client *redis.Client
}

// NewRedisResetTokenRepository creates a Redis-backed reset-token repository.
func NewRedisResetTokenRepository(client *redis.Client) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

func (repository *RedisResetTokenRepository) Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	err := repository.client.Set(ctx, constants.RedisPrefixResetToken+tokenHash, userID, ttl).Err()
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

/*
Consume redeems a reset token exactly once.

GETDEL makes the read-and-invalidate atomic, so two concurrent resets with the
same token cannot both succeed.
*/
func (repository *RedisResetTokenRepository) Consume(ctx context.Context, tokenHash string) (string, error) {
	userID, err := repository.client.GetDel(ctx, constants.RedisPrefixResetToken+tokenHash).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperr.NotFound("reset token")
	}
	if err != nil {
		return "", apperr.Internal(err)
	}
	return userID, nil
}
