// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/algoarena/internal/platform/constants"
)

// leaderboardKey is the single cache slot for the computed ranking.
const leaderboardKey = constants.RedisPrefixLeaderboard + "top"

// RedisCache implements Cache as a JSON blob with a TTL.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis-backed leaderboard cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (cache *RedisCache) GetLeaderboard(ctx context.Context) ([]LeaderboardEntry, bool, error) {
	payload, err := cache.client.Get(ctx, leaderboardKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entries []LeaderboardEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		// A corrupt cache entry is a miss, not a failure.
		return nil, false, nil
	}
	return entries, true, nil
}

func (cache *RedisCache) SetLeaderboard(ctx context.Context, entries []LeaderboardEntry, ttl time.Duration) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return cache.client.Set(ctx, leaderboardKey, payload, ttl).Err()
}
