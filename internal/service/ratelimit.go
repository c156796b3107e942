package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CheckAndSetRateLimit opens a rate-limit window for one login source
// (tenant code + caller address). Returns false when the window is
// already open. A nil client disables limiting.
func CheckAndSetRateLimit(ctx context.Context, rdb *redis.Client, ecoleCode, caller string, limit time.Duration) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:login:%s:%s", ecoleCode, caller)

	wasSet, err := rdb.SetNX(ctx, key, "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}
