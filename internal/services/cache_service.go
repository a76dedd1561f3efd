package services

import (
	"context"
	"strconv"
	"time"
)

// CacheService is the slice of the cache the ride services need. A nil
// CacheService is legal everywhere; callers degrade to uncached behavior.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}

func scheduleCacheKey(chatID int64) string {
	return "schedule:" + strconv.FormatInt(chatID, 10)
}
