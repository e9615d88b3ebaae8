package services

import (
	"context"
	"time"
)

// CacheService is the caching contract shared by repositories and services.
// Implemented by pkg/cache.RedisCache; nil-checked everywhere so the
// application runs without a cache.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
