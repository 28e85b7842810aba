// Package cache is a read-through response cache for the product list,
// backed by Redis. Invalidation bumps a version counter that is part of
// every key, so stale entries simply age out of reach instead of being
// enumerated and deleted.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Lanterman/online-store/logger"
)

const (
	listKeyPrefix = "products:v"
	versionKey    = "products:version"
)

const DefaultTTL = 5 * time.Minute

type ProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to Redis at addr. An empty addr disables caching: every
// method on the returned nil cache is a no-op.
func New(addr string) *ProductCache {
	if addr == "" {
		return nil
	}
	return &ProductCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: DefaultTTL,
	}
}

func (pc *ProductCache) version(ctx context.Context) int64 {
	v, err := pc.rdb.Get(ctx, versionKey).Int64()
	if err != nil {
		return 0
	}
	return v
}

func (pc *ProductCache) listKey(version int64, query string) string {
	return fmt.Sprintf("%s%d:%s", listKeyPrefix, version, query)
}

// GetList returns the cached payload for a product-list query, if any.
func (pc *ProductCache) GetList(ctx context.Context, query string) ([]byte, bool) {
	if pc == nil {
		return nil, false
	}
	version := pc.version(ctx)
	if version == 0 {
		return nil, false
	}
	payload, err := pc.rdb.Get(ctx, pc.listKey(version, query)).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// SetList stores a rendered product-list payload under the current version.
func (pc *ProductCache) SetList(ctx context.Context, query string, payload []byte) {
	if pc == nil {
		return
	}
	version := pc.version(ctx)
	if version == 0 {
		// First write after a flush; seed the version counter.
		var err error
		version, err = pc.rdb.Incr(ctx, versionKey).Result()
		if err != nil {
			return
		}
	}
	if err := pc.rdb.Set(ctx, pc.listKey(version, query), payload, pc.ttl).Err(); err != nil {
		logger.Log.Warn("cache: failed to store product list", zap.Error(err))
	}
}

// Invalidate makes every cached list entry unreachable. Called after any
// product or category mutation.
func (pc *ProductCache) Invalidate(ctx context.Context) {
	if pc == nil {
		return
	}
	if err := pc.rdb.Incr(ctx, versionKey).Err(); err != nil {
		logger.Log.Warn("cache: failed to bump version", zap.Error(err))
	}
}
