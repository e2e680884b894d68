// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"financeviews/internal/feature/timeseries/domain/entity"
	"financeviews/internal/feature/timeseries/usecase"
)

// CachingSeriesRepository decorates a SeriesRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingSeriesRepository struct {
	inner     usecase.SeriesRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingSeriesRepository decorates a SeriesRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "series".
func NewCachingSeriesRepository(rdb *redis.Client, ttl time.Duration, inner usecase.SeriesRepository, namespace string) *CachingSeriesRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "series"
	}
	return &CachingSeriesRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// SaveAll persists the batch and invalidates cached query results.
// Observations only carry the owning stock's id, not its name or ticker,
// so the whole namespace is invalidated rather than individual keys.
func (c *CachingSeriesRepository) SaveAll(ctx context.Context, ts []entity.StockTs) error {
	if err := c.inner.SaveAll(ctx, ts); err != nil {
		return err
	}
	// Exit early if Redis is not configured or there is nothing to invalidate
	if c.rdb == nil || len(ts) == 0 {
		return nil
	}

	_ = c.deleteByPattern(ctx, c.namespace+":*") // Best effort: don't fail if cache deletion fails
	return nil
}

// FindByStockName retrieves observations, checking cache first then falling back to the database.
func (c *CachingSeriesRepository) FindByStockName(ctx context.Context, name string) ([]entity.StockTs, error) {
	if c.rdb == nil {
		return c.inner.FindByStockName(ctx, name)
	}
	return c.cached(ctx, c.cacheKey("name", name), func() ([]entity.StockTs, error) {
		return c.inner.FindByStockName(ctx, name)
	})
}

// FindByStockTicker retrieves observations, checking cache first then falling back to the database.
func (c *CachingSeriesRepository) FindByStockTicker(ctx context.Context, ticker string) ([]entity.StockTs, error) {
	if c.rdb == nil {
		return c.inner.FindByStockTicker(ctx, ticker)
	}
	return c.cached(ctx, c.cacheKey("ticker", ticker), func() ([]entity.StockTs, error) {
		return c.inner.FindByStockTicker(ctx, ticker)
	})
}

// List retrieves a page of observations, checking cache first then falling back to the database.
func (c *CachingSeriesRepository) List(ctx context.Context, limit, offset int) ([]entity.StockTs, error) {
	if c.rdb == nil {
		return c.inner.List(ctx, limit, offset)
	}
	key := fmt.Sprintf("%s:list:%d:%d", c.namespace, limit, offset)
	return c.cached(ctx, key, func() ([]entity.StockTs, error) {
		return c.inner.List(ctx, limit, offset)
	})
}

// cached runs a query through the cache-aside path.
func (c *CachingSeriesRepository) cached(ctx context.Context, key string, fetch func() ([]entity.StockTs, error)) ([]entity.StockTs, error) {
	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.StockTs
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := fetch()
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for a specific query.
func (c *CachingSeriesRepository) cacheKey(kind, value string) string {
	return fmt.Sprintf("%s:%s:%s", c.namespace, kind, safe(value))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingSeriesRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
