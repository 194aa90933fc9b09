package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/veracityhq/veracity/internal/domain"
)

// One key prefix per natural-key space.
const (
	prefixVerdict  = "verdict:"
	prefixAnalysis = "analysis:"
	prefixDigest   = "digest:"
)

// Cache is a look-aside layer in front of the store. New returns nil when no
// redis address is configured, and every method tolerates a nil receiver, so
// callers never branch on whether caching is enabled.
type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func New(addr, password string, db int, ttl time.Duration, logger *zap.Logger) *Cache {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Cache{rdb: rdb, ttl: ttl, logger: logger}
}

func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *Cache) GetVerdict(ctx context.Context, claim string) *domain.Verdict {
	var v domain.Verdict
	if !c.get(ctx, prefixVerdict+claim, &v) {
		return nil
	}
	return &v
}

func (c *Cache) SetVerdict(ctx context.Context, v *domain.Verdict) {
	c.set(ctx, prefixVerdict+v.Claim, v)
}

func (c *Cache) GetAnalysis(ctx context.Context, url string) *domain.WebpageAnalysis {
	var a domain.WebpageAnalysis
	if !c.get(ctx, prefixAnalysis+url, &a) {
		return nil
	}
	return &a
}

func (c *Cache) SetAnalysis(ctx context.Context, a *domain.WebpageAnalysis) {
	c.set(ctx, prefixAnalysis+a.URL, a)
}

func (c *Cache) GetDigest(ctx context.Context, date string) *domain.DailyDigest {
	var d domain.DailyDigest
	if !c.get(ctx, prefixDigest+date, &d) {
		return nil
	}
	return &d
}

func (c *Cache) SetDigest(ctx context.Context, d *domain.DailyDigest) {
	c.set(ctx, prefixDigest+d.Date, d)
}

func (c *Cache) get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Debug("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Debug("cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// set is best-effort: a cache write failure never fails the request.
func (c *Cache) set(ctx context.Context, key string, val any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Debug("cache set failed", zap.String("key", key), zap.Error(err))
	}
}
