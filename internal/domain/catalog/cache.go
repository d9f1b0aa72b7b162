package catalog

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ListingCache keeps public listing responses in Redis. Writes bump a
// generation counter so stale entries are never read again and simply expire.
type ListingCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewListingCache returns nil when rdb is nil; a nil cache is valid and inert.
func NewListingCache(rdb *redis.Client, prefix string, ttl time.Duration) *ListingCache {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ListingCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *ListingCache) generation(ctx context.Context, scope string) int64 {
	n, err := c.rdb.Get(ctx, c.prefix+":"+scope+":gen").Int64()
	if err != nil {
		return 0
	}
	return n
}

func (c *ListingCache) key(ctx context.Context, scope string, parts ...any) string {
	sum := sha1.Sum([]byte(fmt.Sprint(parts...)))
	return fmt.Sprintf("%s:%s:%d:%x", c.prefix, scope, c.generation(ctx, scope), sum[:8])
}

func (c *ListingCache) Get(ctx context.Context, scope string, dst any, parts ...any) bool {
	if c == nil {
		return false
	}
	bs, err := c.rdb.Get(ctx, c.key(ctx, scope, parts...)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(bs, dst) == nil
}

func (c *ListingCache) Set(ctx context.Context, scope string, v any, parts ...any) {
	if c == nil {
		return
	}
	bs, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, c.key(ctx, scope, parts...), bs, c.ttl).Err()
}

func (c *ListingCache) Invalidate(ctx context.Context, scope string) {
	if c == nil {
		return
	}
	_ = c.rdb.Incr(ctx, c.prefix+":"+scope+":gen").Err()
}
