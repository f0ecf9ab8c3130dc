// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"userdir_backend/internal/feature/directory/domain/entity"
	"userdir_backend/internal/feature/directory/usecase"
)

// CachingSource decorates a directory Source with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying source. The store above keeps its own local list;
// this layer only spares repeated calls to the remote API across processes
// and restarts.
type CachingSource struct {
	inner     usecase.Source
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingSourceがSourceを実装していることをコンパイル時に検証します。
var _ usecase.Source = (*CachingSource)(nil)

// NewCachingSource decorates a Source with Redis caching.
// If ttl is 0, it defaults to DefaultTTL. If namespace is empty, it uses "directory".
func NewCachingSource(rdb *redis.Client, ttl time.Duration, inner usecase.Source, namespace string) *CachingSource {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = "directory"
	}
	return &CachingSource{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// ListUsers retrieves the user list, checking cache first then falling back
// to the remote API.
func (c *CachingSource) ListUsers(ctx context.Context) ([]entity.User, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.ListUsers(ctx)
	}

	key := c.listKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.User
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the remote API
	out, err := c.inner.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// GetUser retrieves one user, checking cache first then falling back to the
// remote API.
func (c *CachingSource) GetUser(ctx context.Context, id int) (entity.User, error) {
	if c.rdb == nil {
		return c.inner.GetUser(ctx, id)
	}

	key := c.userKey(id)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.User
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.GetUser(ctx, id)
	if err != nil {
		return entity.User{}, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Invalidate deletes every cache entry in this source's namespace using SCAN.
// Callers that need fresh data run it before fetching.
func (c *CachingSource) Invalidate(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	pattern := c.namespace + ":users:*"
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

// listKey generates the cache key for the full user list.
func (c *CachingSource) listKey() string {
	return fmt.Sprintf("%s:users:all", c.namespace)
}

// userKey generates the cache key for a single user.
func (c *CachingSource) userKey(id int) string {
	return fmt.Sprintf("%s:users:%d", c.namespace, id)
}
