package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache is the Redis read-through cache for notification pages plus the
// post-scoped invalidation keys used by the ingress handlers.
//
// Every cached notification page is recorded in a per-user index set, so
// invalidation deletes exactly the keys it wrote instead of scanning by
// pattern.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

func pageKey(userID string, page, limit int) string {
	return fmt.Sprintf("notifications:%s:%d:%d", userID, page, limit)
}

func indexKey(userID string) string {
	return "notifications_index:" + userID
}

// GetPage returns the cached page payload, if any
func (c *Cache) GetPage(ctx context.Context, userID string, page, limit int) ([]byte, bool) {
	val, err := c.rdb.Get(ctx, pageKey(userID, page, limit)).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// SetPage caches a page payload and records its key in the user's index
func (c *Cache) SetPage(ctx context.Context, userID string, page, limit int, payload []byte) error {
	key := pageKey(userID, page, limit)
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return err
	}
	if err := c.rdb.SAdd(ctx, indexKey(userID), key).Err(); err != nil {
		return err
	}
	// The index only needs to outlive the pages it tracks.
	return c.rdb.Expire(ctx, indexKey(userID), c.ttl).Err()
}

// InvalidateUser deletes every cached notification page of the user
func (c *Cache) InvalidateUser(ctx context.Context, userID string) error {
	keys, err := c.rdb.SMembers(ctx, indexKey(userID)).Result()
	if err != nil {
		return err
	}
	keys = append(keys, indexKey(userID))
	return c.rdb.Del(ctx, keys...).Err()
}

// InvalidatePost drops the read-through entries keyed by the post and by
// the acting user's per-post status after a successful content mutation
func (c *Cache) InvalidatePost(ctx context.Context, postID, userID string) error {
	return c.rdb.Del(ctx,
		"post_likes:"+postID,
		"post_comments:"+postID,
		fmt.Sprintf("post_user_status:%s:%s", postID, userID),
	).Err()
}
