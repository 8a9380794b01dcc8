package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"pressadmin/internal/models"
)

const (
	postKeyPrefix = "post:"
	listKeyPrefix = "postlist:"
	defaultTTL    = 5 * time.Minute
)

// PostCache caches rendered public post views in Valkey. A nil client
// disables caching, every method becomes a no-op miss.
type PostCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPostCache(client *redis.Client) *PostCache {
	return &PostCache{client: client, ttl: defaultTTL}
}

// GetPost returns the cached post for a slug, or nil on miss.
func (c *PostCache) GetPost(ctx context.Context, slug string) *models.Post {
	if c.client == nil {
		return nil
	}
	data, err := c.client.Get(ctx, postKeyPrefix+slug).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("post cache get failed", "slug", slug, "error", err)
		}
		return nil
	}
	var post models.Post
	if err := json.Unmarshal(data, &post); err != nil {
		slog.Warn("post cache unmarshal failed", "slug", slug, "error", err)
		return nil
	}
	return &post
}

// SetPost stores a post under its slug.
func (c *PostCache) SetPost(ctx context.Context, post *models.Post) {
	if c.client == nil || post == nil {
		return
	}
	data, err := json.Marshal(post)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, postKeyPrefix+post.Slug, data, c.ttl).Err(); err != nil {
		slog.Warn("post cache set failed", "slug", post.Slug, "error", err)
	}
}

// GetList returns a cached list page for a filter key, or nil on miss.
func (c *PostCache) GetList(ctx context.Context, key string) *models.PostPage {
	if c.client == nil {
		return nil
	}
	data, err := c.client.Get(ctx, listKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("list cache get failed", "key", key, "error", err)
		}
		return nil
	}
	var page models.PostPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil
	}
	return &page
}

// SetList stores a list page under a filter key.
func (c *PostCache) SetList(ctx context.Context, key string, page *models.PostPage) {
	if c.client == nil || page == nil {
		return
	}
	data, err := json.Marshal(page)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, listKeyPrefix+key, data, c.ttl).Err(); err != nil {
		slog.Warn("list cache set failed", "key", key, "error", err)
	}
}

// ListKey builds a deterministic cache key for a public list request.
func ListKey(category, placement string, page, pageSize int) string {
	return fmt.Sprintf("%s:%s:%d:%d", category, placement, page, pageSize)
}

// InvalidateAll removes every cached post and list. Called after any
// post mutation so public reads never serve stale content.
func (c *PostCache) InvalidateAll(ctx context.Context) {
	if c.client == nil {
		return
	}
	for _, prefix := range []string{postKeyPrefix, listKeyPrefix} {
		iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			slog.Warn("cache scan failed", "prefix", prefix, "error", err)
			continue
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("cache invalidation failed", "error", err)
			}
		}
	}
}
