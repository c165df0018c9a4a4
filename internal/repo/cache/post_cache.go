package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"postboard/internal/entity"

	"github.com/redis/go-redis/v9"
)

type PostCache interface {
	// Get returns nil, nil on a miss.
	Get(ctx context.Context, id uint) (*entity.Post, error)
	Set(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id uint) error
}

type postCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPostCache(client *redis.Client, ttl time.Duration) PostCache {
	return &postCache{client: client, ttl: ttl}
}

func PostKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

func (c *postCache) Get(ctx context.Context, id uint) (*entity.Post, error) {
	data, err := c.client.Get(ctx, PostKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var post entity.Post
	if err := json.Unmarshal(data, &post); err != nil {
		return nil, fmt.Errorf("failed to decode cached post: %w", err)
	}
	return &post, nil
}

func (c *postCache) Set(ctx context.Context, post *entity.Post) error {
	data, err := json.Marshal(post)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, PostKey(post.ID), data, c.ttl).Err()
}

func (c *postCache) Delete(ctx context.Context, id uint) error {
	return c.client.Del(ctx, PostKey(id)).Err()
}
