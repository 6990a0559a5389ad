package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct{ R *redis.Client }

func New(r *redis.Client) *Cache { return &Cache{R: r} }

func keyRecent(game string) string {
	if game == "" {
		return "feed:recent:all"
	}
	return "feed:recent:" + game
}

func (c *Cache) GetRecent(ctx context.Context, game string, dst any) (bool, error) {
	b, err := c.R.Get(ctx, keyRecent(game)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

func (c *Cache) SetRecent(ctx context.Context, game string, v any, ttl time.Duration) error {
	b, _ := json.Marshal(v)
	return c.R.Set(ctx, keyRecent(game), b, ttl).Err()
}
