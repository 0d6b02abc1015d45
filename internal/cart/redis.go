package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/veldbloem/storefront/internal/models"
)

// RedisKeeper persists each cart as a JSON blob under cart:<key> with a
// sliding TTL, so abandoned carts age out on their own.
type RedisKeeper struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisKeeper(rdb *redis.Client, ttl time.Duration) *RedisKeeper {
	return &RedisKeeper{rdb: rdb, ttl: ttl}
}

func cartKey(key string) string {
	return "cart:" + key
}

func (r *RedisKeeper) Load(ctx context.Context, key string) ([]models.CartItem, error) {
	data, err := r.rdb.Get(ctx, cartKey(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart %s: %w", key, err)
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", key, err)
	}
	return items, nil
}

func (r *RedisKeeper) Save(ctx context.Context, key string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", key, err)
	}
	if err := r.rdb.Set(ctx, cartKey(key), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save cart %s: %w", key, err)
	}
	return nil
}

func (r *RedisKeeper) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, cartKey(key)).Err(); err != nil {
		return fmt.Errorf("delete cart %s: %w", key, err)
	}
	return nil
}
