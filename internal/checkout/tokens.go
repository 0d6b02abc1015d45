package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenStore holds the one-shot "just placed" signal per order number.
// The signal lives server-side instead of in a URL query parameter, so a
// refresh of the confirmation page cannot replay the celebratory effect.
type TokenStore interface {
	// Mint records that the order was just placed.
	Mint(ctx context.Context, orderNumber string) error
	// Take consumes the signal; true on the first call per order only.
	Take(ctx context.Context, orderNumber string) (bool, error)
}

// RedisTokens stores tokens under placed:<order number> with a short TTL;
// an unvisited confirmation page simply lets its token expire.
type RedisTokens struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisTokens(rdb *redis.Client, ttl time.Duration) *RedisTokens {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisTokens{rdb: rdb, ttl: ttl}
}

func tokenKey(orderNumber string) string {
	return "placed:" + orderNumber
}

func (t *RedisTokens) Mint(ctx context.Context, orderNumber string) error {
	return t.rdb.Set(ctx, tokenKey(orderNumber), "1", t.ttl).Err()
}

func (t *RedisTokens) Take(ctx context.Context, orderNumber string) (bool, error) {
	err := t.rdb.GetDel(ctx, tokenKey(orderNumber)).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MemoryTokens backs tests and the memory cart driver.
type MemoryTokens struct {
	mu     sync.Mutex
	placed map[string]struct{}
}

func NewMemoryTokens() *MemoryTokens {
	return &MemoryTokens{placed: make(map[string]struct{})}
}

func (t *MemoryTokens) Mint(ctx context.Context, orderNumber string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.placed[orderNumber] = struct{}{}
	return nil
}

func (t *MemoryTokens) Take(ctx context.Context, orderNumber string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.placed[orderNumber]
	delete(t.placed, orderNumber)
	return ok, nil
}
