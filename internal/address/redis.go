package address

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/veloshop/checkout/internal/domain"
)

// RedisCache keeps lookup results warm; postal data changes rarely, so a
// moderate TTL with jitter is enough.
type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

func (r RedisCache) Get(ctx context.Context, cep string) (*domain.Address, error) {
	data, err := r.client.Get(ctx, cacheKey(cep)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var addr domain.Address
	if err := json.Unmarshal(data, &addr); err != nil {
		return nil, fmt.Errorf("unmarshal address failed: %w", err)
	}
	return &addr, nil
}

func (r RedisCache) Set(ctx context.Context, cep string, addr *domain.Address) error {
	data, err := json.Marshal(addr)
	if err != nil {
		return fmt.Errorf("marshal address failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(5)) * time.Minute
	if err := r.client.Set(ctx, cacheKey(cep), data, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func cacheKey(cep string) string {
	return fmt.Sprintf("cep:%s", cep)
}
