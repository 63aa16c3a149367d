package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss indicates a cache miss.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores serialized hit lists.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedBackend serves repeated requests from a Cache. Only successful searches are
// stored, and any cache failure falls through to the wrapped backend.
type CachedBackend struct {
	next  Backend
	cache Cache
	ttl   time.Duration
}

var _ Backend = &CachedBackend{}

func NewCachedBackend(next Backend, cache Cache, ttl time.Duration) *CachedBackend {
	return &CachedBackend{next: next, cache: cache, ttl: ttl}
}

func (b *CachedBackend) Search(ctx context.Context, req Request) ([]Hit, error) {
	key, err := cacheKey(req)
	if err != nil {
		return b.next.Search(ctx, req)
	}

	if data, err := b.cache.Get(ctx, key); err == nil {
		var hits []Hit
		if json.Unmarshal(data, &hits) == nil {
			return hits, nil
		}
	}

	hits, err := b.next.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(hits); err == nil {
		_ = b.cache.Set(ctx, key, data, b.ttl)
	}

	return hits, nil
}

func cacheKey(req Request) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// RedisCache shares cached hits between replicas.
type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return val, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// MemoryCache keeps hits in process.
type MemoryCache struct {
	store *gocache.Cache
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(ttl, 2*ttl)}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	val, found := c.store.Get(key)
	if !found {
		return nil, ErrCacheMiss
	}
	data, ok := val.([]byte)
	if !ok {
		return nil, ErrCacheMiss
	}
	return data, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.store.Set(key, value, ttl)
	return nil
}
