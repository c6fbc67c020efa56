package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL constants per data class
const (
	TTLModules     = 10 * time.Minute // campaign modules change rarely
	TTLContents    = 30 * time.Second // board/list views refresh often
	TTLContent     = 1 * time.Minute  // single item detail
	TTLDelegations = 5 * time.Minute  // standing delegation table
	TTLUsers       = 5 * time.Minute  // assignment dropdowns
	TTLBalance     = 1 * time.Minute  // ledger running balance
	TTLDefault     = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixModules     = "modules:"
	PrefixContents    = "contents:"
	PrefixContent     = "content:"
	PrefixDelegations = "delegations:"
	PrefixUsers       = "users:"
	PrefixBalance     = "finance:balance"
)

// Service Redis cache service interface
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Content list cache, keyed by filter signature
	GetContents(ctx context.Context, filterKey string) ([]byte, error)
	SetContents(ctx context.Context, filterKey string, data interface{}) error
	InvalidateContents(ctx context.Context) error

	// Single content item cache
	GetContent(ctx context.Context, itemID string) ([]byte, error)
	SetContent(ctx context.Context, itemID string, data interface{}) error
	InvalidateContent(ctx context.Context, itemID string) error

	// Module list cache
	GetModules(ctx context.Context) ([]byte, error)
	SetModules(ctx context.Context, data interface{}) error
	InvalidateModules(ctx context.Context) error

	// Delegation table cache
	GetDelegations(ctx context.Context) ([]byte, error)
	SetDelegations(ctx context.Context, data interface{}) error
	InvalidateDelegations(ctx context.Context) error

	// Ledger balance cache
	GetBalance(ctx context.Context) ([]byte, error)
	SetBalance(ctx context.Context, data interface{}) error
	InvalidateBalance(ctx context.Context) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache Redis-backed cache implementation.
// All write paths tolerate a nil client so the API stays usable without Redis.
type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// Get reads a value from cache into dest
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set stores a value in cache
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // no Redis, skip silently
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes keys from cache
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Exists checks key presence
func (c *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

// ========================================
// Content list cache
// ========================================

func (c *redisCache) contentsKey(filterKey string) string {
	return PrefixContents + filterKey
}

func (c *redisCache) GetContents(ctx context.Context, filterKey string) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.contentsKey(filterKey)).Bytes()
}

func (c *redisCache) SetContents(ctx context.Context, filterKey string, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.contentsKey(filterKey), jsonData, TTLContents).Err()
}

func (c *redisCache) InvalidateContents(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.deleteByPattern(ctx, PrefixContents+"*")
}

// ========================================
// Single content item cache
// ========================================

func (c *redisCache) contentKey(itemID string) string {
	return PrefixContent + itemID
}

func (c *redisCache) GetContent(ctx context.Context, itemID string) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.contentKey(itemID)).Bytes()
}

func (c *redisCache) SetContent(ctx context.Context, itemID string, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.contentKey(itemID), jsonData, TTLContent).Err()
}

func (c *redisCache) InvalidateContent(ctx context.Context, itemID string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.contentKey(itemID)).Err()
}

// ========================================
// Module list cache
// ========================================

func (c *redisCache) GetModules(ctx context.Context) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, PrefixModules+"all").Bytes()
}

func (c *redisCache) SetModules(ctx context.Context, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, PrefixModules+"all", jsonData, TTLModules).Err()
}

func (c *redisCache) InvalidateModules(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.deleteByPattern(ctx, PrefixModules+"*")
}

// ========================================
// Delegation table cache
// ========================================

func (c *redisCache) GetDelegations(ctx context.Context) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, PrefixDelegations+"active").Bytes()
}

func (c *redisCache) SetDelegations(ctx context.Context, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, PrefixDelegations+"active", jsonData, TTLDelegations).Err()
}

func (c *redisCache) InvalidateDelegations(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.deleteByPattern(ctx, PrefixDelegations+"*")
}

// ========================================
// Ledger balance cache
// ========================================

func (c *redisCache) GetBalance(ctx context.Context) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, PrefixBalance).Bytes()
}

func (c *redisCache) SetBalance(ctx context.Context, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, PrefixBalance, jsonData, TTLBalance).Err()
}

func (c *redisCache) InvalidateBalance(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, PrefixBalance).Err()
}

// ========================================
// Internal utilities
// ========================================

func (c *redisCache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
