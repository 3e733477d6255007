package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLFeed    = 30 * time.Second // feed pages churn quickly
	TTLUser    = 5 * time.Minute  // public profiles
	TTLDefault = 1 * time.Minute
)

// Cache key prefixes
const (
	PrefixFeed = "feed:"
	PrefixUser = "user:"
)

// ErrCacheMiss is returned when a key does not exist
var ErrCacheMiss = errors.New("cache miss")

// Service Redis cache service interface
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	GetFeed(ctx context.Context, page, limit int) ([]byte, error)
	SetFeed(ctx context.Context, page, limit int, data interface{}) error
	InvalidateFeed(ctx context.Context) error

	GetUser(ctx context.Context, userID uint) ([]byte, error)
	SetUser(ctx context.Context, userID uint, data interface{}) error
	InvalidateUser(ctx context.Context, userID uint) error

	IsAvailable() bool
}

// redisCache Redis-backed cache implementation
type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = TTLDefault
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func feedKey(page, limit int) string {
	return fmt.Sprintf("%s%d:%d", PrefixFeed, page, limit)
}

func (c *redisCache) GetFeed(ctx context.Context, page, limit int) ([]byte, error) {
	data, err := c.client.Get(ctx, feedKey(page, limit)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return data, nil
}

func (c *redisCache) SetFeed(ctx context.Context, page, limit int, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, feedKey(page, limit), raw, TTLFeed).Err()
}

// InvalidateFeed drops every cached feed page
func (c *redisCache) InvalidateFeed(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, PrefixFeed+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return c.Delete(ctx, keys...)
}

func userKey(userID uint) string {
	return fmt.Sprintf("%s%d", PrefixUser, userID)
}

func (c *redisCache) GetUser(ctx context.Context, userID uint) ([]byte, error) {
	data, err := c.client.Get(ctx, userKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return data, nil
}

func (c *redisCache) SetUser(ctx context.Context, userID uint, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, userKey(userID), raw, TTLUser).Err()
}

func (c *redisCache) InvalidateUser(ctx context.Context, userID uint) error {
	return c.Delete(ctx, userKey(userID))
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}
