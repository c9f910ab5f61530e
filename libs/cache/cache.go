package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// ErrMiss is returned by Get when the key does not exist.
var ErrMiss = errors.New("cache miss")

type Cache interface {
	Get(key string) (string, error)
	SetWithTtl(key string, value string, ttl time.Duration) error
	// SetKeepTtl overwrites the value without touching the key's expiry.
	SetKeepTtl(key string, value string) error
}

type redisCache struct {
	client *redis.Client
}

// NewCache connects to the redis server described by url, e.g.
// redis://localhost:6379/0.
func NewCache(url string) (Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrapf(err, "parse cache url %q", url)
	}

	return &redisCache{client: redis.NewClient(opts)}, nil
}

func (c *redisCache) Get(key string) (string, error) {
	value, err := c.client.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return "", ErrMiss
	}
	if err != nil {
		return "", errors.Wrapf(err, "get %s", key)
	}

	return value, nil
}

func (c *redisCache) SetWithTtl(key string, value string, ttl time.Duration) error {
	err := c.client.Set(context.Background(), key, value, ttl).Err()
	return errors.Wrapf(err, "set %s", key)
}

func (c *redisCache) SetKeepTtl(key string, value string) error {
	err := c.client.Set(context.Background(), key, value, redis.KeepTTL).Err()
	return errors.Wrapf(err, "set %s", key)
}
