package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOption configures the Redis store.
type RedisOption func(*redisOptions)

type redisOptions struct {
	prefix string
	ttl    time.Duration
}

func defaultRedisOptions() *redisOptions {
	return &redisOptions{
		prefix: "",
		ttl:    0, // 0 = no expiration
	}
}

// WithRedisTTL sets the expiration applied on every Save.
// Zero or negative means no expiration.
// Default: 0.
func WithRedisTTL(d time.Duration) RedisOption {
	return func(o *redisOptions) {
		o.ttl = d
	}
}

// WithPrefix sets a key prefix for all store operations.
// Keys are stored as "{prefix}:{key}".
func WithPrefix(prefix string) RedisOption {
	return func(o *redisOptions) {
		o.prefix = prefix
	}
}

// Redis is a Store backed by Redis. Lists are stored as JSON arrays.
type Redis struct {
	client redis.UniversalClient
	opts   *redisOptions
}

// NewRedis creates a Redis-backed store.
// The client should be obtained from pkg/redis.Open.
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	o := defaultRedisOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Redis{
		client: client,
		opts:   o,
	}
}

// Get returns the list stored under key.
func (r *Redis) Get(ctx context.Context, key string) ([]string, bool, error) {
	data, err := r.client.Get(ctx, r.prefixedKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, errors.Join(ErrStore, err)
	}

	list := []string{}
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, false, errors.Join(ErrUnmarshal, err)
	}
	if list == nil {
		list = []string{}
	}

	return list, true, nil
}

// Save replaces the list stored under key.
func (r *Redis) Save(ctx context.Context, key string, list []string) error {
	if list == nil {
		list = []string{}
	}

	data, err := json.Marshal(list)
	if err != nil {
		return errors.Join(ErrMarshal, err)
	}

	// Redis interprets 0 as no expiration.
	ttl := max(r.opts.ttl, 0)

	if err := r.client.Set(ctx, r.prefixedKey(key), data, ttl).Err(); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

func (r *Redis) prefixedKey(key string) string {
	if r.opts.prefix == "" {
		return key
	}
	return r.opts.prefix + ":" + key
}

var _ Store = (*Redis)(nil)
