// Package cache puts a two level cache in front of masterdata: an in-process go-cache
// tier and, when an address is configured, a shared redis tier. Catalog entries rarely
// change, so entries are cached by kind and id for a fixed time to live.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the shared tier. Get reports found=false for missing keys.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type RedisStore struct {
	client      *redis.Client
	serviceName string
}

func NewRedisStore(client *redis.Client, serviceName string) *RedisStore {
	return &RedisStore{client: client, serviceName: serviceName}
}

// NewRedisClient connects lazily; the first command dials.
func NewRedisClient(addr, password string, db int, timeout time.Duration) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.generateKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, r.generateKey(key), value, ttl).Err()
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) generateKey(key string) string {
	return fmt.Sprintf("%s:masterdata:%s", r.serviceName, key)
}
