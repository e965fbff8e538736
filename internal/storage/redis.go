package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisTimeout = 5 * time.Second

// RedisStore keeps each value as a plain Redis string under prefix+key.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisOptions configures NewRedisStore.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// NewRedisStore connects and pings the server.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, wrapDriverError(ErrTypeConnection, "failed to connect to redis", err)
	}

	return &RedisStore{client: client, prefix: opts.Prefix}, nil
}

// NewRedisStoreFromClient wraps an existing client without pinging it.
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	value, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, r.wrap("failed to read "+key, err)
	}
	return value, true, nil
}

func (r *RedisStore) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return r.wrap("failed to write "+key, err)
	}
	return nil
}

func (r *RedisStore) Remove(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return r.wrap("failed to remove "+key, err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

func (r *RedisStore) wrap(message string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return wrapDriverError(ErrTypeTimeout, message, err)
	}
	return wrapDriverError(ErrTypeQuery, message, err)
}
