// Package redis stores blobs as Redis string values under a key prefix.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// client is the subset of *redis.Client the repository uses.
type client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
	Close() error
}

type Config struct {
	Addr     string
	DB       int
	Password string
	Prefix   string
}

type Repository struct {
	rdb    client
	prefix string
}

func NewRepository(rdb client, prefix string) *Repository {
	return &Repository{rdb: rdb, prefix: prefix}
}

// Open connects to Redis and checks the connection with PING.
func Open(ctx context.Context, cfg Config) (*Repository, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		Password: cfg.Password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return NewRepository(rdb, cfg.Prefix), nil
}

func (r *Repository) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blob[%s]: %w", key, err)
	}
	if b == nil {
		b = []byte{}
	}
	return b, nil
}

func (r *Repository) Set(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set blob[%s]: %w", key, err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete blob[%s]: %w", key, err)
	}
	return nil
}

func (r *Repository) Close() error {
	return r.rdb.Close()
}
