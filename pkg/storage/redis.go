package storage

import (
	"context"
	"time"

	pkgredis "github.com/angelmondragon/ridegear-backend/pkg/redis"
)

// RedisKV is the subset of *pkgredis.Client the Redis backend needs.
type RedisKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SnapshotKey(key string) string
	Ping(ctx context.Context) error
}

// Redis stores items as plain string keys under the snapshot namespace.
type Redis struct {
	client RedisKV
	ttl    time.Duration
}

// NewRedis wraps client. A zero ttl keeps items until removed.
func NewRedis(client RedisKV, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) GetItem(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.client.SnapshotKey(key))
	if pkgredis.IsNil(err) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (r *Redis) SetItem(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.client.SnapshotKey(key), value, r.ttl)
}

func (r *Redis) RemoveItem(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.client.SnapshotKey(key))
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}
