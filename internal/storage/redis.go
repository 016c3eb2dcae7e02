package storage

import (
	"context"

	"github.com/Domenick1991/agencydesk/config"
	"github.com/redis/go-redis/v9"
)

// Redis keeps each collection as one redis string, written whole on every
// save. Keys never expire.
type Redis struct {
	client *redis.Client
}

func NewRedis(cfg config.RedisConfig) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
	}
}

func (r *Redis) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (r *Redis) Save(ctx context.Context, key string, data []byte) error {
	return r.client.Set(ctx, key, data, 0).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}

var _ Storage = (*Redis)(nil)
