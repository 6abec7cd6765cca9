package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/core/domain"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/ports"
)

const profilePrefix = "profile:"

// RedisRepository stores the persisted keys in Redis under a prefix.
// Values never expire.
type RedisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisRepository connects using a redis:// or rediss:// URL
func NewRedisRepository(ctx context.Context, redisURL, prefix string) (*RedisRepository, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisRepository{client: client, prefix: prefix}, nil
}

func (r *RedisRepository) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ports.ErrKeyNotFound
	}
	return v, err
}

func (r *RedisRepository) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.prefix+key, value, 0).Err()
}

func (r *RedisRepository) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

func (r *RedisRepository) SaveProfile(ctx context.Context, p *domain.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.prefix+profilePrefix+p.Email, data, 0).Err()
}

func (r *RedisRepository) GetProfile(ctx context.Context, email string) (*domain.Profile, error) {
	data, err := r.client.Get(ctx, r.prefix+profilePrefix+email).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p domain.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

var (
	_ ports.KeyValueStore = (*RedisRepository)(nil)
	_ ports.ProfileStore  = (*RedisRepository)(nil)
)
