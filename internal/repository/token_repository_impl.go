package repository

import (
	"context"
	"time"

	domainRepo "health-records-api/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const tokenValue = "valid"

type redisTokenRepository struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) domainRepo.TokenRepository {
	return &redisTokenRepository{client: client}
}

func (r *redisTokenRepository) Store(ctx context.Context, key string, ttl time.Duration) error {
	return r.client.Set(ctx, key, tokenValue, ttl).Err()
}

func (r *redisTokenRepository) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *redisTokenRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}
