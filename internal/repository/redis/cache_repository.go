package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"keel/domain"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyTTL = 24 * time.Hour
	placeCacheTTL  = 7 * 24 * time.Hour
)

type CacheRepository struct {
	client *redis.Client
}

func NewCacheRepository(client *redis.Client) *CacheRepository {
	return &CacheRepository{
		client: client,
	}
}

// Claim marks an idempotency key as used. Returns true only for the first
// caller; replays within the TTL see false.
func (r *CacheRepository) Claim(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("idem:visit:%s", key)

	ok, err := r.client.SetNX(ctx, redisKey, "1", idempotencyTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim idempotency key: %w", err)
	}

	return ok, nil
}

func (r *CacheRepository) GetPlace(ctx context.Context, key string) (domain.ResolvedMerchant, bool, error) {
	redisKey := fmt.Sprintf("place:%s", key)

	val, err := r.client.Get(ctx, redisKey).Result()
	if err != nil {
		if err == redis.Nil {
			return domain.ResolvedMerchant{}, false, nil
		}
		return domain.ResolvedMerchant{}, false, fmt.Errorf("failed to get place from Redis: %w", err)
	}

	var merchant domain.ResolvedMerchant
	if err := json.Unmarshal([]byte(val), &merchant); err != nil {
		return domain.ResolvedMerchant{}, false, fmt.Errorf("failed to unmarshal cached place: %w", err)
	}

	return merchant, true, nil
}

func (r *CacheRepository) SetPlace(ctx context.Context, key string, merchant domain.ResolvedMerchant) error {
	redisKey := fmt.Sprintf("place:%s", key)

	jsonData, err := json.Marshal(merchant)
	if err != nil {
		return fmt.Errorf("failed to marshal place: %w", err)
	}

	if err := r.client.Set(ctx, redisKey, jsonData, placeCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to store place in Redis: %w", err)
	}

	return nil
}

// GetConfig reads a runtime config value set by an operator.
func (r *CacheRepository) GetConfig(ctx context.Context, name string) (string, error) {
	redisKey := fmt.Sprintf("config:%s", name)

	val, err := r.client.Get(ctx, redisKey).Result()
	if err != nil {
		if err == redis.Nil {
			return "", errors.New("config key not found")
		}
		return "", fmt.Errorf("failed to get config from Redis: %w", err)
	}

	return val, nil
}

func (r *CacheRepository) SetConfig(ctx context.Context, name, value string) error {
	redisKey := fmt.Sprintf("config:%s", name)

	// runtime config has no TTL, it lives until overwritten
	if err := r.client.Set(ctx, redisKey, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to store config in Redis: %w", err)
	}

	return nil
}
