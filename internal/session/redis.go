package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stockdeck/stockdeck/internal/config"
)

// keyPrefix namespaces session keys in Redis.
const keyPrefix = "stockdeck:session:"

// redisScope is a Redis-backed session scope. Entries expire after the
// configured TTL, giving ephemeral sessions a hard upper bound even across
// daemon restarts.
type redisScope struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisScope creates a Redis-backed Scope from config and verifies the
// connection.
func NewRedisScope(cfg *config.RedisConfig, ttl time.Duration) (Scope, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &redisScope{client: client, ttl: ttl}, nil
}

func (s *redisScope) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, keyPrefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *redisScope) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, keyPrefix+key, value, s.ttl).Err()
}

func (s *redisScope) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = keyPrefix + key
	}
	return s.client.Del(ctx, prefixed...).Err()
}
