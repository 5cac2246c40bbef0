package settings

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/hearthglen/vtt-tokenroll/internal/errors"
)

// RedisRegistry persists setting values in Redis. Registration (names,
// defaults) stays in process memory; only values survive restarts.
type RedisRegistry struct {
	client redis.UniversalClient

	mu         sync.RWMutex
	registered map[string]Setting
}

// RedisRegistryConfig holds configuration for the Redis settings registry
type RedisRegistryConfig struct {
	Client redis.UniversalClient
}

// NewRedisRegistry creates a new Redis-backed settings registry
func NewRedisRegistry(cfg *RedisRegistryConfig) *RedisRegistry {
	if cfg == nil {
		panic("RedisRegistryConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	return &RedisRegistry{
		client:     cfg.Client,
		registered: make(map[string]Setting),
	}
}

// key generates the Redis key for a setting value
func (r *RedisRegistry) key(settingKey string) string {
	return fmt.Sprintf("setting:%s", settingKey)
}

// Register declares a setting
func (r *RedisRegistry) Register(ctx context.Context, setting Setting) error {
	if setting.Key == "" {
		return apperrors.InvalidArgument("setting key is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.registered[setting.Key]; exists {
		return apperrors.AlreadyExistsf("setting '%s' already registered", setting.Key)
	}

	r.registered[setting.Key] = setting
	return nil
}

// GetBool returns the current value of a boolean setting
func (r *RedisRegistry) GetBool(ctx context.Context, key string) (bool, error) {
	r.mu.RLock()
	setting, exists := r.registered[key]
	r.mu.RUnlock()

	if !exists {
		return false, apperrors.NotFoundf("setting '%s' not registered", key)
	}

	raw, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if err == redis.Nil {
			b, ok := setting.Default.(bool)
			if !ok {
				return false, apperrors.Internalf("setting '%s' has a non-boolean default", key)
			}
			return b, nil
		}
		return false, fmt.Errorf("failed to read setting '%s': %w", key, err)
	}

	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperrors.Internalf("setting '%s' holds a non-boolean value %q", key, raw)
	}
	return b, nil
}

// SetBool stores a new value for a boolean setting
func (r *RedisRegistry) SetBool(ctx context.Context, key string, value bool) error {
	r.mu.RLock()
	_, exists := r.registered[key]
	r.mu.RUnlock()

	if !exists {
		return apperrors.NotFoundf("setting '%s' not registered", key)
	}

	if err := r.client.Set(ctx, r.key(key), strconv.FormatBool(value), 0).Err(); err != nil {
		return fmt.Errorf("failed to store setting '%s': %w", key, err)
	}
	return nil
}
