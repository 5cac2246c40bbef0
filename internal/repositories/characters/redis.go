package characters

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hearthglen/vtt-tokenroll/internal/entities"
	apperrors "github.com/hearthglen/vtt-tokenroll/internal/errors"
)

// redisRepo implements the character store using Redis
type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis character store
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed character store
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	return &redisRepo{
		client: cfg.Client,
	}
}

// key generates the Redis key for a character
func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("character:%s", id)
}

// Create stores a new character
func (r *redisRepo) Create(ctx context.Context, char *entities.Character) error {
	if char == nil {
		return apperrors.InvalidArgument("character cannot be nil")
	}
	if char.ID == "" {
		return apperrors.InvalidArgument("character ID is required")
	}

	exists, err := r.client.Exists(ctx, r.key(char.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check character existence: %w", err)
	}
	if exists > 0 {
		return apperrors.AlreadyExistsf("character with ID '%s' already exists", char.ID).
			WithMeta("character_id", char.ID)
	}

	jsonData, err := json.Marshal(char)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	if err := r.client.Set(ctx, r.key(char.ID), jsonData, 0).Err(); err != nil {
		return fmt.Errorf("failed to store character: %w", err)
	}

	return nil
}

// Get retrieves a character by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*entities.Character, error) {
	if id == "" {
		return nil, apperrors.InvalidArgument("character ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFoundf("character with ID '%s' not found", id).
				WithMeta("character_id", id)
		}
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	var char entities.Character
	if err := json.Unmarshal([]byte(jsonData), &char); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", err)
	}

	return &char, nil
}

// UpdateFields applies a partial field map to a stored character
func (r *redisRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	char, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	for path, value := range fields {
		if err := char.ApplyField(path, value); err != nil {
			return apperrors.Wrapf(err, "failed to update character '%s'", id)
		}
	}

	jsonData, err := json.Marshal(char)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	if err := r.client.Set(ctx, r.key(id), jsonData, 0).Err(); err != nil {
		return fmt.Errorf("failed to store character: %w", err)
	}

	return nil
}
