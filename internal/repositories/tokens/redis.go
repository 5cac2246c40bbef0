package tokens

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hearthglen/vtt-tokenroll/internal/entities"
	apperrors "github.com/hearthglen/vtt-tokenroll/internal/errors"
)

// redisRepo implements the token store using Redis
type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis token store
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed token store
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

// key generates the Redis key for a token
func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("token:%s", id)
}

// Create stores a new token
func (r *redisRepo) Create(ctx context.Context, token *entities.Token) error {
	if token == nil {
		return apperrors.InvalidArgument("token cannot be nil")
	}
	if token.ID == "" {
		return apperrors.InvalidArgument("token ID is required")
	}

	exists, err := r.client.Exists(ctx, r.key(token.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check token existence: %w", err)
	}
	if exists > 0 {
		return apperrors.AlreadyExistsf("token with ID '%s' already exists", token.ID).
			WithMeta("token_id", token.ID)
	}

	jsonData, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := r.client.Set(ctx, r.key(token.ID), jsonData, 0).Err(); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	return nil
}

// Get retrieves a token by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*entities.Token, error) {
	if id == "" {
		return nil, apperrors.InvalidArgument("token ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFoundf("token with ID '%s' not found", id).
				WithMeta("token_id", id)
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	var token entities.Token
	if err := json.Unmarshal([]byte(jsonData), &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}

	return &token, nil
}

// UpdateFields applies a partial field map to a stored token
func (r *redisRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	token, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	for path, value := range fields {
		if err := token.ApplyField(path, value); err != nil {
			return apperrors.Wrapf(err, "failed to update token '%s'", id)
		}
	}

	jsonData, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := r.client.Set(ctx, r.key(id), jsonData, 0).Err(); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	return nil
}
