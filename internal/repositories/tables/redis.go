package tables

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hearthglen/vtt-tokenroll/internal/entities"
	apperrors "github.com/hearthglen/vtt-tokenroll/internal/errors"
	"github.com/hearthglen/vtt-tokenroll/internal/uuid"
)

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client        redis.UniversalClient
	uuidGenerator uuid.Generator
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client        redis.UniversalClient
	UUIDGenerator uuid.Generator
}

// NewRedisRepository creates a new Redis-backed table registry
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	if cfg.UUIDGenerator == nil {
		cfg.UUIDGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return &redisRepo{
		client:        cfg.Client,
		uuidGenerator: cfg.UUIDGenerator,
	}
}

// key generates the Redis key for a table
func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("rolltable:%s", id)
}

// indexKey is the set of all table IDs in the registry
func (r *redisRepo) indexKey() string {
	return "rolltables"
}

// Add stores a new table
func (r *redisRepo) Add(ctx context.Context, table *entities.RollTable) error {
	if table == nil {
		return apperrors.InvalidArgument("table cannot be nil")
	}
	if table.ID == "" {
		table.ID = r.uuidGenerator.New()
	}

	exists, err := r.client.Exists(ctx, r.key(table.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check table existence: %w", err)
	}
	if exists > 0 {
		return apperrors.AlreadyExistsf("table with ID '%s' already exists", table.ID).
			WithMeta("table_id", table.ID)
	}

	jsonData, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to marshal table: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(table.ID), jsonData, 0)
	pipe.SAdd(ctx, r.indexKey(), table.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store table: %w", err)
	}

	return nil
}

// Get retrieves a table by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*entities.RollTable, error) {
	if id == "" {
		return nil, apperrors.InvalidArgument("table ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFoundf("table with ID '%s' not found", id).
				WithMeta("table_id", id)
		}
		return nil, fmt.Errorf("failed to get table: %w", err)
	}

	var table entities.RollTable
	if err := json.Unmarshal([]byte(jsonData), &table); err != nil {
		return nil, fmt.Errorf("failed to unmarshal table: %w", err)
	}

	return &table, nil
}

// List returns every table in the registry
func (r *redisRepo) List(ctx context.Context) ([]*entities.RollTable, error) {
	ids, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list table IDs: %w", err)
	}

	result := make([]*entities.RollTable, 0, len(ids))
	for _, id := range ids {
		table, err := r.Get(ctx, id)
		if err != nil {
			// Index entries can outlive their tables; skip the strays
			if apperrors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		result = append(result, table)
	}

	return result, nil
}

// Delete removes a table
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidArgument("table ID is required")
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.indexKey(), id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete table: %w", err)
	}

	return nil
}
