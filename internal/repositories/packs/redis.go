package packs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hearthglen/vtt-tokenroll/internal/entities"
	apperrors "github.com/hearthglen/vtt-tokenroll/internal/errors"
)

// redisRepo implements the pack registry using Redis
type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis pack registry
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed pack registry
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

// indexKey is the set of known pack coordinates
func (r *redisRepo) indexKey() string {
	return "packs"
}

// docKey generates the Redis key for a document inside a pack
func (r *redisRepo) docKey(coordinate, id string) string {
	return fmt.Sprintf("pack:%s:doc:%s", coordinate, id)
}

// Get returns a handle to the pack at the given coordinate
func (r *redisRepo) Get(ctx context.Context, coordinate string) (Pack, error) {
	if coordinate == "" {
		return nil, apperrors.InvalidArgument("pack coordinate is required")
	}

	known, err := r.client.SIsMember(ctx, r.indexKey(), coordinate).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check pack existence: %w", err)
	}
	if !known {
		return nil, apperrors.NotFoundf("pack '%s' not found", coordinate).
			WithMeta("coordinate", coordinate)
	}

	return &redisPack{repo: r, coordinate: coordinate}, nil
}

// AddDocument stores a table inside a pack, creating the pack if needed
func (r *redisRepo) AddDocument(ctx context.Context, coordinate string, table *entities.RollTable) error {
	if coordinate == "" {
		return apperrors.InvalidArgument("pack coordinate is required")
	}
	if table == nil {
		return apperrors.InvalidArgument("table cannot be nil")
	}
	if table.ID == "" {
		return apperrors.InvalidArgument("table ID is required")
	}

	jsonData, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to marshal table: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.SAdd(ctx, r.indexKey(), coordinate)
	pipe.Set(ctx, r.docKey(coordinate, table.ID), jsonData, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store pack document: %w", err)
	}

	return nil
}

// redisPack is a fetch handle bound to one coordinate
type redisPack struct {
	repo       *redisRepo
	coordinate string
}

// Coordinate returns the namespace.package key this pack is known by
func (p *redisPack) Coordinate() string {
	return p.coordinate
}

// GetDocument fetches a table from the pack by its resource ID
func (p *redisPack) GetDocument(ctx context.Context, id string) (*entities.RollTable, error) {
	if id == "" {
		return nil, apperrors.InvalidArgument("document ID is required")
	}

	jsonData, err := p.repo.client.Get(ctx, p.repo.docKey(p.coordinate, id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFoundf("document '%s' not found in pack '%s'", id, p.coordinate).
				WithMeta("document_id", id).
				WithMeta("coordinate", p.coordinate)
		}
		return nil, fmt.Errorf("failed to fetch pack document: %w", err)
	}

	var table entities.RollTable
	if err := json.Unmarshal([]byte(jsonData), &table); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pack document: %w", err)
	}

	return &table, nil
}
