package packs

import (
	"context"
	"sync"

	"github.com/hearthglen/vtt-tokenroll/internal/entities"
	apperrors "github.com/hearthglen/vtt-tokenroll/internal/errors"
)

// InMemoryRepository is an in-memory pack registry
// Useful for testing and development
type InMemoryRepository struct {
	mu    sync.RWMutex
	packs map[string]map[string]*entities.RollTable
}

// NewInMemoryRepository creates a new in-memory pack registry
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		packs: make(map[string]map[string]*entities.RollTable),
	}
}

// Get returns a handle to the pack at the given coordinate
func (r *InMemoryRepository) Get(ctx context.Context, coordinate string) (Pack, error) {
	if coordinate == "" {
		return nil, apperrors.InvalidArgument("pack coordinate is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, exists := r.packs[coordinate]; !exists {
		return nil, apperrors.NotFoundf("pack '%s' not found", coordinate).
			WithMeta("coordinate", coordinate)
	}

	return &inMemoryPack{repo: r, coordinate: coordinate}, nil
}

// AddDocument stores a table inside a pack, creating the pack if needed
func (r *InMemoryRepository) AddDocument(ctx context.Context, coordinate string, table *entities.RollTable) error {
	if coordinate == "" {
		return apperrors.InvalidArgument("pack coordinate is required")
	}
	if table == nil {
		return apperrors.InvalidArgument("table cannot be nil")
	}
	if table.ID == "" {
		return apperrors.InvalidArgument("table ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	docs, exists := r.packs[coordinate]
	if !exists {
		docs = make(map[string]*entities.RollTable)
		r.packs[coordinate] = docs
	}

	tableCopy := *table
	docs[table.ID] = &tableCopy

	return nil
}

// inMemoryPack is a live handle into the repository's map
type inMemoryPack struct {
	repo       *InMemoryRepository
	coordinate string
}

// Coordinate returns the namespace.package key this pack is known by
func (p *inMemoryPack) Coordinate() string {
	return p.coordinate
}

// GetDocument fetches a table from the pack by its resource ID
func (p *inMemoryPack) GetDocument(ctx context.Context, id string) (*entities.RollTable, error) {
	if id == "" {
		return nil, apperrors.InvalidArgument("document ID is required")
	}

	p.repo.mu.RLock()
	defer p.repo.mu.RUnlock()

	docs, exists := p.repo.packs[p.coordinate]
	if !exists {
		return nil, apperrors.NotFoundf("pack '%s' not found", p.coordinate).
			WithMeta("coordinate", p.coordinate)
	}

	table, exists := docs[id]
	if !exists {
		return nil, apperrors.NotFoundf("document '%s' not found in pack '%s'", id, p.coordinate).
			WithMeta("document_id", id).
			WithMeta("coordinate", p.coordinate)
	}

	tableCopy := *table
	return &tableCopy, nil
}
