package tables

import (
	"context"
	"sync"

	"github.com/hearthglen/vtt-tokenroll/internal/entities"
	apperrors "github.com/hearthglen/vtt-tokenroll/internal/errors"
	"github.com/hearthglen/vtt-tokenroll/internal/uuid"
)

// InMemoryRepository is an in-memory implementation of the table registry
// Useful for testing and development
type InMemoryRepository struct {
	mu            sync.RWMutex
	tables        map[string]*entities.RollTable
	uuidGenerator uuid.Generator
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		tables:        make(map[string]*entities.RollTable),
		uuidGenerator: uuid.NewGoogleUUIDGenerator(),
	}
}

// Add stores a new table
func (r *InMemoryRepository) Add(ctx context.Context, table *entities.RollTable) error {
	if table == nil {
		return apperrors.InvalidArgument("table cannot be nil")
	}
	if table.ID == "" {
		table.ID = r.uuidGenerator.New()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tables[table.ID]; exists {
		return apperrors.AlreadyExistsf("table with ID '%s' already exists", table.ID).
			WithMeta("table_id", table.ID)
	}

	// Store a copy to avoid external modifications
	tableCopy := *table
	r.tables[table.ID] = &tableCopy

	return nil
}

// Get retrieves a table by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*entities.RollTable, error) {
	if id == "" {
		return nil, apperrors.InvalidArgument("table ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	table, exists := r.tables[id]
	if !exists {
		return nil, apperrors.NotFoundf("table with ID '%s' not found", id).
			WithMeta("table_id", id)
	}

	tableCopy := *table
	return &tableCopy, nil
}

// List returns every table in the registry
func (r *InMemoryRepository) List(ctx context.Context) ([]*entities.RollTable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.RollTable, 0, len(r.tables))
	for _, table := range r.tables {
		tableCopy := *table
		result = append(result, &tableCopy)
	}

	return result, nil
}

// Delete removes a table
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidArgument("table ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tables[id]; !exists {
		return apperrors.NotFoundf("table with ID '%s' not found", id)
	}

	delete(r.tables, id)
	return nil
}
