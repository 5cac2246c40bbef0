package characters

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hearthglen/vtt-tokenroll/internal/entities"
	apperrors "github.com/hearthglen/vtt-tokenroll/internal/errors"
)

// InMemoryRepository is an in-memory character store
// Useful for testing and development
type InMemoryRepository struct {
	mu         sync.RWMutex
	characters map[string]*entities.Character
}

// NewInMemoryRepository creates a new in-memory character store
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		characters: make(map[string]*entities.Character),
	}
}

// deepCopy clones a character including its nested System map
func deepCopy(char *entities.Character) (*entities.Character, error) {
	data, err := json.Marshal(char)
	if err != nil {
		return nil, err
	}

	var out entities.Character
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create stores a new character
func (r *InMemoryRepository) Create(ctx context.Context, char *entities.Character) error {
	if char == nil {
		return apperrors.InvalidArgument("character cannot be nil")
	}
	if char.ID == "" {
		return apperrors.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[char.ID]; exists {
		return apperrors.AlreadyExistsf("character with ID '%s' already exists", char.ID).
			WithMeta("character_id", char.ID)
	}

	charCopy, err := deepCopy(char)
	if err != nil {
		return apperrors.Wrap(err, "failed to copy character")
	}
	r.characters[char.ID] = charCopy

	return nil
}

// Get retrieves a character by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*entities.Character, error) {
	if id == "" {
		return nil, apperrors.InvalidArgument("character ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	char, exists := r.characters[id]
	if !exists {
		return nil, apperrors.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}

	return deepCopy(char)
}

// UpdateFields applies a partial field map to a stored character
func (r *InMemoryRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if id == "" {
		return apperrors.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	char, exists := r.characters[id]
	if !exists {
		return apperrors.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}

	for path, value := range fields {
		if err := char.ApplyField(path, value); err != nil {
			return apperrors.Wrapf(err, "failed to update character '%s'", id)
		}
	}

	return nil
}
