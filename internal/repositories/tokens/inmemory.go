package tokens

import (
	"context"
	"sync"

	"github.com/hearthglen/vtt-tokenroll/internal/entities"
	apperrors "github.com/hearthglen/vtt-tokenroll/internal/errors"
)

// InMemoryRepository is an in-memory token store
// Useful for testing and development
type InMemoryRepository struct {
	mu     sync.RWMutex
	tokens map[string]*entities.Token
}

// NewInMemoryRepository creates a new in-memory token store
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		tokens: make(map[string]*entities.Token),
	}
}

// Create stores a new token
func (r *InMemoryRepository) Create(ctx context.Context, token *entities.Token) error {
	if token == nil {
		return apperrors.InvalidArgument("token cannot be nil")
	}
	if token.ID == "" {
		return apperrors.InvalidArgument("token ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tokens[token.ID]; exists {
		return apperrors.AlreadyExistsf("token with ID '%s' already exists", token.ID).
			WithMeta("token_id", token.ID)
	}

	tokenCopy := *token
	r.tokens[token.ID] = &tokenCopy

	return nil
}

// Get retrieves a token by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*entities.Token, error) {
	if id == "" {
		return nil, apperrors.InvalidArgument("token ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	token, exists := r.tokens[id]
	if !exists {
		return nil, apperrors.NotFoundf("token with ID '%s' not found", id).
			WithMeta("token_id", id)
	}

	tokenCopy := *token
	return &tokenCopy, nil
}

// UpdateFields applies a partial field map to a stored token
func (r *InMemoryRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if id == "" {
		return apperrors.InvalidArgument("token ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	token, exists := r.tokens[id]
	if !exists {
		return apperrors.NotFoundf("token with ID '%s' not found", id).
			WithMeta("token_id", id)
	}

	for path, value := range fields {
		if err := token.ApplyField(path, value); err != nil {
			return apperrors.Wrapf(err, "failed to update token '%s'", id)
		}
	}

	return nil
}
