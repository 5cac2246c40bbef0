package tokens

import (
	"context"

	"github.com/hearthglen/vtt-tokenroll/internal/entities"
)

// Repository stores map tokens. UpdateFields is the host's partial-update
// primitive: a map of dotted field paths to new values.
type Repository interface {
	// Create stores a new token
	Create(ctx context.Context, token *entities.Token) error

	// Get retrieves a token by ID
	Get(ctx context.Context, id string) (*entities.Token, error)

	// UpdateFields applies a partial field map to a stored token
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
}
