package characters

import (
	"context"

	"github.com/hearthglen/vtt-tokenroll/internal/entities"
)

// Repository stores character records. UpdateFields mirrors the host's
// partial-update primitive with dotted field paths.
type Repository interface {
	// Create stores a new character
	Create(ctx context.Context, char *entities.Character) error

	// Get retrieves a character by ID
	Get(ctx context.Context, id string) (*entities.Character, error)

	// UpdateFields applies a partial field map to a stored character
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
}
