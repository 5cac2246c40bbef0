package tables

import (
	"context"

	"github.com/hearthglen/vtt-tokenroll/internal/entities"
)

// Repository is the world's local roll-table registry. Reference resolution
// scans List; Get exists for direct lookups from tooling.
type Repository interface {
	// Add stores a new table
	Add(ctx context.Context, table *entities.RollTable) error

	// Get retrieves a table by ID
	Get(ctx context.Context, id string) (*entities.RollTable, error)

	// List returns every table in the registry
	List(ctx context.Context) ([]*entities.RollTable, error)

	// Delete removes a table
	Delete(ctx context.Context, id string) error
}
