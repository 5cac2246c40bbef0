package packs

import (
	"context"

	"github.com/hearthglen/vtt-tokenroll/internal/entities"
)

// Pack is a handle to one content bundle. Documents inside it are fetched
// by ID, asynchronously in the host; here that means a ctx-aware call.
type Pack interface {
	// Coordinate returns the namespace.package key this pack is known by
	Coordinate() string

	// GetDocument fetches a table from the pack by its resource ID
	GetDocument(ctx context.Context, id string) (*entities.RollTable, error)
}

// Repository is the packaged-bundle registry: packs looked up by their
// namespace.package coordinate.
type Repository interface {
	// Get returns a handle to the pack at the given coordinate
	Get(ctx context.Context, coordinate string) (Pack, error)

	// AddDocument stores a table inside a pack, creating the pack if needed
	AddDocument(ctx context.Context, coordinate string, table *entities.RollTable) error
}
