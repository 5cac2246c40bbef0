package resolver

//go:generate mockgen -destination=mock/mock_service.go -package=mockresolver -source=service.go

import (
	"context"
	"fmt"

	"github.com/hearthglen/vtt-tokenroll/internal/entities"
	apperrors "github.com/hearthglen/vtt-tokenroll/internal/errors"
	"github.com/hearthglen/vtt-tokenroll/internal/notify"
	"github.com/hearthglen/vtt-tokenroll/internal/reference"
	"github.com/hearthglen/vtt-tokenroll/internal/repositories/packs"
	"github.com/hearthglen/vtt-tokenroll/internal/repositories/tables"
	"github.com/hearthglen/vtt-tokenroll/internal/services/tableroll"
)

// Service resolves reference strings to roll results. Strings matching
// neither grammar pass through unchanged so callers can probe arbitrary
// text speculatively.
type Service interface {
	// Resolve rolls the table a reference names, or passes the input through
	Resolve(ctx context.Context, raw string) (*Resolution, error)
}

// Resolution is the outcome of resolving one string.
type Resolution struct {
	// Passthrough holds the input when it was not a reference
	Passthrough string

	// Result holds the rolled entries when a table was found and rolled.
	// Nil with a nil error means a local reference pointed at a missing
	// table: nothing to apply, already reported to the user.
	Result *entities.TableResult
}

// Resolved reports whether a usable roll result exists
func (r *Resolution) Resolved() bool {
	return r != nil && !r.Result.Empty()
}

// service implements the Service interface
type service struct {
	registry tables.Repository
	packs    packs.Repository
	roller   tableroll.Service
	notifier notify.Notifier
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Registry tables.Repository // Required
	Packs    packs.Repository  // Required
	Roller   tableroll.Service // Required
	Notifier notify.Notifier   // Optional, defaults to the log notifier
}

// NewService creates a new resolver service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.Registry == nil {
		panic("table registry is required")
	}
	if cfg.Packs == nil {
		panic("pack registry is required")
	}
	if cfg.Roller == nil {
		panic("roll service is required")
	}

	svc := &service{
		registry: cfg.Registry,
		packs:    cfg.Packs,
		roller:   cfg.Roller,
		notifier: cfg.Notifier,
	}
	if svc.notifier == nil {
		svc.notifier = notify.NewLogNotifier("Resolver")
	}

	return svc
}

// Resolve implements Service.Resolve
func (s *service) Resolve(ctx context.Context, raw string) (*Resolution, error) {
	switch {
	case reference.IsLocal(raw):
		return s.resolveLocal(ctx, raw)
	case reference.IsPackaged(raw):
		return s.resolvePackaged(ctx, raw)
	default:
		return &Resolution{Passthrough: raw}, nil
	}
}

// resolveLocal scans the world registry for the referenced table. A
// missing table is a soft failure: warn the user, yield nothing.
func (s *service) resolveLocal(ctx context.Context, raw string) (*Resolution, error) {
	ref, err := reference.ParseLocal(raw)
	if err != nil {
		return nil, err
	}

	registered, err := s.registry.List(ctx)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to scan table registry for '%s'", ref.ID)
	}

	var table *entities.RollTable
	for _, candidate := range registered {
		if candidate.ID == ref.ID {
			table = candidate
			break
		}
	}

	if table == nil {
		s.notifier.Warn(fmt.Sprintf("No roll table found for reference %s", raw))
		return &Resolution{}, nil
	}

	result, err := s.roller.Roll(ctx, table)
	if err != nil {
		return nil, err
	}
	if result.Empty() {
		return nil, apperrors.Internalf("table '%s' rolled no results", table.ID).
			WithMeta("table_id", table.ID)
	}

	return &Resolution{Result: result}, nil
}

// resolvePackaged fetches the referenced document from its pack. Every
// failure here is hard: a broken pack link is a data problem, not an
// expected state.
func (s *service) resolvePackaged(ctx context.Context, raw string) (*Resolution, error) {
	ref, err := reference.ParsePackaged(raw)
	if err != nil {
		return nil, err
	}

	pack, err := s.packs.Get(ctx, ref.Coordinate())
	if err != nil {
		return nil, err
	}

	table, err := pack.GetDocument(ctx, ref.ID)
	if err != nil {
		return nil, err
	}

	result, err := s.roller.Roll(ctx, table)
	if err != nil {
		return nil, err
	}
	if result.Empty() {
		return nil, apperrors.Internalf("table '%s' from pack '%s' rolled no results", ref.ID, ref.Coordinate()).
			WithMeta("document_id", ref.ID).
			WithMeta("coordinate", ref.Coordinate())
	}

	return &Resolution{Result: result}, nil
}
