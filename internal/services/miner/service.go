package miner

//go:generate mockgen -destination=mock/mock_service.go -package=mockminer -source=service.go

import (
	"context"
	"strings"

	"github.com/hearthglen/vtt-tokenroll/internal/entities"
	apperrors "github.com/hearthglen/vtt-tokenroll/internal/errors"
	"github.com/hearthglen/vtt-tokenroll/internal/markup"
	"github.com/hearthglen/vtt-tokenroll/internal/reference"
	"github.com/hearthglen/vtt-tokenroll/internal/repositories/characters"
)

// Service scans a token for embedded table references: the display name
// always, the linked character's biography only when the token is not
// identity-linked. Mining never mutates anything.
type Service interface {
	Mine(ctx context.Context, token *entities.Token) (*Result, error)
}

// Result is what mining one token produced. Consumed immediately by the
// resolution step, never persisted.
type Result struct {
	// NameReference is the reference found in the display name, if any
	NameReference string

	// BioReference is the reference found in the biography, if any
	BioReference string

	// BioFieldPath is where biography text lives on this character's
	// sheet schema; set whenever a biography was readable at all
	BioFieldPath string
}

// HasReferences reports whether anything was found worth resolving
func (r *Result) HasReferences() bool {
	return r != nil && (r.NameReference != "" || r.BioReference != "")
}

// service implements the Service interface
type service struct {
	characters characters.Repository
	schemas    []BioSchema
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Characters characters.Repository // Required
	Schemas    []BioSchema           // Optional, defaults to flat then nested
}

// NewService creates a new miner service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.Characters == nil {
		panic("character repository is required")
	}

	svc := &service{
		characters: cfg.Characters,
		schemas:    cfg.Schemas,
	}
	if len(svc.schemas) == 0 {
		svc.schemas = DefaultSchemas()
	}

	return svc
}

// Mine implements Service.Mine
func (s *service) Mine(ctx context.Context, token *entities.Token) (*Result, error) {
	if token == nil {
		return nil, apperrors.InvalidArgument("token cannot be nil")
	}

	result := &Result{}

	name := strings.TrimSpace(token.Name)
	if reference.IsReference(name) {
		result.NameReference = name
	}

	// Identity-linked tokens share state with their character; rewriting
	// the character's biography from such a token would loop back into
	// the token itself, so the biography is only mined for snapshots.
	if token.ActorLinked || token.ActorID == "" {
		return result, nil
	}

	char, err := s.characters.Get(ctx, token.ActorID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			// No resolvable character: name mining alone
			return result, nil
		}
		return nil, apperrors.Wrapf(err, "failed to load character '%s'", token.ActorID)
	}

	for _, schema := range s.schemas {
		raw, ok := schema.TryRead(char)
		if !ok {
			continue
		}

		result.BioFieldPath = schema.Path()

		plain := strings.TrimSpace(markup.StripHTML(raw))
		if reference.IsReference(plain) {
			result.BioReference = plain
		}
		break
	}

	return result, nil
}
