package orchestrator

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/hearthglen/vtt-tokenroll/internal/entities"
	apperrors "github.com/hearthglen/vtt-tokenroll/internal/errors"
	"github.com/hearthglen/vtt-tokenroll/internal/repositories/characters"
	"github.com/hearthglen/vtt-tokenroll/internal/repositories/tokens"
	"github.com/hearthglen/vtt-tokenroll/internal/services/miner"
	"github.com/hearthglen/vtt-tokenroll/internal/services/resolver"
	"github.com/hearthglen/vtt-tokenroll/internal/settings"
)

const (
	// logPrefix tags every warning this service emits
	logPrefix = "TokenRoll"

	// namePlaceholder hides the raw reference string from observers while
	// resolution is in flight
	namePlaceholder = " "

	// SettingSyncActorName, when enabled, writes a rolled name to the
	// linked character as well as the token
	SettingSyncActorName = "sync-actor-name"
)

// SelectionProvider serves the host's ambient "currently selected tokens"
// state for the manual reroll.
type SelectionProvider interface {
	SelectedTokens(ctx context.Context) ([]*entities.Token, error)
}

// Service runs the mine, resolve, write-back pipeline.
type Service interface {
	// HandleTokenCreated processes one freshly placed token
	HandleTokenCreated(ctx context.Context, token *entities.Token) error

	// RerollSelected reruns the pipeline for every selected token
	RerollSelected(ctx context.Context) error
}

// service implements the Service interface
type service struct {
	miner      miner.Service
	resolver   resolver.Service
	tokens     tokens.Repository
	characters characters.Repository
	settings   settings.Registry
	selection  SelectionProvider
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Miner      miner.Service         // Required
	Resolver   resolver.Service      // Required
	Tokens     tokens.Repository     // Required
	Characters characters.Repository // Required
	Settings   settings.Registry     // Required
	Selection  SelectionProvider     // Optional, RerollSelected fails without it
}

// NewService creates a new orchestrator service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.Miner == nil {
		panic("miner service is required")
	}
	if cfg.Resolver == nil {
		panic("resolver service is required")
	}
	if cfg.Tokens == nil {
		panic("token repository is required")
	}
	if cfg.Characters == nil {
		panic("character repository is required")
	}
	if cfg.Settings == nil {
		panic("settings registry is required")
	}

	return &service{
		miner:      cfg.Miner,
		resolver:   cfg.Resolver,
		tokens:     cfg.Tokens,
		characters: cfg.Characters,
		settings:   cfg.Settings,
		selection:  cfg.Selection,
	}
}

// HandleTokenCreated implements Service.HandleTokenCreated
func (s *service) HandleTokenCreated(ctx context.Context, token *entities.Token) error {
	return s.process(ctx, token, true)
}

// RerollSelected implements Service.RerollSelected. Tokens are processed
// concurrently; the pipeline makes no cross-token ordering promise.
func (s *service) RerollSelected(ctx context.Context) error {
	if s.selection == nil {
		return apperrors.Internal("no selection provider configured")
	}

	selected, err := s.selection.SelectedTokens(ctx)
	if err != nil {
		return apperrors.Wrap(err, "failed to read token selection")
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, token := range selected {
		token := token
		g.Go(func() error {
			// No placeholder blanking: the names are already on screen
			return s.process(gctx, token, false)
		})
	}

	return g.Wait()
}

// process is the per-token pipeline: mine, blank, resolve, write back.
func (s *service) process(ctx context.Context, token *entities.Token, blankWhileResolving bool) error {
	mined, err := s.miner.Mine(ctx, token)
	if err != nil {
		return err
	}

	if !mined.HasReferences() {
		return nil
	}

	if blankWhileResolving {
		if err := s.tokens.UpdateFields(ctx, token.ID, map[string]any{
			entities.FieldName: namePlaceholder,
		}); err != nil {
			return apperrors.Wrapf(err, "failed to blank token '%s'", token.ID)
		}
	}

	// Each reference resolves independently. A failure is a warning, not
	// an abort; the other field may still apply.
	var name, bio string

	if mined.NameReference != "" {
		if res, resolveErr := s.resolver.Resolve(ctx, mined.NameReference); resolveErr != nil {
			log.Printf("%s | could not resolve name reference for token '%s': %v", logPrefix, token.ID, resolveErr)
		} else if res.Resolved() {
			name = res.Result.Text()
		}
	}

	if mined.BioReference != "" {
		if res, resolveErr := s.resolver.Resolve(ctx, mined.BioReference); resolveErr != nil {
			log.Printf("%s | could not resolve bio reference for token '%s': %v", logPrefix, token.ID, resolveErr)
		} else if res.Resolved() {
			bio = res.Result.Text()
		}
	}

	return s.writeBack(ctx, token, mined, name, bio)
}

// writeBack persists whatever resolved. The token name is always written
// when references were found, clearing any placeholder; if nothing usable
// came back it restores the originally mined name rather than leaving the
// token blank.
func (s *service) writeBack(ctx context.Context, token *entities.Token, mined *miner.Result, name, bio string) error {
	finalName := name
	if finalName == "" {
		finalName = token.Name
	}

	if err := s.tokens.UpdateFields(ctx, token.ID, map[string]any{
		entities.FieldName: finalName,
	}); err != nil {
		return apperrors.Wrapf(err, "failed to write token '%s' name", token.ID)
	}

	if token.ActorID == "" {
		return nil
	}

	charFields := make(map[string]any)

	if bio != "" && mined.BioFieldPath != "" {
		charFields[mined.BioFieldPath] = bio
	}

	if name != "" {
		syncName, err := s.settings.GetBool(ctx, SettingSyncActorName)
		if err != nil {
			log.Printf("%s | could not read %s setting: %v", logPrefix, SettingSyncActorName, err)
		} else if syncName {
			charFields[entities.FieldName] = name
		}
	}

	if len(charFields) == 0 {
		return nil
	}

	if err := s.characters.UpdateFields(ctx, token.ActorID, charFields); err != nil {
		return apperrors.Wrapf(err, "failed to write character '%s' fields", token.ActorID)
	}

	return nil
}
