package module

import (
	"context"
	"sync"

	"github.com/hearthglen/vtt-tokenroll/internal/entities"
)

// AmbientSelection holds the host's "currently selected tokens" state and
// serves it to the reroll operation.
type AmbientSelection struct {
	mu       sync.RWMutex
	selected []*entities.Token
}

// NewAmbientSelection creates an empty selection
func NewAmbientSelection() *AmbientSelection {
	return &AmbientSelection{}
}

// Select replaces the current selection
func (s *AmbientSelection) Select(tokens ...*entities.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = append([]*entities.Token(nil), tokens...)
}

// Clear empties the selection
func (s *AmbientSelection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// SelectedTokens implements orchestrator.SelectionProvider
func (s *AmbientSelection) SelectedTokens(ctx context.Context) ([]*entities.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*entities.Token(nil), s.selected...), nil
}
