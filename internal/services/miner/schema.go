package miner

import (
	"github.com/hearthglen/vtt-tokenroll/internal/entities"
)

// BioSchema reads biography text from one character-sheet layout and knows
// the field path results must be written back to. Schemas are tried in
// order; the first successful read wins.
type BioSchema interface {
	// TryRead returns the biography text if this schema's field exists
	TryRead(char *entities.Character) (string, bool)

	// Path is the dotted field path for writing biography back
	Path() string
}

// flatBioSchema is the simple layout: biography directly under system
type flatBioSchema struct{}

func (flatBioSchema) TryRead(char *entities.Character) (string, bool) {
	return char.SystemString("biography")
}

func (flatBioSchema) Path() string {
	return entities.FieldBioFlat
}

// nestedBioSchema is the layout a widely-used character sheet ships:
// biography nested under details
type nestedBioSchema struct{}

func (nestedBioSchema) TryRead(char *entities.Character) (string, bool) {
	return char.SystemString("details", "biography", "value")
}

func (nestedBioSchema) Path() string {
	return entities.FieldBioNested
}

// DefaultSchemas returns the built-in adapter order: flat first, then the
// nested details layout.
func DefaultSchemas() []BioSchema {
	return []BioSchema{flatBioSchema{}, nestedBioSchema{}}
}
