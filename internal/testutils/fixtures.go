package testutils

import (
	"github.com/hearthglen/vtt-tokenroll/internal/entities"
)

// CreateTestTable creates a roll table whose every entry is reachable on
// the given formula
func CreateTestTable(id, name string, sides int, texts ...string) *entities.RollTable {
	entries := make([]entities.TableEntry, 0, len(texts))
	span := sides / len(texts)
	if span < 1 {
		span = 1
	}

	low := 1
	for i, text := range texts {
		high := low + span - 1
		if i == len(texts)-1 {
			high = sides
		}
		entries = append(entries, entities.TableEntry{Text: text, Low: low, High: high})
		low = high + 1
	}

	return &entities.RollTable{
		ID:      id,
		Name:    name,
		Formula: entities.DiceFormula{Count: 1, Sides: sides},
		Entries: entries,
	}
}

// CreateTestToken creates a token for testing
func CreateTestToken(id, name, actorID string, linked bool) *entities.Token {
	return &entities.Token{
		ID:          id,
		Name:        name,
		ActorID:     actorID,
		ActorLinked: linked,
	}
}

// CreateTestCharacterFlatBio creates a character whose biography lives at
// the flat system.biography field
func CreateTestCharacterFlatBio(id, name, bio string) *entities.Character {
	return &entities.Character{
		ID:   id,
		Name: name,
		System: map[string]any{
			"biography": bio,
		},
	}
}

// CreateTestCharacterNestedBio creates a character using the nested
// details.biography.value sheet schema
func CreateTestCharacterNestedBio(id, name, bio string) *entities.Character {
	return &entities.Character{
		ID:   id,
		Name: name,
		System: map[string]any{
			"details": map[string]any{
				"biography": map[string]any{
					"value": bio,
				},
			},
		},
	}
}
