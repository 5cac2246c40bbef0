package entities

import (
	"fmt"
	"strings"
)

// Field paths the write-back step uses. Biography location depends on which
// character-sheet schema the character was created under.
const (
	FieldName      = "name"
	FieldBioFlat   = "system.biography"
	FieldBioNested = "system.details.biography.value"
)

// ApplyField sets one dotted-path field on the token.
func (t *Token) ApplyField(path string, value any) error {
	if path == FieldName {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("token field %q wants a string, got %T", path, value)
		}
		t.Name = s
		return nil
	}
	return fmt.Errorf("unknown token field path %q", path)
}

// ApplyField sets one dotted-path field on the character. Paths under
// "system." are written into the System map, creating intermediate maps
// as needed.
func (c *Character) ApplyField(path string, value any) error {
	if path == FieldName {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("character field %q wants a string, got %T", path, value)
		}
		c.Name = s
		return nil
	}

	keys := strings.Split(path, ".")
	if keys[0] != "system" {
		return fmt.Errorf("unknown character field path %q", path)
	}
	keys = keys[1:]
	if len(keys) == 0 {
		return fmt.Errorf("character field path %q names no system key", path)
	}

	if c.System == nil {
		c.System = make(map[string]any)
	}

	current := c.System
	for _, key := range keys[:len(keys)-1] {
		next, ok := current[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[key] = next
		}
		current = next
	}
	current[keys[len(keys)-1]] = value

	return nil
}
