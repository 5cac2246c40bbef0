package entities

// Character is a character record owned by the host. The System map holds
// sheet data whose layout varies by character-sheet schema; biography text
// may live at "biography" or nested under "details.biography.value".
type Character struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	System map[string]any `json:"system"`
}

// SystemString walks the System map along the given keys and returns the
// string found at the end of the path, if any.
func (c *Character) SystemString(keys ...string) (string, bool) {
	if c == nil || c.System == nil {
		return "", false
	}

	current := c.System
	for i, key := range keys {
		value, exists := current[key]
		if !exists {
			return "", false
		}

		if i == len(keys)-1 {
			s, ok := value.(string)
			return s, ok
		}

		next, ok := value.(map[string]any)
		if !ok {
			return "", false
		}
		current = next
	}

	return "", false
}
