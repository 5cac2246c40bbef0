package entities

import "strings"

// RollTable is a host-owned weighted table. Rolling its formula produces a
// number; the entry whose range contains that number is drawn.
type RollTable struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Formula DiceFormula  `json:"formula"`
	Entries []TableEntry `json:"entries"`

	// DrawCount is how many entries a single roll produces. Zero means one.
	DrawCount int `json:"draw_count,omitempty"`
}

// DiceFormula is the dice expression a table is rolled with, e.g. 1d20.
type DiceFormula struct {
	Count int `json:"count"`
	Sides int `json:"sides"`
}

// TableEntry is a single weighted outcome. Low and High are the inclusive
// bounds of the formula results that draw this entry.
type TableEntry struct {
	Text string `json:"text"`
	Low  int    `json:"low"`
	High int    `json:"high"`
}

// Contains reports whether the rolled value falls in this entry's range.
func (e TableEntry) Contains(value int) bool {
	return value >= e.Low && value <= e.High
}

// TableResult is the ordered outcome of rolling a table. Callers treat the
// entries as opaque text beyond checking that at least one exists.
type TableResult struct {
	TableID string        `json:"table_id"`
	Entries []ResultEntry `json:"entries"`
}

// ResultEntry is one drawn outcome.
type ResultEntry struct {
	Text string `json:"text"`
	Roll int    `json:"roll"`
}

// Empty reports whether the roll produced no entries.
func (r *TableResult) Empty() bool {
	return r == nil || len(r.Entries) == 0
}

// Text joins the drawn entries into a single display string.
func (r *TableResult) Text() string {
	if r == nil {
		return ""
	}

	parts := make([]string, 0, len(r.Entries))
	for _, entry := range r.Entries {
		parts = append(parts, entry.Text)
	}
	return strings.Join(parts, " ")
}
