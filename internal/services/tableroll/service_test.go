package tableroll_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockdice "github.com/hearthglen/vtt-tokenroll/internal/dice/mock"
	"github.com/hearthglen/vtt-tokenroll/internal/entities"
	"github.com/hearthglen/vtt-tokenroll/internal/services/tableroll"
)

func goblinNames() *entities.RollTable {
	return &entities.RollTable{
		ID:      "ABC123",
		Name:    "Goblin Names",
		Formula: entities.DiceFormula{Count: 1, Sides: 4},
		Entries: []entities.TableEntry{
			{Text: "Grix", Low: 1, High: 2},
			{Text: "Snark", Low: 3, High: 4},
		},
	}
}

func TestServiceRoll(t *testing.T) {
	ctx := context.Background()

	t.Run("draws the entry whose range contains the roll", func(t *testing.T) {
		roller := mockdice.NewManualMockRoller()
		roller.SetRolls([]int{2})

		svc := tableroll.NewService(&tableroll.ServiceConfig{DiceRoller: roller})

		result, err := svc.Roll(ctx, goblinNames())
		require.NoError(t, err)
		require.Len(t, result.Entries, 1)
		assert.Equal(t, "Grix", result.Entries[0].Text)
	})

	t.Run("multiple draws keep order", func(t *testing.T) {
		roller := mockdice.NewManualMockRoller()
		roller.SetRolls([]int{4, 1})

		table := goblinNames()
		table.DrawCount = 2

		svc := tableroll.NewService(&tableroll.ServiceConfig{DiceRoller: roller})

		result, err := svc.Roll(ctx, table)
		require.NoError(t, err)
		require.Len(t, result.Entries, 2)
		assert.Equal(t, "Snark", result.Entries[0].Text)
		assert.Equal(t, "Grix", result.Entries[1].Text)
	})

	t.Run("roll outside every range yields an empty result", func(t *testing.T) {
		roller := mockdice.NewManualMockRoller()
		roller.SetRolls([]int{4})

		table := goblinNames()
		table.Entries = []entities.TableEntry{{Text: "Grix", Low: 1, High: 1}}

		svc := tableroll.NewService(&tableroll.ServiceConfig{DiceRoller: roller})

		result, err := svc.Roll(ctx, table)
		require.NoError(t, err)
		assert.True(t, result.Empty())
	})

	t.Run("missing formula falls back to the widest entry bound", func(t *testing.T) {
		roller := mockdice.NewManualMockRoller()
		roller.SetRolls([]int{6})

		table := goblinNames()
		table.Formula = entities.DiceFormula{}
		table.Entries = []entities.TableEntry{{Text: "Wide", Low: 1, High: 6}}

		svc := tableroll.NewService(&tableroll.ServiceConfig{DiceRoller: roller})

		result, err := svc.Roll(ctx, table)
		require.NoError(t, err)
		require.Len(t, result.Entries, 1)
		assert.Equal(t, "Wide", result.Entries[0].Text)
	})

	t.Run("nil table rejected", func(t *testing.T) {
		svc := tableroll.NewService(nil)
		_, err := svc.Roll(ctx, nil)
		assert.Error(t, err)
	})
}
