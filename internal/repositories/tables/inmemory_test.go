package tables_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthglen/vtt-tokenroll/internal/entities"
	apperrors "github.com/hearthglen/vtt-tokenroll/internal/errors"
	"github.com/hearthglen/vtt-tokenroll/internal/repositories/tables"
)

func TestInMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := tables.NewInMemoryRepository()

	table := &entities.RollTable{
		ID:      "ABC123",
		Name:    "Goblin Names",
		Formula: entities.DiceFormula{Count: 1, Sides: 2},
		Entries: []entities.TableEntry{
			{Text: "Grix", Low: 1, High: 1},
			{Text: "Snark", Low: 2, High: 2},
		},
	}

	t.Run("add and get", func(t *testing.T) {
		require.NoError(t, repo.Add(ctx, table))

		got, err := repo.Get(ctx, "ABC123")
		require.NoError(t, err)
		assert.Equal(t, "Goblin Names", got.Name)
	})

	t.Run("duplicate add fails", func(t *testing.T) {
		err := repo.Add(ctx, table)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeAlreadyExists))
	})

	t.Run("get missing table", func(t *testing.T) {
		_, err := repo.Get(ctx, "MISSING")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("list", func(t *testing.T) {
		got, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("stored table is isolated from caller mutation", func(t *testing.T) {
		table.Name = "Changed After Add"

		got, err := repo.Get(ctx, "ABC123")
		require.NoError(t, err)
		assert.Equal(t, "Goblin Names", got.Name)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "ABC123"))

		_, err := repo.Get(ctx, "ABC123")
		assert.True(t, apperrors.IsNotFound(err))
	})
}
