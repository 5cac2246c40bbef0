//go:build integration
// +build integration

package tables_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hearthglen/vtt-tokenroll/internal/errors"
	"github.com/hearthglen/vtt-tokenroll/internal/repositories/tables"
	"github.com/hearthglen/vtt-tokenroll/internal/testutils"
)

func TestRedisRepository_Integration(t *testing.T) {
	client := testutils.StartRedisContainer(t)

	repo := tables.NewRedisRepository(&tables.RedisRepoConfig{
		Client: client,
	})

	ctx := context.Background()

	t.Run("add and retrieve table", func(t *testing.T) {
		table := testutils.CreateTestTable("int-test-1", "Goblin Names", 4, "Grix", "Snark")

		require.NoError(t, repo.Add(ctx, table))

		retrieved, err := repo.Get(ctx, table.ID)
		require.NoError(t, err)
		assert.Equal(t, table.Name, retrieved.Name)
		assert.Equal(t, table.Formula, retrieved.Formula)
		assert.Len(t, retrieved.Entries, 2)
	})

	t.Run("add duplicate table fails", func(t *testing.T) {
		table := testutils.CreateTestTable("int-test-2", "Trinkets", 6, "Bent coin", "Old key")

		require.NoError(t, repo.Add(ctx, table))

		err := repo.Add(ctx, table)
		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeAlreadyExists))
	})

	t.Run("list includes stored tables", func(t *testing.T) {
		listed, err := repo.List(ctx)
		require.NoError(t, err)

		ids := make([]string, 0, len(listed))
		for _, table := range listed {
			ids = append(ids, table.ID)
		}
		assert.Contains(t, ids, "int-test-1")
		assert.Contains(t, ids, "int-test-2")
	})

	t.Run("delete removes the table", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "int-test-1"))

		_, err := repo.Get(ctx, "int-test-1")
		assert.True(t, apperrors.IsNotFound(err))
	})
}
