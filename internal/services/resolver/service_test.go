package resolver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockdice "github.com/hearthglen/vtt-tokenroll/internal/dice/mock"
	apperrors "github.com/hearthglen/vtt-tokenroll/internal/errors"
	mocknotify "github.com/hearthglen/vtt-tokenroll/internal/notify/mock"
	"github.com/hearthglen/vtt-tokenroll/internal/repositories/packs"
	"github.com/hearthglen/vtt-tokenroll/internal/repositories/tables"
	"github.com/hearthglen/vtt-tokenroll/internal/services/resolver"
	"github.com/hearthglen/vtt-tokenroll/internal/services/tableroll"
	"github.com/hearthglen/vtt-tokenroll/internal/testutils"
)

type fixture struct {
	registry *tables.InMemoryRepository
	packs    *packs.InMemoryRepository
	roller   *mockdice.ManualMockRoller
	notifier *mocknotify.RecordingNotifier
	svc      resolver.Service
}

func newFixture() *fixture {
	f := &fixture{
		registry: tables.NewInMemoryRepository(),
		packs:    packs.NewInMemoryRepository(),
		roller:   mockdice.NewManualMockRoller(),
		notifier: mocknotify.NewRecordingNotifier(),
	}

	f.svc = resolver.NewService(&resolver.ServiceConfig{
		Registry: f.registry,
		Packs:    f.packs,
		Roller:   tableroll.NewService(&tableroll.ServiceConfig{DiceRoller: f.roller}),
		Notifier: f.notifier,
	})

	return f
}

func TestResolvePassthrough(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	inputs := []string{
		"Goblin Scout",
		"",
		"@UUID[Actor.ABC123]",
		"not a reference at all",
	}

	for _, input := range inputs {
		res, err := f.svc.Resolve(ctx, input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, input, res.Passthrough)
		assert.False(t, res.Resolved())
	}

	assert.Empty(t, f.notifier.Warnings())
}

func TestResolveLocal(t *testing.T) {
	ctx := context.Background()

	t.Run("existing table rolls", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.registry.Add(ctx, testutils.CreateTestTable("ABC123", "Goblin Names", 2, "Grix", "Snark")))
		f.roller.SetRolls([]int{1})

		res, err := f.svc.Resolve(ctx, "@UUID[RollTable.ABC123]")
		require.NoError(t, err)
		require.True(t, res.Resolved())
		assert.Equal(t, "Grix", res.Result.Text())
	})

	t.Run("missing table warns once and yields nothing", func(t *testing.T) {
		f := newFixture()

		res, err := f.svc.Resolve(ctx, "@UUID[RollTable.MISSING]")
		require.NoError(t, err)
		assert.False(t, res.Resolved())
		assert.Empty(t, res.Passthrough)

		warnings := f.notifier.Warnings()
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "@UUID[RollTable.MISSING]")
	})

	t.Run("empty roll is a hard failure", func(t *testing.T) {
		f := newFixture()
		table := testutils.CreateTestTable("ABC123", "Goblin Names", 2, "Grix")
		table.Entries[0].High = 1 // roll of 2 hits no range
		require.NoError(t, f.registry.Add(ctx, table))
		f.roller.SetRolls([]int{2})

		_, err := f.svc.Resolve(ctx, "@UUID[RollTable.ABC123]")
		require.Error(t, err)
		assert.True(t, apperrors.IsInternal(err))
	})
}

func TestResolvePackaged(t *testing.T) {
	ctx := context.Background()
	ref := "@UUID[Compendium.myns.mypack.RollTable.XYZ789]"

	t.Run("existing document rolls", func(t *testing.T) {
		f := newFixture()
		table := testutils.CreateTestTable("XYZ789", "Trinkets", 2, "Bent coin", "Old key")
		require.NoError(t, f.packs.AddDocument(ctx, "myns.mypack", table))
		f.roller.SetRolls([]int{2})

		res, err := f.svc.Resolve(ctx, ref)
		require.NoError(t, err)
		require.True(t, res.Resolved())
		assert.Equal(t, "Old key", res.Result.Text())
	})

	t.Run("malformed coordinate is a hard failure", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Resolve(ctx, "@UUID[Compendium.myns.RollTable.XYZ789]")
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidArgument(err))
	})

	t.Run("missing pack error names the coordinate", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Resolve(ctx, ref)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
		assert.Contains(t, err.Error(), "myns.mypack")
	})

	t.Run("missing document error names id and coordinate", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.packs.AddDocument(ctx, "myns.mypack",
			testutils.CreateTestTable("OTHER", "Other", 2, "x", "y")))

		_, err := f.svc.Resolve(ctx, ref)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
		assert.Contains(t, err.Error(), "XYZ789")
		assert.Contains(t, err.Error(), "myns.mypack")
	})

	t.Run("empty roll is a hard failure naming id and coordinate", func(t *testing.T) {
		f := newFixture()
		table := testutils.CreateTestTable("XYZ789", "Trinkets", 2, "Bent coin")
		table.Entries[0].High = 1
		require.NoError(t, f.packs.AddDocument(ctx, "myns.mypack", table))
		f.roller.SetRolls([]int{2})

		_, err := f.svc.Resolve(ctx, ref)
		require.Error(t, err)
		assert.True(t, apperrors.IsInternal(err))
		assert.Contains(t, err.Error(), "XYZ789")
		assert.Contains(t, err.Error(), "myns.mypack")
	})
}
