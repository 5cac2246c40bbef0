package orchestrator_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockdice "github.com/hearthglen/vtt-tokenroll/internal/dice/mock"
	"github.com/hearthglen/vtt-tokenroll/internal/entities"
	mocknotify "github.com/hearthglen/vtt-tokenroll/internal/notify/mock"
	"github.com/hearthglen/vtt-tokenroll/internal/repositories/characters"
	"github.com/hearthglen/vtt-tokenroll/internal/repositories/packs"
	"github.com/hearthglen/vtt-tokenroll/internal/repositories/tables"
	"github.com/hearthglen/vtt-tokenroll/internal/repositories/tokens"
	"github.com/hearthglen/vtt-tokenroll/internal/services/miner"
	"github.com/hearthglen/vtt-tokenroll/internal/services/orchestrator"
	"github.com/hearthglen/vtt-tokenroll/internal/services/resolver"
	"github.com/hearthglen/vtt-tokenroll/internal/services/tableroll"
	"github.com/hearthglen/vtt-tokenroll/internal/settings"
	"github.com/hearthglen/vtt-tokenroll/internal/testutils"
)

// spyTokenRepo records every UpdateFields call so tests can observe the
// placeholder-blanking step
type spyTokenRepo struct {
	tokens.Repository

	mu         sync.Mutex
	nameWrites []string
}

func (s *spyTokenRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	s.mu.Lock()
	if name, ok := fields[entities.FieldName].(string); ok {
		s.nameWrites = append(s.nameWrites, name)
	}
	s.mu.Unlock()
	return s.Repository.UpdateFields(ctx, id, fields)
}

func (s *spyTokenRepo) NameWrites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.nameWrites))
	copy(out, s.nameWrites)
	return out
}

// staticSelection serves a fixed token list
type staticSelection struct {
	selected []*entities.Token
}

func (s *staticSelection) SelectedTokens(ctx context.Context) ([]*entities.Token, error) {
	return s.selected, nil
}

type fixture struct {
	tokens    *spyTokenRepo
	chars     *characters.InMemoryRepository
	registry  *tables.InMemoryRepository
	packs     *packs.InMemoryRepository
	roller    *mockdice.ManualMockRoller
	notifier  *mocknotify.RecordingNotifier
	settings  *settings.InMemoryRegistry
	selection *staticSelection
	svc       orchestrator.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		tokens:    &spyTokenRepo{Repository: tokens.NewInMemoryRepository()},
		chars:     characters.NewInMemoryRepository(),
		registry:  tables.NewInMemoryRepository(),
		packs:     packs.NewInMemoryRepository(),
		roller:    mockdice.NewManualMockRoller(),
		notifier:  mocknotify.NewRecordingNotifier(),
		settings:  settings.NewInMemoryRegistry(),
		selection: &staticSelection{},
	}

	require.NoError(t, f.settings.Register(ctx, settings.Setting{
		Key:     orchestrator.SettingSyncActorName,
		Scope:   settings.ScopeWorld,
		Default: false,
	}))

	resolverSvc := resolver.NewService(&resolver.ServiceConfig{
		Registry: f.registry,
		Packs:    f.packs,
		Roller:   tableroll.NewService(&tableroll.ServiceConfig{DiceRoller: f.roller}),
		Notifier: f.notifier,
	})

	f.svc = orchestrator.NewService(&orchestrator.ServiceConfig{
		Miner:      miner.NewService(&miner.ServiceConfig{Characters: f.chars}),
		Resolver:   resolverSvc,
		Tokens:     f.tokens,
		Characters: f.chars,
		Settings:   f.settings,
		Selection:  f.selection,
	})

	return f
}

// place stores the token then runs the creation pipeline, the order the
// host invokes them in
func (f *fixture) place(t *testing.T, token *entities.Token) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.tokens.Create(ctx, token))
	require.NoError(t, f.svc.HandleTokenCreated(ctx, token))
}

func TestHandleTokenCreated(t *testing.T) {
	ctx := context.Background()

	t.Run("rolls the name and blanks while resolving", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.registry.Add(ctx, testutils.CreateTestTable("ABC123", "Goblin Names", 2, "Grix", "Snark")))
		f.roller.SetRolls([]int{1})

		f.place(t, testutils.CreateTestToken("tok-1", "@UUID[RollTable.ABC123]{Goblin Name}", "", false))

		got, err := f.tokens.Get(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "Grix", got.Name)

		// Placeholder first, then the rolled name
		assert.Equal(t, []string{" ", "Grix"}, f.tokens.NameWrites())
	})

	t.Run("plain name is a no-op and never blanks", func(t *testing.T) {
		f := newFixture(t)

		f.place(t, testutils.CreateTestToken("tok-1", "Goblin Scout", "", false))

		got, err := f.tokens.Get(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "Goblin Scout", got.Name)
		assert.Empty(t, f.tokens.NameWrites())
	})

	t.Run("sync-actor-name also renames the character", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.registry.Add(ctx, testutils.CreateTestTable("ABC123", "Goblin Names", 2, "Grix", "Snark")))
		require.NoError(t, f.chars.Create(ctx, testutils.CreateTestCharacterFlatBio("char-1", "Unnamed", "")))
		require.NoError(t, f.settings.SetBool(ctx, orchestrator.SettingSyncActorName, true))
		f.roller.SetRolls([]int{1})

		f.place(t, testutils.CreateTestToken("tok-1", "@UUID[RollTable.ABC123]{Goblin Name}", "char-1", false))

		got, err := f.tokens.Get(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "Grix", got.Name)

		char, err := f.chars.Get(ctx, "char-1")
		require.NoError(t, err)
		assert.Equal(t, "Grix", char.Name)
	})

	t.Run("character name untouched when sync is off", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.registry.Add(ctx, testutils.CreateTestTable("ABC123", "Goblin Names", 2, "Grix", "Snark")))
		require.NoError(t, f.chars.Create(ctx, testutils.CreateTestCharacterFlatBio("char-1", "Unnamed", "")))
		f.roller.SetRolls([]int{2})

		f.place(t, testutils.CreateTestToken("tok-1", "@UUID[RollTable.ABC123]", "char-1", false))

		char, err := f.chars.Get(ctx, "char-1")
		require.NoError(t, err)
		assert.Equal(t, "Unnamed", char.Name)
	})

	t.Run("bio reference writes to the recorded schema path", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.registry.Add(ctx, testutils.CreateTestTable("BIO111", "Backstories", 1, "Raised by wolves.")))
		require.NoError(t, f.chars.Create(ctx,
			testutils.CreateTestCharacterNestedBio("char-1", "Unnamed", "@UUID[RollTable.BIO111]")))
		f.roller.SetRolls([]int{1})

		f.place(t, testutils.CreateTestToken("tok-1", "Goblin", "char-1", false))

		char, err := f.chars.Get(ctx, "char-1")
		require.NoError(t, err)
		bio, ok := char.SystemString("details", "biography", "value")
		require.True(t, ok)
		assert.Equal(t, "Raised by wolves.", bio)
	})

	t.Run("failed resolution restores the original name", func(t *testing.T) {
		f := newFixture(t)
		// No table registered: the local reference resolves to nothing

		f.place(t, testutils.CreateTestToken("tok-1", "@UUID[RollTable.MISSING]", "", false))

		got, err := f.tokens.Get(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "@UUID[RollTable.MISSING]", got.Name, "token must not be left blank")
		assert.Equal(t, []string{" ", "@UUID[RollTable.MISSING]"}, f.tokens.NameWrites())
		assert.Len(t, f.notifier.Warnings(), 1)
	})

	t.Run("name failure does not block bio resolution", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.registry.Add(ctx, testutils.CreateTestTable("BIO111", "Backstories", 1, "Raised by wolves.")))
		require.NoError(t, f.chars.Create(ctx,
			testutils.CreateTestCharacterFlatBio("char-1", "Unnamed", "@UUID[RollTable.BIO111]")))
		f.roller.SetRolls([]int{1})

		f.place(t, testutils.CreateTestToken("tok-1", "@UUID[RollTable.MISSING]", "char-1", false))

		char, err := f.chars.Get(ctx, "char-1")
		require.NoError(t, err)
		bio, ok := char.SystemString("biography")
		require.True(t, ok)
		assert.Equal(t, "Raised by wolves.", bio)

		got, err := f.tokens.Get(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "@UUID[RollTable.MISSING]", got.Name)
	})

	t.Run("identity-linked token skips the biography entirely", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.chars.Create(ctx,
			testutils.CreateTestCharacterFlatBio("char-1", "Unnamed", "@UUID[RollTable.BIO111]")))

		f.place(t, testutils.CreateTestToken("tok-1", "Goblin", "char-1", true))

		char, err := f.chars.Get(ctx, "char-1")
		require.NoError(t, err)
		bio, ok := char.SystemString("biography")
		require.True(t, ok)
		assert.Equal(t, "@UUID[RollTable.BIO111]", bio, "biography must stay untouched")
	})
}

func TestRerollSelected(t *testing.T) {
	ctx := context.Background()

	t.Run("rerolls every selected token without blanking", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.registry.Add(ctx, testutils.CreateTestTable("ABC123", "Goblin Names", 2, "Grix", "Snark")))
		f.roller.SetRolls([]int{1, 2})

		first := testutils.CreateTestToken("tok-1", "@UUID[RollTable.ABC123]", "", false)
		second := testutils.CreateTestToken("tok-2", "@UUID[RollTable.ABC123]", "", false)
		require.NoError(t, f.tokens.Create(ctx, first))
		require.NoError(t, f.tokens.Create(ctx, second))
		f.selection.selected = []*entities.Token{first, second}

		require.NoError(t, f.svc.RerollSelected(ctx))

		names := map[string]bool{}
		for _, id := range []string{"tok-1", "tok-2"} {
			got, err := f.tokens.Get(ctx, id)
			require.NoError(t, err)
			names[got.Name] = true
		}
		assert.Equal(t, map[string]bool{"Grix": true, "Snark": true}, names)

		for _, write := range f.tokens.NameWrites() {
			assert.NotEqual(t, " ", write, "reroll must not blank names")
		}
	})

	t.Run("non-reference tokens in the selection are untouched", func(t *testing.T) {
		f := newFixture(t)

		token := testutils.CreateTestToken("tok-1", "Goblin Scout", "", false)
		require.NoError(t, f.tokens.Create(ctx, token))
		f.selection.selected = []*entities.Token{token}

		require.NoError(t, f.svc.RerollSelected(ctx))

		got, err := f.tokens.Get(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "Goblin Scout", got.Name)
	})
}
