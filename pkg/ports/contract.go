package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/powerset/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractAutomaton(t *testing.T) *domain.Automaton {
	t.Helper()
	a, err := domain.Build(
		[]domain.StateID{"q0", "q1"},
		[]domain.Symbol{"a"},
		[]domain.TransitionEntry{
			{From: "q0", Symbol: "a", To: []domain.StateID{"q0", "q1"}},
			{From: "q1", Symbol: domain.Epsilon, To: []domain.StateID{"q0"}},
		},
		"q0",
		[]domain.StateID{"q1"},
	)
	require.NoError(t, err)
	return a
}

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore implementation
// adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		// 1. Create a session holding an automaton
		s := domain.NewSession(sessionID)
		s.Name = "contract"
		s.NFA = contractAutomaton(t)
		s.Trace = domain.Trace{{Index: 0, Subset: domain.NewStateSet("q0")}}

		// 2. Save
		err := store.Save(ctx, sessionID, s)
		require.NoError(t, err, "Save should not return error")

		// 3. Load
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, s.Phase, loaded.Phase)
		assert.Equal(t, "contract", loaded.Name)
		require.NotNil(t, loaded.NFA)
		assert.Equal(t, s.NFA.Entries(), loaded.NFA.Entries())
		assert.Equal(t, s.NFA.Accept(), loaded.NFA.Accept())
		require.Len(t, loaded.Trace, 1)
		assert.True(t, loaded.Trace[0].Subset.Equal(domain.NewStateSet("q0")))
	})

	t.Run("Saved Copy Is Detached", func(t *testing.T) {
		s := domain.NewSession(sessionID)
		require.NoError(t, store.Save(ctx, sessionID, s))

		s.Phase = domain.PhaseDisplaying

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.PhaseAwaitingInput, loaded.Phase)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		// Setup
		err := store.Save(ctx, sessionID, domain.NewSession(sessionID))
		require.NoError(t, err)

		// Delete
		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		// Verify gone
		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		// Setup: Create 2 sessions
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, id1, domain.NewSession(id1)))
		require.NoError(t, store.Save(ctx, id2, domain.NewSession(id2)))

		// Ensure cleanup
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		// List
		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}

// RunCatalogContract verifies that a Catalog lists exactly the expected names, sorted,
// that each one loads into a buildable automaton, and that unknown names fail cleanly.
func RunCatalogContract(t *testing.T, catalog Catalog, expected []string) {
	t.Helper()
	ctx := context.Background()

	t.Run("List", func(t *testing.T) {
		names, err := catalog.List(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, expected, names)
		assert.IsNonDecreasing(t, names)
	})

	t.Run("Get", func(t *testing.T) {
		for _, name := range expected {
			def, err := catalog.Get(ctx, name)
			require.NoError(t, err, "definition %s", name)
			assert.Equal(t, name, def.Name)

			_, err = def.ToAutomaton()
			assert.NoError(t, err, "definition %s should build", name)
		}
	})

	t.Run("Get Not Found", func(t *testing.T) {
		_, err := catalog.Get(ctx, "non-existent-definition")
		assert.ErrorIs(t, err, ErrDefinitionNotFound)
	})
}
