package session_test

import (
	"context"
	"testing"

	"github.com/aretw0/powerset/pkg/domain"
	"github.com/aretw0/powerset/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseTransitions(t *testing.T) {
	ctx := context.Background()
	s := domain.NewSession("s1")
	require.Equal(t, domain.PhaseAwaitingInput, s.Phase)

	// Nothing to display yet.
	err := session.Display(s)
	require.ErrorIs(t, err, session.ErrInvalidPhase)
	var pe *session.PhaseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "display", pe.Action)
	assert.Equal(t, domain.PhaseAwaitingInput, pe.Phase)

	require.NoError(t, session.Convert(ctx, s, "nfa", nfa()))
	assert.Equal(t, domain.PhaseConverted, s.Phase)
	assert.Equal(t, 0, s.Views)

	require.NoError(t, session.Display(s))
	require.NoError(t, session.Display(s))
	assert.Equal(t, domain.PhaseDisplaying, s.Phase)
	assert.Equal(t, 2, s.Views)

	assert.ErrorIs(t, session.Convert(ctx, s, "nfa", nfa()), session.ErrInvalidPhase)

	before := s.UpdatedAt
	session.Reset(s)
	assert.Equal(t, domain.PhaseAwaitingInput, s.Phase)
	assert.Nil(t, s.NFA)
	assert.Nil(t, s.DFA)
	assert.Nil(t, s.Trace)
	assert.Equal(t, 0, s.Views)
	assert.False(t, s.UpdatedAt.Before(before))
}

func TestConvert_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := domain.NewSession("s1")
	err := session.Convert(ctx, s, "nfa", nfa())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.PhaseAwaitingInput, s.Phase)
	assert.Empty(t, s.Name)
}
