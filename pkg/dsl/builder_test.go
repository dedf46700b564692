package dsl

import (
	"testing"

	"github.com/aretw0/powerset/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleNFA(t *testing.T) {
	b := New()

	b.State("q0").Start().
		On("a", "q0", "q1").
		On("b", "q0")

	b.State("q1").
		On("b", "q2")

	b.State("q2").Accept()

	nfa, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, domain.StateID("q0"), nfa.Start())
	assert.Equal(t, []domain.Symbol{"a", "b"}, nfa.Alphabet())
	assert.Equal(t, []domain.StateID{"q2"}, nfa.Accept())
	assert.Equal(t, []domain.StateID{"q0", "q1"}, nfa.Transitions("q0", "a"))
}

func TestBuilder_ImplicitStatesAndEpsilon(t *testing.T) {
	b := New()
	b.State("s").Start().Epsilon("t").State("t").On("x", "u").State("u").Accept()

	def := b.Definition()
	assert.Equal(t, []string{"s", "t", "u"}, def.States)
	assert.Equal(t, []string{"x"}, def.Alphabet)

	nfa := b.MustBuild()
	assert.True(t, nfa.HasEpsilon())

	t.Run("Undeclared destination is added", func(t *testing.T) {
		b := New()
		b.State("a").Start().On("x", "b")
		assert.Equal(t, []string{"a", "b"}, b.Definition().States)
	})
}

func TestBuilder_ExplicitAlphabet(t *testing.T) {
	b := New().Alphabet("a", "b", "c")
	b.State("q").Start().Accept().On("a", "q")

	nfa, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, []domain.Symbol{"a", "b", "c"}, nfa.Alphabet())
}

func TestBuilder_MissingStart(t *testing.T) {
	b := New()
	b.State("q").Accept()

	_, err := b.Build()
	assert.ErrorIs(t, err, domain.ErrMalformedAutomaton)
	assert.Panics(t, func() { b.MustBuild() })
}

func TestBuilder_StateIsIdempotent(t *testing.T) {
	b := New()
	first := b.State("q")
	assert.Same(t, first, b.State("q"))
}
