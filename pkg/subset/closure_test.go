package subset_test

import (
	"math/rand/v2"
	"testing"

	"github.com/aretw0/powerset/pkg/domain"
	"github.com/aretw0/powerset/pkg/subset"
	"github.com/stretchr/testify/assert"
)

func TestClosure(t *testing.T) {
	nfa := mustBuild(t,
		[]string{"q0", "q1", "q2", "q3"},
		[]domain.Symbol{"a"},
		[]domain.TransitionEntry{
			{From: "q0", Symbol: domain.Epsilon, To: ids("q1")},
			{From: "q1", Symbol: domain.Epsilon, To: ids("q2", "q0")}, // cycle back to q0
			{From: "q2", Symbol: "a", To: ids("q3")},
		},
		"q0", "q3",
	)

	tests := []struct {
		name string
		in   domain.StateSet
		want domain.StateSet
	}{
		{"Empty", set(), set()},
		{"Chain with cycle", set("q0"), set("q0", "q1", "q2")},
		{"Middle of chain", set("q1"), set("q0", "q1", "q2")},
		{"No epsilon edges", set("q3"), set("q3")},
		{"Symbol edges are not followed", set("q2"), set("q2")},
		{"Union of inputs", set("q2", "q3"), set("q2", "q3")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := subset.Closure(nfa, tt.in)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestMove(t *testing.T) {
	nfa := scenarioA(t)

	assert.True(t, subset.Move(nfa, set("q0"), "a").Equal(set("q0", "q1")))
	assert.True(t, subset.Move(nfa, set("q0", "q1"), "b").Equal(set("q0", "q2")))
	assert.True(t, subset.Move(nfa, set("q2"), "a").IsEmpty())
	assert.True(t, subset.Move(nfa, set(), "a").IsEmpty())

	t.Run("Move does not close over epsilon", func(t *testing.T) {
		eps := mustBuild(t,
			[]string{"p", "r", "s"},
			[]domain.Symbol{"x"},
			[]domain.TransitionEntry{
				{From: "p", Symbol: "x", To: ids("r")},
				{From: "r", Symbol: domain.Epsilon, To: ids("s")},
			},
			"p",
		)
		assert.True(t, subset.Move(eps, set("p"), "x").Equal(set("r")))
		assert.True(t, subset.Move(eps, set("r"), domain.Epsilon).IsEmpty())
	})
}

func TestClosure_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for round := 0; round < 50; round++ {
		nfa := randomNFA(t, rng, 1+rng.IntN(7))
		all := nfa.States()

		var picked []domain.StateID
		for _, id := range all {
			if rng.IntN(2) == 0 {
				picked = append(picked, id)
			}
		}
		s := domain.NewStateSet(picked...)

		once := subset.Closure(nfa, s)
		twice := subset.Closure(nfa, once)
		assert.True(t, once.Equal(twice), "closure must be idempotent for %s", s)
		assert.True(t, s.IsSubsetOf(once), "closure must contain its input %s", s)
	}
}

func TestAccepts(t *testing.T) {
	nfa := scenarioA(t)

	assert.True(t, subset.Accepts(nfa, []domain.Symbol{"a", "b"}))
	assert.True(t, subset.Accepts(nfa, []domain.Symbol{"b", "a", "a", "b"}))
	assert.False(t, subset.Accepts(nfa, nil))
	assert.False(t, subset.Accepts(nfa, []domain.Symbol{"a", "b", "b"}))
	assert.False(t, subset.Accepts(nfa, []domain.Symbol{"z"}))

	chain := scenarioB(t)
	assert.True(t, subset.Accepts(chain, nil))
}
