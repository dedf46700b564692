package subset_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/aretw0/powerset/pkg/domain"
	"github.com/stretchr/testify/require"
)

func ids(s ...string) []domain.StateID {
	out := make([]domain.StateID, len(s))
	for i, v := range s {
		out[i] = domain.StateID(v)
	}
	return out
}

func set(s ...string) domain.StateSet {
	return domain.NewStateSet(ids(s...)...)
}

func mustBuild(t *testing.T, states []string, alphabet []domain.Symbol, entries []domain.TransitionEntry, start string, accept ...string) *domain.Automaton {
	t.Helper()
	a, err := domain.Build(ids(states...), alphabet, entries, domain.StateID(start), ids(accept...))
	require.NoError(t, err)
	return a
}

// scenarioA has no epsilon transitions.
func scenarioA(t *testing.T) *domain.Automaton {
	return mustBuild(t,
		[]string{"q0", "q1", "q2"},
		[]domain.Symbol{"a", "b"},
		[]domain.TransitionEntry{
			{From: "q0", Symbol: "a", To: ids("q0", "q1")},
			{From: "q0", Symbol: "b", To: ids("q0")},
			{From: "q1", Symbol: "b", To: ids("q2")},
		},
		"q0", "q2",
	)
}

// scenarioB is a pure epsilon chain over an empty alphabet.
func scenarioB(t *testing.T) *domain.Automaton {
	return mustBuild(t,
		[]string{"q0", "q1", "q2"},
		nil,
		[]domain.TransitionEntry{
			{From: "q0", Symbol: domain.Epsilon, To: ids("q1")},
			{From: "q1", Symbol: domain.Epsilon, To: ids("q2")},
		},
		"q0", "q2",
	)
}

// randomNFA builds an automaton with n states over {a, b}, including epsilon moves.
func randomNFA(t *testing.T, rng *rand.Rand, n int) *domain.Automaton {
	t.Helper()
	states := make([]string, n)
	for i := range states {
		states[i] = fmt.Sprintf("s%d", i)
	}
	symbols := []domain.Symbol{domain.Epsilon, "a", "b"}

	var entries []domain.TransitionEntry
	for _, from := range states {
		for _, sym := range symbols {
			// Epsilon edges are sparser to keep closures interesting.
			p := 0.5
			if sym == domain.Epsilon {
				p = 0.25
			}
			for _, to := range states {
				if rng.Float64() < p/float64(n)*2 {
					entries = append(entries, domain.TransitionEntry{From: domain.StateID(from), Symbol: sym, To: ids(to)})
				}
			}
		}
	}

	var accept []string
	for _, s := range states {
		if rng.IntN(3) == 0 {
			accept = append(accept, s)
		}
	}
	return mustBuild(t, states, []domain.Symbol{"a", "b"}, entries, states[0], accept...)
}

func randomWord(rng *rand.Rand, alphabet []domain.Symbol, maxLen int) []domain.Symbol {
	word := make([]domain.Symbol, rng.IntN(maxLen+1))
	for i := range word {
		word[i] = alphabet[rng.IntN(len(alphabet))]
	}
	return word
}
