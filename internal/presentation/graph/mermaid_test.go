package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/powerset/internal/presentation/graph"
	"github.com/aretw0/powerset/pkg/domain"
	"github.com/aretw0/powerset/pkg/dsl"
	"github.com/stretchr/testify/assert"
)

func sample() *domain.Automaton {
	b := dsl.New()
	b.State("q0").Start().On("a", "q1").On("b", "q1").Epsilon("q2")
	b.State("q1").Accept()
	b.State("q2").On("a", "q2")
	return b.MustBuild()
}

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid(sample(), nil)

	contains := []string{
		"graph LR\n",
		"s0((\"q0\"))",
		"s1(((\"q1\")))",
		"_start --> s0",
		"s0 -- \"ε\" --> s2",
		"s0 -- \"a, b\" --> s1",
		"s2 -- \"a\" --> s2",
	}
	for _, c := range contains {
		assert.Contains(t, out, c)
	}
	assert.NotContains(t, out, "Overlay Styles")
}

func TestGenerateMermaid_SubsetLabels(t *testing.T) {
	b := dsl.New()
	b.State("{q0,q1}").Start().Accept().On("a", "{q0,q1}")
	out := graph.GenerateMermaid(b.MustBuild(), nil)

	assert.Contains(t, out, "s0(((\"{q0,q1}\")))")
	assert.Contains(t, out, "s0 -- \"a\" --> s0")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	out := graph.GenerateMermaid(sample(), &graph.Overlay{
		Visited: []domain.StateID{"q0", "q0", "q2", "unknown"},
		Current: "q2",
	})

	assert.Contains(t, out, "%% Overlay Styles")
	assert.Equal(t, 1, strings.Count(out, "class s0 visited;"))
	assert.Contains(t, out, "class s2 current;")
	assert.NotContains(t, out, "unknown")
}

func TestGenerateDOT(t *testing.T) {
	out := graph.GenerateDOT(sample(), "NFA_sample")

	contains := []string{
		"// NFA_sample\n",
		"rankdir=LR",
		`"q1" [label="q1" shape=doublecircle]`,
		`"q0" [label="q0" shape=circle]`,
		`_start -> "q0" [label=start]`,
		`"q0" -> "q2" [label="ε"]`,
		`"q0" -> "q1" [label="a"]`,
		`"q0" -> "q1" [label="b"]`,
	}
	for _, c := range contains {
		assert.Contains(t, out, c)
	}
	assert.True(t, strings.HasSuffix(out, "}\n"))
}
