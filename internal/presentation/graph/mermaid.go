package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/powerset/pkg/domain"
)

// Overlay contains dynamic run data to visualize on the graph.
type Overlay struct {
	Visited []domain.StateID
	Current domain.StateID
}

// GenerateMermaid produces a Mermaid flowchart (graph LR) for an automaton.
// It applies semantic styling:
// - State: ((Circle))
// - Accepting state: (((Double circle)))
// - Start: an unlabeled marker pointing at the start state
// Edges between the same pair of states are merged into one labeled arrow,
// and the empty symbol is drawn as ε. Overlay styles are applied if provided.
func GenerateMermaid(a *domain.Automaton, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	ids := nodeIDs(a)

	sb.WriteString("    _start[ ]:::startMarker\n")
	for _, s := range a.States() {
		label := escapeMermaid(string(s))
		if a.IsAccepting(s) {
			sb.WriteString(fmt.Sprintf("    %s(((\"%s\")))\n", ids[s], label))
		} else {
			sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", ids[s], label))
		}
	}

	sb.WriteString(fmt.Sprintf("    _start --> %s\n", ids[a.Start()]))
	for _, e := range mergeEdges(a) {
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", ids[e.from], escapeMermaid(e.label()), ids[e.to]))
	}

	sb.WriteString("    classDef startMarker fill:none,stroke:none;\n")

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visited := make(map[string]bool)
		for _, s := range overlay.Visited {
			id, ok := ids[s]
			if !ok || visited[id] {
				continue
			}
			visited[id] = true
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", id))
		}

		if id, ok := ids[overlay.Current]; ok {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", id))
		}
	}

	return sb.String()
}

// nodeIDs assigns stable Mermaid-safe identifiers (s0, s1, ...) in state order.
// Subset labels such as "{q0,q1}" are not valid Mermaid identifiers.
func nodeIDs(a *domain.Automaton) map[domain.StateID]string {
	states := a.States()
	ids := make(map[domain.StateID]string, len(states))
	for i, s := range states {
		ids[s] = fmt.Sprintf("s%d", i)
	}
	return ids
}

type mergedEdge struct {
	from, to domain.StateID
	symbols  []domain.Symbol
}

func (e mergedEdge) label() string {
	parts := make([]string, len(e.symbols))
	for i, s := range e.symbols {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

// mergeEdges groups the transition relation by (from, to) pair, keeping
// the order in which pairs first appear in a.Entries().
func mergeEdges(a *domain.Automaton) []mergedEdge {
	type pair struct{ from, to domain.StateID }
	index := make(map[pair]int)
	var out []mergedEdge
	for _, e := range a.Entries() {
		for _, to := range e.To {
			p := pair{e.From, to}
			i, ok := index[p]
			if !ok {
				i = len(out)
				index[p] = i
				out = append(out, mergedEdge{from: e.From, to: to})
			}
			out[i].symbols = append(out[i].symbols, e.Symbol)
		}
	}
	return out
}

func escapeMermaid(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
