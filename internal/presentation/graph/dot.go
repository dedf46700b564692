package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/powerset/pkg/domain"
)

// GenerateDOT produces a Graphviz digraph for an automaton.
// Accepting states are drawn as double circles and an invisible "_start" node
// points at the start state. One edge is emitted per (from, symbol, to).
func GenerateDOT(a *domain.Automaton, title string) string {
	var sb strings.Builder

	if title != "" {
		sb.WriteString(fmt.Sprintf("// %s\n", title))
	}
	sb.WriteString("digraph {\n")
	sb.WriteString("    graph [dpi=600 rankdir=LR nodesep=0.5 ranksep=0.75]\n")
	sb.WriteString("    node [fontname=\"Times New Roman Bold\"]\n")
	sb.WriteString("    edge [fontname=\"Times New Roman Bold\"]\n")

	for _, s := range a.States() {
		shape := "circle"
		if a.IsAccepting(s) {
			shape = "doublecircle"
		}
		sb.WriteString(fmt.Sprintf("    %s [label=%s shape=%s]\n", quoteDOT(string(s)), quoteDOT(string(s)), shape))
	}

	sb.WriteString("    _start [label=\"\" shape=none]\n")
	sb.WriteString(fmt.Sprintf("    _start -> %s [label=start]\n", quoteDOT(string(a.Start()))))

	for _, e := range a.Entries() {
		for _, to := range e.To {
			sb.WriteString(fmt.Sprintf("    %s -> %s [label=%s]\n", quoteDOT(string(e.From)), quoteDOT(string(to)), quoteDOT(e.Symbol.String())))
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

func quoteDOT(s string) string {
	return "\"" + strings.ReplaceAll(strings.ReplaceAll(s, "\\", "\\\\"), "\"", "\\\"") + "\""
}
