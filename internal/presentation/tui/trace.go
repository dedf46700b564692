package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/powerset/pkg/domain"
)

// TraceMarkdown renders a construction trace as a Markdown table, one row per
// (subset, symbol) pair explored. Subsets reached for the first time are marked "new".
func TraceMarkdown(title string, trace domain.Trace) string {
	var sb strings.Builder

	if title != "" {
		fmt.Fprintf(&sb, "## %s\n\n", title)
	}
	if len(trace) == 0 {
		sb.WriteString("_No trace recorded._\n")
		return sb.String()
	}

	sb.WriteString("| Step | Subset | Symbol | Move | Closure | |\n")
	sb.WriteString("|---:|---|:---:|---|---|---|\n")
	for _, step := range trace {
		if len(step.Moves) == 0 {
			fmt.Fprintf(&sb, "| %d | `%s` | | | | |\n", step.Index, step.Subset.Label())
			continue
		}
		for _, m := range step.Moves {
			marker := ""
			if m.New {
				marker = "new"
			}
			fmt.Fprintf(&sb, "| %d | `%s` | %s | `%s` | `%s` | %s |\n",
				step.Index, step.Subset.Label(), escapeCell(m.Symbol.String()),
				m.Move.Label(), m.Closure.Label(), marker)
		}
	}
	fmt.Fprintf(&sb, "\n%d subsets discovered.\n", len(trace.Discovered()))
	return sb.String()
}

// SummaryMarkdown renders a short description of an automaton.
func SummaryMarkdown(title string, a *domain.Automaton) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", title)

	symbols := make([]string, 0)
	for _, s := range a.Alphabet() {
		symbols = append(symbols, escapeCell(string(s)))
	}

	fmt.Fprintf(&sb, "- **States:** %d\n", len(a.States()))
	fmt.Fprintf(&sb, "- **Alphabet:** %s\n", strings.Join(symbols, ", "))
	fmt.Fprintf(&sb, "- **Start:** `%s`\n", a.Start())
	accept := make([]string, 0)
	for _, id := range a.Accept() {
		accept = append(accept, "`"+string(id)+"`")
	}
	fmt.Fprintf(&sb, "- **Accept:** %s\n", strings.Join(accept, ", "))
	fmt.Fprintf(&sb, "- **Deterministic:** %t\n", a.IsDeterministic())
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
