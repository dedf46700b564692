package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/powerset/internal/presentation/graph"
	"github.com/aretw0/powerset/internal/presentation/tui"
	"github.com/aretw0/powerset/pkg/domain"
	"github.com/aretw0/powerset/pkg/parser"
	"github.com/aretw0/powerset/pkg/schema"
)

// Output formats understood by Render.
const (
	FormatText     = "text"
	FormatMermaid  = "mermaid"
	FormatDOT      = "dot"
	FormatYAML     = "yaml"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Formats lists every supported output format.
var Formats = []string{FormatText, FormatMermaid, FormatDOT, FormatYAML, FormatJSON, FormatMarkdown}

// Render writes a in the requested format.
// Markdown goes through glamour when pretty is set.
func Render(w io.Writer, format, name string, a *domain.Automaton, pretty bool) error {
	switch strings.ToLower(format) {
	case FormatText, "":
		return parser.Format(w, schema.FromAutomaton(name, a))
	case FormatMermaid:
		_, err := io.WriteString(w, graph.GenerateMermaid(a, nil))
		return err
	case FormatDOT:
		_, err := io.WriteString(w, graph.GenerateDOT(a, name))
		return err
	case FormatYAML:
		data, err := schema.EncodeYAML(schema.FromAutomaton(name, a))
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	case FormatMarkdown:
		return writeMarkdown(w, tui.SummaryMarkdown(name, a), pretty)
	default:
		return fmt.Errorf("unknown format %q (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

// RenderTrace writes the construction trace as a Markdown table.
func RenderTrace(w io.Writer, name string, trace domain.Trace, pretty bool) error {
	return writeMarkdown(w, tui.TraceMarkdown(name, trace), pretty)
}

func writeMarkdown(w io.Writer, markdown string, pretty bool) error {
	if pretty {
		rendered, err := tui.NewRenderer()(markdown)
		if err == nil {
			markdown = rendered
		}
	}
	_, err := io.WriteString(w, markdown)
	return err
}
