package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/powerset/pkg/schema"
)

// Format writes def in the text format accepted by Parse.
// Epsilon transitions are written with an empty symbol.
func Format(w io.Writer, def *schema.Definition) error {
	var buf bytes.Buffer
	if def.Name != "" {
		fmt.Fprintf(&buf, "# %s\n", def.Name)
	}
	fmt.Fprintf(&buf, "%s %s\n", HeaderStates, strings.Join(def.States, ","))
	fmt.Fprintf(&buf, "%s %s\n", HeaderAlphabet, strings.Join(def.Alphabet, ","))
	fmt.Fprintf(&buf, "%s %s\n", HeaderStart, def.Start)
	fmt.Fprintf(&buf, "%s %s\n", HeaderAccept, strings.Join(def.Accept, ","))
	buf.WriteString(HeaderTransitions + "\n")
	for _, t := range def.Transitions {
		sym := t.Symbol
		if def.IsEpsilonSymbol(sym) {
			sym = ""
		}
		fmt.Fprintf(&buf, "  %s,%s->%s\n", t.From, sym, strings.Join(t.To, ","))
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// FormatString is Format into a string.
func FormatString(def *schema.Definition) string {
	var sb strings.Builder
	_ = Format(&sb, def)
	return sb.String()
}
