package parser

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/powerset/pkg/domain"
	"github.com/aretw0/powerset/pkg/schema"
)

// Section headers of the text format.
const (
	HeaderStates      = "States:"
	HeaderAlphabet    = "Alphabet:"
	HeaderStart       = "Start:"
	HeaderAccept      = "Accept:"
	HeaderTransitions = "Transitions:"
)

// SyntaxError reports a line the text parser could not understand.
type SyntaxError struct {
	Line   int    // 1-based line number
	Text   string // The offending line, trimmed
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// DefaultMaxLineSize bounds a single line. Exported DFAs put every subset
// label on the States: line, so it is far above bufio's 64 KiB default.
const DefaultMaxLineSize = 16 << 20

// Parser converts the sectioned text format into a schema.Definition.
type Parser struct {
	maxLineSize int
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxLineSize sets the longest line the parser accepts, in bytes.
func WithMaxLineSize(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxLineSize = n
		}
	}
}

// New creates a new parser instance.
func New(opts ...Option) *Parser {
	p := &Parser{maxLineSize: DefaultMaxLineSize}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads a whole definition from r.
func (p *Parser) Parse(r io.Reader) (*schema.Definition, error) {
	def := &schema.Definition{}
	inTransitions := false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, p.maxLineSize)), p.maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := stripComment(strings.TrimSpace(scanner.Text()))
		if line == "" {
			continue
		}

		if header, value, ok := cutHeader(line); ok {
			switch header {
			case HeaderStates:
				def.States = splitList(value)
			case HeaderAlphabet:
				def.Alphabet = splitList(value)
			case HeaderStart:
				def.Start = value
			case HeaderAccept:
				def.Accept = splitList(value)
			case HeaderTransitions:
				inTransitions = true
				if value != "" {
					return nil, &SyntaxError{Line: lineNo, Text: line, Reason: "transitions start on the next line"}
				}
			}
			continue
		}

		if !inTransitions {
			return nil, &SyntaxError{Line: lineNo, Text: line, Reason: "unexpected line outside the Transitions section"}
		}

		t, err := parseTransition(line)
		if err != nil {
			return nil, &SyntaxError{Line: lineNo, Text: line, Reason: err.Error()}
		}
		def.Transitions = append(def.Transitions, t)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &SyntaxError{Line: lineNo + 1, Reason: fmt.Sprintf("line longer than %d bytes", p.maxLineSize)}
		}
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	return def, nil
}

// ParseBytes is Parse over an in-memory buffer.
func (p *Parser) ParseBytes(data []byte) (*schema.Definition, error) {
	return p.Parse(bytes.NewReader(data))
}

// ParseAutomaton parses r and validates the result with domain.Build.
func (p *Parser) ParseAutomaton(r io.Reader) (*domain.Automaton, error) {
	def, err := p.Parse(r)
	if err != nil {
		return nil, err
	}
	return def.ToAutomaton()
}

// ParseTransition parses one "source,symbol->dest1,dest2" line.
// An empty symbol denotes an epsilon transition.
func ParseTransition(line string) (schema.TransitionDef, error) {
	return parseTransition(strings.TrimSpace(line))
}

func parseTransition(line string) (schema.TransitionDef, error) {
	left, right, ok := strings.Cut(line, "->")
	if !ok {
		return schema.TransitionDef{}, fmt.Errorf("missing '->'")
	}
	if strings.Contains(right, "->") {
		return schema.TransitionDef{}, fmt.Errorf("more than one '->'")
	}

	parts := splitTopLevel(left)
	if len(parts) != 2 {
		return schema.TransitionDef{}, fmt.Errorf("expected 'source,symbol' before '->'")
	}
	from := strings.TrimSpace(parts[0])
	if from == "" {
		return schema.TransitionDef{}, fmt.Errorf("missing source state")
	}

	return schema.TransitionDef{
		From:   from,
		Symbol: strings.TrimSpace(parts[1]),
		To:     splitList(right),
	}, nil
}

func cutHeader(line string) (string, string, bool) {
	for _, h := range []string{HeaderStates, HeaderAlphabet, HeaderStart, HeaderAccept, HeaderTransitions} {
		if len(line) >= len(h) && strings.EqualFold(line[:len(h)], h) {
			return h, strings.TrimSpace(line[len(h):]), true
		}
	}
	return "", "", false
}

// stripComment drops full-line comments and trailing " # ..." comments.
func stripComment(line string) string {
	if strings.HasPrefix(line, "#") {
		return ""
	}
	for i := 1; i < len(line); i++ {
		if line[i] == '#' && (line[i-1] == ' ' || line[i-1] == '\t') {
			return strings.TrimSpace(line[:i])
		}
	}
	return line
}

func splitList(s string) []string {
	var out []string
	for _, part := range splitTopLevel(s) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// splitTopLevel splits s on commas outside braces, so exported DFA state
// names such as "{q0,q1}" survive a round trip.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
