package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedAutomaton is returned by Build when the definition is structurally invalid.
var ErrMalformedAutomaton = errors.New("malformed automaton")

// ErrUnboundedConstruction is returned when subset construction discovers more
// DFA states than the caller allowed.
var ErrUnboundedConstruction = errors.New("unbounded construction")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// Fields reported by MalformedError.
const (
	FieldStates      = "states"
	FieldAlphabet    = "alphabet"
	FieldStart       = "start"
	FieldAccept      = "accept"
	FieldTransitions = "transitions"
)

// MalformedError describes a single structural violation found by Build.
type MalformedError struct {
	Field  string // Which part of the definition is wrong
	ID     string // The offending identifier, if any
	Reason string // Human-readable reason
}

func (e *MalformedError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Field, e.ID, e.Reason)
}

// Unwrap makes errors.Is(err, ErrMalformedAutomaton) hold.
func (e *MalformedError) Unwrap() error {
	return ErrMalformedAutomaton
}

// AggregateError represents multiple construction failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Unwrap exposes the wrapped errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// MalformedErrors returns every MalformedError carried by err.
func MalformedErrors(err error) []*MalformedError {
	var out []*MalformedError
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		for _, inner := range aggr.Errors {
			var me *MalformedError
			if errors.As(inner, &me) {
				out = append(out, me)
			}
		}
		return out
	}
	var me *MalformedError
	if errors.As(err, &me) {
		out = append(out, me)
	}
	return out
}

// LimitError reports that construction stopped at a caller-supplied bound.
type LimitError struct {
	Limit      int
	Discovered int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("discovered %d DFA states, limit is %d", e.Discovered, e.Limit)
}

// Unwrap makes errors.Is(err, ErrUnboundedConstruction) hold.
func (e *LimitError) Unwrap() error {
	return ErrUnboundedConstruction
}
