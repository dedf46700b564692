package domain

import (
	"cmp"
	"fmt"
	"slices"
)

// TransitionEntry is one (source, symbol) -> destinations row of a transition relation.
// A Symbol equal to Epsilon marks an empty-symbol transition.
type TransitionEntry struct {
	From   StateID   `json:"from" yaml:"from"`
	Symbol Symbol    `json:"symbol" yaml:"symbol"`
	To     []StateID `json:"to" yaml:"to"`
}

type transitionKey struct {
	from   StateID
	symbol Symbol
}

// Automaton is a finite automaton, deterministic or not.
// It is immutable once built: accessors return copies and no method mutates it.
type Automaton struct {
	states      StateSet
	alphabet    []Symbol
	symbols     map[Symbol]struct{}
	transitions map[transitionKey]StateSet
	start       StateID
	accept      StateSet

	// subsets maps each state of a constructed DFA to the NFA states it stands for.
	subsets map[StateID]StateSet
}

// BuildOption configures optional parts of an Automaton during Build.
type BuildOption func(*Automaton)

// WithSubset records the NFA subset a DFA state stands for.
func WithSubset(id StateID, subset StateSet) BuildOption {
	return func(a *Automaton) {
		if a.subsets == nil {
			a.subsets = make(map[StateID]StateSet)
		}
		a.subsets[id] = subset
	}
}

// Build validates a definition and returns the Automaton it describes.
//
// Entries for the same (source, symbol) pair are unioned, never overwritten.
// Every structural violation is reported; the returned error wraps
// ErrMalformedAutomaton and carries one MalformedError per violation.
func Build(states []StateID, alphabet []Symbol, entries []TransitionEntry, start StateID, accept []StateID, opts ...BuildOption) (*Automaton, error) {
	a := &Automaton{
		states:      NewStateSet(states...),
		symbols:     make(map[Symbol]struct{}, len(alphabet)),
		transitions: make(map[transitionKey]StateSet),
		start:       start,
		accept:      NewStateSet(accept...),
	}

	var errs []error
	fail := func(field string, id string, reason string) {
		errs = append(errs, &MalformedError{Field: field, ID: id, Reason: reason})
	}

	if a.states.IsEmpty() {
		fail(FieldStates, "", "at least one state is required")
	} else if a.states.Contains("") {
		fail(FieldStates, "", "state identifiers cannot be empty")
	}

	for _, sym := range alphabet {
		if sym == Epsilon {
			fail(FieldAlphabet, "", "the empty symbol cannot be part of the alphabet")
			continue
		}
		if _, dup := a.symbols[sym]; dup {
			continue
		}
		a.symbols[sym] = struct{}{}
		a.alphabet = append(a.alphabet, sym)
	}
	slices.Sort(a.alphabet)

	if !a.states.Contains(start) {
		fail(FieldStart, string(start), "start state is not declared in states")
	}

	for _, id := range a.accept.ids {
		if !a.states.Contains(id) {
			fail(FieldAccept, string(id), "accept state is not declared in states")
		}
	}

	// Accumulate destinations per pair first, then freeze each into a StateSet.
	pending := make(map[transitionKey][]StateID)
	for _, e := range entries {
		valid := true
		if !a.states.Contains(e.From) {
			fail(FieldTransitions, string(e.From), "transition source is not declared in states")
			valid = false
		}
		if e.Symbol != Epsilon {
			if _, ok := a.symbols[e.Symbol]; !ok {
				fail(FieldTransitions, string(e.Symbol), fmt.Sprintf("symbol used by %q is not in the alphabet", e.From))
				valid = false
			}
		}
		for _, to := range e.To {
			if !a.states.Contains(to) {
				fail(FieldTransitions, string(to), fmt.Sprintf("destination of %q on %s is not declared in states", e.From, e.Symbol))
				valid = false
			}
		}
		if !valid {
			continue
		}
		key := transitionKey{from: e.From, symbol: e.Symbol}
		pending[key] = append(pending[key], e.To...)
	}
	for key, dests := range pending {
		if len(dests) == 0 {
			continue
		}
		a.transitions[key] = NewStateSet(dests...)
	}

	switch len(errs) {
	case 0:
	case 1:
		return nil, errs[0]
	default:
		return nil, &AggregateError{Errors: errs}
	}

	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// States returns every state in ascending order.
func (a *Automaton) States() []StateID {
	return a.states.IDs()
}

// StateSet returns the state set as a value.
func (a *Automaton) StateSet() StateSet {
	return a.states
}

// HasState reports whether id is a state of the automaton.
func (a *Automaton) HasState(id StateID) bool {
	return a.states.Contains(id)
}

// Alphabet returns the input symbols in ascending order. Epsilon is never included.
func (a *Automaton) Alphabet() []Symbol {
	return slices.Clone(a.alphabet)
}

// Start returns the start state.
func (a *Automaton) Start() StateID {
	return a.start
}

// Accept returns the accepting states in ascending order.
func (a *Automaton) Accept() []StateID {
	return a.accept.IDs()
}

// AcceptSet returns the accepting states as a value.
func (a *Automaton) AcceptSet() StateSet {
	return a.accept
}

// IsAccepting reports whether id is an accepting state.
func (a *Automaton) IsAccepting(id StateID) bool {
	return a.accept.Contains(id)
}

// Next returns the destinations of from on sym. Unknown pairs yield an empty set.
func (a *Automaton) Next(from StateID, sym Symbol) StateSet {
	return a.transitions[transitionKey{from: from, symbol: sym}]
}

// Transitions returns the destinations of from on sym as a fresh slice.
// Unknown pairs yield an empty slice.
func (a *Automaton) Transitions(from StateID, sym Symbol) []StateID {
	return a.Next(from, sym).IDs()
}

// Entries lists the whole transition relation ordered by source, then symbol.
// Epsilon entries sort before any other symbol of the same source.
func (a *Automaton) Entries() []TransitionEntry {
	out := make([]TransitionEntry, 0, len(a.transitions))
	for key, dests := range a.transitions {
		out = append(out, TransitionEntry{From: key.from, Symbol: key.symbol, To: dests.IDs()})
	}
	slices.SortFunc(out, func(x, y TransitionEntry) int {
		if c := cmp.Compare(x.From, y.From); c != 0 {
			return c
		}
		return cmp.Compare(x.Symbol, y.Symbol)
	})
	return out
}

// NumTransitions returns the number of (source, symbol) pairs with at least one destination.
func (a *Automaton) NumTransitions() int {
	return len(a.transitions)
}

// HasEpsilon reports whether any empty-symbol transition exists.
func (a *Automaton) HasEpsilon() bool {
	for key := range a.transitions {
		if key.symbol == Epsilon {
			return true
		}
	}
	return false
}

// IsDeterministic reports whether the automaton has no epsilon transitions and
// at most one destination per (state, symbol).
func (a *Automaton) IsDeterministic() bool {
	for key, dests := range a.transitions {
		if key.symbol == Epsilon || dests.Len() > 1 {
			return false
		}
	}
	return true
}

// Subset returns the NFA subset a constructed DFA state stands for.
// The second result is false for automata that were not built by subset construction.
func (a *Automaton) Subset(id StateID) (StateSet, bool) {
	s, ok := a.subsets[id]
	return s, ok
}
