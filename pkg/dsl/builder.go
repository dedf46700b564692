package dsl

import (
	"fmt"

	"github.com/aretw0/powerset/pkg/domain"
	"github.com/aretw0/powerset/pkg/schema"
)

// Builder manages the automaton construction.
type Builder struct {
	order    []string
	states   map[string]*StateBuilder
	alphabet []string
	explicit bool
	start    string
}

// New creates a new automaton builder.
func New() *Builder {
	return &Builder{
		states: make(map[string]*StateBuilder),
	}
}

// State declares a state.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(id string) *StateBuilder {
	if sb, ok := b.states[id]; ok {
		return sb
	}
	sb := &StateBuilder{id: id, builder: b}
	b.states[id] = sb
	b.order = append(b.order, id)
	return sb
}

// Alphabet fixes the input alphabet. Without it the alphabet is every
// non-epsilon symbol used by a transition.
func (b *Builder) Alphabet(symbols ...string) *Builder {
	b.alphabet = append(b.alphabet, symbols...)
	b.explicit = true
	return b
}

// Definition returns the schema form of what has been declared so far.
// Destination states that were never declared are added implicitly.
func (b *Builder) Definition() *schema.Definition {
	def := &schema.Definition{Start: b.start}
	declared := make(map[string]bool, len(b.order))
	for _, id := range b.order {
		declared[id] = true
		def.States = append(def.States, id)
	}

	seenSym := make(map[string]bool)
	if b.explicit {
		def.Alphabet = append(def.Alphabet, b.alphabet...)
	}

	for _, id := range b.order {
		sb := b.states[id]
		if sb.accept {
			def.Accept = append(def.Accept, id)
		}
		for _, t := range sb.transitions {
			def.Transitions = append(def.Transitions, t)
			if !b.explicit && t.Symbol != "" && !seenSym[t.Symbol] {
				seenSym[t.Symbol] = true
				def.Alphabet = append(def.Alphabet, t.Symbol)
			}
			for _, to := range t.To {
				if !declared[to] {
					declared[to] = true
					def.States = append(def.States, to)
				}
			}
		}
	}
	return def
}

// Build validates the declared automaton.
func (b *Builder) Build() (*domain.Automaton, error) {
	a, err := b.Definition().ToAutomaton()
	if err != nil {
		return nil, fmt.Errorf("failed to build automaton: %w", err)
	}
	return a, nil
}

// MustBuild is like Build but panics on error. Intended for tests and examples.
func (b *Builder) MustBuild() *domain.Automaton {
	a, err := b.Build()
	if err != nil {
		panic(err)
	}
	return a
}
