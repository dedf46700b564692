package dsl

import "github.com/aretw0/powerset/pkg/schema"

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	id          string
	accept      bool
	transitions []schema.TransitionDef
	builder     *Builder
}

// Start marks the state as the start state, replacing any previous one.
func (s *StateBuilder) Start() *StateBuilder {
	s.builder.start = s.id
	return s
}

// Accept marks the state as accepting.
func (s *StateBuilder) Accept() *StateBuilder {
	s.accept = true
	return s
}

// On adds a transition on symbol to every target.
func (s *StateBuilder) On(symbol string, targets ...string) *StateBuilder {
	s.transitions = append(s.transitions, schema.TransitionDef{
		From:   s.id,
		Symbol: symbol,
		To:     targets,
	})
	return s
}

// Epsilon adds empty-symbol transitions to every target.
func (s *StateBuilder) Epsilon(targets ...string) *StateBuilder {
	return s.On("", targets...)
}

// State switches to another state of the same builder.
func (s *StateBuilder) State(id string) *StateBuilder {
	return s.builder.State(id)
}
