package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/powerset/pkg/domain"
	"github.com/aretw0/powerset/pkg/subset"
)

// ErrInvalidPhase is returned when an action is not allowed in the session's current phase.
var ErrInvalidPhase = errors.New("invalid session phase")

// PhaseError reports which action was refused and in which phase.
type PhaseError struct {
	Action string
	Phase  domain.Phase
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Action, e.Phase)
}

// Unwrap makes errors.Is(err, ErrInvalidPhase) hold.
func (e *PhaseError) Unwrap() error {
	return ErrInvalidPhase
}

// Convert submits an NFA and runs subset construction on it.
// Allowed only while awaiting input. On failure the session is left untouched.
func Convert(ctx context.Context, s *domain.Session, name string, nfa *domain.Automaton, opts ...subset.Option) error {
	if s.Phase != domain.PhaseAwaitingInput {
		return &PhaseError{Action: "convert", Phase: s.Phase}
	}

	res, err := subset.Construct(ctx, nfa, opts...)
	if err != nil {
		return err
	}

	s.Name = name
	s.NFA = nfa
	s.DFA = res.DFA
	s.Trace = res.Trace
	s.Phase = domain.PhaseConverted
	touch(s)
	return nil
}

// Display marks the cached result as shown. It may be repeated.
func Display(s *domain.Session) error {
	switch s.Phase {
	case domain.PhaseConverted, domain.PhaseDisplaying:
		s.Phase = domain.PhaseDisplaying
		s.Views++
		touch(s)
		return nil
	default:
		return &PhaseError{Action: "display", Phase: s.Phase}
	}
}

// Reset discards the submitted automaton and the cached result.
func Reset(s *domain.Session) {
	s.Phase = domain.PhaseAwaitingInput
	s.Name = ""
	s.NFA = nil
	s.DFA = nil
	s.Trace = nil
	s.Views = 0
	touch(s)
}

func touch(s *domain.Session) {
	s.UpdatedAt = time.Now().UTC()
}
