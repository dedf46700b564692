package domain

import "time"

// Phase is the position of a conversion session in its lifecycle.
type Phase string

const (
	PhaseAwaitingInput Phase = "awaiting_input" // No automaton submitted yet, or reset
	PhaseConverted     Phase = "converted"      // NFA submitted and converted, result cached
	PhaseDisplaying    Phase = "displaying"     // Result has been rendered at least once
)

// Session is the persisted snapshot of one interactive conversion.
// It is owned by the caller; the engine itself keeps no session state.
type Session struct {
	ID    string `json:"id"`
	Phase Phase  `json:"phase"`

	// Name labels the submitted automaton, e.g. a catalog entry or file name.
	Name string `json:"name,omitempty"`

	// NFA is the submitted automaton. Nil while awaiting input.
	NFA *Automaton `json:"nfa,omitempty"`

	// DFA and Trace cache the last conversion result.
	DFA   *Automaton `json:"dfa,omitempty"`
	Trace Trace      `json:"trace,omitempty"`

	// Views counts how many times the result was displayed.
	Views int `json:"views,omitempty"`

	// Sealed holds the encrypted form of a whole session when a store
	// middleware seals it. Only ID, Phase and timestamps stay readable.
	Sealed []byte `json:"sealed,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a session awaiting input.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		Phase:     PhaseAwaitingInput,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
