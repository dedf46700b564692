package domain

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the set as a sorted array of state IDs.
func (s StateSet) MarshalJSON() ([]byte, error) {
	if s.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.ids)
}

// UnmarshalJSON decodes an array of state IDs, normalizing order and duplicates.
func (s *StateSet) UnmarshalJSON(data []byte) error {
	var ids []StateID
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("decode state set: %w", err)
	}
	*s = NewStateSet(ids...)
	return nil
}

type automatonJSON struct {
	States      []StateID             `json:"states"`
	Alphabet    []Symbol              `json:"alphabet"`
	Start       StateID               `json:"start"`
	Accept      []StateID             `json:"accept"`
	Transitions []TransitionEntry     `json:"transitions"`
	Subsets     map[StateID][]StateID `json:"subsets,omitempty"`
}

// MarshalJSON encodes the automaton in its definition form.
// Subsets of a constructed DFA are kept so they survive a round trip.
func (a *Automaton) MarshalJSON() ([]byte, error) {
	w := automatonJSON{
		States:      a.States(),
		Alphabet:    a.Alphabet(),
		Start:       a.start,
		Accept:      a.Accept(),
		Transitions: a.Entries(),
	}
	if w.Alphabet == nil {
		w.Alphabet = []Symbol{}
	}
	if len(a.subsets) > 0 {
		w.Subsets = make(map[StateID][]StateID, len(a.subsets))
		for id, set := range a.subsets {
			w.Subsets[id] = set.IDs()
		}
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes and validates an automaton through Build.
func (a *Automaton) UnmarshalJSON(data []byte) error {
	var w automatonJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode automaton: %w", err)
	}
	opts := make([]BuildOption, 0, len(w.Subsets))
	for id, ids := range w.Subsets {
		opts = append(opts, WithSubset(id, NewStateSet(ids...)))
	}
	built, err := Build(w.States, w.Alphabet, w.Transitions, w.Start, w.Accept, opts...)
	if err != nil {
		return err
	}
	*a = *built
	return nil
}
