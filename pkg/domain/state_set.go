package domain

import (
	"slices"
	"strconv"
	"strings"
)

// StateID names a single automaton state. It is opaque to the engine.
type StateID string

// Symbol is one input character of an alphabet.
type Symbol string

// Epsilon is the empty symbol. It labels transitions that consume no input
// and is never a member of an alphabet.
const Epsilon Symbol = ""

// EpsilonLabel is the printable form of Epsilon used by renderers.
const EpsilonLabel = "ε"

// String returns the symbol, or EpsilonLabel for the empty symbol.
func (s Symbol) String() string {
	if s == Epsilon {
		return EpsilonLabel
	}
	return string(s)
}

// StateSet is an immutable set of states with value semantics.
// Members are kept sorted and unique, so two sets holding the same states
// have the same Key regardless of how they were built.
type StateSet struct {
	ids []StateID
}

// NewStateSet builds a set from ids, dropping duplicates.
func NewStateSet(ids ...StateID) StateSet {
	if len(ids) == 0 {
		return StateSet{}
	}
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	return StateSet{ids: slices.Compact(sorted)}
}

// Len returns the number of members.
func (s StateSet) Len() int {
	return len(s.ids)
}

// IsEmpty reports whether the set has no members.
func (s StateSet) IsEmpty() bool {
	return len(s.ids) == 0
}

// IDs returns the members in ascending order. The slice is a copy.
func (s StateSet) IDs() []StateID {
	return slices.Clone(s.ids)
}

// Contains reports whether id is a member.
func (s StateSet) Contains(id StateID) bool {
	_, found := slices.BinarySearch(s.ids, id)
	return found
}

// Equal compares two sets by content.
func (s StateSet) Equal(other StateSet) bool {
	return slices.Equal(s.ids, other.ids)
}

// Intersects reports whether the two sets share at least one member.
func (s StateSet) Intersects(other StateSet) bool {
	i, j := 0, 0
	for i < len(s.ids) && j < len(other.ids) {
		switch {
		case s.ids[i] == other.ids[j]:
			return true
		case s.ids[i] < other.ids[j]:
			i++
		default:
			j++
		}
	}
	return false
}

// Union returns a new set holding the members of both sets.
func (s StateSet) Union(other StateSet) StateSet {
	if other.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return other
	}
	merged := make([]StateID, 0, len(s.ids)+len(other.ids))
	merged = append(merged, s.ids...)
	merged = append(merged, other.ids...)
	return NewStateSet(merged...)
}

// IsSubsetOf reports whether every member of s is a member of other.
func (s StateSet) IsSubsetOf(other StateSet) bool {
	for _, id := range s.ids {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// Key returns the canonical lookup key of the set.
// Each member is written as "<byte length>:<id>", so the key is injective
// whatever bytes the identifiers contain.
func (s StateSet) Key() string {
	if len(s.ids) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, id := range s.ids {
		sb.WriteString(strconv.Itoa(len(id)))
		sb.WriteByte(':')
		sb.WriteString(string(id))
	}
	return sb.String()
}

// Label renders the set as "{a,b,c}". It is also the StateID a subset
// receives in a constructed DFA.
func (s StateSet) Label() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, id := range s.ids {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(string(id))
	}
	sb.WriteByte('}')
	return sb.String()
}

// String implements fmt.Stringer.
func (s StateSet) String() string {
	return s.Label()
}

// MarshalText encodes the set as its label.
func (s StateSet) MarshalText() ([]byte, error) {
	return []byte(s.Label()), nil
}
