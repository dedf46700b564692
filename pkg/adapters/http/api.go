package http

import (
	"time"

	"github.com/aretw0/powerset/pkg/domain"
	"github.com/aretw0/powerset/pkg/schema"
)

// ConvertRequest selects the NFA to convert. Exactly one of Definition,
// Source (text format) or Catalog (a catalog entry name) must be set.
type ConvertRequest struct {
	Name       string             `json:"name,omitempty"`
	Definition *schema.Definition `json:"definition,omitempty"`
	Source     string             `json:"source,omitempty"`
	Catalog    string             `json:"catalog,omitempty"`
}

// ConvertResponse carries the constructed DFA.
type ConvertResponse struct {
	Name    string              `json:"name,omitempty"`
	DFA     *schema.Definition  `json:"dfa"`
	Subsets map[string][]string `json:"subsets"`
	Trace   domain.Trace        `json:"trace,omitempty"`
}

// SessionResponse is the public view of a session.
type SessionResponse struct {
	ID        string           `json:"id"`
	Phase     domain.Phase     `json:"phase"`
	Name      string           `json:"name,omitempty"`
	Result    *ConvertResponse `json:"result,omitempty"`
	Views     int              `json:"views"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// FieldError points at one invalid part of a submitted automaton.
type FieldError struct {
	Field  string `json:"field"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

func newConvertResponse(name string, dfa *domain.Automaton, trace domain.Trace) *ConvertResponse {
	subsets := make(map[string][]string)
	for _, id := range dfa.States() {
		set, ok := dfa.Subset(id)
		if !ok {
			continue
		}
		members := make([]string, 0, set.Len())
		for _, m := range set.IDs() {
			members = append(members, string(m))
		}
		subsets[string(id)] = members
	}
	return &ConvertResponse{
		Name:    name,
		DFA:     schema.FromAutomaton(name, dfa),
		Subsets: subsets,
		Trace:   trace,
	}
}

func newSessionResponse(s *domain.Session) SessionResponse {
	resp := SessionResponse{
		ID:        s.ID,
		Phase:     s.Phase,
		Name:      s.Name,
		Views:     s.Views,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.DFA != nil {
		resp.Result = newConvertResponse(s.Name, s.DFA, s.Trace)
	}
	return resp
}
