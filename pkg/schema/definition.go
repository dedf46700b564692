package schema

import (
	"strings"

	"github.com/aretw0/powerset/pkg/domain"
)

// EpsilonAliases are the spellings accepted for the empty symbol in structured input.
// A spelling declared in the alphabet is an ordinary symbol.
var EpsilonAliases = []string{"", "ε", "eps", "epsilon"}

// TransitionDef is one "from, symbol -> to..." row.
type TransitionDef struct {
	From   string   `json:"from" yaml:"from" mapstructure:"from"`
	Symbol string   `json:"symbol" yaml:"symbol" mapstructure:"symbol"`
	To     []string `json:"to" yaml:"to" mapstructure:"to"`
}

// Definition is the serializable form of an automaton.
type Definition struct {
	Name        string          `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	States      []string        `json:"states" yaml:"states" mapstructure:"states"`
	Alphabet    []string        `json:"alphabet" yaml:"alphabet" mapstructure:"alphabet"`
	Start       string          `json:"start" yaml:"start" mapstructure:"start"`
	Accept      []string        `json:"accept" yaml:"accept" mapstructure:"accept"`
	Transitions []TransitionDef `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

// IsEpsilon reports whether sym spells the empty symbol.
func IsEpsilon(sym string) bool {
	sym = strings.TrimSpace(sym)
	for _, alias := range EpsilonAliases {
		if strings.EqualFold(sym, alias) {
			return true
		}
	}
	return false
}

// IsEpsilonSymbol reports whether sym, used in a transition of d, means the
// empty symbol: it spells an alias and is not declared in the alphabet.
func (d *Definition) IsEpsilonSymbol(sym string) bool {
	if !IsEpsilon(sym) {
		return false
	}
	sym = strings.TrimSpace(sym)
	if sym == "" {
		return true
	}
	for _, declared := range d.Alphabet {
		if strings.TrimSpace(declared) == sym {
			return false
		}
	}
	return true
}

// ToAutomaton validates the definition and builds the automaton it describes.
// Errors wrap domain.ErrMalformedAutomaton.
func (d *Definition) ToAutomaton() (*domain.Automaton, error) {
	states := toIDs(d.States)
	accept := toIDs(d.Accept)

	alphabet := make([]domain.Symbol, 0, len(d.Alphabet))
	for _, sym := range d.Alphabet {
		alphabet = append(alphabet, domain.Symbol(strings.TrimSpace(sym)))
	}

	entries := make([]domain.TransitionEntry, 0, len(d.Transitions))
	for _, t := range d.Transitions {
		sym := domain.Symbol(strings.TrimSpace(t.Symbol))
		if d.IsEpsilonSymbol(t.Symbol) {
			sym = domain.Epsilon
		}
		entries = append(entries, domain.TransitionEntry{
			From:   domain.StateID(strings.TrimSpace(t.From)),
			Symbol: sym,
			To:     toIDs(t.To),
		})
	}

	return domain.Build(states, alphabet, entries, domain.StateID(strings.TrimSpace(d.Start)), accept)
}

// FromAutomaton describes a as a Definition. Epsilon transitions get an empty symbol.
func FromAutomaton(name string, a *domain.Automaton) *Definition {
	def := &Definition{
		Name:   name,
		States: fromIDs(a.States()),
		Start:  string(a.Start()),
		Accept: fromIDs(a.Accept()),
	}
	for _, sym := range a.Alphabet() {
		def.Alphabet = append(def.Alphabet, string(sym))
	}
	for _, e := range a.Entries() {
		def.Transitions = append(def.Transitions, TransitionDef{
			From:   string(e.From),
			Symbol: string(e.Symbol),
			To:     fromIDs(e.To),
		})
	}
	return def
}

// Clone returns a deep copy.
func (d *Definition) Clone() *Definition {
	if d == nil {
		return nil
	}
	out := *d
	out.States = append([]string(nil), d.States...)
	out.Alphabet = append([]string(nil), d.Alphabet...)
	out.Accept = append([]string(nil), d.Accept...)
	out.Transitions = make([]TransitionDef, len(d.Transitions))
	for i, t := range d.Transitions {
		t.To = append([]string(nil), t.To...)
		out.Transitions[i] = t
	}
	return &out
}

func toIDs(in []string) []domain.StateID {
	out := make([]domain.StateID, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, domain.StateID(s))
	}
	return out
}

func fromIDs(in []domain.StateID) []string {
	out := make([]string, len(in))
	for i, id := range in {
		out[i] = string(id)
	}
	return out
}
