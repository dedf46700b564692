package loam

import "github.com/aretw0/powerset/pkg/schema"

// AutomatonMetadata is the frontmatter of a catalog document.
// The document body holds the automaton in the text format. When the body is
// empty the structural fields below are used instead.
type AutomatonMetadata struct {
	Name        string   `json:"name,omitempty" mapstructure:"name"`
	Description string   `json:"description,omitempty" mapstructure:"description"`
	Tags        []string `json:"tags,omitempty" mapstructure:"tags"`

	States      []string               `json:"states,omitempty" mapstructure:"states"`
	Alphabet    []string               `json:"alphabet,omitempty" mapstructure:"alphabet"`
	Start       string                 `json:"start,omitempty" mapstructure:"start"`
	Accept      []string               `json:"accept,omitempty" mapstructure:"accept"`
	Transitions []schema.TransitionDef `json:"transitions,omitempty" mapstructure:"transitions"`
}

func (m AutomatonMetadata) definition(name string) *schema.Definition {
	return &schema.Definition{
		Name:        name,
		States:      m.States,
		Alphabet:    m.Alphabet,
		Start:       m.Start,
		Accept:      m.Accept,
		Transitions: m.Transitions,
	}
}
