package validator

import (
	"testing"

	"github.com/aretw0/powerset/pkg/domain"
	"github.com/aretw0/powerset/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		def         *schema.Definition
		ok          bool
		unreachable []domain.StateID
		dead        []domain.StateID
		contains    string
	}{
		{
			name: "valid",
			def: &schema.Definition{
				Name: "valid", States: []string{"q0", "q1"}, Alphabet: []string{"a"},
				Start: "q0", Accept: []string{"q1"},
				Transitions: []schema.TransitionDef{{From: "q0", Symbol: "a", To: []string{"q1"}}},
			},
			ok:       true,
			contains: "valid: ok",
		},
		{
			name: "unreachable and dead",
			def: &schema.Definition{
				Name: "messy", States: []string{"q0", "q1", "sink", "island"}, Alphabet: []string{"a"},
				Start: "q0", Accept: []string{"q1"},
				Transitions: []schema.TransitionDef{
					{From: "q0", Symbol: "", To: []string{"q1"}},
					{From: "q1", Symbol: "a", To: []string{"sink"}},
					{From: "island", Symbol: "a", To: []string{"q1"}},
				},
			},
			ok:          true,
			unreachable: []domain.StateID{"island"},
			dead:        []domain.StateID{"sink"},
			contains:    "unreachable states: island",
		},
		{
			name: "malformed",
			def: &schema.Definition{
				Name: "broken", States: []string{"q0"}, Start: "q9", Accept: []string{"q8"},
			},
			ok:       false,
			contains: `broken: error: start "q9"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Validate(tt.def)
			assert.Equal(t, tt.ok, report.OK())
			assert.Equal(t, tt.unreachable, report.Unreachable)
			assert.Equal(t, tt.dead, report.Dead)
			assert.Contains(t, report.String(), tt.contains)
		})
	}
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	report := Validate(&schema.Definition{
		Name: "broken", States: []string{"q0"}, Start: "q9", Accept: []string{"q8"},
	})
	require.Len(t, report.Problems, 2)
	assert.Equal(t, domain.FieldStart, report.Problems[0].Field)
	assert.Equal(t, domain.FieldAccept, report.Problems[1].Field)
}
