package memory_test

import (
	"testing"

	"github.com/aretw0/powerset/pkg/adapters/memory"
	"github.com/aretw0/powerset/pkg/ports"
	"github.com/aretw0/powerset/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const endsWithAB = `States: q0,q1,q2
Alphabet: a,b
Start: q0
Accept: q2
Transitions:
q0,a->q0,q1
q0,b->q0
q1,b->q2
`

const epsilonChain = `States: p,q
Alphabet: x
Start: p
Accept: q
Transitions:
p,->q
q,x->q
`

func TestMemoryCatalog_Contract(t *testing.T) {
	catalog, err := memory.NewCatalog(map[string]string{
		"ends-with-ab":  endsWithAB,
		"epsilon-chain": epsilonChain,
	})
	require.NoError(t, err)

	ports.RunCatalogContract(t, catalog, []string{"ends-with-ab", "epsilon-chain"})
}

func TestMemoryCatalog_Errors(t *testing.T) {
	_, err := memory.NewCatalog(map[string]string{"broken": "States: q0\nnonsense line\n"})
	assert.Error(t, err)

	_, err = memory.NewFromDefinitions(&schema.Definition{States: []string{"q0"}, Start: "q0"})
	assert.ErrorContains(t, err, "missing name")

	def := &schema.Definition{Name: "x", States: []string{"q0"}, Start: "q0"}
	_, err = memory.NewFromDefinitions(def, def)
	assert.ErrorContains(t, err, "duplicate")
}
