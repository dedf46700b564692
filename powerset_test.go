package powerset_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/powerset"
	"github.com/aretw0/powerset/pkg/adapters/memory"
	"github.com/aretw0/powerset/pkg/domain"
	"github.com/aretw0/powerset/pkg/observability"
	"github.com/aretw0/powerset/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeStates = `States: q0,q1,q2
Alphabet: a,b
Start: q0
Accept: q2
Transitions:
q0,a->q0,q1
q0,b->q0
q1,b->q2
`

func TestConverter_Options(t *testing.T) {
	ctx := context.Background()
	def := &schema.Definition{
		States:   []string{"q0", "q1"},
		Alphabet: []string{"a", "b"},
		Start:    "q0",
		Accept:   []string{"q1"},
		Transitions: []schema.TransitionDef{
			{From: "q0", Symbol: "a", To: []string{"q1"}},
		},
	}

	t.Run("Partial By Default", func(t *testing.T) {
		conv, err := powerset.New("")
		require.NoError(t, err)
		res, err := conv.ConvertDefinition(ctx, def)
		require.NoError(t, err)
		assert.Len(t, res.DFA.States(), 2)
		assert.NotEmpty(t, res.Trace)
	})

	t.Run("Total", func(t *testing.T) {
		conv, err := powerset.New("", powerset.WithTotal(true), powerset.WithoutTrace())
		require.NoError(t, err)
		res, err := conv.ConvertDefinition(ctx, def)
		require.NoError(t, err)
		assert.Contains(t, res.DFA.States(), domain.StateID("{}"))
		assert.Empty(t, res.Trace)
	})

	t.Run("Limit", func(t *testing.T) {
		conv, err := powerset.New("", powerset.WithLimit(1))
		require.NoError(t, err)
		_, err = conv.ConvertDefinition(ctx, def)
		assert.ErrorIs(t, err, domain.ErrUnboundedConstruction)
	})

	t.Run("Malformed", func(t *testing.T) {
		conv, err := powerset.New("")
		require.NoError(t, err)
		bad := def.Clone()
		bad.Start = "nope"
		_, err = conv.ConvertDefinition(ctx, bad)
		assert.ErrorIs(t, err, domain.ErrMalformedAutomaton)
	})
}

func TestConverter_Hooks(t *testing.T) {
	m := observability.NewMetrics(nil)
	var done int
	conv, err := powerset.New("",
		powerset.WithConstructionHooks(m.Hooks()),
		powerset.WithConstructionHooks(domain.ConstructionHooks{
			OnDone: func(ctx context.Context, e *domain.DoneEvent) { done++ },
		}),
		powerset.WithParallelism(4),
	)
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "three.txt")
	require.NoError(t, os.WriteFile(path, []byte(threeStates), 0o644))

	def, res, err := conv.ConvertFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "three", def.Name)
	assert.Len(t, res.DFA.States(), 3)
	assert.Equal(t, 1, done)
}

func TestConverter_ConvertNamed(t *testing.T) {
	ctx := context.Background()

	conv, err := powerset.New("")
	require.NoError(t, err)
	_, _, err = conv.ConvertNamed(ctx, "three")
	assert.ErrorIs(t, err, powerset.ErrNoCatalog)

	catalog, err := memory.NewCatalog(map[string]string{"three": threeStates})
	require.NoError(t, err)
	conv, err = powerset.New("", powerset.WithCatalog(catalog))
	require.NoError(t, err)

	def, res, err := conv.ConvertNamed(ctx, "three")
	require.NoError(t, err)
	assert.Equal(t, "three", def.Name)
	assert.Equal(t, domain.StateID("{q0}"), res.DFA.Start())
}

func TestNew_LoamCatalog(t *testing.T) {
	dir := t.TempDir()
	doc := "---\nname: three\n---\n" + threeStates
	require.NoError(t, os.WriteFile(filepath.Join(dir, "three.md"), []byte(doc), 0o644))

	conv, err := powerset.New(dir)
	require.NoError(t, err)
	require.NotNil(t, conv.Catalog())

	names, err := conv.Catalog().List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"three"}, names)
}
