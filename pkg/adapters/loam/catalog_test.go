package loam_test

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/powerset/internal/testutils"
	loamAdapter "github.com/aretw0/powerset/pkg/adapters/loam"
	"github.com/aretw0/powerset/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catalogFiles = map[string]string{
	"ends-with-ab.md": `---
name: ends-with-ab
description: Strings over {a,b} ending in ab
---
States: q0,q1,q2
Alphabet: a,b
Start: q0
Accept: q2
Transitions:
q0,a->q0,q1
q0,b->q0
q1,b->q2
`,
	"implicit.md": `---
description: Name comes from the file
---
States: p,q
Alphabet: x
Start: p
Accept: q
Transitions:
p,->q # epsilon
q,x->q
`,
	"frontmatter-only.md": `---
name: frontmatter-only
states: [s0, s1]
alphabet: [a]
start: s0
accept: [s1]
transitions:
  - from: s0
    symbol: a
    to: [s1]
---
`,
}

func newCatalog(t *testing.T, files map[string]string) *loamAdapter.Catalog {
	t.Helper()
	dir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, dir, files)
	return loamAdapter.New(loam.NewTypedRepository[loamAdapter.AutomatonMetadata](repo))
}

func TestCatalog_Contract(t *testing.T) {
	catalog := newCatalog(t, catalogFiles)
	ports.RunCatalogContract(t, catalog, []string{"ends-with-ab", "frontmatter-only", "implicit"})
}

func TestCatalog_GetParsesBody(t *testing.T) {
	catalog := newCatalog(t, catalogFiles)
	ctx := context.Background()

	def, err := catalog.Get(ctx, "implicit")
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "q"}, def.States)
	require.Len(t, def.Transitions, 2)
	assert.Equal(t, "", def.Transitions[0].Symbol)

	desc, err := catalog.Describe(ctx, "implicit")
	require.NoError(t, err)
	assert.Equal(t, "Name comes from the file", desc)
}

func TestCatalog_FrontmatterDefinition(t *testing.T) {
	catalog := newCatalog(t, catalogFiles)

	def, err := catalog.Get(context.Background(), "frontmatter-only")
	require.NoError(t, err)
	assert.Equal(t, "s0", def.Start)
	assert.Equal(t, []string{"s1"}, def.Accept)

	a, err := def.ToAutomaton()
	require.NoError(t, err)
	assert.True(t, a.IsDeterministic())
}

func TestCatalog_DetectsCollisions(t *testing.T) {
	catalog := newCatalog(t, map[string]string{
		"a.md": "---\nname: same\n---\nStates: q0\nAlphabet:\nStart: q0\nAccept:\nTransitions:\n",
		"b.md": "---\nname: same\n---\nStates: q0\nAlphabet:\nStart: q0\nAccept:\nTransitions:\n",
	})

	_, err := catalog.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestCatalog_ParseError(t *testing.T) {
	catalog := newCatalog(t, map[string]string{
		"broken.md": "---\nname: broken\n---\nStates: q0\nq0 a q1\n",
	})

	_, err := catalog.Get(context.Background(), "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestOpen(t *testing.T) {
	dir, _ := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, dir, map[string]string{"ends-with-ab.md": catalogFiles["ends-with-ab.md"]})

	catalog, err := loamAdapter.Open(dir)
	require.NoError(t, err)

	names, err := catalog.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ends-with-ab"}, names)
}
