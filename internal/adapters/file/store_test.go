package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/powerset/internal/adapters/file"
	"github.com/aretw0/powerset/pkg/domain"
	"github.com/aretw0/powerset/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.SessionStore = (*file.Store)(nil)

func TestStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, file.New(t.TempDir()))
}

func TestStore_DefaultPath(t *testing.T) {
	assert.Equal(t, file.DefaultPath, file.New("").BasePath)
}

func TestStore_PersistsDFA(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	nfa, err := domain.Build(
		[]domain.StateID{"q0", "q1"},
		[]domain.Symbol{"a"},
		[]domain.TransitionEntry{{From: "q0", Symbol: "a", To: []domain.StateID{"q0", "q1"}}},
		"q0",
		[]domain.StateID{"q1"},
	)
	require.NoError(t, err)

	s := domain.NewSession("dfa")
	s.Phase = domain.PhaseConverted
	s.NFA = nfa
	require.NoError(t, store.Save(ctx, "dfa", s))

	loaded, err := store.Load(ctx, "dfa")
	require.NoError(t, err)
	require.NotNil(t, loaded.NFA)
	assert.Equal(t, nfa.Entries(), loaded.NFA.Entries())
	assert.Equal(t, domain.PhaseConverted, loaded.Phase)
}

func TestStore_IgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "real", domain.NewSession("real")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-real-123.json"), []byte("{}"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o755))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"real"}, ids)
}

func TestStore_InvalidIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, "", domain.NewSession("")))
	assert.Error(t, store.Save(ctx, "../escape", domain.NewSession("x")))
	_, err := store.Load(ctx, "")
	assert.Error(t, err)
	assert.Error(t, store.Delete(ctx, ""))
}

func TestStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))

	_, err := file.New(dir).Load(context.Background(), "bad")
	assert.ErrorContains(t, err, "failed to unmarshal session")
}
