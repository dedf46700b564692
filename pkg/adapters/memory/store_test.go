package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/powerset/pkg/adapters/memory"
	"github.com/aretw0/powerset/pkg/domain"
	"github.com/aretw0/powerset/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSessionStoreContract(t, store)
}

func TestMemoryStore_TraceIsCopied(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	s := domain.NewSession("s")
	s.Trace = domain.Trace{{Index: 0, Moves: []domain.TraceMove{{Symbol: "a"}}}}
	require.NoError(t, store.Save(ctx, "s", s))

	s.Trace[0].Moves[0].Symbol = "mutated"

	loaded, err := store.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, domain.Symbol("a"), loaded.Trace[0].Moves[0].Symbol)
}
