package middleware_test

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"io"
	"testing"

	"github.com/aretw0/powerset/pkg/adapters/memory"
	"github.com/aretw0/powerset/pkg/domain"
	"github.com/aretw0/powerset/pkg/persistence/middleware"
	"github.com/aretw0/powerset/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, middleware.KeySize)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func sealedStore(t *testing.T, next ports.SessionStore, active []byte, fallback ...[]byte) ports.SessionStore {
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    active,
		FallbackKeys: fallback,
	})
	require.NoError(t, err)
	return mw(next)
}

func sampleSession(t *testing.T, id string) *domain.Session {
	nfa, err := domain.Build(
		[]domain.StateID{"q0", "q1"},
		[]domain.Symbol{"a"},
		[]domain.TransitionEntry{{From: "q0", Symbol: "a", To: []domain.StateID{"q0", "q1"}}},
		"q0",
		[]domain.StateID{"q1"},
	)
	require.NoError(t, err)
	s := domain.NewSession(id)
	s.Name = "secret-automaton"
	s.NFA = nfa
	s.Phase = domain.PhaseConverted
	return s
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, sealedStore(t, memory.NewStore(), generateKey(t)))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	secure := sealedStore(t, underlying, generateKey(t))
	ctx := context.Background()

	require.NoError(t, secure.Save(ctx, "s1", sampleSession(t, "s1")))

	stored, err := underlying.Load(ctx, "s1")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.Sealed)
	assert.Empty(t, stored.Name, "name must not leak into the envelope")
	assert.Nil(t, stored.NFA)
	assert.Equal(t, domain.PhaseConverted, stored.Phase)
	assert.Equal(t, "s1", stored.ID)

	loaded, err := secure.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "secret-automaton", loaded.Name)
	require.NotNil(t, loaded.NFA)
	assert.Equal(t, []domain.StateID{"q1"}, loaded.NFA.Accept())
	assert.Empty(t, loaded.Sealed)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)
	ctx := context.Background()

	oldStore := sealedStore(t, underlying, oldKey)
	require.NoError(t, oldStore.Save(ctx, "rot", sampleSession(t, "rot")))

	newStore := sealedStore(t, underlying, newKey, oldKey)
	loaded, err := newStore.Load(ctx, "rot")
	require.NoError(t, err, "fallback key should open old sessions")
	assert.Equal(t, "secret-automaton", loaded.Name)

	// Re-saving seals with the new key, which the old store cannot open.
	require.NoError(t, newStore.Save(ctx, "rot", loaded))
	_, err = oldStore.Load(ctx, "rot")
	assert.Error(t, err)
}

func TestEncryptionMiddleware_PlainSessionRejected(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, underlying.Save(ctx, "plain", domain.NewSession("plain")))

	_, err := sealedStore(t, underlying, generateKey(t)).Load(ctx, "plain")
	assert.ErrorIs(t, err, middleware.ErrNotSealed)
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	assert.Error(t, err)

	_, err = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    generateKey(t),
		FallbackKeys: [][]byte{[]byte("short")},
	})
	assert.Error(t, err)
}

func TestParseKey(t *testing.T) {
	key := generateKey(t)

	fromHex, err := middleware.ParseKey(hex.EncodeToString(key))
	require.NoError(t, err)
	assert.Equal(t, key, fromHex)

	fromB64, err := middleware.ParseKey(" " + base64.StdEncoding.EncodeToString(key) + "\n")
	require.NoError(t, err)
	assert.Equal(t, key, fromB64)

	_, err = middleware.ParseKey(base64.StdEncoding.EncodeToString([]byte("too short")))
	assert.Error(t, err)

	_, err = middleware.ParseKey("not a key!")
	assert.Error(t, err)
}

func TestChain(t *testing.T) {
	var order []string
	tag := func(name string) middleware.Middleware {
		return func(next ports.SessionStore) ports.SessionStore {
			order = append(order, name)
			return next
		}
	}
	store := memory.NewStore()
	got := middleware.Chain(store, tag("outer"), tag("inner"))
	assert.Same(t, store, got)
	assert.Equal(t, []string{"inner", "outer"}, order)
}
