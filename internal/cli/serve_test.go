package cli

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/powerset/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/powerset/pkg/adapters/redis"
	"github.com/aretw0/powerset/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupSessionStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory", func(t *testing.T) {
		store, opts, closeFn, err := setupSessionStore(ctx, ServeOptions{})
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &memory.Store{}, store)
		assert.Empty(t, opts)
	})

	t.Run("Redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		store, opts, closeFn, err := setupSessionStore(ctx, ServeOptions{RedisURL: "redis://" + mr.Addr(), SessionTTL: time.Minute})
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &redisAdapter.Store{}, store)
		assert.Len(t, opts, 1, "redis sessions are guarded by a distributed lock")
	})

	t.Run("Redis Sealed", func(t *testing.T) {
		t.Setenv(EnvSessionKey, testKeyA)
		mr := miniredis.RunT(t)
		store, _, closeFn, err := setupSessionStore(ctx, ServeOptions{RedisURL: "redis://" + mr.Addr()})
		require.NoError(t, err)
		defer closeFn()
		assert.NotEqual(t, reflect.TypeOf(&redisAdapter.Store{}), reflect.TypeOf(store))

		s := domain.NewSession("sealed")
		s.Name = "hidden"
		require.NoError(t, store.Save(ctx, "sealed", s))
		loaded, err := store.Load(ctx, "sealed")
		require.NoError(t, err)
		assert.Equal(t, "hidden", loaded.Name)
	})

	t.Run("Redis Unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()
		_, _, _, err := setupSessionStore(ctx, ServeOptions{RedisURL: "redis://" + addr})
		assert.ErrorContains(t, err, "redis unreachable")
	})
}

func TestRunServe_Shutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var logs syncBuffer

	done := make(chan error, 1)
	go func() {
		done <- RunServe(ctx, ServeOptions{Addr: "127.0.0.1:0", Options: Options{ErrOut: &logs}})
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(logs.String(), "Starting Powerset Server")
	}, 5*time.Second, 20*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Contains(t, logs.String(), "stopped gracefully")
}

func TestRunMCP_UnknownTransport(t *testing.T) {
	err := RunMCP(context.Background(), MCPOptions{Transport: "carrier-pigeon"})
	assert.ErrorContains(t, err, "unknown transport")
}

func TestServiceLimit(t *testing.T) {
	assert.Equal(t, DefaultServiceLimit, serviceLimit(0))
	assert.Equal(t, 0, serviceLimit(-1), "negative disables the bound")
	assert.Equal(t, 64, serviceLimit(64))
}
