package cli

import (
	"bytes"
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/powerset/internal/adapters/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testKeyA = hex.EncodeToString(bytes.Repeat([]byte{0xa1}, 32))
	testKeyB = hex.EncodeToString(bytes.Repeat([]byte{0xb2}, 32))
)

func TestSealStore(t *testing.T) {
	plain := file.New(t.TempDir())

	t.Run("No Key", func(t *testing.T) {
		t.Setenv(EnvSessionKey, "")
		store, err := sealStore(plain)
		require.NoError(t, err)
		assert.Same(t, plain, store)
	})

	t.Run("Bad Key", func(t *testing.T) {
		t.Setenv(EnvSessionKey, "nope")
		_, err := sealStore(plain)
		assert.ErrorContains(t, err, EnvSessionKey)
	})

	t.Run("Bad Previous Key", func(t *testing.T) {
		t.Setenv(EnvSessionKey, testKeyA)
		t.Setenv(EnvSessionKeyPrevious, testKeyB+",nope")
		_, err := sealStore(plain)
		assert.ErrorContains(t, err, EnvSessionKeyPrevious)
	})
}

func TestRunSession_Sealed(t *testing.T) {
	dir := t.TempDir()
	path := writeNFA(t, dir, "ab.nfa", endsWithAB)
	storeDir := filepath.Join(dir, "sessions")
	ctx := context.Background()

	run := func(script string) (string, error) {
		var out bytes.Buffer
		err := RunSession(ctx, SessionOptions{
			Options:   Options{In: strings.NewReader(script), Out: &out},
			SessionID: "sealed",
			StoreDir:  storeDir,
			Quiet:     true,
		})
		return out.String(), err
	}

	t.Setenv(EnvSessionKey, testKeyA)
	_, err := run("load " + path + "\n")
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(storeDir, "sealed.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"sealed"`)
	assert.NotContains(t, string(raw), `"nfa"`, "automaton must not be stored in clear text")
	assert.NotContains(t, string(raw), `"name"`)

	// Rotated: the old key still opens it as a fallback.
	t.Setenv(EnvSessionKey, testKeyB)
	t.Setenv(EnvSessionKeyPrevious, testKeyA)
	out, err := run("status\n")
	require.NoError(t, err)
	assert.Contains(t, out, "phase:   converted")

	// Without the retired key the session cannot be opened.
	t.Setenv(EnvSessionKey, hex.EncodeToString(bytes.Repeat([]byte{0xc3}, 32)))
	t.Setenv(EnvSessionKeyPrevious, "")
	_, err = run("status\n")
	assert.ErrorContains(t, err, "failed to init session")
}
