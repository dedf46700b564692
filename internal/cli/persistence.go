package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/powerset/internal/adapters/file"
	"github.com/aretw0/powerset/pkg/persistence/middleware"
	"github.com/aretw0/powerset/pkg/ports"
)

const (
	// EnvSessionKey holds the AES-256 key sealing persisted sessions, hex or base64.
	EnvSessionKey = "POWERSET_SESSION_KEY"
	// EnvSessionKeyPrevious lists comma-separated retired keys still accepted on load.
	EnvSessionKeyPrevious = "POWERSET_SESSION_KEY_PREVIOUS"
)

// OpenSessionStore opens the file store under dir, sealed when EnvSessionKey is set.
func OpenSessionStore(dir string) (ports.SessionStore, error) {
	return sealStore(file.New(dir))
}

// sealStore wraps store with encryption when EnvSessionKey is set and returns it unchanged otherwise.
func sealStore(store ports.SessionStore) (ports.SessionStore, error) {
	raw := os.Getenv(EnvSessionKey)
	if raw == "" {
		return store, nil
	}
	active, err := middleware.ParseKey(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvSessionKey, err)
	}

	var fallback [][]byte
	for _, part := range strings.Split(os.Getenv(EnvSessionKeyPrevious), ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		k, err := middleware.ParseKey(part)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvSessionKeyPrevious, err)
		}
		fallback = append(fallback, k)
	}

	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    active,
		FallbackKeys: fallback,
	})
	if err != nil {
		return nil, err
	}
	return middleware.Chain(store, mw), nil
}
