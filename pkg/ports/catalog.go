package ports

import (
	"context"
	"errors"

	"github.com/aretw0/powerset/pkg/schema"
)

// ErrDefinitionNotFound is returned by a Catalog when no definition has the requested name.
var ErrDefinitionNotFound = errors.New("definition not found")

// Catalog is a read-only source of named automaton definitions.
type Catalog interface {
	// List returns the names of every definition, sorted.
	List(ctx context.Context) ([]string, error)

	// Get returns the definition with the given name.
	// Returns ErrDefinitionNotFound if it does not exist.
	Get(ctx context.Context, name string) (*schema.Definition, error)
}
