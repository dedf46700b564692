package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/aretw0/powerset/pkg/parser"
	"github.com/aretw0/powerset/pkg/ports"
	"github.com/aretw0/powerset/pkg/schema"
)

// Catalog implements ports.Catalog using an in-memory map.
type Catalog struct {
	defs map[string]*schema.Definition
}

// NewCatalog creates a catalog from named automata written in the text format.
func NewCatalog(sources map[string]string) (*Catalog, error) {
	p := parser.New()
	defs := make([]*schema.Definition, 0, len(sources))
	for name, src := range sources {
		def, err := p.ParseBytes([]byte(src))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		def.Name = name
		defs = append(defs, def)
	}
	return NewFromDefinitions(defs...)
}

// NewFromDefinitions creates a catalog from definitions, keyed by their Name.
func NewFromDefinitions(defs ...*schema.Definition) (*Catalog, error) {
	c := &Catalog{defs: make(map[string]*schema.Definition, len(defs))}
	for _, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("definition missing name")
		}
		if _, dup := c.defs[d.Name]; dup {
			return nil, fmt.Errorf("duplicate definition %q", d.Name)
		}
		c.defs[d.Name] = d.Clone()
	}
	return c, nil
}

// List returns all definition names in sorted order.
func (c *Catalog) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(c.defs))
	for name := range c.defs {
		names = append(names, name)
	}
	slices.Sort(names) // Deterministic order
	return names, nil
}

// Get returns a copy of the named definition.
func (c *Catalog) Get(ctx context.Context, name string) (*schema.Definition, error) {
	d, ok := c.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrDefinitionNotFound, name)
	}
	return d.Clone(), nil
}
