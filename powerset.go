package powerset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/powerset/internal/logging"
	loamAdapter "github.com/aretw0/powerset/pkg/adapters/loam"
	"github.com/aretw0/powerset/pkg/domain"
	"github.com/aretw0/powerset/pkg/parser"
	"github.com/aretw0/powerset/pkg/ports"
	"github.com/aretw0/powerset/pkg/schema"
	"github.com/aretw0/powerset/pkg/subset"
)

// ErrNoCatalog is returned by ConvertNamed when the Converter has no catalog.
var ErrNoCatalog = errors.New("no catalog configured")

// Converter is the high-level entry point for the powerset library.
// It wraps subset construction with a shared configuration and an optional
// catalog of named automata.
type Converter struct {
	catalog     ports.Catalog
	hooks       domain.ConstructionHooks
	logger      *slog.Logger
	limit       int
	parallelism int
	total       bool
	noTrace     bool
	Name        string
}

// Option defines a functional option for configuring the Converter.
type Option func(*Converter)

// WithConstructionHooks registers observability hooks.
func WithConstructionHooks(hooks domain.ConstructionHooks) Option {
	return func(c *Converter) {
		c.hooks = c.hooks.Merge(hooks)
	}
}

// WithCatalog injects a custom Catalog, bypassing the default Loam initialization.
func WithCatalog(catalog ports.Catalog) Option {
	return func(c *Converter) {
		c.catalog = catalog
	}
}

// WithLogger sets a custom structured logger for the converter.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithLimit bounds the number of DFA states a conversion may discover.
func WithLimit(n int) Option {
	return func(c *Converter) {
		c.limit = n
	}
}

// WithParallelism expands each subset's symbols on up to n goroutines.
func WithParallelism(n int) Option {
	return func(c *Converter) {
		c.parallelism = n
	}
}

// WithTotal makes every produced DFA total by adding an explicit dead state.
func WithTotal(enabled bool) Option {
	return func(c *Converter) {
		c.total = enabled
	}
}

// WithoutTrace skips recording the construction trace.
func WithoutTrace() Option {
	return func(c *Converter) {
		c.noTrace = true
	}
}

// New initializes a Converter.
// When catalogPath is set and no WithCatalog option is given, a read-only Loam
// repository at that path becomes the catalog. An empty path means no catalog.
func New(catalogPath string, opts ...Option) (*Converter, error) {
	c := &Converter{}

	// Apply Options first to check if a catalog is provided
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logging.NewNop()
	}

	if c.catalog == nil && catalogPath != "" {
		catalog, err := loamAdapter.Open(catalogPath)
		if err != nil {
			return nil, err
		}
		c.catalog = catalog
		c.Name = catalogPath
	}

	return c, nil
}

// Catalog returns the configured catalog, or nil.
func (c *Converter) Catalog() ports.Catalog {
	return c.catalog
}

// Options returns the subset construction options this Converter applies.
func (c *Converter) Options() []subset.Option {
	opts := []subset.Option{
		subset.WithLogger(c.logger),
		subset.WithHooks(c.hooks),
		subset.WithTotal(c.total),
		subset.WithTrace(!c.noTrace),
	}
	if c.limit > 0 {
		opts = append(opts, subset.WithLimit(c.limit))
	}
	if c.parallelism > 1 {
		opts = append(opts, subset.WithParallelism(c.parallelism))
	}
	return opts
}

// Convert runs subset construction on nfa.
func (c *Converter) Convert(ctx context.Context, nfa *domain.Automaton) (*subset.Result, error) {
	return subset.Construct(ctx, nfa, c.Options()...)
}

// ConvertDefinition validates def and converts it.
func (c *Converter) ConvertDefinition(ctx context.Context, def *schema.Definition) (*subset.Result, error) {
	nfa, err := def.ToAutomaton()
	if err != nil {
		return nil, err
	}
	return c.Convert(ctx, nfa)
}

// ConvertFile loads a definition from path (text, YAML or JSON) and converts it.
func (c *Converter) ConvertFile(ctx context.Context, path string) (*schema.Definition, *subset.Result, error) {
	def, err := parser.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	res, err := c.ConvertDefinition(ctx, def)
	if err != nil {
		return def, nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, res, nil
}

// ConvertNamed loads a definition from the catalog and converts it.
func (c *Converter) ConvertNamed(ctx context.Context, name string) (*schema.Definition, *subset.Result, error) {
	if c.catalog == nil {
		return nil, nil, ErrNoCatalog
	}
	def, err := c.catalog.Get(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	res, err := c.ConvertDefinition(ctx, def)
	if err != nil {
		return def, nil, fmt.Errorf("%s: %w", name, err)
	}
	return def, res, nil
}
