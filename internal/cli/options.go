package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/powerset"
	"github.com/aretw0/powerset/pkg/observability"
)

// DefaultServiceLimit bounds subset construction in the long-running servers,
// where input comes from remote callers.
const DefaultServiceLimit = 4096

// Options contains the configuration shared by the convert, graph and watch commands.
type Options struct {
	Path        string // Definition file (text, YAML or JSON); "-" reads In
	CatalogDir  string // Loam catalog directory
	Name        string // Catalog entry to convert instead of Path
	Format      string
	Trace       bool
	Limit       int
	Total       bool
	Parallelism int
	LogLevel    string

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

func (o *Options) defaults() {
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.ErrOut == nil {
		o.ErrOut = os.Stderr
	}
	if o.Format == "" {
		o.Format = FormatText
	}
}

// createConverter initializes a Converter with standard CLI conventions.
func createConverter(opts Options, logger *slog.Logger) (*powerset.Converter, error) {
	convOpts := []powerset.Option{
		powerset.WithLogger(logger),
		powerset.WithLimit(opts.Limit),
		powerset.WithParallelism(opts.Parallelism),
		powerset.WithTotal(opts.Total),
	}

	// No level means a no-op logger, so skip the hook overhead.
	if opts.LogLevel != "" {
		convOpts = append(convOpts, powerset.WithConstructionHooks(observability.LoggingHooks(logger)))
	}
	if !opts.Trace {
		convOpts = append(convOpts, powerset.WithoutTrace())
	}

	conv, err := powerset.New(opts.CatalogDir, convOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing converter: %w", err)
	}
	return conv, nil
}

// serviceLimit resolves the construction bound of a server: zero picks
// DefaultServiceLimit and a negative value disables the bound.
func serviceLimit(n int) int {
	switch {
	case n == 0:
		return DefaultServiceLimit
	case n < 0:
		return 0
	}
	return n
}
