package subset

import (
	"log/slog"

	"github.com/aretw0/powerset/internal/logging"
	"github.com/aretw0/powerset/pkg/domain"
)

type config struct {
	limit       int
	parallelism int
	trace       bool
	total       bool
	hooks       domain.ConstructionHooks
	logger      *slog.Logger
}

func defaultConfig() config {
	return config{
		parallelism: 1,
		trace:       true,
		logger:      logging.NewNop(),
	}
}

// Option configures a Construct call.
type Option func(*config)

// WithLimit bounds the number of DFA states Construct may discover.
// Exceeding it stops the run with a *domain.LimitError. Zero or less means no bound.
func WithLimit(n int) Option {
	return func(c *config) {
		c.limit = n
	}
}

// WithParallelism processes the symbols of each dequeued subset on up to n goroutines.
// Discovery and queueing stay on the calling goroutine, so results do not change.
func WithParallelism(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.parallelism = n
	}
}

// WithTrace enables or disables recording of the construction trace (default: enabled).
func WithTrace(enabled bool) Option {
	return func(c *config) {
		c.trace = enabled
	}
}

// WithTotal adds an explicit non-accepting dead state "{}" and routes every
// missing (state, symbol) pair to it. By default missing edges are left out.
func WithTotal(enabled bool) Option {
	return func(c *config) {
		c.total = enabled
	}
}

// WithHooks registers observability hooks. Repeated calls run every set, in order.
func WithHooks(hooks domain.ConstructionHooks) Option {
	return func(c *config) {
		c.hooks = c.hooks.Merge(hooks)
	}
}

// WithLogger sets a structured logger. Construction steps are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
