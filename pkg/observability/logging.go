package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/powerset/pkg/domain"
)

// LoggingHooks returns construction hooks that log every event at Debug level
// and the final outcome at Info (or Warn on failure).
func LoggingHooks(logger *slog.Logger) domain.ConstructionHooks {
	return domain.ConstructionHooks{
		OnSubsetDiscovered: func(ctx context.Context, e *domain.SubsetEvent) {
			logger.DebugContext(ctx, "subset_discovered",
				"subset", e.Subset.Label(),
				"accepting", e.Accepting,
				"discovered", e.Discovered,
			)
		},
		OnSubsetExpanded: func(ctx context.Context, e *domain.SubsetEvent) {
			logger.DebugContext(ctx, "subset_expanded", "subset", e.Subset.Label())
		},
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.DebugContext(ctx, "transition",
				"from", e.From.Label(),
				"symbol", e.Symbol.String(),
				"to", e.To.Label(),
			)
		},
		OnDone: func(ctx context.Context, e *domain.DoneEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "construction_failed",
					"reason", Reason(e.Err),
					"duration", e.Duration,
					"err", e.Err,
				)
				return
			}
			logger.InfoContext(ctx, "construction_done",
				"states", e.States,
				"transitions", e.Transitions,
				"duration", e.Duration,
			)
		},
	}
}
