package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSubsetDiscovered EventType = "subset_discovered"
	EventSubsetExpanded   EventType = "subset_expanded"
	EventTransition       EventType = "transition"
	EventConstructionDone EventType = "construction_done"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// SubsetEvent is emitted when a subset is queued or taken off the worklist.
type SubsetEvent struct {
	EventBase
	Subset    StateSet `json:"subset"`
	Accepting bool     `json:"accepting"`
	// Discovered is the number of distinct subsets known when the event fired.
	Discovered int `json:"discovered"`
}

// TransitionEvent is emitted for every DFA edge recorded.
type TransitionEvent struct {
	EventBase
	From   StateSet `json:"from"`
	Symbol Symbol   `json:"symbol"`
	To     StateSet `json:"to"`
}

// DoneEvent is emitted once construction stops, successfully or not.
type DoneEvent struct {
	EventBase
	States      int           `json:"states"`
	Transitions int           `json:"transitions"`
	Duration    time.Duration `json:"duration"`
	Err         error         `json:"-"`
}

// ConstructionHooks defines callbacks for construction observability.
// Nil callbacks are skipped.
type ConstructionHooks struct {
	OnSubsetDiscovered func(context.Context, *SubsetEvent)
	OnSubsetExpanded   func(context.Context, *SubsetEvent)
	OnTransition       func(context.Context, *TransitionEvent)
	OnDone             func(context.Context, *DoneEvent)
}

// Merge returns hooks that call h first and then other.
func (h ConstructionHooks) Merge(other ConstructionHooks) ConstructionHooks {
	return ConstructionHooks{
		OnSubsetDiscovered: chain(h.OnSubsetDiscovered, other.OnSubsetDiscovered),
		OnSubsetExpanded:   chain(h.OnSubsetExpanded, other.OnSubsetExpanded),
		OnTransition:       chain(h.OnTransition, other.OnTransition),
		OnDone:             chain(h.OnDone, other.OnDone),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
