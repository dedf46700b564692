package subset

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/powerset/pkg/domain"
	"golang.org/x/sync/errgroup"
)

// Result is the output of Construct.
type Result struct {
	DFA   *domain.Automaton
	Trace domain.Trace
}

// DeadState is the label of the explicit dead state added by WithTotal.
const DeadState = domain.StateID("{}")

// arena assigns integer ids to discovered subsets by canonical key.
type arena struct {
	index map[string]int
	sets  []domain.StateSet
}

func newArena() *arena {
	return &arena{index: make(map[string]int)}
}

// intern returns the id of set and whether it was seen for the first time.
func (a *arena) intern(set domain.StateSet) (int, bool) {
	key := set.Key()
	if id, ok := a.index[key]; ok {
		return id, false
	}
	id := len(a.sets)
	a.index[key] = id
	a.sets = append(a.sets, set)
	return id, true
}

type edge struct {
	from, to int
	symbol   domain.Symbol
}

// expansion is the per-symbol result of expanding one subset.
type expansion struct {
	move    domain.StateSet
	closure domain.StateSet
}

// Construct builds a DFA equivalent to nfa by subset construction.
//
// The worklist is FIFO and symbols are visited in the sorted order returned by
// nfa.Alphabet, so the trace is reproducible across runs. A symbol whose move
// is empty adds no edge. Construct fails only when ctx is done or the limit
// set through WithLimit is exceeded.
func Construct(ctx context.Context, nfa *domain.Automaton, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	begin := time.Now()
	b := &builder{
		ctx:      ctx,
		cfg:      cfg,
		nfa:      nfa,
		alphabet: nfa.Alphabet(),
		seen:     newArena(),
	}

	dfa, err := b.run()
	if cfg.hooks.OnDone != nil {
		ev := &domain.DoneEvent{
			EventBase:   domain.EventBase{Timestamp: time.Now(), Type: domain.EventConstructionDone},
			States:      len(b.seen.sets),
			Transitions: len(b.edges),
			Duration:    time.Since(begin),
			Err:         err,
		}
		cfg.hooks.OnDone(ctx, ev)
	}
	if err != nil {
		cfg.logger.Warn("subset construction stopped", "discovered", len(b.seen.sets), "err", err)
		return nil, err
	}

	cfg.logger.Info("subset construction finished",
		"nfa_states", len(nfa.States()),
		"dfa_states", len(dfa.States()),
		"transitions", dfa.NumTransitions(),
		"duration", time.Since(begin),
	)
	return &Result{DFA: dfa, Trace: b.trace}, nil
}

type builder struct {
	ctx      context.Context
	cfg      config
	nfa      *domain.Automaton
	alphabet []domain.Symbol
	seen     *arena
	worklist []int
	edges    []edge
	trace    domain.Trace
}

func (b *builder) run() (*domain.Automaton, error) {
	start := Closure(b.nfa, domain.NewStateSet(b.nfa.Start()))
	b.discover(start)

	for step := 0; len(b.worklist) > 0; step++ {
		if err := b.ctx.Err(); err != nil {
			return nil, err
		}

		current := b.worklist[0]
		b.worklist = b.worklist[1:]
		subset := b.seen.sets[current]
		b.fireSubset(b.cfg.hooks.OnSubsetExpanded, domain.EventSubsetExpanded, subset)

		results, err := b.expand(subset)
		if err != nil {
			return nil, err
		}

		var record domain.TraceStep
		if b.cfg.trace {
			record = domain.TraceStep{Index: step, Subset: subset, Moves: make([]domain.TraceMove, 0, len(b.alphabet))}
		}

		for i, sym := range b.alphabet {
			r := results[i]
			if r.move.IsEmpty() {
				if b.cfg.trace {
					record.Moves = append(record.Moves, domain.TraceMove{Symbol: sym})
				}
				continue
			}

			target, isNew := b.discover(r.closure)
			b.edges = append(b.edges, edge{from: current, to: target, symbol: sym})
			if b.cfg.hooks.OnTransition != nil {
				b.cfg.hooks.OnTransition(b.ctx, &domain.TransitionEvent{
					EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventTransition},
					From:      subset,
					Symbol:    sym,
					To:        r.closure,
				})
			}
			if b.cfg.trace {
				record.Moves = append(record.Moves, domain.TraceMove{
					Symbol:  sym,
					Move:    r.move,
					Closure: r.closure,
					New:     isNew,
				})
			}

			if b.cfg.limit > 0 && len(b.seen.sets) > b.cfg.limit {
				return nil, &domain.LimitError{Limit: b.cfg.limit, Discovered: len(b.seen.sets)}
			}
		}

		if b.cfg.trace {
			b.trace = append(b.trace, record)
		}
	}

	return b.assemble()
}

// discover interns set and queues it when it is new.
func (b *builder) discover(set domain.StateSet) (int, bool) {
	id, isNew := b.seen.intern(set)
	if isNew {
		b.worklist = append(b.worklist, id)
		b.cfg.logger.Debug("subset discovered", "subset", set.Label(), "discovered", len(b.seen.sets))
		b.fireSubset(b.cfg.hooks.OnSubsetDiscovered, domain.EventSubsetDiscovered, set)
	}
	return id, isNew
}

// expand computes move and closure for every alphabet symbol of subset.
// With parallelism above one the symbols are spread over an errgroup; each
// goroutine writes only its own slot, so no further locking is needed.
func (b *builder) expand(subset domain.StateSet) ([]expansion, error) {
	results := make([]expansion, len(b.alphabet))
	compute := func(i int) {
		mv := Move(b.nfa, subset, b.alphabet[i])
		if mv.IsEmpty() {
			return
		}
		results[i] = expansion{move: mv, closure: Closure(b.nfa, mv)}
	}

	if b.cfg.parallelism <= 1 || len(b.alphabet) < 2 {
		for i := range b.alphabet {
			compute(i)
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(b.ctx)
	g.SetLimit(b.cfg.parallelism)
	for i := range b.alphabet {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			compute(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (b *builder) fireSubset(hook func(context.Context, *domain.SubsetEvent), typ domain.EventType, set domain.StateSet) {
	if hook == nil {
		return
	}
	hook(b.ctx, &domain.SubsetEvent{
		EventBase:  domain.EventBase{Timestamp: time.Now(), Type: typ},
		Subset:     set,
		Accepting:  set.Intersects(b.nfa.AcceptSet()),
		Discovered: len(b.seen.sets),
	})
}

// assemble turns the arena and edge list into a new Automaton.
func (b *builder) assemble() (*domain.Automaton, error) {
	acceptSet := b.nfa.AcceptSet()
	labels := make([]domain.StateID, len(b.seen.sets))
	states := make([]domain.StateID, 0, len(b.seen.sets)+1)
	var accept []domain.StateID
	opts := make([]domain.BuildOption, 0, len(b.seen.sets)+1)

	used := make(map[domain.StateID]bool, len(b.seen.sets))
	for id, set := range b.seen.sets {
		label := domain.StateID(set.Label())
		// Identifiers containing commas can render two subsets alike.
		// Real labels end in "}", so a "#id" suffix is always free.
		if used[label] {
			label = domain.StateID(fmt.Sprintf("%s#%d", label, id))
		}
		used[label] = true
		labels[id] = label
		states = append(states, label)
		opts = append(opts, domain.WithSubset(label, set))
		if set.Intersects(acceptSet) {
			accept = append(accept, label)
		}
	}

	entries := make([]domain.TransitionEntry, 0, len(b.edges))
	for _, e := range b.edges {
		entries = append(entries, domain.TransitionEntry{
			From:   labels[e.from],
			Symbol: e.symbol,
			To:     []domain.StateID{labels[e.to]},
		})
	}

	if b.cfg.total {
		entries, states, opts = b.addDeadState(labels, entries, states, opts)
	}

	dfa, err := domain.Build(states, b.alphabet, entries, labels[0], accept, opts...)
	if err != nil {
		return nil, fmt.Errorf("assemble dfa: %w", err)
	}
	return dfa, nil
}

// addDeadState routes every missing (state, symbol) pair to DeadState.
// Nothing is added when the partial DFA is already total.
func (b *builder) addDeadState(labels []domain.StateID, entries []domain.TransitionEntry, states []domain.StateID, opts []domain.BuildOption) ([]domain.TransitionEntry, []domain.StateID, []domain.BuildOption) {
	present := make(map[domain.StateID]map[domain.Symbol]bool, len(labels))
	for _, e := range entries {
		if present[e.From] == nil {
			present[e.From] = make(map[domain.Symbol]bool)
		}
		present[e.From][e.Symbol] = true
	}

	var missing []domain.TransitionEntry
	for _, label := range labels {
		for _, sym := range b.alphabet {
			if !present[label][sym] {
				missing = append(missing, domain.TransitionEntry{From: label, Symbol: sym, To: []domain.StateID{DeadState}})
			}
		}
	}
	if len(missing) == 0 {
		return entries, states, opts
	}

	for _, sym := range b.alphabet {
		missing = append(missing, domain.TransitionEntry{From: DeadState, Symbol: sym, To: []domain.StateID{DeadState}})
	}
	b.cfg.logger.Debug("dead state added", "missing_edges", len(missing)-len(b.alphabet))
	return append(entries, missing...), append(states, DeadState), append(opts, domain.WithSubset(DeadState, domain.StateSet{}))
}
