/*
Package subset converts a nondeterministic finite automaton into an equivalent
deterministic one using the subset construction.

The package is built from three pure operations:

  - Closure: every state reachable through zero or more epsilon transitions.
  - Move: the direct destinations of a set of states on one symbol.
  - Construct: the worklist algorithm that treats each reachable epsilon-closed
    set of NFA states as a single DFA state.

Construct never mutates its input. It returns a new domain.Automaton whose state
IDs are the subset labels (for example "{q0,q1}") and an optional Trace of every
worklist iteration.

	res, err := subset.Construct(ctx, nfa, subset.WithLimit(4096))
	if errors.Is(err, domain.ErrUnboundedConstruction) {
		// too many subsets
	}
	fmt.Println(res.DFA.Start())
*/
package subset
