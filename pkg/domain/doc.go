/*
Package domain contains the automaton model shared by every other package.

It is kept pure and free of external dependencies like I/O or persistence.
An Automaton is built once through Build, which rejects structurally invalid
definitions with ErrMalformedAutomaton, and is read-only afterwards.

# Key Entities

  - Automaton: states, alphabet, transition relation, start and accepting states.
  - StateSet: an immutable set of states with content-based equality. Subset
    construction uses it as the DFA state type.
  - Trace: the per-iteration record of a subset construction run.
  - ConstructionHooks: observability callbacks fired by the engine.
*/
package domain
