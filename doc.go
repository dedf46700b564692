/*
Package powerset converts nondeterministic finite automata (NFA), optionally with
epsilon transitions, into equivalent deterministic finite automata (DFA) by subset
construction.

# Concept

Each DFA state stands for a set of NFA states. Construction starts from the
epsilon-closure of the NFA start state and explores, breadth first, the closure of
every move on every alphabet symbol until no new set appears. The resulting DFA
accepts exactly the language of the NFA.

The core (pkg/domain and pkg/subset) consumes an immutable automaton and produces
another one; it does not parse, render or keep sessions. Those concerns live in
collaborator packages: pkg/parser and pkg/schema for input, internal/presentation
for Mermaid, DOT and terminal output, pkg/session for the interactive front-end,
and pkg/adapters for storage and transports.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/powerset"
		"github.com/aretw0/powerset/pkg/dsl"
	)

	func main() {
		b := dsl.New()
		b.State("q0").Start().On("a", "q0", "q1").On("b", "q0")
		b.State("q1").On("b", "q2")
		b.State("q2").Accept()

		conv, err := powerset.New("")
		if err != nil {
			log.Fatal(err)
		}

		res, err := conv.Convert(context.Background(), b.MustBuild())
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(res.DFA.States())
	}

# Limits

The number of DFA states can grow exponentially with the number of NFA states.
Use WithLimit to bound the work, or pass a context with a deadline; both stop
construction with an error instead of running on.
*/
package powerset
