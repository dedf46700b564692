/*
Package dsl provides a fluent builder for constructing automata in Go code.

It is useful for tests, examples and generated automata, where writing the text
format would be awkward.

Example usage:

	b := dsl.New()

	b.State("q0").Start().
		On("a", "q0", "q1").
		On("b", "q0")

	b.State("q1").
		On("b", "q2")

	b.State("q2").Accept()

	nfa, err := b.Build()
*/
package dsl
