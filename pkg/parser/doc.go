/*
Package parser reads automaton definitions from text and files.

The text format is sectioned key-value text:

	# comments and blank lines are ignored
	States: q0,q1,q2
	Alphabet: a,b
	Start: q0
	Accept: q2
	Transitions:
	  q0,a->q0,q1
	  q0,b->q0
	  q1,b->q2
	  q2,->q0   # empty symbol: epsilon move

Repeated transition lines for the same source and symbol are merged.
Files ending in .yaml, .yml or .json are decoded with schema.DecodeYAML instead.
*/
package parser
