/*
Package schema defines Definition, the serializable description of an automaton.

A Definition is what parsers produce and what stores, HTTP handlers and the MCP
server exchange. It carries plain strings only; ToAutomaton validates it through
domain.Build, and FromAutomaton turns any automaton (including a constructed DFA)
back into a Definition.

Structured input (YAML, JSON, or any decoded map) goes through Decode, which is
lenient about shapes: a single accept state may be written as a scalar and
lists may be written as comma-separated strings.
*/
package schema
