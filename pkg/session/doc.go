/*
Package session implements the interactive conversion front-end as an explicit state machine.

A session moves from awaiting_input to converted when an NFA is submitted and
converted, then to displaying once the result is shown. Reset returns it to
awaiting_input. The functions Convert, Display and Reset implement these phase
transitions on a caller-owned *domain.Session; Manager wraps them with persistence,
per-session locking and optional distributed locks for multi-replica deployments.
*/
package session
