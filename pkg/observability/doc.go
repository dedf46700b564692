/*
Package observability provides tools for monitoring subset construction.

It turns domain.ConstructionHooks into Prometheus metrics (conversions, failures,
discovered subsets, duration) and structured slog events, so embedding servers can
expose them on /metrics and in their logs.
*/
package observability
