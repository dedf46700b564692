/*
Package ports defines the driven ports (interfaces) around the conversion engine.

These interfaces decouple sessions and servers from external implementations, allowing
the same front-end to work with various storage backends and definition sources.

# Key Interfaces

  - SessionStore: Responsible for persisting and loading conversion sessions.
  - DistributedLocker: Provides distributed locking for handling concurrent session access.
  - Catalog: Lists and loads named NFA definitions (e.g., from Loam or Memory).
*/
package ports
