/*
Package ports defines the driven ports (interfaces) of the Tessera editor.

These interfaces decouple session orchestration from concrete adapters, so
the same manager can run with an in-memory registry and either a local or a
redis-backed event bus.

# Key Interfaces

  - SessionRegistry: Holds the live editor sessions by ID.
  - EventBus: Fans layout change events out to UI subscribers.
*/
package ports
