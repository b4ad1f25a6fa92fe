// Package store provides the SQLite-backed generation cache.
//
// Each generation run is recorded under its input hash together with a
// msgpack bundle of the artifacts it produced. A later run with the same
// hash can reuse the bundle instead of regenerating.
//
// # Ordering
//
// Rows carry a per-database seq assigned at insert time. "Latest" means
// highest seq, never wall time, so results do not depend on clocks.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Generation ids are UUIDv7 strings unless a generator is injected.
package store
