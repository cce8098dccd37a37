// Package store provides SQLite-backed storage for content records and
// compiled timelines.
//
// Records are imported from validated record files and served back to the
// pattern builder through the content.Provider interface. Compiled
// timelines are saved as canonical JSON keyed by their TimelineID, so
// saving the same timeline twice is a no-op.
//
// # Determinism
//
//   - Records are returned ORDER BY seq ASC, the import order. A theme's
//     pool, and every pattern built from it, is stable across runs.
//   - Timeline bodies are RFC 8785 canonical JSON produced by
//     ir.MarshalCanonical; loading one and recomputing its ID yields the
//     stored ID.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
