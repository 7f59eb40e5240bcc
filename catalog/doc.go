// Package catalog defines the reference-data entities a user attaches to
// tasks: categories and priorities, owned by exactly one user each.
//
// Entities are value snapshots. Store and cache operations hand out fresh
// copies, so callers can never mutate a cached record in place. Identity is
// by ID alone; two snapshots with equal IDs describe the same entity.
//
// Category carries two aggregate counters (CompletedCount, UncompletedCount)
// that are derived from task state and written exclusively by the counter
// synchronization path. The catalog API discards any counter values supplied
// by clients; this discarding is a contract, not an accident.
package catalog
