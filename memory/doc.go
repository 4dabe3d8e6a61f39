// Package memory provides the durable small-fact ledger per conversation
// thread.
//
// Persistence model:
//   - One SQLite table of records keyed by thread_id; no cross-thread queries.
//   - Records are never mutated; a later record with the same semantic key
//     supersedes earlier ones when assembling the per-turn note.
//   - Deletes are explicit and id-addressed.
package memory
