// Package table implements the customer table state engine: the in-memory
// working set of customer records, the filter/sort/column view state, the
// single inline-edit session, and optimistic mutation with rollback.
//
// # Overview
//
// The engine is the only component that mutates the working set. The UI
// reports intents (start edit, commit, toggle, delete, filter and sort
// changes); the engine applies speculative local mutations immediately and
// hands back a PendingOp describing the store round trip the caller must
// perform. The caller reports the result via Resolve, which either finalizes
// the optimistic state or restores the pre-mutation snapshot.
//
//	UI intent ──> Engine ──> optimistic mutation ──> PendingOp
//	                                                    │
//	              Resolve(opID, err) <── store PATCH/DELETE (async)
//	                │
//	                ├── success: snapshot discarded (delete: record removed)
//	                └── failure: record restored verbatim from snapshot
//
// # Ordering
//
// Every operation carries a sequence token (OpID). Per (record, slot) the
// latest token wins: resolutions for superseded or unknown tokens are
// dropped, so a raced double-submission can neither commit a stale response
// nor roll back from a stale snapshot. Operations on different records are
// independent and may overlap freely.
//
// # Concurrency
//
// The engine is not goroutine-safe. It is designed to run on a single event
// loop (the bubbletea Update goroutine); only network round trips happen
// elsewhere, and they touch the engine exclusively through Resolve messages
// delivered back on that loop.
//
// # Derivation
//
// Derive is a pure function from (records, view config) to the rendered row
// order: status filter, case-folded substring search across all fields
// including the legacy customer number, then a stable sort with German
// collation for string keys. Column visibility is a render-time projection
// and never affects which rows are derived.
package table
