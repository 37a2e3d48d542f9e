// Package jotter is the Composition Root for the jotter note store.
//
// It connects the core business logic (Domain Layer) with the storage
// adapters (Persistence Layer) using the Hexagonal Architecture pattern.
//
// A store maps unique note titles to their content. The default backend keeps
// the whole collection in a single document (notes.json, or YAML when the file
// ends in .yaml/.yml) and rewrites it atomically on every change. The stamped
// backend keeps one timestamp-named file per note instead.
//
// Features:
//
//   - **Load on every call**: no cache, every mutation is durable before it returns.
//   - **Ordered documents**: notes keep their insertion order on disk.
//   - **Corruption safe**: a document that cannot be parsed is reported, never overwritten.
//   - **Opt-in locking**: a sidecar lock file serializes writers across processes.
//   - **Watch**: external edits are reported as per-title events.
//   - **Dispatcher**: named actions (add, view, delete, list, exit) rendered as display messages.
//
// Usage:
//
//	svc, err := jotter.New("notes.json",
//		jotter.WithLogger(logger),
//	)
//
//	err = svc.AddNote(ctx, "Groceries", "milk, eggs")
package jotter
