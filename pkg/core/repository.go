package core

import "context"

// Store defines the contract for storing and retrieving notes.
// Every backend (single keyed document, one file per note, ...) implements it,
// keeping the CRUD semantics uniform across storage formats.
//
// Each call is a complete load -> act -> persist cycle; a Store holds no
// note state between calls.
type Store interface {
	// Add inserts the note, replacing any existing note with the same title.
	Add(ctx context.Context, n Note) error

	// View retrieves the note stored under title.
	View(ctx context.Context, title string) (Note, error)

	// Delete removes the note stored under title.
	Delete(ctx context.Context, title string) error

	// List returns all titles in stored order.
	List(ctx context.Context) ([]string, error)

	// Initialize ensures the underlying storage location is usable (e.g. creates directories).
	Initialize(ctx context.Context) error
}

// Loader is implemented by stores that can read the whole collection in one pass.
type Loader interface {
	Load(ctx context.Context) (*Collection, error)
}

// Watchable is implemented by stores that can report external changes.
type Watchable interface {
	// Watch emits one Event per changed title until ctx is cancelled.
	Watch(ctx context.Context) (<-chan Event, error)
}
