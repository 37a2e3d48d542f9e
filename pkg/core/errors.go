package core

import (
	"errors"
	"fmt"
)

// Error kinds reported by stores and the service.
// Adapters wrap them with context; callers classify with errors.Is.
var (
	// ErrInvalidArgument is returned when a request is malformed (e.g. an empty title).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when the requested title is absent or the store is empty.
	ErrNotFound = errors.New("note not found")

	// ErrEmptyStore narrows ErrNotFound to the case where no note exists at all.
	ErrEmptyStore = fmt.Errorf("%w: no notes stored", ErrNotFound)

	// ErrCorruptDocument is returned when persisted storage exists but cannot be parsed.
	ErrCorruptDocument = errors.New("corrupt document")

	// ErrStorageUnavailable is returned when reading or writing durable storage fails.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrReadOnly is returned by mutations on a store opened in read-only mode.
	ErrReadOnly = errors.New("store is in read-only mode")
)
