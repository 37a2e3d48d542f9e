package jotter

import (
	"log/slog"
	"time"

	"github.com/aretw0/jotter/internal/platform"
	"github.com/aretw0/jotter/pkg/adapters/fs"
	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/dispatch"
)

// Version exposes the version of the library.
// See version.go for the implementation using go:embed.

// --- Configuration ---

// Option defines a functional option for configuring jotter.
type Option = platform.Option

// Backend names.
const (
	BackendDocument = platform.BackendDocument
	BackendStamped  = platform.BackendStamped
)

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStore allows injecting a custom store.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithBackend selects the storage backend by name.
func WithBackend(name string) Option {
	return platform.WithBackend(name)
}

// WithCodec forces the document format of the document backend.
func WithCodec(codec fs.Codec) Option {
	return platform.WithCodec(codec)
}

// WithMustExist ensures the notes directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly rejects every mutation with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithLock guards mutations of the document with a sidecar lock file.
func WithLock(enabled bool) Option {
	return platform.WithLock(enabled)
}

// WithLockTimeout sets how long a mutation waits for the lock.
func WithLockTimeout(d time.Duration) Option {
	return platform.WithLockTimeout(d)
}

// WithWatcherErrorHandler registers a callback for errors of the Watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates a new jotter Service.
func New(uri string, opts ...Option) (*core.Service, error) {
	return platform.New(uri, opts...)
}

// Init opens and initializes a store explicitly.
func Init(uri string, opts ...Option) (core.Store, error) {
	return platform.Init(uri, opts...)
}

// NewDispatcher opens the store and returns a dispatcher driving it.
func NewDispatcher(uri string, opts ...Option) (*dispatch.Dispatcher, error) {
	svc, err := New(uri, opts...)
	if err != nil {
		return nil, err
	}
	return dispatch.New(svc, nil), nil
}

// --- Utils ---

// FindRoot recursively looks upwards for a project root indicator.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
