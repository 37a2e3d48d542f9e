package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/jotter/pkg/adapters/fs"
	"github.com/aretw0/jotter/pkg/core"
)

// Backend names accepted by WithBackend.
const (
	BackendDocument = "document"
	BackendStamped  = "stamped"
)

// options holds the internal configuration for the jotter service.
type options struct {
	store   core.Store
	logger  *slog.Logger
	backend string
	codec   fs.Codec
	config  map[string]interface{}
}

// Option defines a functional option for configuring jotter.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		store:   nil,
		logger:  nil,
		backend: BackendDocument,
		config:  make(map[string]interface{}),
	}
}

// WithLogger sets the logger for the service and its store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore allows injecting a custom store (e.g. a mock).
// If provided, backend selection is skipped.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithBackend selects the storage backend by name ("document" or "stamped").
// Defaults to "document".
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithCodec forces the document format instead of deriving it from the
// file extension. Only used by the document backend.
func WithCodec(codec fs.Codec) Option {
	return func(o *options) {
		o.codec = codec
	}
}

// WithMustExist ensures the directory holding the notes already exists.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithReadOnly enables read-only mode.
// Add and Delete return core.ErrReadOnly and no directory is created.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithLock guards every mutation of the document with a sidecar lock file,
// for setups where more than one process writes the same notes.
func WithLock(enabled bool) Option {
	return func(o *options) {
		o.config["lock"] = enabled
	}
}

// WithLockTimeout sets how long a mutation waits for the lock.
// Zero means default (2s).
func WithLockTimeout(d time.Duration) Option {
	return func(o *options) {
		o.config["lock_timeout"] = d
	}
}

// WithWatcherErrorHandler registers a callback to handle errors occurring during the Watch loop.
// Errors such as a corrupt edit are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}
