package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/jotter/pkg/adapters/fs"
	"github.com/aretw0/jotter/pkg/adapters/stamped"
	"github.com/aretw0/jotter/pkg/core"
)

// Init opens the store described by the options and initializes it.
// The 'uri' argument is backend-specific: the document path for "document",
// the notes directory for "stamped".
func Init(uri string, opts ...Option) (core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	// 1. Check for injected store
	if o.store != nil {
		return o.store, nil
	}

	if uri == "" {
		return nil, fmt.Errorf("%w: storage location cannot be empty", core.ErrInvalidArgument)
	}

	// 2. Build the backend
	var store core.Store
	switch o.backend {
	case BackendDocument, "":
		store = initDocument(uri, o)
	case BackendStamped:
		store = initStamped(uri, o)
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", core.ErrInvalidArgument, o.backend)
	}

	// 3. Run Initialization
	if err := store.Initialize(context.Background()); err != nil {
		return nil, err
	}

	if o.logger != nil {
		o.logger.Debug("store opened", "backend", o.backend, "uri", uri)
	}
	return store, nil
}

// initDocument builds the single-document backend.
func initDocument(path string, o *options) *fs.DocumentStore {
	mustExist, _ := o.config["must_exist"].(bool)
	readOnly, _ := o.config["read_only"].(bool)
	lock, _ := o.config["lock"].(bool)
	lockTimeout, _ := o.config["lock_timeout"].(time.Duration)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	return fs.NewDocumentStore(fs.Config{
		Path:         path,
		Codec:        o.codec,
		Logger:       o.logger,
		MustExist:    mustExist,
		ReadOnly:     readOnly,
		Lock:         lock,
		LockTimeout:  lockTimeout,
		ErrorHandler: errorHandler,
	})
}

// initStamped builds the file-per-note backend.
func initStamped(dir string, o *options) *stamped.Store {
	mustExist, _ := o.config["must_exist"].(bool)
	readOnly, _ := o.config["read_only"].(bool)

	if lock, _ := o.config["lock"].(bool); lock && o.logger != nil {
		o.logger.Warn("lock is ignored by the stamped backend")
	}

	return stamped.NewStore(stamped.Config{
		Dir:       dir,
		Logger:    o.logger,
		MustExist: mustExist,
		ReadOnly:  readOnly,
	})
}
