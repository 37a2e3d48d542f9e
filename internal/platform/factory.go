package platform

import (
	"github.com/aretw0/jotter/pkg/core"
)

// New opens the store and wires the domain service on top of it.
//
//	svc, err := platform.New("notes.json", platform.WithLock(true))
func New(uri string, opts ...Option) (*core.Service, error) {
	store, err := Init(uri, opts...)
	if err != nil {
		return nil, err
	}

	// The logger is needed again for wiring the service.
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return core.NewService(store, o.logger), nil
}
