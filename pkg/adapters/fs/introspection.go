package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path          string     `json:"path"`
	Codec         string     `json:"codec"`
	ReadOnly      bool       `json:"read_only"`
	Locking       bool       `json:"locking"`
	WatcherActive bool       `json:"watcher_active"`
	LastReconcile *time.Time `json:"last_reconcile,omitempty"`
}

// State implements introspection.Introspectable.
func (s *DocumentStore) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StoreState{
		Path:          s.Path,
		Codec:         s.codec.Name(),
		ReadOnly:      s.config.ReadOnly,
		Locking:       s.lock != nil,
		WatcherActive: s.watcherActive,
		LastReconcile: s.lastReconcile,
	}
}

// ComponentType implements introspection.Component.
func (s *DocumentStore) ComponentType() string {
	return "document-store"
}

var _ introspection.Introspectable = (*DocumentStore)(nil)
var _ introspection.Component = (*DocumentStore)(nil)

func (s *DocumentStore) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}

func (s *DocumentStore) recordReconcile() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.lastReconcile = &now
}
