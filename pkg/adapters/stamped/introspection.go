package stamped

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Dir      string `json:"dir"`
	Pattern  string `json:"pattern"`
	ReadOnly bool   `json:"read_only"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	return StoreState{
		Dir:      s.Dir,
		Pattern:  FilePrefix + "*" + FileExt,
		ReadOnly: s.config.ReadOnly,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "stamped-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
