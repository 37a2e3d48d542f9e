// Package lifecycle exposes note events as a lifecycle.Source so the watch
// loop can be driven by the same runtime that supervises the watcher.
package lifecycle

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/jotter/pkg/core"
)

// Change is the lifecycle.Event emitted for every note event.
type Change struct {
	core.Event
}

// String renders the change on a single line. The title is quoted so that
// titles made of spaces or line breaks stay visible.
func (c Change) String() string {
	return string(c.Type) + " " + strconv.Quote(c.Title)
}

// At is the moment the change was observed.
func (c Change) At() time.Time {
	return time.Unix(c.Timestamp, 0)
}

// ParseEventTypes turns names such as "create" or "DELETE" into event types.
func ParseEventTypes(names []string) ([]core.EventType, error) {
	types := make([]core.EventType, 0, len(names))
	for _, name := range names {
		t := core.EventType(strings.ToUpper(strings.TrimSpace(name)))
		switch t {
		case core.EventCreate, core.EventModify, core.EventDelete:
			types = append(types, t)
		default:
			return nil, fmt.Errorf("%w: unknown event type %q", core.ErrInvalidArgument, name)
		}
	}
	return types, nil
}

type noteSource struct {
	events <-chan core.Event
	only   map[core.EventType]bool
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that re-emits note events as Change
// values. When types are given, only events of those types pass.
// The output channel closes when the input closes or ctx is cancelled.
func NewSource(events <-chan core.Event, types ...core.EventType) lifecycle.Source {
	s := &noteSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	if len(types) > 0 {
		s.only = make(map[core.EventType]bool, len(types))
		for _, t := range types {
			s.only[t] = true
		}
	}
	return s
}

func (s *noteSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *noteSource) accepts(e core.Event) bool {
	return s.only == nil || s.only[e.Type]
}

func (s *noteSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if !s.accepts(e) {
					continue
				}
				select {
				case s.out <- Change{Event: e}:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
