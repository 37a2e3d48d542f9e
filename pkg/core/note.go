// Package core holds the domain of jotter: notes keyed by title, the
// storage contract every backend fulfils and the service that sits on top.
package core

import (
	"fmt"
	"unicode/utf8"
)

// Note is the central entity of the domain.
// The Title is its unique identifier within a store; Content may be empty
// or span multiple lines.
type Note struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// ValidateNote reports whether n can be stored. Titles are matched byte for
// byte, so any non-empty title is accepted; both fields must be valid UTF-8
// because every document format is text.
func ValidateNote(n Note) error {
	if n.Title == "" {
		return fmt.Errorf("%w: note title cannot be empty", ErrInvalidArgument)
	}
	if !utf8.ValidString(n.Title) {
		return fmt.Errorf("%w: note title is not valid UTF-8", ErrInvalidArgument)
	}
	if !utf8.ValidString(n.Content) {
		return fmt.Errorf("%w: content of %q is not valid UTF-8", ErrInvalidArgument, n.Title)
	}
	return nil
}

// Collection is an insertion-ordered mapping from title to content.
// It is the unit of persistence for document-backed stores.
// The zero value is an empty, ready to use collection.
type Collection struct {
	titles  []string
	content map[string]string
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{content: make(map[string]string)}
}

// Set inserts or overwrites the entry for title.
// Overwriting keeps the original position of the title.
func (c *Collection) Set(title, content string) {
	if c.content == nil {
		c.content = make(map[string]string)
	}
	if _, exists := c.content[title]; !exists {
		c.titles = append(c.titles, title)
	}
	c.content[title] = content
}

// Get returns the content stored under title.
func (c *Collection) Get(title string) (string, bool) {
	content, ok := c.content[title]
	return content, ok
}

// Delete removes title from the collection and reports whether it was present.
func (c *Collection) Delete(title string) bool {
	if _, ok := c.content[title]; !ok {
		return false
	}
	delete(c.content, title)
	for i, t := range c.titles {
		if t == title {
			c.titles = append(c.titles[:i], c.titles[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of notes.
func (c *Collection) Len() int {
	return len(c.titles)
}

// Titles returns a copy of the titles in stored order.
func (c *Collection) Titles() []string {
	out := make([]string, len(c.titles))
	copy(out, c.titles)
	return out
}

// Notes returns every note in stored order.
func (c *Collection) Notes() []Note {
	out := make([]Note, 0, len(c.titles))
	for _, t := range c.titles {
		out = append(out, Note{Title: t, Content: c.content[t]})
	}
	return out
}

// EventType represents the kind of change observed on a note.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a single note, identified by title.
type Event struct {
	Type      EventType
	Title     string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return string(e.Type) + " " + e.Title
}

// Diff compares two snapshots of a collection and returns one event per
// title that was created, modified or deleted. Events follow the order of
// next, with deletions appended in the order of prev.
func Diff(prev, next *Collection, now int64) []Event {
	if prev == nil {
		prev = NewCollection()
	}
	if next == nil {
		next = NewCollection()
	}

	var events []Event
	for _, n := range next.Notes() {
		old, existed := prev.Get(n.Title)
		switch {
		case !existed:
			events = append(events, Event{Type: EventCreate, Title: n.Title, Timestamp: now})
		case old != n.Content:
			events = append(events, Event{Type: EventModify, Title: n.Title, Timestamp: now})
		}
	}
	for _, t := range prev.Titles() {
		if _, ok := next.Get(t); !ok {
			events = append(events, Event{Type: EventDelete, Title: t, Timestamp: now})
		}
	}
	return events
}
