package core

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// Service handles the business logic for notes on top of any Store.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService creates a new Service. A nil logger discards output.
func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{store: store, logger: logger}
}

// AddNote creates the note, or replaces the content of an existing note with the same title.
func (s *Service) AddNote(ctx context.Context, title, content string) error {
	if err := ValidateNote(Note{Title: title, Content: content}); err != nil {
		return err
	}
	if err := s.store.Add(ctx, Note{Title: title, Content: content}); err != nil {
		s.logger.Debug("add failed", "title", title, "error", err)
		return err
	}
	s.logger.Debug("note added", "title", title, "bytes", len(content))
	return nil
}

// ViewNote retrieves a note by title. Titles are matched exactly.
func (s *Service) ViewNote(ctx context.Context, title string) (Note, error) {
	n, err := s.store.View(ctx, title)
	if err != nil {
		s.logger.Debug("view failed", "title", title, "error", err)
		return Note{}, err
	}
	return n, nil
}

// DeleteNote removes a note by title.
func (s *Service) DeleteNote(ctx context.Context, title string) error {
	if err := s.store.Delete(ctx, title); err != nil {
		s.logger.Debug("delete failed", "title", title, "error", err)
		return err
	}
	s.logger.Debug("note deleted", "title", title)
	return nil
}

// ListNotes returns every title in stored order. An empty store yields an empty slice.
func (s *Service) ListNotes(ctx context.Context) ([]string, error) {
	titles, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if titles == nil {
		titles = []string{}
	}
	return titles, nil
}

// Notes returns every note in stored order, reading the store once when it
// supports it.
func (s *Service) Notes(ctx context.Context) ([]Note, error) {
	if l, ok := s.store.(Loader); ok {
		coll, err := l.Load(ctx)
		if err != nil {
			return nil, err
		}
		return coll.Notes(), nil
	}

	titles, err := s.ListNotes(ctx)
	if err != nil {
		return nil, err
	}
	notes := make([]Note, 0, len(titles))
	for _, t := range titles {
		n, err := s.store.View(ctx, t)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// Watch observes external changes to the store if supported.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.store.(Watchable)
	if !ok {
		return nil, errors.New("store does not support watching")
	}
	return w.Watch(ctx)
}
