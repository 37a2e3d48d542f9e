package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/jotter/pkg/core"
)

// DocumentStore implements core.Store on top of a single keyed document:
// the whole note collection lives in one file and every mutation rewrites it.
type DocumentStore struct {
	Path   string
	codec  Codec
	lock   *fileLock
	config Config
	logger *slog.Logger

	mu            sync.RWMutex // guards the watcher bookkeeping below
	watcherActive bool
	lastReconcile *time.Time
}

// Config holds the configuration for the document store.
type Config struct {
	Path        string        // Location of the document, e.g. "notes.json".
	Codec       Codec         // Format of the document. Defaults to CodecFor(Path).
	Logger      *slog.Logger  // Optional.
	MustExist   bool          // Fail Initialize if the parent directory is missing instead of creating it.
	ReadOnly    bool          // Reject Add and Delete with core.ErrReadOnly.
	Lock        bool          // Guard mutations with a sidecar lock file.
	LockTimeout time.Duration // How long a mutation waits for the lock. Defaults to DefaultLockTimeout.
	Perm        os.FileMode   // Mode of the written document. Defaults to 0644.

	// Watcher settings.
	Debounce     time.Duration // Quiet period before re-reading the document. Defaults to DefaultDebounce.
	ErrorHandler func(error)   // Receives watcher errors in addition to the logger.
}

// NewDocumentStore creates a new document-backed store.
func NewDocumentStore(config Config) *DocumentStore {
	if config.Codec == nil {
		config.Codec = CodecFor(config.Path)
	}
	if config.Perm == 0 {
		config.Perm = 0644
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &DocumentStore{
		Path:   config.Path,
		codec:  config.Codec,
		config: config,
		logger: logger,
	}
	if config.Lock {
		s.lock = newFileLock(config.Path, config.LockTimeout)
	}
	return s
}

// Initialize makes sure the directory holding the document exists.
// The document itself is only created by the first mutation.
func (s *DocumentStore) Initialize(ctx context.Context) error {
	dir := filepath.Dir(s.Path)

	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("%w: notes directory %s: %w", core.ErrStorageUnavailable, dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: %s is not a directory", core.ErrStorageUnavailable, dir)
		}
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create notes directory: %w", core.ErrStorageUnavailable, err)
	}
	return nil
}

// Load reads and decodes the document. A missing document is an empty collection.
func (s *DocumentStore) Load(ctx context.Context) (*core.Collection, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.NewCollection(), nil
		}
		return nil, fmt.Errorf("%w: failed to read %s: %w", core.ErrStorageUnavailable, s.Path, err)
	}

	coll, err := s.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.Path, err)
	}
	return coll, nil
}

func (s *DocumentStore) save(coll *core.Collection) error {
	data, err := s.codec.Encode(coll)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}
	if err := WriteFileAtomic(s.Path, data, s.config.Perm); err != nil {
		return fmt.Errorf("%w: %w", core.ErrStorageUnavailable, err)
	}
	s.logger.Debug("document written", "path", s.Path, "notes", coll.Len(), "bytes", len(data))
	return nil
}

// mutate runs the load -> fn -> save cycle of a write operation.
// Nothing is written when fn fails.
func (s *DocumentStore) mutate(ctx context.Context, fn func(*core.Collection) error) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}

	if s.lock != nil {
		unlock, err := s.lock.Acquire(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", core.ErrStorageUnavailable, err)
		}
		defer unlock()
	}

	coll, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(coll); err != nil {
		return err
	}
	return s.save(coll)
}

// Add inserts the note or overwrites the content stored under its title.
func (s *DocumentStore) Add(ctx context.Context, n core.Note) error {
	if err := core.ValidateNote(n); err != nil {
		return err
	}
	return s.mutate(ctx, func(coll *core.Collection) error {
		coll.Set(n.Title, n.Content)
		return nil
	})
}

// View returns the note stored under title.
func (s *DocumentStore) View(ctx context.Context, title string) (core.Note, error) {
	coll, err := s.Load(ctx)
	if err != nil {
		return core.Note{}, err
	}
	if coll.Len() == 0 {
		return core.Note{}, core.ErrEmptyStore
	}
	content, ok := coll.Get(title)
	if !ok {
		return core.Note{}, fmt.Errorf("%w: %q", core.ErrNotFound, title)
	}
	return core.Note{Title: title, Content: content}, nil
}

// Delete removes the note stored under title.
func (s *DocumentStore) Delete(ctx context.Context, title string) error {
	return s.mutate(ctx, func(coll *core.Collection) error {
		if coll.Len() == 0 {
			return core.ErrEmptyStore
		}
		if !coll.Delete(title) {
			return fmt.Errorf("%w: %q", core.ErrNotFound, title)
		}
		return nil
	})
}

// List returns every title in document order.
func (s *DocumentStore) List(ctx context.Context) ([]string, error) {
	coll, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return coll.Titles(), nil
}

var _ core.Store = (*DocumentStore)(nil)
