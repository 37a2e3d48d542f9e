// Package stamped implements core.Store with one file per note, each file
// named after the moment the note was created (note_2006-01-02_15-04-05.txt).
package stamped

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	jfs "github.com/aretw0/jotter/pkg/adapters/fs"
	"github.com/aretw0/jotter/pkg/core"
)

const (
	// FilePrefix and FileExt frame every note file name.
	FilePrefix = "note_"
	FileExt    = ".txt"

	// TimeLayout is the creation timestamp embedded in file names.
	TimeLayout = "2006-01-02_15-04-05"
)

// Config holds the configuration for the stamped store.
type Config struct {
	Dir       string           // Directory holding the note files.
	Logger    *slog.Logger     // Optional.
	MustExist bool             // Fail Initialize if Dir is missing instead of creating it.
	ReadOnly  bool             // Reject Add and Delete with core.ErrReadOnly.
	Now       func() time.Time // Clock used to name new files. Defaults to time.Now.
}

// Store keeps each note in its own timestamp-named file.
// It fulfils the same contract as the document store: titles are unique,
// Add is last-write-wins and List follows creation order.
type Store struct {
	Dir    string
	config Config
	logger *slog.Logger
}

// NewStore creates a new stamped store.
func NewStore(config Config) *Store {
	if config.Now == nil {
		config.Now = time.Now
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{Dir: config.Dir, config: config, logger: logger}
}

// Initialize ensures the notes directory exists.
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Dir)
		if err != nil {
			return fmt.Errorf("%w: notes directory %s: %w", core.ErrStorageUnavailable, s.Dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: %s is not a directory", core.ErrStorageUnavailable, s.Dir)
		}
		return nil
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create notes directory: %w", core.ErrStorageUnavailable, err)
	}
	return nil
}

// entry ties a decoded note to the file it was read from.
type entry struct {
	file string
	note core.Note
}

// scan reads every note file in creation order.
func (s *Store) scan() ([]entry, error) {
	if _, err := os.Stat(s.Dir); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	files, err := doublestar.Glob(os.DirFS(s.Dir), FilePrefix+"*"+FileExt)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list %s: %w", core.ErrStorageUnavailable, s.Dir, err)
	}
	sort.Slice(files, func(i, j int) bool { return fileLess(files[i], files[j]) })

	entries := make([]entry, 0, len(files))
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(s.Dir, name))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue // removed between listing and reading
			}
			return nil, fmt.Errorf("%w: failed to read %s: %w", core.ErrStorageUnavailable, name, err)
		}
		n, err := decodeNote(data, strings.TrimSuffix(name, FileExt))
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", name, err)
		}
		entries = append(entries, entry{file: name, note: n})
	}
	return entries, nil
}

// Load builds the collection view of the directory. When several files
// carry the same title the newest one wins.
func (s *Store) Load(ctx context.Context) (*core.Collection, error) {
	entries, err := s.scan()
	if err != nil {
		return nil, err
	}
	coll := core.NewCollection()
	for _, e := range entries {
		coll.Set(e.note.Title, e.note.Content)
	}
	return coll, nil
}

// fileLess orders note files by creation time, then by collision suffix.
func fileLess(a, b string) bool {
	sa, na := splitName(a)
	sb, nb := splitName(b)
	if sa != sb {
		return sa < sb
	}
	if na != nb {
		return na < nb
	}
	return a < b
}

// splitName separates the timestamp stem of a file name from its
// collision suffix ("note_..._3.txt" -> "note_...", 3).
func splitName(name string) (string, int) {
	stem := strings.TrimSuffix(name, FileExt)
	size := len(FilePrefix) + len(TimeLayout)
	if len(stem) <= size+1 || stem[size] != '_' {
		return stem, 1
	}
	n, err := strconv.Atoi(stem[size+1:])
	if err != nil {
		return stem, 1
	}
	return stem[:size], n
}

func filesFor(entries []entry, title string) []string {
	var files []string
	for _, e := range entries {
		if e.note.Title == title {
			files = append(files, e.file)
		}
	}
	return files
}

// newFileName derives a free file name from the current time.
func (s *Store) newFileName() (string, error) {
	stamp := FilePrefix + s.config.Now().Format(TimeLayout)
	for i := 1; ; i++ {
		name := stamp + FileExt
		if i > 1 {
			name = fmt.Sprintf("%s_%d%s", stamp, i, FileExt)
		}
		_, err := os.Stat(filepath.Join(s.Dir, name))
		if errors.Is(err, os.ErrNotExist) {
			return name, nil
		}
		if err != nil {
			return "", fmt.Errorf("%w: %w", core.ErrStorageUnavailable, err)
		}
	}
}

// Add writes the note into the file already holding its title, or into a
// new file named after the current time.
func (s *Store) Add(ctx context.Context, n core.Note) error {
	if err := core.ValidateNote(n); err != nil {
		return err
	}
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}

	entries, err := s.scan()
	if err != nil {
		return err
	}

	var name string
	if existing := filesFor(entries, n.Title); len(existing) > 0 {
		name = existing[len(existing)-1]
	} else if name, err = s.newFileName(); err != nil {
		return err
	}

	data, err := encodeNote(n)
	if err != nil {
		return fmt.Errorf("failed to encode note: %w", err)
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("%w: %w", core.ErrStorageUnavailable, err)
	}
	if err := jfs.WriteFileAtomic(filepath.Join(s.Dir, name), data, 0644); err != nil {
		return fmt.Errorf("%w: %w", core.ErrStorageUnavailable, err)
	}
	s.logger.Debug("note file written", "file", name, "title", n.Title)
	return nil
}

// View returns the newest note stored under title.
func (s *Store) View(ctx context.Context, title string) (core.Note, error) {
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

// Delete removes every file holding title.
func (s *Store) Delete(ctx context.Context, title string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}

	entries, err := s.scan()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return core.ErrEmptyStore
	}
	files := filesFor(entries, title)
	if len(files) == 0 {
		return fmt.Errorf("%w: %q", core.ErrNotFound, title)
	}

	for _, name := range files {
		if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: failed to remove %s: %w", core.ErrStorageUnavailable, name, err)
		}
		s.logger.Debug("note file removed", "file", name, "title", title)
	}
	return nil
}

// List returns every title in creation order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	coll, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return coll.Titles(), nil
}

var _ core.Store = (*Store)(nil)
