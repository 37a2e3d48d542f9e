package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/jotter/pkg/core"
)

// DefaultDebounce is how long the watcher waits for writes to settle before
// re-reading the document.
const DefaultDebounce = 50 * time.Millisecond

// Watch reports external changes to the document as one event per changed
// title. The channel is closed once ctx is cancelled or the watcher fails.
func (s *DocumentStore) Watch(ctx context.Context) (<-chan core.Event, error) {
	events := make(chan core.Event, 16)
	w := newWatchWorker(s, events)
	w.onExit = func() { close(events) }
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return events, nil
}

type watchWorker struct {
	*worker.BaseWorker
	store    *DocumentStore
	events   chan<- core.Event
	watcher  *fsnotify.Watcher
	target   string
	snapshot *core.Collection
	cancel   context.CancelFunc
	onExit   func()
}

func newWatchWorker(store *DocumentStore, events chan<- core.Event) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("document-watcher"),
		store:      store,
		events:     events,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	target, err := filepath.Abs(w.store.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve document path: %w", err)
	}

	snapshot, err := w.store.Load(ctx)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// Atomic writes replace the file, so the directory is watched rather than the file.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("%w: failed to watch %s: %w", core.ErrStorageUnavailable, filepath.Dir(target), err)
	}

	w.watcher = watcher
	w.target = target
	w.snapshot = snapshot
	w.store.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
			"path":              w.store.Path,
		}
	})
}

// relevant reports whether the event touches the watched document.
func (w *watchWorker) relevant(event fsnotify.Event) bool {
	if strings.HasPrefix(filepath.Base(event.Name), TempFilePrefix) {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == w.target
}

// reconcile re-reads the document and emits the differences with the last
// good snapshot. A document that fails to decode keeps the previous snapshot.
func (w *watchWorker) reconcile(ctx context.Context) {
	next, err := w.store.Load(ctx)
	if err != nil {
		w.handleError(fmt.Errorf("reconcile failed: %w", err))
		return
	}
	w.store.recordReconcile()

	for _, e := range core.Diff(w.snapshot, next, time.Now().Unix()) {
		select {
		case w.events <- e:
		case <-ctx.Done():
			return
		}
	}
	w.snapshot = next
}

func (w *watchWorker) handleError(err error) {
	w.store.logger.Error("watcher error", "error", err)
	if w.store.config.ErrorHandler != nil {
		w.store.config.ErrorHandler(err)
	}
}

// run is the main event loop for the watcher worker.
func (w *watchWorker) run(ctx context.Context) (err error) {
	if w.onExit != nil {
		defer w.onExit()
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if w.store.logger.Enabled(ctx, slog.LevelDebug) {
				w.store.logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				w.store.logger.Error("watcher panic", "error", err)
			}
		}
	}()
	defer w.store.setWatcherActive(false)
	defer w.watcher.Close()

	debounce := w.store.config.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.store.logger.Debug("event received", "name", event.Name, "op", event.Op.String())
			if w.relevant(event) {
				timer.Reset(debounce)
			}

		case <-timer.C:
			w.reconcile(ctx)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.handleError(wErr)
		}
	}
}
