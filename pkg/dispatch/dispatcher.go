// Package dispatch maps the named actions of a note-taking session onto a
// note service and renders every outcome as a displayable message.
//
// Drivers (the interactive shell, one-shot CLI commands, tests) build a
// Request per user action and print the Result; no error ever escapes as a
// Go error or a panic.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/jotter/pkg/core"
)

// Action names accepted by the dispatcher.
const (
	ActionAdd    = "add"
	ActionView   = "view"
	ActionDelete = "delete"
	ActionList   = "list"
	ActionExit   = "exit"
)

// Messages shown to the user.
const (
	MsgAdded         = "Note added successfully!"
	MsgDeleted       = "Note deleted successfully!"
	MsgNotFound      = "Note not found."
	MsgEmpty         = "No notes found."
	MsgListHeader    = "List of Notes:"
	MsgInvalidChoice = "Invalid choice. Please try again."
	MsgExiting       = "Exiting..."
	MsgReadOnly      = "Notes are read-only."
)

// Request is one user action. Title and Content are only read by the
// actions that need them.
type Request struct {
	Action  string
	Title   string
	Content string
}

// Result is the outcome of a request. Exit is set once the session should end.
type Result struct {
	OK      bool
	Message string
	Exit    bool
}

// MenuEntry is one line of the numbered menu.
type MenuEntry struct {
	Key    string
	Action string
	Label  string
}

var menu = []MenuEntry{
	{Key: "1", Action: ActionAdd, Label: "Add Note"},
	{Key: "2", Action: ActionView, Label: "View Note"},
	{Key: "3", Action: ActionDelete, Label: "Delete Note"},
	{Key: "4", Action: ActionList, Label: "List Notes"},
	{Key: "5", Action: ActionExit, Label: "Exit"},
}

// Actions returns the menu entries in display order.
func Actions() []MenuEntry {
	out := make([]MenuEntry, len(menu))
	copy(out, menu)
	return out
}

// Normalize resolves a raw action (name or menu number, any case) to its
// canonical name. Unknown actions yield "".
func Normalize(action string) string {
	action = strings.ToLower(strings.TrimSpace(action))
	for _, m := range menu {
		if action == m.Key || action == m.Action {
			return m.Action
		}
	}
	return ""
}

// NoteService is the subset of core.Service the dispatcher drives.
type NoteService interface {
	AddNote(ctx context.Context, title, content string) error
	ViewNote(ctx context.Context, title string) (core.Note, error)
	DeleteNote(ctx context.Context, title string) error
	ListNotes(ctx context.Context) ([]string, error)
}

// Dispatcher executes requests one at a time against a note service.
type Dispatcher struct {
	service NoteService
	logger  *slog.Logger
}

// New creates a Dispatcher. A nil logger discards output.
func New(service NoteService, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{service: service, logger: logger}
}

// Dispatch runs a single request.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Result {
	action := Normalize(req.Action)
	d.logger.Debug("dispatch", "action", action, "raw", req.Action, "title", req.Title)

	switch action {
	case ActionAdd:
		if err := d.service.AddNote(ctx, req.Title, req.Content); err != nil {
			return d.failure(err)
		}
		return Result{OK: true, Message: MsgAdded}

	case ActionView:
		n, err := d.service.ViewNote(ctx, req.Title)
		if err != nil {
			return d.failure(err)
		}
		return Result{OK: true, Message: fmt.Sprintf("Title: %s\nContent: %s", n.Title, n.Content)}

	case ActionDelete:
		if err := d.service.DeleteNote(ctx, req.Title); err != nil {
			return d.failure(err)
		}
		return Result{OK: true, Message: MsgDeleted}

	case ActionList:
		titles, err := d.service.ListNotes(ctx)
		if err != nil {
			return d.failure(err)
		}
		if len(titles) == 0 {
			return Result{OK: true, Message: MsgEmpty}
		}
		var b strings.Builder
		b.WriteString(MsgListHeader)
		for _, t := range titles {
			b.WriteString("\n- ")
			b.WriteString(t)
		}
		return Result{OK: true, Message: b.String()}

	case ActionExit:
		return Result{OK: true, Message: MsgExiting, Exit: true}

	default:
		return Result{OK: false, Message: MsgInvalidChoice}
	}
}

// HasNotes reports whether the service holds any note. A failing lookup
// counts as true so the request that follows surfaces the error.
func (d *Dispatcher) HasNotes(ctx context.Context) bool {
	titles, err := d.service.ListNotes(ctx)
	return err != nil || len(titles) > 0
}

// failure renders an error as a user-visible result.
func (d *Dispatcher) failure(err error) Result {
	d.logger.Debug("request failed", "error", err)
	return Result{OK: false, Message: Render(err)}
}

// Render turns a store or service error into the message shown to the user.
func Render(err error) string {
	switch {
	case errors.Is(err, core.ErrEmptyStore):
		return MsgEmpty
	case errors.Is(err, core.ErrNotFound):
		return MsgNotFound
	case errors.Is(err, core.ErrInvalidArgument):
		return "Invalid input: " + detail(err, core.ErrInvalidArgument)
	case errors.Is(err, core.ErrCorruptDocument):
		return "Notes file is corrupt: " + detail(err, core.ErrCorruptDocument)
	case errors.Is(err, core.ErrStorageUnavailable):
		return "Storage unavailable: " + detail(err, core.ErrStorageUnavailable)
	case errors.Is(err, core.ErrReadOnly):
		return MsgReadOnly
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Cancelled: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}

// detail drops the leading sentinel text so it is not repeated after the label.
func detail(err, kind error) string {
	return strings.TrimPrefix(err.Error(), kind.Error()+": ")
}

// RunLoop dispatches requests from next until it reports no more input, an
// exit request is processed, or ctx is cancelled. Every result is passed to
// emit, including the final exit result.
func (d *Dispatcher) RunLoop(ctx context.Context, next func() (Request, bool), emit func(Result)) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		req, ok := next()
		if !ok {
			return nil
		}
		res := d.Dispatch(ctx, req)
		emit(res)
		if res.Exit {
			return nil
		}
	}
}
