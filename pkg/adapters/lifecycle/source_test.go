package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/pkg/adapters/lifecycle"
	"github.com/aretw0/jotter/pkg/core"
)

func collect(t *testing.T, events []core.Event, types ...core.EventType) []string {
	t.Helper()
	in := make(chan core.Event, len(events))
	for _, e := range events {
		in <- e
	}
	close(in)

	src := lifecycle.NewSource(in, types...)
	require.NoError(t, src.Start(context.Background()))

	var got []string
	for e := range src.Events() {
		got = append(got, e.String())
	}
	return got
}

func TestSource_Forwards(t *testing.T) {
	got := collect(t, []core.Event{
		{Type: core.EventCreate, Title: "a"},
		{Type: core.EventDelete, Title: "b"},
	})
	assert.Equal(t, []string{`CREATE "a"`, `DELETE "b"`}, got)
}

func TestSource_QuotesTitles(t *testing.T) {
	got := collect(t, []core.Event{
		{Type: core.EventModify, Title: " "},
		{Type: core.EventCreate, Title: "two\nlines"},
	})
	assert.Equal(t, []string{`MODIFY " "`, `CREATE "two\nlines"`}, got)
}

func TestSource_FiltersTypes(t *testing.T) {
	events := []core.Event{
		{Type: core.EventCreate, Title: "a"},
		{Type: core.EventModify, Title: "a"},
		{Type: core.EventDelete, Title: "a"},
		{Type: core.EventCreate, Title: "b"},
	}

	got := collect(t, events, core.EventCreate, core.EventDelete)
	assert.Equal(t, []string{`CREATE "a"`, `DELETE "a"`, `CREATE "b"`}, got)
}

func TestSource_EmitsChanges(t *testing.T) {
	in := make(chan core.Event, 1)
	in <- core.Event{Type: core.EventCreate, Title: "a", Timestamp: 1700000000}
	close(in)

	src := lifecycle.NewSource(in)
	require.NoError(t, src.Start(context.Background()))

	e, ok := <-src.Events()
	require.True(t, ok)
	c, ok := e.(lifecycle.Change)
	require.True(t, ok, "unexpected event type %T", e)
	assert.Equal(t, "a", c.Title)
	assert.True(t, c.At().Equal(time.Unix(1700000000, 0)))
}

func TestParseEventTypes(t *testing.T) {
	types, err := lifecycle.ParseEventTypes([]string{"create", " Delete "})
	require.NoError(t, err)
	assert.Equal(t, []core.EventType{core.EventCreate, core.EventDelete}, types)

	_, err = lifecycle.ParseEventTypes([]string{"rename"})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestSource_StopsOnCancel(t *testing.T) {
	in := make(chan core.Event)
	ctx, cancel := context.WithCancel(context.Background())

	src := lifecycle.NewSource(in)
	require.NoError(t, src.Start(ctx))
	cancel()

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("source did not close after cancel")
	}
}
