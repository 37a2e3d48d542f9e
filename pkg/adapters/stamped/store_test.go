package stamped_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/pkg/adapters/stamped"
	"github.com/aretw0/jotter/pkg/core"
)

// fixedClock returns a clock frozen at t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func setupStore(t *testing.T, opts ...func(*stamped.Config)) (*stamped.Store, string) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "notes")
	cfg := stamped.Config{
		Dir: dir,
		Now: fixedClock(time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	store := stamped.NewStore(cfg)
	require.NoError(t, store.Initialize(context.Background()))
	return store, dir
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestScenario(t *testing.T) {
	ctx := context.Background()
	store, _ := setupStore(t)

	require.NoError(t, store.Add(ctx, core.Note{Title: "groceries", Content: "milk, eggs"}))
	require.NoError(t, store.Add(ctx, core.Note{Title: "todo", Content: "call bob\nwrite report"}))

	n, err := store.View(ctx, "todo")
	require.NoError(t, err)
	assert.Equal(t, "call bob\nwrite report", n.Content)

	titles, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"groceries", "todo"}, titles)

	require.NoError(t, store.Delete(ctx, "groceries"))
	_, err = store.View(ctx, "groceries")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NotErrorIs(t, err, core.ErrEmptyStore)

	require.NoError(t, store.Delete(ctx, "todo"))
	titles, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, titles)
}

func TestFileNaming(t *testing.T) {
	ctx := context.Background()
	store, dir := setupStore(t)

	require.NoError(t, store.Add(ctx, core.Note{Title: "a", Content: "1"}))
	require.NoError(t, store.Add(ctx, core.Note{Title: "b", Content: "2"}))

	assert.Equal(t, []string{
		"note_2024-03-05_10-20-30.txt",
		"note_2024-03-05_10-20-30_2.txt",
	}, dirNames(t, dir))

	data, err := os.ReadFile(filepath.Join(dir, "note_2024-03-05_10-20-30.txt"))
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: a\n---\n1", string(data))
}

func TestCollisionSuffixOrder(t *testing.T) {
	ctx := context.Background()
	store, _ := setupStore(t)

	var want []string
	for i := 0; i < 11; i++ {
		title := string(rune('a' + i))
		want = append(want, title)
		require.NoError(t, store.Add(ctx, core.Note{Title: title}))
	}

	titles, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, titles)
}

func TestOverwriteKeepsFile(t *testing.T) {
	ctx := context.Background()
	store, dir := setupStore(t)

	require.NoError(t, store.Add(ctx, core.Note{Title: "a", Content: "old"}))
	require.NoError(t, store.Add(ctx, core.Note{Title: "b", Content: "other"}))
	require.NoError(t, store.Add(ctx, core.Note{Title: "a", Content: "new"}))

	assert.Len(t, dirNames(t, dir), 2)

	n, err := store.View(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "new", n.Content)

	titles, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, titles)
}

func TestEmptyStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing Directory", func(t *testing.T) {
		store := stamped.NewStore(stamped.Config{Dir: filepath.Join(t.TempDir(), "none")})
		titles, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, titles)
	})

	t.Run("View and Delete", func(t *testing.T) {
		store, _ := setupStore(t)

		_, err := store.View(ctx, "x")
		assert.ErrorIs(t, err, core.ErrEmptyStore)
		assert.ErrorIs(t, err, core.ErrNotFound)

		err = store.Delete(ctx, "x")
		assert.ErrorIs(t, err, core.ErrEmptyStore)
	})
}

func TestLegacyFiles(t *testing.T) {
	ctx := context.Background()
	store, dir := setupStore(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "note_2023-01-01_08-00-00.txt"), []byte("plain text"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.md"), []byte("ignored"), 0644))

	titles, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"note_2023-01-01_08-00-00"}, titles)

	n, err := store.View(ctx, "note_2023-01-01_08-00-00")
	require.NoError(t, err)
	assert.Equal(t, "plain text", n.Content)
}

func TestCorruptFrontmatter(t *testing.T) {
	ctx := context.Background()
	store, dir := setupStore(t)

	bad := filepath.Join(dir, "note_2023-01-01_08-00-00.txt")
	require.NoError(t, os.WriteFile(bad, []byte("---\ntitle: [\n---\nbody"), 0644))

	_, err := store.List(ctx)
	assert.ErrorIs(t, err, core.ErrCorruptDocument)

	err = store.Add(ctx, core.Note{Title: "a", Content: "b"})
	assert.ErrorIs(t, err, core.ErrCorruptDocument)
	assert.Len(t, dirNames(t, dir), 1)
}

func TestReadOnly(t *testing.T) {
	ctx := context.Background()
	writable, dir := setupStore(t)
	require.NoError(t, writable.Add(ctx, core.Note{Title: "a", Content: "b"}))

	store := stamped.NewStore(stamped.Config{Dir: dir, ReadOnly: true})
	require.NoError(t, store.Initialize(ctx))

	assert.ErrorIs(t, store.Add(ctx, core.Note{Title: "c"}), core.ErrReadOnly)
	assert.ErrorIs(t, store.Delete(ctx, "a"), core.ErrReadOnly)

	n, err := store.View(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "b", n.Content)
}

func TestInitializeReadOnlyMissing(t *testing.T) {
	store := stamped.NewStore(stamped.Config{Dir: filepath.Join(t.TempDir(), "none"), ReadOnly: true})
	assert.ErrorIs(t, store.Initialize(context.Background()), core.ErrStorageUnavailable)
}

func TestEmptyTitle(t *testing.T) {
	store, _ := setupStore(t)
	err := store.Add(context.Background(), core.Note{Title: ""})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestInvalidUTF8(t *testing.T) {
	ctx := context.Background()
	store, dir := setupStore(t)

	assert.ErrorIs(t, store.Add(ctx, core.Note{Title: "a", Content: "\xff"}), core.ErrInvalidArgument)
	assert.ErrorIs(t, store.Add(ctx, core.Note{Title: "\xfe", Content: "b"}), core.ErrInvalidArgument)
	assert.Empty(t, dirNames(t, dir))
}

func TestUnusualTitles(t *testing.T) {
	ctx := context.Background()
	store, _ := setupStore(t)

	titles := []string{" ", "\n", "\nleading", "a\r\nb", "trailing\n"}
	for _, title := range titles {
		require.NoError(t, store.Add(ctx, core.Note{Title: title, Content: "body"}))
	}

	got, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, titles, got)

	for _, title := range titles {
		n, err := store.View(ctx, title)
		require.NoError(t, err, "title %q", title)
		assert.Equal(t, core.Note{Title: title, Content: "body"}, n)
	}
	require.NoError(t, store.Delete(ctx, " "))
	_, err = store.View(ctx, " ")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestState(t *testing.T) {
	store, dir := setupStore(t)
	state, ok := store.State().(stamped.StoreState)
	require.True(t, ok)
	assert.Equal(t, dir, state.Dir)
	assert.Equal(t, "stamped-store", store.ComponentType())
}
