package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/store"
)

// faultyBlob wraps a Memory blob and fails the operations it is told to.
type faultyBlob struct {
	*store.Memory

	mu       sync.Mutex
	failGet  error
	failSet  error
	failWipe error
	sets     int
}

func newFaultyBlob() *faultyBlob {
	return &faultyBlob{Memory: store.NewMemory()}
}

func (f *faultyBlob) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	err := f.failGet
	f.mu.Unlock()
	if err != nil {
		return "", false, err
	}
	return f.Memory.Get(ctx, key)
}

func (f *faultyBlob) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	f.sets++
	err := f.failSet
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Memory.Set(ctx, key, value)
}

func (f *faultyBlob) Clear(ctx context.Context) error {
	if f.failWipe != nil {
		return f.failWipe
	}
	return f.Memory.Clear(ctx)
}

func fixedClock() func() time.Time {
	at := time.Date(2025, time.March, 14, 21, 26, 53, 0, time.Local)
	return func() time.Time { return at }
}

func TestAddThenListPreservesOrder(t *testing.T) {
	ctx := context.Background()
	s := New(store.NewMemory(), WithClock(fixedClock()))

	inputs := [][2]string{
		{"Day at the Beach", "Sand and waves."},
		{"Goals for the Month", "Read two books."},
		{"Thoughts on Happiness", "It is small things."},
	}
	var added []*entry.Entry
	for _, in := range inputs {
		e, err := s.AddEntry(ctx, in[0], in[1])
		require.NoError(t, err)
		added = append(added, e)
	}

	got := s.ListEntries(ctx)
	if diff := cmp.Diff(added, got); diff != "" {
		t.Fatalf("listed entries differ (-added +listed):\n%s", diff)
	}

	ids := make(map[string]struct{})
	for i, e := range got {
		assert.Equal(t, inputs[i][0], e.Title)
		assert.Equal(t, inputs[i][1], e.Text)
		assert.Equal(t, "3/14/2025, 9:26:53 PM", e.Timestamp)
		ids[e.ID] = struct{}{}
	}
	assert.Len(t, ids, len(inputs), "ids must be unique even within one clock tick")
}

func TestAddEntryTrims(t *testing.T) {
	s := New(store.NewMemory())
	e, err := s.AddEntry(context.Background(), "  Title  ", "\n body \t")
	require.NoError(t, err)
	assert.Equal(t, "Title", e.Title)
	assert.Equal(t, "body", e.Text)
	assert.NotEmpty(t, e.ID)
	assert.NotEmpty(t, e.Timestamp)
}

func TestAddEntryValidation(t *testing.T) {
	ctx := context.Background()
	blob := newFaultyBlob()
	s := New(blob)
	_, err := s.AddEntry(ctx, "keep", "me")
	require.NoError(t, err)
	before := blob.sets

	for _, tc := range [][2]string{{"", "x"}, {"x", ""}, {"   ", "x"}, {"x", "\n\t"}} {
		_, err := s.AddEntry(ctx, tc[0], tc[1])
		assert.ErrorIs(t, err, ErrValidation, "title=%q text=%q", tc[0], tc[1])
	}
	assert.Equal(t, before, blob.sets, "validation failures must not write")
	assert.Len(t, s.ListEntries(ctx), 1)
}

func TestAddEntryWriteFailure(t *testing.T) {
	ctx := context.Background()
	blob := newFaultyBlob()
	s := New(blob)
	blob.failSet = errors.New("disk full")

	_, err := s.AddEntry(ctx, "title", "text")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageWrite)
	assert.ErrorIs(t, err, ErrStorage)
	assert.Contains(t, err.Error(), "disk full")

	blob.failSet = nil
	assert.Empty(t, s.ListEntries(ctx), "failed entry must not be kept")
}

func TestDeleteEntry(t *testing.T) {
	ctx := context.Background()
	s := New(store.NewMemory())

	var added []*entry.Entry
	for i := 0; i < 4; i++ {
		e, err := s.AddEntry(ctx, fmt.Sprintf("title %d", i), fmt.Sprintf("text %d", i))
		require.NoError(t, err)
		added = append(added, e)
	}

	require.NoError(t, s.DeleteEntry(ctx, added[1].ID))

	want := []*entry.Entry{added[0], added[2], added[3]}
	if diff := cmp.Diff(want, s.ListEntries(ctx)); diff != "" {
		t.Fatalf("after delete (-want +got):\n%s", diff)
	}
}

func TestDeleteUnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	blob := newFaultyBlob()
	s := New(blob)
	e, err := s.AddEntry(ctx, "title", "text")
	require.NoError(t, err)
	sets := blob.sets

	require.NoError(t, s.DeleteEntry(ctx, "does-not-exist"))
	assert.Equal(t, sets, blob.sets)
	if diff := cmp.Diff([]*entry.Entry{e}, s.ListEntries(ctx)); diff != "" {
		t.Fatalf("collection changed (-want +got):\n%s", diff)
	}

	// Nothing to delete from an empty store either.
	empty := New(store.NewMemory())
	assert.NoError(t, empty.DeleteEntry(ctx, "anything"))
}

func TestDeleteWriteFailure(t *testing.T) {
	ctx := context.Background()
	blob := newFaultyBlob()
	s := New(blob)
	e, err := s.AddEntry(ctx, "title", "text")
	require.NoError(t, err)

	blob.failSet = errors.New("read-only filesystem")
	assert.ErrorIs(t, s.DeleteEntry(ctx, e.ID), ErrStorageWrite)
}

func TestEntryLookup(t *testing.T) {
	ctx := context.Background()
	s := New(store.NewMemory())
	e, err := s.AddEntry(ctx, "title", "text")
	require.NoError(t, err)

	got, err := s.Entry(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e, got)

	_, err = s.Entry(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListEntriesIsLenient(t *testing.T) {
	ctx := context.Background()

	t.Run("absent", func(t *testing.T) {
		s := New(store.NewMemory())
		got := s.ListEntries(ctx)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("corrupt", func(t *testing.T) {
		blob := store.NewMemory()
		require.NoError(t, blob.Set(ctx, EntriesKey, "{not json"))
		s := New(blob)
		assert.Empty(t, s.ListEntries(ctx))

		// The next add replaces the unreadable collection.
		_, err := s.AddEntry(ctx, "fresh", "start")
		require.NoError(t, err)
		assert.Len(t, s.ListEntries(ctx), 1)
	})

	t.Run("read error", func(t *testing.T) {
		blob := newFaultyBlob()
		blob.failGet = errors.New("io error")
		s := New(blob)
		assert.Empty(t, s.ListEntries(ctx))
	})
}

func TestProfileName(t *testing.T) {
	ctx := context.Background()
	s := New(store.NewMemory())

	_, ok, err := s.LoadProfileName(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SaveProfileName(ctx, "Alex"))
	name, ok, err := s.LoadProfileName(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Alex", name)

	require.NoError(t, s.SaveProfileName(ctx, "  Sam "))
	name, _, err = s.LoadProfileName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sam", name)

	assert.ErrorIs(t, s.SaveProfileName(ctx, "   "), ErrValidation)
}

func TestProfileNameStorageErrors(t *testing.T) {
	ctx := context.Background()
	blob := newFaultyBlob()
	s := New(blob)

	blob.failGet = errors.New("locked")
	_, ok, err := s.LoadProfileName(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrStorageRead)
	assert.ErrorIs(t, err, ErrStorage)

	blob.failSet = errors.New("locked")
	assert.ErrorIs(t, s.SaveProfileName(ctx, "Alex"), ErrStorageWrite)
}

func TestEmptyStoredNameIsAbsent(t *testing.T) {
	ctx := context.Background()
	blob := store.NewMemory()
	require.NoError(t, blob.Set(ctx, ProfileKey, ""))

	_, ok, err := New(blob).LoadProfileName(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	s := New(store.NewMemory())
	require.NoError(t, s.SaveProfileName(ctx, "Alex"))
	_, err := s.AddEntry(ctx, "title", "text")
	require.NoError(t, err)

	require.NoError(t, s.ClearAll(ctx))

	assert.Empty(t, s.ListEntries(ctx))
	_, ok, err := s.LoadProfileName(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClearAllFailure(t *testing.T) {
	blob := newFaultyBlob()
	blob.failWipe = errors.New("permission denied")
	err := New(blob).ClearAll(context.Background())
	assert.ErrorIs(t, err, ErrStorage)
}

func TestConcurrentWritersLastWriteWins(t *testing.T) {
	// Documents the single-writer contract: two stores sharing a blob each
	// read a snapshot and the later write replaces the earlier one.
	ctx := context.Background()
	blob := store.NewMemory()
	a := New(blob)
	b := New(blob)

	snapshot := a.ListEntries(ctx)
	_, err := b.AddEntry(ctx, "from b", "text")
	require.NoError(t, err)

	e := entry.New("manual", "from a", "text", "now")
	require.NoError(t, a.write(ctx, append(snapshot, e)))

	got := a.ListEntries(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "from a", got[0].Title)
}

func TestWorksOverDiskv(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first := New(store.NewDiskv(dir))
	e, err := first.AddEntry(ctx, "persisted", "on disk")
	require.NoError(t, err)

	second := New(store.NewDiskv(dir))
	got := second.ListEntries(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, e.ID, got[0].ID)
}

func TestSequentialWritersOverDiskv(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	server, cli := New(store.NewDiskv(dir)), New(store.NewDiskv(dir))

	_, err := server.AddEntry(ctx, "first", "from the server")
	require.NoError(t, err)
	require.Len(t, server.ListEntries(ctx), 1)
	_, err = cli.AddEntry(ctx, "second", "from the cli")
	require.NoError(t, err)
	_, err = server.AddEntry(ctx, "third", "from the server")
	require.NoError(t, err)

	var titles []string
	for _, e := range cli.ListEntries(ctx) {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{"first", "second", "third"}, titles)
}
