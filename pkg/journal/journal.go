// Package journal stores journal entries and the profile name in a blob
// store.
//
// The entry collection lives under a single key as one JSON array. Every
// mutation reads the whole collection, changes it in memory and writes it
// back. There is no locking or version check: with two concurrent writers
// the last write wins and the other change is lost, so a Store assumes a
// single active writer.
package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gookit/validate"
	"go.uber.org/zap"

	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/store"
)

const (
	// ProfileKey holds the user's name.
	ProfileKey = "userName"
	// EntriesKey holds the JSON-encoded entry collection.
	EntriesKey = "journalEntries"
)

var (
	ErrValidation   = errors.New("journal: invalid input")
	ErrStorage      = errors.New("journal: storage failure")
	ErrStorageRead  = fmt.Errorf("%w: read", ErrStorage)
	ErrStorageWrite = fmt.Errorf("%w: write", ErrStorage)
	ErrNotFound     = errors.New("journal: entry not found")
)

// Store is the entry and profile store.
type Store struct {
	blob   store.Blob
	log    *zap.Logger
	now    func() time.Time
	ids    *entry.IDSource
	layout string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for lenient read failures. nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces the wall clock used for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTimestampLayout sets the time layout used for entry timestamps. An
// empty layout keeps entry.DefaultLayout.
func WithTimestampLayout(layout string) Option {
	return func(s *Store) {
		if layout != "" {
			s.layout = layout
		}
	}
}

// New returns a Store that keeps the profile and entries in blob.
func New(blob store.Blob, opts ...Option) *Store {
	s := &Store{
		blob:   blob,
		log:    zap.NewNop(),
		now:    time.Now,
		ids:    entry.NewIDSource(),
		layout: entry.DefaultLayout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type profile struct {
	Name string `validate:"required"`
}

type draft struct {
	Title string `validate:"required"`
	Text  string `validate:"required"`
}

func check(v interface{}) error {
	vd := validate.Struct(v)
	if !vd.Validate() {
		return fmt.Errorf("%w: %s", ErrValidation, vd.Errors.One())
	}
	return nil
}

// LoadProfileName returns the saved name. ok is false when no name has been
// saved.
func (s *Store) LoadProfileName(ctx context.Context) (name string, ok bool, err error) {
	name, ok, err = s.blob.Get(ctx, ProfileKey)
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrStorageRead, err)
	}
	if !ok || name == "" {
		return "", false, nil
	}
	return name, true, nil
}

// SaveProfileName overwrites the saved name with the trimmed name.
func (s *Store) SaveProfileName(ctx context.Context, name string) error {
	p := &profile{Name: strings.TrimSpace(name)}
	if err := check(p); err != nil {
		return err
	}
	if err := s.blob.Set(ctx, ProfileKey, p.Name); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	return nil
}

// ListEntries returns the stored entries in insertion order. A missing,
// unreadable or undecodable collection is reported as empty; the failure is
// logged rather than returned.
func (s *Store) ListEntries(ctx context.Context) []*entry.Entry {
	raw, ok, err := s.blob.Get(ctx, EntriesKey)
	if err != nil {
		s.log.Warn("reading entries failed, showing none", zap.Error(err))
		return []*entry.Entry{}
	}
	if !ok {
		return []*entry.Entry{}
	}
	list, err := entry.UnmarshalList([]byte(raw))
	if err != nil {
		s.log.Warn("decoding entries failed, showing none",
			zap.Error(err), zap.Int("bytes", len(raw)))
		return []*entry.Entry{}
	}
	return list
}

// Entry returns the entry with the given id.
func (s *Store) Entry(ctx context.Context, id string) (*entry.Entry, error) {
	index := make(map[string]*entry.Entry)
	for _, e := range s.ListEntries(ctx) {
		index[e.ID] = e
	}
	e, ok := index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, nil
}

// AddEntry creates an entry from the trimmed title and text, appends it to
// the collection and persists the collection. Invalid input never touches
// storage. When the write fails the entry is not kept.
func (s *Store) AddEntry(ctx context.Context, title, text string) (*entry.Entry, error) {
	d := &draft{Title: strings.TrimSpace(title), Text: strings.TrimSpace(text)}
	if err := check(d); err != nil {
		return nil, err
	}

	now := s.now()
	e := entry.New(s.ids.New(now), d.Title, d.Text, entry.FormatTimestamp(now, s.layout))

	list := append(s.ListEntries(ctx), e)
	if err := s.write(ctx, list); err != nil {
		return nil, err
	}
	s.log.Debug("entry added", zap.String("id", e.ID), zap.Int("entries", len(list)))
	return e, nil
}

// DeleteEntry removes the entry with the given id. An unknown id is not an
// error and leaves storage untouched.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	list := s.ListEntries(ctx)
	kept := make([]*entry.Entry, 0, len(list))
	for _, e := range list {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(list) {
		s.log.Debug("delete of unknown entry ignored", zap.String("id", id))
		return nil
	}
	if err := s.write(ctx, kept); err != nil {
		return err
	}
	s.log.Debug("entry deleted", zap.String("id", id), zap.Int("entries", len(kept)))
	return nil
}

// ClearAll wipes the whole blob store, the profile name included.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.blob.Clear(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	s.log.Info("journal cleared")
	return nil
}

func (s *Store) write(ctx context.Context, list []*entry.Entry) error {
	data, err := entry.MarshalList(list)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrStorageWrite, err)
	}
	if err := s.blob.Set(ctx, EntriesKey, string(data)); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	return nil
}
