// Package app composes the journal store and the analysis client into the
// operations the screens (and the CLI) share.
package app

import (
	"context"
	"errors"

	"tableflip.dev/journal/pkg/analysis"
	"tableflip.dev/journal/pkg/entry"
)

// Journal is the entry and profile store.
type Journal interface {
	LoadProfileName(ctx context.Context) (string, bool, error)
	SaveProfileName(ctx context.Context, name string) error
	ListEntries(ctx context.Context) []*entry.Entry
	Entry(ctx context.Context, id string) (*entry.Entry, error)
	AddEntry(ctx context.Context, title, text string) (*entry.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
	ClearAll(ctx context.Context) error
}

// Analyzer produces generated text about an entry.
type Analyzer interface {
	Analyze(ctx context.Context, text string, op analysis.Operation) (*analysis.Result, error)
}

var (
	ErrNoJournal  = errors.New("app: no journal configured")
	ErrNoAnalyzer = errors.New("app: no analyzer configured")
)

// Service provides the journal operations. The store and the analyzer never
// call each other; Service is where an entry read from one is handed to the
// other.
type Service struct {
	Journal  Journal
	Analyzer Analyzer
}

// Entries lists the entries in display order.
func (s *Service) Entries(ctx context.Context) ([]*entry.Entry, error) {
	if s.Journal == nil {
		return nil, ErrNoJournal
	}
	return s.Journal.ListEntries(ctx), nil
}

// Entry returns one entry by id.
func (s *Service) Entry(ctx context.Context, id string) (*entry.Entry, error) {
	if s.Journal == nil {
		return nil, ErrNoJournal
	}
	return s.Journal.Entry(ctx, id)
}

// Add creates and stores a new entry.
func (s *Service) Add(ctx context.Context, title, text string) (*entry.Entry, error) {
	if s.Journal == nil {
		return nil, ErrNoJournal
	}
	return s.Journal.AddEntry(ctx, title, text)
}

// Delete removes an entry permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.Journal == nil {
		return ErrNoJournal
	}
	return s.Journal.DeleteEntry(ctx, id)
}

// Clear wipes every entry and the profile.
func (s *Service) Clear(ctx context.Context) error {
	if s.Journal == nil {
		return ErrNoJournal
	}
	return s.Journal.ClearAll(ctx)
}

// Analyze looks up the entry and runs op over its text.
func (s *Service) Analyze(ctx context.Context, id string, op analysis.Operation) (*analysis.Result, error) {
	if s.Analyzer == nil {
		return nil, ErrNoAnalyzer
	}
	e, err := s.Entry(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Analyzer.Analyze(ctx, e.Text, op)
}

// NewSession starts a session over the service's journal.
func (s *Service) NewSession() *Session {
	return NewSession(s.Journal)
}

// NewEntryView returns a detail view that analyzes with the service's
// analyzer.
func (s *Service) NewEntryView() *EntryView {
	return NewEntryView(s.Analyzer)
}
