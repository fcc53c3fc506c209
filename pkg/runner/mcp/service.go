// Package mcp serves the journal over the Model Context Protocol.
package mcp

import (
	"context"
	"errors"
	"strings"
	"time"

	"tableflip.dev/journal/pkg/analysis"
	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/journal"
)

// Service adapts the journal operations to what the MCP tools return.
type Service struct {
	App *app.Service
	Now func() time.Time
}

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	Timestamp   string `json:"timestamp"`
	Summary     string `json:"summary"`
	CreatedISO  string `json:"created,omitempty"`
	CreatedUnix int64  `json:"createdUnix,omitempty"`
}

// ProfileDTO carries the profile name and whether one is set.
type ProfileDTO struct {
	Name     string `json:"name,omitempty"`
	Set      bool   `json:"set"`
	Greeting string `json:"greeting"`
}

const summaryWidth = 80

func NewService(svc *app.Service) *Service {
	return &Service{App: svc, Now: time.Now}
}

func (s *Service) ready() error {
	if s.App == nil || s.App.Journal == nil {
		return errors.New("journal is not configured")
	}
	return nil
}

// ListEntries returns entries oldest first. A positive since keeps only
// entries created within that window.
func (s *Service) ListEntries(ctx context.Context, since time.Duration) ([]EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	all, err := s.App.Entries(ctx)
	if err != nil {
		return nil, err
	}
	if since <= 0 {
		return toDTOs(all), nil
	}

	cutoff := s.now().Add(-since)
	kept := make([]*entry.Entry, 0, len(all))
	for _, e := range all {
		if created, ok := e.Created(); ok && !created.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	return toDTOs(kept), nil
}

// SearchEntries performs a case-insensitive substring match across titles
// and text, newest first.
func (s *Service) SearchEntries(ctx context.Context, query string, limit int) ([]EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := strings.TrimSpace(strings.ToLower(query))
	if q == "" {
		return []EntryDTO{}, nil
	}
	if limit <= 0 {
		limit = 20
	}

	all, err := s.App.Entries(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]EntryDTO, 0, limit)
	for i := len(all) - 1; i >= 0 && len(results) < limit; i-- {
		e := all[i]
		if strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(e.Text), q) {
			results = append(results, toDTO(e))
		}
	}
	return results, nil
}

// EntryByID locates an entry by id.
func (s *Service) EntryByID(ctx context.Context, id string) (*EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("id is required")
	}
	e, err := s.App.Entry(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

func (s *Service) AddEntry(ctx context.Context, title, text string) (*EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	e, err := s.App.Add(ctx, title, text)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// DeleteEntry removes an entry and reports whether it existed.
func (s *Service) DeleteEntry(ctx context.Context, id string) (bool, error) {
	if _, err := s.EntryByID(ctx, id); errors.Is(err, journal.ErrNotFound) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	if err := s.App.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) Analyze(ctx context.Context, id string, op analysis.Operation) (*analysis.Result, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.App.Analyze(ctx, id, op)
}

func (s *Service) Profile(ctx context.Context) (*ProfileDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	session := s.App.NewSession()
	session.Start(ctx)
	return profileDTO(session), nil
}

func (s *Service) SetProfile(ctx context.Context, name string) (*ProfileDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	session := s.App.NewSession()
	session.Start(ctx)
	if err := session.Onboard(ctx, name); err != nil {
		return nil, err
	}
	return profileDTO(session), nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func profileDTO(s *app.Session) *ProfileDTO {
	return &ProfileDTO{
		Name:     s.Name(),
		Set:      s.Stage() == app.StageReady,
		Greeting: s.Greeting(),
	}
}

func toDTOs(entries []*entry.Entry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toDTO(e))
	}
	return out
}

func toDTO(e *entry.Entry) EntryDTO {
	dto := EntryDTO{
		ID:        e.ID,
		Title:     e.Title,
		Text:      e.Text,
		Timestamp: e.Timestamp,
		Summary:   e.Summary(summaryWidth),
	}
	if created, ok := e.Created(); ok {
		dto.CreatedISO = created.UTC().Format(time.RFC3339)
		dto.CreatedUnix = created.Unix()
	}
	return dto
}
