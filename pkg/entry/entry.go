// Package entry defines the journal entry record and its stored form.
package entry

import (
	"fmt"
	"strings"
)

// Entry is a single journal entry. Every field is assigned at creation and
// never changes afterwards.
type Entry struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Text      string `json:"text" yaml:"text"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

func New(id, title, text, timestamp string) *Entry {
	return &Entry{
		ID:        id,
		Title:     title,
		Text:      text,
		Timestamp: timestamp,
	}
}

// Clone returns a copy of e that shares no state with it.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	cp := *e
	return &cp
}

// Row returns the columns used when entries are shown as a table.
func (e *Entry) Row() (string, string, string) {
	return e.Timestamp, e.Title, e.Summary(48)
}

// Summary is the first line of the text, shortened to at most width runes.
func (e *Entry) Summary(width int) string {
	line := strings.TrimSpace(e.Text)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i]) + " …"
	}
	runes := []rune(line)
	if width > 1 && len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return line
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s  %s", e.Timestamp, e.Title)
}
