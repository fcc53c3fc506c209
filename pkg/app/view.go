package app

import (
	"context"
	"errors"
	"sync"

	"tableflip.dev/journal/pkg/analysis"
	"tableflip.dev/journal/pkg/entry"
)

// ErrNoEntry is returned by EntryView.Analyze when no entry is open.
var ErrNoEntry = errors.New("app: no entry open")

// Deliver receives the outcome of an analysis. It runs with the view locked
// and must not call back into the view.
type Deliver func(*analysis.Result, error)

// EntryView is the detail view of one entry. Analyses run in the background
// and are never cancelled; once the view is dismissed or switched to another
// entry, results of earlier requests are dropped instead of delivered.
type EntryView struct {
	analyzer Analyzer

	mu      sync.Mutex
	entry   *entry.Entry
	gen     uint64
	pending int
	wg      sync.WaitGroup
}

func NewEntryView(a Analyzer) *EntryView {
	return &EntryView{analyzer: a}
}

// Open shows e, abandoning any analysis requested for the previous entry.
func (v *EntryView) Open(e *entry.Entry) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	v.pending = 0
	v.entry = e.Clone()
}

// Dismiss closes the view. Responses still in flight are discarded.
func (v *EntryView) Dismiss() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	v.pending = 0
	v.entry = nil
}

// Entry is the entry on display, or nil.
func (v *EntryView) Entry() *entry.Entry {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.entry.Clone()
}

// Loading reports whether an analysis for the displayed entry is in flight.
func (v *EntryView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pending > 0
}

// Analyze requests op for the displayed entry and returns immediately.
// deliver is called once with the outcome, unless the view was dismissed or
// reopened before the response arrived.
func (v *EntryView) Analyze(ctx context.Context, op analysis.Operation, deliver Deliver) error {
	if v.analyzer == nil {
		return ErrNoAnalyzer
	}
	v.mu.Lock()
	if v.entry == nil {
		v.mu.Unlock()
		return ErrNoEntry
	}
	gen, text := v.gen, v.entry.Text
	v.pending++
	v.wg.Add(1)
	v.mu.Unlock()

	go func() {
		defer v.wg.Done()
		res, err := v.analyzer.Analyze(ctx, text, op)

		v.mu.Lock()
		defer v.mu.Unlock()
		if gen != v.gen {
			return
		}
		v.pending--
		if deliver != nil {
			deliver(res, err)
		}
	}()
	return nil
}

// Wait blocks until every request issued through the view has finished,
// delivered or not.
func (v *EntryView) Wait() {
	v.wg.Wait()
}
