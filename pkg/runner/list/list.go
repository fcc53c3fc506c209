package list

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/journal"
	"tableflip.dev/journal/pkg/printers"
	"tableflip.dev/journal/pkg/store"
)

// Watcher reports changed keys. store.Diskv is one.
type Watcher interface {
	Watch(ctx context.Context) (<-chan store.Event, error)
}

type List struct {
	Service *app.Service

	ShowID bool
	Format string
	// Since keeps entries created within the window. Entries whose id
	// carries no creation time are left out. Zero keeps everything.
	Since time.Duration
	Now   func() time.Time
	// Watch reprints the journal whenever the entry collection changes on
	// disk, until ctx is done.
	Watch   bool
	Watcher Watcher

	Log *zap.Logger
	Out io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list, no journal")
	}

	if err := n.print(ctx); err != nil {
		return err
	}
	if !n.Watch {
		return nil
	}
	if n.Watcher == nil {
		return errors.New("can not watch, the backend does not support it")
	}

	events, err := n.Watcher.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Key != journal.EntriesKey {
				continue
			}
			n.logger().Debug("entries changed", zap.String("key", ev.Key))
			if err := n.print(ctx); err != nil {
				return err
			}
		}
	}
}

func (n *List) print(ctx context.Context) error {
	all, err := n.Service.Entries(ctx)
	if err != nil {
		return err
	}
	all = n.filtered(all)

	if !printers.IsPretty(n.Format) {
		return printers.Encode(printers.Writer(n.Out), n.Format, all)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	pp.TitleWithCount("Journal", len(all))
	pp.Collection(all...)
	return nil
}

func (n *List) filtered(all []*entry.Entry) []*entry.Entry {
	if n.Since <= 0 {
		return all
	}
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	cutoff := now().Add(-n.Since)

	c := make([]*entry.Entry, 0, len(all))
	for _, e := range all {
		if created, ok := e.Created(); ok && !created.Before(cutoff) {
			c = append(c, e)
		}
	}
	return c
}

func (n *List) logger() *zap.Logger {
	if n.Log == nil {
		return zap.NewNop()
	}
	return n.Log
}
