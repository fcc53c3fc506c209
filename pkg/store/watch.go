package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is emitted by Watch when a key changes on disk. An empty Key means
// the watcher could not tell which key changed and callers should reload
// everything.
type Event struct {
	Key string
}

const watchDelay = 100 * time.Millisecond

// Watch streams change events for the keys under the diskv base path until
// ctx is cancelled. Bursts of writes are coalesced so a consumer sees one
// event per key per burst. Events are dropped, not queued, while the
// consumer is busy. The channel is closed once ctx is done or the watcher
// fails.
func (p *Diskv) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(p.basePath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	events := make(chan Event, 16)

	go func() {
		defer close(events)
		defer watcher.Close()

		pending := make(map[string]struct{})
		var flush <-chan time.Time
		var timer *time.Timer
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		enqueue := func(key string) {
			pending[key] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(watchDelay)
				flush = timer.C
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				enqueue("")
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				enqueue(p.keyForPath(evt.Name))
			case <-flush:
				timer, flush = nil, nil
				for key := range pending {
					select {
					case events <- Event{Key: key}:
					default:
					}
				}
				pending = make(map[string]struct{})
			}
		}
	}()

	return events, nil
}

// keyForPath maps a file under the base path back to its key.
func (p *Diskv) keyForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." || filepath.Dir(rel) != "." {
		return ""
	}
	return rel
}
