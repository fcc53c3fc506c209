package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/peterbourgon/diskv/v3"
)

// Diskv keeps every key as a file directly under a base directory.
type Diskv struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskv returns a diskv-backed Blob rooted at basePath. The directory is
// created on first write. There is no read cache: other processes write the
// same files and every Get must see their last write.
func NewDiskv(basePath string) *Diskv {
	return &Diskv{
		d: diskv.New(diskv.Options{
			BasePath: basePath,
		}),
		basePath: basePath,
	}
}

// BasePath is the directory the values are written to.
func (p *Diskv) BasePath() string {
	return p.basePath
}

func (p *Diskv) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("store: read %s: %w", key, err)
	}
	return string(val), true, nil
}

func (p *Diskv) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// Clear erases every key but leaves the base directory in place so watchers
// stay attached.
func (p *Diskv) Clear(ctx context.Context) error {
	var keys []string
	for key := range p.d.Keys(ctx.Done()) {
		keys = append(keys, key)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, key := range keys {
		if err := p.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("store: erase %s: %w", key, err)
		}
	}
	return nil
}

func (p *Diskv) Close() error { return nil }
