// Package registry persists search path entries so every invocation rebuilds the same virtual namespace.
package registry

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/vres-cli/vres/filesystem"
	"github.com/vres-cli/vres/vfs"
	"github.com/vres-cli/vres/where"
)

// ErrExists is returned when a source is registered twice.
var ErrExists = errors.New("source is already registered")

// Entry is a persisted search path entry.
type Entry struct {
	Source  string    `json:"source" jsonschema:"description=Absolute host path of the directory or archive."`
	Point   string    `json:"point" jsonschema:"description=Logical mount point."`
	Front   bool      `json:"front" jsonschema:"description=Whether the entry was prepended to the search path."`
	AddedAt time.Time `json:"added_at" jsonschema:"description=Registration time."`
}

func cacher() *gache.Cache[[]*Entry] {
	return gache.New[[]*Entry](&gache.Options{
		Path:       where.Mounts(),
		FileSystem: &filesystem.GacheFs{},
	})
}

// List returns every registered entry in registration order.
func List() ([]*Entry, error) {
	cached, expired, err := cacher().Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return []*Entry{}, nil
	}
	return cached, nil
}

// Add registers a directory or archive. The entry is replayed by Apply on every later start.
func Add(source, point string, front bool) (*Entry, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return nil, err
	}

	cleanPoint, err := vfs.Clean(point)
	if err != nil {
		return nil, fmt.Errorf("mount point %q: %w", point, err)
	}

	entries, err := List()
	if err != nil {
		return nil, err
	}

	if lo.ContainsBy(entries, func(e *Entry) bool { return e.Source == abs }) {
		return nil, fmt.Errorf("%s: %w", abs, ErrExists)
	}

	entry := &Entry{
		Source:  abs,
		Point:   cleanPoint,
		Front:   front,
		AddedAt: time.Now(),
	}

	return entry, cacher().Set(append(entries, entry))
}

// Clear forgets every registered entry.
func Clear() error {
	return cacher().Set([]*Entry{})
}

// Apply mounts every registered entry into fs in registration order.
// Entries that fail to mount are skipped; their errors are returned together.
// fs has logged each of them already.
func Apply(fs *vfs.FS) error {
	entries, err := List()
	if err != nil {
		return err
	}

	var errs []error
	for _, e := range entries {
		if err := fs.Mount(e.Source, e.Point, e.Front); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
