package cmd

import (
	"fmt"
	"path"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/vres-cli/vres/color"
	"github.com/vres-cli/vres/icon"
	"github.com/vres-cli/vres/style"
	"github.com/vres-cli/vres/vfs"
)

// Entry describes a logical path as printed by ls and stat.
type Entry struct {
	Path    string    `json:"path" jsonschema:"description=Absolute logical path."`
	Name    string    `json:"name" jsonschema:"description=Last element of the path."`
	Dir     bool      `json:"dir" jsonschema:"description=Whether the entry is a directory."`
	Size    int64     `json:"size" jsonschema:"description=Size in bytes. Zero for directories."`
	ModTime time.Time `json:"mod_time" jsonschema:"description=Modification time reported by the providing layer."`
	Source  string    `json:"source,omitempty" jsonschema:"description=Host directory or archive that provides the entry. Empty for bare mount points."`
}

func newEntry(fs *vfs.FS, logical string) (*Entry, error) {
	clean, err := vfs.Clean(logical)
	if err != nil {
		return nil, err
	}

	info, err := fs.Stat(clean)
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		Path:    clean,
		Name:    path.Base(clean),
		Dir:     info.IsDir(),
		ModTime: info.ModTime(),
		Source:  fs.RealDir(clean).OrEmpty(),
	}

	if !entry.Dir {
		entry.Size = info.Size()
	}

	return entry, nil
}

func (e *Entry) icon() string {
	switch {
	case e.Dir && e.Source == "":
		return icon.Get(icon.Mount)
	case e.Dir:
		return icon.Get(icon.Folder)
	case vfs.ArchiveKind(e.Name) != "":
		return icon.Get(icon.Archive)
	default:
		return icon.Get(icon.File)
	}
}

// Short renders the entry name, directories get a trailing slash.
func (e *Entry) Short() string {
	if e.Dir {
		return style.Fg(color.Blue)(e.Name + "/")
	}
	return e.Name
}

// Long renders the entry as one line of ls --long output.
func (e *Entry) Long() string {
	size := "-"
	if !e.Dir {
		size = humanize.Bytes(uint64(e.Size))
	}

	modified := "-"
	if !e.ModTime.IsZero() {
		modified = humanize.Time(e.ModTime)
	}

	return fmt.Sprintf(
		"%s %8s  %-16s %s  %s",
		e.icon(),
		size,
		modified,
		e.Short(),
		style.Faint(e.Source),
	)
}
