package browse

import (
	"io/fs"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"github.com/vres-cli/vres/icon"
	"github.com/vres-cli/vres/key"
	"github.com/vres-cli/vres/style"
	"github.com/vres-cli/vres/vfs"
)

// listItem implements the list.Item interface for a single namespace entry.
type listItem struct {
	name    string
	logical string
	info    fs.FileInfo

	// source is the host directory or archive providing the entry, empty for bare mount points.
	source string
}

func (t *listItem) isDir() bool {
	return t.info != nil && t.info.IsDir()
}

func (t *listItem) getIcon() string {
	switch {
	case t.isDir() && t.source == "":
		return icon.Get(icon.Mount)
	case t.isDir():
		return icon.Get(icon.Folder)
	case vfs.ArchiveKind(t.name) != "":
		return icon.Get(icon.Archive)
	default:
		return icon.Get(icon.File)
	}
}

// Title returns the entry name prefixed with its icon.
func (t *listItem) Title() string {
	var sb strings.Builder

	if ic := t.getIcon(); ic != "" {
		sb.WriteString(ic)
		sb.WriteString(" ")
	}

	sb.WriteString(t.name)
	if t.isDir() {
		sb.WriteString("/")
	}

	return sb.String()
}

// Description returns the entry size and the layer it comes from.
func (t *listItem) Description() string {
	var parts []string

	switch {
	case t.info == nil:
		parts = append(parts, "unreadable")
	case t.isDir():
		parts = append(parts, "directory")
	case viper.GetBool(key.BrowseShowSizes):
		parts = append(parts, humanize.Bytes(uint64(t.info.Size())))
	}

	if t.source == "" {
		parts = append(parts, "mount point")
	} else {
		parts = append(parts, style.Faint(t.source))
	}

	return strings.Join(parts, " · ")
}

// FilterValue returns the value used by the list filter.
func (t *listItem) FilterValue() string {
	return t.name
}
