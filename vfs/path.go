package vfs

import (
	"path"
	"strings"
)

// Root is the logical root of the namespace.
const Root = "/"

// Clean normalizes a logical path into its absolute slash-separated form.
// Backslashes are treated as separators, empty and "." segments are dropped,
// and any ".." segment is rejected so no path can climb out of a mount.
func Clean(logical string) (string, error) {
	logical = strings.ReplaceAll(logical, "\\", "/")

	for _, segment := range strings.Split(logical, "/") {
		if segment == ".." {
			return "", ErrInvalidPath
		}
	}

	return path.Clean(Root + logical), nil
}

// relativeTo maps a clean logical path onto a mount point.
// It returns the path inside the mount and whether the mount covers it at all.
func relativeTo(logical, point string) (string, bool) {
	switch {
	case point == Root:
		return logical, true
	case logical == point:
		return Root, true
	case strings.HasPrefix(logical, point+"/"):
		return logical[len(point):], true
	default:
		return "", false
	}
}

// childTowards returns the first segment of point below dir when point lies strictly beneath dir.
// It lets a mount at /a/b/c show up as "b" when listing /a.
func childTowards(dir, point string) (string, bool) {
	if point == dir {
		return "", false
	}

	prefix := dir
	if prefix != Root {
		prefix += "/"
	}

	if !strings.HasPrefix(point, prefix) {
		return "", false
	}

	rest := point[len(prefix):]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest, rest != ""
}
