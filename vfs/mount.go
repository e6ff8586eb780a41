package vfs

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
	"github.com/spf13/afero/tarfs"
	"github.com/spf13/afero/zipfs"
	"github.com/vres-cli/vres/constant"
)

// zipMagic is the local file header signature every zip archive starts with.
var zipMagic = []byte("PK\x03\x04")

// mount is a single layer of the search path.
type mount struct {
	source string   // host path as given by the caller
	point  string   // logical mount point
	fs     afero.Fs // read-only view of the layer
	closer io.Closer
}

// resolve maps a clean logical path onto the mount. The bool is false when the mount does not cover it.
func (m *mount) resolve(logical string) (string, bool) {
	return relativeTo(logical, m.point)
}

func (m *mount) close() error {
	if m.closer == nil {
		return nil
	}
	return m.closer.Close()
}

// openMount builds a read-only layer for a host directory or archive.
func openMount(host afero.Fs, source, point string) (*mount, error) {
	info, err := host.Stat(source)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, newError(OpMount, source, ErrNotFound, err)
		}
		return nil, newError(OpMount, source, ErrIO, err)
	}

	m := &mount{source: source, point: point}

	if info.IsDir() {
		m.fs = afero.NewReadOnlyFs(afero.NewBasePathFs(host, source))
		return m, nil
	}

	switch ArchiveKind(source) {
	case constant.ExtZip:
		err = m.openZip(host, info.Size())
	case constant.ExtTar:
		err = m.openTar(host, nil)
	case constant.ExtTarGz, constant.ExtTgz:
		err = m.openTar(host, func(r io.Reader) (io.Reader, func(), error) {
			gz, err := gzip.NewReader(r)
			if err != nil {
				return nil, nil, err
			}
			return gz, func() { _ = gz.Close() }, nil
		})
	case constant.ExtTarZst, constant.ExtTzst:
		err = m.openTar(host, func(r io.Reader) (io.Reader, func(), error) {
			dec, err := zstd.NewReader(r)
			if err != nil {
				return nil, nil, err
			}
			return dec, dec.Close, nil
		})
	default:
		err = m.sniff(host, info.Size())
	}

	if err != nil {
		return nil, err
	}
	return m, nil
}

// ArchiveKind returns the recognised archive extension of name, or "" when there is none.
func ArchiveKind(name string) string {
	lower := strings.ToLower(filepath.Base(name))
	for _, ext := range []string{
		constant.ExtTarGz,
		constant.ExtTarZst,
		constant.ExtTgz,
		constant.ExtTzst,
		constant.ExtTar,
		constant.ExtZip,
	} {
		if strings.HasSuffix(lower, ext) {
			return ext
		}
	}
	return ""
}

// openZip indexes a zip archive. The host handle stays open for the life of the mount
// because zip entries are read lazily through io.ReaderAt.
func (m *mount) openZip(host afero.Fs, size int64) error {
	f, err := host.Open(m.source)
	if err != nil {
		return newError(OpMount, m.source, ErrIO, err)
	}

	r, err := zip.NewReader(f, size)
	if err != nil {
		_ = f.Close()
		return newError(OpMount, m.source, ErrIO, fmt.Errorf("read zip: %w", err))
	}

	addImpliedDirs(r)
	m.fs = afero.NewReadOnlyFs(zipfs.New(r))
	m.closer = f
	return nil
}

// addImpliedDirs appends a directory entry for every parent that the archive names
// only implicitly. zipfs knows a directory only through its own entry.
func addImpliedDirs(r *zip.Reader) {
	dirs := map[string]bool{Root: true}
	for _, file := range r.File {
		if strings.HasSuffix(file.Name, "/") {
			dirs[archiveEntryPath(file.Name)] = true
		}
	}

	var implied []*zip.File
	for _, file := range r.File {
		for dir := path.Dir(archiveEntryPath(file.Name)); !dirs[dir]; dir = path.Dir(dir) {
			dirs[dir] = true
			implied = append(implied, &zip.File{FileHeader: zip.FileHeader{
				Name:     strings.TrimPrefix(dir, Root) + "/",
				Modified: file.Modified,
			}})
		}
	}

	r.File = append(r.File, implied...)
}

func archiveEntryPath(name string) string {
	return path.Clean(Root + strings.TrimPrefix(filepath.ToSlash(name), "./"))
}

// openTar loads a (possibly compressed) tar archive into memory and releases the host handle.
func (m *mount) openTar(host afero.Fs, decompress func(io.Reader) (io.Reader, func(), error)) error {
	f, err := host.Open(m.source)
	if err != nil {
		return newError(OpMount, m.source, ErrIO, err)
	}
	defer f.Close()

	var r io.Reader = f
	if decompress != nil {
		dr, release, err := decompress(f)
		if err != nil {
			return newError(OpMount, m.source, ErrIO, fmt.Errorf("decompress: %w", err))
		}
		defer release()
		r = dr
	}

	buf, err := normalizeTar(r)
	if err != nil {
		return newError(OpMount, m.source, ErrIO, fmt.Errorf("read tar: %w", err))
	}

	tfs := tarfs.New(tar.NewReader(buf))
	if tfs == nil {
		return newError(OpMount, m.source, ErrIO, errors.New("read tar: malformed archive"))
	}

	m.fs = afero.NewReadOnlyFs(tfs)
	return nil
}

// normalizeTar re-encodes an archive with rooted entry names and an explicit header
// for every parent directory. Reading it fully up front also surfaces truncated entries
// as errors, where tarfs itself would panic.
func normalizeTar(r io.Reader) (*bytes.Buffer, error) {
	var (
		buf  bytes.Buffer
		tr   = tar.NewReader(r)
		tw   = tar.NewWriter(&buf)
		dirs = map[string]bool{Root: true}
	)

	var ensureDir func(dir string) error
	ensureDir = func(dir string) error {
		if dirs[dir] {
			return nil
		}
		if err := ensureDir(path.Dir(dir)); err != nil {
			return err
		}
		dirs[dir] = true
		return tw.WriteHeader(&tar.Header{Name: dir + "/", Typeflag: tar.TypeDir, Mode: 0o755})
	}

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		name := archiveEntryPath(hdr.Name)
		if name == Root {
			continue
		}

		if err := ensureDir(path.Dir(name)); err != nil {
			return nil, err
		}

		if hdr.Typeflag == tar.TypeDir {
			if err := ensureDir(name); err != nil {
				return nil, err
			}
			continue
		}

		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		hdr.Name = name
		if err := tw.WriteHeader(hdr); err != nil {
			return nil, err
		}
		if _, err := io.Copy(tw, tr); err != nil {
			return nil, err
		}
	}

	if err := tw.Close(); err != nil {
		return nil, err
	}
	return &buf, nil
}

// sniff detects a zip archive without a recognised extension.
func (m *mount) sniff(host afero.Fs, size int64) error {
	f, err := host.Open(m.source)
	if err != nil {
		return newError(OpMount, m.source, ErrIO, err)
	}

	header := make([]byte, len(zipMagic))
	_, err = io.ReadFull(f, header)
	_ = f.Close()

	if err != nil || !bytes.Equal(header, zipMagic) {
		return newError(OpMount, m.source, ErrUnsupported, nil)
	}

	return m.openZip(host, size)
}

// pointInfo describes a mount point that no layer provides as a real directory.
type pointInfo struct {
	name string
}

func mountPointInfo(logical string) fs.FileInfo {
	name := path.Base(logical)
	if logical == Root {
		name = Root
	}
	return pointInfo{name: name}
}

func (p pointInfo) Name() string       { return p.name }
func (p pointInfo) Size() int64        { return 0 }
func (p pointInfo) Mode() fs.FileMode  { return fs.ModeDir | 0o555 }
func (p pointInfo) ModTime() time.Time { return time.Time{} }
func (p pointInfo) IsDir() bool        { return true }
func (p pointInfo) Sys() any           { return nil }
