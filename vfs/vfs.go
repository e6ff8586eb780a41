// Package vfs implements a layered virtual file namespace over directories and archives.
//
// Real directories and archives are mounted into a search path. Reads resolve a logical
// path against the write directory first and then against every mount from front to back,
// the first layer that has the file wins. Writes always go to the single write directory.
package vfs

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/vres-cli/vres/filesystem"
	"github.com/vres-cli/vres/log"
)

// FS is a virtual file namespace built from layered search locations.
// The zero value is not usable, construct it with Init.
type FS struct {
	mu sync.RWMutex

	host    afero.Fs
	logger  logrus.FieldLogger
	baseDir string

	mounts   []*mount
	writeDir mo.Option[string]
	writeFs  afero.Fs

	terminated bool
}

// Option configures an FS at construction.
type Option func(*FS)

// WithHostFs sets the host filesystem that directories and archives are read from.
func WithHostFs(host afero.Fs) Option {
	return func(f *FS) {
		f.host = host
	}
}

// WithLogger sets the logger that receives one entry per failed operation.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(f *FS) {
		f.logger = logger
	}
}

// Init creates a virtual filesystem. argv0 is the invocation path of the running program
// and is used to locate the base directory. A bare name is looked up in PATH. An empty argv0
// falls back to os.Executable and then to the working directory.
func Init(argv0 string, opts ...Option) (*FS, error) {
	f := &FS{
		host:     filesystem.API().Fs,
		logger:   log.Logger(),
		writeDir: mo.None[string](),
	}

	for _, opt := range opts {
		opt(f)
	}

	baseDir, err := resolveBaseDir(argv0)
	if err != nil {
		return nil, f.fail(newError(OpInit, argv0, ErrIO, err))
	}
	f.baseDir = baseDir

	f.logger.WithField("base", baseDir).Debug("virtual filesystem initialized")
	return f, nil
}

func resolveBaseDir(argv0 string) (string, error) {
	if argv0 == "" {
		exe, err := os.Executable()
		if err != nil {
			return os.Getwd()
		}
		argv0 = exe
	}

	// A bare program name was found through PATH.
	if !strings.ContainsAny(argv0, `/\`) {
		if found, err := exec.LookPath(argv0); err == nil {
			argv0 = found
		}
	}

	abs, err := filepath.Abs(argv0)
	if err != nil {
		return "", err
	}
	return filepath.Dir(abs), nil
}

// Terminate releases every archive handle and forgets the search path and write directory.
// Every later call on f fails with ErrNotInitialized. Terminating twice is a no-op.
func (f *FS) Terminate() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.terminated {
		return nil
	}

	var errs []error
	for _, m := range f.mounts {
		if err := m.close(); err != nil {
			errs = append(errs, err)
		}
	}

	f.mounts = nil
	f.writeDir = mo.None[string]()
	f.writeFs = nil
	f.terminated = true

	if err := errors.Join(errs...); err != nil {
		return f.fail(newError(OpTerminate, "", ErrIO, err))
	}
	return nil
}

// BaseDir returns the directory that holds the running program.
func (f *FS) BaseDir() string {
	return f.baseDir
}

// fail logs err once with its operation, path and backend diagnostic, then returns it.
func (f *FS) fail(err *Error) *Error {
	entry := f.logger.WithFields(logrus.Fields{
		"op":   err.Op,
		"path": err.Path,
	})

	if err.Err != nil {
		entry = entry.WithField("cause", err.Err.Error())
	}

	entry.Error(err.Kind.Error())
	return err
}

// guard returns ErrNotInitialized once f has been terminated. The caller must hold f.mu.
func (f *FS) guard(op, path string) error {
	if f.terminated {
		return f.fail(newError(op, path, ErrNotInitialized, nil))
	}
	return nil
}

// SetWriteDir designates the host directory that receives every later write.
// On failure the previous write directory stays in effect.
func (f *FS) SetWriteDir(dir string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.guard(OpSetWriteDir, dir); err != nil {
		return err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return f.fail(newError(OpSetWriteDir, dir, ErrBadWriteDir, err))
	}

	info, err := f.host.Stat(abs)
	if err != nil {
		return f.fail(newError(OpSetWriteDir, dir, ErrBadWriteDir, err))
	}

	if !info.IsDir() {
		return f.fail(newError(OpSetWriteDir, dir, ErrBadWriteDir, errors.New("not a directory")))
	}

	f.writeDir = mo.Some(abs)
	f.writeFs = afero.NewBasePathFs(f.host, abs)
	return nil
}

// WriteDir returns the current write directory, if any.
func (f *FS) WriteDir() mo.Option[string] {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.writeDir
}

// AddSearchPath mounts a directory or archive at the logical root,
// in front of (highest precedence) or behind every existing mount.
func (f *FS) AddSearchPath(source string, front bool) error {
	return f.Mount(source, Root, front)
}

// Mount adds a directory or archive to the search path with its contents appearing under point.
// On failure the search path is left unchanged. Mounting a source that is already
// in the search path succeeds and keeps its existing position.
func (f *FS) Mount(source, point string, front bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.guard(OpMount, source); err != nil {
		return err
	}

	cleanPoint, err := Clean(point)
	if err != nil {
		return f.fail(newError(OpMount, point, ErrInvalidPath, nil))
	}

	abs, err := filepath.Abs(source)
	if err != nil {
		return f.fail(newError(OpMount, source, ErrIO, err))
	}

	if lo.ContainsBy(f.mounts, func(m *mount) bool { return m.source == abs }) {
		f.logger.WithField("source", abs).Debug("already mounted")
		return nil
	}

	m, err := openMount(f.host, abs, cleanPoint)
	if err != nil {
		var vErr *Error
		if errors.As(err, &vErr) {
			vErr.Path = source
			return f.fail(vErr)
		}
		return f.fail(newError(OpMount, source, ErrIO, err))
	}

	if front {
		f.mounts = append([]*mount{m}, f.mounts...)
	} else {
		f.mounts = append(f.mounts, m)
	}

	f.logger.WithFields(logrus.Fields{
		"source": abs,
		"point":  cleanPoint,
		"front":  front,
	}).Debug("mounted")
	return nil
}

// SearchPath returns the mounted sources in precedence order.
func (f *FS) SearchPath() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return lo.Map(f.mounts, func(m *mount, _ int) string {
		return m.source
	})
}

// layer is one place a logical path can be looked up in.
type layer struct {
	source string
	fs     afero.Fs
	path   string
}

// layers lists, in resolution order, every layer that covers the clean logical path.
// The caller must hold f.mu.
func (f *FS) layers(logical string) []layer {
	var out []layer

	if dir, ok := f.writeDir.Get(); ok {
		out = append(out, layer{source: dir, fs: f.writeFs, path: logical})
	}

	for _, m := range f.mounts {
		if rel, ok := m.resolve(logical); ok {
			out = append(out, layer{source: m.source, fs: m.fs, path: rel})
		}
	}

	return out
}

// find returns the first layer holding logical together with its file info.
// The caller must hold f.mu.
func (f *FS) find(logical string) (layer, fs.FileInfo, bool) {
	for _, l := range f.layers(logical) {
		if info, err := l.fs.Stat(l.path); err == nil {
			return l, info, true
		}
	}

	// The root and mount points are directories even when nothing provides them.
	if logical == Root || f.isMountAncestor(logical) {
		return layer{}, mountPointInfo(logical), true
	}

	return layer{}, nil, false
}

// isMountAncestor reports whether some mount point lies at or below logical. The caller must hold f.mu.
func (f *FS) isMountAncestor(logical string) bool {
	return lo.ContainsBy(f.mounts, func(m *mount) bool {
		if m.point == logical {
			return true
		}
		_, ok := childTowards(logical, m.point)
		return ok
	})
}

// Exists reports whether some layer provides logical.
func (f *FS) Exists(logical string) bool {
	_, err := f.Stat(logical)
	return err == nil
}

// IsDir reports whether logical resolves to a directory.
func (f *FS) IsDir(logical string) bool {
	info, err := f.Stat(logical)
	return err == nil && info.IsDir()
}

// Stat resolves logical and describes the file that a read would return.
// A missing path is not logged, it is an expected answer to a query.
func (f *FS) Stat(logical string) (fs.FileInfo, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if err := f.guard(OpStat, logical); err != nil {
		return nil, err
	}

	clean, err := Clean(logical)
	if err != nil {
		return nil, newError(OpStat, logical, ErrInvalidPath, nil)
	}

	_, info, ok := f.find(clean)
	if !ok {
		return nil, newError(OpStat, clean, ErrNotFound, nil)
	}
	return info, nil
}

// RealDir returns the host directory or archive that provides logical.
func (f *FS) RealDir(logical string) mo.Option[string] {
	f.mu.RLock()
	defer f.mu.RUnlock()

	clean, err := Clean(logical)
	if err != nil || f.terminated {
		return mo.None[string]()
	}

	l, _, ok := f.find(clean)
	if !ok || l.fs == nil {
		return mo.None[string]()
	}
	return mo.Some(l.source)
}

// LoadFile reads the whole content of logical from the first layer that provides it.
// The returned slice is owned by the caller.
func (f *FS) LoadFile(logical string) ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if err := f.guard(OpLoad, logical); err != nil {
		return nil, err
	}

	clean, err := Clean(logical)
	if err != nil {
		return nil, f.fail(newError(OpLoad, logical, ErrInvalidPath, nil))
	}

	l, info, ok := f.find(clean)
	if !ok {
		return nil, f.fail(newError(OpLoad, clean, ErrNotFound, nil))
	}

	if info.IsDir() {
		return nil, f.fail(newError(OpLoad, clean, ErrIO, errors.New("is a directory")))
	}

	data, err := afero.ReadFile(l.fs, l.path)
	if err != nil {
		return nil, f.fail(newError(OpLoad, clean, ErrIO, err))
	}

	return data, nil
}

// LoadTextFile loads logical and returns its content up to the first zero byte.
// An empty file yields "" with a nil error, a missing one yields ErrNotFound.
func (f *FS) LoadTextFile(logical string) (string, error) {
	data, err := f.LoadFile(logical)
	if err != nil {
		return "", err
	}

	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return string(data), nil
}

// SaveFile creates or truncates logical under the write directory and writes data to it.
// A failed write may leave a truncated file behind.
func (f *FS) SaveFile(logical string, data []byte) error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if err := f.guard(OpSave, logical); err != nil {
		return err
	}

	clean, err := Clean(logical)
	if err != nil {
		return f.fail(newError(OpSave, logical, ErrInvalidPath, nil))
	}

	if f.writeDir.IsAbsent() {
		return f.fail(newError(OpSave, clean, ErrNoWriteDir, nil))
	}

	file, err := f.writeFs.OpenFile(clean, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return f.fail(newError(OpSave, clean, kindOfHostError(err), err))
	}

	_, err = file.Write(data)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		return f.fail(newError(OpSave, clean, ErrIO, err))
	}
	return nil
}

// SaveTextFile writes text to logical under the write directory.
func (f *FS) SaveTextFile(logical, text string) error {
	return f.SaveFile(logical, []byte(text))
}

// Mkdir creates logical and any missing parents under the write directory.
func (f *FS) Mkdir(logical string) error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if err := f.guard(OpMkdir, logical); err != nil {
		return err
	}

	clean, err := Clean(logical)
	if err != nil {
		return f.fail(newError(OpMkdir, logical, ErrInvalidPath, nil))
	}

	if f.writeDir.IsAbsent() {
		return f.fail(newError(OpMkdir, clean, ErrNoWriteDir, nil))
	}

	if err := f.writeFs.MkdirAll(clean, os.ModePerm); err != nil {
		return f.fail(newError(OpMkdir, clean, ErrIO, err))
	}
	return nil
}

// Remove deletes a file or an empty directory under the write directory.
// Files provided by mounts are read-only and cannot be removed.
func (f *FS) Remove(logical string) error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if err := f.guard(OpRemove, logical); err != nil {
		return err
	}

	clean, err := Clean(logical)
	if err != nil || clean == Root {
		return f.fail(newError(OpRemove, logical, ErrInvalidPath, nil))
	}

	if f.writeDir.IsAbsent() {
		return f.fail(newError(OpRemove, clean, ErrNoWriteDir, nil))
	}

	if err := f.writeFs.Remove(clean); err != nil {
		return f.fail(newError(OpRemove, clean, kindOfHostError(err), err))
	}
	return nil
}

// ListFiles returns the sorted, de-duplicated names of the entries directly inside dir,
// merged across the write directory and every mount that contributes to it.
func (f *FS) ListFiles(dir string) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if err := f.guard(OpList, dir); err != nil {
		return nil, err
	}

	clean, err := Clean(dir)
	if err != nil {
		return nil, f.fail(newError(OpList, dir, ErrInvalidPath, nil))
	}

	// The root exists even when nothing is mounted.
	names := []string{}
	found := clean == Root

	for _, l := range f.layers(clean) {
		infos, err := afero.ReadDir(l.fs, l.path)
		if err != nil {
			continue
		}

		found = true
		for _, info := range infos {
			// Archive backends may report their own root as an entry.
			if name := info.Name(); name != "" && name != "." && name != Root {
				names = append(names, name)
			}
		}
	}

	for _, m := range f.mounts {
		if name, ok := childTowards(clean, m.point); ok {
			found = true
			names = append(names, name)
		}
	}

	if !found {
		return nil, f.fail(newError(OpList, clean, ErrNotFound, nil))
	}

	names = lo.Uniq(names)
	sort.Strings(names)
	return names, nil
}

// kindOfHostError classifies an error reported by the host filesystem.
func kindOfHostError(err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return ErrIO
}
