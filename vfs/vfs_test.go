package vfs

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

// newTestFS returns a virtual filesystem over a fresh in-memory host and a hook capturing its log entries.
func newTestFS() (*FS, afero.Fs, *test.Hook) {
	host := afero.NewMemMapFs()
	logger, hook := test.NewNullLogger()
	fs := lo.Must(Init("/opt/vres/bin/vres", WithHostFs(host), WithLogger(logger)))
	return fs, host, hook
}

func writeFiles(host afero.Fs, root string, files map[string]string) {
	for name, content := range files {
		full := path.Join(root, name)
		lo.Must0(host.MkdirAll(path.Dir(full), os.ModePerm))
		lo.Must0(afero.WriteFile(host, full, []byte(content), 0o644))
	}
}

func sortedKeys(files map[string]string) []string {
	keys := lo.Keys(files)
	sort.Strings(keys)
	return keys
}

// writeZip stores a zip archive with explicit directory entries for every parent.
func writeZip(host afero.Fs, name string, files map[string]string) {
	writeZipEntries(host, name, files, true)
}

// writeFlatZip stores a zip archive that names its directories only through file paths.
func writeFlatZip(host afero.Fs, name string, files map[string]string) {
	writeZipEntries(host, name, files, false)
}

func writeZipEntries(host afero.Fs, name string, files map[string]string, withDirs bool) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	dirs := make(map[string]bool)

	for _, file := range sortedKeys(files) {
		for dir := path.Dir(file); withDirs && dir != "."; dir = path.Dir(dir) {
			if !dirs[dir] {
				dirs[dir] = true
				lo.Must(zw.Create(dir + "/"))
			}
		}

		w := lo.Must(zw.Create(file))
		lo.Must(w.Write([]byte(files[file])))
	}

	lo.Must0(zw.Close())
	lo.Must0(afero.WriteFile(host, name, buf.Bytes(), 0o644))
}

// writeTar stores a tar archive without directory entries, optionally compressed.
func writeTar(host afero.Fs, name string, files map[string]string) {
	var buf bytes.Buffer
	var sink io.WriteCloser = nopCloser{&buf}

	switch {
	case strings.HasSuffix(name, ".tar.gz"):
		sink = gzip.NewWriter(&buf)
	case strings.HasSuffix(name, ".tar.zst"):
		sink = lo.Must(zstd.NewWriter(&buf))
	}

	tw := tar.NewWriter(sink)
	for _, file := range sortedKeys(files) {
		lo.Must0(tw.WriteHeader(&tar.Header{
			Name:     file,
			Typeflag: tar.TypeReg,
			Mode:     0o644,
			Size:     int64(len(files[file])),
		}))
		lo.Must(tw.Write([]byte(files[file])))
	}

	lo.Must0(tw.Close())
	lo.Must0(sink.Close())
	lo.Must0(afero.WriteFile(host, name, buf.Bytes(), 0o644))
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func lastField(hook *test.Hook, name string) any {
	entry := hook.LastEntry()
	if entry == nil {
		return nil
	}
	return entry.Data[name]
}

func TestInit(t *testing.T) {
	Convey("Given a program invoked as /opt/vres/bin/vres", t, func() {
		fs, _, _ := newTestFS()

		Convey("The base directory is the program's directory", func() {
			So(fs.BaseDir(), ShouldEqual, "/opt/vres/bin")
		})

		Convey("Nothing is mounted and no write directory is set", func() {
			So(fs.SearchPath(), ShouldBeEmpty)
			So(fs.WriteDir().IsAbsent(), ShouldBeTrue)
		})
	})

	Convey("Given a bare program name found in PATH", t, func() {
		dir := t.TempDir()
		lo.Must0(os.WriteFile(filepath.Join(dir, "vres-fixture"), []byte("#!/bin/sh\n"), 0o755))
		t.Setenv("PATH", dir)

		fs, err := Init("vres-fixture", WithHostFs(afero.NewMemMapFs()))
		So(err, ShouldBeNil)

		Convey("The base directory is where PATH points", func() {
			So(fs.BaseDir(), ShouldEqual, dir)
		})
	})

	Convey("Given an empty argv0", t, func() {
		fs, err := Init("", WithHostFs(afero.NewMemMapFs()))

		Convey("The base directory still resolves", func() {
			So(err, ShouldBeNil)
			So(fs.BaseDir(), ShouldNotBeEmpty)
		})
	})
}

func TestMissingPaths(t *testing.T) {
	Convey("Given a directory mount", t, func() {
		fs, host, hook := newTestFS()
		writeFiles(host, "/res", map[string]string{"data/x.txt": "x"})
		So(fs.AddSearchPath("/res", true), ShouldBeNil)

		Convey("A path present under no mount does not exist", func() {
			So(fs.Exists("/data/missing.txt"), ShouldBeFalse)
			So(hook.Entries, ShouldBeEmpty)
		})

		Convey("Loading it returns nil and a logged not-found error", func() {
			data, err := fs.LoadFile("/data/missing.txt")
			So(data, ShouldBeNil)
			So(len(data), ShouldEqual, 0)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			So(KindOf(err), ShouldEqual, ErrNotFound)

			So(len(hook.Entries), ShouldEqual, 1)
			So(hook.LastEntry().Level, ShouldEqual, logrus.ErrorLevel)
			So(lastField(hook, "op"), ShouldEqual, OpLoad)
			So(lastField(hook, "path"), ShouldEqual, "/data/missing.txt")
		})

		Convey("Existing files are found regardless of path spelling", func() {
			So(fs.Exists("/data/x.txt"), ShouldBeTrue)
			So(fs.Exists("data/x.txt"), ShouldBeTrue)
			So(fs.Exists(`data\x.txt`), ShouldBeTrue)
			So(fs.IsDir("/data"), ShouldBeTrue)
			So(fs.IsDir("/data/x.txt"), ShouldBeFalse)
		})
	})
}

func TestRoundTrip(t *testing.T) {
	Convey("Given a write directory", t, func() {
		fs, host, _ := newTestFS()
		lo.Must0(host.MkdirAll("/save", os.ModePerm))
		So(fs.SetWriteDir("/save"), ShouldBeNil)
		So(fs.WriteDir().MustGet(), ShouldEqual, "/save")

		for _, payload := range [][]byte{
			{},
			[]byte("plain text"),
			{0x00, 0xff, 0x10, 0x00, 0x42},
			bytes.Repeat([]byte("abc"), 10000),
		} {
			Convey(fmt.Sprintf("Saved %d bytes load back unchanged", len(payload)), func() {
				So(fs.SaveFile("/blob.bin", payload), ShouldBeNil)

				loaded, err := fs.LoadFile("/blob.bin")
				So(err, ShouldBeNil)
				So(len(loaded), ShouldEqual, len(payload))
				So(bytes.Equal(loaded, payload), ShouldBeTrue)
			})
		}

		Convey("The file lands on the host under the write directory", func() {
			So(fs.SaveTextFile("/notes/today.txt", "hi"), ShouldBeNil)

			data, err := afero.ReadFile(host, "/save/notes/today.txt")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "hi")
			So(fs.RealDir("/notes/today.txt").MustGet(), ShouldEqual, "/save")
		})

		Convey("Saving truncates a longer previous file", func() {
			So(fs.SaveTextFile("/a.txt", "long content"), ShouldBeNil)
			So(fs.SaveTextFile("/a.txt", "short"), ShouldBeNil)
			So(lo.Must(fs.LoadTextFile("/a.txt")), ShouldEqual, "short")
		})

		Convey("Written files shadow mounted ones", func() {
			writeFiles(host, "/res", map[string]string{"cfg.txt": "mounted"})
			So(fs.AddSearchPath("/res", true), ShouldBeNil)
			So(fs.SaveTextFile("/cfg.txt", "saved"), ShouldBeNil)
			So(lo.Must(fs.LoadTextFile("/cfg.txt")), ShouldEqual, "saved")
		})
	})

	Convey("Given no write directory", t, func() {
		fs, _, hook := newTestFS()

		Convey("Saving fails with a logged error", func() {
			err := fs.SaveTextFile("/y.txt", "data")
			So(errors.Is(err, ErrNoWriteDir), ShouldBeTrue)
			So(lastField(hook, "op"), ShouldEqual, OpSave)
			So(lastField(hook, "path"), ShouldEqual, "/y.txt")
		})

		Convey("Mkdir and Remove fail the same way", func() {
			So(errors.Is(fs.Mkdir("/dir"), ErrNoWriteDir), ShouldBeTrue)
			So(errors.Is(fs.Remove("/dir"), ErrNoWriteDir), ShouldBeTrue)
		})
	})
}

func TestWriteDirReplacement(t *testing.T) {
	Convey("Given a working write directory", t, func() {
		fs, host, hook := newTestFS()
		lo.Must0(host.MkdirAll("/prev", os.ModePerm))
		So(fs.SetWriteDir("/prev"), ShouldBeNil)

		Convey("When setting a missing directory fails", func() {
			err := fs.SetWriteDir("/out")
			So(errors.Is(err, ErrBadWriteDir), ShouldBeTrue)
			So(lastField(hook, "op"), ShouldEqual, OpSetWriteDir)
			So(lastField(hook, "path"), ShouldEqual, "/out")

			Convey("Writes still target the previous directory", func() {
				So(fs.SaveTextFile("/out/y.txt", "data"), ShouldBeNil)
				So(lo.Must(afero.Exists(host, "/prev/out/y.txt")), ShouldBeTrue)
				So(lo.Must(afero.Exists(host, "/out/y.txt")), ShouldBeFalse)
				So(fs.WriteDir().MustGet(), ShouldEqual, "/prev")
			})
		})

		Convey("When the new path is a regular file it is rejected", func() {
			lo.Must0(afero.WriteFile(host, "/file", []byte("x"), 0o644))
			So(errors.Is(fs.SetWriteDir("/file"), ErrBadWriteDir), ShouldBeTrue)
			So(fs.WriteDir().MustGet(), ShouldEqual, "/prev")
		})

		Convey("When a valid directory replaces it, new writes go there", func() {
			lo.Must0(host.MkdirAll("/next", os.ModePerm))
			So(fs.SetWriteDir("/next"), ShouldBeNil)
			So(fs.SaveTextFile("/z.txt", "z"), ShouldBeNil)
			So(lo.Must(afero.Exists(host, "/next/z.txt")), ShouldBeTrue)
			So(lo.Must(afero.Exists(host, "/prev/z.txt")), ShouldBeFalse)
		})
	})
}

func TestPrecedence(t *testing.T) {
	Convey("Given two directories providing the same path", t, func() {
		fs, host, _ := newTestFS()
		writeFiles(host, "/front", map[string]string{"data/x.txt": "front"})
		writeFiles(host, "/back", map[string]string{"data/x.txt": "back", "data/only-back.txt": "b"})

		So(fs.AddSearchPath("/front", true), ShouldBeNil)
		So(fs.AddSearchPath("/back", false), ShouldBeNil)

		Convey("Resolution favors the front mount", func() {
			So(lo.Must(fs.LoadTextFile("/data/x.txt")), ShouldEqual, "front")
			So(fs.RealDir("/data/x.txt").MustGet(), ShouldEqual, "/front")
		})

		Convey("Paths only the back mount has still resolve", func() {
			So(lo.Must(fs.LoadTextFile("/data/only-back.txt")), ShouldEqual, "b")
			So(fs.RealDir("/data/only-back.txt").MustGet(), ShouldEqual, "/back")
		})

		Convey("The search path lists sources in precedence order", func() {
			So(fs.SearchPath(), ShouldResemble, []string{"/front", "/back"})
		})

		Convey("A later front insertion takes over", func() {
			writeFiles(host, "/newest", map[string]string{"data/x.txt": "newest"})
			So(fs.AddSearchPath("/newest", true), ShouldBeNil)
			So(lo.Must(fs.LoadTextFile("/data/x.txt")), ShouldEqual, "newest")
			So(fs.SearchPath()[0], ShouldEqual, "/newest")
		})
	})

	Convey("Given archive A in front and directory D behind", t, func() {
		fs, host, _ := newTestFS()
		writeZip(host, "/pkg/a.zip", map[string]string{"data/x.txt": "hello"})
		writeFiles(host, "/d", map[string]string{"data/x.txt": "world"})

		So(fs.AddSearchPath("/pkg/a.zip", true), ShouldBeNil)
		So(fs.AddSearchPath("/d", false), ShouldBeNil)

		Convey("The archive content wins", func() {
			So(lo.Must(fs.LoadTextFile("/data/x.txt")), ShouldEqual, "hello")
		})
	})
}

func TestLoadTextFile(t *testing.T) {
	Convey("Given files with unusual content", t, func() {
		fs, host, _ := newTestFS()
		writeFiles(host, "/res", map[string]string{
			"nul.txt":   "before\x00after",
			"empty.txt": "",
		})
		So(fs.AddSearchPath("/res", true), ShouldBeNil)

		Convey("Text stops at the first zero byte", func() {
			text, err := fs.LoadTextFile("/nul.txt")
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "before")

			raw := lo.Must(fs.LoadFile("/nul.txt"))
			So(len(raw), ShouldEqual, len("before\x00after"))
		})

		Convey("An empty file yields empty text without error", func() {
			text, err := fs.LoadTextFile("/empty.txt")
			So(err, ShouldBeNil)
			So(text, ShouldBeEmpty)
		})

		Convey("A missing file yields empty text and a not-found error", func() {
			text, err := fs.LoadTextFile("/missing.txt")
			So(text, ShouldBeEmpty)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("Loading a directory is an I/O error", func() {
			lo.Must0(host.MkdirAll("/res/sub", os.ModePerm))
			_, err := fs.LoadFile("/sub")
			So(errors.Is(err, ErrIO), ShouldBeTrue)
		})
	})
}

func TestListFiles(t *testing.T) {
	Convey("Given a directory contributed to by two mounts", t, func() {
		fs, host, hook := newTestFS()
		writeFiles(host, "/one", map[string]string{"dir/a.txt": "1", "dir/shared.txt": "1", "dir/sub/c.txt": "1"})
		writeZip(host, "/two.zip", map[string]string{"dir/b.txt": "2", "dir/shared.txt": "2"})

		So(fs.AddSearchPath("/one", true), ShouldBeNil)
		So(fs.AddSearchPath("/two.zip", false), ShouldBeNil)

		Convey("The listing is the sorted union of names", func() {
			names, err := fs.ListFiles("/dir")
			So(err, ShouldBeNil)
			So(names, ShouldResemble, []string{"a.txt", "b.txt", "shared.txt", "sub"})
		})

		Convey("The root lists the top-level directory once", func() {
			So(lo.Must(fs.ListFiles("/")), ShouldResemble, []string{"dir"})
		})

		Convey("Files in the write directory are merged in", func() {
			lo.Must0(host.MkdirAll("/w", os.ModePerm))
			So(fs.SetWriteDir("/w"), ShouldBeNil)
			So(fs.SaveTextFile("/dir/new.txt", "n"), ShouldBeNil)
			So(lo.Must(fs.ListFiles("/dir")), ShouldContain, "new.txt")
		})

		Convey("Listing a directory nobody provides fails", func() {
			_, err := fs.ListFiles("/nope")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			So(lastField(hook, "op"), ShouldEqual, OpList)
		})
	})
}

func TestEmptyNamespace(t *testing.T) {
	Convey("Given nothing mounted and no write directory", t, func() {
		fs, _, hook := newTestFS()

		Convey("The root exists and lists empty", func() {
			So(fs.IsDir("/"), ShouldBeTrue)
			So(fs.RealDir("/").IsAbsent(), ShouldBeTrue)

			names, err := fs.ListFiles("/")
			So(err, ShouldBeNil)
			So(names, ShouldBeEmpty)
			So(hook.Entries, ShouldBeEmpty)
		})

		Convey("Other directories are still missing", func() {
			_, err := fs.ListFiles("/data")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestArchives(t *testing.T) {
	files := map[string]string{"data/x.txt": "packed", "readme.md": "# hi"}

	for _, name := range []string{"/a.tar", "/a.tar.gz", "/a.tgz", "/a.tar.zst"} {
		Convey("Given a "+name+" archive", t, func() {
			fs, host, _ := newTestFS()
			if name == "/a.tgz" {
				writeTar(host, "/tmp.tar.gz", files)
				lo.Must0(host.Rename("/tmp.tar.gz", name))
			} else {
				writeTar(host, name, files)
			}

			So(fs.AddSearchPath(name, true), ShouldBeNil)

			Convey("Its files resolve", func() {
				So(lo.Must(fs.LoadTextFile("/data/x.txt")), ShouldEqual, "packed")
				So(lo.Must(fs.LoadTextFile("readme.md")), ShouldEqual, "# hi")
			})

			Convey("Implicit directories are listed", func() {
				So(fs.IsDir("/data"), ShouldBeTrue)
				So(lo.Must(fs.ListFiles("/")), ShouldResemble, []string{"data", "readme.md"})
			})
		})
	}

	Convey("Given a zip archive without directory entries", t, func() {
		fs, host, hook := newTestFS()
		writeFlatZip(host, "/flat.zip", map[string]string{"data/deep/x.txt": "packed", "readme.md": "# hi"})
		So(fs.AddSearchPath("/flat.zip", true), ShouldBeNil)

		Convey("Its files resolve", func() {
			So(lo.Must(fs.LoadTextFile("/data/deep/x.txt")), ShouldEqual, "packed")
		})

		Convey("Implied directories exist and are listed", func() {
			So(fs.Exists("/data"), ShouldBeTrue)
			So(fs.IsDir("/data"), ShouldBeTrue)
			So(fs.IsDir("/data/deep"), ShouldBeTrue)
			So(fs.RealDir("/data").OrEmpty(), ShouldEqual, "/flat.zip")

			So(lo.Must(fs.ListFiles("/")), ShouldResemble, []string{"data", "readme.md"})
			So(lo.Must(fs.ListFiles("/data")), ShouldResemble, []string{"deep"})
			So(lo.Must(fs.ListFiles("/data/deep")), ShouldResemble, []string{"x.txt"})
			So(hook.Entries, ShouldBeEmpty)
		})
	})

	Convey("Given a zip archive holding only a nested file", t, func() {
		fs, host, _ := newTestFS()
		writeFlatZip(host, "/one.zip", map[string]string{"data/x.txt": "hello"})
		So(fs.AddSearchPath("/one.zip", true), ShouldBeNil)

		So(lo.Must(fs.ListFiles("/")), ShouldResemble, []string{"data"})
		So(lo.Must(fs.ListFiles("/data")), ShouldResemble, []string{"x.txt"})
	})

	Convey("Given a zip archive without its extension", t, func() {
		fs, host, _ := newTestFS()
		writeZip(host, "/blob.zip", files)
		lo.Must0(host.Rename("/blob.zip", "/blob.pak"))

		Convey("It is detected by its signature", func() {
			So(fs.AddSearchPath("/blob.pak", true), ShouldBeNil)
			So(lo.Must(fs.LoadTextFile("/data/x.txt")), ShouldEqual, "packed")
		})
	})

	Convey("Given a corrupt archive", t, func() {
		fs, host, hook := newTestFS()
		lo.Must0(afero.WriteFile(host, "/broken.tar.gz", []byte("definitely not gzip"), 0o644))

		Convey("Mounting fails with an I/O error and leaves the search path alone", func() {
			err := fs.AddSearchPath("/broken.tar.gz", true)
			So(errors.Is(err, ErrIO), ShouldBeTrue)
			So(fs.SearchPath(), ShouldBeEmpty)
			So(lastField(hook, "op"), ShouldEqual, OpMount)
			So(lastField(hook, "cause"), ShouldNotBeNil)
		})
	})
}

func TestMountFailures(t *testing.T) {
	Convey("Given one working mount", t, func() {
		fs, host, hook := newTestFS()
		writeFiles(host, "/res", map[string]string{"a.txt": "a"})
		So(fs.AddSearchPath("/res", true), ShouldBeNil)

		Convey("A missing source is not found", func() {
			err := fs.AddSearchPath("/missing", true)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			So(lastField(hook, "path"), ShouldEqual, "/missing")
			So(fs.SearchPath(), ShouldResemble, []string{"/res"})
		})

		Convey("A plain file is unsupported", func() {
			lo.Must0(afero.WriteFile(host, "/plain.txt", []byte("text"), 0o644))
			So(errors.Is(fs.AddSearchPath("/plain.txt", false), ErrUnsupported), ShouldBeTrue)
			So(fs.SearchPath(), ShouldResemble, []string{"/res"})
		})

		Convey("Mounting the same source again is a no-op", func() {
			hook.Reset()
			So(fs.AddSearchPath("/res", false), ShouldBeNil)
			So(fs.AddSearchPath("/res", true), ShouldBeNil)
			So(fs.SearchPath(), ShouldResemble, []string{"/res"})
			So(hook.AllEntries(), ShouldBeEmpty)
		})

		Convey("A mount point may not escape the root", func() {
			writeFiles(host, "/other", map[string]string{"b.txt": "b"})
			So(errors.Is(fs.Mount("/other", "../up", true), ErrInvalidPath), ShouldBeTrue)
		})
	})
}

func TestMountPoints(t *testing.T) {
	Convey("Given a directory mounted under /assets/img", t, func() {
		fs, host, _ := newTestFS()
		writeFiles(host, "/pictures", map[string]string{"cat.png": "meow"})
		writeFiles(host, "/res", map[string]string{"top.txt": "t"})

		So(fs.Mount("/pictures", "/assets/img", true), ShouldBeNil)
		So(fs.AddSearchPath("/res", false), ShouldBeNil)

		Convey("Its files appear under the mount point", func() {
			So(lo.Must(fs.LoadTextFile("/assets/img/cat.png")), ShouldEqual, "meow")
			So(fs.Exists("/cat.png"), ShouldBeFalse)
		})

		Convey("The mount point and its parents are directories", func() {
			So(fs.IsDir("/assets"), ShouldBeTrue)
			So(fs.IsDir("/assets/img"), ShouldBeTrue)
		})

		Convey("Listing a parent shows the next segment", func() {
			So(lo.Must(fs.ListFiles("/")), ShouldResemble, []string{"assets", "top.txt"})
			So(lo.Must(fs.ListFiles("/assets")), ShouldResemble, []string{"img"})
			So(lo.Must(fs.ListFiles("/assets/img")), ShouldResemble, []string{"cat.png"})
		})
	})
}

func TestMkdirAndRemove(t *testing.T) {
	Convey("Given a write directory", t, func() {
		fs, host, _ := newTestFS()
		lo.Must0(host.MkdirAll("/w", os.ModePerm))
		So(fs.SetWriteDir("/w"), ShouldBeNil)

		Convey("Mkdir creates nested directories", func() {
			So(fs.Mkdir("/a/b/c"), ShouldBeNil)
			So(lo.Must(afero.IsDir(host, "/w/a/b/c")), ShouldBeTrue)
			So(fs.IsDir("/a/b"), ShouldBeTrue)
		})

		Convey("Remove deletes a written file", func() {
			So(fs.SaveTextFile("/gone.txt", "x"), ShouldBeNil)
			So(fs.Remove("/gone.txt"), ShouldBeNil)
			So(fs.Exists("/gone.txt"), ShouldBeFalse)
		})

		Convey("Removing a missing file is not found", func() {
			So(errors.Is(fs.Remove("/never.txt"), ErrNotFound), ShouldBeTrue)
		})

		Convey("The root cannot be removed", func() {
			So(errors.Is(fs.Remove("/"), ErrInvalidPath), ShouldBeTrue)
		})
	})
}

func TestInvalidPaths(t *testing.T) {
	Convey("Given paths that climb out of the namespace", t, func() {
		fs, host, hook := newTestFS()
		lo.Must0(host.MkdirAll("/w", os.ModePerm))
		So(fs.SetWriteDir("/w"), ShouldBeNil)

		So(fs.Exists("../etc/passwd"), ShouldBeFalse)

		_, err := fs.LoadFile("/a/../../b")
		So(errors.Is(err, ErrInvalidPath), ShouldBeTrue)
		So(lastField(hook, "path"), ShouldEqual, "/a/../../b")

		So(errors.Is(fs.SaveTextFile("../x", "x"), ErrInvalidPath), ShouldBeTrue)
		_, err = fs.ListFiles("..")
		So(errors.Is(err, ErrInvalidPath), ShouldBeTrue)
	})
}

func TestTerminate(t *testing.T) {
	Convey("Given a populated filesystem", t, func() {
		fs, host, hook := newTestFS()
		writeZip(host, "/a.zip", map[string]string{"x.txt": "x"})
		lo.Must0(host.MkdirAll("/w", os.ModePerm))
		So(fs.AddSearchPath("/a.zip", true), ShouldBeNil)
		So(fs.SetWriteDir("/w"), ShouldBeNil)

		So(fs.Terminate(), ShouldBeNil)

		Convey("State is released", func() {
			So(fs.SearchPath(), ShouldBeEmpty)
			So(fs.WriteDir().IsAbsent(), ShouldBeTrue)
		})

		Convey("Every later operation fails as not initialized", func() {
			_, err := fs.LoadFile("/x.txt")
			So(errors.Is(err, ErrNotInitialized), ShouldBeTrue)
			So(errors.Is(fs.AddSearchPath("/w", true), ErrNotInitialized), ShouldBeTrue)
			So(errors.Is(fs.SetWriteDir("/w"), ErrNotInitialized), ShouldBeTrue)
			So(errors.Is(fs.SaveTextFile("/x.txt", "x"), ErrNotInitialized), ShouldBeTrue)
			So(fs.Exists("/x.txt"), ShouldBeFalse)
			So(fs.RealDir("/x.txt").IsAbsent(), ShouldBeTrue)
			So(hook.LastEntry().Message, ShouldEqual, ErrNotInitialized.Error())
		})

		Convey("Terminating again is a no-op", func() {
			So(fs.Terminate(), ShouldBeNil)
		})
	})
}
