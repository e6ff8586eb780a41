package where

import (
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/vres-cli/vres/filesystem"
)

func init() {
	// Use in-memory filesystem for tests to avoid creating real directories
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Cache()", func() {
			path := Cache()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Logs()", func() {
			path := Logs()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Data()", func() {
			path := Data()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Mounts() lives in the config directory", func() {
			So(filepath.Dir(Mounts()), ShouldEqual, Config())
		})
	})

	Convey("Given overriding environment variables", t, func() {
		t.Setenv(EnvConfigPath, "/custom/config")
		t.Setenv(EnvDataPath, "/custom/data")

		So(Config(), ShouldEqual, "/custom/config")
		So(Data(), ShouldEqual, "/custom/data")
		So(lo.Must(filesystem.API().IsDir("/custom/data")), ShouldBeTrue)
	})
}
