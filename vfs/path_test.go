package vfs

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClean(t *testing.T) {
	Convey("Clean", t, func() {
		Convey("Should make paths absolute", func() {
			p, err := Clean("data/x.txt")
			So(err, ShouldBeNil)
			So(p, ShouldEqual, "/data/x.txt")
		})

		Convey("Should collapse duplicate separators and dots", func() {
			p, err := Clean("//data/./x.txt/")
			So(err, ShouldBeNil)
			So(p, ShouldEqual, "/data/x.txt")
		})

		Convey("Should treat backslashes as separators", func() {
			p, err := Clean(`data\sub\x.txt`)
			So(err, ShouldBeNil)
			So(p, ShouldEqual, "/data/sub/x.txt")
		})

		Convey("Should map empty input to the root", func() {
			p, err := Clean("")
			So(err, ShouldBeNil)
			So(p, ShouldEqual, Root)
		})

		Convey("Should reject parent segments", func() {
			_, err := Clean("data/../../etc/passwd")
			So(err, ShouldEqual, ErrInvalidPath)
		})
	})
}

func TestRelativeTo(t *testing.T) {
	Convey("relativeTo", t, func() {
		Convey("Root mounts cover everything", func() {
			rel, ok := relativeTo("/a/b", Root)
			So(ok, ShouldBeTrue)
			So(rel, ShouldEqual, "/a/b")
		})

		Convey("Nested mount points strip their prefix", func() {
			rel, ok := relativeTo("/assets/img/a.png", "/assets")
			So(ok, ShouldBeTrue)
			So(rel, ShouldEqual, "/img/a.png")

			rel, ok = relativeTo("/assets", "/assets")
			So(ok, ShouldBeTrue)
			So(rel, ShouldEqual, Root)
		})

		Convey("Sibling prefixes do not match", func() {
			_, ok := relativeTo("/assetsx/a.png", "/assets")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestChildTowards(t *testing.T) {
	Convey("childTowards", t, func() {
		name, ok := childTowards(Root, "/a/b/c")
		So(ok, ShouldBeTrue)
		So(name, ShouldEqual, "a")

		name, ok = childTowards("/a", "/a/b/c")
		So(ok, ShouldBeTrue)
		So(name, ShouldEqual, "b")

		_, ok = childTowards("/a/b/c", "/a/b/c")
		So(ok, ShouldBeFalse)

		_, ok = childTowards("/x", "/a/b")
		So(ok, ShouldBeFalse)
	})
}
