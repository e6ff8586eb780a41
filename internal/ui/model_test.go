package ui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		m := &Model{}

		Convey("Content is unchanged without a notification", func() {
			So(m.View("a\nb"), ShouldEqual, "a\nb")
		})

		Convey("A notification is appended to the last line", func() {
			cmd := m.Update(Notify("Reloaded")())
			So(cmd, ShouldNotBeNil)
			So(m.View("a\nb"), ShouldStartWith, "a\nb  ")
			So(m.View("a\nb"), ShouldContainSubstring, "Reloaded")

			Convey("And hidden by its own clear message only", func() {
				m.Update(NotifyMsg("Opened"))
				m.Update(ClearNotificationMsg{generation: 1})
				So(m.View(""), ShouldContainSubstring, "Opened")

				m.Update(ClearNotificationMsg{generation: 2})
				So(m.View(""), ShouldEqual, "")
			})
		})
	})
}
