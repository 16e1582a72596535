package selection

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSelection(t *testing.T) {
	Convey("Given an empty selection", t, func() {
		var s Selection[string]

		Convey("Nothing is selected", func() {
			_, ok := s.Current()
			So(ok, ShouldBeFalse)
			So(s.Is(""), ShouldBeFalse)
		})

		Convey("Select replaces it unconditionally", func() {
			s.Select("kitchen")
			s.Select("no-such-room")

			key, ok := s.Current()
			So(ok, ShouldBeTrue)
			So(key, ShouldEqual, "no-such-room")
			So(s.Is("kitchen"), ShouldBeFalse)
		})

		Convey("Clear drops the selection", func() {
			s.Select("kitchen")
			s.Clear()

			key, ok := s.Current()
			So(ok, ShouldBeFalse)
			So(key, ShouldEqual, "")
		})
	})

	Convey("Given a selection created with a key", t, func() {
		s := New(42)

		Convey("The key is current", func() {
			key, ok := s.Current()
			So(ok, ShouldBeTrue)
			So(key, ShouldEqual, 42)
			So(s.Is(42), ShouldBeTrue)
		})
	})
}
