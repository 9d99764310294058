package filesystem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBackendSwitch(t *testing.T) {
	Convey("Given the filesystem backend", t, func() {
		Convey("It starts on the operating system filesystem", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("It can be swapped for the in-memory tree", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")

			Convey("Which holds writes without touching disk", func() {
				So(API().WriteFile("scratch.txt", []byte("x"), 0o644), ShouldBeNil)
				exists, err := API().Exists("scratch.txt")
				So(err, ShouldBeNil)
				So(exists, ShouldBeTrue)
			})
		})
	})
}
