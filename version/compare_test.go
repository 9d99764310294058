package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Compare", t, func() {
		Convey("Should order versions semantically", func() {
			c, err := Compare("1.2.3", "1.2.2")
			So(err, ShouldBeNil)
			So(c, ShouldEqual, 1)

			c, err = Compare("v0.9.0", "1.0.0")
			So(err, ShouldBeNil)
			So(c, ShouldEqual, -1)

			c, err = Compare("2.0.0", "v2.0.0")
			So(err, ShouldBeNil)
			So(c, ShouldEqual, 0)
		})

		Convey("Should reject malformed versions", func() {
			_, err := Compare("latest", "1.0.0")
			So(err, ShouldNotBeNil)
		})
	})
}
