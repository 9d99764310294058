package history

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/strand-dl/strand/filesystem"
	"github.com/strand-dl/strand/title"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given an acquired title", t, func() {
		movie := &title.Movie{
			ID:   "m-1",
			Name: "Some Film",
			Year: 2017,
		}

		Convey("When saving the acquisition", func() {
			err := Save("EXMP", movie, 3, true)
			Convey("Then the error should be nil", func() {
				So(err, ShouldBeNil)

				Convey("And the acquisition should be saved", func() {
					records, err := Get()
					So(err, ShouldBeNil)
					So(len(records), ShouldBeGreaterThan, 0)

					record := records[fmt.Sprintf("%s (EXMP)", movie.String())]
					So(record, ShouldNotBeNil)
					So(record.TitleName, ShouldEqual, "Some Film")
					So(record.Tracks, ShouldEqual, 3)
					So(record.Protected, ShouldBeTrue)
				})
			})
		})

		Convey("When removing a saved acquisition", func() {
			So(Save("EXMP", movie, 3, true), ShouldBeNil)

			records, err := Get()
			So(err, ShouldBeNil)
			record := records[fmt.Sprintf("%s (EXMP)", movie.String())]
			So(record, ShouldNotBeNil)

			So(Remove(record), ShouldBeNil)

			Convey("Then the record should be gone", func() {
				records, err := Get()
				So(err, ShouldBeNil)
				So(records[fmt.Sprintf("%s (EXMP)", movie.String())], ShouldBeNil)
			})
		})

		Convey("When re-saving the same title", func() {
			So(Save("EXMP", movie, 2, false), ShouldBeNil)
			So(Save("EXMP", movie, 4, true), ShouldBeNil)

			Convey("Then only one record should remain", func() {
				records, err := Get()
				So(err, ShouldBeNil)

				record := records[fmt.Sprintf("%s (EXMP)", movie.String())]
				So(record, ShouldNotBeNil)
				So(record.Tracks, ShouldEqual, 4)
			})
		})
	})
}
