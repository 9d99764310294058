package title

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMovie(t *testing.T) {
	Convey("Given a movie", t, func() {
		m := &Movie{ID: "m1", Name: "Some: Film?", Year: 2017}

		Convey("String includes the year", func() {
			So(m.String(), ShouldEqual, "Some: Film? (2017)")
		})

		Convey("String omits a zero year", func() {
			m.Year = 0
			So(m.String(), ShouldEqual, "Some: Film?")
		})

		Convey("FileName is filesystem safe", func() {
			So(m.FileName(), ShouldEqual, "Some_Film_(2017)")
		})
	})
}

func TestEpisode(t *testing.T) {
	Convey("Given an episode", t, func() {
		e := &Episode{ID: "e1", Series: "Some Show", Season: 1, Number: 5, Name: "Pilot"}

		Convey("String uses SxxExx formatting", func() {
			So(e.String(), ShouldEqual, "Some Show S01E05 - Pilot")
		})

		Convey("String omits an empty episode name", func() {
			e.Name = ""
			So(e.String(), ShouldEqual, "Some Show S01E05")
		})
	})
}

func TestSeries(t *testing.T) {
	Convey("Given a series listing", t, func() {
		s := Series{
			{Series: "Some Show", Season: 1, Number: 1},
			{Series: "Some Show", Season: 1, Number: 2},
			{Series: "Some Show", Season: 2, Number: 1},
		}

		Convey("Seasons returns distinct season numbers", func() {
			So(s.Seasons(), ShouldResemble, []int{1, 2})
		})

		Convey("Season filters the listing", func() {
			So(s.Season(1), ShouldHaveLength, 2)
		})

		Convey("String summarizes the listing", func() {
			So(s.String(), ShouldEqual, "Some Show: 2 seasons, 3 episodes")
		})
	})
}

func TestTitles(t *testing.T) {
	Convey("Given a titles set", t, func() {
		set := &Titles{
			Movies: Movies{{ID: "m1", Name: "A"}},
			Series: Series{{ID: "e1", Series: "B", Season: 1, Number: 1}},
		}

		Convey("All flattens movies before episodes", func() {
			all := set.All()
			So(all, ShouldHaveLength, 2)
			So(all[0].TitleID(), ShouldEqual, "m1")
			So(all[1].TitleID(), ShouldEqual, "e1")
		})

		Convey("Empty reports correctly", func() {
			So(set.Empty(), ShouldBeFalse)
			So((&Titles{}).Empty(), ShouldBeTrue)
		})
	})
}
