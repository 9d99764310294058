package custom

import (
	"encoding/base64"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/strand-dl/strand/title"
	"github.com/strand-dl/strand/track"
	lua "github.com/yuin/gopher-lua"
)

func TestTitleFromTable(t *testing.T) {
	Convey("titleFromTable", t, func() {
		L := lua.NewState()
		defer L.Close()

		Convey("Should extract a movie from a valid Lua table", func() {
			tbl := L.NewTable()
			tbl.RawSetString("id", lua.LString("m-1"))
			tbl.RawSetString("name", lua.LString("Some Film"))
			tbl.RawSetString("year", lua.LNumber(2017))

			converted, err := titleFromTable(tbl)
			So(err, ShouldBeNil)

			movie, ok := converted.(*title.Movie)
			So(ok, ShouldBeTrue)
			So(movie.Name, ShouldEqual, "Some Film")
			So(movie.Year, ShouldEqual, 2017)
		})

		Convey("Should extract an episode when a series is named", func() {
			tbl := L.NewTable()
			tbl.RawSetString("name", lua.LString("Pilot"))
			tbl.RawSetString("series", lua.LString("Some Show"))
			tbl.RawSetString("season", lua.LNumber(1))
			tbl.RawSetString("number", lua.LNumber(5))

			converted, err := titleFromTable(tbl)
			So(err, ShouldBeNil)

			episode, ok := converted.(*title.Episode)
			So(ok, ShouldBeTrue)
			So(episode.Series, ShouldEqual, "Some Show")
			So(episode.Season, ShouldEqual, 1)
			So(episode.Number, ShouldEqual, 5)
			So(episode.Name, ShouldEqual, "Pilot")
		})

		Convey("Should carry the private data table", func() {
			data := L.NewTable()
			data.RawSetString("playback_id", lua.LString("abc"))

			tbl := L.NewTable()
			tbl.RawSetString("name", lua.LString("Some Film"))
			tbl.RawSetString("data", data)

			converted, err := titleFromTable(tbl)
			So(err, ShouldBeNil)
			So(converted.(*title.Movie).Data["playback_id"], ShouldEqual, "abc")
		})

		Convey("Should fail when required field 'name' is missing", func() {
			tbl := L.NewTable()
			tbl.RawSetString("id", lua.LString("m-1"))

			_, err := titleFromTable(tbl)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestTrackFromTable(t *testing.T) {
	Convey("trackFromTable", t, func() {
		L := lua.NewState()
		defer L.Close()

		Convey("Should extract a video track with URL", func() {
			tbl := L.NewTable()
			tbl.RawSetString("url", lua.LString("https://example.com/stream.mpd"))
			tbl.RawSetString("kind", lua.LString("video"))
			tbl.RawSetString("codec", lua.LString("h264"))
			tbl.RawSetString("height", lua.LNumber(1080))

			tr, err := trackFromTable(tbl)
			So(err, ShouldBeNil)
			So(tr.Kind, ShouldEqual, track.Video)
			So(tr.URL, ShouldEqual, "https://example.com/stream.mpd")
			So(tr.Height, ShouldEqual, 1080)
		})

		Convey("Should extract headers from Lua table", func() {
			tbl := L.NewTable()
			tbl.RawSetString("url", lua.LString("https://example.com/stream.mpd"))

			headers := L.NewTable()
			headers.RawSetString("Referer", lua.LString("https://example.tv"))
			tbl.RawSetString("headers", headers)

			tr, err := trackFromTable(tbl)
			So(err, ShouldBeNil)
			So(tr.Headers["Referer"], ShouldEqual, "https://example.tv")
		})

		Convey("Should attach a validated content protection descriptor", func() {
			pssh := base64.StdEncoding.EncodeToString([]byte("pssh-box"))

			tbl := L.NewTable()
			tbl.RawSetString("url", lua.LString("https://example.com/stream.mpd"))
			tbl.RawSetString("pssh", lua.LString(pssh))

			tr, err := trackFromTable(tbl)
			So(err, ShouldBeNil)
			So(tr.Protected(), ShouldBeTrue)
		})

		Convey("Should reject a malformed pssh", func() {
			tbl := L.NewTable()
			tbl.RawSetString("url", lua.LString("https://example.com/stream.mpd"))
			tbl.RawSetString("pssh", lua.LString("not base64!!"))

			_, err := trackFromTable(tbl)
			So(err, ShouldNotBeNil)
		})

		Convey("Should fail when URL is missing", func() {
			tbl := L.NewTable()
			tbl.RawSetString("kind", lua.LString("audio"))

			_, err := trackFromTable(tbl)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestChapterFromTable(t *testing.T) {
	Convey("chapterFromTable", t, func() {
		L := lua.NewState()
		defer L.Close()

		Convey("Should convert fractional seconds to a duration", func() {
			tbl := L.NewTable()
			tbl.RawSetString("name", lua.LString("Intro"))
			tbl.RawSetString("start", lua.LNumber(90.5))

			ch, err := chapterFromTable(tbl)
			So(err, ShouldBeNil)
			So(ch.Name, ShouldEqual, "Intro")
			So(ch.Start, ShouldEqual, 90500*time.Millisecond)
		})

		Convey("Should fail without a numeric start", func() {
			tbl := L.NewTable()
			tbl.RawSetString("name", lua.LString("Intro"))

			_, err := chapterFromTable(tbl)
			So(err, ShouldNotBeNil)
		})
	})
}
