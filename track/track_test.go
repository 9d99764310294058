package track

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/strand-dl/strand/drm"
)

func TestTrackString(t *testing.T) {
	Convey("Track String", t, func() {
		tr := &Track{
			Kind:     Video,
			Codec:    "h264",
			Width:    1920,
			Height:   1080,
			Bitrate:  8_000_000,
			Language: "en",
			DRM:      &drm.Widevine{PSSH: "cHNzaA=="},
		}
		So(tr.String(), ShouldEqual, "VID | h264 1920x1080 @ 8000 kb/s | en | drm")
	})
}

func TestTracksAdd(t *testing.T) {
	Convey("Given a tracks container", t, func() {
		var tracks Tracks

		Convey("Tracks land in their kind bucket", func() {
			tracks.Add(
				&Track{ID: "v1", Kind: Video},
				&Track{ID: "a1", Kind: Audio},
				&Track{ID: "s1", Kind: Subtitle},
			)
			So(tracks.Videos, ShouldHaveLength, 1)
			So(tracks.Audios, ShouldHaveLength, 1)
			So(tracks.Subtitles, ShouldHaveLength, 1)
			So(tracks.Len(), ShouldEqual, 3)
		})

		Convey("Duplicate IDs are dropped", func() {
			tracks.Add(&Track{ID: "v1", Kind: Video}, &Track{ID: "v1", Kind: Video})
			So(tracks.Videos, ShouldHaveLength, 1)
		})

		Convey("Tracks without IDs deduplicate on URL", func() {
			tracks.Add(
				&Track{Kind: Video, URL: "https://cdn/a.mpd"},
				&Track{Kind: Video, URL: "https://cdn/a.mpd"},
				&Track{Kind: Video, URL: "https://cdn/b.mpd"},
			)
			So(tracks.Videos, ShouldHaveLength, 2)
		})
	})
}

func TestSelectVideo(t *testing.T) {
	Convey("Given quality-ordered videos", t, func() {
		var tracks Tracks
		tracks.Add(
			&Track{ID: "v-576", Kind: Video, Height: 576},
			&Track{ID: "v-2160", Kind: Video, Height: 2160},
			&Track{ID: "v-1080", Kind: Video, Height: 1080},
		)

		Convey("The best at or below the preference wins", func() {
			v, ok := tracks.SelectVideo(1080)
			So(ok, ShouldBeTrue)
			So(v.ID, ShouldEqual, "v-1080")
		})

		Convey("The lowest is the fallback when everything exceeds the preference", func() {
			v, ok := tracks.SelectVideo(480)
			So(ok, ShouldBeTrue)
			So(v.ID, ShouldEqual, "v-576")
		})

		Convey("No videos yields no selection", func() {
			empty := &Tracks{}
			_, ok := empty.SelectVideo(1080)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestByLanguage(t *testing.T) {
	Convey("ByLanguage", t, func() {
		audios := []*Track{
			{ID: "a-en", Kind: Audio, Language: "en-US"},
			{ID: "a-ja", Kind: Audio, Language: "ja"},
		}

		Convey("Matches by prefix", func() {
			got := ByLanguage(audios, "en")
			So(got, ShouldHaveLength, 1)
			So(got[0].ID, ShouldEqual, "a-en")
		})

		Convey("Keeps everything when nothing matches", func() {
			So(ByLanguage(audios, "de"), ShouldHaveLength, 2)
		})
	})
}

func TestChapters(t *testing.T) {
	Convey("Given a chapter listing", t, func() {
		chapters := Chapters{
			{Name: "", Start: 0},
			{Name: "Intro", Start: 90 * time.Second},
			{Name: "", Start: 45 * time.Minute},
		}

		Convey("Timestamps render as HH:MM:SS.mmm", func() {
			So(chapters[1].Timestamp(), ShouldEqual, "00:01:30.000")
		})

		Convey("Validation passes for ordered chapters", func() {
			So(chapters.Validate(), ShouldBeNil)
		})

		Convey("Validation rejects a non-zero first chapter", func() {
			bad := Chapters{{Name: "x", Start: time.Second}}
			So(bad.Validate(), ShouldNotBeNil)
		})

		Convey("Validation rejects non-increasing offsets", func() {
			bad := Chapters{
				{Start: 0},
				{Start: 10 * time.Second},
				{Start: 5 * time.Second},
			}
			So(bad.Validate(), ShouldNotBeNil)
		})

		Convey("Numbered names unnamed chapters", func() {
			chapters.Numbered()
			So(chapters[0].Name, ShouldEqual, "Chapter 01")
			So(chapters[1].Name, ShouldEqual, "Intro")
			So(chapters[2].Name, ShouldEqual, "Chapter 03")
		})
	})
}
