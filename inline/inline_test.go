package inline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/strand-dl/strand/service"
	"github.com/strand-dl/strand/title"
	"github.com/strand-dl/strand/track"
)

type stubService struct{}

func (stubService) Tag() string {
	return "STUB"
}

func (stubService) GetTitles(_ context.Context) (*title.Titles, error) {
	return &title.Titles{
		Series: title.Series{
			{ID: "e-1", Series: "Some Show", Season: 1, Number: 1},
			{ID: "e-2", Series: "Some Show", Season: 1, Number: 2},
			{ID: "e-3", Series: "Some Show", Season: 2, Number: 1},
		},
	}, nil
}

func (stubService) GetTracks(_ context.Context, t title.Title) (*track.Tracks, error) {
	tracks := &track.Tracks{}
	tracks.Add(&track.Track{
		Kind: track.Video,
		URL:  "https://example.tv/" + t.TitleID() + ".mpd",
	})
	return tracks, nil
}

func (stubService) GetChapters(_ context.Context, _ title.Title) (track.Chapters, error) {
	return track.Chapters{}, nil
}

func (stubService) GetWidevineServiceCertificate(_ context.Context, _ *service.ChallengeRequest) ([]byte, error) {
	return nil, nil
}

func (stubService) GetWidevineLicense(_ context.Context, _ *service.ChallengeRequest) ([]byte, error) {
	return nil, nil
}

func TestWriteJson(t *testing.T) {
	Convey("writeJson", t, func() {
		Convey("Should produce valid JSON for an empty result", func() {
			var buf bytes.Buffer
			opts := &Options{Query: "test", Json: true}
			err := writeJson(&buf, nil, opts)
			So(err, ShouldBeNil)

			var output struct {
				Query  string            `json:"query"`
				Result []json.RawMessage `json:"result"`
			}
			err = json.Unmarshal(buf.Bytes(), &output)
			So(err, ShouldBeNil)
			So(output.Query, ShouldEqual, "test")
			So(output.Result, ShouldHaveLength, 0)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a non-interactive run", t, func() {
		ctx := context.Background()

		Convey("A season filter should narrow the series", func() {
			filter, err := ParseEpisodesFilter("s1")
			So(err, ShouldBeNil)

			var buf bytes.Buffer
			err = Run(ctx, &Options{
				Out:            &buf,
				Service:        stubService{},
				Query:          "some show",
				EpisodesFilter: mo.Some(filter),
			})
			So(err, ShouldBeNil)

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			So(lines, ShouldHaveLength, 2)
			So(lines[0], ShouldContainSubstring, "S01E01")
		})

		Convey("A picker should narrow down to one title with its tracks", func() {
			picker, err := ParseTitlePicker("first", "")
			So(err, ShouldBeNil)

			var buf bytes.Buffer
			err = Run(ctx, &Options{
				Out:         &buf,
				Service:     stubService{},
				Query:       "some show",
				TitlePicker: mo.Some(picker),
				Tracks:      true,
			})
			So(err, ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "https://example.tv/e-1.mpd")
		})

		Convey("Json output should carry the query and entries", func() {
			var buf bytes.Buffer
			err := Run(ctx, &Options{
				Out:     &buf,
				Service: stubService{},
				Query:   "some show",
				Json:    true,
			})
			So(err, ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, `"query":"some show"`)
			So(buf.String(), ShouldContainSubstring, `"service":"STUB"`)
		})
	})
}

func TestParseEpisodesFilter(t *testing.T) {
	Convey("ParseEpisodesFilter", t, func() {
		episodes := title.Series{
			{Series: "Some Show", Season: 1, Number: 1, Name: "Pilot"},
			{Series: "Some Show", Season: 1, Number: 2},
			{Series: "Some Show", Season: 1, Number: 3},
		}

		Convey("Ranges select by episode number", func() {
			filter, err := ParseEpisodesFilter("2-3")
			So(err, ShouldBeNil)

			filtered, err := filter(episodes)
			So(err, ShouldBeNil)
			So(filtered, ShouldHaveLength, 2)
			So(filtered[0].Number, ShouldEqual, 2)
		})

		Convey("Substrings match against the display form", func() {
			filter, err := ParseEpisodesFilter("@pilot@")
			So(err, ShouldBeNil)

			filtered, err := filter(episodes)
			So(err, ShouldBeNil)
			So(filtered, ShouldHaveLength, 1)
		})

		Convey("Garbage is rejected", func() {
			_, err := ParseEpisodesFilter("not a filter")
			So(err, ShouldNotBeNil)
		})
	})
}
