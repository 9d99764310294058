package example

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/strand-dl/strand/credential"
	"github.com/strand-dl/strand/drm"
	"github.com/strand-dl/strand/filesystem"
	"github.com/strand-dl/strand/key"
	"github.com/strand-dl/strand/provider"
	"github.com/strand-dl/strand/service"
	"github.com/strand-dl/strand/title"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.CacheEnable, false)
}

// newTestServer fakes the example.tv API surface the integration touches.
func newTestServer() *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		if body.Username != "user@example.tv" || body.Password != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "bad credentials"})
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
	})

	requireToken := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return false
		}
		return true
	}

	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}

		if r.URL.Query().Get("q") == "some film" {
			_, _ = io.WriteString(w, `{"results":[{"id":"m1","type":"movie","name":"Some Film","year":2017,"language":"en"}]}`)
			return
		}

		_, _ = io.WriteString(w, `{"results":[{"id":"sh1","type":"series","name":"Some Show","year":2020,"language":"en"}]}`)
	})

	mux.HandleFunc("/titles/sh1/episodes", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		_, _ = io.WriteString(w, `{"episodes":[
			{"id":"e1","season":1,"number":1,"name":"Pilot"},
			{"id":"e2","season":1,"number":2,"name":"Second"}
		]}`)
	})

	mux.HandleFunc("/titles/m1/manifest", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		pssh := base64.StdEncoding.EncodeToString([]byte("pssh-box"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"tracks": []map[string]any{
				{"id": "v1", "kind": "video", "url": "https://cdn.example.tv/v1.mpd", "codec": "h264", "bitrate": 5000000, "width": 1920, "height": 1080, "pssh": pssh},
				{"id": "v2", "kind": "video", "url": "https://cdn.example.tv/v2.mpd", "codec": "h265", "bitrate": 4000000, "width": 1920, "height": 1080, "pssh": pssh},
				{"id": "a1", "kind": "audio", "url": "https://cdn.example.tv/a1.m4a", "codec": "aac", "language": "en"},
				{"id": "s1", "kind": "subtitle", "url": "https://cdn.example.tv/s1.vtt", "codec": "vtt", "language": "en"},
			},
		})
	})

	mux.HandleFunc("/titles/m1/chapters", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		_, _ = io.WriteString(w, `{"chapters":[
			{"name":"Credits","start_ms":5400000},
			{"name":"Intro","start_ms":0}
		]}`)
	})

	mux.HandleFunc("/drm/certificate", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		_, _ = io.WriteString(w, base64.StdEncoding.EncodeToString([]byte("service-cert")))
	})

	mux.HandleFunc("/drm/license", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		challenge, _ := io.ReadAll(r.Body)
		_, _ = io.WriteString(w, base64.StdEncoding.EncodeToString(append([]byte("license:"), challenge...)))
	})

	return httptest.NewServer(mux)
}

// newAuthenticated builds an integration pointed at the fake API and logs in.
func newAuthenticated(t *testing.T, query string) *Example {
	t.Helper()

	server := newTestServer()
	t.Cleanup(server.Close)
	apiBase = server.URL

	e, err := New(provider.Params{Title: query})
	if err != nil {
		t.Fatal(err)
	}
	service.ApplySessionCustomization(e)

	cred := mo.Some(credential.Credential{Username: "user@example.tv", Password: "hunter2"})
	if err := e.Authenticate(context.Background(), nil, cred); err != nil {
		t.Fatal(err)
	}

	return e
}

func TestProviderConstruct(t *testing.T) {
	Convey("The registered provider constructs the service on its own flag set", t, func() {
		p, ok := provider.Get("EXMP")
		So(ok, ShouldBeTrue)

		var svc service.Service
		So(func() {
			var err error
			svc, err = p.Construct("some film")
			So(err, ShouldBeNil)
		}, ShouldNotPanic)

		e, ok := svc.(*Example)
		So(ok, ShouldBeTrue)
		So(e.vcodec, ShouldEqual, "h264")
		So(e.noSubs, ShouldBeFalse)
	})
}

func TestAuthenticate(t *testing.T) {
	Convey("Given the example integration", t, func() {
		server := newTestServer()
		defer server.Close()
		apiBase = server.URL

		e, err := New(provider.Params{Title: "some film"})
		So(err, ShouldBeNil)
		service.ApplySessionCustomization(e)

		Convey("A missing credential is an environment condition", func() {
			err := e.Authenticate(context.Background(), nil, mo.None[credential.Credential]())

			var envErr *service.EnvironmentError
			So(errors.As(err, &envErr), ShouldBeTrue)
			So(envErr.Missing, ShouldEqual, "credentials")
			So(envErr.Remedy, ShouldNotBeEmpty)
		})

		Convey("A wrong credential fails with the API message", func() {
			cred := mo.Some(credential.Credential{Username: "user@example.tv", Password: "wrong"})
			err := e.Authenticate(context.Background(), nil, cred)

			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "bad credentials")
		})

		Convey("A valid credential yields a token", func() {
			cred := mo.Some(credential.Credential{Username: "user@example.tv", Password: "hunter2"})
			So(e.Authenticate(context.Background(), nil, cred), ShouldBeNil)
			So(e.token, ShouldEqual, "tok-123")
		})
	})
}

func TestGetTitles(t *testing.T) {
	Convey("Movie queries resolve to a movie listing", t, func() {
		e := newAuthenticated(t, "some film")

		titles, err := e.GetTitles(context.Background())
		So(err, ShouldBeNil)
		So(titles.Movies, ShouldHaveLength, 1)
		So(titles.Movies[0].String(), ShouldEqual, "Some Film (2017)")
		So(titles.Series, ShouldBeEmpty)
	})

	Convey("Series queries expand into episodes", t, func() {
		e := newAuthenticated(t, "some show")

		titles, err := e.GetTitles(context.Background())
		So(err, ShouldBeNil)
		So(titles.Movies, ShouldBeEmpty)
		So(titles.Series, ShouldHaveLength, 2)
		So(titles.Series[0].Series, ShouldEqual, "Some Show")
		So(titles.Series[1].Number, ShouldEqual, 2)
	})
}

func TestGetTracks(t *testing.T) {
	Convey("Given a resolved movie", t, func() {
		movie := &title.Movie{ID: "m1", Name: "Some Film", Year: 2017}

		Convey("Tracks carry codec, quality and protection", func() {
			e := newAuthenticated(t, "some film")

			tracks, err := e.GetTracks(context.Background(), movie)
			So(err, ShouldBeNil)
			So(tracks.Videos, ShouldHaveLength, 1)
			So(tracks.Videos[0].Codec, ShouldEqual, "h264")
			So(tracks.Videos[0].Protected(), ShouldBeTrue)
			So(tracks.Audios, ShouldHaveLength, 1)
			So(tracks.Subtitles, ShouldHaveLength, 1)
		})

		Convey("Subtitles are dropped when disabled", func() {
			e := newAuthenticated(t, "some film")
			e.noSubs = true

			tracks, err := e.GetTracks(context.Background(), movie)
			So(err, ShouldBeNil)
			So(tracks.Subtitles, ShouldBeEmpty)
		})
	})
}

func TestGetChapters(t *testing.T) {
	Convey("Chapters come back sorted by start offset", t, func() {
		e := newAuthenticated(t, "some film")

		chapters, err := e.GetChapters(context.Background(), &title.Movie{ID: "m1", Name: "Some Film"})
		So(err, ShouldBeNil)
		So(chapters, ShouldHaveLength, 2)
		So(chapters[0].Name, ShouldEqual, "Intro")
		So(chapters[1].Name, ShouldEqual, "Credits")
	})
}

func TestWidevineHooks(t *testing.T) {
	Convey("Given an authenticated integration", t, func() {
		e := newAuthenticated(t, "some film")

		Convey("The certificate hook returns the payload as served", func() {
			payload, err := e.GetWidevineServiceCertificate(context.Background(), &service.ChallengeRequest{})
			So(err, ShouldBeNil)
			So(string(payload), ShouldEqual, base64.StdEncoding.EncodeToString([]byte("service-cert")))

			Convey("And normalization is left to the host", func() {
				cert, err := drm.NormalizePayload(payload)
				So(err, ShouldBeNil)
				So(string(cert), ShouldEqual, "service-cert")
			})

			Convey("And repeats are served from memory", func() {
				again, err := e.GetWidevineServiceCertificate(context.Background(), &service.ChallengeRequest{})
				So(err, ShouldBeNil)
				So(again, ShouldResemble, payload)
			})
		})

		Convey("The license exchange normalizes the base64 response", func() {
			req := &service.ChallengeRequest{Challenge: []byte{0x08, 0x04}}
			license, err := e.GetWidevineLicense(context.Background(), req)
			So(err, ShouldBeNil)
			So(string(license), ShouldEqual, "license:\x08\x04")
		})
	})
}
