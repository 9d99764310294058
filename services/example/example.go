// Package example implements the EXMP integration for the fictional
// example.tv streaming service. It doubles as the reference for writing
// built-in service integrations: every hook the host knows about is
// implemented here, including both Widevine hooks.
package example

import (
	"context"
	"fmt"
	"net/http"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/pflag"
	"github.com/strand-dl/strand/credential"
	"github.com/strand-dl/strand/drm"
	"github.com/strand-dl/strand/internal/cache"
	"github.com/strand-dl/strand/provider"
	"github.com/strand-dl/strand/service"
	"github.com/strand-dl/strand/title"
	"github.com/strand-dl/strand/track"
)

const serviceTag = "EXMP"

func init() {
	provider.Register(&provider.Provider{
		Tag:       serviceTag,
		Aliases:   []string{"example"},
		Geofence:  []string{"us"},
		ShortHelp: "example.tv movies and series",
		Help: `Service code for the example.tv streaming service.

Authorization: credentials
Security: FHD @ L3`,
		SetupFlags: func(flags *pflag.FlagSet) {
			flags.String("vcodec", "h264", "Video codec to request (h264, h265)")
			flags.Bool("no-subs", false, "Skip subtitle tracks")
		},
		New: func(params provider.Params) (service.Service, error) {
			return New(params)
		},
	})
}

// Example integrates example.tv. Search-style TITLE arguments resolve
// through the catalogue search endpoint; direct asset IDs resolve through
// the title endpoint.
type Example struct {
	*service.Base

	title  string
	vcodec string
	noSubs bool

	token string
	cert  []byte
}

func New(params provider.Params) (*Example, error) {
	e := &Example{
		Base:  service.NewBase(serviceTag),
		title: params.Title,
	}

	if params.Flags != nil {
		e.vcodec = lo.Must(params.Flags.GetString("vcodec"))
		e.noSubs = lo.Must(params.Flags.GetBool("no-subs"))
	}

	if e.vcodec == "" {
		e.vcodec = "h264"
	}

	switch e.vcodec {
	case "h264", "h265":
	default:
		return nil, fmt.Errorf("unsupported vcodec %q", e.vcodec)
	}

	return e, nil
}

// ConfigureSession adds the static API headers every example.tv endpoint
// expects.
func (e *Example) ConfigureSession(session *http.Client) *http.Client {
	session.Transport = &apiTransport{next: session.Transport}
	return session
}

// Authenticate exchanges the configured credential for an API token.
// example.tv has no anonymous tier, so a missing credential is an
// environment condition rather than a login failure.
func (e *Example) Authenticate(ctx context.Context, cookies []*http.Cookie, cred mo.Option[credential.Credential]) error {
	if err := e.Base.Authenticate(ctx, cookies, cred); err != nil {
		return err
	}

	c, err := e.RequireCredential()
	if err != nil {
		return err
	}

	cacheKey := e.CacheKey("token")
	if cache.Read(cacheKey, &e.token) && e.token != "" {
		e.Log.Debug("reusing cached token")
		return nil
	}

	token, err := e.login(ctx, c)
	if err != nil {
		return err
	}

	e.token = token
	if err := cache.Write(cacheKey, e.token); err != nil {
		e.Log.Warnf("could not cache token: %s", err)
	}

	return nil
}

func (e *Example) GetTitles(ctx context.Context) (*title.Titles, error) {
	results, err := e.search(ctx, e.title)
	if err != nil {
		return nil, err
	}

	titles := &title.Titles{}
	for _, result := range results {
		switch result.Type {
		case assetMovie:
			titles.Movies = append(titles.Movies, &title.Movie{
				ID:          result.ID,
				Name:        result.Name,
				Year:        result.Year,
				Language:    result.Language,
				Description: result.Synopsis,
			})
		case assetSeries:
			episodes, err := e.episodes(ctx, result.ID)
			if err != nil {
				return nil, err
			}

			for _, ep := range episodes {
				titles.Series = append(titles.Series, &title.Episode{
					ID:       ep.ID,
					Series:   result.Name,
					Season:   ep.Season,
					Number:   ep.Number,
					Name:     ep.Name,
					Year:     result.Year,
					Language: result.Language,
				})
			}
		default:
			e.Log.Debugf("skipping unknown asset type %q", result.Type)
		}
	}

	return titles, nil
}

func (e *Example) GetTracks(ctx context.Context, t title.Title) (*track.Tracks, error) {
	manifest, err := e.manifest(ctx, t.TitleID())
	if err != nil {
		return nil, err
	}

	tracks := &track.Tracks{}
	for _, m := range manifest.Tracks {
		kind, ok := trackKinds[m.Kind]
		if !ok {
			e.Log.Debugf("skipping unknown track kind %q", m.Kind)
			continue
		}

		if kind == track.Video && e.vcodec != "" && m.Codec != e.vcodec {
			continue
		}
		if kind == track.Subtitle && e.noSubs {
			continue
		}

		tr := &track.Track{
			ID:       m.ID,
			Kind:     kind,
			URL:      m.URL,
			Codec:    m.Codec,
			Language: m.Language,
			Bitrate:  m.Bitrate,
			Width:    m.Width,
			Height:   m.Height,
		}

		if m.PSSH != "" {
			tr.DRM = &drm.Widevine{PSSH: m.PSSH, KID: m.KID}
			if err := tr.DRM.Validate(); err != nil {
				return nil, fmt.Errorf("track %s: %w", m.ID, err)
			}
		}

		tracks.Add(tr)
	}

	return tracks, nil
}

func (e *Example) GetChapters(ctx context.Context, t title.Title) (track.Chapters, error) {
	markers, err := e.chapters(ctx, t.TitleID())
	if err != nil {
		return nil, err
	}

	chapters := make(track.Chapters, 0, len(markers))
	for _, m := range markers {
		chapters = append(chapters, &track.Chapter{
			Name:  m.Name,
			Start: m.Start(),
		})
	}

	chapters.Sort()
	return chapters, nil
}

// GetWidevineServiceCertificate fetches the service certificate once and
// serves repeats from memory within the run. example.tv uses its own
// certificate rather than the common Google one.
func (e *Example) GetWidevineServiceCertificate(ctx context.Context, _ *service.ChallengeRequest) ([]byte, error) {
	if e.cert != nil {
		return e.cert, nil
	}

	cert, err := e.certificate(ctx)
	if err != nil {
		return nil, err
	}

	e.cert = cert
	return cert, nil
}

// GetWidevineLicense exchanges the challenge at the license endpoint.
// The endpoint responds with base64; the exchange helper normalizes it.
func (e *Example) GetWidevineLicense(ctx context.Context, req *service.ChallengeRequest) ([]byte, error) {
	headers := map[string]string{"Authorization": "Bearer " + e.token}
	return drm.Exchange(ctx, e.Session, apiBase+"/drm/license", req.Challenge, headers)
}

var trackKinds = map[string]track.Kind{
	"video":    track.Video,
	"audio":    track.Audio,
	"subtitle": track.Subtitle,
}

// apiTransport injects the static example.tv API headers.
type apiTransport struct {
	next http.RoundTripper
}

func (t *apiTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-Api-Version", apiVersion)
	req.Header.Set("Accept", "application/json")

	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}
	return next.RoundTrip(req)
}
