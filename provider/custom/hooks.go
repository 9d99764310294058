// Package custom provides a bridge between the Go core and Lua-based service scripts.
package custom

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/samber/mo"
	"github.com/strand-dl/strand/constant"
	"github.com/strand-dl/strand/credential"
	"github.com/strand-dl/strand/internal/cache"
	"github.com/strand-dl/strand/service"
	"github.com/strand-dl/strand/title"
	"github.com/strand-dl/strand/track"
	lua "github.com/yuin/gopher-lua"
)

func (s *luaService) GetTitles(ctx context.Context) (*title.Titles, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cacheKey := s.CacheKey("titles_" + s.query)
	var cached title.Titles
	if cache.Read(cacheKey, &cached) {
		return &cached, nil
	}

	val, err := s.call(constant.GetTitlesFn, lua.LTTable, lua.LString(s.query))
	if err != nil {
		return nil, err
	}

	titles := &title.Titles{}
	err = forEachEntry(val.(*lua.LTable), func(entry *lua.LTable) error {
		t, err := titleFromTable(entry)
		if err != nil {
			return err
		}

		switch v := t.(type) {
		case *title.Movie:
			titles.Movies = append(titles.Movies, v)
		case *title.Episode:
			titles.Series = append(titles.Series, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !titles.Empty() {
		_ = cache.Write(cacheKey, titles)
	}

	return titles, nil
}

func (s *luaService) GetTracks(ctx context.Context, t title.Title) (*track.Tracks, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	val, err := s.call(constant.GetTracksFn, lua.LTTable, titleToTable(s.state, t))
	if err != nil {
		return nil, err
	}

	tracks := &track.Tracks{}
	err = forEachEntry(val.(*lua.LTable), func(entry *lua.LTable) error {
		tr, err := trackFromTable(entry)
		if err != nil {
			return err
		}
		tracks.Add(tr)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tracks, nil
}

func (s *luaService) GetChapters(ctx context.Context, t title.Title) (track.Chapters, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The chapters hook is optional; scripts without one get an empty listing.
	if !s.defines(constant.GetChaptersFn) {
		return track.Chapters{}, nil
	}

	val, err := s.call(constant.GetChaptersFn, lua.LTTable, titleToTable(s.state, t))
	if err != nil {
		return nil, err
	}

	chapters := track.Chapters{}
	err = forEachEntry(val.(*lua.LTable), func(entry *lua.LTable) error {
		ch, err := chapterFromTable(entry)
		if err != nil {
			return err
		}
		chapters = append(chapters, ch)
		return nil
	})
	if err != nil {
		return nil, err
	}

	chapters.Sort()
	return chapters, nil
}

func (s *luaService) GetWidevineServiceCertificate(ctx context.Context, req *service.ChallengeRequest) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Optional; absent means the CDM requests the common certificate in-band.
	if !s.defines(constant.CertificateFn) {
		return nil, nil
	}

	val, err := s.call(constant.CertificateFn, lua.LTString,
		lua.LString(base64.StdEncoding.EncodeToString(req.Challenge)),
		titleToTable(s.state, req.Title),
		trackToTable(s.state, req.Track),
	)
	if err != nil {
		return nil, err
	}

	return []byte(val.String()), nil
}

func (s *luaService) GetWidevineLicense(ctx context.Context, req *service.ChallengeRequest) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !s.defines(constant.LicenseFn) {
		return nil, fmt.Errorf("%s does not implement %s but returned a protected track", s.Tag(), constant.LicenseFn)
	}

	val, err := s.call(constant.LicenseFn, lua.LTString,
		lua.LString(base64.StdEncoding.EncodeToString(req.Challenge)),
		titleToTable(s.state, req.Title),
		trackToTable(s.state, req.Track),
	)
	if err != nil {
		return nil, err
	}

	return []byte(val.String()), nil
}

// Authenticate installs cookies into the session, retains the credential,
// then forwards both to the script's authentication hook when it has one.
func (s *luaService) Authenticate(ctx context.Context, cookies []*http.Cookie, cred mo.Option[credential.Credential]) error {
	if err := s.Base.Authenticate(ctx, cookies, cred); err != nil {
		return err
	}

	if !s.defines(constant.AuthenticateFn) {
		return nil
	}

	cookieTbl := s.state.NewTable()
	for _, c := range cookies {
		entry := s.state.NewTable()
		entry.RawSetString("name", lua.LString(c.Name))
		entry.RawSetString("value", lua.LString(c.Value))
		entry.RawSetString("domain", lua.LString(c.Domain))
		entry.RawSetString("path", lua.LString(c.Path))
		cookieTbl.Append(entry)
	}

	var credVal lua.LValue = lua.LNil
	if c, ok := cred.Get(); ok {
		credTbl := s.state.NewTable()
		credTbl.RawSetString("username", lua.LString(c.Username))
		credTbl.RawSetString("password", lua.LString(c.Password))
		credVal = credTbl
	}

	val, err := s.call(constant.AuthenticateFn, lua.LTBool, cookieTbl, credVal)
	if err != nil {
		return err
	}

	if !lua.LVAsBool(val) {
		return &service.EnvironmentError{
			Tag:     s.Tag(),
			Missing: "credentials or cookies",
			Remedy:  "the script rejected the provided authentication material",
		}
	}
	return nil
}
