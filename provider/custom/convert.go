// Package custom provides a bridge between the Go core and Lua-based service scripts.
package custom

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/strand-dl/strand/drm"
	"github.com/strand-dl/strand/title"
	"github.com/strand-dl/strand/track"
	lua "github.com/yuin/gopher-lua"
)

// Helper to get string from table with default
func getString(table *lua.LTable, key string) string {
	val := table.RawGetString(key)
	if val.Type() == lua.LTString {
		return val.String()
	}
	return ""
}

// Helper to get an integer from table, tolerating numeric strings
func getInt(table *lua.LTable, key string) int {
	val := table.RawGetString(key)
	if val.Type() == lua.LTNumber {
		return int(val.(lua.LNumber))
	}
	return 0
}

func getBool(table *lua.LTable, key string) bool {
	val := table.RawGetString(key)
	if val.Type() == lua.LTBool {
		return bool(val.(lua.LBool))
	}
	return false
}

// Helper to get string map from table (for headers and private data)
func getStringMap(table *lua.LTable, key string) map[string]string {
	val := table.RawGetString(key)
	tbl, ok := val.(*lua.LTable)
	if !ok {
		return nil
	}

	m := make(map[string]string)
	tbl.ForEach(func(k, v lua.LValue) {
		m[k.String()] = v.String()
	})
	return m
}

// forEachEntry iterates the numeric entries of a Lua array table, skipping
// malformed values the way the rest of the bridge does: collect conversion
// errors but only surface them when nothing converted at all.
func forEachEntry(table *lua.LTable, convert func(*lua.LTable) error) error {
	var errs []error
	converted := 0

	table.ForEach(func(k, v lua.LValue) {
		if k.Type() != lua.LTNumber || v.Type() != lua.LTTable {
			return // Skip invalid entries
		}

		if err := convert(v.(*lua.LTable)); err != nil {
			errs = append(errs, err)
			return
		}
		converted++
	})

	if converted == 0 && len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func titleFromTable(table *lua.LTable) (title.Title, error) {
	name := getString(table, "name")
	if name == "" {
		return nil, fmt.Errorf("title must have name")
	}

	data := lo.MapEntries(getStringMap(table, "data"), func(k, v string) (string, any) {
		return k, any(v)
	})

	kind := getString(table, "kind")
	if kind == "episode" || getString(table, "series") != "" {
		episode := &title.Episode{
			ID:       getString(table, "id"),
			Series:   getString(table, "series"),
			Season:   getInt(table, "season"),
			Number:   getInt(table, "number"),
			Name:     name,
			Year:     getInt(table, "year"),
			Language: getString(table, "language"),
			Data:     data,
		}
		if episode.Series == "" {
			episode.Series = name
			episode.Name = ""
		}
		return episode, nil
	}

	return &title.Movie{
		ID:       getString(table, "id"),
		Name:     name,
		Year:     getInt(table, "year"),
		Language: getString(table, "language"),
		Data:     data,
	}, nil
}

func titleToTable(L *lua.LState, t title.Title) *lua.LTable {
	table := L.NewTable()
	table.RawSetString("id", lua.LString(t.TitleID()))
	table.RawSetString("name", lua.LString(t.TitleName()))

	var data map[string]any
	switch v := t.(type) {
	case *title.Movie:
		table.RawSetString("kind", lua.LString("movie"))
		if v.Year != 0 {
			table.RawSetString("year", lua.LNumber(v.Year))
		}
		data = v.Data
	case *title.Episode:
		table.RawSetString("kind", lua.LString("episode"))
		table.RawSetString("series", lua.LString(v.Series))
		table.RawSetString("season", lua.LNumber(v.Season))
		table.RawSetString("number", lua.LNumber(v.Number))
		if v.Name != "" {
			table.RawSetString("episode_name", lua.LString(v.Name))
		}
		data = v.Data
	}

	if len(data) > 0 {
		dataTbl := L.NewTable()
		for k, v := range data {
			dataTbl.RawSetString(k, lua.LString(fmt.Sprint(v)))
		}
		table.RawSetString("data", dataTbl)
	}

	return table
}

func trackFromTable(table *lua.LTable) (*track.Track, error) {
	url := getString(table, "url")
	if url == "" {
		return nil, fmt.Errorf("track must have url")
	}

	var kind track.Kind
	switch strings.ToLower(getString(table, "kind")) {
	case "video", "":
		kind = track.Video
	case "audio":
		kind = track.Audio
	case "subtitle":
		kind = track.Subtitle
	default:
		return nil, fmt.Errorf("track has unknown kind %q", getString(table, "kind"))
	}

	tr := &track.Track{
		ID:       getString(table, "id"),
		Kind:     kind,
		URL:      url,
		Codec:    getString(table, "codec"),
		Language: getString(table, "language"),
		Bitrate:  getInt(table, "bitrate"),
		Width:    getInt(table, "width"),
		Height:   getInt(table, "height"),
		Forced:   getBool(table, "forced"),
		Default:  getBool(table, "default"),
		Headers:  getStringMap(table, "headers"),
	}

	if pssh := getString(table, "pssh"); pssh != "" {
		tr.DRM = &drm.Widevine{
			PSSH: pssh,
			KID:  getString(table, "kid"),
		}
		if err := tr.DRM.Validate(); err != nil {
			return nil, err
		}
	}

	return tr, nil
}

func trackToTable(L *lua.LState, tr *track.Track) *lua.LTable {
	table := L.NewTable()
	table.RawSetString("id", lua.LString(tr.Key()))
	table.RawSetString("kind", lua.LString(strings.ToLower(kindName(tr.Kind))))
	table.RawSetString("url", lua.LString(tr.URL))
	if tr.DRM != nil {
		table.RawSetString("pssh", lua.LString(tr.DRM.PSSH))
		if tr.DRM.KID != "" {
			table.RawSetString("kid", lua.LString(tr.DRM.KID))
		}
	}
	return table
}

func kindName(k track.Kind) string {
	switch k {
	case track.Audio:
		return "audio"
	case track.Subtitle:
		return "subtitle"
	default:
		return "video"
	}
}

func chapterFromTable(table *lua.LTable) (*track.Chapter, error) {
	start := table.RawGetString("start")
	if start.Type() != lua.LTNumber {
		return nil, fmt.Errorf("chapter must have a numeric start")
	}

	return &track.Chapter{
		Name:  getString(table, "name"),
		Start: time.Duration(float64(start.(lua.LNumber)) * float64(time.Second)),
	}, nil
}
