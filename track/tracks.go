package track

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/strand-dl/strand/util"
)

// Tracks is the container a service returns from its track-listing hook.
// Adds deduplicate on Track.Key; selection helpers implement the host's
// quality and language preferences.
type Tracks struct {
	Videos    []*Track `json:"videos,omitempty"`
	Audios    []*Track `json:"audios,omitempty"`
	Subtitles []*Track `json:"subtitles,omitempty"`
}

// Add appends tracks to their kind bucket, silently dropping duplicates.
func (t *Tracks) Add(tracks ...*Track) {
	for _, tr := range tracks {
		bucket := t.bucket(tr.Kind)
		if lo.ContainsBy(*bucket, func(existing *Track) bool {
			return existing.Key() == tr.Key()
		}) {
			continue
		}
		*bucket = append(*bucket, tr)
	}
}

func (t *Tracks) bucket(k Kind) *[]*Track {
	switch k {
	case Audio:
		return &t.Audios
	case Subtitle:
		return &t.Subtitles
	default:
		return &t.Videos
	}
}

// All returns every track in kind order.
func (t *Tracks) All() []*Track {
	out := make([]*Track, 0, t.Len())
	out = append(out, t.Videos...)
	out = append(out, t.Audios...)
	out = append(out, t.Subtitles...)
	return out
}

// Len returns the total track count.
func (t *Tracks) Len() int {
	return len(t.Videos) + len(t.Audios) + len(t.Subtitles)
}

// SortByQuality orders each bucket by descending resolution, then bitrate.
func (t *Tracks) SortByQuality() {
	byQuality := func(s []*Track) {
		sort.SliceStable(s, func(i, j int) bool {
			if s[i].Height != s[j].Height {
				return s[i].Height > s[j].Height
			}
			return s[i].Bitrate > s[j].Bitrate
		})
	}
	byQuality(t.Videos)
	byQuality(t.Audios)
	byQuality(t.Subtitles)
}

// SelectVideo picks the best video at or below the preferred height.
// When every track exceeds the preference, the lowest available is returned.
func (t *Tracks) SelectVideo(maxHeight int) (*Track, bool) {
	if len(t.Videos) == 0 {
		return nil, false
	}

	t.SortByQuality()
	for _, v := range t.Videos {
		if v.Height <= maxHeight || v.Height == 0 {
			return v, true
		}
	}
	return t.Videos[len(t.Videos)-1], true
}

// ByLanguage filters a bucket down to one language, keeping everything when
// no track matches (a wrong-language track beats no track).
func ByLanguage(tracks []*Track, language string) []*Track {
	if language == "" {
		return tracks
	}
	matched := lo.Filter(tracks, func(tr *Track, _ int) bool {
		return strings.EqualFold(tr.Language, language) ||
			strings.HasPrefix(strings.ToLower(tr.Language), strings.ToLower(language)+"-")
	})
	if len(matched) == 0 {
		return tracks
	}
	return matched
}

// Protected returns every track requiring a license.
func (t *Tracks) Protected() []*Track {
	return lo.Filter(t.All(), func(tr *Track, _ int) bool {
		return tr.Protected()
	})
}

// String summarizes the container, e.g. "3 videos, 2 audios, 1 subtitle".
func (t *Tracks) String() string {
	return fmt.Sprintf("%s, %s, %s",
		util.Quantify(len(t.Videos), "video", "videos"),
		util.Quantify(len(t.Audios), "audio", "audios"),
		util.Quantify(len(t.Subtitles), "subtitle", "subtitles"),
	)
}
