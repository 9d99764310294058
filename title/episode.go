package title

import (
	"fmt"

	"github.com/samber/lo"
)

// Episode represents a single episode within a series.
type Episode struct {
	// Service-scoped identifier (e.g. an asset or playback ID).
	ID string `json:"id"`
	// Series display name (e.g. "Some Show").
	Series string `json:"series"`
	// Season number, starting at 1. Zero denotes a season-less special.
	Season int `json:"season"`
	// Episode number within the season.
	Number int `json:"number"`
	// Episode display name, often empty.
	Name string `json:"name,omitempty"`
	// First-aired year of the series, zero when unknown.
	Year int `json:"year,omitempty"`
	// Original language (BCP-47).
	Language string `json:"language,omitempty"`

	// Service-private payload carried between hook calls.
	// Never inspected by the host.
	Data map[string]any `json:"-"`
}

func (e *Episode) TitleID() string {
	return e.ID
}

func (e *Episode) TitleName() string {
	return e.Series
}

// String returns the canonical display form, e.g. "Some Show S01E05 - Pilot".
func (e *Episode) String() string {
	s := fmt.Sprintf("%s S%02dE%02d", e.Series, e.Season, e.Number)
	if e.Name != "" {
		s += " - " + e.Name
	}
	return s
}

// FileName returns a filesystem-safe rendition of String().
func (e *Episode) FileName() string {
	return sanitized(e.String())
}

// Series is an ordered episode listing of one show.
type Series []*Episode

// Seasons returns the distinct season numbers present, in listing order.
func (s Series) Seasons() []int {
	return lo.Uniq(lo.Map(s, func(e *Episode, _ int) int {
		return e.Season
	}))
}

// Season filters the listing down to a single season.
func (s Series) Season(n int) Series {
	return lo.Filter(s, func(e *Episode, _ int) bool {
		return e.Season == n
	})
}

// String summarizes the listing, e.g. "Some Show: 2 seasons, 16 episodes".
func (s Series) String() string {
	if len(s) == 0 {
		return "no episodes"
	}
	return fmt.Sprintf("%s: %d seasons, %d episodes", s[0].Series, len(s.Seasons()), len(s))
}
