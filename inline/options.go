// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/strand-dl/strand/service"
	"github.com/strand-dl/strand/title"
	"github.com/strand-dl/strand/util"
)

type (
	TitlePicker    func([]title.Title) title.Title
	EpisodesFilter func(title.Series) (title.Series, error)
)

type Options struct {
	Out io.Writer
	// Service is the constructed (and, when needed, authenticated) integration.
	Service service.Service
	Json    bool
	Query   string
	// TitlePicker narrows the resolved titles to one; absent means all.
	TitlePicker mo.Option[TitlePicker]
	// EpisodesFilter narrows a series listing; movies pass through untouched.
	EpisodesFilter mo.Option[EpisodesFilter]
	// Tracks includes each selected title's track listing in the output.
	Tracks bool
	// Chapters includes each selected title's chapter listing in the output.
	Chapters bool
}

func ParseTitlePicker(kind, value string) (TitlePicker, error) {
	switch kind {
	case "first":
		return func(titles []title.Title) title.Title {
			if len(titles) == 0 {
				return nil
			}
			return titles[0]
		}, nil
	case "last":
		return func(titles []title.Title) title.Title {
			if len(titles) == 0 {
				return nil
			}
			return titles[len(titles)-1]
		}, nil
	case "exact":
		return func(titles []title.Title) title.Title {
			for _, t := range titles {
				if t.TitleName() == value || t.String() == value {
					return t
				}
			}
			return nil
		}, nil
	case "index":
		idx, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", value)
		}
		return func(titles []title.Title) title.Title {
			if len(titles) == 0 {
				return nil
			}
			i := util.Min(idx, uint64(len(titles)-1))
			return titles[i]
		}, nil
	default:
		return nil, fmt.Errorf("unknown picker type: %s", kind)
	}
}

// ParseEpisodesFilter parses a string description of an episode filter.
// Format: "first", "last", "all", "1-5", "s2", "@text@" or a single index.
func ParseEpisodesFilter(description string) (EpisodesFilter, error) {
	if description == "first" {
		return func(episodes title.Series) (title.Series, error) {
			if len(episodes) == 0 {
				return episodes, nil
			}
			return episodes[:1], nil
		}, nil
	}
	if description == "last" {
		return func(episodes title.Series) (title.Series, error) {
			if len(episodes) == 0 {
				return episodes, nil
			}
			return episodes[len(episodes)-1:], nil
		}, nil
	}
	if description == "all" {
		return func(episodes title.Series) (title.Series, error) {
			return episodes, nil
		}, nil
	}

	// Season: "s2"
	if strings.HasPrefix(strings.ToLower(description), "s") {
		if season, err := strconv.Atoi(description[1:]); err == nil {
			return func(episodes title.Series) (title.Series, error) {
				return episodes.Season(season), nil
			}, nil
		}
	}

	// Range over episode numbers: "1-5"
	if strings.Contains(description, "-") {
		parts := strings.Split(description, "-")
		if len(parts) == 2 {
			from, err1 := strconv.Atoi(parts[0])
			to, err2 := strconv.Atoi(parts[1])
			if err1 == nil && err2 == nil {
				return func(episodes title.Series) (title.Series, error) {
					return lo.Filter(episodes, func(e *title.Episode, _ int) bool {
						return e.Number >= from && e.Number <= to
					}), nil
				}, nil
			}
		}
	}

	// Substring: "@text@"
	if strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") && len(description) > 1 {
		sub := description[1 : len(description)-1]
		return func(episodes title.Series) (title.Series, error) {
			return lo.Filter(episodes, func(e *title.Episode, _ int) bool {
				return strings.Contains(strings.ToLower(e.String()), strings.ToLower(sub))
			}), nil
		}, nil
	}

	// Single episode number: "5"
	if number, err := strconv.Atoi(description); err == nil {
		return func(episodes title.Series) (title.Series, error) {
			return lo.Filter(episodes, func(e *title.Episode, _ int) bool {
				return e.Number == number
			}), nil
		}, nil
	}

	return nil, fmt.Errorf("invalid episode filter: %s", description)
}
