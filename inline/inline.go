// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/strand-dl/strand/log"
	"github.com/strand-dl/strand/title"
)

func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	// Step 1: Resolve the query into titles.
	titles, err := options.Service.GetTitles(ctx)
	if err != nil {
		return fmt.Errorf("titles failed for %s: %w", options.Service.Tag(), err)
	}

	// Step 2: Apply the episode filter to series listings.
	series := titles.Series
	if filter, ok := options.EpisodesFilter.Get(); ok {
		series, err = filter(series)
		if err != nil {
			return err
		}
	}

	all := make([]title.Title, 0, len(titles.Movies)+len(series))
	for _, m := range titles.Movies {
		all = append(all, m)
	}
	for _, e := range series {
		all = append(all, e)
	}

	// Step 3: Apply title selection logic if a picker is defined.
	selected := all
	if picker, ok := options.TitlePicker.Get(); ok {
		selected = nil
		if choice := picker(all); choice != nil {
			selected = []title.Title{choice}
		}
	}

	if len(selected) == 0 {
		if options.Json {
			return writeJson(options.Out, nil, options)
		}
		return nil // Nothing found
	}

	// Step 4: Populate tracks and chapters for the selected subset.
	entries := make([]*Entry, 0, len(selected))
	for _, t := range selected {
		entry, err := prepareEntry(ctx, t, options)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}

	// Step 5: Dispatch the processed results to the configured output writer.
	if options.Json {
		return writeJson(options.Out, entries, options)
	}

	for _, entry := range entries {
		fmt.Fprintln(options.Out, entry.Title.String())
		if entry.Tracks != nil {
			for _, tr := range entry.Tracks.All() {
				fmt.Fprintln(options.Out, tr.URL)
			}
		}
		for _, ch := range entry.Chapters {
			fmt.Fprintln(options.Out, ch.String())
		}
	}

	return nil
}

func prepareEntry(ctx context.Context, t title.Title, options *Options) (*Entry, error) {
	entry := &Entry{
		Service: options.Service.Tag(),
		Title:   t,
	}

	if options.Tracks {
		tracks, err := options.Service.GetTracks(ctx, t)
		if err != nil {
			return nil, err
		}
		tracks.SortByQuality()
		entry.Tracks = tracks
	}

	if options.Chapters {
		chapters, err := options.Service.GetChapters(ctx, t)
		if err != nil {
			log.Warnf("failed to fetch chapters for %s: %v", t.TitleName(), err)
		} else {
			entry.Chapters = chapters
		}
	}

	return entry, nil
}

func writeJson(out io.Writer, entries []*Entry, options *Options) error {
	data, err := asJson(entries, options.Query)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
