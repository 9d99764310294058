// Package tui provides the interactive title and track pickers.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/strand-dl/strand/history"
	"github.com/strand-dl/strand/title"
)

// ErrAborted is returned when the user leaves a picker without confirming.
var ErrAborted = fmt.Errorf("selection aborted")

func run(p *picker) ([]*listItem, error) {
	model, err := tea.NewProgram(p, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}

	final := model.(*picker)
	if final.aborted || !final.done {
		return nil, ErrAborted
	}
	return final.selection(), nil
}

// SelectTitle asks the user to pick exactly one title from a resolved set.
func SelectTitle(prompt string, titles []title.Title) (title.Title, error) {
	items := lo.Map(titles, func(t title.Title, _ int) *listItem {
		return &listItem{internal: t}
	})

	selected, err := run(newPicker(prompt, items, false))
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, ErrAborted
	}

	return selected[0].internal.(title.Title), nil
}

// SelectAcquisition asks the user to pick one record from the acquisition
// history.
func SelectAcquisition(prompt string, records []*history.SavedAcquisition) (*history.SavedAcquisition, error) {
	items := lo.Map(records, func(r *history.SavedAcquisition, _ int) *listItem {
		return &listItem{internal: r}
	})

	selected, err := run(newPicker(prompt, items, false))
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, ErrAborted
	}

	return selected[0].internal.(*history.SavedAcquisition), nil
}

// SelectEpisodes asks the user to mark the episodes to acquire.
func SelectEpisodes(prompt string, episodes title.Series) (title.Series, error) {
	items := lo.Map(episodes, func(e *title.Episode, _ int) *listItem {
		return &listItem{internal: title.Title(e)}
	})

	selected, err := run(newPicker(prompt, items, true))
	if err != nil {
		return nil, err
	}

	return lo.Map(selected, func(i *listItem, _ int) *title.Episode {
		return i.internal.(*title.Episode)
	}), nil
}
