// Package tui provides the interactive title and track pickers.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
	"github.com/strand-dl/strand/history"
	"github.com/strand-dl/strand/icon"
	"github.com/strand-dl/strand/key"
	"github.com/strand-dl/strand/style"
	"github.com/strand-dl/strand/title"
)

// listItem implements the list.Item interface, wrapping the pickable domain
// models for terminal display.
type listItem struct {
	internal interface{}
	marked   bool
}

func (t *listItem) toggleMark() {
	t.marked = !t.marked
}

func (t *listItem) getMark() string {
	return lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Download))
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() (text string) {
	switch e := t.internal.(type) {
	case title.Title:
		text = e.String()
		if viper.GetBool(key.TUIShowIDs) && e.TitleID() != "" {
			text += " " + style.Faint(e.TitleID())
		}
	case *history.SavedAcquisition:
		text = e.Display
	default:
		text = t.FilterValue()
	}

	if text != "" && t.marked {
		text = fmt.Sprintf("%s %s", text, t.getMark())
	}

	return
}

// Description retrieves the secondary metadata line for the list item.
func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case *title.Movie:
		description = e.Description
	case *history.SavedAcquisition:
		var parts []string
		parts = append(parts, e.ServiceTag)
		parts = append(parts, fmt.Sprintf("%d tracks", e.Tracks))
		if e.Protected {
			parts = append(parts, icon.Get(icon.Lock))
		}
		description = strings.Join(parts, " • ")
	}

	return
}

// FilterValue returns the string used for real-time list filtering and searching.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case title.Title:
		return e.String()
	case *history.SavedAcquisition:
		return e.Display + " " + e.ServiceTag
	default:
		return ""
	}
}
