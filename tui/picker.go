// Package tui provides the interactive title and track pickers.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	keys "github.com/strand-dl/strand/key"
	"github.com/strand-dl/strand/style"
	"github.com/strand-dl/strand/util"
)

// picker is the Bubble Tea model behind every selection screen.
type picker struct {
	list    list.Model
	keymap  *pickerKeymap
	multi   bool
	aborted bool
	done    bool
}

func newPicker(prompt string, items []*listItem, multi bool) *picker {
	keymap := newPickerKeymap(multi)

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(viper.GetInt(keys.TUIItemSpacing))
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(style.AccentColor).
		BorderLeftForeground(style.AccentColor)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(style.FaintColor).
		BorderLeftForeground(style.AccentColor)

	width, height, err := util.TerminalSize()
	if err != nil {
		width, height = 80, 24
	}

	l := list.New(lo.Map(items, func(i *listItem, _ int) list.Item {
		return i
	}), delegate, width, height)
	l.Title = truncate.StringWithTail(prompt, uint(util.Max(width-4, 10)), "…")
	l.Styles.Title = style.New().Background(style.AccentColor).Foreground(style.Base).Padding(0, 1)
	l.KeyMap = keymap.forList()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return keymap.ShortHelp()
	}

	return &picker{
		list:   l,
		keymap: keymap,
		multi:  multi,
	}
}

func (p *picker) Init() tea.Cmd {
	return nil
}

func (p *picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.list.SetSize(msg.Width, msg.Height)
		return p, nil
	case tea.KeyMsg:
		// While the filter input is focused, every key belongs to it.
		if p.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, p.keymap.forceQuit), key.Matches(msg, p.keymap.quit):
			p.aborted = true
			return p, tea.Quit
		case key.Matches(msg, p.keymap.confirm):
			p.done = true
			return p, tea.Quit
		case p.multi && key.Matches(msg, p.keymap.selectOne):
			if item, ok := p.list.SelectedItem().(*listItem); ok {
				item.toggleMark()
			}
			return p, nil
		case p.multi && key.Matches(msg, p.keymap.selectAll):
			for _, item := range p.list.Items() {
				item.(*listItem).toggleMark()
			}
			return p, nil
		case p.multi && key.Matches(msg, p.keymap.clearSelection):
			for _, item := range p.list.Items() {
				if li := item.(*listItem); li.marked {
					li.toggleMark()
				}
			}
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

func (p *picker) View() string {
	return p.list.View()
}

// selection returns the confirmed items: the marked ones in multi mode,
// otherwise the one under the cursor.
func (p *picker) selection() []*listItem {
	if !p.multi {
		if item, ok := p.list.SelectedItem().(*listItem); ok {
			return []*listItem{item}
		}
		return nil
	}

	marked := lo.FilterMap(p.list.Items(), func(i list.Item, _ int) (*listItem, bool) {
		li := i.(*listItem)
		return li, li.marked
	})
	if len(marked) > 0 {
		return marked
	}

	// Nothing marked: treat the cursor as the selection.
	if item, ok := p.list.SelectedItem().(*listItem); ok {
		return []*listItem{item}
	}
	return nil
}
