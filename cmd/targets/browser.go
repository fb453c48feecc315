package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-launcher/pkg/records"
)

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5A3FC0")).
			Padding(0, 1)

	detailStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5A3FC0")).
			Padding(0, 1)
)

var quitKey = key.NewBinding(
	key.WithKeys("q", "ctrl+c"),
	key.WithHelp("q", "quit"),
)

// targetItem adapts a LaunchTarget to the list component.
type targetItem struct {
	target records.LaunchTarget
}

func (i targetItem) Title() string { return i.target.Name }

func (i targetItem) Description() string {
	return fmt.Sprintf("%s  %s", i.target.Platform, i.target.FileName)
}

func (i targetItem) FilterValue() string { return i.target.Name }

type browser struct {
	list list.Model
}

func newBrowser(targets []records.LaunchTarget) browser {
	items := make([]list.Item, len(targets))
	for i, t := range targets {
		items[i] = targetItem{target: t}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = fmt.Sprintf("Launch targets (%d)", len(targets))
	l.Styles.Title = titleStyle
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{quitKey} }
	return browser{list: l}
}

func (b browser) Init() tea.Cmd {
	return nil
}

func (b browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Let the filter input have q while the user is typing a filter.
		if b.list.FilterState() != list.Filtering && key.Matches(msg, quitKey) {
			return b, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		b.list.SetSize(msg.Width-h, msg.Height-v-detailHeight)
	}

	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	return b, cmd
}

const detailHeight = 4

func (b browser) View() string {
	view := b.list.View()
	if item, ok := b.list.SelectedItem().(targetItem); ok {
		t := item.target
		view = lipgloss.JoinVertical(lipgloss.Left, view, detailStyle.Render(
			fmt.Sprintf("%s\ntarget %s  rom %s", t.Path, t.TargetSignature, t.RomSignature)))
	}
	return docStyle.Render(view)
}

func browse(targets []records.LaunchTarget) error {
	_, err := tea.NewProgram(newBrowser(targets), tea.WithAltScreen()).Run()
	return err
}
