// Package tui provides the interactive sprint picker shown when no sprint
// number is passed on the command line.
package tui

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"sprintpulse/internal/monday"
)

// ErrPickerAborted is returned when the user quits the picker without
// selecting a sprint.
var ErrPickerAborted = errors.New("sprint selection aborted")

// sprintListItem wraps a board group for use in bubbles/list.
type sprintListItem struct {
	group monday.Group
}

func (i sprintListItem) FilterValue() string {
	return i.group.Title
}

// sprintDelegate is a custom item delegate for sprint groups.
type sprintDelegate struct{}

func (d sprintDelegate) Height() int                             { return 1 }
func (d sprintDelegate) Spacing() int                            { return 0 }
func (d sprintDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d sprintDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(sprintListItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, i.group.Title)
	if index == m.Index() {
		fmt.Fprint(w, SelectedItemStyle.Render("> "+str))
	} else {
		fmt.Fprint(w, NormalItemStyle.Render("  "+str))
	}
}

// SprintPickerModel displays the board's sprint groups for selection.
type SprintPickerModel struct {
	list    list.Model
	choice  *monday.Group
	aborted bool
}

// NewSprintPickerModel creates a picker over the given groups.
func NewSprintPickerModel(groups []monday.Group) SprintPickerModel {
	items := make([]list.Item, len(groups))
	for i, g := range groups {
		items[i] = sprintListItem{group: g}
	}

	l := list.New(items, sprintDelegate{}, 60, 14)
	l.Title = "Select a Sprint"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = TitleStyle

	return SprintPickerModel{list: l}
}

// Init initializes the model.
func (m SprintPickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m SprintPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width - 2)
		m.list.SetHeight(msg.Height - 2)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(sprintListItem); ok {
				g := item.group
				m.choice = &g
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the model.
func (m SprintPickerModel) View() string {
	if m.choice != nil || m.aborted {
		return ""
	}
	return m.list.View() + HelpStyle.Render("enter: select • q: quit")
}

// PickSprint runs the picker and returns the selected group.
func PickSprint(groups []monday.Group) (monday.Group, error) {
	if len(groups) == 0 {
		return monday.Group{}, errors.New("board has no sprint groups")
	}

	p := tea.NewProgram(NewSprintPickerModel(groups))
	final, err := p.Run()
	if err != nil {
		return monday.Group{}, fmt.Errorf("picker error: %w", err)
	}

	m, ok := final.(SprintPickerModel)
	if !ok || m.choice == nil {
		return monday.Group{}, ErrPickerAborted
	}
	return *m.choice, nil
}
