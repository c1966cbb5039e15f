// Package subtasks is the checklist panel for a single todo item.
package subtasks

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartdoit/smarttodo/internal/keys"
	"github.com/smartdoit/smarttodo/internal/model"
	"github.com/smartdoit/smarttodo/internal/theme"
)

// AddRequestMsg asks the app to append a subtask to the parent.
type AddRequestMsg struct {
	ParentID int64
	Text     string
}

// ToggleRequestMsg asks the app to flip a subtask's completed flag.
type ToggleRequestMsg struct {
	ParentID  int64
	SubtaskID int64
}

// DeleteRequestMsg asks the app to remove a subtask.
type DeleteRequestMsg struct {
	ParentID  int64
	SubtaskID int64
}

// CloseMsg is dispatched when the panel is dismissed.
type CloseMsg struct{}

// Model is the subtask panel for one parent item.
type Model struct {
	keys   *keys.KeyMap
	styles theme.Styles

	parent model.TodoItem
	input  textinput.Model
	cursor int

	width  int
	height int
}

// New creates the subtask panel.
func New(k *keys.KeyMap, styles theme.Styles, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "Add a subtask..."
	ti.CharLimit = 200
	return Model{
		keys:   k,
		styles: styles,
		input:  ti,
		width:  width,
		height: height,
	}
}

// SetStyles swaps the style set after a theme toggle.
func (m *Model) SetStyles(styles theme.Styles) {
	m.styles = styles
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Start opens the panel for a parent item.
func (m *Model) Start(parent model.TodoItem) tea.Cmd {
	m.parent = parent
	m.cursor = 0
	m.input.SetValue("")
	m.input.Focus()
	return textinput.Blink
}

// SetParent refreshes the displayed parent after a mutation.
func (m *Model) SetParent(parent model.TodoItem) {
	m.parent = parent
	if m.cursor >= len(parent.Subtasks) {
		m.cursor = len(parent.Subtasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// ParentID returns the identity of the open parent.
func (m Model) ParentID() int64 {
	return m.parent.ID
}

// Update handles key input for the panel. While the text input is focused,
// enter submits a new subtask; when it is blurred, list keys apply.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "esc":
		if m.input.Focused() && m.input.Value() != "" {
			m.input.SetValue("")
			return m, nil
		}
		return m, func() tea.Msg { return CloseMsg{} }
	case "tab":
		if m.input.Focused() {
			m.input.Blur()
		} else {
			m.input.Focus()
			return m, textinput.Blink
		}
		return m, nil
	}

	if m.input.Focused() {
		if keyMsg.String() == "enter" {
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.SetValue("")
			parentID := m.parent.ID
			return m, func() tea.Msg {
				return AddRequestMsg{ParentID: parentID, Text: text}
			}
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.parent.Subtasks)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Toggle):
		if st, ok := m.selected(); ok {
			parentID := m.parent.ID
			return m, func() tea.Msg {
				return ToggleRequestMsg{ParentID: parentID, SubtaskID: st.ID}
			}
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if st, ok := m.selected(); ok {
			parentID := m.parent.ID
			return m, func() tea.Msg {
				return DeleteRequestMsg{ParentID: parentID, SubtaskID: st.ID}
			}
		}
	}
	return m, nil
}

func (m Model) selected() (model.Subtask, bool) {
	if m.cursor < 0 || m.cursor >= len(m.parent.Subtasks) {
		return model.Subtask{}, false
	}
	return m.parent.Subtasks[m.cursor], true
}

// View renders the panel.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("Subtasks"))
	b.WriteString("\n")
	b.WriteString(m.parent.Text)
	b.WriteString("\n")

	if done, total := m.parent.SubtaskProgress(); total > 0 {
		b.WriteString(m.styles.Dim.Render(fmt.Sprintf("%d/%d done", done, total)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.parent.Subtasks) == 0 {
		b.WriteString(m.styles.Dim.Render("no subtasks yet"))
		b.WriteString("\n")
	}
	for i, st := range m.parent.Subtasks {
		check := "[ ]"
		text := st.Text
		if st.Completed {
			check = "[x]"
			text = m.styles.Completed.Render(text)
		}
		line := check + " " + text
		if i == m.cursor && !m.input.Focused() {
			line = m.styles.SelectedItem.Render(line)
		} else {
			line = m.styles.ListItem.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter: add · tab: focus list · space: toggle · x: delete · esc: close"))

	return m.styles.Panel.Width(min(m.width-4, 70)).Render(b.String())
}
