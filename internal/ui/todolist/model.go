// Package todolist renders the flat list view: pending items first, then
// completed, each section in collection order.
package todolist

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smartdoit/smarttodo/internal/keys"
	"github.com/smartdoit/smarttodo/internal/model"
	"github.com/smartdoit/smarttodo/internal/theme"
	"github.com/smartdoit/smarttodo/internal/view"
)

// ToggleRequestMsg asks the app to flip an item's completed flag.
type ToggleRequestMsg struct{ ID int64 }

// DeleteRequestMsg asks the app to remove an item.
type DeleteRequestMsg struct{ ID int64 }

// OpenSubtasksMsg asks the app to open the subtask panel for an item.
type OpenSubtasksMsg struct{ ID int64 }

// SortRequestMsg asks the app to re-sort the collection.
type SortRequestMsg struct{ Key string }

// ClearCompletedMsg asks the app to drop all completed items.
type ClearCompletedMsg struct{}

// Model is the list view.
type Model struct {
	keys   *keys.KeyMap
	styles theme.Styles

	pending   []model.TodoItem
	completed []model.TodoItem
	today     model.Date

	cursor int
	width  int
	height int

	loggedIn bool
}

// New creates the list view.
func New(k *keys.KeyMap, styles theme.Styles, width, height int) Model {
	return Model{
		keys:   k,
		styles: styles,
		width:  width,
		height: height,
		today:  model.DateOf(time.Now()),
	}
}

// SetStyles swaps the style set after a theme toggle.
func (m *Model) SetStyles(styles theme.Styles) {
	m.styles = styles
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetItems replaces the displayed snapshot. The partition preserves the
// snapshot order within each bucket.
func (m *Model) SetItems(items []model.TodoItem, today model.Date, loggedIn bool) {
	m.pending, m.completed = view.Partition(items)
	m.today = today
	m.loggedIn = loggedIn
	if max := m.total() - 1; m.cursor > max {
		m.cursor = max
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) total() int {
	return len(m.pending) + len(m.completed)
}

// at returns the item under the display cursor.
func (m Model) at(i int) (model.TodoItem, bool) {
	if i < 0 || i >= m.total() {
		return model.TodoItem{}, false
	}
	if i < len(m.pending) {
		return m.pending[i], true
	}
	return m.completed[i-len(m.pending)], true
}

// Update handles key input for the list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < m.total()-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Toggle):
		if it, ok := m.at(m.cursor); ok {
			return m, func() tea.Msg { return ToggleRequestMsg{ID: it.ID} }
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if it, ok := m.at(m.cursor); ok {
			return m, func() tea.Msg { return DeleteRequestMsg{ID: it.ID} }
		}
	case key.Matches(keyMsg, m.keys.Subtasks):
		if it, ok := m.at(m.cursor); ok {
			return m, func() tea.Msg { return OpenSubtasksMsg{ID: it.ID} }
		}
	case key.Matches(keyMsg, m.keys.SortPriority):
		return m, func() tea.Msg { return SortRequestMsg{Key: "priority"} }
	case key.Matches(keyMsg, m.keys.SortDate):
		return m, func() tea.Msg { return SortRequestMsg{Key: "date"} }
	case key.Matches(keyMsg, m.keys.ClearComplete):
		return m, func() tea.Msg { return ClearCompletedMsg{} }
	}
	return m, nil
}

// View renders both sections.
func (m Model) View() string {
	if !m.loggedIn {
		return m.styles.Panel.Render(
			"Sign in to manage your todos.\n\n" +
				m.styles.Help.Render("press i to sign in, ? for help"),
		)
	}

	var b strings.Builder

	b.WriteString(m.styles.Header.Render(fmt.Sprintf("Pending (%d)", len(m.pending))))
	b.WriteString("\n")
	if len(m.pending) == 0 {
		b.WriteString(m.styles.Dim.Render("  nothing to do — add one with n"))
		b.WriteString("\n")
	}
	for i, it := range m.pending {
		b.WriteString(m.renderItem(it, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Header.Render(fmt.Sprintf("Completed (%d)", len(m.completed))))
	b.WriteString("\n")
	if len(m.completed) == 0 {
		b.WriteString(m.styles.Dim.Render("  nothing completed yet"))
		b.WriteString("\n")
	}
	for i, it := range m.completed {
		b.WriteString(m.renderItem(it, len(m.pending)+i == m.cursor))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Width(m.width).
		MaxHeight(m.height).
		Render(b.String())
}

// renderItem draws one line: checkbox, text, priority/category/due badges and
// subtask progress.
func (m Model) renderItem(it model.TodoItem, selected bool) string {
	check := "[ ]"
	if it.Completed {
		check = "[x]"
	}

	text := it.Text
	if it.Completed {
		text = m.styles.Completed.Render(text)
	}

	parts := []string{check, text}

	badge := m.styles.PriorityStyle(it.Priority.Rank()).Render(string(it.Priority))
	parts = append(parts, badge, m.styles.CategoryBadge.Render(string(it.Category)))

	if !it.DueDate.IsZero() {
		label := view.FormatDue(it.DueDate, m.today)
		style := m.styles.DueBadge
		switch label.Tone {
		case view.ToneToday:
			style = m.styles.DueToday
		case view.ToneOverdue:
			style = m.styles.DueOverdue
		}
		parts = append(parts, style.Render("due "+label.Text))
	}

	if done, total := it.SubtaskProgress(); total > 0 {
		parts = append(parts, m.styles.Dim.Render(fmt.Sprintf("%d/%d subtasks", done, total)))
	}

	line := strings.Join(parts, " ")
	if selected {
		return m.styles.SelectedItem.Render(line)
	}
	return m.styles.ListItem.Render(line)
}
