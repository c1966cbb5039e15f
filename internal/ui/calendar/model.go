// Package calendar renders the month grid view and the panel for the
// selected date.
package calendar

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

var weekdayHeader = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// Model is the calendar view. The cursor month and selected date live here;
// the grid itself is re-derived from the item snapshot on every render.
type Model struct {
	keys   *keys.KeyMap
	styles theme.Styles

	items    []model.TodoItem
	cursor   model.Date // any date inside the displayed month
	selected model.Date // zero when no day is picked
	today    model.Date

	// detailCursor indexes into the selected date's items (pending then
	// completed) for toggle/delete from the panel.
	detailCursor int

	width    int
	height   int
	loggedIn bool
}

// New creates the calendar view anchored on the current month.
func New(k *keys.KeyMap, styles theme.Styles, width, height int) Model {
	today := model.DateOf(time.Now())
	return Model{
		keys:   k,
		styles: styles,
		cursor: today,
		today:  today,
		width:  width,
		height: height,
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

// SetItems replaces the displayed snapshot.
func (m *Model) SetItems(items []model.TodoItem, today model.Date, loggedIn bool) {
	m.items = items
	m.today = today
	m.loggedIn = loggedIn
	m.clampDetailCursor()
}

// ClearSelection drops the selected date, e.g. on sign-out.
func (m *Model) ClearSelection() {
	m.selected = model.Date{}
	m.detailCursor = 0
}

// Selected returns the selected date (zero when none).
func (m Model) Selected() model.Date {
	return m.selected
}

func (m *Model) clampDetailCursor() {
	n := len(m.detailItems())
	if m.detailCursor >= n {
		m.detailCursor = n - 1
	}
	if m.detailCursor < 0 {
		m.detailCursor = 0
	}
}

// detailItems returns the selected date's items, pending first.
func (m Model) detailItems() []model.TodoItem {
	if m.selected.IsZero() {
		return nil
	}
	d := view.DetailForDate(m.selected, m.items)
	return append(append([]model.TodoItem{}, d.Pending...), d.Completed...)
}

// Update handles key input for the calendar view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.PrevMonth):
		m.cursor = m.cursor.MonthStart().AddMonths(-1)
	case key.Matches(keyMsg, m.keys.NextMonth):
		m.cursor = m.cursor.MonthStart().AddMonths(1)
	case key.Matches(keyMsg, m.keys.Today):
		m.cursor = m.today
		m.selected = m.today
		m.detailCursor = 0
	case key.Matches(keyMsg, m.keys.Select):
		m.selected = m.cursor
		m.detailCursor = 0
	case key.Matches(keyMsg, m.keys.Down):
		if m.selected.IsZero() {
			m.cursor = m.cursor.AddDays(7)
		} else {
			if m.detailCursor < len(m.detailItems())-1 {
				m.detailCursor++
			}
		}
	case key.Matches(keyMsg, m.keys.Up):
		if m.selected.IsZero() {
			m.cursor = m.cursor.AddDays(-7)
		} else {
			if m.detailCursor > 0 {
				m.detailCursor--
			}
		}
	case keyMsg.String() == "left":
		m.cursor = m.cursor.AddDays(-1)
	case keyMsg.String() == "right":
		m.cursor = m.cursor.AddDays(1)
	case key.Matches(keyMsg, m.keys.Toggle):
		items := m.detailItems()
		if m.detailCursor < len(items) {
			id := items[m.detailCursor].ID
			return m, func() tea.Msg { return ToggleRequestMsg{ID: id} }
		}
	case key.Matches(keyMsg, m.keys.Delete):
		items := m.detailItems()
		if m.detailCursor < len(items) {
			id := items[m.detailCursor].ID
			return m, func() tea.Msg { return DeleteRequestMsg{ID: id} }
		}
	case key.Matches(keyMsg, m.keys.Back):
		if !m.selected.IsZero() {
			m.ClearSelection()
		}
	}
	return m, nil
}

// View renders the grid and, when a day is selected, its panel.
func (m Model) View() string {
	grid := m.renderGrid()
	if m.selected.IsZero() {
		return grid
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, grid, " ", m.renderDetail())
}

func (m Model) renderGrid() string {
	// An anonymous grid still renders, with no items on it.
	items := m.items
	if !m.loggedIn {
		items = nil
	}
	cells := view.MonthGrid(m.cursor, m.today, m.selected, items)

	cellWidth := m.width/2/7 - 2
	if cellWidth < 4 {
		cellWidth = 4
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(m.cursor.Format("January 2006")))
	b.WriteString("\n")

	var head []string
	for _, wd := range weekdayHeader {
		head = append(head, m.styles.Dim.Width(cellWidth+2).Align(lipgloss.Center).Render(wd))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, head...))
	b.WriteString("\n")

	for row := 0; row < 6; row++ {
		var rendered []string
		for col := 0; col < 7; col++ {
			cell := cells[row*7+col]
			rendered = append(rendered, m.renderCell(cell, cellWidth))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCell(cell view.Cell, width int) string {
	day := fmt.Sprintf("%d", cell.Date.Day)
	if cell.Date == m.cursor {
		day = "·" + day
	}

	var lines []string
	lines = append(lines, day)
	for _, it := range cell.Pending {
		lines = append(lines, "• "+truncate(it.Text, width-2))
	}
	for _, it := range cell.Completed {
		lines = append(lines, m.styles.Completed.Render("✓ "+truncate(it.Text, width-2)))
	}
	if cell.Overflow > 0 {
		lines = append(lines, m.styles.Dim.Render(fmt.Sprintf("+%d more", cell.Overflow)))
	}

	style := m.styles.CalendarCell
	switch {
	case cell.Selected:
		style = m.styles.CalendarSelected
	case cell.Today:
		style = m.styles.CalendarToday
	case cell.OtherMonth:
		style = m.styles.CalendarOther
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) renderDetail() string {
	d := view.DetailForDate(m.selected, m.items)

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(m.selected.Format("Mon, Jan 2, 2006")))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Dim.Render(fmt.Sprintf("Pending (%d)", len(d.Pending))))
	b.WriteString("\n")
	if len(d.Pending) == 0 {
		b.WriteString(m.styles.Dim.Render("  no pending todos"))
		b.WriteString("\n")
	}
	for i, it := range d.Pending {
		b.WriteString(m.renderDetailLine(it, i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Dim.Render(fmt.Sprintf("Completed (%d)", len(d.Completed))))
	b.WriteString("\n")
	if len(d.Completed) == 0 {
		b.WriteString(m.styles.Dim.Render("  no completed todos"))
		b.WriteString("\n")
	}
	for i, it := range d.Completed {
		b.WriteString(m.renderDetailLine(it, len(d.Pending)+i))
		b.WriteString("\n")
	}

	return m.styles.Panel.Render(b.String())
}

func (m Model) renderDetailLine(it model.TodoItem, index int) string {
	check := "[ ]"
	if it.Completed {
		check = "[x]"
	}
	text := it.Text
	if it.Completed {
		text = m.styles.Completed.Render(text)
	}
	line := fmt.Sprintf("%s %s %s",
		check, text,
		m.styles.PriorityStyle(it.Priority.Rank()).Render(string(it.Priority)),
	)
	if index == m.detailCursor {
		return m.styles.SelectedItem.Render(line)
	}
	return m.styles.ListItem.Render(line)
}

func truncate(s string, max int) string {
	if max < 1 {
		max = 1
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
