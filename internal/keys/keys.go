package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Views
	ListView     key.Binding
	CalendarView key.Binding

	// Item actions
	New           key.Binding
	Toggle        key.Binding
	Delete        key.Binding
	Subtasks      key.Binding
	ClearComplete key.Binding

	// Sort
	SortPriority key.Binding
	SortDate     key.Binding

	// Calendar navigation
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding

	// Session / appearance
	Login  key.Binding
	Logout key.Binding
	Theme  key.Binding

	// Help toggle
	Help key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ListView: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "list view"),
		),
		CalendarView: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "calendar view"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new todo"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete"),
		),
		Subtasks: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "subtasks"),
		),
		ClearComplete: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear completed"),
		),
		SortPriority: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "sort by priority"),
		),
		SortDate: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "sort by due date"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("h", "pgup"),
			key.WithHelp("h", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("l", "pgdown"),
			key.WithHelp("l", "next month"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Login: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "sign in"),
		),
		Logout: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sign out"),
		),
		Theme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "toggle theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.New, k.Toggle,
		k.CalendarView, k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.ListView, k.CalendarView, k.PrevMonth, k.NextMonth, k.Today},
		{k.New, k.Toggle, k.Delete, k.Subtasks, k.ClearComplete},
		{k.SortPriority, k.SortDate, k.Login, k.Logout, k.Theme},
	}
}
