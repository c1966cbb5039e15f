// Package theme defines the switchable light/dark color palettes and the
// lipgloss styles derived from them.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme is a named color palette.
type Theme struct {
	Name string

	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Border     lipgloss.Color

	Primary lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	PriorityNormal lipgloss.Color
	PriorityHigh   lipgloss.Color
	PriorityUrgent lipgloss.Color
}

// Light is the default palette.
var Light = Theme{
	Name: "light",

	Background: lipgloss.Color("#FFFFFF"),
	Foreground: lipgloss.Color("#1A202C"),
	Subtle:     lipgloss.Color("#718096"),
	Border:     lipgloss.Color("#E2E8F0"),

	Primary: lipgloss.Color("#2B6CB0"),
	Success: lipgloss.Color("#2F855A"),
	Warning: lipgloss.Color("#B7791F"),
	Error:   lipgloss.Color("#C53030"),

	PriorityNormal: lipgloss.Color("#718096"),
	PriorityHigh:   lipgloss.Color("#B7791F"),
	PriorityUrgent: lipgloss.Color("#C53030"),
}

// Dark mirrors Light for dark terminals.
var Dark = Theme{
	Name: "dark",

	Background: lipgloss.Color("#1A202C"),
	Foreground: lipgloss.Color("#F8F9FA"),
	Subtle:     lipgloss.Color("#868E96"),
	Border:     lipgloss.Color("#495057"),

	Primary: lipgloss.Color("#5B9BD5"),
	Success: lipgloss.Color("#6BCB77"),
	Warning: lipgloss.Color("#FFD93D"),
	Error:   lipgloss.Color("#FF6B6B"),

	PriorityNormal: lipgloss.Color("#868E96"),
	PriorityHigh:   lipgloss.Color("#FFD93D"),
	PriorityUrgent: lipgloss.Color("#FF6B6B"),
}

// ByName returns the palette for a configured theme name, defaulting to
// Light for unknown names.
func ByName(name string) Theme {
	if name == "dark" {
		return Dark
	}
	return Light
}

// Toggle returns the opposite palette.
func (t Theme) Toggle() Theme {
	if t.Name == "dark" {
		return Light
	}
	return Dark
}

// Styles holds the pre-computed lipgloss styles for a palette.
type Styles struct {
	Header    lipgloss.Style
	StatusBar lipgloss.Style

	ListItem     lipgloss.Style
	SelectedItem lipgloss.Style
	Completed    lipgloss.Style

	CategoryBadge lipgloss.Style
	DueBadge      lipgloss.Style
	DueToday      lipgloss.Style
	DueOverdue    lipgloss.Style

	CalendarCell     lipgloss.Style
	CalendarOther    lipgloss.Style
	CalendarToday    lipgloss.Style
	CalendarSelected lipgloss.Style

	Panel lipgloss.Style
	Help  lipgloss.Style
	Error lipgloss.Style
	Dim   lipgloss.Style

	PriorityNormal lipgloss.Style
	PriorityHigh   lipgloss.Style
	PriorityUrgent lipgloss.Style
}

// PriorityStyle returns the color-coded style for a priority rank
// (3=urgent, 2=high, otherwise normal).
func (s Styles) PriorityStyle(rank int) lipgloss.Style {
	switch rank {
	case 3:
		return s.PriorityUrgent
	case 2:
		return s.PriorityHigh
	default:
		return s.PriorityNormal
	}
}

// NewStyles derives the style set for a palette.
func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Subtle).
			Padding(0, 1),

		ListItem: lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(t.Foreground),

		SelectedItem: lipgloss.NewStyle().
			PaddingLeft(1).
			Bold(true).
			Foreground(t.Primary).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Primary),

		Completed: lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(t.Subtle),

		CategoryBadge: lipgloss.NewStyle().
			Foreground(t.Subtle),

		DueBadge: lipgloss.NewStyle().
			Foreground(t.Subtle),

		DueToday: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Warning),

		DueOverdue: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Error),

		CalendarCell: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(t.Border),

		CalendarOther: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(t.Border).
			Foreground(t.Subtle),

		CalendarToday: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(t.Warning).
			Bold(true),

		CalendarSelected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(t.Primary).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),

		Help: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Italic(true),

		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Error),

		Dim: lipgloss.NewStyle().
			Foreground(t.Subtle),

		PriorityNormal: lipgloss.NewStyle().Bold(true).Foreground(t.PriorityNormal),
		PriorityHigh:   lipgloss.NewStyle().Bold(true).Foreground(t.PriorityHigh),
		PriorityUrgent: lipgloss.NewStyle().Bold(true).Foreground(t.PriorityUrgent),
	}
}
