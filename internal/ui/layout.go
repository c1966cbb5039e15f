package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/smartdoit/smarttodo/internal/theme"
)

// Layout manages the terminal frame dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// RenderHeader renders the top header bar with a title on the left and the
// session/user indicator on the right.
func (l Layout) RenderHeader(st theme.Styles, title, userInfo string) string {
	titleRendered := st.Header.Render(title)

	userRendered := st.Header.
		Align(lipgloss.Right).
		Render(userInfo)

	gap := l.Width -
		lipgloss.Width(titleRendered) -
		lipgloss.Width(userRendered)
	if gap < 0 {
		gap = 0
	}

	filler := st.Header.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(st.Header.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		userRendered,
	)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(st theme.Styles, hints string) string {
	rendered := st.StatusBar.Render(hints)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := st.StatusBar.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(st.StatusBar.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}
