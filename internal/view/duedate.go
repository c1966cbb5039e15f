package view

import (
	"fmt"

	"github.com/smartdoit/smarttodo/internal/model"
)

// Tone classifies a due date for styling.
type Tone int

const (
	ToneNone Tone = iota
	ToneToday
	ToneOverdue
)

// DueLabel is the display form of a due date relative to today.
type DueLabel struct {
	// Text is the relative wording ("today", "tomorrow", "3 days later",
	// "5 days ago").
	Text string

	// Absolute is the plain formatted date, for contexts that want it
	// alongside or instead of the relative wording.
	Absolute string

	Tone Tone
}

// FormatDue computes the relative label for a due date. The diff is taken in
// whole calendar days, so time-of-day never shifts the boundary.
func FormatDue(due, today model.Date) DueLabel {
	label := DueLabel{Absolute: due.Format("Jan 2, 2006")}

	diff := today.DaysUntil(due)
	switch {
	case diff == 0:
		label.Text = "today"
		label.Tone = ToneToday
	case diff == 1:
		label.Text = "tomorrow"
	case diff == -1:
		label.Text = "yesterday"
		label.Tone = ToneOverdue
	case diff > 1:
		label.Text = fmt.Sprintf("%d days later", diff)
	default:
		label.Text = fmt.Sprintf("%d days ago", -diff)
		label.Tone = ToneOverdue
	}
	return label
}
