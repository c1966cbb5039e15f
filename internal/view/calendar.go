package view

import "github.com/smartdoit/smarttodo/internal/model"

// GridCells is the fixed size of the month grid: 6 weeks of 7 days. Using a
// constant count keeps the layout stable across month lengths and leap years.
const GridCells = 6 * 7

// Per-cell display caps. A cell shows at most three pending and two
// completed items; anything beyond five total collapses into an overflow
// count.
const (
	cellMaxPending   = 3
	cellMaxCompleted = 2
	cellMaxTotal     = cellMaxPending + cellMaxCompleted
)

// Cell is one day of the month grid.
type Cell struct {
	Date       model.Date
	OtherMonth bool
	Today      bool
	Selected   bool

	// Pending and Completed hold the display subset for the day, already
	// capped; Total counts every item due that day.
	Pending   []model.TodoItem
	Completed []model.TodoItem
	Total     int

	// Overflow is the number of items hidden by the caps, zero when the day
	// fits.
	Overflow int
}

// HasItems reports whether any item is due on this cell's date.
func (c Cell) HasItems() bool {
	return c.Total > 0
}

// MonthGrid projects items onto a 42-cell calendar for the month containing
// cursor. The grid starts on the Sunday on or before the 1st of that month.
// selected may be the zero Date when no day is picked.
func MonthGrid(cursor, today, selected model.Date, items []model.TodoItem) []Cell {
	first := cursor.MonthStart()
	start := first.AddDays(-int(first.Weekday()))

	cells := make([]Cell, GridCells)
	for i := range cells {
		date := start.AddDays(i)
		cell := Cell{
			Date:       date,
			OtherMonth: date.Month != first.Month,
			Today:      date == today,
			Selected:   !selected.IsZero() && date == selected,
		}

		due := ItemsForDate(date, items)
		pending, completed := Partition(due)
		cell.Total = len(due)
		if len(pending) > cellMaxPending {
			pending = pending[:cellMaxPending]
		}
		if len(completed) > cellMaxCompleted {
			completed = completed[:cellMaxCompleted]
		}
		cell.Pending = pending
		cell.Completed = completed
		if cell.Total > cellMaxTotal {
			cell.Overflow = cell.Total - cellMaxTotal
		}

		cells[i] = cell
	}
	return cells
}
