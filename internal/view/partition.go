// Package view derives presentations from a collection snapshot. Every
// function here is pure: state in, view-model out, no mutation.
package view

import "github.com/smartdoit/smarttodo/internal/model"

// Partition splits items into pending and completed buckets, preserving the
// snapshot order within each bucket.
func Partition(items []model.TodoItem) (pending, completed []model.TodoItem) {
	pending = []model.TodoItem{}
	completed = []model.TodoItem{}
	for _, it := range items {
		if it.Completed {
			completed = append(completed, it)
		} else {
			pending = append(pending, it)
		}
	}
	return pending, completed
}

// ItemsForDate returns the items whose due date is exactly date, in snapshot
// order. Items without a due date never match.
func ItemsForDate(date model.Date, items []model.TodoItem) []model.TodoItem {
	if date.IsZero() {
		return nil
	}
	var out []model.TodoItem
	for _, it := range items {
		if it.DueDate == date {
			out = append(out, it)
		}
	}
	return out
}

// DayDetail is the per-selected-date panel: that date's items partitioned by
// completion.
type DayDetail struct {
	Date      model.Date
	Pending   []model.TodoItem
	Completed []model.TodoItem
}

// DetailForDate builds the panel for one calendar date.
func DetailForDate(date model.Date, items []model.TodoItem) DayDetail {
	pending, completed := Partition(ItemsForDate(date, items))
	return DayDetail{Date: date, Pending: pending, Completed: completed}
}
