package view

import (
	"testing"
	"time"

	"github.com/smartdoit/smarttodo/internal/model"
)

func TestPartitionKeepsOrder(t *testing.T) {
	items := []model.TodoItem{
		{ID: 1, Text: "a"},
		{ID: 2, Text: "b", Completed: true},
		{ID: 3, Text: "c"},
		{ID: 4, Text: "d", Completed: true},
	}

	pending, completed := Partition(items)

	if len(pending) != 2 || pending[0].ID != 1 || pending[1].ID != 3 {
		t.Errorf("pending = %v", ids(pending))
	}
	if len(completed) != 2 || completed[0].ID != 2 || completed[1].ID != 4 {
		t.Errorf("completed = %v", ids(completed))
	}
}

func TestPartitionEmptyIsNonNil(t *testing.T) {
	pending, completed := Partition(nil)
	if pending == nil || completed == nil {
		t.Error("buckets must be empty slices, not nil")
	}
}

func TestItemsForDate(t *testing.T) {
	day := model.NewDate(2024, time.March, 10)
	items := []model.TodoItem{
		{ID: 1, DueDate: day},
		{ID: 2, DueDate: model.NewDate(2024, time.March, 11)},
		{ID: 3}, // no due date
		{ID: 4, DueDate: day, Completed: true},
	}

	got := ItemsForDate(day, items)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 4 {
		t.Errorf("got %v", ids(got))
	}

	if got := ItemsForDate(model.Date{}, items); got != nil {
		t.Errorf("zero date must match nothing, got %v", ids(got))
	}
}

func TestDetailForDate(t *testing.T) {
	day := model.NewDate(2024, time.March, 10)
	items := []model.TodoItem{
		{ID: 1, DueDate: day},
		{ID: 2, DueDate: day, Completed: true},
	}

	d := DetailForDate(day, items)
	if d.Date != day {
		t.Errorf("date = %v", d.Date)
	}
	if len(d.Pending) != 1 || d.Pending[0].ID != 1 {
		t.Errorf("pending = %v", ids(d.Pending))
	}
	if len(d.Completed) != 1 || d.Completed[0].ID != 2 {
		t.Errorf("completed = %v", ids(d.Completed))
	}
}

func ids(items []model.TodoItem) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
