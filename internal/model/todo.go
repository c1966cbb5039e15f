package model

import "time"

// Priority levels for a todo item.
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank returns the sort weight of a priority; higher sorts first.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 3
	case PriorityHigh:
		return 2
	default:
		return 1
	}
}

// Valid reports whether p is one of the known priority values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Category groups todo items for display.
type Category string

const (
	CategoryGeneral  Category = "general"
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryShopping Category = "shopping"
)

// Valid reports whether c is one of the known category values.
func (c Category) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryWork, CategoryPersonal, CategoryShopping:
		return true
	}
	return false
}

// Subtask is a lightweight checklist entry owned by exactly one todo item.
// It has no lifecycle of its own: deleting the parent deletes it.
type Subtask struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// TodoItem is a single task in the user's collection.
//
// The JSON tags define the persisted document shape: DueDate marshals as
// "YYYY-MM-DD" or the empty string, CreatedAt as RFC 3339.
type TodoItem struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Priority  Priority  `json:"priority"`
	DueDate   Date      `json:"dueDate"`
	Category  Category  `json:"category"`
	Subtasks  []Subtask `json:"subtasks"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubtaskProgress returns the number of completed subtasks and the total.
func (t TodoItem) SubtaskProgress() (done, total int) {
	for _, st := range t.Subtasks {
		if st.Completed {
			done++
		}
	}
	return done, len(t.Subtasks)
}

// Clone returns a deep copy of the item so callers can hand out snapshots
// without exposing the collection's backing slices.
func (t TodoItem) Clone() TodoItem {
	c := t
	if t.Subtasks != nil {
		c.Subtasks = make([]Subtask, len(t.Subtasks))
		copy(c.Subtasks, t.Subtasks)
	}
	return c
}
