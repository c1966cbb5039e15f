// Package collection holds the in-memory working copy of the authenticated
// user's todo items. It is the sole mutation surface: callers mutate through
// its operations, then persist and re-derive views. The collection itself
// never talks to storage or the UI.
package collection

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/smartdoit/smarttodo/internal/model"
)

// ErrEmptyText is returned when an item or subtask is added with text that
// is empty after trimming.
var ErrEmptyText = errors.New("text must not be empty")

// SortKey selects a whole-collection sort order.
type SortKey string

const (
	SortByPriority SortKey = "priority"
	SortByDate     SortKey = "date"
)

// IDGenerator assigns identities for items and subtasks. Identities are
// unique for the lifetime of a session; Seed raises the floor so hydrated
// items never collide with newly created ones.
type IDGenerator struct {
	next int64
}

// NewIDGenerator returns a generator starting at 1.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{next: 1}
}

// Seed ensures subsequent IDs are strictly greater than floor.
func (g *IDGenerator) Seed(floor int64) {
	if floor >= g.next {
		g.next = floor + 1
	}
}

// Next returns a fresh identity.
func (g *IDGenerator) Next() int64 {
	id := g.next
	g.next++
	return id
}

// Draft carries the user-supplied fields for a new item.
type Draft struct {
	Text     string
	Priority model.Priority
	DueDate  model.Date
	Category model.Category
}

// Collection is an ordered set of one user's todo items. Insertion order is
// the natural order; SortBy reorders in place.
type Collection struct {
	items []model.TodoItem
	ids   *IDGenerator
	now   func() time.Time
}

// New creates an empty collection with the given ID generator.
func New(ids *IDGenerator) *Collection {
	return &Collection{ids: ids, now: time.Now}
}

// SetClock overrides the creation-timestamp source. Intended for tests.
func (c *Collection) SetClock(now func() time.Time) {
	c.now = now
}

// Len returns the number of items.
func (c *Collection) Len() int {
	return len(c.items)
}

// Items returns a deep-copied snapshot in collection order.
func (c *Collection) Items() []model.TodoItem {
	out := make([]model.TodoItem, len(c.items))
	for i, it := range c.items {
		out[i] = it.Clone()
	}
	return out
}

// Find returns a copy of the item with the given identity.
func (c *Collection) Find(id int64) (model.TodoItem, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i].Clone(), true
	}
	return model.TodoItem{}, false
}

// Add validates and appends a new item, assigning its identity and creation
// timestamp. Invalid priority and category values fall back to the defaults.
func (c *Collection) Add(draft Draft) (model.TodoItem, error) {
	text := strings.TrimSpace(draft.Text)
	if text == "" {
		return model.TodoItem{}, ErrEmptyText
	}

	priority := draft.Priority
	if !priority.Valid() {
		priority = model.PriorityNormal
	}
	category := draft.Category
	if !category.Valid() {
		category = model.CategoryGeneral
	}

	item := model.TodoItem{
		ID:        c.ids.Next(),
		Text:      text,
		Priority:  priority,
		DueDate:   draft.DueDate,
		Category:  category,
		Subtasks:  []model.Subtask{},
		CreatedAt: c.now(),
	}
	c.items = append(c.items, item)
	return item.Clone(), nil
}

// Remove deletes the item with the given identity. Absent IDs are a no-op.
func (c *Collection) Remove(id int64) {
	if i := c.index(id); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
}

// Update applies mutate to the item with the given identity. Absent IDs are
// a no-op. The mutator must not change the item's identity.
func (c *Collection) Update(id int64, mutate func(*model.TodoItem)) {
	if i := c.index(id); i >= 0 {
		mutate(&c.items[i])
		c.items[i].ID = id
	}
}

// Toggle flips the completed flag of the item with the given identity.
func (c *Collection) Toggle(id int64) {
	c.Update(id, func(t *model.TodoItem) {
		t.Completed = !t.Completed
	})
}

// AddSubtask appends a subtask to the given parent. Returns ErrEmptyText for
// blank text; absent parents are a silent no-op reported via ok=false.
func (c *Collection) AddSubtask(parentID int64, text string) (model.Subtask, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Subtask{}, false, ErrEmptyText
	}

	i := c.index(parentID)
	if i < 0 {
		return model.Subtask{}, false, nil
	}

	st := model.Subtask{ID: c.ids.Next(), Text: text}
	c.items[i].Subtasks = append(c.items[i].Subtasks, st)
	return st, true, nil
}

// RemoveSubtask deletes a subtask from the given parent. No-op if either
// identity is absent.
func (c *Collection) RemoveSubtask(parentID, subtaskID int64) {
	i := c.index(parentID)
	if i < 0 {
		return
	}
	subs := c.items[i].Subtasks
	for j, st := range subs {
		if st.ID == subtaskID {
			c.items[i].Subtasks = append(subs[:j], subs[j+1:]...)
			return
		}
	}
}

// ToggleSubtask flips the completed flag of a subtask within the given
// parent. No-op if either identity is absent.
func (c *Collection) ToggleSubtask(parentID, subtaskID int64) {
	i := c.index(parentID)
	if i < 0 {
		return
	}
	subs := c.items[i].Subtasks
	for j := range subs {
		if subs[j].ID == subtaskID {
			subs[j].Completed = !subs[j].Completed
			return
		}
	}
}

// SortBy reorders the collection in place. Completed items always sort after
// pending ones. Within a bucket, SortByPriority orders urgent > high > normal
// and SortByDate orders by due date ascending with dateless items last. The
// sort is stable, so equal keys keep their relative order.
func (c *Collection) SortBy(key SortKey) {
	switch key {
	case SortByPriority:
		sort.SliceStable(c.items, func(i, j int) bool {
			a, b := c.items[i], c.items[j]
			if a.Completed != b.Completed {
				return !a.Completed
			}
			return a.Priority.Rank() > b.Priority.Rank()
		})
	case SortByDate:
		sort.SliceStable(c.items, func(i, j int) bool {
			a, b := c.items[i], c.items[j]
			if a.Completed != b.Completed {
				return !a.Completed
			}
			if a.DueDate.IsZero() || b.DueDate.IsZero() {
				return !a.DueDate.IsZero() && b.DueDate.IsZero()
			}
			return a.DueDate.Before(b.DueDate)
		})
	}
}

// ClearCompleted removes all items whose completed flag is set, preserving
// the relative order of the remaining pending items.
func (c *Collection) ClearCompleted() {
	kept := c.items[:0]
	for _, it := range c.items {
		if !it.Completed {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

// ReplaceAll discards the collection's contents in favor of items, cloning
// each entry and reseeding the ID generator past every identity seen. Used
// by hydration and by the logout reset.
func (c *Collection) ReplaceAll(items []model.TodoItem) {
	c.items = make([]model.TodoItem, len(items))
	for i, it := range items {
		c.items[i] = it.Clone()
		if c.items[i].Subtasks == nil {
			c.items[i].Subtasks = []model.Subtask{}
		}
		c.ids.Seed(it.ID)
		for _, st := range it.Subtasks {
			c.ids.Seed(st.ID)
		}
	}
}

// Clear empties the collection.
func (c *Collection) Clear() {
	c.items = nil
}

func (c *Collection) index(id int64) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}
