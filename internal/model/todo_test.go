package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestPriorityRank(t *testing.T) {
	if PriorityUrgent.Rank() <= PriorityHigh.Rank() || PriorityHigh.Rank() <= PriorityNormal.Rank() {
		t.Errorf("ranks not ordered: urgent=%d high=%d normal=%d",
			PriorityUrgent.Rank(), PriorityHigh.Rank(), PriorityNormal.Rank())
	}
	// Unknown values rank with normal.
	if Priority("critical").Rank() != PriorityNormal.Rank() {
		t.Errorf("unknown priority rank = %d", Priority("critical").Rank())
	}
}

func TestEnumValidation(t *testing.T) {
	for _, p := range []Priority{PriorityNormal, PriorityHigh, PriorityUrgent} {
		if !p.Valid() {
			t.Errorf("%q should be valid", p)
		}
	}
	if Priority("medium").Valid() {
		t.Error("unknown priority accepted")
	}

	for _, c := range []Category{CategoryGeneral, CategoryWork, CategoryPersonal, CategoryShopping} {
		if !c.Valid() {
			t.Errorf("%q should be valid", c)
		}
	}
	if Category("sports").Valid() {
		t.Error("unknown category accepted")
	}
}

func TestCloneIsDeep(t *testing.T) {
	item := TodoItem{
		ID:       1,
		Text:     "original",
		Subtasks: []Subtask{{ID: 2, Text: "sub"}},
	}

	clone := item.Clone()
	clone.Subtasks[0].Text = "changed"

	if item.Subtasks[0].Text != "sub" {
		t.Error("clone shares the subtask slice")
	}
}

func TestTodoItemWireShape(t *testing.T) {
	item := TodoItem{
		ID:        42,
		Text:      "buy milk",
		Priority:  PriorityHigh,
		Category:  CategoryShopping,
		Subtasks:  []Subtask{},
		CreatedAt: time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC),
	}

	b, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)

	for _, want := range []string{
		`"id":42`,
		`"text":"buy milk"`,
		`"completed":false`,
		`"priority":"high"`,
		`"dueDate":""`,
		`"category":"shopping"`,
		`"subtasks":[]`,
		`"createdAt":"2024-03-01T09:30:00Z"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("document %s missing %s", s, want)
		}
	}
}

func TestSubtaskProgress(t *testing.T) {
	item := TodoItem{Subtasks: []Subtask{
		{ID: 1, Completed: true},
		{ID: 2},
		{ID: 3, Completed: true},
	}}
	if done, total := item.SubtaskProgress(); done != 2 || total != 3 {
		t.Errorf("progress = %d/%d", done, total)
	}

	if done, total := (TodoItem{}).SubtaskProgress(); done != 0 || total != 0 {
		t.Errorf("empty progress = %d/%d", done, total)
	}
}
