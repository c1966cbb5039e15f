package collection

import (
	"errors"
	"testing"
	"time"

	"github.com/smartdoit/smarttodo/internal/model"
)

func newTestCollection() *Collection {
	c := New(NewIDGenerator())
	c.SetClock(func() time.Time {
		return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	})
	return c
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	c := newTestCollection()

	a, err := c.Add(Draft{Text: "first"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	b, err := c.Add(Draft{Text: "second"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if a.ID == b.ID {
		t.Errorf("IDs must be unique, both got %d", a.ID)
	}
	if b.ID <= a.ID {
		t.Errorf("IDs must increase: %d then %d", a.ID, b.ID)
	}
	if a.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
	if a.Subtasks == nil {
		t.Error("Subtasks must be empty, not nil")
	}
}

func TestAddTrimsAndRejectsEmptyText(t *testing.T) {
	c := newTestCollection()

	it, err := c.Add(Draft{Text: "  buy milk  "})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if it.Text != "buy milk" {
		t.Errorf("text not trimmed: %q", it.Text)
	}

	if _, err := c.Add(Draft{Text: "   "}); !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("rejected add must not change the collection, len=%d", c.Len())
	}
}

func TestAddFallsBackOnInvalidEnums(t *testing.T) {
	c := newTestCollection()

	it, err := c.Add(Draft{Text: "x", Priority: "critical", Category: "sports"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if it.Priority != model.PriorityNormal {
		t.Errorf("priority fallback: got %q", it.Priority)
	}
	if it.Category != model.CategoryGeneral {
		t.Errorf("category fallback: got %q", it.Category)
	}
}

func TestToggleAndRemove(t *testing.T) {
	c := newTestCollection()
	it, _ := c.Add(Draft{Text: "x"})

	c.Toggle(it.ID)
	got, ok := c.Find(it.ID)
	if !ok || !got.Completed {
		t.Fatalf("toggle did not complete the item")
	}
	c.Toggle(it.ID)
	got, _ = c.Find(it.ID)
	if got.Completed {
		t.Fatalf("second toggle did not revert")
	}

	// Absent IDs are a no-op.
	c.Toggle(999)
	c.Remove(999)
	if c.Len() != 1 {
		t.Errorf("no-op mutations changed the collection")
	}

	c.Remove(it.ID)
	if c.Len() != 0 {
		t.Errorf("remove failed, len=%d", c.Len())
	}
}

func TestSubtaskLifecycle(t *testing.T) {
	c := newTestCollection()
	parent, _ := c.Add(Draft{Text: "parent"})

	st, ok, err := c.AddSubtask(parent.ID, "  step one ")
	if err != nil || !ok {
		t.Fatalf("add subtask: ok=%v err=%v", ok, err)
	}
	if st.Text != "step one" {
		t.Errorf("subtask text not trimmed: %q", st.Text)
	}
	if st.ID == parent.ID {
		t.Errorf("subtask shares the parent's ID")
	}

	if _, _, err := c.AddSubtask(parent.ID, " "); !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}
	if _, ok, err := c.AddSubtask(999, "orphan"); ok || err != nil {
		t.Errorf("absent parent: ok=%v err=%v", ok, err)
	}

	c.ToggleSubtask(parent.ID, st.ID)
	got, _ := c.Find(parent.ID)
	if !got.Subtasks[0].Completed {
		t.Error("toggle subtask had no effect")
	}
	if done, total := got.SubtaskProgress(); done != 1 || total != 1 {
		t.Errorf("progress = %d/%d", done, total)
	}

	// Subtask completion never touches the parent flag.
	if got.Completed {
		t.Error("parent completed by subtask toggle")
	}

	c.RemoveSubtask(parent.ID, st.ID)
	got, _ = c.Find(parent.ID)
	if len(got.Subtasks) != 0 {
		t.Errorf("remove subtask failed: %d left", len(got.Subtasks))
	}
}

func TestSortByPriority(t *testing.T) {
	c := newTestCollection()
	c.Add(Draft{Text: "low done"})
	c.Add(Draft{Text: "normal"})
	c.Add(Draft{Text: "urgent", Priority: model.PriorityUrgent})
	c.Add(Draft{Text: "high", Priority: model.PriorityHigh})

	first, _ := c.Add(Draft{Text: "urgent done", Priority: model.PriorityUrgent})
	c.Toggle(first.ID)
	items := c.Items()
	c.Toggle(items[0].ID) // "low done"

	c.SortBy(SortByPriority)

	want := []string{"urgent", "high", "normal", "urgent done", "low done"}
	got := c.Items()
	for i, text := range want {
		if got[i].Text != text {
			t.Fatalf("order[%d] = %q, want %q (full: %v)", i, got[i].Text, text, texts(got))
		}
	}
}

func TestSortByDate(t *testing.T) {
	c := newTestCollection()
	c.Add(Draft{Text: "no date"})
	c.Add(Draft{Text: "late", DueDate: model.NewDate(2024, time.March, 20)})
	c.Add(Draft{Text: "early", DueDate: model.NewDate(2024, time.March, 5)})
	done, _ := c.Add(Draft{Text: "done early", DueDate: model.NewDate(2024, time.March, 1)})
	c.Toggle(done.ID)

	c.SortBy(SortByDate)

	want := []string{"early", "late", "no date", "done early"}
	got := c.Items()
	for i, text := range want {
		if got[i].Text != text {
			t.Fatalf("order[%d] = %q, want %q (full: %v)", i, got[i].Text, text, texts(got))
		}
	}
}

func TestSortIsStable(t *testing.T) {
	c := newTestCollection()
	c.Add(Draft{Text: "a", Priority: model.PriorityHigh})
	c.Add(Draft{Text: "b", Priority: model.PriorityHigh})
	c.Add(Draft{Text: "c", Priority: model.PriorityHigh})

	c.SortBy(SortByPriority)

	got := texts(c.Items())
	for i, text := range []string{"a", "b", "c"} {
		if got[i] != text {
			t.Fatalf("equal keys reordered: %v", got)
		}
	}
}

func TestClearCompleted(t *testing.T) {
	c := newTestCollection()
	keep1, _ := c.Add(Draft{Text: "keep1"})
	drop, _ := c.Add(Draft{Text: "drop"})
	keep2, _ := c.Add(Draft{Text: "keep2"})
	c.Toggle(drop.ID)

	c.ClearCompleted()

	got := c.Items()
	if len(got) != 2 || got[0].ID != keep1.ID || got[1].ID != keep2.ID {
		t.Errorf("kept %v", texts(got))
	}
}

func TestReplaceAllReseedsIDs(t *testing.T) {
	c := newTestCollection()

	hydrated := []model.TodoItem{
		{ID: 100, Text: "stored", Subtasks: []model.Subtask{{ID: 250, Text: "sub"}}},
		{ID: 120, Text: "stored two"},
	}
	c.ReplaceAll(hydrated)

	if c.Len() != 2 {
		t.Fatalf("len = %d", c.Len())
	}

	fresh, err := c.Add(Draft{Text: "new"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if fresh.ID <= 250 {
		t.Errorf("new ID %d collides with hydrated identities", fresh.ID)
	}

	// Hydrated items with nil subtasks normalize to an empty slice.
	got, _ := c.Find(120)
	if got.Subtasks == nil {
		t.Error("nil subtasks not normalized")
	}
}

func TestItemsReturnsDeepCopy(t *testing.T) {
	c := newTestCollection()
	it, _ := c.Add(Draft{Text: "original"})
	c.AddSubtask(it.ID, "sub")

	snap := c.Items()
	snap[0].Text = "mutated"
	snap[0].Subtasks[0].Text = "mutated sub"

	got, _ := c.Find(it.ID)
	if got.Text != "original" || got.Subtasks[0].Text != "sub" {
		t.Error("snapshot mutation leaked into the collection")
	}
}

func texts(items []model.TodoItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Text
	}
	return out
}
