package backend_test

import (
	"context"
	"testing"
	"time"

	"github.com/smartdoit/smarttodo/internal/backend"
	"github.com/smartdoit/smarttodo/internal/model"
	"github.com/smartdoit/smarttodo/tests/testutil"
)

func TestRegisterAndLogin(t *testing.T) {
	c := testutil.NewTestClient(t)
	ctx := context.Background()

	if err := c.Register(ctx, "alice", "secret"); err != nil {
		t.Fatalf("register: %v", err)
	}

	sess, err := c.Login(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.User.Username != "alice" || sess.User.ID == "" {
		t.Errorf("session user = %+v", sess.User)
	}
}

func TestRegisterTrimsUsername(t *testing.T) {
	c := testutil.NewTestClient(t)
	ctx := context.Background()

	if err := c.Register(ctx, "  bob  ", "secret"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := c.Login(ctx, "bob", "secret"); err != nil {
		t.Errorf("login with trimmed name: %v", err)
	}
}

func TestRegisterConflictIsCaseInsensitive(t *testing.T) {
	c := testutil.NewTestClient(t)
	ctx := context.Background()

	if err := c.Register(ctx, "alice", "secret"); err != nil {
		t.Fatalf("register: %v", err)
	}

	err := c.Register(ctx, "ALICE", "other")
	if !backend.IsAuthError(err) {
		t.Errorf("duplicate register: got %v, want AuthError", err)
	}
}

func TestRegisterRejectsBlankFields(t *testing.T) {
	c := testutil.NewTestClient(t)
	ctx := context.Background()

	if err := c.Register(ctx, "   ", "secret"); !backend.IsAuthError(err) {
		t.Errorf("blank username: got %v", err)
	}
	if err := c.Register(ctx, "carol", ""); !backend.IsAuthError(err) {
		t.Errorf("blank password: got %v", err)
	}
}

func TestLoginFailures(t *testing.T) {
	c := testutil.NewTestClient(t)
	ctx := context.Background()

	if err := c.Register(ctx, "alice", "secret"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := c.Login(ctx, "alice", "wrong"); !backend.IsAuthError(err) {
		t.Errorf("wrong password: got %v, want AuthError", err)
	}
	if _, err := c.Login(ctx, "nobody", "secret"); !backend.IsAuthError(err) {
		t.Errorf("unknown user: got %v, want AuthError", err)
	}

	// Both failures read the same to the caller.
	_, errPw := c.Login(ctx, "alice", "wrong")
	_, errUser := c.Login(ctx, "nobody", "secret")
	if errPw.Error() != errUser.Error() {
		t.Errorf("failure messages differ: %q vs %q", errPw, errUser)
	}
}

func TestAuthChangesStream(t *testing.T) {
	c := testutil.NewTestClient(t)
	ctx := context.Background()

	if err := c.Register(ctx, "alice", "secret"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := c.Login(ctx, "alice", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	select {
	case u := <-c.AuthChanges():
		if u == nil || u.Username != "alice" {
			t.Errorf("sign-in event = %+v", u)
		}
	case <-time.After(time.Second):
		t.Fatal("no sign-in event")
	}

	if err := c.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	select {
	case u := <-c.AuthChanges():
		if u != nil {
			t.Errorf("sign-out event = %+v", u)
		}
	case <-time.After(time.Second):
		t.Fatal("no sign-out event")
	}
}

// registerUser creates and signs in a throwaway account, returning its ID.
func registerUser(t *testing.T, c *backend.SQLiteClient, username string) string {
	t.Helper()
	ctx := context.Background()
	if err := c.Register(ctx, username, "secret"); err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	sess, err := c.Login(ctx, username, "secret")
	if err != nil {
		t.Fatalf("login %s: %v", username, err)
	}
	return sess.User.ID
}

func TestLoadTodosEmptyForNewUser(t *testing.T) {
	c := testutil.NewTestClient(t)

	items, err := c.LoadTodos(context.Background(), "no-such-user")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("new user must load an empty collection, got %v", items)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	c := testutil.NewTestClient(t)
	ctx := context.Background()
	userID := registerUser(t, c, "alice")

	stored := []model.TodoItem{
		{
			ID:        1,
			Text:      "buy milk",
			Priority:  model.PriorityUrgent,
			DueDate:   model.NewDate(2024, time.March, 10),
			Category:  model.CategoryShopping,
			Subtasks:  []model.Subtask{{ID: 2, Text: "check fridge", Completed: true}},
			CreatedAt: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:       3,
			Text:     "no due date",
			Priority: model.PriorityNormal,
			Category: model.CategoryGeneral,
			Subtasks: []model.Subtask{},
		},
	}

	if err := c.SaveTodos(ctx, userID, stored); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := c.LoadTodos(ctx, userID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("loaded %d items", len(got))
	}
	if got[0].Text != "buy milk" || got[0].Priority != model.PriorityUrgent {
		t.Errorf("item = %+v", got[0])
	}
	if got[0].DueDate != model.NewDate(2024, time.March, 10) {
		t.Errorf("due date = %v", got[0].DueDate)
	}
	if len(got[0].Subtasks) != 1 || !got[0].Subtasks[0].Completed {
		t.Errorf("subtasks = %+v", got[0].Subtasks)
	}
	if !got[1].DueDate.IsZero() {
		t.Errorf("dateless item round-tripped to %v", got[1].DueDate)
	}

	// A second save replaces the document.
	if err := c.SaveTodos(ctx, userID, stored[:1]); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err = c.LoadTodos(ctx, userID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("replacement save kept %d items", len(got))
	}
}

func TestSaveTodosNilMeansEmpty(t *testing.T) {
	c := testutil.NewTestClient(t)
	ctx := context.Background()
	userID := registerUser(t, c, "bob")

	if err := c.SaveTodos(ctx, userID, nil); err != nil {
		t.Fatalf("save nil: %v", err)
	}
	got, err := c.LoadTodos(ctx, userID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %v", got)
	}
}

func TestStatus(t *testing.T) {
	c := testutil.NewTestClient(t)
	ctx := context.Background()

	st := c.Status(ctx)
	if !st.Connected {
		t.Errorf("status = %+v", st)
	}
	if st.ServerType != "sqlite" {
		t.Errorf("server type = %q", st.ServerType)
	}
	if st.CurrentUser != nil {
		t.Errorf("current user = %+v before login", st.CurrentUser)
	}

	if err := c.Register(ctx, "alice", "secret"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := c.Login(ctx, "alice", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	st = c.Status(ctx)
	if st.CurrentUser == nil || st.CurrentUser.Username != "alice" {
		t.Errorf("current user = %+v after login", st.CurrentUser)
	}
}
