package app

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/smartdoit/smarttodo/internal/backend"
	"github.com/smartdoit/smarttodo/internal/model"
	appsync "github.com/smartdoit/smarttodo/internal/sync"
	"github.com/smartdoit/smarttodo/internal/ui/todolist"
)

type fakeClient struct {
	saved  []model.TodoItem
	authCh chan *backend.User
}

func newFakeClient() *fakeClient {
	return &fakeClient{authCh: make(chan *backend.User, 1)}
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (backend.Session, error) {
	return backend.Session{}, nil
}
func (f *fakeClient) Register(ctx context.Context, username, password string) error { return nil }
func (f *fakeClient) Logout(ctx context.Context) error                              { return nil }
func (f *fakeClient) AuthChanges() <-chan *backend.User                             { return f.authCh }

func (f *fakeClient) LoadTodos(ctx context.Context, userID string) ([]model.TodoItem, error) {
	return []model.TodoItem{}, nil
}

func (f *fakeClient) SaveTodos(ctx context.Context, userID string, items []model.TodoItem) error {
	f.saved = items
	return nil
}

func (f *fakeClient) Status(ctx context.Context) backend.ServerStatus {
	return backend.ServerStatus{Connected: true}
}
func (f *fakeClient) Close() error { return nil }

func newTestModel(t *testing.T, client backend.Client) Model {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	return New(client, cfg, cfgPath, log.New(io.Discard),
		model.NewDate(2024, time.March, 10))
}

func signIn(t *testing.T, m Model, user *backend.User) Model {
	t.Helper()
	next, _ := m.Update(appsync.AuthChangeMsg{User: user})
	return next.(Model)
}

func TestMutationsRefusedWhileAnonymous(t *testing.T) {
	client := newFakeClient()
	m := newTestModel(t, client)

	next, cmd := m.Update(todolist.ToggleRequestMsg{ID: 1})
	m = next.(Model)
	if cmd != nil {
		t.Error("anonymous mutation issued a command")
	}
	if client.saved != nil {
		t.Error("anonymous mutation reached the backend")
	}
}

func TestSignInHydratesAndSignOutClears(t *testing.T) {
	client := newFakeClient()
	m := newTestModel(t, client)

	m = signIn(t, m, &backend.User{ID: "u1", Username: "alice"})
	if !m.gate.Authenticated() {
		t.Fatal("gate not authenticated after sign-in")
	}

	next, _ := m.Update(appsync.HydrateResultMsg{
		UserID: "u1",
		Items: []model.TodoItem{
			{ID: 5, Text: "stored", Subtasks: []model.Subtask{}},
		},
	})
	m = next.(Model)
	if m.todos.Len() != 1 {
		t.Fatalf("hydrate left %d items", m.todos.Len())
	}

	m = signIn(t, m, nil)
	if m.gate.Authenticated() {
		t.Error("gate still authenticated after sign-out")
	}
	if m.todos.Len() != 0 {
		t.Errorf("sign-out left %d items in the collection", m.todos.Len())
	}
	if !m.calView.Selected().IsZero() {
		t.Error("sign-out kept the calendar selection")
	}
}

func TestHydrateForStaleUserIsIgnored(t *testing.T) {
	client := newFakeClient()
	m := newTestModel(t, client)
	m = signIn(t, m, &backend.User{ID: "u2", Username: "bob"})

	next, _ := m.Update(appsync.HydrateResultMsg{
		UserID: "u1",
		Items:  []model.TodoItem{{ID: 5, Text: "someone else's"}},
	})
	m = next.(Model)
	if m.todos.Len() != 0 {
		t.Errorf("stale hydrate applied %d items", m.todos.Len())
	}
}

func TestMutationPersistsSnapshot(t *testing.T) {
	client := newFakeClient()
	m := newTestModel(t, client)
	m = signIn(t, m, &backend.User{ID: "u1", Username: "alice"})

	next, _ := m.Update(appsync.HydrateResultMsg{
		UserID: "u1",
		Items: []model.TodoItem{
			{ID: 5, Text: "stored", Subtasks: []model.Subtask{}},
		},
	})
	m = next.(Model)

	next, cmd := m.Update(todolist.ToggleRequestMsg{ID: 5})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("mutation did not issue the persistence push")
	}

	msg := cmd()
	if res, ok := msg.(appsync.PersistResultMsg); !ok || res.Err != nil {
		t.Fatalf("persist result = %#v", msg)
	}
	if len(client.saved) != 1 || !client.saved[0].Completed {
		t.Errorf("backend saw %+v", client.saved)
	}

	got, _ := m.todos.Find(5)
	if !got.Completed {
		t.Error("toggle not applied locally")
	}
}
