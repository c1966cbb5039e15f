// Package sync moves the in-memory collection to and from the backend. Both
// directions are non-fatal: a failed hydrate leaves an empty collection, a
// failed persist leaves memory as the sole copy for the session. There is no
// retry queue; a dropped persist is only recovered by the next mutation's
// push.
package sync

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/smartdoit/smarttodo/internal/backend"
	"github.com/smartdoit/smarttodo/internal/model"
)

// HydrateResultMsg carries the loaded collection after session start. Err is
// set when the load failed; Items is then empty, never nil.
type HydrateResultMsg struct {
	UserID string
	Items  []model.TodoItem
	Err    error
}

// PersistResultMsg reports a completed push. The UI never waits on it; it
// only surfaces Err as a transient notice.
type PersistResultMsg struct {
	Err error
}

// AuthChangeMsg carries a sign-in/sign-out transition from the backend.
// User is nil on sign-out.
type AuthChangeMsg struct {
	User *backend.User
}

// Controller bridges the backend collaborator into the Bubble Tea runtime.
type Controller struct {
	client backend.Client
	logger *log.Logger
}

// New creates a controller over the given backend client.
func New(client backend.Client, logger *log.Logger) *Controller {
	return &Controller{client: client, logger: logger}
}

// Hydrate pulls the user's stored collection. Failures are logged and
// surfaced as a recoverable error with an empty item set.
func (c *Controller) Hydrate(userID string) tea.Cmd {
	return func() tea.Msg {
		items, err := c.client.LoadTodos(context.Background(), userID)
		if err != nil {
			c.logger.Error("hydrate failed", "user", userID, "err", err)
			return HydrateResultMsg{UserID: userID, Items: []model.TodoItem{}, Err: err}
		}
		c.logger.Info("hydrated todos", "user", userID, "count", len(items))
		return HydrateResultMsg{UserID: userID, Items: items}
	}
}

// Persist pushes a snapshot of the collection. Commands are issued in
// mutation order by the Bubble Tea runtime, but rendering never waits on
// the result.
func (c *Controller) Persist(userID string, items []model.TodoItem) tea.Cmd {
	return func() tea.Msg {
		if err := c.client.SaveTodos(context.Background(), userID, items); err != nil {
			c.logger.Error("persist failed", "user", userID, "count", len(items), "err", err)
			return PersistResultMsg{Err: err}
		}
		return PersistResultMsg{}
	}
}

// WaitForAuthChange blocks on the backend's auth stream and returns the
// next transition as a message. Re-issue it after each AuthChangeMsg to
// keep listening.
func (c *Controller) WaitForAuthChange() tea.Cmd {
	return func() tea.Msg {
		user, ok := <-c.client.AuthChanges()
		if !ok {
			return nil
		}
		return AuthChangeMsg{User: user}
	}
}
