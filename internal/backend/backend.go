// Package backend is the boundary with the authentication and persistence
// service. The application consumes this contract; it does not design the
// server. A SQLite-backed implementation ships in this package so the app
// works against a local database out of the box.
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/smartdoit/smarttodo/internal/model"
)

// AuthError is a user-facing authentication failure: bad credentials,
// username conflicts, and the like. It carries no state change.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// IsAuthError reports whether err is an authentication failure.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// User identifies an authenticated account.
type User struct {
	ID       string
	Username string
}

// Session is the result of a successful login.
type Session struct {
	User User
}

// ServerStatus is a diagnostic snapshot of the backend.
type ServerStatus struct {
	ServerType  string
	Connected   bool
	CurrentUser *User
	Err         error
}

func (s ServerStatus) String() string {
	state := "disconnected"
	if s.Connected {
		state = "connected"
	}
	return fmt.Sprintf("%s (%s)", s.ServerType, state)
}

// Client is the consumed auth/persistence contract.
//
// AuthChanges delivers a *User on sign-in and nil on sign-out; the channel
// observes every transition for the lifetime of the client.
type Client interface {
	Login(ctx context.Context, username, password string) (Session, error)
	Register(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	AuthChanges() <-chan *User

	LoadTodos(ctx context.Context, userID string) ([]model.TodoItem, error)
	SaveTodos(ctx context.Context, userID string, items []model.TodoItem) error

	Status(ctx context.Context) ServerStatus
	Close() error
}
