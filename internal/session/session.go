// Package session tracks the authenticated-user state and gates mutations
// behind it.
package session

import "github.com/smartdoit/smarttodo/internal/backend"

// Transition classifies what an auth-state update meant.
type Transition int

const (
	// TransitionNone: the update did not change the effective state.
	TransitionNone Transition = iota

	// TransitionSignedIn: anonymous -> authenticated, or a switch to a
	// different user. Callers should hydrate the collection.
	TransitionSignedIn

	// TransitionSignedOut: authenticated -> anonymous. Callers must clear
	// the collection and any date selection so views re-derive empty.
	TransitionSignedOut
)

// Gate is the session state machine: Anonymous or Authenticated(user).
type Gate struct {
	user *backend.User
}

// New returns a gate in the anonymous state.
func New() *Gate {
	return &Gate{}
}

// Apply folds an auth-state update (user on sign-in, nil on sign-out) into
// the gate and reports the transition it caused.
func (g *Gate) Apply(user *backend.User) Transition {
	switch {
	case user == nil && g.user == nil:
		return TransitionNone
	case user == nil:
		g.user = nil
		return TransitionSignedOut
	case g.user != nil && g.user.ID == user.ID:
		return TransitionNone
	default:
		u := *user
		g.user = &u
		return TransitionSignedIn
	}
}

// Authenticated reports whether a user is signed in. Mutating operations on
// the collection are refused while this is false; the UI opens the auth
// prompt instead.
func (g *Gate) Authenticated() bool {
	return g.user != nil
}

// User returns the signed-in user, or nil when anonymous.
func (g *Gate) User() *backend.User {
	if g.user == nil {
		return nil
	}
	u := *g.user
	return &u
}

// UserID returns the signed-in user's ID, or "" when anonymous.
func (g *Gate) UserID() string {
	if g.user == nil {
		return ""
	}
	return g.user.ID
}
