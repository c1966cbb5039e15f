package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartdoit/smarttodo/internal/credential"
)

const backendCallTimeout = 10 * time.Second

type loginResultMsg struct {
	err error
}

type registerResultMsg struct {
	err error
}

type logoutResultMsg struct {
	err error
}

// login authenticates against the backend. The resulting session transition
// arrives separately through the auth-change stream.
func (m Model) login(username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendCallTimeout)
		defer cancel()
		_, err := m.client.Login(ctx, username, password)
		if err == nil && m.cfg.Backend.RememberLogin {
			if kerr := credential.SaveLogin(username, password); kerr != nil {
				m.logger.Warn("remembering login", "err", kerr)
			}
		}
		return loginResultMsg{err: err}
	}
}

// register creates an account without signing it in.
func (m Model) register(username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendCallTimeout)
		defer cancel()
		return registerResultMsg{err: m.client.Register(ctx, username, password)}
	}
}

// logout ends the session. The sign-out transition arrives through the
// auth-change stream and clears the collection there.
func (m Model) logout() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendCallTimeout)
		defer cancel()
		if kerr := credential.ClearLogin(); kerr != nil {
			m.logger.Warn("forgetting login", "err", kerr)
		}
		return logoutResultMsg{err: m.client.Logout(ctx)}
	}
}

// persist pushes the current collection snapshot for the signed-in user.
func (m Model) persist() tea.Cmd {
	return m.syncer.Persist(m.gate.UserID(), m.todos.Items())
}
