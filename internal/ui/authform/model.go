// Package authform is the huh-based sign-in / registration modal.
package authform

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Mode selects which form is shown.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// LoginRequestMsg asks the app to authenticate.
type LoginRequestMsg struct {
	Username string
	Password string
}

// RegisterRequestMsg asks the app to create an account.
type RegisterRequestMsg struct {
	Username string
	Password string
}

// CancelMsg is dispatched when the user backs out of the modal.
type CancelMsg struct{}

// minPasswordLen matches the registration policy enforced inline.
const minPasswordLen = 4

// formBindings holds field values on the heap so huh's Value() pointers
// survive Bubble Tea model copies.
type formBindings struct {
	username string
	password string
	confirm  string
}

// Model is the auth modal.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	mode   Mode
	notice string
	width  int
	height int
}

// New creates the auth modal.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the modal in the given mode.
func (m *Model) Start(mode Mode) tea.Cmd {
	m.mode = mode
	m.notice = ""
	m.fb.username = ""
	m.fb.password = ""
	m.fb.confirm = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// SetNotice shows an error or info line above the form (e.g. an AuthError
// from the backend). The form is restarted so the user can retry.
func (m *Model) SetNotice(notice string) tea.Cmd {
	m.notice = notice
	m.form = m.buildForm()
	return m.form.Init()
}

// Mode returns the current form mode.
func (m Model) Mode() Mode {
	return m.mode
}

// SetSize updates the modal dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the auth modal.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab":
			// Switch between sign-in and registration.
			if m.mode == ModeLogin {
				return m, m.Start(ModeRegister)
			}
			return m, m.Start(ModeLogin)
		case "ctrl+f":
			// No recovery flow exists server-side; answer informationally.
			m.notice = "Password recovery is not available yet. Contact the administrator."
			return m, nil
		}
	}

	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the modal.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	title := "Sign In"
	if m.mode == ModeRegister {
		title = "Create Account"
	}

	titleStyle := lipgloss.NewStyle().Bold(true).MarginBottom(1)
	hintStyle := lipgloss.NewStyle().Faint(true).MarginTop(1)

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(m.notice)
		b.WriteString("\n\n")
	}
	b.WriteString(m.form.View())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("tab: switch sign-in/register · ctrl+f: forgot password · esc: close"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Username").
			Value(&m.fb.username).
			Validate(validateRequired("Username")),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&m.fb.password).
			Validate(m.validatePassword),
	}
	if m.mode == ModeRegister {
		fields = append(fields,
			huh.NewInput().
				Title("Confirm Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.confirm).
				Validate(m.validateConfirm),
		)
	}

	return huh.NewForm(huh.NewGroup(fields...)).
		WithWidth(m.formWidth()).
		WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	username := strings.TrimSpace(m.fb.username)
	password := m.fb.password
	if m.mode == ModeRegister {
		return func() tea.Msg {
			return RegisterRequestMsg{Username: username, Password: password}
		}
	}
	return func() tea.Msg {
		return LoginRequestMsg{Username: username, Password: password}
	}
}

func (m *Model) validatePassword(s string) error {
	if s == "" {
		return errors.New("Password is required")
	}
	if m.mode == ModeRegister && len(s) < minPasswordLen {
		return fmt.Errorf("Password must be at least %d characters", minPasswordLen)
	}
	return nil
}

func (m *Model) validateConfirm(s string) error {
	if s != m.fb.password {
		return errors.New("Passwords do not match")
	}
	return nil
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 6
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
