// Package todoform is the huh-based form for creating a todo item.
package todoform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/smartdoit/smarttodo/internal/collection"
	"github.com/smartdoit/smarttodo/internal/model"
)

// SubmitMsg carries the validated draft of a new todo.
type SubmitMsg struct {
	Draft collection.Draft
}

// CancelMsg is dispatched when the user backs out of the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	text     string
	priority model.Priority
	dueDate  string
	category model.Category
}

// Model is the Bubble Tea model for the todo form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a new todo form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{priority: model.PriorityNormal, category: model.CategoryGeneral},
		width:  width,
		height: height,
	}
}

// Start initializes the form with default values.
func (m *Model) Start() tea.Cmd {
	m.fb.text = ""
	m.fb.priority = model.PriorityNormal
	m.fb.dueDate = ""
	m.fb.category = model.CategoryGeneral
	m.form = m.buildForm()
	return m.form.Init()
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the todo form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
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

// View renders the todo form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		MarginBottom(1)

	content := titleStyle.Render("New Todo") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Todo").
				Placeholder("What needs to be done?").
				Value(&m.fb.text).
				Validate(validateRequired("Todo")),
			huh.NewSelect[model.Priority]().
				Title("Priority").
				Options(
					huh.NewOption("Normal", model.PriorityNormal),
					huh.NewOption("High", model.PriorityHigh),
					huh.NewOption("Urgent", model.PriorityUrgent),
				).
				Value(&m.fb.priority),
			huh.NewInput().
				Title("Due Date").
				Placeholder("YYYY-MM-DD (optional)").
				Value(&m.fb.dueDate).
				Validate(validateOptionalDate),
			huh.NewSelect[model.Category]().
				Title("Category").
				Options(
					huh.NewOption("General", model.CategoryGeneral),
					huh.NewOption("Work", model.CategoryWork),
					huh.NewOption("Personal", model.CategoryPersonal),
					huh.NewOption("Shopping", model.CategoryShopping),
				).
				Value(&m.fb.category),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	draft := collection.Draft{
		Text:     m.fb.text,
		Priority: m.fb.priority,
		Category: m.fb.category,
	}
	// Already validated; a parse failure leaves the draft dateless.
	if due, err := model.ParseDate(strings.TrimSpace(m.fb.dueDate)); err == nil {
		draft.DueDate = due
	}
	return func() tea.Msg { return SubmitMsg{Draft: draft} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
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

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	_, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
