// Package app wires the session gate, collection store, sync controller,
// and views into the root Bubble Tea model. Every user action is handled to
// completion here: mutate the collection, issue the persistence push, then
// re-derive the views from the new state.
package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/smartdoit/smarttodo/internal/backend"
	"github.com/smartdoit/smarttodo/internal/collection"
	"github.com/smartdoit/smarttodo/internal/keys"
	"github.com/smartdoit/smarttodo/internal/model"
	"github.com/smartdoit/smarttodo/internal/session"
	appsync "github.com/smartdoit/smarttodo/internal/sync"
	"github.com/smartdoit/smarttodo/internal/theme"
	"github.com/smartdoit/smarttodo/internal/ui"
	"github.com/smartdoit/smarttodo/internal/ui/authform"
	"github.com/smartdoit/smarttodo/internal/ui/calendar"
	"github.com/smartdoit/smarttodo/internal/ui/subtasks"
	"github.com/smartdoit/smarttodo/internal/ui/todoform"
	"github.com/smartdoit/smarttodo/internal/ui/todolist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewCalendar
	ViewTodoForm
	ViewAuth
	ViewSubtasks
)

// Model is the root Bubble Tea model.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	ready        bool

	cfg     *model.AppConfig
	cfgPath string
	thm     theme.Theme
	styles  theme.Styles
	keys    *keys.KeyMap
	logger  *log.Logger

	client backend.Client
	gate   *session.Gate
	todos  *collection.Collection
	syncer *appsync.Controller

	listView todolist.Model
	calView  calendar.Model
	formView todoform.Model
	authView authform.Model
	subView  subtasks.Model

	helpVisible bool
	notice      string
	today       model.Date
}

// New creates the root application model.
func New(client backend.Client, cfg *model.AppConfig, cfgPath string, logger *log.Logger, today model.Date) Model {
	k := keys.DefaultKeyMap()
	thm := theme.ByName(cfg.Display.Theme)
	styles := theme.NewStyles(thm)

	return Model{
		currentView: ViewList,
		cfg:         cfg,
		cfgPath:     cfgPath,
		thm:         thm,
		styles:      styles,
		keys:        k,
		logger:      logger,
		client:      client,
		gate:        session.New(),
		todos:       collection.New(collection.NewIDGenerator()),
		syncer:      appsync.New(client, logger),
		listView:    todolist.New(k, styles, 80, 24),
		calView:     calendar.New(k, styles, 80, 24),
		formView:    todoform.New(80, 24),
		authView:    authform.New(80, 24),
		subView:     subtasks.New(k, styles, 80, 24),
		today:       today,
	}
}

// Init subscribes to auth transitions from the backend.
func (m Model) Init() tea.Cmd {
	return m.syncer.WaitForAuthChange()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.listView.SetSize(w, h)
		m.calView.SetSize(w, h)
		m.formView.SetSize(w, h)
		m.authView.SetSize(w, h)
		m.subView.SetSize(w, h)
		return m.updateActiveView(msg)

	case appsync.AuthChangeMsg:
		return m.handleAuthChange(msg)

	case appsync.HydrateResultMsg:
		if msg.Err != nil {
			m.notice = "could not load your todos; starting empty"
		}
		if msg.UserID == m.gate.UserID() {
			m.todos.ReplaceAll(msg.Items)
			m.refreshViews()
		}
		return m, nil

	case appsync.PersistResultMsg:
		if msg.Err != nil {
			m.notice = "sync failed; changes are kept locally"
		}
		return m, nil

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case registerResultMsg:
		if msg.err != nil {
			return m, m.authView.SetNotice(msg.err.Error())
		}
		m.authView.Start(authform.ModeLogin)
		return m, m.authView.SetNotice("Account created. Sign in to continue.")

	case logoutResultMsg:
		if msg.err != nil {
			m.logger.Error("logout failed", "err", msg.err)
		}
		return m, nil

	case todoform.SubmitMsg:
		return m.handleAddTodo(msg.Draft)

	case todoform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case authform.LoginRequestMsg:
		return m, m.login(msg.Username, msg.Password)

	case authform.RegisterRequestMsg:
		return m, m.register(msg.Username, msg.Password)

	case authform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case todolist.ToggleRequestMsg:
		return m.mutate(func() { m.todos.Toggle(msg.ID) })

	case todolist.DeleteRequestMsg:
		return m.mutate(func() { m.todos.Remove(msg.ID) })

	case todolist.SortRequestMsg:
		return m.mutate(func() { m.todos.SortBy(collection.SortKey(msg.Key)) })

	case todolist.ClearCompletedMsg:
		return m.mutate(func() { m.todos.ClearCompleted() })

	case todolist.OpenSubtasksMsg:
		if parent, ok := m.todos.Find(msg.ID); ok {
			m.previousView = m.currentView
			m.currentView = ViewSubtasks
			return m, m.subView.Start(parent)
		}
		return m, nil

	case calendar.ToggleRequestMsg:
		return m.mutate(func() { m.todos.Toggle(msg.ID) })

	case calendar.DeleteRequestMsg:
		return m.mutate(func() { m.todos.Remove(msg.ID) })

	case subtasks.AddRequestMsg:
		return m.mutateSubtask(msg.ParentID, func() error {
			_, _, err := m.todos.AddSubtask(msg.ParentID, msg.Text)
			return err
		})

	case subtasks.ToggleRequestMsg:
		return m.mutateSubtask(msg.ParentID, func() error {
			m.todos.ToggleSubtask(msg.ParentID, msg.SubtaskID)
			return nil
		})

	case subtasks.DeleteRequestMsg:
		return m.mutateSubtask(msg.ParentID, func() error {
			m.todos.RemoveSubtask(msg.ParentID, msg.SubtaskID)
			return nil
		})

	case subtasks.CloseMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		m.notice = ""
		if handled, mm, cmd := m.handleGlobalKey(msg); handled {
			return mm, cmd
		}
		return m.updateActiveView(msg)
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that apply outside text-entry views.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	// Forms own the keyboard while open.
	if m.currentView == ViewTodoForm || m.currentView == ViewAuth || m.currentView == ViewSubtasks {
		return false, m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return true, m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		return true, m, nil

	case key.Matches(msg, m.keys.ListView):
		m.currentView = ViewList
		return true, m, nil

	case key.Matches(msg, m.keys.CalendarView):
		m.currentView = ViewCalendar
		return true, m, nil

	case key.Matches(msg, m.keys.New):
		// Adding while anonymous opens the sign-in prompt instead.
		if !m.gate.Authenticated() {
			m.previousView = m.currentView
			m.currentView = ViewAuth
			return true, m, m.authView.Start(authform.ModeLogin)
		}
		m.previousView = m.currentView
		m.currentView = ViewTodoForm
		return true, m, m.formView.Start()

	case key.Matches(msg, m.keys.Login):
		if !m.gate.Authenticated() {
			m.previousView = m.currentView
			m.currentView = ViewAuth
			return true, m, m.authView.Start(authform.ModeLogin)
		}
		return true, m, nil

	case key.Matches(msg, m.keys.Logout):
		if m.gate.Authenticated() {
			return true, m, m.logout()
		}
		return true, m, nil

	case key.Matches(msg, m.keys.Theme):
		m.applyTheme(m.thm.Toggle())
		return true, m, nil
	}

	return false, m, nil
}

// handleAuthChange folds a backend auth transition into the session gate.
func (m Model) handleAuthChange(msg appsync.AuthChangeMsg) (tea.Model, tea.Cmd) {
	listen := m.syncer.WaitForAuthChange()

	switch m.gate.Apply(msg.User) {
	case session.TransitionSignedIn:
		m.notice = fmt.Sprintf("signed in as %s", msg.User.Username)
		m.refreshViews()
		return m, tea.Batch(listen, m.syncer.Hydrate(m.gate.UserID()))

	case session.TransitionSignedOut:
		// One user's data at a time: drop everything, including the
		// calendar selection, and re-derive empty views.
		m.todos.Clear()
		m.calView.ClearSelection()
		m.currentView = ViewList
		m.notice = "signed out"
		m.refreshViews()
		return m, listen
	}

	return m, listen
}

// handleLoginResult closes the auth modal on success or surfaces the error.
func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if backend.IsAuthError(msg.err) {
			return m, m.authView.SetNotice(msg.err.Error())
		}
		m.logger.Error("login failed", "err", msg.err)
		return m, m.authView.SetNotice("something went wrong, try again")
	}
	if m.currentView == ViewAuth {
		m.currentView = m.previousView
	}
	// The gate transition itself arrives via AuthChangeMsg.
	return m, nil
}

// handleAddTodo validates and appends the drafted item.
func (m Model) handleAddTodo(draft collection.Draft) (tea.Model, tea.Cmd) {
	if !m.gate.Authenticated() {
		m.currentView = ViewAuth
		return m, m.authView.Start(authform.ModeLogin)
	}

	_, err := m.todos.Add(draft)
	if err != nil {
		// The form validates non-empty text already; this is a backstop.
		m.notice = err.Error()
		m.currentView = m.previousView
		return m, nil
	}

	m.currentView = m.previousView
	m.refreshViews()
	return m, m.persist()
}

// mutate runs a collection mutation and follows it with the persistence
// push and a view refresh, the fixed per-action sequence.
func (m Model) mutate(fn func()) (tea.Model, tea.Cmd) {
	if !m.gate.Authenticated() {
		return m, nil
	}
	fn()
	m.refreshViews()
	return m, m.persist()
}

// mutateSubtask is mutate plus a refresh of the open subtask panel.
func (m Model) mutateSubtask(parentID int64, fn func() error) (tea.Model, tea.Cmd) {
	if !m.gate.Authenticated() {
		return m, nil
	}
	if err := fn(); err != nil {
		m.notice = err.Error()
		return m, nil
	}
	if parent, ok := m.todos.Find(parentID); ok {
		m.subView.SetParent(parent)
	}
	m.refreshViews()
	return m, m.persist()
}

// refreshViews pushes a fresh snapshot into the read-side views.
func (m *Model) refreshViews() {
	items := m.todos.Items()
	loggedIn := m.gate.Authenticated()
	m.listView.SetItems(items, m.today, loggedIn)
	m.calView.SetItems(items, m.today, loggedIn)
}

// applyTheme switches palettes, restyles every view, and saves the choice.
func (m *Model) applyTheme(t theme.Theme) {
	m.thm = t
	m.styles = theme.NewStyles(t)
	m.listView.SetStyles(m.styles)
	m.calView.SetStyles(m.styles)
	m.subView.SetStyles(m.styles)

	m.cfg.Display.Theme = t.Name
	if err := model.SaveConfig(m.cfgPath, m.cfg); err != nil {
		m.logger.Error("saving theme preference", "err", err)
	}
}

// updateActiveView forwards a message to the currently focused view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewList:
		m.listView, cmd = m.listView.Update(msg)
	case ViewCalendar:
		m.calView, cmd = m.calView.Update(msg)
	case ViewTodoForm:
		m.formView, cmd = m.formView.Update(msg)
	case ViewAuth:
		m.authView, cmd = m.authView.Update(msg)
	case ViewSubtasks:
		m.subView, cmd = m.subView.Update(msg)
	}
	return m, cmd
}

// View renders the frame around the active view.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	userInfo := "not signed in"
	if u := m.gate.User(); u != nil {
		userInfo = u.Username
	}
	header := m.layout.RenderHeader(m.styles, "Smart Todo", userInfo)

	var content string
	switch m.currentView {
	case ViewList:
		content = m.listView.View()
	case ViewCalendar:
		content = m.calView.View()
	case ViewTodoForm:
		content = m.formView.View()
	case ViewAuth:
		content = m.authView.View()
	case ViewSubtasks:
		content = m.subView.View()
	}

	if m.helpVisible {
		content += "\n" + m.renderHelp()
	}

	hints := "n: new · space: toggle · 1/2: views · T: theme · ?: help · q: quit"
	if m.notice != "" {
		hints = m.notice + "  ·  " + hints
	}
	statusBar := m.layout.RenderStatusBar(m.styles, hints)

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderHelp draws the expanded keybinding help.
func (m Model) renderHelp() string {
	var rows []string
	for _, group := range m.keys.FullHelp() {
		var parts []string
		for _, b := range group {
			parts = append(parts, fmt.Sprintf("%s %s", b.Help().Key, b.Help().Desc))
		}
		rows = append(rows, m.styles.Help.Render(strings.Join(parts, "  ·  ")))
	}
	return strings.Join(rows, "\n")
}
