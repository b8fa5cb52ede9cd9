// Package app implements the root Bubble Tea model: it owns the active
// page and re-resolves the route through the guard whenever the session
// changes, so a logout redirects to the login page immediately.
package app

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mollysec/molly/cli/chatpanel"
	"github.com/mollysec/molly/cli/dashboard"
	"github.com/mollysec/molly/cli/login"
	"github.com/mollysec/molly/internal/api"
	"github.com/mollysec/molly/internal/chat"
	"github.com/mollysec/molly/internal/routes"
	"github.com/mollysec/molly/internal/session"
)

// SessionChangedMsg carries a session mutation into the update loop.
type SessionChangedMsg struct {
	Snapshot session.Snapshot
}

// Model is the root model.
type Model struct {
	ctx      context.Context
	sessions *session.Store
	client   *api.Client
	guard    *routes.Guard

	loginPage *login.Model
	shell     *dashboard.Model
	teardown  func() // conversation unsubscribe for the mounted shell

	// Program reference for sending messages from subscriber callbacks
	program   *tea.Program
	programMu sync.Mutex

	width    int
	height   int
	quitting bool
}

// New creates the root model, landing on the guarded initial route.
func New(ctx context.Context, sessions *session.Store, client *api.Client, initial routes.Route) *Model {
	m := &Model{
		ctx:      ctx,
		sessions: sessions,
		client:   client,
		guard:    routes.NewGuard(sessions),
	}
	m.navigate(initial)
	return m
}

// SetProgram sets the tea.Program reference for async message sending.
func (m *Model) SetProgram(p *tea.Program) {
	m.programMu.Lock()
	defer m.programMu.Unlock()
	m.program = p
}

// getProgram safely gets the program reference.
func (m *Model) getProgram() *tea.Program {
	m.programMu.Lock()
	defer m.programMu.Unlock()
	return m.program
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	if m.loginPage != nil {
		return m.loginPage.Init()
	}
	if m.shell != nil {
		return m.shell.Init()
	}
	return nil
}

// navigate mounts the page the guard resolves for the given target. It
// returns the new page's init command when a page was (re)mounted.
func (m *Model) navigate(target routes.Route) tea.Cmd {
	resolved := m.guard.Resolve(target)

	if resolved == routes.RouteLogin {
		if m.teardown != nil {
			m.teardown()
			m.teardown = nil
		}
		// The conversation is discarded with the shell; chat history
		// does not survive a logout.
		m.shell = nil
		if m.loginPage == nil {
			m.loginPage = login.New(m.ctx, m.client, m.sessions)
			m.loginPage.SetSize(m.width, m.height)
			return m.loginPage.Init()
		}
		return nil
	}

	m.loginPage = nil
	if m.shell == nil {
		conversation := chat.NewConversation(m.client)
		unsubscribe := conversation.Subscribe(func() {
			if p := m.getProgram(); p != nil {
				p.Send(chatpanel.ConversationChangedMsg{})
			}
		})
		m.teardown = unsubscribe
		m.shell = dashboard.New(m.sessions, chatpanel.New(m.ctx, conversation), resolved)
		m.shell.SetSize(m.width, m.height)
		return m.shell.Init()
	}
	return nil
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.loginPage != nil {
			m.loginPage.SetSize(msg.Width, msg.Height)
		}
		if m.shell != nil {
			m.shell.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case SessionChangedMsg:
		current := routes.RouteLogin
		if m.shell != nil {
			current = m.shell.ActiveRoute()
		}
		return m, m.navigate(current)
	}

	if m.loginPage != nil {
		page, cmd := m.loginPage.Update(msg)
		m.loginPage = page
		return m, cmd
	}
	if m.shell != nil {
		shell, cmd := m.shell.Update(msg)
		m.shell = shell
		return m, cmd
	}
	return m, nil
}

// View renders the active page.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.loginPage != nil {
		return m.loginPage.View()
	}
	if m.shell != nil {
		return m.shell.View()
	}
	return ""
}
