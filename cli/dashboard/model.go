// Package dashboard implements the authenticated shell: header, sidebar
// navigation, the per-route content pane and the logout confirmation.
package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mollysec/molly/cli/chatpanel"
	"github.com/mollysec/molly/cli/styles"
	"github.com/mollysec/molly/internal/routes"
	"github.com/mollysec/molly/internal/session"
)

// Model represents the dashboard shell.
type Model struct {
	sessions *session.Store
	chat     *chatpanel.Model

	active         routes.Route
	cursor         int
	sidebarFocused bool

	confirmingLogout bool
	logoutSelection  int // 0 = Cancelar, 1 = Salir

	width  int
	height int
}

// New creates a dashboard shell showing the given route.
func New(sessions *session.Store, chat *chatpanel.Model, initial routes.Route) *Model {
	m := &Model{
		sessions: sessions,
		chat:     chat,
		active:   initial,
	}
	for i, item := range routes.MenuItems {
		if item.Route == initial {
			m.cursor = i
			break
		}
	}
	return m
}

// Init initializes the shell.
func (m *Model) Init() tea.Cmd {
	return m.chat.Init()
}

// SetSize recalculates the shell layout.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.chat.SetSize(m.contentWidth(), m.contentHeight())
}

func (m *Model) contentWidth() int {
	width := m.width - styles.SidebarWidth - 1
	if width < 1 {
		width = 1
	}
	return width
}

func (m *Model) contentHeight() int {
	height := m.height - styles.HeaderHeight
	if height < 1 {
		height = 1
	}
	return height
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmingLogout {
			return m, m.updateLogoutDialog(msg)
		}

		switch msg.String() {
		case "ctrl+l":
			m.confirmingLogout = true
			m.logoutSelection = 0
			return m, nil
		case "tab":
			m.sidebarFocused = !m.sidebarFocused
			return m, nil
		}

		if m.sidebarFocused {
			return m, m.updateSidebar(msg)
		}
	}

	if m.active == routes.RouteChat {
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateSidebar(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(routes.MenuItems)-1 {
			m.cursor++
		}
	case "enter":
		m.active = routes.MenuItems[m.cursor].Route
		m.sidebarFocused = false
	}
	return nil
}

func (m *Model) updateLogoutDialog(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "left", "right", "tab":
		m.logoutSelection = 1 - m.logoutSelection
	case "esc", "n", "N":
		m.confirmingLogout = false
	case "y", "Y":
		m.confirmingLogout = false
		m.sessions.Logout()
	case "enter":
		m.confirmingLogout = false
		if m.logoutSelection == 1 {
			// The session change propagates to the root model, which
			// redirects to the login page.
			m.sessions.Logout()
		}
	}
	return nil
}

// ActiveRoute returns the route currently rendered in the content pane.
func (m *Model) ActiveRoute() routes.Route {
	return m.active
}
