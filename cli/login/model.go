// Package login implements the login page: it collects credentials,
// verifies them against the backend and, on success, opens the session.
package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.dalton.dog/bubbleup"

	"github.com/mollysec/molly/cli/styles"
	"github.com/mollysec/molly/internal/api"
	"github.com/mollysec/molly/internal/session"
)

const failureText = "Credenciales incorrectas"

// Authenticator is the backend operation the page depends on.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) api.AuthResult
}

type authResultMsg struct {
	username string
	result   api.AuthResult
}

// Model represents the login page.
type Model struct {
	ctx      context.Context
	client   Authenticator
	sessions *session.Store

	username textinput.Model
	password textinput.Model
	focused  int
	busy     bool

	alert bubbleup.AlertModel

	width  int
	height int
}

// New creates a login page.
func New(ctx context.Context, client Authenticator, sessions *session.Store) *Model {
	username := textinput.New()
	username.Placeholder = "Usuario"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Contrasena"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword

	alert := bubbleup.NewAlertModel(25, true, 1)

	return &Model{
		ctx:      ctx,
		client:   client,
		sessions: sessions,
		username: username,
		password: password,
		alert:    *alert,
	}
}

// Init initializes the page.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.alert.Init())
}

// SetSize stores the window size for centering.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmds []tea.Cmd

	outAlert, alertCmd := m.alert.Update(msg)
	m.alert = outAlert.(bubbleup.AlertModel)
	if alertCmd != nil {
		cmds = append(cmds, alertCmd)
	}

	switch msg := msg.(type) {
	case authResultMsg:
		m.busy = false
		if !msg.result.Success {
			// The web client surfaces this as a blocking alert.
			m.password.Reset()
			cmds = append(cmds, m.alert.NewAlertCmd(bubbleup.ErrorKey, failureText))
			return m, tea.Batch(cmds...)
		}
		// The session change propagates to the root model, which
		// re-resolves the route and leaves this page.
		m.sessions.Login(msg.username)
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.busy {
			return m, tea.Batch(cmds...)
		}
		switch msg.Type {
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyDown, tea.KeyUp:
			m.toggleFocus()
			cmds = append(cmds, textinput.Blink)
			return m, tea.Batch(cmds...)

		case tea.KeyEnter:
			if cmd := m.submit(); cmd != nil {
				cmds = append(cmds, cmd)
			}
			return m, tea.Batch(cmds...)
		}
	}

	var cmd tea.Cmd
	m.username, cmd = m.username.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) toggleFocus() {
	if m.focused == 0 {
		m.focused = 1
		m.username.Blur()
		m.password.Focus()
		return
	}
	m.focused = 0
	m.password.Blur()
	m.username.Focus()
}

func (m *Model) submit() tea.Cmd {
	username := strings.TrimSpace(m.username.Value())
	password := m.password.Value()
	if username == "" || password == "" {
		return nil
	}

	m.busy = true
	ctx := m.ctx
	client := m.client
	return func() tea.Msg {
		return authResultMsg{
			username: username,
			result:   client.Authenticate(ctx, username, password),
		}
	}
}

// View renders the page.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(styles.LoginTitleStyle.Render("Bienvenido a Molly"))
	b.WriteString("\n")
	b.WriteString(styles.LoginSubtitleStyle.Render("Asistente de Ciberseguridad IA. Inicia sesion para continuar."))
	b.WriteString("\n\n")
	b.WriteString(m.username.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")
	if m.busy {
		b.WriteString(styles.TypingStyle.Render("Verificando..."))
	} else {
		b.WriteString(styles.HelpStyle.Render("Enter para iniciar sesion · Tab para cambiar de campo"))
	}

	box := styles.LoginBoxStyle.Render(b.String())
	if m.width == 0 || m.height == 0 {
		return m.alert.Render(box)
	}
	return m.alert.Render(
		lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box))
}
