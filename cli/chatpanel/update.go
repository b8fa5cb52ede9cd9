package chatpanel

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"
	"golang.design/x/clipboard"
)

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Always update the alert model with every message
	outAlert, alertCmd := m.alert.Update(msg)
	m.alert = outAlert.(bubbleup.AlertModel)
	if alertCmd != nil {
		cmds = append(cmds, alertCmd)
	}

	switch msg := msg.(type) {
	case ConversationChangedMsg:
		m.refresh()
		if m.conversation.Pending() {
			cmds = append(cmds, m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.conversation.Pending() {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if msg.String() == "alt+w" {
			if reply, ok := m.lastAssistantReply(); ok && m.clipboardReady {
				clipboard.Write(clipboard.FmtText, []byte(reply))
				cmds = append(cmds, m.alert.NewAlertCmd(bubbleup.InfoKey, "Copied to clipboard!"))
			}
			return m, tea.Batch(cmds...)
		}

		if msg.Type == tea.KeyEnter {
			if cmd := m.submit(); cmd != nil {
				cmds = append(cmds, cmd)
			}
			return m, tea.Batch(cmds...)
		}
	}

	// The input stays inert while a request is in flight.
	if !m.conversation.Pending() {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit starts one chat turn. Empty input and submissions made while a
// request is in flight are dropped; the conversation enforces the same
// guard internally.
func (m *Model) submit() tea.Cmd {
	text := m.textarea.Value()
	if strings.TrimSpace(text) == "" || m.conversation.Pending() {
		return nil
	}
	m.textarea.Reset()

	ctx := m.ctx
	conversation := m.conversation
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			// Blocks until the turn resolves; subscribers drive the
			// re-renders in the meantime.
			conversation.SendMessage(ctx, text)
			return nil
		},
	)
}
