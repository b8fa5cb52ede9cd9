// Package chatpanel implements the chat view of the dashboard: the
// conversation log, the typing indicator and the input box.
package chatpanel

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"
	"golang.design/x/clipboard"

	"github.com/mollysec/molly/cli/styles"
	"github.com/mollysec/molly/internal/chat"
	"github.com/mollysec/molly/internal/debug"
	"github.com/mollysec/molly/internal/markdown"
)

var log = debug.GetLogger()

// ConversationChangedMsg reports that the conversation's log or pending
// flag changed; the panel re-reads the conversation when it arrives.
type ConversationChangedMsg struct{}

// Model represents the chat panel.
type Model struct {
	ctx          context.Context
	conversation *chat.Conversation

	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *markdown.Renderer

	alert          bubbleup.AlertModel
	clipboardReady bool

	width  int
	height int
	ready  bool
}

// New creates a chat panel over the given conversation.
func New(ctx context.Context, conversation *chat.Conversation) *Model {
	ta := textarea.New()
	ta.Placeholder = "Escribe tu mensaje aquí..."
	ta.Focus()
	ta.CharLimit = 0
	ta.SetWidth(styles.DefaultTextareaWidth)
	ta.SetHeight(styles.MinTextareaHeight)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Prompt = ""

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	// Without a renderer replies display as plain text.
	renderer, err := markdown.NewRenderer(styles.DefaultTextareaWidth)
	if err != nil {
		log.Warn("creating markdown renderer", "error", err)
		renderer = nil
	}

	alert := bubbleup.NewAlertModel(25, true, 1)

	clipboardReady := true
	if err := clipboard.Init(); err != nil {
		log.Warn("clipboard unavailable", "error", err)
		clipboardReady = false
	}

	return &Model{
		ctx:            ctx,
		conversation:   conversation,
		textarea:       ta,
		spinner:        sp,
		renderer:       renderer,
		alert:          *alert,
		clipboardReady: clipboardReady,
	}
}

// Init initializes the panel.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.alert.Init())
}

// SetSize recalculates the panel layout for the given content area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true

	viewportHeight := height - styles.MinTextareaHeight - styles.InputBorderHeight
	if viewportHeight < styles.MinViewportHeight {
		viewportHeight = styles.MinViewportHeight
	}
	m.viewport = viewport.New(width, viewportHeight)
	m.textarea.SetWidth(width - styles.TextAreaPaddingLeft)
	if m.renderer != nil {
		if err := m.renderer.SetWidth(width - 2*styles.MessagePaddingLeft); err != nil {
			log.Warn("resizing markdown renderer", "error", err)
		}
	}
	m.refresh()
}

// refresh re-renders the conversation into the viewport.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

// lastAssistantReply returns the most recent assistant message, if any.
func (m *Model) lastAssistantReply() (string, bool) {
	messages := m.conversation.Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Sender == chat.SenderAssistant {
			return messages[i].Text, true
		}
	}
	return "", false
}
