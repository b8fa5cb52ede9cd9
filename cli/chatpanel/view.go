package chatpanel

import (
	"fmt"
	"strings"

	"github.com/mollysec/molly/cli/styles"
	"github.com/mollysec/molly/internal/chat"
)

// View renders the panel.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	b.WriteString(styles.ViewportStyle.Render(m.viewport.View()))
	b.WriteString("\n")

	if m.conversation.Pending() {
		b.WriteString(fmt.Sprintf("%s %s\n",
			m.spinner.View(),
			styles.TypingStyle.Render("Molly está escribiendo...")))
	} else {
		b.WriteString(styles.TextAreaStyle.Render(m.textarea.View()))
		b.WriteString("\n")
	}

	return m.alert.Render(b.String())
}

func (m *Model) renderMessages() string {
	var b strings.Builder

	for i, message := range m.conversation.Messages() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch message.Sender {
		case chat.SenderUser:
			b.WriteString(styles.UserLabelStyle.Render("Tú"))
			b.WriteString("\n")
			b.WriteString(styles.UserMessageStyle.Render(message.Text))

		case chat.SenderAssistant:
			text := message.Text
			if m.renderer != nil {
				text = m.renderer.Render(text)
			}
			b.WriteString(styles.AssistantLabelStyle.Render("Molly"))
			b.WriteString("\n")
			b.WriteString(styles.AssistantMessageStyle.Render(text))
		}
	}

	return b.String()
}
