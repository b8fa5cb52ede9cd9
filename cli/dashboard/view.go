package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mollysec/molly/cli/styles"
	"github.com/mollysec/molly/internal/routes"
)

// View renders the shell.
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	if m.confirmingLogout {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.renderLogoutDialog())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), m.renderContent())
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body)
}

func (m *Model) renderHeader() string {
	title := " Molly Dashboard "
	user := ""
	if identity, ok := m.sessions.Identity(); ok {
		user = fmt.Sprintf(" 👤 %s · Ctrl+L cerrar sesión ", identity.Username)
	}
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(user)
	if gap < 0 {
		gap = 0
	}
	bar := title + strings.Repeat(" ", gap) + user
	return styles.TitleStyle.Width(m.width).Render(bar)
}

func (m *Model) renderSidebar() string {
	var b strings.Builder
	for i, item := range routes.MenuItems {
		cursor := "  "
		if m.sidebarFocused && i == m.cursor {
			cursor = styles.MenuItemCursorStyle.Render("> ")
		}
		label := styles.MenuItemStyle.Render(item.Name)
		if item.Route == m.active {
			label = styles.MenuItemActiveStyle.Render(item.Name)
		}
		b.WriteString(cursor + label + "\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("Tab: menú"))
	return styles.SidebarStyle.Height(m.contentHeight()).Render(b.String())
}

func (m *Model) renderContent() string {
	if m.active == routes.RouteChat {
		return lipgloss.NewStyle().
			Width(m.contentWidth()).
			Height(m.contentHeight()).
			Render(m.chat.View())
	}

	name := string(m.active)
	for _, item := range routes.MenuItems {
		if item.Route == m.active {
			name = item.Name
			break
		}
	}
	placeholder := styles.PlaceholderStyle.Render(name + "\n\nEn construcción.")
	return lipgloss.Place(m.contentWidth(), m.contentHeight(),
		lipgloss.Center, lipgloss.Center, placeholder)
}

func (m *Model) renderLogoutDialog() string {
	var b strings.Builder
	b.WriteString(styles.ConfirmTitleStyle.Render("Cerrar sesión"))
	b.WriteString("\n\n")
	b.WriteString("¿Seguro que deseas cerrar sesión?")
	b.WriteString("\n\n")

	options := []string{"Cancelar", "Salir"}
	var rendered []string
	for i, option := range options {
		style := styles.ConfirmOptionStyle
		if i == m.logoutSelection {
			style = styles.ConfirmSelectedStyle
		}
		rendered = append(rendered, style.Render(option))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))

	return styles.ConfirmBoxStyle.Render(b.String())
}
