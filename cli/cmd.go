// Package cli wires the TUI pages into cobra commands.
package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mollysec/molly/cli/app"
	"github.com/mollysec/molly/internal/api"
	"github.com/mollysec/molly/internal/routes"
	"github.com/mollysec/molly/internal/session"
)

// NewDashboardCmd instantiates and returns the dashboard command.
func NewDashboardCmd(sessions *session.Store, client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the Molly dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), sessions, client, routes.RouteDashboard)
		},
	}
}

// NewChatCmd instantiates and returns the chat command, landing directly
// on the assistant view.
func NewChatCmd(sessions *session.Store, client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with Molly",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), sessions, client, routes.RouteChat)
		},
	}
}

func run(ctx context.Context, sessions *session.Store, client *api.Client, initial routes.Route) error {
	m := app.New(ctx, sessions, client, initial)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	// Set the program reference for async message sending
	m.SetProgram(p)

	// Route guard reactivity: every session mutation re-enters the update
	// loop, where the active route is re-resolved.
	unsubscribe := sessions.Subscribe(func(snapshot session.Snapshot) {
		p.Send(app.SessionChangedMsg{Snapshot: snapshot})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running dashboard: %w", err)
	}
	return nil
}
