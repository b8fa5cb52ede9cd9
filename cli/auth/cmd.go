// Package auth implements the non-TUI session commands: login, logout and
// whoami.
package auth

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mollysec/molly/internal/api"
	"github.com/mollysec/molly/internal/session"
)

// NewLoginCmd instantiates and returns the login command.
func NewLoginCmd(sessions *session.Store, client *api.Client) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:           "login",
		Short:         "Authenticate against the Molly backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				prompt := &survey.Input{Message: "Usuario:"}
				if err := survey.AskOne(prompt, &username, survey.WithValidator(survey.Required)); err != nil {
					return errors.Wrap(err, "prompting for username")
				}
			}
			var password string
			prompt := &survey.Password{Message: "Contrasena:"}
			if err := survey.AskOne(prompt, &password, survey.WithValidator(survey.Required)); err != nil {
				return errors.Wrap(err, "prompting for password")
			}

			result := client.Authenticate(cmd.Context(), username, password)
			if !result.Success {
				color.Red("Credenciales incorrectas")
				return errors.New("authentication failed")
			}

			sessions.Login(username)
			color.Green("Sesion iniciada como %s", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username to authenticate as")
	return cmd
}

// NewLogoutCmd instantiates and returns the logout command.
func NewLogoutCmd(sessions *session.Store) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:          "logout",
		Short:        "Close the current session",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				confirm := &survey.Confirm{Message: "¿Seguro que deseas cerrar sesión?"}
				if err := survey.AskOne(confirm, &yes); err != nil {
					return errors.Wrap(err, "prompting for confirmation")
				}
				if !yes {
					return nil
				}
			}
			// Idempotent: logging out without a session is fine.
			sessions.Logout()
			color.Yellow("Sesion cerrada")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// NewWhoamiCmd instantiates and returns the whoami command.
func NewWhoamiCmd(sessions *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, ok := sessions.Identity()
			if !ok {
				color.Yellow("No has iniciado sesion")
				return nil
			}
			color.Green(identity.Username)
			return nil
		},
	}
}
