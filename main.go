package main

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mollysec/molly/cli"
	"github.com/mollysec/molly/cli/auth"
	"github.com/mollysec/molly/internal/api"
	"github.com/mollysec/molly/internal/configuration"
	"github.com/mollysec/molly/internal/kvstore"
	"github.com/mollysec/molly/internal/session"
)

const configFilepath = "~/.molly/config.json"

var rootCmd = &cobra.Command{
	Use:   "molly",
	Short: "Terminal client for the Molly cybersecurity assistant",
}

func main() {
	// Optional .env, for overriding the server address per directory.
	_ = godotenv.Load()

	config, err := configuration.Parse(configFilepath)
	if err != nil {
		panic(err)
	}

	kv, err := kvstore.Open(filepath.Join(config.StateDirectory, "molly.db"))
	if err != nil {
		panic(err)
	}
	defer kv.Close()

	sessions := session.New(kv)

	client, err := api.NewClient(config.ServerURL, config.Timeout())
	if err != nil {
		panic(err)
	}

	rootCmd.AddCommand(cli.NewDashboardCmd(sessions, client))
	rootCmd.AddCommand(cli.NewChatCmd(sessions, client))
	rootCmd.AddCommand(auth.NewLoginCmd(sessions, client))
	rootCmd.AddCommand(auth.NewLogoutCmd(sessions))
	rootCmd.AddCommand(auth.NewWhoamiCmd(sessions))
	rootCmd.Execute()
}
