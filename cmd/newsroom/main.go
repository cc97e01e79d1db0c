// Package main implements the newsroom terminal client.
//
// Running the binary with no arguments starts the interactive chat TUI.
// Subcommands cover the non-interactive surfaces: bookmarks, interests,
// workspace management and the server configuration dump.
//
// Usage:
//
//	# Start the chat TUI
//	newsroom
//
//	# List bookmarks for the current workspace
//	newsroom bookmarks
//
//	# Point at a different server
//	newsroom --server http://localhost:8080
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/newsroom/internal/api"
	"github.com/fyrsmithlabs/newsroom/internal/chat"
	"github.com/fyrsmithlabs/newsroom/internal/config"
	"github.com/fyrsmithlabs/newsroom/internal/logging"
	"github.com/fyrsmithlabs/newsroom/internal/session"
	"github.com/fyrsmithlabs/newsroom/internal/ui"
)

var (
	// configPath overrides the default config file location
	configPath string
	// serverURL overrides the configured server URL
	serverURL string
	// workspaceName selects the workspace for non-interactive commands
	workspaceName string
	// version information (set via ldflags during build)
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "newsroom",
	Short: "Terminal client for the newsroom assistant",
	Long: `newsroom is a terminal client for the newsroom assistant server.
Without arguments it opens the interactive chat: a daily digest is injected
as the first turn, and replies can surface articles to bookmark or quote.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runChat,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/newsroom/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "newsroom server URL (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&workspaceName, "workspace", "w", "", "workspace name or id (default: first workspace)")
	rootCmd.AddCommand(bookmarksCmd)
	rootCmd.AddCommand(interestsCmd)
	rootCmd.AddCommand(workspaceCmd)
	rootCmd.AddCommand(showConfigCmd)
}

// appEnv bundles everything a command needs after setup.
type appEnv struct {
	cfg    *config.Config
	logger *zap.Logger
	client *api.Client
	state  *session.State
}

// setup loads configuration, builds the logger and API client, and
// bootstraps the session against the server. With toFile set the logger
// always writes to a file so log lines cannot corrupt the TUI.
func setup(ctx context.Context, toFile bool) (*appEnv, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if serverURL != "" {
		cfg.Server.URL = serverURL
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}

	logger, err := logging.New(cfg.Log, toFile)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	client := api.New(cfg.Server.URL, cfg.Server.RequestTimeout, logger)
	state := session.NewState()
	if err := session.Bootstrap(ctx, client, state, logger); err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", cfg.Server.URL, err)
	}

	if workspaceName != "" {
		if err := selectWorkspace(state, workspaceName); err != nil {
			return nil, err
		}
	}
	return &appEnv{cfg: cfg, logger: logger, client: client, state: state}, nil
}

// selectWorkspace switches the session to the workspace matching the given
// name or id.
func selectWorkspace(state *session.State, nameOrID string) error {
	for _, ws := range state.Workspaces() {
		if ws.Name == nameOrID || ws.ID == nameOrID {
			if _, err := state.SetCurrentWorkspace(ws.ID); err != nil {
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("no workspace named %q", nameOrID)
}

// runChat starts the interactive TUI.
func runChat(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync(env.logger) }()

	machine := chat.NewMachine(env.state, env.logger)
	return ui.Run(env.client, env.cfg, env.state, machine, env.logger)
}
