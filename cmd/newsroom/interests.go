package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/newsroom/internal/logging"
)

// resetInterests switches the command from listing to clearing
var resetInterests bool

// interestsCmd shows the learned interest profile of a workspace
var interestsCmd = &cobra.Command{
	Use:   "interests",
	Short: "Show or reset the learned interests of a workspace",
	Long: `Show the interests the server has learned for a workspace.

The profile is built from queries, clicks and bookmarks and steers which
articles the daily digest surfaces.

Examples:
  # Show interests
  newsroom interests

  # Wipe the profile and start over
  newsroom interests --reset`,
	RunE: runInterests,
}

func init() {
	interestsCmd.Flags().BoolVar(&resetInterests, "reset", false, "delete the learned interests")
}

func runInterests(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync(env.logger) }()

	ws, ok := env.state.CurrentWorkspace()
	if !ok {
		return fmt.Errorf("no workspace selected")
	}

	if resetInterests {
		if err := env.client.ResetInterests(cmd.Context(), ws.ID); err != nil {
			return fmt.Errorf("resetting interests: %w", err)
		}
		fmt.Printf("Interests for workspace %q reset.\n", ws.Name)
		return nil
	}

	interests, err := env.client.Interests(cmd.Context(), env.state.User(), ws.ID)
	if err != nil {
		return fmt.Errorf("fetching interests: %w", err)
	}

	if len(interests) == 0 {
		fmt.Printf("No interests learned yet for workspace %q.\n", ws.Name)
		return nil
	}

	fmt.Printf("Interests for workspace %q:\n", ws.Name)
	for _, interest := range interests {
		fmt.Printf("  - %s\n", interest)
	}
	return nil
}
