package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/newsroom/internal/logging"
)

// showConfigCmd dumps the server-side configuration groups
var showConfigCmd = &cobra.Command{
	Use:   "show-config",
	Short: "Show the server configuration",
	Long: `Show the configuration the server is running with, grouped by
subsystem. The values are read-only from the client side.`,
	RunE: runShowConfig,
}

func runShowConfig(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync(env.logger) }()

	groups, err := env.client.Configuration(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetching configuration: %w", err)
	}

	groupNames := make([]string, 0, len(groups))
	for name := range groups {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)

	for _, group := range groupNames {
		fmt.Printf("[%s]\n", group)
		keys := make([]string, 0, len(groups[group]))
		for key := range groups[group] {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Printf("  %s = %v\n", key, groups[group][key])
		}
		fmt.Println()
	}
	return nil
}
