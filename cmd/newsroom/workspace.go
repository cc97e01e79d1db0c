package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/newsroom/internal/api"
	"github.com/fyrsmithlabs/newsroom/internal/logging"
	"github.com/fyrsmithlabs/newsroom/internal/session"
)

var workspaceCmd = &cobra.Command{
	Use:   "workspace",
	Short: "Manage workspaces",
	Long: `Manage workspaces. Each workspace keeps its own interests, bookmarks
and daily digest.

Examples:
  # List workspaces
  newsroom workspace list

  # Create a workspace
  newsroom workspace create research

  # Delete a workspace by name
  newsroom workspace delete research`,
}

var workspaceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workspaces",
	RunE:  runWorkspaceList,
}

var workspaceCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a workspace",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkspaceCreate,
}

var workspaceDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a workspace",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkspaceDelete,
}

func init() {
	workspaceCmd.AddCommand(workspaceListCmd)
	workspaceCmd.AddCommand(workspaceCreateCmd)
	workspaceCmd.AddCommand(workspaceDeleteCmd)
}

// validateWorkspaceName rejects empty and duplicate names before the
// create request goes out.
func validateWorkspaceName(name string, existing []api.Workspace) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("workspace name must not be empty")
	}
	for _, ws := range existing {
		if strings.EqualFold(ws.Name, name) {
			return fmt.Errorf("workspace %q already exists", ws.Name)
		}
	}
	return nil
}

func runWorkspaceList(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync(env.logger) }()

	current, _ := env.state.CurrentWorkspace()
	for _, ws := range env.state.Workspaces() {
		marker := " "
		if ws.ID == current.ID {
			marker = "*"
		}
		fmt.Printf("%s %s  (%s)\n", marker, ws.Name, ws.ID)
	}
	return nil
}

func runWorkspaceCreate(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync(env.logger) }()

	name := strings.TrimSpace(args[0])
	if err := validateWorkspaceName(name, env.state.Workspaces()); err != nil {
		return err
	}

	ws, err := env.client.CreateWorkspace(cmd.Context(), env.state.User(), name)
	if err != nil {
		return fmt.Errorf("creating workspace: %w", err)
	}
	if _, err := session.RefreshWorkspaces(cmd.Context(), env.client, env.state); err != nil {
		return fmt.Errorf("refreshing workspaces: %w", err)
	}
	fmt.Printf("Created workspace %q (%s).\n", ws.Name, ws.ID)
	return nil
}

func runWorkspaceDelete(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync(env.logger) }()

	name := args[0]
	var target api.Workspace
	found := false
	for _, ws := range env.state.Workspaces() {
		if ws.Name == name || ws.ID == name {
			target = ws
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("no workspace named %q", name)
	}
	if len(env.state.Workspaces()) == 1 {
		return fmt.Errorf("cannot delete the last workspace")
	}

	if err := env.client.DeleteWorkspace(cmd.Context(), env.state.User(), target.ID); err != nil {
		return fmt.Errorf("deleting workspace: %w", err)
	}
	if _, err := session.RefreshWorkspaces(cmd.Context(), env.client, env.state); err != nil {
		return fmt.Errorf("refreshing workspaces: %w", err)
	}
	fmt.Printf("Deleted workspace %q.\n", target.Name)
	return nil
}
