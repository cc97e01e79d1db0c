package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/newsroom/internal/logging"
)

// bookmarksCmd lists the saved articles of a workspace
var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "List saved articles for a workspace",
	Long: `List the saved articles of a workspace.

Examples:
  # List bookmarks of the default workspace
  newsroom bookmarks

  # List bookmarks of a named workspace
  newsroom bookmarks --workspace research`,
	RunE: runBookmarks,
}

// bookmarksClearCmd deletes every bookmark of a workspace
var bookmarksClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all bookmarks of a workspace",
	RunE:  runBookmarksClear,
}

var clearConfirmed bool

func init() {
	bookmarksClearCmd.Flags().BoolVar(&clearConfirmed, "yes", false, "skip the confirmation prompt")
	bookmarksCmd.AddCommand(bookmarksClearCmd)
}

func runBookmarks(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync(env.logger) }()

	ws, ok := env.state.CurrentWorkspace()
	if !ok {
		return fmt.Errorf("no workspace selected")
	}

	bookmarks, err := env.client.Bookmarks(cmd.Context(), env.state.User(), ws.ID)
	if err != nil {
		return fmt.Errorf("fetching bookmarks: %w", err)
	}

	if len(bookmarks) == 0 {
		fmt.Printf("No bookmarks in workspace %q.\n", ws.Name)
		return nil
	}

	fmt.Printf("Bookmarks in workspace %q:\n\n", ws.Name)
	for _, b := range bookmarks {
		fmt.Printf("  %s\n", b.Title)
		if b.Link != "" {
			fmt.Printf("    %s\n", b.Link)
		}
		if b.Timestamp != "" {
			fmt.Printf("    saved %s\n", b.Timestamp)
		}
	}
	fmt.Printf("\n%d bookmark(s)\n", len(bookmarks))
	return nil
}

func runBookmarksClear(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync(env.logger) }()

	ws, ok := env.state.CurrentWorkspace()
	if !ok {
		return fmt.Errorf("no workspace selected")
	}

	if !clearConfirmed {
		fmt.Printf("Delete ALL bookmarks in workspace %q? [y/N] ", ws.Name)
		var answer string
		if _, err := fmt.Fscanln(cmd.InOrStdin(), &answer); err != nil || (answer != "y" && answer != "Y") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := env.client.DeleteAllBookmarks(cmd.Context(), env.state.User(), ws.ID); err != nil {
		return fmt.Errorf("deleting bookmarks: %w", err)
	}
	fmt.Printf("Deleted all bookmarks in workspace %q.\n", ws.Name)
	return nil
}
