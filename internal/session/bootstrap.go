package session

import (
	"context"
	"fmt"

	"github.com/fyrsmithlabs/newsroom/internal/api"
	"go.uber.org/zap"
)

// Directory is the part of the API client bootstrap depends on.
type Directory interface {
	CurrentUser(ctx context.Context) (string, error)
	Workspaces(ctx context.Context, userID string) ([]api.Workspace, error)
}

// Bootstrap resolves the active user, fetches the user's workspaces, and
// selects the initial current workspace (previous selection if still valid,
// else the first). It runs before any UI renders; a failure is fatal to the
// caller. On partial failure the state keeps its zero values, so nothing
// downstream observes a half-initialized session.
func Bootstrap(ctx context.Context, dir Directory, state *State, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	userID, err := dir.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve user: %w", err)
	}

	workspaces, err := dir.Workspaces(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch workspaces: %w", err)
	}

	state.SetUser(userID)
	current, err := state.SetWorkspaces(workspaces)
	if err != nil {
		return fmt.Errorf("failed to select workspace: %w", err)
	}

	logger.Info("session bootstrapped",
		zap.String("user_id", userID),
		zap.Int("workspaces", len(workspaces)),
		zap.String("current_workspace", current.Name))
	return nil
}

// RefreshWorkspaces re-fetches the workspace list after a create or delete
// and merges it into the state, preserving the selection semantics of
// Bootstrap. Returns the now-current workspace.
func RefreshWorkspaces(ctx context.Context, dir Directory, state *State) (api.Workspace, error) {
	workspaces, err := dir.Workspaces(ctx, state.User())
	if err != nil {
		return api.Workspace{}, fmt.Errorf("failed to fetch workspaces: %w", err)
	}
	return state.SetWorkspaces(workspaces)
}
