package session

import (
	"context"
	"errors"
	"testing"

	"github.com/fyrsmithlabs/newsroom/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	userID     string
	userErr    error
	workspaces []api.Workspace
	wsErr      error
	wsCalls    int
}

func (f *fakeDirectory) CurrentUser(ctx context.Context) (string, error) {
	return f.userID, f.userErr
}

func (f *fakeDirectory) Workspaces(ctx context.Context, userID string) ([]api.Workspace, error) {
	f.wsCalls++
	return f.workspaces, f.wsErr
}

func TestBootstrap(t *testing.T) {
	dir := &fakeDirectory{
		userID: "user-42",
		workspaces: []api.Workspace{
			{ID: "w1", Name: "tech"},
			{ID: "w2", Name: "finance"},
		},
	}
	state := NewState()

	require.NoError(t, Bootstrap(context.Background(), dir, state, nil))

	assert.Equal(t, "user-42", state.User())
	ws, ok := state.CurrentWorkspace()
	assert.True(t, ok)
	assert.Equal(t, "w1", ws.ID)
}

func TestBootstrap_UserFailureLeavesStateUntouched(t *testing.T) {
	dir := &fakeDirectory{userErr: errors.New("boom")}
	state := NewState()

	err := Bootstrap(context.Background(), dir, state, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to resolve user")

	assert.Empty(t, state.User())
	_, ok := state.CurrentWorkspace()
	assert.False(t, ok)
}

func TestBootstrap_WorkspaceFailureLeavesStateUntouched(t *testing.T) {
	dir := &fakeDirectory{userID: "user-42", wsErr: errors.New("boom")}
	state := NewState()

	err := Bootstrap(context.Background(), dir, state, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch workspaces")

	// User is only committed once the whole sequence succeeds.
	assert.Empty(t, state.User())
}

func TestBootstrap_NoWorkspaces(t *testing.T) {
	dir := &fakeDirectory{userID: "user-42"}
	state := NewState()

	err := Bootstrap(context.Background(), dir, state, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to select workspace")
}

func TestRefreshWorkspaces_PreservesSelection(t *testing.T) {
	dir := &fakeDirectory{
		userID: "user-42",
		workspaces: []api.Workspace{
			{ID: "w1", Name: "tech"},
			{ID: "w2", Name: "finance"},
		},
	}
	state := NewState()
	require.NoError(t, Bootstrap(context.Background(), dir, state, nil))
	_, err := state.SetCurrentWorkspace("w2")
	require.NoError(t, err)

	// A workspace was created server-side; refresh merges the new list.
	dir.workspaces = append(dir.workspaces, api.Workspace{ID: "w3", Name: "sports"})
	current, err := RefreshWorkspaces(context.Background(), dir, state)
	require.NoError(t, err)

	assert.Equal(t, "w2", current.ID)
	assert.Len(t, state.Workspaces(), 3)
	assert.Equal(t, 2, dir.wsCalls)
}
