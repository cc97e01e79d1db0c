package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fyrsmithlabs/newsroom/internal/api"
	"github.com/fyrsmithlabs/newsroom/internal/chat"
	"github.com/fyrsmithlabs/newsroom/internal/news"
	"github.com/fyrsmithlabs/newsroom/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChat(t *testing.T) (ChatModel, *chat.Machine, *session.State) {
	t.Helper()
	state := session.NewState()
	state.SetUser("user-42")
	_, err := state.SetWorkspaces([]api.Workspace{
		{ID: "w1", Name: "tech"},
		{ID: "w2", Name: "finance"},
	})
	require.NoError(t, err)

	machine := chat.NewMachine(state, nil)
	client := api.New("http://localhost:1", time.Second, nil)
	model := NewChat(client, state, machine, testLogger(), time.Second)

	// Simulate the initial window size so the viewport exists.
	model, _ = model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return model, machine, state
}

func TestChat_Init_StartsDigestFetch(t *testing.T) {
	model, _, _ := newTestChat(t)
	assert.NotNil(t, model.Init())
	assert.True(t, model.digestLoading)
}

func TestChat_DigestMsg_InjectsOnce(t *testing.T) {
	model, machine, _ := newTestChat(t)
	digest := digestMsg{Summary: "Since your last visit...", Articles: []news.Article{{ID: "a1", Title: "Story"}}}

	model, _ = model.Update(digest)
	model, _ = model.Update(digest)

	assert.False(t, model.digestLoading)
	assert.Len(t, machine.Turns(), 1)
	assert.Equal(t, 0, machine.Turns()[0].Index)
}

func TestChat_DigestErrDoesNotBlockSubmit(t *testing.T) {
	model, machine, _ := newTestChat(t)

	model, _ = model.Update(digestErrMsg{err: errors.New("boom")})
	require.Error(t, model.digestErr)

	model.input.SetValue("hello")
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.Len(t, machine.Turns(), 2)
}

func TestChat_SubmitEmptyInputIsNoOp(t *testing.T) {
	model, machine, _ := newTestChat(t)

	model.input.SetValue("   ")
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, machine.Turns())
}

func TestChat_SubmitWhileBusyShowsNotice(t *testing.T) {
	model, machine, _ := newTestChat(t)

	model.input.SetValue("first")
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.True(t, machine.Busy())

	model.input.SetValue("second")
	model, cmd = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, model.status, "waiting")
	assert.Len(t, machine.Turns(), 2)
}

func TestChat_ReplyErrRemovesPlaceholder(t *testing.T) {
	model, machine, _ := newTestChat(t)

	model.input.SetValue("q")
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	turns := machine.Turns()
	require.Len(t, turns, 2)
	pendingID := turns[1].ID

	model, _ = model.Update(replyErrMsg{id: pendingID, err: errors.New("connection refused")})

	assert.Len(t, machine.Turns(), 1)
	assert.Contains(t, model.status, "query failed")
	assert.False(t, machine.Busy())
}

func TestChat_ReplyMsgMergesIntoLog(t *testing.T) {
	model, machine, _ := newTestChat(t)

	model.input.SetValue("q")
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	pendingID := machine.Turns()[1].ID

	model, _ = model.Update(replyMsg{id: pendingID, resp: api.QueryResponse{
		Summary:  "Here is the news.",
		Articles: []news.Article{{ID: "a1", Title: "Story"}},
	}})

	turns := machine.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, "Here is the news.", turns[1].Content)
	assert.False(t, turns[1].Pending)
	_ = model
}

func TestChat_WorkspaceCycleResetsConversation(t *testing.T) {
	model, machine, state := newTestChat(t)
	model, _ = model.Update(digestMsg{Summary: "digest"})
	require.Len(t, machine.Turns(), 1)

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlW})

	assert.NotNil(t, cmd) // new digest fetch
	assert.Empty(t, machine.Turns())
	assert.True(t, model.digestLoading)
	ws, _ := state.CurrentWorkspace()
	assert.Equal(t, "w2", ws.ID)
}

func TestChat_FocusAndQuote(t *testing.T) {
	model, _, state := newTestChat(t)
	model, _ = model.Update(digestMsg{
		Summary:  "digest",
		Articles: []news.Article{{ID: "a1", Title: "First"}, {ID: "a2", Title: "Second"}},
	})

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	article, ok := model.focusedArticle()
	require.True(t, ok)
	assert.Equal(t, "a1", article.ID)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	article, _ = model.focusedArticle()
	assert.Equal(t, "a2", article.ID)

	// Wraps around.
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	article, _ = model.focusedArticle()
	assert.Equal(t, "a1", article.ID)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})
	quote, ok := state.Quote()
	require.True(t, ok)
	assert.Equal(t, "a1", quote.ID)

	// Esc cancels the quote.
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	_, ok = state.Quote()
	assert.False(t, ok)
	_ = model
}

func TestChat_BookmarkToggleIsOptimistic(t *testing.T) {
	model, machine, _ := newTestChat(t)
	model, _ = model.Update(digestMsg{
		Summary:  "digest",
		Articles: []news.Article{{ID: "a1", Title: "First", Bookmarked: false}},
	})

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlB})

	// The local flag flips even though the server is unreachable.
	assert.True(t, machine.Turns()[0].News[0].Bookmarked)
	_ = model
}

func TestChat_ResetClearsLog(t *testing.T) {
	model, machine, _ := newTestChat(t)
	model, _ = model.Update(digestMsg{Summary: "digest"})
	require.Len(t, machine.Turns(), 1)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlR})

	assert.Empty(t, machine.Turns())
	_ = model
}

func TestChat_ViewRendersWorkspace(t *testing.T) {
	model, _, _ := newTestChat(t)
	view := model.View()
	assert.Contains(t, view, "newsroom")
	assert.Contains(t, view, "tech")
}
