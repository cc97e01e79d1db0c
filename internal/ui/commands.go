package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fyrsmithlabs/newsroom/internal/api"
	"github.com/fyrsmithlabs/newsroom/internal/chat"
	"github.com/fyrsmithlabs/newsroom/internal/news"
	"github.com/google/uuid"
)

// Message types
type digestMsg api.DigestResponse

type digestErrMsg struct{ err error }

type replyMsg struct {
	id   uuid.UUID
	resp api.QueryResponse
}

type replyErrMsg struct {
	id  uuid.UUID
	err error
}

type bookmarksMsg []news.Bookmark

type bookmarksErrMsg struct{ err error }

type bookmarkDeletedMsg struct{ bookmarkID string }

type bookmarkDeleteErrMsg struct {
	bookmarkID string
	err        error
}

// switchToChatMsg returns focus to the chat screen, optionally carrying an
// article to quote in the next message.
type switchToChatMsg struct{ quote *news.Article }

// fetchDigest fetches the daily digest for the current workspace.
func fetchDigest(client *api.Client, timeout time.Duration, userID, workspaceID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		digest, err := client.DailyNews(ctx, userID, workspaceID)
		if err != nil {
			return digestErrMsg{err: err}
		}
		return digestMsg(digest)
	}
}

// sendQuery submits a prepared query and correlates the outcome with its
// placeholder turn.
func sendQuery(client *api.Client, timeout time.Duration, sub chat.Submission) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := client.Query(ctx, sub.Request)
		if err != nil {
			return replyErrMsg{id: sub.ID, err: err}
		}
		return replyMsg{id: sub.ID, resp: resp}
	}
}

// fetchBookmarks loads the bookmark list of the current workspace.
func fetchBookmarks(client *api.Client, timeout time.Duration, userID, workspaceID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		bookmarks, err := client.Bookmarks(ctx, userID, workspaceID)
		if err != nil {
			return bookmarksErrMsg{err: err}
		}
		return bookmarksMsg(bookmarks)
	}
}

// deleteBookmark deletes a bookmark record by id. Unlike the best-effort
// toggles, the local list is only updated on server success.
func deleteBookmark(client *api.Client, timeout time.Duration, bookmarkID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := client.DeleteBookmark(ctx, bookmarkID); err != nil {
			return bookmarkDeleteErrMsg{bookmarkID: bookmarkID, err: err}
		}
		return bookmarkDeletedMsg{bookmarkID: bookmarkID}
	}
}
