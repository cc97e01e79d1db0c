package api

import "github.com/fyrsmithlabs/newsroom/internal/news"

// Workspace is an isolated context with its own news feed and interest
// history. A user owns a set of them.
type Workspace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// QueryRequest is the body of a query call.
type QueryRequest struct {
	// Query is the user's message, trimmed.
	Query string `json:"query"`
	// Context is the newline-joined content of all prior user turns.
	Context string `json:"context"`
	// Quote is the title of the quoted article, or empty.
	Quote string `json:"quote"`
	// UserID and WorkspaceID scope the request.
	UserID      string `json:"user_id"`
	WorkspaceID string `json:"workspace_id"`
	// NewsIDs are the article ids already surfaced in the conversation,
	// so the server avoids resurfacing them.
	NewsIDs []string `json:"news_ids"`
}

// QueryResponse is the summarized reply to a query, with normalized
// articles.
type QueryResponse struct {
	Summary  string
	Articles []news.Article
}

// DigestResponse is the "new since last visit" digest for a workspace,
// with normalized articles.
type DigestResponse struct {
	Summary  string
	Articles []news.Article
}

// wireSummary is the shared wire shape of query and daily_news responses.
type wireSummary struct {
	Summary  string             `json:"summary"`
	Articles []news.WireArticle `json:"articles"`
}
