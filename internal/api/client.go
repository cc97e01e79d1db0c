// Package api implements the HTTP client for the news-assistant server.
//
// All endpoints live under <base>/api/ and speak JSON. The client does no
// retries and no backoff; callers decide what a failure means. Best-effort
// side effects (bookmark toggles, click tracking) go through BestEffort,
// which logs and drops the result.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fyrsmithlabs/newsroom/internal/news"
	"go.uber.org/zap"
)

// ErrStatus is wrapped by errors returned for non-2xx responses.
var ErrStatus = fmt.Errorf("unexpected status")

// Client talks to the news-assistant server.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New creates a client for the server at baseURL.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// endpoint joins path segments under <base>/api/, escaping each segment.
func (c *Client) endpoint(segments ...string) string {
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	return c.baseURL + "/api/" + strings.Join(escaped, "/")
}

// do issues a request and decodes the JSON response into out (out may be
// nil for ack-only endpoints).
func (c *Client) do(ctx context.Context, method, u string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("request failed", zap.String("method", method), zap.String("url", u), zap.Error(err))
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("unexpected status",
			zap.String("method", method),
			zap.String("url", u),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w %d for %s %s", ErrStatus, resp.StatusCode, method, u)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// CurrentUser resolves the active user identity.
func (c *Client) CurrentUser(ctx context.Context) (string, error) {
	var userID string
	if err := c.do(ctx, http.MethodGet, c.endpoint("user"), nil, &userID); err != nil {
		return "", err
	}
	return userID, nil
}

// Workspaces lists the user's workspaces.
func (c *Client) Workspaces(ctx context.Context, userID string) ([]Workspace, error) {
	var workspaces []Workspace
	if err := c.do(ctx, http.MethodGet, c.endpoint("workspaces", userID), nil, &workspaces); err != nil {
		return nil, err
	}
	return workspaces, nil
}

// CreateWorkspace creates a named workspace for the user.
func (c *Client) CreateWorkspace(ctx context.Context, userID, name string) (Workspace, error) {
	var ws Workspace
	if err := c.do(ctx, http.MethodPost, c.endpoint("workspace", userID, name), nil, &ws); err != nil {
		return Workspace{}, err
	}
	return ws, nil
}

// DeleteWorkspace deletes a workspace by id.
func (c *Client) DeleteWorkspace(ctx context.Context, userID, workspaceID string) error {
	return c.do(ctx, http.MethodDelete, c.endpoint("workspace", userID, workspaceID), nil, nil)
}

// DailyNews fetches the "new since last visit" digest for a workspace.
func (c *Client) DailyNews(ctx context.Context, userID, workspaceID string) (DigestResponse, error) {
	var w wireSummary
	if err := c.do(ctx, http.MethodGet, c.endpoint("daily_news", userID, workspaceID), nil, &w); err != nil {
		return DigestResponse{}, err
	}
	return DigestResponse{
		Summary:  w.Summary,
		Articles: news.ArticlesFromWire(w.Articles),
	}, nil
}

// Query submits a chat query and returns the summarized reply.
func (c *Client) Query(ctx context.Context, req QueryRequest) (QueryResponse, error) {
	if req.NewsIDs == nil {
		req.NewsIDs = []string{}
	}
	var w wireSummary
	if err := c.do(ctx, http.MethodPost, c.endpoint("query"), req, &w); err != nil {
		return QueryResponse{}, err
	}
	return QueryResponse{
		Summary:  w.Summary,
		Articles: news.ArticlesFromWire(w.Articles),
	}, nil
}

// Bookmarks lists the bookmarks of a user and workspace.
func (c *Client) Bookmarks(ctx context.Context, userID, workspaceID string) ([]news.Bookmark, error) {
	var records []news.WireBookmark
	if err := c.do(ctx, http.MethodGet, c.endpoint("bookmarks", userID, workspaceID), nil, &records); err != nil {
		return nil, err
	}
	return news.BookmarksFromWire(records), nil
}

// AddBookmark bookmarks an article for a user and workspace.
func (c *Client) AddBookmark(ctx context.Context, userID, workspaceID, articleID string) error {
	return c.do(ctx, http.MethodPost, c.endpoint("bookmark", userID, workspaceID, articleID), nil, nil)
}

// RemoveBookmark removes the bookmark of an article for a user and workspace.
func (c *Client) RemoveBookmark(ctx context.Context, userID, workspaceID, articleID string) error {
	return c.do(ctx, http.MethodDelete, c.endpoint("bookmark", userID, workspaceID, articleID), nil, nil)
}

// DeleteBookmark deletes a bookmark record by its own id.
func (c *Client) DeleteBookmark(ctx context.Context, bookmarkID string) error {
	return c.do(ctx, http.MethodDelete, c.endpoint("bookmark", bookmarkID), nil, nil)
}

// DeleteAllBookmarks deletes every bookmark of a user and workspace.
func (c *Client) DeleteAllBookmarks(ctx context.Context, userID, workspaceID string) error {
	return c.do(ctx, http.MethodDelete, c.endpoint("bookmark", "all", userID, workspaceID), nil, nil)
}

// RecordClick notifies the server that an article link was opened.
func (c *Client) RecordClick(ctx context.Context, userID, workspaceID, articleID string) error {
	return c.do(ctx, http.MethodPost, c.endpoint("click_article", userID, workspaceID, articleID), nil, nil)
}

// Interests lists the top interest tags of a user and workspace.
func (c *Client) Interests(ctx context.Context, userID, workspaceID string) ([]string, error) {
	var interests []string
	if err := c.do(ctx, http.MethodGet, c.endpoint("interests", userID, workspaceID), nil, &interests); err != nil {
		return nil, err
	}
	return interests, nil
}

// ResetInterests clears the interest profile of a workspace.
func (c *Client) ResetInterests(ctx context.Context, workspaceID string) error {
	return c.do(ctx, http.MethodDelete, c.endpoint("interests", workspaceID), nil, nil)
}

// Configuration fetches the server configuration, grouped by section.
func (c *Client) Configuration(ctx context.Context) (map[string]map[string]any, error) {
	var cfg map[string]map[string]any
	if err := c.do(ctx, http.MethodGet, c.endpoint("config"), nil, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BestEffort dispatches a result-ignoring side effect. The call runs in the
// background with its own deadline; a failure is logged and dropped, so
// optimistic local state may diverge from server truth until the next full
// refetch.
func (c *Client) BestEffort(name string, timeout time.Duration, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			c.logger.Warn("best-effort call failed", zap.String("op", name), zap.Error(err))
		}
	}()
}
