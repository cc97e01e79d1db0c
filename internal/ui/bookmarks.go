package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fyrsmithlabs/newsroom/internal/api"
	"github.com/fyrsmithlabs/newsroom/internal/news"
	"github.com/fyrsmithlabs/newsroom/internal/session"
	"go.uber.org/zap"
)

// BookmarksModel is the bookmark browser: a paginated list with delete and
// quote-into-chat actions. The list is a client-side cache of the server
// truth, invalidated by explicit delete or refresh.
type BookmarksModel struct {
	client  *api.Client
	state   *session.State
	logger  *zap.Logger
	timeout time.Duration

	pageSize  int
	bookmarks []news.Bookmark
	page      int // 1-based
	cursor    int // index within the current page
	loading   bool
	err       error
	confirmID string // bookmark id awaiting delete confirmation
	status    string
	width     int
	height    int
}

// NewBookmarks creates the bookmark browser. The list loads when the screen
// is first shown.
func NewBookmarks(client *api.Client, state *session.State, logger *zap.Logger, timeout time.Duration, pageSize int) BookmarksModel {
	return BookmarksModel{
		client:   client,
		state:    state,
		logger:   logger,
		timeout:  timeout,
		pageSize: pageSize,
		page:     1,
	}
}

// load starts a fetch of the current workspace's bookmarks.
func (m BookmarksModel) load() (BookmarksModel, tea.Cmd) {
	ws, ok := m.state.CurrentWorkspace()
	if !ok {
		return m, nil
	}
	m.loading = true
	m.err = nil
	m.confirmID = ""
	m.status = ""
	return m, fetchBookmarks(m.client, m.timeout, m.state.User(), ws.ID)
}

// Update handles messages.
func (m BookmarksModel) Update(msg tea.Msg) (BookmarksModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case bookmarksMsg:
		m.loading = false
		m.bookmarks = msg
		m.page = 1
		m.cursor = 0
		return m, nil

	case bookmarksErrMsg:
		m.loading = false
		m.err = msg.err
		m.logger.Warn("bookmark fetch failed", zap.Error(msg.err))
		return m, nil

	case bookmarkDeletedMsg:
		m.removeBookmark(msg.bookmarkID)
		m.status = "bookmark deleted"
		return m, nil

	case bookmarkDeleteErrMsg:
		// Server refused: the local list stays as-is (stale until refresh).
		m.logger.Error("bookmark delete failed",
			zap.String("bookmark_id", msg.bookmarkID), zap.Error(msg.err))
		m.status = "delete failed: " + msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m BookmarksModel) handleKey(msg tea.KeyMsg) (BookmarksModel, tea.Cmd) {
	// A pending delete confirmation swallows the next keystroke: y
	// confirms, anything else cancels.
	if m.confirmID != "" {
		id := m.confirmID
		m.confirmID = ""
		if msg.String() == "y" {
			return m, deleteBookmark(m.client, m.timeout, id)
		}
		m.status = "delete cancelled"
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.currentPage())-1 {
			m.cursor++
		}
		return m, nil

	case "left", "h":
		m.page = m.previousPage()
		m.cursor = 0
		return m, nil

	case "right", "l":
		m.page = m.nextPage()
		m.cursor = 0
		return m, nil

	case "r":
		return m.load()

	case "d":
		if b, ok := m.selected(); ok {
			m.confirmID = b.BookmarkID
		}
		return m, nil

	case "@", "ctrl+q":
		if b, ok := m.selected(); ok {
			quote := b.Article
			return m, func() tea.Msg { return switchToChatMsg{quote: &quote} }
		}
		return m, nil

	case "esc":
		return m, func() tea.Msg { return switchToChatMsg{} }
	}

	return m, nil
}

// maxPage is computed from the full list; pagination is client-side.
func (m BookmarksModel) maxPage() int {
	if len(m.bookmarks) == 0 {
		return 1
	}
	return (len(m.bookmarks) + m.pageSize - 1) / m.pageSize
}

// nextPage and previousPage wrap around at either end.
func (m BookmarksModel) nextPage() int {
	if m.page >= m.maxPage() {
		return 1
	}
	return m.page + 1
}

func (m BookmarksModel) previousPage() int {
	if m.page <= 1 {
		return m.maxPage()
	}
	return m.page - 1
}

// currentPage slices the cached list for the visible page.
func (m BookmarksModel) currentPage() []news.Bookmark {
	start := (m.page - 1) * m.pageSize
	if start >= len(m.bookmarks) {
		return nil
	}
	end := start + m.pageSize
	if end > len(m.bookmarks) {
		end = len(m.bookmarks)
	}
	return m.bookmarks[start:end]
}

func (m BookmarksModel) selected() (news.Bookmark, bool) {
	page := m.currentPage()
	if m.cursor < 0 || m.cursor >= len(page) {
		return news.Bookmark{}, false
	}
	return page[m.cursor], true
}

// removeBookmark drops an entry by id and keeps page and cursor in range.
func (m *BookmarksModel) removeBookmark(bookmarkID string) {
	kept := m.bookmarks[:0]
	for _, b := range m.bookmarks {
		if b.BookmarkID != bookmarkID {
			kept = append(kept, b)
		}
	}
	m.bookmarks = kept

	if m.page > m.maxPage() {
		m.page = m.maxPage()
	}
	if n := len(m.currentPage()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	} else if n == 0 {
		m.cursor = 0
	}
}

// View renders the bookmark browser.
func (m BookmarksModel) View() string {
	var b strings.Builder

	workspaceName := ""
	if ws, ok := m.state.CurrentWorkspace(); ok {
		workspaceName = ws.Name
	}
	b.WriteString(headerStyle.Render(" bookmarks ") + "  " +
		dimStyle.Render("workspace:") + " " + workspaceName + "\n\n")

	switch {
	case m.loading:
		b.WriteString(pendingStyle.Render("loading bookmarks...") + "\n")
	case m.err != nil:
		b.WriteString(errorStyle.Render("failed to load bookmarks: "+m.err.Error()) + "\n")
	case len(m.bookmarks) == 0:
		b.WriteString(dimStyle.Render("no bookmarks yet") + "\n")
	default:
		for i, bm := range m.currentPage() {
			line := fmt.Sprintf("%s %s", bookmarkGlyph(true), bm.Title)
			if bm.Timestamp != "" {
				line += "  " + dimStyle.Render(bm.Timestamp)
			}
			if i == m.cursor {
				line = selectedNewsStyle.Render(line)
				b.WriteString(line + "\n")
				b.WriteString(dimStyle.Render("  "+bm.Summary) + "\n")
			} else {
				b.WriteString(newsTitleStyle.Render(line) + "\n")
			}
		}
		b.WriteString("\n" + dimStyle.Render(fmt.Sprintf("page %d/%d  (%d bookmarks)",
			m.page, m.maxPage(), len(m.bookmarks))) + "\n")
	}

	if m.confirmID != "" {
		b.WriteString("\n" + statusStyle.Render("delete this bookmark? [y/N]") + "\n")
	} else if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}

	footer := footerKeyStyle.Render("[↑/↓]") + footerStyle.Render(" select  ") +
		footerKeyStyle.Render("[←/→]") + footerStyle.Render(" page  ") +
		footerKeyStyle.Render("[d]") + footerStyle.Render(" delete  ") +
		footerKeyStyle.Render("[@]") + footerStyle.Render(" quote in chat  ") +
		footerKeyStyle.Render("[r]") + footerStyle.Render(" refresh  ") +
		footerKeyStyle.Render("[esc]") + footerStyle.Render(" back")
	b.WriteString("\n" + footer)

	return b.String()
}
