package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fyrsmithlabs/newsroom/internal/api"
	"github.com/fyrsmithlabs/newsroom/internal/chat"
	"github.com/fyrsmithlabs/newsroom/internal/news"
	"github.com/fyrsmithlabs/newsroom/internal/session"
	"go.uber.org/zap"
)

// chatChromeHeight is the number of terminal rows around the scrollback:
// header, quote banner slot, input line, footer.
const chatChromeHeight = 6

// ChatModel is the chat surface: scrollback viewport over the conversation
// log, an input line, and article actions on a focus cursor.
type ChatModel struct {
	client  *api.Client
	state   *session.State
	machine *chat.Machine
	logger  *zap.Logger
	timeout time.Duration

	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model
	ready    bool
	width    int

	digestLoading bool
	digestErr     error
	focus         int // index into the surfaced article list, -1 = none
	status        string
}

// NewChat creates the chat screen. The digest fetch starts from Init.
func NewChat(client *api.Client, state *session.State, machine *chat.Machine, logger *zap.Logger, timeout time.Duration) ChatModel {
	input := textinput.New()
	input.Placeholder = "Type your message here..."
	input.Prompt = "> "
	input.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))

	return ChatModel{
		client:        client,
		state:         state,
		machine:       machine,
		logger:        logger,
		timeout:       timeout,
		input:         input,
		spin:          spin,
		digestLoading: true,
		focus:         -1,
	}
}

// Init starts the input blink, the spinner, and the digest fetch for the
// initial workspace.
func (m ChatModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spin.Tick}
	if ws, ok := m.state.CurrentWorkspace(); ok {
		cmds = append(cmds, fetchDigest(m.client, m.timeout, m.state.User(), ws.ID))
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		height := msg.Height - chatChromeHeight
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.machine.Busy() || m.digestLoading {
			m.refresh()
		}
		return m, cmd

	case digestMsg:
		m.digestLoading = false
		m.digestErr = nil
		m.machine.InjectDigest(api.DigestResponse(msg))
		m.refresh()
		m.viewport.GotoBottom()
		return m, nil

	case digestErrMsg:
		// The digest is decoration; the chat surface stays usable.
		m.digestLoading = false
		m.digestErr = msg.err
		m.logger.Warn("daily digest fetch failed", zap.Error(msg.err))
		m.refresh()
		return m, nil

	case replyMsg:
		m.machine.CompleteSubmit(msg.id, msg.resp)
		m.status = ""
		m.refresh()
		m.viewport.GotoBottom()
		return m, nil

	case replyErrMsg:
		m.machine.FailSubmit(msg.id, msg.err)
		m.status = "query failed: " + msg.err.Error()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ChatModel) handleKey(msg tea.KeyMsg) (ChatModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.submit()

	case "ctrl+r":
		m.machine.Reset()
		m.focus = -1
		m.status = ""
		m.refresh()
		return m, nil

	case "esc":
		m.state.ClearQuote()
		return m, nil

	case "ctrl+w":
		return m.cycleWorkspace()

	case "ctrl+n":
		m.moveFocus(1)
		m.refresh()
		return m, nil

	case "ctrl+p":
		m.moveFocus(-1)
		m.refresh()
		return m, nil

	case "ctrl+b":
		return m.toggleBookmark()

	case "ctrl+q":
		if article, ok := m.focusedArticle(); ok {
			m.state.SetQuote(article)
		}
		return m, nil

	case "ctrl+o":
		return m.openArticle()

	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the submit transition of the conversation state machine and
// dispatches the query. A busy machine rejects the attempt with a transient
// notice instead of queueing it.
func (m ChatModel) submit() (ChatModel, tea.Cmd) {
	sub, err := m.machine.BeginSubmit(m.input.Value())
	switch {
	case errors.Is(err, chat.ErrEmptyQuery):
		return m, nil
	case errors.Is(err, chat.ErrBusy):
		m.status = "still waiting for the previous reply"
		return m, nil
	case err != nil:
		m.status = err.Error()
		return m, nil
	}

	m.input.Reset()
	m.status = ""
	m.refresh()
	m.viewport.GotoBottom()
	return m, sendQuery(m.client, m.timeout, sub)
}

// cycleWorkspace selects the next workspace. The switch resets the whole
// conversation before the new digest is fetched.
func (m ChatModel) cycleWorkspace() (ChatModel, tea.Cmd) {
	workspaces := m.state.Workspaces()
	current, ok := m.state.CurrentWorkspace()
	if !ok || len(workspaces) < 2 {
		return m, nil
	}

	next := workspaces[0]
	for i, ws := range workspaces {
		if ws.ID == current.ID {
			next = workspaces[(i+1)%len(workspaces)]
			break
		}
	}

	changed, err := m.state.SetCurrentWorkspace(next.ID)
	if err != nil || !changed {
		return m, nil
	}

	m.machine.Reset()
	m.focus = -1
	m.status = ""
	m.digestLoading = true
	m.digestErr = nil
	m.refresh()
	return m, fetchDigest(m.client, m.timeout, m.state.User(), next.ID)
}

// toggleBookmark flips the focused article optimistically and fires the
// server call without reconciling its result.
func (m ChatModel) toggleBookmark() (ChatModel, tea.Cmd) {
	article, ok := m.focusedArticle()
	if !ok {
		return m, nil
	}
	ws, ok := m.state.CurrentWorkspace()
	if !ok {
		return m, nil
	}

	bookmarked, found := m.machine.ToggleBookmark(article.ID)
	if !found {
		return m, nil
	}

	userID := m.state.User()
	if bookmarked {
		m.client.BestEffort("add bookmark", m.timeout, func(ctx context.Context) error {
			return m.client.AddBookmark(ctx, userID, ws.ID, article.ID)
		})
	} else {
		m.client.BestEffort("remove bookmark", m.timeout, func(ctx context.Context) error {
			return m.client.RemoveBookmark(ctx, userID, ws.ID, article.ID)
		})
	}

	m.refresh()
	return m, nil
}

// openArticle shows the focused article's link and reports the click.
func (m ChatModel) openArticle() (ChatModel, tea.Cmd) {
	article, ok := m.focusedArticle()
	if !ok {
		return m, nil
	}
	ws, ok := m.state.CurrentWorkspace()
	if !ok {
		return m, nil
	}

	userID := m.state.User()
	m.client.BestEffort("record click", m.timeout, func(ctx context.Context) error {
		return m.client.RecordClick(ctx, userID, ws.ID, article.ID)
	})

	m.status = article.Link
	return m, nil
}

// surfacedArticles flattens the articles of all bot turns, deduplicated by
// id in first-appearance order.
func (m ChatModel) surfacedArticles() []news.Article {
	seen := make(map[string]struct{})
	var articles []news.Article
	for _, turn := range m.machine.Turns() {
		if turn.Sender != chat.SenderBot {
			continue
		}
		for _, a := range turn.News {
			if _, ok := seen[a.ID]; ok {
				continue
			}
			seen[a.ID] = struct{}{}
			articles = append(articles, a)
		}
	}
	return articles
}

func (m *ChatModel) moveFocus(delta int) {
	articles := m.surfacedArticles()
	if len(articles) == 0 {
		m.focus = -1
		return
	}
	m.focus = (m.focus + delta + len(articles)) % len(articles)
}

func (m ChatModel) focusedArticle() (news.Article, bool) {
	articles := m.surfacedArticles()
	if m.focus < 0 || m.focus >= len(articles) {
		return news.Article{}, false
	}
	return articles[m.focus], true
}

// refresh re-renders the scrollback into the viewport.
func (m *ChatModel) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderConversation())
}

func (m ChatModel) renderConversation() string {
	var focusedID string
	if article, ok := m.focusedArticle(); ok {
		focusedID = article.ID
	}

	width := m.viewport.Width
	if width < 20 {
		width = 20
	}
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	if m.digestLoading {
		b.WriteString(pendingStyle.Render(m.spin.View()+" fetching today's news...") + "\n\n")
	}
	if m.digestErr != nil {
		b.WriteString(errorStyle.Render("daily news unavailable: "+m.digestErr.Error()) + "\n\n")
	}

	for _, turn := range m.machine.Turns() {
		label := botLabelStyle.Render("Assistant")
		if turn.Sender == chat.SenderUser {
			label = userLabelStyle.Render("You")
		}
		b.WriteString(label + "\n")

		if turn.Quoting != nil {
			b.WriteString(quoteStyle.Render("Quoting: "+turn.Quoting.Title) + "\n")
		}

		if turn.Pending {
			b.WriteString(pendingStyle.Render(m.spin.View()+" "+turn.Content) + "\n\n")
			continue
		}

		b.WriteString(wrap.Render(turnTextStyle.Render(turn.Content)) + "\n")

		for _, article := range turn.News {
			line := fmt.Sprintf("  %s %s", bookmarkGlyph(article.Bookmarked), article.Title)
			if len(article.Tags) > 0 {
				line += "  " + tagStyle.Render("["+strings.Join(article.Tags, ", ")+"]")
			}
			if article.ID == focusedID {
				line = selectedNewsStyle.Render(line)
			} else {
				line = newsTitleStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// View renders the chat screen.
func (m ChatModel) View() string {
	if !m.ready {
		return "loading..."
	}

	var header string
	if ws, ok := m.state.CurrentWorkspace(); ok {
		header = headerStyle.Render(" newsroom ") + "  " +
			dimStyle.Render("workspace:") + " " + ws.Name
	} else {
		header = headerStyle.Render(" newsroom ")
	}

	quoteLine := ""
	if quote, ok := m.state.Quote(); ok {
		quoteLine = quoteStyle.Render("Quoting: "+quote.Title) + dimStyle.Render("  (esc to cancel)")
	}

	statusLine := ""
	if m.status != "" {
		statusLine = statusStyle.Render(m.status)
	}

	footer := footerKeyStyle.Render("[enter]") + footerStyle.Render(" send  ") +
		footerKeyStyle.Render("[^n/^p]") + footerStyle.Render(" focus article  ") +
		footerKeyStyle.Render("[^b]") + footerStyle.Render(" bookmark  ") +
		footerKeyStyle.Render("[^q]") + footerStyle.Render(" quote  ") +
		footerKeyStyle.Render("[^o]") + footerStyle.Render(" open  ") +
		footerKeyStyle.Render("[^w]") + footerStyle.Render(" workspace  ") +
		footerKeyStyle.Render("[^g]") + footerStyle.Render(" bookmarks  ") +
		footerKeyStyle.Render("[^r]") + footerStyle.Render(" reset")

	return header + "\n" +
		m.viewport.View() + "\n" +
		quoteLine + "\n" +
		m.input.View() + "\n" +
		statusLine + "\n" +
		footer
}
