package chat

import (
	"errors"
	"strings"
	"sync"

	"github.com/fyrsmithlabs/newsroom/internal/api"
	"github.com/fyrsmithlabs/newsroom/internal/news"
	"github.com/fyrsmithlabs/newsroom/internal/session"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FallbackReply is shown when the server reply carries no summary.
const FallbackReply = "Sorry, I didn't understand that."

var (
	// ErrEmptyQuery is returned for a whitespace-only submission. No turn
	// is appended and no request is made.
	ErrEmptyQuery = errors.New("empty query")

	// ErrBusy is returned while a previous submission is still awaiting
	// its reply. The caller should surface a transient busy signal.
	ErrBusy = errors.New("a reply is still pending")
)

// Submission is a prepared query, correlated with its placeholder turn by
// ID. The caller sends Request to the server and feeds the outcome back via
// CompleteSubmit or FailSubmit.
type Submission struct {
	ID      uuid.UUID
	Request api.QueryRequest
}

// Machine is the conversation state machine for one chat surface. It owns
// the log, serializes submissions (at most one awaiting a reply), and
// merges replies back into the log by correlation id rather than by
// position.
type Machine struct {
	mu       sync.Mutex
	log      *Log
	state    *session.State
	logger   *zap.Logger
	awaiting bool
	pending  uuid.UUID
}

// NewMachine creates a machine bound to the shared session state. The
// quoted-article slot lives in state so other surfaces can fill it.
func NewMachine(state *session.State, logger *zap.Logger) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Machine{
		log:    NewLog(),
		state:  state,
		logger: logger,
	}
}

// Turns returns a copy of the current log.
func (m *Machine) Turns() []Turn {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.log.Turns()
}

// Busy reports whether a submission is awaiting its reply.
func (m *Machine) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.awaiting
}

// InjectDigest appends the synthetic daily-news turn built from a digest
// response. Idempotent per workspace session. Reports whether the turn was
// added.
func (m *Machine) InjectDigest(digest api.DigestResponse) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.log.InjectDigest(digest.Summary, digest.Articles)
}

// BeginSubmit validates raw input and transitions to awaiting-reply:
// it appends the user turn (carrying the active quote, which is cleared),
// appends a pending placeholder turn, and returns the prepared request
// with the accumulated prior-user context and surfaced article ids.
//
// Returns ErrEmptyQuery for whitespace-only input and ErrBusy while a
// previous submission is outstanding; in both cases the log is untouched.
func (m *Machine) BeginSubmit(raw string) (Submission, error) {
	query := strings.TrimSpace(raw)
	if query == "" {
		return Submission{}, ErrEmptyQuery
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.awaiting {
		return Submission{}, ErrBusy
	}

	workspace, ok := m.state.CurrentWorkspace()
	if !ok {
		return Submission{}, errors.New("no current workspace")
	}

	// Capture context before appending the new turn: the query itself is
	// not part of its own context.
	priorContext := m.log.PriorUserContext()
	surfaced := m.log.SurfacedIDs()

	var quoting *news.Article
	var quoteTitle string
	if quote, ok := m.state.Quote(); ok {
		quoting = &quote
		quoteTitle = quote.Title
		m.state.ClearQuote()
	}

	m.log.append(Turn{
		ID:      uuid.New(),
		Sender:  SenderUser,
		Content: query,
		Quoting: quoting,
	})

	id := uuid.New()
	m.log.append(Turn{
		ID:      id,
		Sender:  SenderBot,
		Content: "Loading...",
		Pending: true,
	})

	m.awaiting = true
	m.pending = id

	return Submission{
		ID: id,
		Request: api.QueryRequest{
			Query:       query,
			Context:     priorContext,
			Quote:       quoteTitle,
			UserID:      m.state.User(),
			WorkspaceID: workspace.ID,
			NewsIDs:     surfaced,
		},
	}, nil
}

// CompleteSubmit resolves the placeholder of a submission with the server
// reply. An empty summary falls back to FallbackReply; nil articles become
// an empty list. A submission superseded by Reset is dropped silently.
func (m *Machine) CompleteSubmit(id uuid.UUID, resp api.QueryResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()

	content := resp.Summary
	if content == "" {
		content = FallbackReply
	}
	if !m.log.resolvePending(id, content, resp.Articles) {
		m.logger.Debug("reply for superseded submission dropped", zap.String("submission_id", id.String()))
	}
	m.clearAwaiting(id)
}

// FailSubmit removes the placeholder of a failed submission so the log
// never shows a loading turn forever.
func (m *Machine) FailSubmit(id uuid.UUID, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Error("query failed", zap.String("submission_id", id.String()), zap.Error(err))
	m.log.dropPending(id)
	m.clearAwaiting(id)
}

// ToggleBookmark optimistically flips the bookmarked flag of an article in
// the log and returns the new value. Reports found=false when the article
// is not in the conversation.
func (m *Machine) ToggleBookmark(articleID string) (bookmarked, found bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.log.toggleBookmark(articleID)
}

// Reset clears the log, the quoted article, and the awaiting flag. Invoked
// explicitly by the user and implicitly on every workspace change.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.log.Reset()
	m.state.ClearQuote()
	m.awaiting = false
	m.pending = uuid.Nil
}

func (m *Machine) clearAwaiting(id uuid.UUID) {
	if m.pending == id {
		m.awaiting = false
		m.pending = uuid.Nil
	}
}
