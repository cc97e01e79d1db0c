// Package chat maintains the client-side conversation state: the ordered
// turn log, the synthetic daily-digest turn, and the submit state machine
// that merges asynchronous server replies into the log.
package chat

import (
	"strings"

	"github.com/fyrsmithlabs/newsroom/internal/news"
	"github.com/google/uuid"
)

// Sender identifies who authored a turn.
type Sender string

const (
	SenderUser Sender = "User"
	SenderBot  Sender = "Bot"
)

// digestIndex is the session-local ordinal reserved for the synthetic
// daily-news turn. It is the only turn the client synthesizes without a
// matching user turn.
const digestIndex = 0

// Turn is one entry of the conversation log.
type Turn struct {
	// ID correlates a placeholder with the submission that created it.
	ID uuid.UUID
	// Index is a session-local ordinal. The digest turn is always 0.
	Index   int
	Sender  Sender
	Content string
	// News is the ordered article list carried by a bot turn, never nil.
	News []news.Article
	// Quoting is the article attached to a user turn, if any.
	Quoting *news.Article
	// Pending marks a placeholder awaiting the server reply.
	Pending bool
}

// Log is the ordered conversation log for the current workspace session.
// It is append-only except for the resolution or removal of a pending
// placeholder turn. Log is not safe for concurrent use; the Machine
// serializes access.
type Log struct {
	turns []Turn
	next  int
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{next: digestIndex + 1}
}

// Len returns the number of turns.
func (l *Log) Len() int { return len(l.turns) }

// Turns returns a copy of the turn sequence.
func (l *Log) Turns() []Turn {
	out := make([]Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Reset clears the log. The next session starts from an empty sequence with
// the digest slot free again.
func (l *Log) Reset() {
	l.turns = nil
	l.next = digestIndex + 1
}

// append adds a turn with the next ordinal and returns it.
func (l *Log) append(t Turn) Turn {
	t.Index = l.next
	l.next++
	if t.News == nil {
		t.News = []news.Article{}
	}
	l.turns = append(l.turns, t)
	return t
}

// InjectDigest appends the synthetic daily-news turn. It is idempotent: a
// second digest for the same session is dropped, so duplicate delivery from
// a re-render or re-fetch cannot double the greeting. Reports whether the
// turn was added.
func (l *Log) InjectDigest(summary string, articles []news.Article) bool {
	for _, t := range l.turns {
		if t.Index == digestIndex {
			return false
		}
	}
	if articles == nil {
		articles = []news.Article{}
	}
	l.turns = append(l.turns, Turn{
		ID:      uuid.New(),
		Index:   digestIndex,
		Sender:  SenderBot,
		Content: summary,
		News:    articles,
	})
	return true
}

// SurfacedIDs returns the union of article ids across all bot turns, in
// first-appearance order. The set is recomputed from the log rather than
// maintained incrementally.
func (l *Log) SurfacedIDs() []string {
	seen := make(map[string]struct{})
	ids := []string{}
	for _, t := range l.turns {
		if t.Sender != SenderBot {
			continue
		}
		for _, a := range t.News {
			if _, ok := seen[a.ID]; ok {
				continue
			}
			seen[a.ID] = struct{}{}
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// PriorUserContext returns the newline-joined content of all user turns in
// the log, oldest first.
func (l *Log) PriorUserContext() string {
	var parts []string
	for _, t := range l.turns {
		if t.Sender == SenderUser {
			parts = append(parts, t.Content)
		}
	}
	return strings.Join(parts, "\n")
}

// toggleBookmark flips the bookmarked flag of an article everywhere it
// appears in the log and returns the new flag value. The flip is optimistic;
// the server call happens elsewhere and is never reconciled back.
func (l *Log) toggleBookmark(articleID string) (bookmarked, found bool) {
	for i := range l.turns {
		for j := range l.turns[i].News {
			if l.turns[i].News[j].ID != articleID {
				continue
			}
			if !found {
				bookmarked = !l.turns[i].News[j].Bookmarked
				found = true
			}
			l.turns[i].News[j].Bookmarked = bookmarked
		}
	}
	return bookmarked, found
}

// resolvePending replaces the pending turn with the given id in place,
// keeping its ordinal. Reports whether a pending turn was found.
func (l *Log) resolvePending(id uuid.UUID, content string, articles []news.Article) bool {
	for i := range l.turns {
		if l.turns[i].ID == id && l.turns[i].Pending {
			if articles == nil {
				articles = []news.Article{}
			}
			l.turns[i].Content = content
			l.turns[i].News = articles
			l.turns[i].Pending = false
			return true
		}
	}
	return false
}

// dropPending removes the pending turn with the given id. Reports whether a
// pending turn was removed.
func (l *Log) dropPending(id uuid.UUID) bool {
	for i := range l.turns {
		if l.turns[i].ID == id && l.turns[i].Pending {
			l.turns = append(l.turns[:i], l.turns[i+1:]...)
			return true
		}
	}
	return false
}
