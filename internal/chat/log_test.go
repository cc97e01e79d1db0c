package chat

import (
	"testing"

	"github.com/fyrsmithlabs/newsroom/internal/news"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectDigest_Idempotent(t *testing.T) {
	log := NewLog()
	articles := []news.Article{{ID: "a1", Title: "Morning story"}}

	assert.True(t, log.InjectDigest("Since your last visit...", articles))
	assert.False(t, log.InjectDigest("Since your last visit...", articles))

	require.Equal(t, 1, log.Len())
	turn := log.Turns()[0]
	assert.Equal(t, 0, turn.Index)
	assert.Equal(t, SenderBot, turn.Sender)
	assert.Equal(t, "Since your last visit...", turn.Content)
}

func TestInjectDigest_AfterReset(t *testing.T) {
	log := NewLog()
	assert.True(t, log.InjectDigest("day one", nil))
	log.Reset()

	// New workspace session: the digest slot is free again.
	assert.True(t, log.InjectDigest("day two", nil))
	require.Equal(t, 1, log.Len())
	assert.Equal(t, "day two", log.Turns()[0].Content)
}

func TestInjectDigest_NilArticlesBecomeEmpty(t *testing.T) {
	log := NewLog()
	log.InjectDigest("quiet day", nil)
	assert.NotNil(t, log.Turns()[0].News)
	assert.Empty(t, log.Turns()[0].News)
}

func TestPriorUserContext(t *testing.T) {
	log := NewLog()
	log.InjectDigest("digest", nil)
	log.append(Turn{ID: uuid.New(), Sender: SenderUser, Content: "a"})
	log.append(Turn{ID: uuid.New(), Sender: SenderBot, Content: "reply"})
	log.append(Turn{ID: uuid.New(), Sender: SenderUser, Content: "b"})

	assert.Equal(t, "a\nb", log.PriorUserContext())
}

func TestPriorUserContext_Empty(t *testing.T) {
	log := NewLog()
	log.InjectDigest("digest", nil)
	assert.Equal(t, "", log.PriorUserContext())
}

func TestSurfacedIDs_UnionOverBotTurns(t *testing.T) {
	log := NewLog()
	log.append(Turn{ID: uuid.New(), Sender: SenderBot, News: []news.Article{{ID: "1"}, {ID: "2"}}})
	log.append(Turn{ID: uuid.New(), Sender: SenderUser, Content: "more"})
	log.append(Turn{ID: uuid.New(), Sender: SenderBot, News: []news.Article{{ID: "2"}, {ID: "3"}}})

	assert.ElementsMatch(t, []string{"1", "2", "3"}, log.SurfacedIDs())
}

func TestSurfacedIDs_IgnoresUserTurns(t *testing.T) {
	log := NewLog()
	log.append(Turn{ID: uuid.New(), Sender: SenderUser, News: []news.Article{{ID: "u1"}}})

	assert.Empty(t, log.SurfacedIDs())
}

func TestResolvePending_ReplacesExactTurn(t *testing.T) {
	log := NewLog()
	log.append(Turn{ID: uuid.New(), Sender: SenderUser, Content: "q"})
	pending := log.append(Turn{ID: uuid.New(), Sender: SenderBot, Content: "Loading...", Pending: true})

	ok := log.resolvePending(pending.ID, "Here you go.", []news.Article{{ID: "a1"}})
	require.True(t, ok)

	turns := log.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, "Here you go.", turns[1].Content)
	assert.False(t, turns[1].Pending)
	assert.Equal(t, pending.Index, turns[1].Index)

	// Resolving twice is a no-op.
	assert.False(t, log.resolvePending(pending.ID, "again", nil))
}

func TestDropPending_RemovesExactlyOnce(t *testing.T) {
	log := NewLog()
	user := log.append(Turn{ID: uuid.New(), Sender: SenderUser, Content: "q"})
	pending := log.append(Turn{ID: uuid.New(), Sender: SenderBot, Content: "Loading...", Pending: true})

	assert.True(t, log.dropPending(pending.ID))
	assert.False(t, log.dropPending(pending.ID))

	turns := log.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, user.ID, turns[0].ID)
}

func TestReset_EmptiesLog(t *testing.T) {
	log := NewLog()
	log.InjectDigest("digest", nil)
	log.append(Turn{ID: uuid.New(), Sender: SenderUser, Content: "q"})

	log.Reset()
	assert.Equal(t, 0, log.Len())
}

func TestTurns_ReturnsCopy(t *testing.T) {
	log := NewLog()
	log.append(Turn{ID: uuid.New(), Sender: SenderUser, Content: "q"})

	turns := log.Turns()
	turns[0].Content = "mutated"

	assert.Equal(t, "q", log.Turns()[0].Content)
}
