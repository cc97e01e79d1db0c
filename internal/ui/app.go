package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fyrsmithlabs/newsroom/internal/api"
	"github.com/fyrsmithlabs/newsroom/internal/chat"
	"github.com/fyrsmithlabs/newsroom/internal/config"
	"github.com/fyrsmithlabs/newsroom/internal/session"
	"go.uber.org/zap"
)

type screen int

const (
	screenChat screen = iota
	screenBookmarks
)

// Model is the root application model. It owns the two screens and routes
// messages: keystrokes go to the active screen, asynchronous results go to
// the screen that requested them regardless of which one is visible.
type Model struct {
	chat      ChatModel
	bookmarks BookmarksModel
	active    screen
}

// NewModel wires the TUI from the bootstrapped session.
func NewModel(client *api.Client, cfg *config.Config, state *session.State, machine *chat.Machine, logger *zap.Logger) Model {
	timeout := cfg.Server.RequestTimeout
	return Model{
		chat:      NewChat(client, state, machine, logger, timeout),
		bookmarks: NewBookmarks(client, state, logger, timeout, cfg.UI.PageSize),
		active:    screenChat,
	}
}

// Init starts the chat screen.
func (m Model) Init() tea.Cmd {
	return m.chat.Init()
}

// Update routes messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+g":
			if m.active == screenChat {
				m.active = screenBookmarks
				var cmd tea.Cmd
				m.bookmarks, cmd = m.bookmarks.load()
				return m, cmd
			}
			m.active = screenChat
			return m, nil
		}

		var cmd tea.Cmd
		if m.active == screenChat {
			m.chat, cmd = m.chat.Update(msg)
		} else {
			m.bookmarks, cmd = m.bookmarks.Update(msg)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		var chatCmd, bmCmd tea.Cmd
		m.chat, chatCmd = m.chat.Update(msg)
		m.bookmarks, bmCmd = m.bookmarks.Update(msg)
		return m, tea.Batch(chatCmd, bmCmd)

	case switchToChatMsg:
		if msg.quote != nil {
			m.chat.state.SetQuote(*msg.quote)
		}
		m.active = screenChat
		return m, nil

	case digestMsg, digestErrMsg, replyMsg, replyErrMsg, spinner.TickMsg:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd

	case bookmarksMsg, bookmarksErrMsg, bookmarkDeletedMsg, bookmarkDeleteErrMsg:
		var cmd tea.Cmd
		m.bookmarks, cmd = m.bookmarks.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

// View renders the active screen.
func (m Model) View() string {
	if m.active == screenBookmarks {
		return m.bookmarks.View()
	}
	return m.chat.View()
}

// Run starts the TUI in the alternate screen until the user quits.
func Run(client *api.Client, cfg *config.Config, state *session.State, machine *chat.Machine, logger *zap.Logger) error {
	model := NewModel(client, cfg, state, machine, logger)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("TUI exited with error: %w", err)
	}
	return nil
}
