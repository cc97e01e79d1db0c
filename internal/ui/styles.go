// Package ui implements the terminal interface: a chat surface over the
// news corpus and a bookmark browser, as bubbletea models sharing one
// session.
package ui

import "github.com/charmbracelet/lipgloss"

// Lipgloss styles (k9s-inspired color scheme)
var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("51")).
			Bold(true).
			Padding(0, 1)

	userLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	botLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true)

	turnTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	newsTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231"))

	selectedNewsStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("45"))

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	quoteStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("45")).
			Foreground(lipgloss.Color("45")).
			PaddingLeft(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			MarginTop(1)

	footerKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true)
)

// bookmarkGlyph marks an article's bookmark state in listings.
func bookmarkGlyph(bookmarked bool) string {
	if bookmarked {
		return "★"
	}
	return "☆"
}
