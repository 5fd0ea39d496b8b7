package components

import (
	"strings"

	"github.com/theirongolddev/finburn/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. note is shown on the
// right, e.g. the last refresh time or an error.
func RenderStatusBar(width int, note string, isError bool) string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	noteStyle := style
	if isError {
		noteStyle = noteStyle.Foreground(t.Red)
	}

	left := style.Render(" [?]help  [n]ew  [r]efresh  [</>]month  [q]uit")
	right := noteStyle.Render(note + " ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + style.Render(strings.Repeat(" ", gap)) + right
}
