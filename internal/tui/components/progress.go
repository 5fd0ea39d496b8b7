package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finburn/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func clampFrac(pct float64) float64 {
	f := pct / 100
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func bar(pct float64, width int, color lipgloss.Color) string {
	t := theme.Active
	if width < 1 {
		width = 1
	}
	filled := int(clampFrac(pct) * float64(width))

	filledStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)

	return filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", width-filled)) +
		pctStyle.Render(fmt.Sprintf(" %5.1f%%", pct))
}

// UsageBar renders budget utilization (0-100+). Color shifts as the
// budget fills.
func UsageBar(pct float64, width int) string {
	return bar(pct, width, theme.Active.Usage(pct))
}

// ProgressBar renders goal progress (0-100), red when behind schedule.
func ProgressBar(pct float64, width int, onTrack bool) string {
	t := theme.Active
	color := t.Blue
	if !onTrack {
		color = t.Orange
	}
	return bar(pct, width, color)
}

// HBar is one labeled horizontal bar.
type HBar struct {
	Label string
	Value float64
	Note  string
}

// HBarChart renders labeled bars scaled to the largest value.
func HBarChart(rows []HBar, width int, color lipgloss.Color) string {
	if len(rows) == 0 {
		return ""
	}
	t := theme.Active
	labelW, noteW := 0, 0
	maxVal := 0.0
	for _, r := range rows {
		labelW = max(labelW, lipgloss.Width(r.Label))
		noteW = max(noteW, lipgloss.Width(r.Note))
		maxVal = max(maxVal, r.Value)
	}
	barW := width - labelW - noteW - 2
	if barW < 4 {
		barW = 4
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	lines := make([]string, len(rows))
	for i, r := range rows {
		n := 0
		if maxVal > 0 {
			n = int(r.Value / maxVal * float64(barW))
		}
		lines[i] = labelStyle.Render(fmt.Sprintf("%-*s ", labelW, r.Label)) +
			barStyle.Render(strings.Repeat("▇", n)+strings.Repeat(" ", barW-n)) +
			noteStyle.Render(fmt.Sprintf(" %*s", noteW, r.Note))
	}
	return strings.Join(lines, "\n")
}
