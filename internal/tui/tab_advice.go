package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finburn/internal/model"
	"github.com/theirongolddev/finburn/internal/tui/components"
	"github.com/theirongolddev/finburn/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func priorityColor(p model.Priority) lipgloss.Color {
	t := theme.Active
	switch p {
	case model.PriorityHigh:
		return t.Red
	case model.PriorityMedium:
		return t.Orange
	default:
		return t.TextMuted
	}
}

func (a App) renderAdviceTab(cw int) string {
	t := theme.Active
	recs := a.snap.dash.Recommendations
	if len(recs) == 0 {
		return components.ContentCard("Recommendations",
			lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Render("Looking good. Nothing to flag this month."), cw)
	}

	inner := components.CardInnerWidth(cw)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Width(inner - 2).PaddingLeft(2)
	blocks := make([]string, len(recs))
	for i, r := range recs {
		badge := lipgloss.NewStyle().Foreground(priorityColor(r.Priority)).Background(t.Surface).Bold(true).
			Render(fmt.Sprintf("%-6s", r.Priority))
		blocks[i] = badge + surface(" ") + text(r.Title) + "\n" + descStyle.Render(r.Description)
	}
	return components.ContentCard(fmt.Sprintf("Recommendations (%d)", len(recs)), strings.Join(blocks, "\n\n"), cw)
}
