package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finburn/internal/cli"
	"github.com/theirongolddev/finburn/internal/model"
	"github.com/theirongolddev/finburn/internal/tui/components"
	"github.com/theirongolddev/finburn/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderGoalsTab(cw int) string {
	t := theme.Active
	g := a.snap.goals
	var b strings.Builder

	overall := 0.0
	if g.TotalTarget.IsPositive() {
		overall = g.TotalSaved.Div(g.TotalTarget).InexactFloat64() * 100
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Active goals", Value: cli.FormatNumber(int64(len(g.Active)))},
		{Label: "Saved", Value: cli.FormatMoney(g.TotalSaved, a.currency), Delta: cli.FormatPercent(overall) + " of target", Color: t.Blue},
		{Label: "Target", Value: cli.FormatMoney(g.TotalTarget, a.currency)},
		{Label: "Completed", Value: cli.FormatNumber(int64(len(g.Completed))), Color: t.Green},
	}, cw))
	b.WriteString("\n")

	inner := components.CardInnerWidth(cw)
	if len(g.Active) == 0 {
		b.WriteString(components.ContentCard("Active goals", muted("No active goals. Use `finburn goal add` to start one."), cw))
	} else {
		blocks := make([]string, len(g.Active))
		for i, p := range g.Active {
			blocks[i] = a.goalBlock(p, inner)
		}
		b.WriteString(components.ContentCard("Active goals", strings.Join(blocks, "\n\n"), cw))
	}

	if len(g.Completed) > 0 {
		b.WriteString("\n")
		lines := make([]string, len(g.Completed))
		for i, p := range g.Completed {
			lines[i] = text(p.Goal.Name) + muted("  "+cli.FormatMoney(p.Goal.CurrentAmount, a.currency))
		}
		b.WriteString(components.ContentCard("Completed", strings.Join(lines, "\n"), cw))
	}
	return b.String()
}

func (a App) goalBlock(p model.GoalProgress, width int) string {
	t := theme.Active
	status := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Render("on track")
	if !p.IsOnTrack {
		status = lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Render("behind schedule")
	}

	days := fmt.Sprintf("%d days left", p.DaysRemaining)
	if p.DaysRemaining < 0 {
		days = fmt.Sprintf("%d days past target", -p.DaysRemaining)
	}
	head := text(p.Goal.Name) + muted(fmt.Sprintf("  %s of %s · %s · ",
		cli.FormatMoney(p.Goal.CurrentAmount, a.currency),
		cli.FormatMoney(p.Goal.TargetAmount, a.currency),
		days)) + status

	barW := width - 8
	if barW < 10 {
		barW = 10
	}
	return head + "\n" + components.ProgressBar(p.ProgressPercentage, barW, p.IsOnTrack)
}
