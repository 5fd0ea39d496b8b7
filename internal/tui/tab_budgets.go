package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finburn/internal/cli"
	"github.com/theirongolddev/finburn/internal/tui/components"
	"github.com/theirongolddev/finburn/internal/tui/theme"
)

func (a App) renderBudgetsTab(cw int) string {
	t := theme.Active
	bo := a.snap.budgets
	var b strings.Builder

	used := 0.0
	if bo.TotalBudget.IsPositive() {
		used = bo.TotalSpent.Div(bo.TotalBudget).InexactFloat64() * 100
	}
	remainingColor := t.Green
	if bo.TotalRemaining.IsNegative() {
		remainingColor = t.Red
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Budgeted", Value: cli.FormatMoney(bo.TotalBudget, a.currency)},
		{Label: "Spent", Value: cli.FormatMoney(bo.TotalSpent, a.currency), Delta: cli.FormatPercent(used) + " used", Color: t.Usage(used)},
		{Label: "Remaining", Value: cli.FormatMoney(bo.TotalRemaining, a.currency), Color: remainingColor},
	}, cw))
	b.WriteString("\n")

	inner := components.CardInnerWidth(cw)
	if len(bo.Statuses) == 0 {
		b.WriteString(components.ContentCard("Budgets",
			muted("No budgets for this month. Use `finburn budget set` to add one."), cw))
		return b.String()
	}

	const labelW = 16
	amountsW := 28
	barW := inner - labelW - amountsW - 9
	if barW < 10 {
		barW = 10
	}
	lines := make([]string, 0, len(bo.Statuses))
	for _, s := range bo.Statuses {
		amounts := fmt.Sprintf("%s / %s",
			cli.FormatMoney(s.SpentAmount, a.currency),
			cli.FormatMoney(s.Budget.MonthlyLimit, a.currency))
		line := text(fmt.Sprintf("%-*s", labelW, s.Budget.Category.DisplayName())) +
			components.UsageBar(s.PercentageUsed, barW) +
			muted(fmt.Sprintf("  %*s", amountsW, amounts))
		lines = append(lines, line)
	}
	b.WriteString(components.ContentCard("Budgets · "+cli.FormatMonth(bo.Month), strings.Join(lines, "\n"), cw))
	return b.String()
}
