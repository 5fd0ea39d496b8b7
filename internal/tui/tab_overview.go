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

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	d := a.snap.dash
	var b strings.Builder

	balanceColor := t.Green
	if d.TotalBalance.IsNegative() {
		balanceColor = t.Red
	}
	rateColor := t.Green
	if d.SavingsRate < 10 {
		rateColor = t.Orange
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Income", Value: cli.FormatMoney(d.MonthlyIncome, a.currency), Color: t.Green},
		{Label: "Expenses", Value: cli.FormatMoney(d.MonthlyExpense, a.currency), Color: t.Red},
		{Label: "Balance", Value: cli.FormatMoney(d.TotalBalance, a.currency), Color: balanceColor},
		{Label: "Savings rate", Value: cli.FormatPercent(d.SavingsRate), Color: rateColor},
	}, cw))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)

	var spend string
	if len(d.CategoryBreakdown) == 0 {
		spend = muted("No expenses this month.")
	} else {
		rows := make([]components.HBar, len(d.CategoryBreakdown))
		for i, c := range d.CategoryBreakdown {
			rows[i] = components.HBar{
				Label: c.Category.DisplayName(),
				Value: c.Amount.InexactFloat64(),
				Note:  fmt.Sprintf("%s %5.1f%%", cli.FormatMoney(c.Amount, a.currency), c.SharePercent),
			}
		}
		spend = components.HBarChart(rows, components.CardInnerWidth(halves[0]), t.Red)
	}

	b.WriteString(components.CardRow([]string{
		components.ContentCard("Spending by category", spend, halves[0]),
		components.ContentCard("Recent transactions", a.recentList(components.CardInnerWidth(halves[1])), halves[1]),
	}))
	b.WriteString("\n")

	b.WriteString(components.ContentCard("Upcoming bills", a.billLines(d.UpcomingBills, cw), cw))
	return b.String()
}

func (a App) recentList(width int) string {
	t := theme.Active
	txs := a.snap.dash.RecentTransactions
	if len(txs) == 0 {
		return muted("No transactions yet. Press n to add one.")
	}

	lines := make([]string, len(txs))
	for i, tx := range txs {
		color := t.Red
		sign := "-"
		if tx.Type == model.Income {
			color, sign = t.Green, "+"
		}
		amount := lipgloss.NewStyle().Foreground(color).Background(t.Surface).
			Render(sign + cli.FormatMoney(tx.Amount, a.currency))
		label := tx.Description
		if label == "" {
			label = tx.Category.DisplayName()
		}
		left := fmt.Sprintf("%s  %s", tx.Date.Local().Format("01-02"), label)
		left = cli.Truncate(left, width-lipgloss.Width(amount)-1)
		gap := width - lipgloss.Width(left) - lipgloss.Width(amount)
		if gap < 1 {
			gap = 1
		}
		lines[i] = text(left) + surface(strings.Repeat(" ", gap)) + amount
	}
	return strings.Join(lines, "\n")
}

func (a App) billLines(bills []model.BillStatus, width int) string {
	t := theme.Active
	if len(bills) == 0 {
		return muted("Nothing due.")
	}
	lines := make([]string, len(bills))
	for i, bs := range bills {
		due := cli.FormatDue(bs.DaysUntilDue)
		color := t.TextMuted
		switch {
		case bs.Bill.IsPaid:
			due, color = "paid", t.Green
		case bs.IsOverdue:
			color = t.Red
		case bs.ReminderDue():
			color = t.Orange
		}
		lines[i] = text(fmt.Sprintf("%-10s ", cli.FormatDate(bs.Bill.DueDate))) +
			text(cli.Truncate(bs.Bill.Title, width/3)) + surface("  ") +
			muted(cli.FormatMoney(bs.Bill.Amount, a.currency)) + surface("  ") +
			lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(due)
	}
	return strings.Join(lines, "\n")
}

func surface(s string) string {
	return lipgloss.NewStyle().Background(theme.Active.Surface).Render(s)
}

func text(s string) string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Render(s)
}

func muted(s string) string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(s)
}
