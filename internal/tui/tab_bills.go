package tui

import (
	"strings"

	"github.com/theirongolddev/finburn/internal/cli"
	"github.com/theirongolddev/finburn/internal/tui/components"
	"github.com/theirongolddev/finburn/internal/tui/theme"
)

func (a App) renderBillsTab(cw int) string {
	t := theme.Active
	bo := a.snap.bills
	var b strings.Builder

	overdueColor := t.Green
	if len(bo.Overdue) > 0 {
		overdueColor = t.Red
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Overdue", Value: cli.FormatNumber(int64(len(bo.Overdue))), Color: overdueColor},
		{Label: "Reminders", Value: cli.FormatNumber(int64(len(bo.Reminders))), Color: t.Orange},
		{Label: "Upcoming", Value: cli.FormatNumber(int64(len(bo.Upcoming)))},
	}, cw))
	b.WriteString("\n")

	inner := components.CardInnerWidth(cw)
	if len(bo.Overdue) > 0 {
		b.WriteString(components.ContentCard("Overdue", a.billLines(bo.Overdue, inner), cw))
		b.WriteString("\n")
	}
	if len(bo.Reminders) > 0 {
		b.WriteString(components.ContentCard("Due soon", a.billLines(bo.Reminders, inner), cw))
		b.WriteString("\n")
	}
	b.WriteString(components.ContentCard("Upcoming", a.billLines(bo.Upcoming, inner), cw))
	return b.String()
}
