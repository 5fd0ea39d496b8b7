package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finburn/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// Flexoki Dark palette
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorYellow    = lipgloss.Color("#D0A215")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorText).Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(ColorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorTextMuted)
	dimStyle    = lipgloss.NewStyle().Foreground(ColorTextDim)
	incomeStyle = lipgloss.NewStyle().Foreground(ColorGreen)
	spendStyle  = lipgloss.NewStyle().Foreground(ColorRed)
	warnStyle   = lipgloss.NewStyle().Foreground(ColorOrange)
)

// SeparatorRow is a row value that RenderTable draws as a horizontal rule.
var SeparatorRow = []string{"---"}

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
	// LeftCols lists extra columns to left-align. Column 0 is always left.
	LeftCols []int
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderSection renders a muted section label.
func RenderSection(label string) string {
	return "  " + headerStyle.Render(label)
}

func (t Table) columns() int {
	if len(t.Headers) > 0 {
		return len(t.Headers)
	}
	if len(t.Rows) > 0 {
		return len(t.Rows[0])
	}
	return 0
}

func (t Table) widths(n int) []int {
	widths := make([]int, n)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}
	grow := func(i int, s string) {
		if w := lipgloss.Width(s); i < n && w > widths[i] {
			widths[i] = w
		}
	}
	for i, h := range t.Headers {
		grow(i, h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			grow(i, cell)
		}
	}
	return widths
}

func (t Table) leftAligned(col int) bool {
	if col == 0 {
		return true
	}
	for _, c := range t.LeftCols {
		if c == col {
			return true
		}
	}
	return false
}

func rule(b *strings.Builder, widths []int, left, mid, right string) {
	b.WriteString(dimStyle.Render(left))
	for i, w := range widths {
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
		if i < len(widths)-1 {
			b.WriteString(dimStyle.Render(mid))
		}
	}
	b.WriteString(dimStyle.Render(right))
	b.WriteString("\n")
}

func pad(cell string, width int, left bool) string {
	gap := width - lipgloss.Width(cell)
	if gap < 0 {
		gap = 0
	}
	if left {
		return " " + cell + strings.Repeat(" ", gap) + " "
	}
	return " " + strings.Repeat(" ", gap) + cell + " "
}

// RenderTable renders a bordered table with headers and rows. Amount
// columns are right-aligned.
func RenderTable(t Table) string {
	numCols := t.columns()
	if numCols == 0 {
		return ""
	}
	widths := t.widths(numCols)

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(RenderSection(t.Title))
		b.WriteString("\n")
	}

	rule(&b, widths, "╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(pad(h, widths[i], true)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		rule(&b, widths, "├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == SeparatorRow[0] {
			rule(&b, widths, "├", "┼", "┤")
			continue
		}
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(valueStyle.Render(pad(cell, widths[i], t.leftAligned(i))))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule(&b, widths, "╰", "┴", "╯")
	return b.String()
}

// UsageColor picks a color for a utilization percentage (0-100+).
func UsageColor(pct float64) lipgloss.Color {
	switch {
	case pct > 100:
		return ColorRed
	case pct > 80:
		return ColorOrange
	default:
		return ColorGreen
	}
}

// RenderUsageBar renders a budget or goal bar for a 0-100 percentage.
// Values over 100 fill the bar and turn red.
func RenderUsageBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	frac := pct / 100
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(width))

	style := lipgloss.NewStyle().Foreground(UsageColor(pct))
	return style.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
}

// RenderProgressBar renders a goal bar where higher is better.
func RenderProgressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	frac := pct / 100
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(width))
	return lipgloss.NewStyle().Foreground(ColorBlue).Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
}

// RenderPriority renders a recommendation priority badge.
func RenderPriority(p model.Priority) string {
	label := fmt.Sprintf("%-6s", p)
	switch p {
	case model.PriorityHigh:
		return spendStyle.Bold(true).Render(label)
	case model.PriorityMedium:
		return warnStyle.Render(label)
	default:
		return mutedStyle.Render(label)
	}
}

// RenderAmount colors an amount by transaction direction.
func RenderAmount(s string, typ model.TransactionType) string {
	if typ == model.Income {
		return incomeStyle.Render("+" + s)
	}
	return spendStyle.Render("-" + s)
}

// RenderMuted renders secondary text.
func RenderMuted(s string) string { return mutedStyle.Render(s) }

// RenderWarn renders a warning line.
func RenderWarn(s string) string { return warnStyle.Render(s) }
