package export

import (
	"errors"
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"
)

// ErrNoChartData is returned when there is nothing to plot.
var ErrNoChartData = errors.New("no expense data to chart")

// writePNG renders the month's expense breakdown as a pie chart.
func writePNG(path string, r Report) error {
	values := make([]chart.Value, 0, len(r.Dashboard.CategoryBreakdown))
	for _, c := range r.Dashboard.CategoryBreakdown {
		v := c.Amount.InexactFloat64()
		if v <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %s%s (%.1f%%)", c.Category.DisplayName(), r.Currency, c.Amount.StringFixed(2), c.SharePercent),
			Value: v,
		})
	}
	if len(values) == 0 {
		return ErrNoChartData
	}

	pie := chart.PieChart{
		Title:  "Expenses " + r.Month.Format("January 2006"),
		Width:  800,
		Height: 800,
		Values: values,
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating PNG file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := pie.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("rendering expense chart: %w", err)
	}
	return f.Close()
}
