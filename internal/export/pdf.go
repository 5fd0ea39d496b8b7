package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

var (
	pdfHeaderFill = [3]int{40, 40, 40}
	pdfBodyText   = [3]int{50, 50, 50}
	pdfRule       = [3]int{200, 200, 200}
)

func money(currency string, s string) string { return currency + s }

func writePDF(path string, r Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFillColor(pdfHeaderFill[0], pdfHeaderFill[1], pdfHeaderFill[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  finburn report "+r.Month.Format("January 2006")), "", 1, "L", true, 0, "")
	pdf.Ln(6)

	section := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)
		pdf.SetDrawColor(pdfRule[0], pdfRule[1], pdfRule[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(3)
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(pdfBodyText[0], pdfBodyText[1], pdfBodyText[2])
	}
	row := func(cells []string, widths []float64, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		for i, c := range cells {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, tr(c), "", 0, align, false, 0, "")
		}
		pdf.Ln(6)
	}

	d := r.Dashboard
	section("Summary")
	sw := []float64{60, 50}
	row([]string{"Income", money(r.Currency, d.MonthlyIncome.StringFixed(2))}, sw, false)
	row([]string{"Expense", money(r.Currency, d.MonthlyExpense.StringFixed(2))}, sw, false)
	row([]string{"Balance", money(r.Currency, d.TotalBalance.StringFixed(2))}, sw, true)
	row([]string{"Savings rate", pct(d.SavingsRate)}, sw, false)
	pdf.Ln(4)

	if len(r.Budgets.Statuses) > 0 {
		section("Budgets")
		bw := []float64{60, 40, 40, 40}
		row([]string{"Category", "Limit", "Spent", "Used"}, bw, true)
		for _, b := range r.Budgets.Statuses {
			row([]string{
				b.Budget.Category.DisplayName(),
				money(r.Currency, b.Budget.MonthlyLimit.StringFixed(2)),
				money(r.Currency, b.SpentAmount.StringFixed(2)),
				pct(b.PercentageUsed),
			}, bw, false)
		}
		pdf.Ln(4)
	}

	if len(r.Goals.Active) > 0 {
		section("Savings goals")
		gw := []float64{60, 40, 40, 40}
		row([]string{"Goal", "Saved", "Target", "Status"}, gw, true)
		for _, g := range r.Goals.Active {
			status := "on track"
			if !g.IsOnTrack {
				status = "behind"
			}
			row([]string{
				g.Goal.Name,
				money(r.Currency, g.Goal.CurrentAmount.StringFixed(2)),
				money(r.Currency, g.Goal.TargetAmount.StringFixed(2)),
				status,
			}, gw, false)
		}
		pdf.Ln(4)
	}

	if len(d.Recommendations) > 0 {
		section("Recommendations")
		var b strings.Builder
		for _, rec := range d.Recommendations {
			fmt.Fprintf(&b, "[%s] %s\n%s\n\n", rec.Priority, rec.Title, rec.Description)
		}
		pdf.MultiCell(190, 5, tr(strings.TrimSpace(b.String())), "", "L", false)
	}

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 10, tr("Generated by finburn | "+time.Now().Format(dateLayout)), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing PDF file: %w", err)
	}
	return nil
}
