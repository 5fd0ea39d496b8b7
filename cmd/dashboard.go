package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/finburn/internal/cli"
	"github.com/theirongolddev/finburn/internal/model"
	"github.com/theirongolddev/finburn/internal/store"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"summary"},
	Short:   "Monthly overview: totals, budgets, bills, and advice",
	RunE:    runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	month, err := selectedMonth()
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		d, err := newLoader(st).Dashboard(ctx, month)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(d)
		}
		printDashboard(d)
		return nil
	})
}

func printDashboard(d model.Dashboard) {
	fmt.Println()
	fmt.Println(cli.RenderTitle("FINBURN  " + cli.FormatMonth(d.Month)))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Income", money(d.MonthlyIncome)},
			{"Expenses", money(d.MonthlyExpense)},
			cli.SeparatorRow,
			{"Balance", money(d.TotalBalance)},
			{"Savings rate", cli.FormatPercent(d.SavingsRate)},
		},
	}))

	if len(d.CategoryBreakdown) > 0 {
		rows := make([][]string, 0, len(d.CategoryBreakdown))
		for _, c := range d.CategoryBreakdown {
			rows = append(rows, []string{
				c.Category.DisplayName(),
				cli.FormatNumber(int64(c.Transactions)),
				money(c.Amount),
				cli.FormatPercent(c.SharePercent),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Spending by category",
			Headers: []string{"Category", "Txns", "Amount", "Share"},
			Rows:    rows,
		}))
	}

	if len(d.BudgetStatuses) > 0 {
		fmt.Println()
		fmt.Print(budgetTable(d.BudgetStatuses))
	}

	if len(d.UpcomingBills) > 0 {
		fmt.Println()
		fmt.Print(billTable("Upcoming bills", d.UpcomingBills))
	}

	if len(d.RecentTransactions) > 0 {
		fmt.Println()
		fmt.Print(transactionTable("Recent transactions", d.RecentTransactions))
	}

	if len(d.Recommendations) > 0 {
		fmt.Println()
		printRecommendations(d.Recommendations)
	}
	fmt.Println()
}

func budgetTable(statuses []model.BudgetStatus) string {
	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		rows = append(rows, []string{
			s.Budget.Category.DisplayName(),
			money(s.Budget.MonthlyLimit),
			money(s.SpentAmount),
			money(s.RemainingAmount),
			cli.RenderUsageBar(s.PercentageUsed, 12) + " " + cli.FormatPercent(s.PercentageUsed),
		})
	}
	return cli.RenderTable(cli.Table{
		Title:   "Budgets",
		Headers: []string{"Category", "Limit", "Spent", "Remaining", "Used"},
		Rows:    rows,
	})
}

func billTable(title string, bills []model.BillStatus) string {
	rows := make([][]string, 0, len(bills))
	for _, b := range bills {
		due := cli.FormatDue(b.DaysUntilDue)
		switch {
		case b.Bill.IsPaid:
			due = "paid"
		case b.IsOverdue:
			due = cli.RenderWarn(due)
		}
		rows = append(rows, []string{
			b.Bill.Title,
			cli.FormatDate(b.Bill.DueDate),
			money(b.Bill.Amount),
			due,
			shortID(b.Bill.ID),
		})
	}
	return cli.RenderTable(cli.Table{
		Title:    title,
		Headers:  []string{"Bill", "Due", "Amount", "Status", "ID"},
		Rows:     rows,
		LeftCols: []int{4},
	})
}

func transactionTable(title string, txs []model.Transaction) string {
	rows := make([][]string, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, []string{
			cli.FormatDate(t.Date),
			t.Category.DisplayName(),
			cli.Truncate(t.Description, 32),
			cli.RenderAmount(money(t.Amount), t.Type),
			shortID(t.ID),
		})
	}
	return cli.RenderTable(cli.Table{
		Title:    title,
		Headers:  []string{"Date", "Category", "Description", "Amount", "ID"},
		Rows:     rows,
		LeftCols: []int{1, 2, 4},
	})
}

func printRecommendations(recs []model.Recommendation) {
	fmt.Println(cli.RenderSection("Recommendations"))
	for _, r := range recs {
		fmt.Printf("  %s %s\n", cli.RenderPriority(r.Priority), r.Title)
		fmt.Printf("         %s\n", cli.RenderMuted(r.Description))
	}
}

// shortID trims a UUID for display; commands accept any unique prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
