package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/finburn/internal/cli"
	"github.com/theirongolddev/finburn/internal/model"
	"github.com/theirongolddev/finburn/internal/store"

	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:     "budget",
	Aliases: []string{"budgets"},
	Short:   "Set and review monthly category budgets",
}

var budgetSetCmd = &cobra.Command{
	Use:     "set <category> <limit>",
	Short:   "Create or replace the budget for a category in the selected month",
	Example: "  finburn budget set food 400\n  finburn budget set rent 1500 --month 2024-04",
	Args:    cobra.ExactArgs(2),
	RunE:    runBudgetSet,
}

var budgetListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show budget usage for the selected month",
	RunE:  runBudgetList,
}

var budgetDeleteCmd = &cobra.Command{
	Use:   "delete <category>",
	Short: "Remove the budget for a category in the selected month",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetDelete,
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd, budgetListCmd, budgetDeleteCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetSet(cmd *cobra.Command, args []string) error {
	month, err := selectedMonth()
	if err != nil {
		return err
	}
	cat, err := model.ParseCategory(args[0])
	if err != nil {
		return err
	}
	limit, err := parseAmount(args[1])
	if err != nil {
		return err
	}

	b := model.Budget{
		Category:     cat,
		MonthlyLimit: limit,
		Month:        int(month.Month()),
		Year:         month.Year(),
	}
	if err := b.Validate(); err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		existing, ok, err := st.BudgetByCategory(ctx, cat, b.Month, b.Year)
		if err != nil {
			return err
		}
		verb := "Set"
		if ok {
			b.ID = existing.ID
			err = st.UpdateBudget(ctx, b)
			verb = "Updated"
		} else {
			b, err = st.InsertBudget(ctx, b)
		}
		if err != nil {
			return err
		}
		fmt.Printf("  %s %s budget for %s to %s\n", verb, cat.DisplayName(), cli.FormatMonth(month), money(limit))
		return nil
	})
}

func runBudgetList(cmd *cobra.Command, _ []string) error {
	month, err := selectedMonth()
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		ov, err := newLoader(st).Budgets(ctx, month)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(ov)
		}

		fmt.Println()
		if len(ov.Statuses) == 0 {
			fmt.Printf("  No budgets set for %s. Try: finburn budget set food 400\n\n", cli.FormatMonth(month))
			return nil
		}
		fmt.Print(budgetTable(ov.Statuses))
		fmt.Printf("\n  Total %s  spent %s  remaining %s\n\n",
			money(ov.TotalBudget), money(ov.TotalSpent), money(ov.TotalRemaining))
		return nil
	})
}

func runBudgetDelete(cmd *cobra.Command, args []string) error {
	month, err := selectedMonth()
	if err != nil {
		return err
	}
	cat, err := model.ParseCategory(args[0])
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		b, ok, err := st.BudgetByCategory(ctx, cat, int(month.Month()), month.Year())
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: no %s budget for %s", model.ErrNotFound, cat.DisplayName(), cli.FormatMonth(month))
		}
		if err := st.DeleteBudget(ctx, b.ID); err != nil {
			return err
		}
		fmt.Printf("  Removed %s budget for %s\n", cat.DisplayName(), cli.FormatMonth(month))
		return nil
	})
}
