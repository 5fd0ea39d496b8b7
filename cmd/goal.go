package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/finburn/internal/cli"
	"github.com/theirongolddev/finburn/internal/model"
	"github.com/theirongolddev/finburn/internal/store"

	"github.com/spf13/cobra"
)

var (
	goalTarget string
	goalSaved  string
	goalBy     string
	goalDesc   string
	goalUndo   bool
)

var goalCmd = &cobra.Command{
	Use:     "goal",
	Aliases: []string{"goals"},
	Short:   "Track savings goals",
}

var goalAddCmd = &cobra.Command{
	Use:     "add <name>",
	Short:   "Create a savings goal",
	Example: `  finburn goal add "Emergency fund" --target 5000 --by 2025-06-30`,
	Args:    cobra.ExactArgs(1),
	RunE:    runGoalAdd,
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show goal progress",
	RunE:  runGoalList,
}

var goalDepositCmd = &cobra.Command{
	Use:   "deposit <id> <amount>",
	Short: "Add money to a goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalDeposit,
}

var goalCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a goal completed (or --undo to reopen it)",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalComplete,
}

var goalDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalDelete,
}

func init() {
	goalAddCmd.Flags().StringVar(&goalTarget, "target", "", "Target amount (required)")
	goalAddCmd.Flags().StringVar(&goalSaved, "saved", "0", "Amount already saved")
	goalAddCmd.Flags().StringVar(&goalBy, "by", "", "Target date YYYY-MM-DD (required)")
	goalAddCmd.Flags().StringVar(&goalDesc, "desc", "", "Description")
	_ = goalAddCmd.MarkFlagRequired("target")
	_ = goalAddCmd.MarkFlagRequired("by")

	goalCompleteCmd.Flags().BoolVar(&goalUndo, "undo", false, "Reopen a completed goal")

	goalCmd.AddCommand(goalAddCmd, goalListCmd, goalDepositCmd, goalCompleteCmd, goalDeleteCmd)
	rootCmd.AddCommand(goalCmd)
}

func runGoalAdd(cmd *cobra.Command, args []string) error {
	target, err := parseAmount(goalTarget)
	if err != nil {
		return err
	}
	saved, err := parseAmount(goalSaved)
	if err != nil {
		return err
	}
	by, err := cli.ParseDate(goalBy)
	if err != nil {
		return err
	}

	g := model.SavingsGoal{
		Name:          args[0],
		TargetAmount:  target,
		CurrentAmount: saved,
		TargetDate:    by,
		Description:   goalDesc,
	}
	if err := g.Validate(); err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		g, err := st.InsertGoal(ctx, g)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(g)
		}
		fmt.Printf("  Created goal %q: %s by %s (%s)\n", g.Name, money(g.TargetAmount), cli.FormatDate(g.TargetDate), shortID(g.ID))
		return nil
	})
}

func runGoalList(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		ov, err := newLoader(st).Goals(ctx)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(ov)
		}

		fmt.Println()
		if len(ov.Active)+len(ov.Completed) == 0 {
			fmt.Println("  No savings goals yet. Try: finburn goal add \"Vacation\" --target 2000 --by 2025-08-01")
			fmt.Println()
			return nil
		}
		if len(ov.Active) > 0 {
			fmt.Print(goalTable("Active goals", ov.Active))
			fmt.Printf("\n  Saved %s of %s\n", money(ov.TotalSaved), money(ov.TotalTarget))
		}
		if len(ov.Completed) > 0 {
			fmt.Println()
			fmt.Print(goalTable("Completed", ov.Completed))
		}
		fmt.Println()
		return nil
	})
}

func goalTable(title string, goals []model.GoalProgress) string {
	rows := make([][]string, 0, len(goals))
	for _, p := range goals {
		pace := "on track"
		if !p.IsOnTrack {
			pace = cli.RenderWarn("behind")
		}
		if p.Goal.IsCompleted {
			pace = "done"
		}
		rows = append(rows, []string{
			p.Goal.Name,
			money(p.Goal.CurrentAmount) + " / " + money(p.Goal.TargetAmount),
			cli.RenderProgressBar(p.ProgressPercentage, 12) + " " + cli.FormatPercent(p.ProgressPercentage),
			cli.FormatDue(p.DaysRemaining),
			pace,
			shortID(p.Goal.ID),
		})
	}
	return cli.RenderTable(cli.Table{
		Title:    title,
		Headers:  []string{"Goal", "Saved", "Progress", "Target", "Pace", "ID"},
		Rows:     rows,
		LeftCols: []int{4, 5},
	})
}

func findGoal(ctx context.Context, st *store.Store, prefix string) (model.SavingsGoal, error) {
	all, err := st.AllGoals(ctx)
	if err != nil {
		return model.SavingsGoal{}, err
	}
	id, err := resolveID("goal", prefix, idsOf(all, func(g model.SavingsGoal) string { return g.ID }))
	if err != nil {
		return model.SavingsGoal{}, err
	}
	for _, g := range all {
		if g.ID == id {
			return g, nil
		}
	}
	return model.SavingsGoal{}, fmt.Errorf("%w: goal %q", model.ErrNotFound, prefix)
}

func runGoalDeposit(cmd *cobra.Command, args []string) error {
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: deposit must be positive, got %s", model.ErrInvalidInput, amount)
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		g, err := findGoal(ctx, st, args[0])
		if err != nil {
			return err
		}
		total := g.CurrentAmount.Add(amount)
		if err := st.UpdateGoalAmount(ctx, g.ID, total); err != nil {
			return err
		}
		fmt.Printf("  %s: %s of %s saved\n", g.Name, money(total), money(g.TargetAmount))
		if total.GreaterThanOrEqual(g.TargetAmount) && !g.IsCompleted {
			fmt.Printf("  Target reached. Mark it done with: finburn goal complete %s\n", shortID(g.ID))
		}
		return nil
	})
}

func runGoalComplete(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		g, err := findGoal(ctx, st, args[0])
		if err != nil {
			return err
		}
		if err := st.SetGoalCompleted(ctx, g.ID, !goalUndo); err != nil {
			return err
		}
		if goalUndo {
			fmt.Printf("  Reopened %s\n", g.Name)
		} else {
			fmt.Printf("  Completed %s\n", g.Name)
		}
		return nil
	})
}

func runGoalDelete(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		g, err := findGoal(ctx, st, args[0])
		if err != nil {
			return err
		}
		if err := st.DeleteGoal(ctx, g.ID); err != nil {
			return err
		}
		fmt.Printf("  Deleted goal %s\n", g.Name)
		return nil
	})
}
