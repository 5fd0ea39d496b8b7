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
	billAmount    string
	billDue       string
	billCategory  string
	billDesc      string
	billRecurring string
	billRemind    int
	billUnpaid    bool
)

var billCmd = &cobra.Command{
	Use:     "bill",
	Aliases: []string{"bills"},
	Short:   "Track bills and due-date reminders",
}

var billAddCmd = &cobra.Command{
	Use:     "add <title>",
	Short:   "Add a bill",
	Example: `  finburn bill add "Electricity" --amount 85 --due 2024-03-20 --category utilities --recurring monthly`,
	Args:    cobra.ExactArgs(1),
	RunE:    runBillAdd,
}

var billListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show upcoming, overdue, and reminder-window bills",
	RunE:  runBillList,
}

var billPayCmd = &cobra.Command{
	Use:   "pay <id>",
	Short: "Mark a bill paid (or --unpaid to revert)",
	Args:  cobra.ExactArgs(1),
	RunE:  runBillPay,
}

var billDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a bill",
	Args:  cobra.ExactArgs(1),
	RunE:  runBillDelete,
}

func init() {
	billAddCmd.Flags().StringVar(&billAmount, "amount", "", "Amount (required)")
	billAddCmd.Flags().StringVar(&billDue, "due", "", "Due date YYYY-MM-DD (required)")
	billAddCmd.Flags().StringVarP(&billCategory, "category", "c", string(model.CategoryUtilities), "Category")
	billAddCmd.Flags().StringVar(&billDesc, "desc", "", "Description")
	billAddCmd.Flags().StringVar(&billRecurring, "recurring", "", "Repeat interval: weekly, monthly, quarterly, yearly")
	billAddCmd.Flags().IntVar(&billRemind, "remind", model.DefaultReminderDaysBefore, "Days before the due date to start reminding")
	_ = billAddCmd.MarkFlagRequired("amount")
	_ = billAddCmd.MarkFlagRequired("due")

	billPayCmd.Flags().BoolVar(&billUnpaid, "unpaid", false, "Mark the bill unpaid instead")

	billCmd.AddCommand(billAddCmd, billListCmd, billPayCmd, billDeleteCmd)
	rootCmd.AddCommand(billCmd)
}

func runBillAdd(cmd *cobra.Command, args []string) error {
	amount, err := parseAmount(billAmount)
	if err != nil {
		return err
	}
	due, err := cli.ParseDate(billDue)
	if err != nil {
		return err
	}
	cat, err := model.ParseCategory(billCategory)
	if err != nil {
		return err
	}
	interval, err := model.ParseRecurringInterval(billRecurring)
	if err != nil {
		return err
	}

	b := model.BillReminder{
		Title:              args[0],
		Amount:             amount,
		DueDate:            due,
		Category:           cat,
		Description:        billDesc,
		IsRecurring:        interval != "",
		RecurringInterval:  interval,
		ReminderDaysBefore: billRemind,
	}
	if err := b.Validate(); err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		b, err := st.InsertBill(ctx, b)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(b)
		}
		fmt.Printf("  Added %s: %s due %s (%s)\n", b.Title, money(b.Amount), cli.FormatDate(b.DueDate), shortID(b.ID))
		return nil
	})
}

func runBillList(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		ov, err := newLoader(st).Bills(ctx)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(ov)
		}

		fmt.Println()
		if len(ov.Upcoming)+len(ov.Overdue) == 0 {
			fmt.Println("  Nothing due. Add one with: finburn bill add \"Rent\" --amount 1500 --due 2024-04-01 --category rent")
			fmt.Println()
			return nil
		}
		if len(ov.Overdue) > 0 {
			fmt.Print(billTable("Overdue", ov.Overdue))
			fmt.Println()
		}
		if len(ov.Upcoming) > 0 {
			fmt.Print(billTable("Upcoming", ov.Upcoming))
			fmt.Println()
		}
		if len(ov.Reminders) > 0 {
			fmt.Println(cli.RenderSection("Reminders"))
			for _, r := range ov.Reminders {
				fmt.Printf("  %s %s %s\n", r.Bill.Title, money(r.Bill.Amount), cli.FormatDue(r.DaysUntilDue))
			}
			fmt.Println()
		}
		return nil
	})
}

func findBill(ctx context.Context, st *store.Store, prefix string) (model.BillReminder, error) {
	all, err := st.AllBills(ctx)
	if err != nil {
		return model.BillReminder{}, err
	}
	id, err := resolveID("bill", prefix, idsOf(all, func(b model.BillReminder) string { return b.ID }))
	if err != nil {
		return model.BillReminder{}, err
	}
	for _, b := range all {
		if b.ID == id {
			return b, nil
		}
	}
	return model.BillReminder{}, fmt.Errorf("%w: bill %q", model.ErrNotFound, prefix)
}

func runBillPay(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		b, err := findBill(ctx, st, args[0])
		if err != nil {
			return err
		}
		if err := st.UpdateBillPaymentStatus(ctx, b.ID, !billUnpaid); err != nil {
			return err
		}
		if billUnpaid {
			fmt.Printf("  Marked %s unpaid\n", b.Title)
		} else {
			fmt.Printf("  Paid %s (%s)\n", b.Title, money(b.Amount))
		}
		return nil
	})
}

func runBillDelete(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		b, err := findBill(ctx, st, args[0])
		if err != nil {
			return err
		}
		if err := st.DeleteBill(ctx, b.ID); err != nil {
			return err
		}
		fmt.Printf("  Deleted bill %s\n", b.Title)
		return nil
	})
}
