package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/finburn/internal/cli"
	"github.com/theirongolddev/finburn/internal/export"
	"github.com/theirongolddev/finburn/internal/log"
	"github.com/theirongolddev/finburn/internal/model"
	"github.com/theirongolddev/finburn/internal/pipeline"
	"github.com/theirongolddev/finburn/internal/store"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	txAmount   string
	txType     string
	txCategory string
	txDate     string
	txDesc     string

	txListCategory string
	txListType     string
	txListLimit    int
)

var txCmd = &cobra.Command{
	Use:     "tx",
	Aliases: []string{"transaction", "transactions"},
	Short:   "Record and list income and expenses",
}

var txAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction",
	Example: `  finburn tx add --amount 42.50 --category food --desc "groceries"
  finburn tx add --amount 3200 --type income --category salary --date 2024-03-01`,
	RunE: runTxAdd,
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions for a month",
	RunE:  runTxList,
}

var txDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a transaction by ID or ID prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxDelete,
}

var txImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Import transactions from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxImport,
}

func init() {
	txAddCmd.Flags().StringVar(&txAmount, "amount", "", "Amount, positive (required)")
	txAddCmd.Flags().StringVarP(&txType, "type", "t", "expense", "income or expense")
	txAddCmd.Flags().StringVarP(&txCategory, "category", "c", "", "Category (required)")
	txAddCmd.Flags().StringVarP(&txDate, "date", "d", "", "Date YYYY-MM-DD (default today)")
	txAddCmd.Flags().StringVar(&txDesc, "desc", "", "Description")
	_ = txAddCmd.MarkFlagRequired("amount")
	_ = txAddCmd.MarkFlagRequired("category")

	txListCmd.Flags().StringVarP(&txListCategory, "category", "c", "", "Only this category")
	txListCmd.Flags().StringVarP(&txListType, "type", "t", "", "Only income or expense")
	txListCmd.Flags().IntVarP(&txListLimit, "limit", "n", 0, "Show at most n transactions (0 = all)")

	txCmd.AddCommand(txAddCmd, txListCmd, txDeleteCmd, txImportCmd)
	rootCmd.AddCommand(txCmd)
}

func runTxAdd(cmd *cobra.Command, _ []string) error {
	tx, err := transactionFromFlags(time.Now())
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		saved, err := st.InsertTransaction(ctx, tx)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(saved)
		}
		fmt.Printf("  Recorded %s %s on %s (%s)\n",
			saved.Category.DisplayName(), cli.RenderAmount(money(saved.Amount), saved.Type),
			cli.FormatDate(saved.Date), shortID(saved.ID))
		return nil
	})
}

func transactionFromFlags(now time.Time) (model.Transaction, error) {
	amount, err := parseAmount(txAmount)
	if err != nil {
		return model.Transaction{}, err
	}
	typ, err := model.ParseTransactionType(txType)
	if err != nil {
		return model.Transaction{}, err
	}
	cat, err := model.ParseCategory(txCategory)
	if err != nil {
		return model.Transaction{}, err
	}
	date := now
	if txDate != "" {
		if date, err = cli.ParseDate(txDate); err != nil {
			return model.Transaction{}, err
		}
	}

	tx := model.Transaction{
		Amount:      amount,
		Type:        typ,
		Category:    cat,
		Description: txDesc,
		Date:        date,
	}
	return tx, tx.Validate()
}

func runTxList(cmd *cobra.Command, _ []string) error {
	month, err := selectedMonth()
	if err != nil {
		return err
	}

	var keep []pipeline.Predicate
	if txListCategory != "" {
		cat, err := model.ParseCategory(txListCategory)
		if err != nil {
			return err
		}
		keep = append(keep, pipeline.InCategory(cat))
	}
	if txListType != "" {
		typ, err := model.ParseTransactionType(txListType)
		if err != nil {
			return err
		}
		keep = append(keep, pipeline.OfType(typ))
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		w := pipeline.MonthWindow(month)
		txns, err := st.TransactionsByDateRange(ctx, w.Start, w.End)
		if err != nil {
			return err
		}

		shown := make([]model.Transaction, 0, len(txns))
	next:
		for _, t := range txns {
			for _, p := range keep {
				if !p(t) {
					continue next
				}
			}
			shown = append(shown, t)
		}
		if txListLimit > 0 && len(shown) > txListLimit {
			shown = shown[:txListLimit]
		}

		if flagJSON {
			return printJSON(shown)
		}
		fmt.Println()
		if len(shown) == 0 {
			fmt.Printf("  No transactions in %s.\n\n", cli.FormatMonth(month))
			return nil
		}
		fmt.Print(transactionTable(cli.FormatMonth(month), shown))
		totals := pipeline.Totals(shown, w)
		fmt.Printf("\n  %d transactions  income %s  expenses %s\n\n",
			len(shown), money(totals.Income), money(totals.Expense))
		return nil
	})
}

func runTxDelete(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		all, err := st.AllTransactions(ctx)
		if err != nil {
			return err
		}
		id, err := resolveID("transaction", args[0], idsOf(all, func(t model.Transaction) string { return t.ID }))
		if err != nil {
			return err
		}
		if err := st.DeleteTransaction(ctx, id); err != nil {
			return err
		}
		fmt.Printf("  Deleted transaction %s\n", shortID(id))
		return nil
	})
}

func runTxImport(cmd *cobra.Command, args []string) error {
	txns, err := export.ReadTransactionsFile(args[0])
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		saved, err := st.InsertTransactions(ctx, txns)
		if err != nil {
			return fmt.Errorf("importing %s: %w", args[0], err)
		}
		appLog.Info("transactions imported", log.FieldCount, len(saved), log.FieldPath, args[0])
		fmt.Printf("  Imported %d transactions from %s\n", len(saved), args[0])
		return nil
	})
}

// parseAmount reads a decimal amount from a flag.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: amount %q is not a number", model.ErrInvalidInput, s)
	}
	return d, nil
}
