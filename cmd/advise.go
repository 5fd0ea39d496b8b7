package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/finburn/internal/cli"
	"github.com/theirongolddev/finburn/internal/store"

	"github.com/spf13/cobra"
)

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Show spending, savings, budget, and goal recommendations",
	RunE:  runAdvise,
}

func init() {
	rootCmd.AddCommand(adviseCmd)
}

func runAdvise(cmd *cobra.Command, _ []string) error {
	month, err := selectedMonth()
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		recs, err := newLoader(st).Recommendations(ctx, month)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(recs)
		}

		fmt.Println()
		if len(recs) == 0 {
			fmt.Printf("  Nothing to flag for %s.\n\n", cli.FormatMonth(month))
			return nil
		}
		printRecommendations(recs)
		fmt.Println()
		return nil
	})
}
