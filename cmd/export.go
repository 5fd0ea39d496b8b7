package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/finburn/internal/export"
	"github.com/theirongolddev/finburn/internal/pipeline"
	"github.com/theirongolddev/finburn/internal/store"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	exportFormats []string
	exportDir     string
	exportName    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a monthly report as CSV, JSON, YAML, PDF, or a PNG chart",
	Example: `  finburn export --format pdf
  finburn export --format csv,png --out ./reports --month 2024-02`,
	RunE: runExport,
}

func init() {
	names := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		names[i] = string(f)
	}
	exportCmd.Flags().StringSliceVarP(&exportFormats, "format", "f", []string{"csv"}, "Output formats: "+strings.Join(names, ", "))
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", ".", "Output directory")
	exportCmd.Flags().StringVar(&exportName, "name", "", "Base file name (default finburn-YYYY-MM)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	month, err := selectedMonth()
	if err != nil {
		return err
	}
	formats := make([]export.Format, 0, len(exportFormats))
	for _, s := range exportFormats {
		f, err := export.ParseFormat(s)
		if err != nil {
			return err
		}
		formats = append(formats, f)
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		r, err := buildReport(ctx, st, newLoader(st), month)
		if err != nil {
			return err
		}

		ex := export.New(exportDir, appLog)
		for _, f := range formats {
			path, err := ex.Write(r, f, exportName)
			if err != nil {
				return fmt.Errorf("export %s: %w", f, err)
			}
			fmt.Printf("  Wrote %s\n", path)
		}
		return nil
	})
}

// buildReport gathers every screen for the selected month concurrently.
func buildReport(ctx context.Context, st *store.Store, l *pipeline.Loader, month time.Time) (export.Report, error) {
	r := export.Report{Month: month, Currency: appCfg.General.Currency}
	w := pipeline.MonthWindow(month)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		r.Dashboard, err = l.Dashboard(ctx, month)
		return err
	})
	g.Go(func() error {
		var err error
		r.Budgets, err = l.Budgets(ctx, month)
		return err
	})
	g.Go(func() error {
		var err error
		r.Goals, err = l.Goals(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		r.Bills, err = l.Bills(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		r.Transactions, err = st.TransactionsByDateRange(ctx, w.Start, w.End)
		return err
	})
	if err := g.Wait(); err != nil {
		return export.Report{}, err
	}
	return r, nil
}
