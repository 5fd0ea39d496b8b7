package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/finburn/internal/cli"
	"github.com/theirongolddev/finburn/internal/config"
	"github.com/theirongolddev/finburn/internal/log"
	"github.com/theirongolddev/finburn/internal/pipeline"
	"github.com/theirongolddev/finburn/internal/store"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagMonth   string
	flagDB      string
	flagEnvFile string
	flagVerbose bool
	flagJSON    bool
)

// Populated by PersistentPreRunE.
var (
	appCfg config.Config
	appLog *log.Logger
)

var rootCmd = &cobra.Command{
	Use:               "finburn",
	Short:             "Personal finance tracker",
	Long:              "Track income and expenses, budgets, savings goals, and bills from the terminal.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runDashboard,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagMonth, "month", "m", "", "Month to report on (YYYY-MM, default current)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (overrides config and "+config.EnvDB+")")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Load environment overrides from this file if present")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Print machine-readable JSON instead of tables")
}

func setup(_ *cobra.Command, _ []string) error {
	if err := config.LoadEnvFile(flagEnvFile); err != nil {
		return err
	}
	if err := config.LoadEnvFile(filepath.Join(config.ConfigDir(), ".env")); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	appCfg = cfg

	logCfg := log.DefaultConfig()
	logCfg.JSON = cfg.Log.JSON
	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logCfg.Level = lvl
	}
	if flagVerbose {
		logCfg.Level = slog.LevelDebug
	}
	appLog = log.New(logCfg)
	log.SetDefault(appLog)
	return nil
}

func dbPath() string {
	if flagDB != "" {
		return flagDB
	}
	return config.DBPath(appCfg)
}

// openStore opens the database. Callers must Close it.
func openStore() (*store.Store, error) {
	return store.Open(dbPath(), appLog)
}

func newLoader(st *store.Store) *pipeline.Loader {
	l := pipeline.NewLoader(st)
	if appCfg.General.RecentLimit > 0 {
		l.RecentLimit = appCfg.General.RecentLimit
	}
	if appCfg.General.BillHorizonDays > 0 {
		l.BillHorizonDays = appCfg.General.BillHorizonDays
	}
	return l
}

func selectedMonth() (time.Time, error) {
	return cli.ParseMonth(flagMonth, time.Now())
}

func money(d decimal.Decimal) string {
	return cli.FormatMoney(d, appCfg.General.Currency)
}

// withStore opens the store, runs fn, and closes it.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, st *store.Store) error) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	return fn(cmd.Context(), st)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
