// Package cmd implements the finburn CLI commands.
package cmd

import (
	"fmt"
	"net/url"

	"github.com/theirongolddev/finburn/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg
	if flagJSON {
		cfg.AMQP.URL = redactURL(cfg.AMQP.URL)
		return printJSON(cfg)
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency:          %s\n", cfg.General.Currency)
	fmt.Printf("    Database:          %s\n", dbPath())
	fmt.Printf("    Bill horizon:      %d days\n", cfg.General.BillHorizonDays)
	fmt.Printf("    Recent limit:      %d\n", cfg.General.RecentLimit)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:       %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Interval:      %ds\n", cfg.Daemon.IntervalSecs)
	fmt.Printf("    Events buffer: %d\n", cfg.Daemon.EventsBuffer)
	fmt.Println()

	fmt.Println("  [AMQP]")
	if cfg.AMQP.URL != "" {
		fmt.Printf("    URL:         %s\n", redactURL(cfg.AMQP.URL))
	} else {
		fmt.Println("    URL:         not configured (publishing off)")
	}
	fmt.Printf("    Exchange:    %s\n", cfg.AMQP.Exchange)
	fmt.Printf("    Routing key: %s\n", cfg.AMQP.RoutingKey)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Printf("    JSON:  %v\n", cfg.Log.JSON)
	fmt.Println()

	fmt.Println("  Run `finburn setup` to reconfigure.")
	return nil
}

// redactURL hides the password in a broker URL.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "****"
	}
	return u.Redacted()
}
