package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override file settings.
const (
	EnvDB       = "FINBURN_DB"
	EnvAMQPURL  = "FINBURN_AMQP_URL"
	EnvLogLevel = "FINBURN_LOG_LEVEL"
	EnvCurrency = "FINBURN_CURRENCY"
	EnvTheme    = "FINBURN_THEME"
)

// LoadEnvFile loads KEY=VALUE pairs from path into the process
// environment without overriding variables that are already set. A
// missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAMQPURL); v != "" {
		cfg.AMQP.URL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		cfg.General.Currency = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Appearance.Theme = v
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	if c.General.BillHorizonDays <= 0 {
		problems = append(problems, "general.bill_horizon_days must be positive")
	}
	if c.General.RecentLimit <= 0 {
		problems = append(problems, "general.recent_limit must be positive")
	}
	if strings.TrimSpace(c.Daemon.Addr) == "" {
		problems = append(problems, "daemon.addr is required")
	}
	if c.Daemon.IntervalSecs < 1 {
		problems = append(problems, "daemon.interval_secs must be at least 1")
	}
	if c.Daemon.EventsBuffer < 1 {
		problems = append(problems, "daemon.events_buffer must be at least 1")
	}
	if c.AMQP.URL != "" && c.AMQP.Exchange == "" {
		problems = append(problems, "amqp.exchange is required when amqp.url is set")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
