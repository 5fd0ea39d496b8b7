package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvAMQPURL, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvCurrency, "")
	t.Setenv(EnvTheme, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.Currency != "$" || cfg.General.BillHorizonDays != 30 || cfg.General.RecentLimit != 5 {
		t.Fatalf("got %+v, want defaults", cfg.General)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestSaveLoadAndEnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvAMQPURL, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvTheme, "")

	cfg := DefaultConfig()
	cfg.General.Currency = "€"
	cfg.Daemon.IntervalSecs = 90
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("config should exist after Save")
	}

	t.Setenv(EnvCurrency, "£")
	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Daemon.IntervalSecs != 90 {
		t.Fatalf("interval = %d, want 90", got.Daemon.IntervalSecs)
	}
	if got.General.Currency != "£" {
		t.Fatalf("currency = %q, want env override £", got.General.Currency)
	}
}

func TestValidateCollectsProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.RecentLimit = 0
	cfg.Daemon.Addr = ""
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"recent_limit", "daemon.addr", "log.level"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err, want)
		}
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	if err := LoadEnvFile(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing file should be ignored: %v", err)
	}

	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("FINBURN_TEST_VALUE=hello\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FINBURN_TEST_VALUE", "")
	os.Unsetenv("FINBURN_TEST_VALUE")
	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile: %v", err)
	}
	if got := os.Getenv("FINBURN_TEST_VALUE"); got != "hello" {
		t.Fatalf("got %q, want hello", got)
	}
}

func TestDBPath(t *testing.T) {
	t.Setenv(EnvDB, "")
	cfg := DefaultConfig()
	cfg.General.DataDir = "/tmp/fb"
	if got := DBPath(cfg); got != filepath.Join("/tmp/fb", "finburn.db") {
		t.Fatalf("got %q", got)
	}
	t.Setenv(EnvDB, "/elsewhere.db")
	if got := DBPath(cfg); got != "/elsewhere.db" {
		t.Fatalf("got %q, want env override", got)
	}
}
