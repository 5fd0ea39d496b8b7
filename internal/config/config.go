// Package config loads finburn settings from a TOML file with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all finburn configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Daemon     DaemonConfig     `toml:"daemon"`
	AMQP       AMQPConfig       `toml:"amqp"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds data location and display preferences.
type GeneralConfig struct {
	Currency        string `toml:"currency"`
	DataDir         string `toml:"data_dir,omitempty"`
	BillHorizonDays int    `toml:"bill_horizon_days"`
	RecentLimit     int    `toml:"recent_limit"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DaemonConfig holds background service settings.
type DaemonConfig struct {
	Addr         string `toml:"addr"`
	IntervalSecs int    `toml:"interval_secs"`
	EventsBuffer int    `toml:"events_buffer"`
}

// AMQPConfig holds broker settings for publishing snapshot events. An empty
// URL disables publishing.
type AMQPConfig struct {
	URL        string `toml:"url,omitempty"`
	Exchange   string `toml:"exchange"`
	RoutingKey string `toml:"routing_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency:        "$",
			BillHorizonDays: 30,
			RecentLimit:     5,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Daemon: DaemonConfig{
			Addr:         "127.0.0.1:8791",
			IntervalSecs: 30,
			EventsBuffer: 200,
		},
		AMQP: AMQPConfig{
			Exchange:   "finburn",
			RoutingKey: "finburn.snapshot",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "finburn")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "finburn")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the directory holding the database. The config value
// wins, then XDG_DATA_HOME, then ~/.local/share.
func DataDir(cfg Config) string {
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "finburn")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "finburn")
}

// DBPath returns the SQLite database path. FINBURN_DB overrides it.
func DBPath(cfg Config) string {
	if p := os.Getenv(EnvDB); p != "" {
		return p
	}
	return filepath.Join(DataDir(cfg), "finburn.db")
}

// Load reads the config file, returning defaults if it doesn't exist, and
// applies environment overrides.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
