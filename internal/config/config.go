package config

import "github.com/spf13/viper"

// HistoryConfig holds configuration for the run history store.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Config holds all runtime configuration for a conflux invocation.
// Values are populated from .conflux.yaml, CONFLUX_* env vars, and CLI flags.
type Config struct {
	Delimiter     string        `mapstructure:"delimiter"`
	TelemetryPath string        `mapstructure:"telemetry_path"`
	Verbose       bool          `mapstructure:"verbose"`
	History       HistoryConfig `mapstructure:"history"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("delimiter", ",")
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("history.enabled", false)
	viper.SetDefault("history.path", ".conflux/history.db")

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
