// Package config is responsible for initializing the application's
// configuration. It uses the Viper library to read settings from a
// config file, environment variables, and command-line flags,
// providing a unified configuration system.
package config

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/unifiwatch/stockwatch/internal/logging"
)

// InitConfig initializes the application's configuration using Viper.
// It sets up default values, defines configuration search paths, and
// enables reading from environment variables. Designed to be called
// once at startup. When cfgFile is non-empty it takes precedence over
// the search paths.
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(".")                 // Current working directory
		viper.AddConfigPath("/etc/stockwatch/")  // System-wide configuration
		viper.AddConfigPath("$HOME/.stockwatch") // User-specific configuration
	}

	// Checker pipeline defaults. checker.url and checker.product_name
	// are required and deliberately have no default; the pipeline
	// never partially falls back for required fields.
	viper.SetDefault("checker.sold_out_marker", "Sold Out")
	viper.SetDefault("checker.sold_out_selectors", []string{})
	viper.SetDefault("checker.fetch_mode", "headless")
	viper.SetDefault("checker.user_agent",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	viper.SetDefault("checker.page_load_timeout", "20s")
	viper.SetDefault("checker.settle_delay", "5s")
	viper.SetDefault("checker.jitter_min", "1s")
	viper.SetDefault("checker.jitter_max", "30s")
	viper.SetDefault("checker.status_path", "data/status")

	// Providers.
	viper.SetDefault("storage.provider", "local")
	viper.SetDefault("storage.local.screenshot_dir", "data/screenshots")
	viper.SetDefault("history.provider", "noop")
	viper.SetDefault("history.postgres.table", "checks")
	viper.SetDefault("events.provider", "noop")

	// Observability.
	viper.SetDefault("logging.development", false)
	viper.SetDefault("logging.file", "stock_check.log")
	viper.SetDefault("metrics.listen_addr", "")

	// Enable Viper to read environment variables,
	// e.g. STOCKWATCH_NOTIFY_PUSHOVER_TOKEN.
	viper.SetEnvPrefix("STOCKWATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Not fatal; defaults and environment variables may be enough.
			logging.L.Warn("Config file not found; using defaults and environment variables.")
		} else {
			logging.L.Error("Error reading config file", zap.Error(err))
		}
	} else {
		logging.L.Info("Using config file", zap.String("path", viper.ConfigFileUsed()))
	}
}
