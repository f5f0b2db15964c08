package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config represents the pgscout configuration, read once at startup and
// immutable for the rest of the run.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Report   ReportConfig   `mapstructure:"report"`
}

// DatabaseConfig represents target database configuration
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// ReportConfig represents report generation configuration
type ReportConfig struct {
	OutputDir      string `mapstructure:"output_dir"`
	SafeMode       bool   `mapstructure:"safe_mode"`
	ExportSchema   bool   `mapstructure:"export_schema"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Load loads the configuration from pgscout.yml or pgscout.yaml
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("report.output_dir", "reports")
	v.SetDefault("report.safe_mode", true)
	v.SetDefault("report.export_schema", true)
	v.SetDefault("report.timeout_seconds", 30)

	// Set config name and paths
	v.SetConfigName("pgscout")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// GetDatabaseURL returns the target database URL from config or environment
func GetDatabaseURL() string {
	// First check environment variable
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	// Then check config file
	cfg, err := Load()
	if err != nil {
		return ""
	}

	return cfg.Database.URL
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Report.TimeoutSeconds < 0 {
		return fmt.Errorf("report.timeout_seconds must not be negative, got: %d", cfg.Report.TimeoutSeconds)
	}
	return nil
}
