// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment override, e.g.
// FINHEALTH_LOG_LEVEL for log.level.
const EnvPrefix = "FINHEALTH"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Output struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"output" yaml:"output"`

	Keywords struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"keywords" yaml:"keywords"`

	Analytics struct {
		Months                  int     `mapstructure:"months" yaml:"months"`
		TopCategories           int     `mapstructure:"top_categories" yaml:"top_categories"`
		OutlierThreshold        float64 `mapstructure:"outlier_threshold" yaml:"outlier_threshold"`
		RecurringMinOccurrences int     `mapstructure:"recurring_min_occurrences" yaml:"recurring_min_occurrences"`
		RecurringToleranceDays  int     `mapstructure:"recurring_tolerance_days" yaml:"recurring_tolerance_days"`
	} `mapstructure:"analytics" yaml:"analytics"`

	Batch struct {
		Workers int `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"batch" yaml:"batch"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then the config file, then FINHEALTH_* environment variables.
// A non-empty configFile replaces the search of the standard locations.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.finhealth")
		v.AddConfigPath(".finhealth")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("output.format", "json")

	v.SetDefault("keywords.file", "")

	v.SetDefault("analytics.months", 6)
	v.SetDefault("analytics.top_categories", 5)
	v.SetDefault("analytics.outlier_threshold", 2.0)
	v.SetDefault("analytics.recurring_min_occurrences", 3)
	v.SetDefault("analytics.recurring_tolerance_days", 3)

	v.SetDefault("batch.workers", 4)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	switch strings.ToLower(config.Output.Format) {
	case "json", "yaml", "yml":
	default:
		return fmt.Errorf("invalid output format: %s (must be 'json' or 'yaml')", config.Output.Format)
	}

	if config.Analytics.Months < 1 {
		return fmt.Errorf("analytics.months must be at least 1, got: %d", config.Analytics.Months)
	}
	if config.Analytics.TopCategories < 1 {
		return fmt.Errorf("analytics.top_categories must be at least 1, got: %d", config.Analytics.TopCategories)
	}
	if config.Analytics.OutlierThreshold <= 0 {
		return fmt.Errorf("analytics.outlier_threshold must be positive, got: %f", config.Analytics.OutlierThreshold)
	}
	if config.Analytics.RecurringMinOccurrences < 2 {
		return fmt.Errorf("analytics.recurring_min_occurrences must be at least 2, got: %d", config.Analytics.RecurringMinOccurrences)
	}
	if config.Analytics.RecurringToleranceDays <= 0 {
		return fmt.Errorf("analytics.recurring_tolerance_days must be positive, got: %d", config.Analytics.RecurringToleranceDays)
	}

	if config.Batch.Workers < 1 || config.Batch.Workers > 64 {
		return fmt.Errorf("batch.workers must be between 1 and 64, got: %d", config.Batch.Workers)
	}

	return nil
}

// Delimiter returns the configured CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return r
}

// Default returns the built-in configuration, ignoring config files and the
// environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return &config
}
