// Package config loads process configuration from the environment and the
// module configuration file.
package config

import (
	"log/slog"
	"os"
	"strings"
)

// Config holds process-level settings.
type Config struct {
	LogLevel       string
	LogFormat      string
	ModulesFile    string
	MetricsEnabled bool
}

// Load loads configuration from environment variables.
func Load() *Config {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "INFO"
	}

	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "" {
		logFormat = "text"
	}

	modulesFile := os.Getenv("CONTRACTS_MODULES_FILE")
	if modulesFile == "" {
		modulesFile = "contracts.yaml"
	}

	return &Config{
		LogLevel:       logLevel,
		LogFormat:      logFormat,
		ModulesFile:    modulesFile,
		MetricsEnabled: os.Getenv("METRICS_ENABLED") == "true",
	}
}

// SlogLevel maps LogLevel onto a slog level. Unknown values fall back to Info.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
