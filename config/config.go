// Package config loads bidmatch configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config holds the bidmatch configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Matching MatchingConfig `yaml:"matching"`
	Sources  SourcesConfig  `yaml:"sources"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	Path     string `yaml:"path"`      // database directory (default: data/bidmatch.db)
	InMemory bool   `yaml:"in_memory"` // run without persistence
}

// MatchingConfig holds recommendation settings.
type MatchingConfig struct {
	Threshold   float64 `yaml:"threshold"`    // minimum match score, 0..1 (default: 0.3)
	MaxFeatures int     `yaml:"max_features"` // vocabulary cap (default: 5000)
	Profile     string  `yaml:"profile"`      // default company profile text
}

// SourcesConfig selects which portals to fetch.
type SourcesConfig struct {
	CPPP bool `yaml:"cppp"`
	GeM  bool `yaml:"gem"`
}

// SMTPConfig holds email alert settings. Alerts are disabled when the
// host is empty.
type SMTPConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	From      string `yaml:"from"`
	Password  string `yaml:"password"`
	Recipient string `yaml:"recipient"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: info)
}

// Default returns the configuration used when no config file is
// given.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// Load reads configuration from a YAML file, applies defaults and
// validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// expandEnvVars replaces ${VAR} references with the value of the
// environment variable. Unset variables expand to the empty string.
func expandEnvVars(data []byte) []byte {
	return envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := envVarPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(name)))
	})
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Storage.Path == "" {
		c.Storage.Path = filepath.Join("data", "bidmatch.db")
	}
	if c.Matching.Threshold == 0 {
		c.Matching.Threshold = 0.3
	}
	if c.Matching.MaxFeatures <= 0 {
		c.Matching.MaxFeatures = 5000
	}
	if !c.Sources.CPPP && !c.Sources.GeM {
		c.Sources.CPPP = true
		c.Sources.GeM = true
	}
	if c.SMTP.Port <= 0 {
		c.SMTP.Port = 587
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Matching.Threshold < 0 || c.Matching.Threshold > 1 {
		return fmt.Errorf("matching.threshold must be between 0 and 1, got %g", c.Matching.Threshold)
	}
	if c.SMTP.Host != "" && c.SMTP.Recipient == "" {
		return fmt.Errorf("smtp.recipient is required when smtp.host is set")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
