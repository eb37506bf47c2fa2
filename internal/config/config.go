// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/listenupapp/albumtag/internal/album"
	"github.com/listenupapp/albumtag/internal/scanner"
)

// Environment variable keys.
const (
	EnvEnvironment   = "ALBUMTAG_ENV"
	EnvLogLevel      = "ALBUMTAG_LOG_LEVEL"
	EnvLogFormat     = "ALBUMTAG_LOG_FORMAT"
	EnvExtensions    = "ALBUMTAG_EXTENSIONS"
	EnvCatalog       = "ALBUMTAG_CATALOG"
	EnvFields        = "ALBUMTAG_FIELDS"
	EnvStrictOverlap = "ALBUMTAG_STRICT_OVERLAP"
)

// DefaultCatalog is the builtin catalog used when none is configured.
const DefaultCatalog = "beethoven-piano-sonatas"

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Library LibraryConfig
	Works   WorksConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
	// Format is "pretty", "json" or "auto" (detect from the terminal).
	Format string
}

// LibraryConfig controls which files make up an album and which fields are audited.
type LibraryConfig struct {
	Extensions []string
	Fields     []string
}

// WorksConfig holds movement expansion configuration.
type WorksConfig struct {
	// Catalog is a builtin catalog name or a path to a YAML/TOML file.
	Catalog       string
	StrictOverlap bool
}

// Overrides carries values from command-line flags. Empty fields fall
// through to the environment.
type Overrides struct {
	Environment   string
	LogLevel      string
	LogFormat     string
	Catalog       string
	StrictOverlap string
	EnvFile       string
	Extensions    []string
	Fields        []string
}

// Load builds configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(flags Overrides) (*Config, error) {
	envFile := flags.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv never overrides variables already present in the environment.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	strict, err := getBoolConfigValue(flags.StrictOverlap, EnvStrictOverlap, false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(flags.Environment, EnvEnvironment, "development"),
		},
		Logger: LoggerConfig{
			Level:  strings.ToLower(getConfigValue(flags.LogLevel, EnvLogLevel, "info")),
			Format: strings.ToLower(getConfigValue(flags.LogFormat, EnvLogFormat, "auto")),
		},
		Library: LibraryConfig{
			Extensions: getListConfigValue(flags.Extensions, EnvExtensions, scanner.DefaultExtensions),
			Fields:     getListConfigValue(flags.Fields, EnvFields, album.DefaultFields),
		},
		Works: WorksConfig{
			Catalog:       getConfigValue(flags.Catalog, EnvCatalog, DefaultCatalog),
			StrictOverlap: strict,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"test":        true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %q (must be development, test, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %q (must be debug, info, warn, or error)", c.Logger.Level)
	}

	switch c.Logger.Format {
	case "auto", "pretty", "json":
	default:
		return fmt.Errorf("invalid log format: %q (must be auto, pretty, or json)", c.Logger.Format)
	}

	if len(c.Library.Extensions) == 0 {
		return errors.New("at least one file extension is required")
	}
	if len(c.Library.Fields) == 0 {
		return errors.New("at least one audit field is required")
	}
	if c.Works.Catalog == "" {
		return errors.New("catalog cannot be empty")
	}

	return nil
}

// IsProduction reports whether the app runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) (bool, error) {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue, nil
	}
	switch strings.ToLower(strValue) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(strValue)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for %s: %q", envKey, strValue)
	}
	return b, nil
}

// getListConfigValue returns a list from flags, a comma separated env var, or default.
func getListConfigValue(flagValue []string, envKey string, defaultValue []string) []string {
	if len(flagValue) > 0 {
		return cleanList(flagValue)
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return cleanList(strings.Split(envValue, ","))
	}
	return append([]string(nil), defaultValue...)
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
