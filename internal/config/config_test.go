package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	EnvEnvironment,
	EnvLogLevel,
	EnvLogFormat,
	EnvExtensions,
	EnvCatalog,
	EnvFields,
	EnvStrictOverlap,
}

// clearEnv unsets every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
		os.Unsetenv(key) //nolint:errcheck // Test setup
	}
}

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func validConfig() *Config {
	return &Config{
		App:     AppConfig{Environment: "development"},
		Logger:  LoggerConfig{Level: "info", Format: "auto"},
		Library: LibraryConfig{Extensions: []string{".flac"}, Fields: []string{"album"}},
		Works:   WorksConfig{Catalog: DefaultCatalog},
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(Overrides{EnvFile: noEnvFile(t)})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "auto", cfg.Logger.Format)
	assert.Equal(t, []string{".flac"}, cfg.Library.Extensions)
	assert.Equal(t, []string{"album", "albumartist", "genre", "discnumber", "disctotal"}, cfg.Library.Fields)
	assert.Equal(t, DefaultCatalog, cfg.Works.Catalog)
	assert.False(t, cfg.Works.StrictOverlap)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvEnvironment, "production")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvExtensions, ".flac, .mp3,,")
	t.Setenv(EnvFields, "album,genre")
	t.Setenv(EnvCatalog, "/tmp/works.toml")
	t.Setenv(EnvStrictOverlap, "yes")

	cfg, err := Load(Overrides{EnvFile: noEnvFile(t)})
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, []string{".flac", ".mp3"}, cfg.Library.Extensions)
	assert.Equal(t, []string{"album", "genre"}, cfg.Library.Fields)
	assert.Equal(t, "/tmp/works.toml", cfg.Works.Catalog)
	assert.True(t, cfg.Works.StrictOverlap)
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvFields, "album")
	t.Setenv(EnvStrictOverlap, "true")

	cfg, err := Load(Overrides{
		EnvFile:       noEnvFile(t),
		LogLevel:      "warn",
		Fields:        []string{"genre", "composer"},
		StrictOverlap: "false",
	})
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, []string{"genre", "composer"}, cfg.Library.Fields)
	assert.False(t, cfg.Works.StrictOverlap)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	content := `# albumtag settings
ALBUMTAG_LOG_LEVEL=error
ALBUMTAG_CATALOG="my-catalog.yaml"
ALBUMTAG_FIELDS=album
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	t.Run("file fills unset keys", func(t *testing.T) {
		cfg, err := Load(Overrides{EnvFile: envFile})
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.Logger.Level)
		assert.Equal(t, "my-catalog.yaml", cfg.Works.Catalog)
	})

	t.Run("environment wins over file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvLogLevel, "debug")

		cfg, err := Load(Overrides{EnvFile: envFile})
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Logger.Level)
		assert.Equal(t, []string{"album"}, cfg.Library.Fields)
	})
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name      string
		overrides Overrides
		wantErr   string
	}{
		{"environment", Overrides{Environment: "staging"}, "invalid environment"},
		{"log level", Overrides{LogLevel: "trace"}, "invalid log level"},
		{"log format", Overrides{LogFormat: "xml"}, "invalid log format"},
		{"strict overlap", Overrides{StrictOverlap: "maybe"}, "invalid boolean"},
		{"blank extensions", Overrides{Extensions: []string{" ", ""}}, "file extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			tt.overrides.EnvFile = noEnvFile(t)

			_, err := Load(tt.overrides)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"DEBUG", true},  // case insensitive
		{"trace", false}, // not supported
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_EmptyFields(t *testing.T) {
	cfg := validConfig()
	cfg.Library.Fields = nil

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "audit field")
}

func TestGetConfigValue_Precedence(t *testing.T) {
	// Flag value takes priority.
	result := getConfigValue("flag-value", "ALBUMTAG_TEST_KEY", "default-value")
	assert.Equal(t, "flag-value", result)

	t.Setenv("ALBUMTAG_TEST_KEY", "env-value")
	result = getConfigValue("", "ALBUMTAG_TEST_KEY", "default-value")
	assert.Equal(t, "env-value", result)

	result = getConfigValue("", "ALBUMTAG_NONEXISTENT_KEY", "default-value")
	assert.Equal(t, "default-value", result)
}

func TestGetListConfigValue_DefaultIsCopied(t *testing.T) {
	defaults := []string{"a", "b"}
	got := getListConfigValue(nil, "ALBUMTAG_NONEXISTENT_KEY", defaults)
	got[0] = "z"
	assert.Equal(t, []string{"a", "b"}, defaults)
}
