package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultWriterIsStderr(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "stderr.log"))
	require.NoError(t, err)
	defer f.Close()

	orig := os.Stderr
	os.Stderr = f
	t.Cleanup(func() { os.Stderr = orig })

	New(Config{Level: slog.LevelInfo}).Info("album reconciled", "tracks", 5)

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)

	// A file is not a terminal, so auto detection picks JSON.
	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "album reconciled", entry["msg"])
	assert.Equal(t, float64(5), entry["tracks"])
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		env      string
		terminal bool
		want     string
	}{
		{"development", true, formatPretty},
		{"test", true, formatPretty},
		{"production", true, formatJSON},
		{"development", false, formatJSON},
		{"production", false, formatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, detectFormat(tt.env, tt.terminal))
		})
	}
}

func TestNew_FormatSelection(t *testing.T) {
	tests := []struct {
		name   string
		format string
		json   bool
	}{
		{"empty means auto", "", true},
		{"auto off a terminal", "auto", true},
		{"explicit json", "json", true},
		{"explicit pretty", "pretty", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			New(Config{Writer: &buf, Format: tt.format, Environment: "development"}).Info("opened track")

			assert.Equal(t, tt.json, json.Valid(buf.Bytes()), buf.String())
			assert.Contains(t, buf.String(), "opened track")
		})
	}
}

func TestNew_PrettyWithoutTerminalIsPlain(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Writer: &buf, Format: "pretty"}).Warn("no tracks found", "album", "/music/a")

	out := buf.String()
	assert.NotContains(t, out, "\033[")
	assert.Contains(t, out, "WRN no tracks found album=/music/a")
}

func TestPrettyHandler_ColorsOnTerminal(t *testing.T) {
	var buf bytes.Buffer
	slog.New(NewPrettyHandler(&buf, nil)).Info("works assigned")

	assert.Contains(t, buf.String(), colorGreen+"INF"+colorReset)
	assert.Contains(t, buf.String(), colorBold+"works assigned"+colorReset)
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
}

func TestPrettyHandler_GroupPrefix(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil)
	h.plain = true

	log := slog.New(h).With("album", "/music/a").WithGroup("track")
	log.With("path", "01.flac").Info("tag written", "number", 3)

	out := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasSuffix(out, "tag written album=/music/a track.path=01.flac track.number=3"), out)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestLogger_WithErrorAndField(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: "json", Level: slog.LevelDebug})

	log.WithField("album", "/music/a").WithError(errors.New("locked")).Warn("failed to release album lock")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "/music/a", entry["album"])
	assert.Equal(t, "locked", entry["error"])
	assert.Equal(t, "WARN", entry["level"])
}
