package infrastructure

import (
	"bufio"
	"bytes"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherhome.app/internal/mocks"
	"weatherhome.app/internal/ports"
)

func readLogLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	var lines []map[string]interface{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		lines = append(lines, entry)
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestFileLoggerAdapter_NewFileLoggerAdapter(t *testing.T) {
	tests := []struct {
		name        string
		logPath     string
		expectError bool
	}{
		{name: "valid_path", logPath: "weather.log"},
		{name: "nested_path", logPath: filepath.Join("nested", "deep", "weather.log")},
		{name: "empty_path", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.logPath != "" {
				path = filepath.Join(t.TempDir(), tt.logPath)
			}

			logger, err := NewFileLoggerAdapter(path, slog.LevelInfo)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, logger)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { _ = logger.Close() })
			assert.FileExists(t, path)
			assert.Equal(t, path, logger.Path())
		})
	}
}

func TestFileLoggerAdapter_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.log")
	logger, err := NewFileLoggerAdapter(path, slog.LevelInfo)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("Weather API request completed", ports.F("operation", "city_list"), ports.F("returned", 5))
	logger.Error("Failed to refresh city list", ports.F("error", stderrors.New("boom")))
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())

	lines := readLogLines(t, path)
	require.Len(t, lines, 2)
	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, "Weather API request completed", lines[0]["msg"])
	assert.Equal(t, "city_list", lines[0]["operation"])
	assert.Equal(t, float64(5), lines[0]["returned"])
	assert.Equal(t, "ERROR", lines[1]["level"])
	assert.Equal(t, "boom", lines[1]["error"])
}

func TestSlogLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLoggerAdapter(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	logger.Debug("probe", ports.F("state", "connected"))
	logger.Warn("permission", ports.F("state", "denied"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[1], &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "denied", entry["state"])
}

func TestSlogLoggerAdapter_NilFallsBackToDefault(t *testing.T) {
	assert.NotPanics(t, func() {
		NewSlogLoggerAdapter(nil).Info("hello")
	})
}

func TestTeeLogger(t *testing.T) {
	a, b := mocks.NewLogger(), mocks.NewLogger()
	tee := TeeLogger{a, b}

	tee.Debug("d")
	tee.Info("i")
	tee.Warn("w", ports.F("k", 1))
	tee.Error("e")

	for _, l := range []*mocks.Logger{a, b} {
		entries := l.Entries()
		require.Len(t, entries, 4)
		assert.Equal(t, "WARN", entries[2].Level)
		assert.Equal(t, 1, entries[2].Fields["k"])
	}
}
