package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FormatByEnvironment(t *testing.T) {
	tests := []struct {
		env      string
		format   string
		wantJSON bool
	}{
		{"production", "", true},
		{"development", "", false},
		{"staging", "", false},
		{"development", FormatJSON, true},
		{"production", FormatPretty, false},
	}

	for _, tt := range tests {
		t.Run(tt.env+"/"+tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(Config{Writer: &buf, Environment: tt.env, Format: tt.format, Level: slog.LevelInfo})
			l.Info("hello", "entries", 3)

			var decoded map[string]any
			err := json.Unmarshal(buf.Bytes(), &decoded)
			if tt.wantJSON {
				require.NoError(t, err)
				assert.Equal(t, "hello", decoded["msg"])
				assert.InDelta(t, 3, decoded["entries"], 0)
			} else {
				assert.Error(t, err)
				assert.Contains(t, buf.String(), "entries=3")
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"trace", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestPrettyHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Writer: &buf, Format: FormatPretty, Level: slog.LevelWarn})

	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	out := buf.String()
	assert.NotContains(t, out, "DBG")
	assert.NotContains(t, out, "INF")
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "ERR")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestPrettyHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil)
	l := slog.New(h).With("component", "catalog").WithGroup("reload")

	l.Info("catalog reloaded", "entries", 12, slog.Group("tags", "count", 4))

	out := buf.String()
	assert.Contains(t, out, "component=catalog")
	assert.Contains(t, out, "reload.entries=12")
	assert.Contains(t, out, "reload.tags.count=4")
	assert.Contains(t, out, "catalog reloaded")
}

func TestPrettyHandler_Source(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{AddSource: true}))
	l.Info("with source")
	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "plain", formatValue(slog.StringValue("plain")))
	assert.Equal(t, `"two words"`, formatValue(slog.StringValue("two words")))
	assert.Equal(t, "2024-05-01T10:00:00Z", formatValue(slog.TimeValue(ts)))
	assert.Equal(t, "1.5s", formatValue(slog.DurationValue(1500*time.Millisecond)))
	assert.Equal(t, "true", formatValue(slog.BoolValue(true)))
}

func TestLevelLabel(t *testing.T) {
	name, _ := levelLabel(slog.LevelError + 4)
	assert.Equal(t, "ERR", name)
	name, _ = levelLabel(slog.LevelDebug - 4)
	assert.Equal(t, "DEBUG-4", name)
}

func TestLogger_Helpers(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Writer: &buf, Format: FormatJSON})

	l.WithError(errors.New("boom")).WithField("entry_id", 7).Info("copy failed")
	l.WithComponent("watcher").Info("started")
	assert.Same(t, l, l.WithError(nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "boom", first["error"])
	assert.InDelta(t, 7, first["entry_id"], 0)
	assert.Equal(t, "watcher", second["component"])
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard().Error("dropped") })
}
