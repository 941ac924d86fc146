package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestJSONLoggerFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWriter(&buf, Config{Level: "info", Format: "json"}).With(String("component", "test"))
	log.Debug("hidden")
	log.Info("pin added", Int("count", 2), Err(errors.New("boom")))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "pin added", rec["msg"])
	require.Equal(t, "test", rec["component"])
	require.EqualValues(t, 2, rec["count"])
	require.Equal(t, "boom", rec["err"])
}

func TestNoop(t *testing.T) {
	t.Parallel()

	log := Noop().With(String("a", "b"))
	log.Info("nothing")
	log.Error("still nothing")
}
