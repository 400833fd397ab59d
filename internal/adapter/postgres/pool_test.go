package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryLogger_ForwardsDataAsAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	queryLogger(logger)(context.Background(), tracelog.LogLevelDebug, "Query", map[string]any{
		"sql":  "SELECT 1",
		"rows": 1,
	})

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "Query", m["msg"])
	assert.Equal(t, "DEBUG", m["level"])
	assert.Equal(t, "SELECT 1", m["sql"])
	assert.EqualValues(t, 1, m["rows"])
}

func TestSlogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   tracelog.LogLevel
		want slog.Level
	}{
		{tracelog.LogLevelTrace, slog.LevelDebug},
		{tracelog.LogLevelDebug, slog.LevelDebug},
		{tracelog.LogLevelInfo, slog.LevelInfo},
		{tracelog.LogLevelWarn, slog.LevelWarn},
		{tracelog.LogLevelError, slog.LevelError},
		{tracelog.LogLevelNone, slog.LevelError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slogLevel(tt.in), "level %v", tt.in)
	}
}
