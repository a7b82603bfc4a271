package querymap

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicMetricsCollector(t *testing.T) {
	mc := &BasicMetricsCollector{}

	_, err := Decode[string](NewJSONSource(strings.NewReader(`{"a":"1","b":["2","3"]}`)), WithMetricsCollector(mc))
	require.NoError(t, err)
	_, err = Decode[string](NewJSONSource(strings.NewReader(`{"a":{}}`)), WithMetricsCollector(mc))
	require.Error(t, err)

	_, err = ParseWith("a=1&b=2&a=3", WithMetricsCollector(mc))
	require.NoError(t, err)
	_, err = ParseWith("a=1&broken", WithMetricsCollector(mc))
	require.Error(t, err)

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.DecodeCount)
	assert.Equal(t, int64(1), stats.DecodeErrors)
	assert.Equal(t, int64(2), stats.DecodeKeys)
	assert.Equal(t, int64(2), stats.ParseCount)
	assert.Equal(t, int64(1), stats.ParseErrors)
	assert.Equal(t, int64(4), stats.ParseEntries)
	assert.GreaterOrEqual(t, stats.DecodeAvgNanos, int64(0))

	mc.Reset()
	assert.Equal(t, BasicMetricsStats{}, mc.GetStats())
}

func TestWithMetricsCollectorNil(t *testing.T) {
	o := newOptions(OverwriteDuplicates, []Option{WithMetricsCollector(nil), WithLogger(nil)})

	assert.Equal(t, NoopMetricsCollector{}, o.metricsCollector)
	require.NotNil(t, o.logger)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Decode[string](NewJSONSource(strings.NewReader(`{"a":"1"}`)), WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"decode completed"`)
	assert.Contains(t, buf.String(), `"source":"json"`)

	buf.Reset()
	_, err = ParseWith("broken", WithLogger(logger))
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"msg":"query parse failed"`)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}

func TestLoggerConstructors(t *testing.T) {
	assert.NotNil(t, NewLogger(nil))
	assert.NotNil(t, NewJSONLogger(slog.LevelInfo))
	assert.NotNil(t, NewTextLogger(slog.LevelInfo))

	noop := NoopLogger()
	assert.False(t, noop.Enabled(t.Context(), slog.LevelError))

	var buf bytes.Buffer
	tagged := NewLogger(slog.NewTextHandler(&buf, nil)).WithSource("yaml")
	tagged.Info("hello")
	assert.Contains(t, buf.String(), "source=yaml")
}
