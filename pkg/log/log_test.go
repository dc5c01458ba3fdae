package log_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/vscroll/pkg/log"
)

func TestGetLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input    string
		expected slog.Level
		err      error
	}{
		"error":   {input: "error", expected: slog.LevelError},
		"warn":    {input: "warn", expected: slog.LevelWarn},
		"warning": {input: "WARNING", expected: slog.LevelWarn},
		"info":    {input: " info ", expected: slog.LevelInfo},
		"debug":   {input: "debug", expected: slog.LevelDebug},
		"unknown": {input: "trace", err: log.ErrUnknownLogLevel},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := log.GetLevel(tc.input)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestCreateHandlerWithStrings(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level  string
		format string
		err    error
	}{
		"json":           {level: "info", format: "json"},
		"logfmt":         {level: "debug", format: "logfmt"},
		"text":           {level: "warn", format: "text"},
		"bad level":      {level: "loud", format: "json", err: log.ErrUnknownLogLevel},
		"bad format":     {level: "info", format: "xml", err: log.ErrUnknownLogFormat},
		"invalid marker": {level: "info", format: "yaml", err: log.ErrInvalidArgument},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			h, err := log.CreateHandlerWithStrings(&bytes.Buffer{}, tc.level, tc.format)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, h)
		})
	}
}

func TestCreateHandlerJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(log.CreateHandler(&buf, slog.LevelInfo, log.FormatJSON))
	logger.Debug("hidden")
	logger.Info("commit window", slog.Int("start", 76))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "commit window", record["msg"])
	assert.InDelta(t, 76, record["start"], 0)
}

func TestWithContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	stored := slog.New(log.CreateHandler(&buf, slog.LevelInfo, log.FormatJSON))
	ctx := log.NewContext(t.Context(), stored)

	traceID, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	require.NoError(t, err)

	spanID, err := trace.SpanIDFromHex("0102030405060708")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx = trace.ContextWithSpanContext(ctx, sc)

	log.WithContext(ctx).Info("replay step")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "01020304", record["trace_id"])

	assert.Equal(t, slog.Default(), log.WithContext(context.Background()))
}
