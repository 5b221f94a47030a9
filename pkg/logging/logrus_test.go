package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T, level string) (*LogrusLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, err := New(level, "json", &buf)
	require.NoError(t, err)
	return l, &buf
}

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogrusLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t, "debug")
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", "two")
	log.Warn(ctx, "wrn")
	log.Error(ctx, "err", "err", errors.New("boom"))

	got := lines(t, buf)
	require.Len(t, got, 4)
	assert.Equal(t, "debug", got[0]["level"])
	assert.Equal(t, float64(1), got[0]["a"])
	assert.Equal(t, "info", got[1]["level"])
	assert.Equal(t, "two", got[1]["b"])
	assert.Equal(t, "warning", got[2]["level"])
	assert.Equal(t, "error", got[3]["level"])
	assert.Equal(t, "boom", got[3]["err"])
}

func TestLogrusLogger_LevelFilters(t *testing.T) {
	log, buf := newTestLogger(t, "warn")
	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown")

	got := lines(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "shown", got[0]["msg"])
}

func TestLogrusLogger_With(t *testing.T) {
	log, buf := newTestLogger(t, "info")
	child := log.With("request_id", "r-1")
	child.Info(context.Background(), "hello", "k", "v")

	got := lines(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "r-1", got[0]["request_id"])
	assert.Equal(t, "v", got[0]["k"])
}

func TestLogrusLogger_OddArgs(t *testing.T) {
	log, buf := newTestLogger(t, "info")
	log.Info(context.Background(), "odd", "dangling")

	got := lines(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "dangling", got[0]["!BADKEY"])
}

func TestNew_RejectsUnknownSettings(t *testing.T) {
	_, err := New("loud", "json", &bytes.Buffer{})
	assert.Error(t, err)
	_, err = New("info", "xml", &bytes.Buffer{})
	assert.Error(t, err)
}
