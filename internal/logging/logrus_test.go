package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogrusTestLogger(t *testing.T) (*LogrusLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.JSONFormatter{})
	return NewLogrusLogger(l), &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogrusLogger_Levels(t *testing.T) {
	log, buf := newLogrusTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 4)

	want := []struct{ level, msg, key string }{
		{"debug", "dbg", "a"},
		{"info", "inf", "b"},
		{"warning", "wrn", "c"},
		{"error", "err", "d"},
	}
	for i, w := range want {
		assert.Equal(t, w.level, lines[i]["level"])
		assert.Equal(t, w.msg, lines[i]["msg"])
		assert.Contains(t, lines[i], w.key)
	}
}

func TestLogrusLogger_WithAddsFields(t *testing.T) {
	log, buf := newLogrusTestLogger(t)

	log.With("request_id", "r-1").Info(context.Background(), "hello", "k", "v")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "r-1", lines[0]["request_id"])
	assert.Equal(t, "v", lines[0]["k"])
}

func TestToFields_OddArgs(t *testing.T) {
	f := toFields([]any{"a", 1, "dangling"})
	assert.Equal(t, 1, f["a"])
	assert.Equal(t, "dangling", f["!BADKEY"])
}

func TestNew_Backends(t *testing.T) {
	var buf bytes.Buffer

	l, err := New(BackendSlog, "info", &buf)
	require.NoError(t, err)
	l.Info(context.Background(), "via slog")
	assert.Contains(t, buf.String(), `"msg":"via slog"`)

	buf.Reset()
	l, err = New(BackendLogrus, "info", &buf)
	require.NoError(t, err)
	l.Info(context.Background(), "via logrus")
	assert.Contains(t, buf.String(), `"msg":"via logrus"`)

	_, err = New("zap", "info", &buf)
	assert.Error(t, err)

	_, err = New(BackendSlog, "loud", &buf)
	assert.Error(t, err)

	_, err = New(BackendLogrus, "loud", &buf)
	assert.Error(t, err)
}

func TestNop_DoesNothing(t *testing.T) {
	l := Nop().With("a", 1)
	l.Info(context.Background(), "ignored")
}
