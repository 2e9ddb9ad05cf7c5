package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":  slog.LevelDebug,
		" WARN ": slog.LevelWarn,
		"error":  slog.LevelError,
		"info":   slog.LevelInfo,
		"":       slog.LevelInfo,
		"chatty": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestSlogLogger_WritesEveryLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug")
	ctx := context.Background()

	log.Debug(ctx, "slot read", "slot", "learnify_progress")
	log.Info(ctx, "user registered", "username", "alice")
	log.Warn(ctx, "malformed slot replaced", "slot", "learnify_users")
	log.Error(ctx, "failed to save progress document", "op", "complete")

	out := buf.String()
	for _, s := range []string{
		"level=DEBUG", `msg="slot read"`, "slot=learnify_progress",
		"level=INFO", "username=alice",
		"level=WARN", "slot=learnify_users",
		"level=ERROR", "op=complete",
	} {
		require.Contains(t, out, s)
	}
}

func TestSlogLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")
	ctx := context.Background()

	log.Info(ctx, "hidden")
	log.Warn(ctx, "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSlogLogger_WithCarriesAttributes(t *testing.T) {
	var buf bytes.Buffer
	child := New(&buf, "info").With("component", "quiz", "username", "bob")

	child.Info(context.Background(), "quiz finished", "score", 7)

	out := buf.String()
	for _, s := range []string{"component=quiz", "username=bob", "score=7", `msg="quiz finished"`} {
		assert.Contains(t, out, s)
	}
}

func TestNop(t *testing.T) {
	require.NotPanics(t, func() {
		Nop().With("k", "v").Error(context.Background(), "dropped")
	})
}
