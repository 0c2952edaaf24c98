package clog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewAttributesHandler(NewTextHandler(&buf, WithColor(false), WithLevel(slog.LevelDebug))))

	ctx := ContextWithSlog(context.Background())
	AddAttributes(ctx, map[string]any{"procedure": "/labelguild.v1.TaskService/ListTasks"})
	AddError(ctx, errors.New("boom"))

	logger.InfoContext(ctx, "Finished", "task_id", "task-100", "count", 4)

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "INFO /labelguild.v1.TaskService/ListTasks task-100 \"Finished\" \"boom\"")
	assert.Contains(t, out, "    count=4\n")
	assert.NotContains(t, out, "\x1b[")
}

func TestTextHandler_Enabled(t *testing.T) {
	h := NewTextHandler(&bytes.Buffer{}, WithLevel(slog.LevelWarn))
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestContextAttributes(t *testing.T) {
	ctx := ContextWithSlog(context.Background())
	AddAttributes(ctx, map[string]any{"a": map[string]any{"x": 1}})
	AddAttributes(ctx, map[string]any{"a": map[string]any{"y": 2}})

	attrs := GetAttributes(ctx)
	assert.Equal(t, map[string]any{"x": 1, "y": 2}, attrs["a"])

	assert.Nil(t, GetAttributes(context.Background()))
	assert.Empty(t, GetStack(ctx))
}
