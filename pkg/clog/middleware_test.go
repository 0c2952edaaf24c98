package clog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(NewAttributesHandler(NewTextHandler(&buf, WithColor(false), WithLevel(slog.LevelDebug)))))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

type sessionMsg struct {
	SessionID string
}

func (m *sessionMsg) LogAttrs() map[string]any { return map[string]any{SessionIDKey: m.SessionID} }

func TestSlogConnectInterceptor_Unary(t *testing.T) {
	buf := captureLogs(t)
	unary := NewSlogConnectInterceptor().WrapUnary(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		AddTaskID(ctx, "task-100")
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("checklist incomplete"))
	})

	_, err := unary(context.Background(), connect.NewRequest(&sessionMsg{SessionID: "01J0SESSION"}))
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))

	out := buf.String()
	assert.Contains(t, out, "INFO ")
	assert.Contains(t, out, `task-100 01J0SESSION "[failed_precondition] checklist incomplete"`)
	assert.Contains(t, out, "    duration=")
}

func TestSlogConnectInterceptor_UnaryOK(t *testing.T) {
	buf := captureLogs(t)
	unary := NewSlogConnectInterceptor().WrapUnary(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&sessionMsg{}), nil
	})

	_, err := unary(context.Background(), connect.NewRequest(&sessionMsg{SessionID: "01J0SESSION"}))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `01J0SESSION "[ok] Finished"`)
}

func TestSlogChiMiddleware_TagsTaskID(t *testing.T) {
	buf := captureLogs(t)
	r := chi.NewRouter()
	r.Use(SlogChiMiddleware())
	r.Get("/api/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks/task-999", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	out := buf.String()
	assert.Contains(t, out, `WARN GET /api/tasks/task-999 task-999 "Not Found"`)
	assert.Contains(t, out, "    route=/api/tasks/{id}\n")
	assert.Contains(t, out, "    status=404\n")
}

func TestAttributesHandler_CallSiteWins(t *testing.T) {
	buf := captureLogs(t)
	ctx := ContextWithSlog(context.Background())
	AddSession(ctx, "01J0SESSION", "task-100")

	slog.InfoContext(ctx, "workspace reset", TaskIDKey, "task-101")

	out := buf.String()
	assert.Contains(t, out, `task-101 01J0SESSION "workspace reset"`)
	assert.NotContains(t, out, "task-100")
}

func TestLevels(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, ConnectCodeToLevel(connect.CodeNotFound))
	assert.Equal(t, slog.LevelError, ConnectCodeToLevel(connect.CodeInternal))
	assert.Equal(t, slog.LevelError, ConnectCodeToLevel(connect.CodeUnavailable))
	assert.Equal(t, slog.LevelInfo, HTTPStatusToLevel(http.StatusOK))
	assert.Equal(t, slog.LevelInfo, HTTPStatusToLevel(499))
	assert.Equal(t, slog.LevelWarn, HTTPStatusToLevel(http.StatusBadRequest))
	assert.Equal(t, slog.LevelError, HTTPStatusToLevel(http.StatusBadGateway))
}
