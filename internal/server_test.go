package internal_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	labelguildv1 "github.com/kazz187/labelguild/api/labelguildv1"
	server "github.com/kazz187/labelguild/internal"
	"github.com/kazz187/labelguild/internal/client"
	"github.com/kazz187/labelguild/internal/config"
	"github.com/kazz187/labelguild/internal/event"
	"github.com/kazz187/labelguild/internal/eventbus"
	"github.com/kazz187/labelguild/internal/task"
	"github.com/kazz187/labelguild/internal/task/repositoryimpl"
	"github.com/kazz187/labelguild/internal/workspace"
	"github.com/kazz187/labelguild/pkg/storage"
)

const testAPIKey = "test-key"

func newTestServer(t *testing.T) (*httptest.Server, *eventbus.Bus) {
	t.Helper()
	bus := eventbus.New()
	store := repositoryimpl.NewYAMLRepository(storage.NewMemoryStorage(), "", nil)
	env := &config.Env{BaseEnv: config.BaseEnv{APIKey: testAPIKey}}
	srv := server.NewServer(
		env,
		task.NewServer(store, bus),
		workspace.NewServer(workspace.NewRegistry(store), bus),
		event.NewServer(bus),
	)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, bus
}

func TestServer_RequiresAPIKey(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, _, err = client.NewTaskClient(client.Config{BaseURL: ts.URL}).ListTasks(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	_, _, err = client.NewTaskClient(client.Config{BaseURL: ts.URL, APIKey: "wrong"}).ListTasks(context.Background(), nil)
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}

func TestServer_TaskAndWorkspaceFlow(t *testing.T) {
	ts, _ := newTestServer(t)
	ctx := context.Background()
	cfg := client.Config{BaseURL: ts.URL, APIKey: testAPIKey}
	tasks := client.NewTaskClient(cfg)
	workspaces := client.NewWorkspaceClient(cfg)

	list, counts, err := tasks.ListTasks(ctx, &labelguildv1.ListTasksRequest{Search: "retail"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "task-100", list[0].ID)
	assert.EqualValues(t, 4, counts.Total)

	_, err = tasks.GetTask(ctx, "task-999")
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	ws, err := workspaces.Open(ctx, "task-100")
	require.NoError(t, err)
	assert.Equal(t, labelguildv1.SourceSample, ws.Source)
	assert.False(t, ws.CanSubmit)

	_, err = workspaces.RequestSubmit(ctx, ws.SessionID)
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))

	for i := range ws.Checked {
		ws, err = workspaces.ToggleChecklistItem(ctx, ws.SessionID, i)
		require.NoError(t, err)
	}
	assert.True(t, ws.CanSubmit)

	ws, err = workspaces.RequestSubmit(ctx, ws.SessionID)
	require.NoError(t, err)
	assert.True(t, ws.Confirming)

	ws, err = workspaces.ConfirmSubmit(ctx, ws.SessionID)
	require.NoError(t, err)
	assert.True(t, ws.Submitted)

	got, err := tasks.GetTask(ctx, "task-100")
	require.NoError(t, err)
	assert.Equal(t, "Pending Review", got.Status)

	returned, err := tasks.ReturnTask(ctx, "task-100", "  tighten boxes ", []string{"Loose box"})
	require.NoError(t, err)
	assert.Equal(t, "Returned", returned.Status)
	assert.Equal(t, "tighten boxes", returned.ReviewerNote)

	require.NoError(t, workspaces.Close(ctx, ws.SessionID))
	_, err = workspaces.Get(ctx, ws.SessionID)
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestServer_JSONRoutes(t *testing.T) {
	ts, _ := newTestServer(t)

	get := func(path string) *http.Response {
		req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+testAPIKey)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	resp := get("/api/tasks?status=Returned")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list labelguildv1.ListTasksResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Tasks, 1)
	assert.Equal(t, "task-102", list.Tasks[0].ID)

	resp = get("/api/tasks/task-103")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, http.StatusNotFound, get("/api/tasks/task-999").StatusCode)
	assert.Equal(t, http.StatusBadRequest, get("/api/tasks?priority=Someday").StatusCode)
	assert.Equal(t, http.StatusNotFound, get("/api/nothing").StatusCode)
}

func TestServer_EventStream(t *testing.T) {
	ts, bus := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events := client.NewEventClient(client.Config{BaseURL: ts.URL, APIKey: testAPIKey})
	received := make(chan *labelguildv1.Event, 1)
	done := make(chan error, 1)
	go func() {
		done <- events.Subscribe(ctx, []string{string(eventbus.EventTypeTaskApproved)}, func(e *labelguildv1.Event) error {
			received <- e
			cancel()
			return nil
		})
	}()

	require.Eventually(t, func() bool { return bus.SubscriberCount() > 0 }, 2*time.Second, 10*time.Millisecond)
	bus.PublishNew(eventbus.EventTypeTaskReturned, "task-100", "", nil)
	bus.PublishNew(eventbus.EventTypeTaskApproved, "task-103", "", nil)

	select {
	case e := <-received:
		assert.Equal(t, "task.approved", e.Type)
		assert.Equal(t, "task-103", e.ResourceID)
	case <-time.After(3 * time.Second):
		t.Fatal("no event received")
	}
	assert.NoError(t, <-done)
}
