package task_test

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	labelguildv1 "github.com/kazz187/labelguild/api/labelguildv1"
	"github.com/kazz187/labelguild/internal/eventbus"
	"github.com/kazz187/labelguild/internal/task"
	"github.com/kazz187/labelguild/internal/task/repositoryimpl"
	"github.com/kazz187/labelguild/pkg/cerr"
	"github.com/kazz187/labelguild/pkg/storage"
)

func newServer(t *testing.T) (*task.Server, *eventbus.Bus, <-chan *eventbus.Event) {
	t.Helper()
	bus := eventbus.New()
	_, ch := bus.Subscribe(16)
	store := repositoryimpl.NewYAMLRepository(storage.NewMemoryStorage(), "", nil)
	return task.NewServer(store, bus), bus, ch
}

func TestServer_ListTasks(t *testing.T) {
	srv, _, _ := newServer(t)
	ctx := context.Background()

	resp, err := srv.ListTasks(ctx, connect.NewRequest(&labelguildv1.ListTasksRequest{Priority: "Normal"}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Tasks, 2)
	assert.Equal(t, "task-101", resp.Msg.Tasks[0].ID)
	assert.EqualValues(t, 4, resp.Msg.Counts.Total)
	assert.EqualValues(t, 1, resp.Msg.Counts.Returned)

	_, err = srv.ListTasks(ctx, connect.NewRequest(&labelguildv1.ListTasksRequest{Status: "Archived"}))
	assert.True(t, cerr.IsCode(err, cerr.InvalidArgument))
}

func TestServer_GetTask(t *testing.T) {
	srv, _, _ := newServer(t)

	resp, err := srv.GetTask(context.Background(), connect.NewRequest(&labelguildv1.GetTaskRequest{ID: "task-102"}))
	require.NoError(t, err)
	assert.Equal(t, "Returned", resp.Msg.Task.Status)
	assert.Equal(t, []string{"Missed label", "Incorrect class"}, resp.Msg.Task.ErrorTypes)

	_, err = srv.GetTask(context.Background(), connect.NewRequest(&labelguildv1.GetTaskRequest{ID: "task-999"}))
	assert.True(t, cerr.IsCode(err, cerr.NotFound))
}

func TestServer_AssignReviewFlow(t *testing.T) {
	srv, _, events := newServer(t)
	ctx := context.Background()

	assigned, err := srv.AssignTask(ctx, connect.NewRequest(&labelguildv1.AssignTaskRequest{
		ProjectName:    "Fruit Detection",
		Dataset:        "Orchard-1",
		Priority:       "High",
		Labels:         []string{"Apple"},
		UploadedImages: []*labelguildv1.UploadedImage{{Name: "tree_01.png"}},
	}))
	require.NoError(t, err)
	id := assigned.Msg.Task.ID
	assert.Equal(t, "In Progress", assigned.Msg.Task.Status)
	assert.Equal(t, eventbus.EventTypeTaskAssigned, (<-events).Type)

	list, err := srv.ListTasks(ctx, connect.NewRequest(&labelguildv1.ListTasksRequest{}))
	require.NoError(t, err)
	assert.Len(t, list.Msg.Tasks, 5)

	_, err = srv.ApproveTask(ctx, connect.NewRequest(&labelguildv1.ApproveTaskRequest{ID: id}))
	assert.True(t, cerr.IsCode(err, cerr.FailedPrecondition))

	returned, err := srv.ReturnTask(ctx, connect.NewRequest(&labelguildv1.ReturnTaskRequest{ID: "task-101", ReviewerNote: "Boxes too loose"}))
	require.NoError(t, err)
	assert.Equal(t, "Returned", returned.Msg.Task.Status)
	assert.Equal(t, "Boxes too loose", returned.Msg.Task.ReviewerNote)

	select {
	case ev := <-events:
		assert.Equal(t, eventbus.EventTypeTaskReturned, ev.Type)
		assert.Equal(t, "task-101", ev.ResourceID)
	case <-time.After(time.Second):
		t.Fatal("no event")
	}
}

func TestWire_RoundTrip(t *testing.T) {
	orig := task.DefaultTasks()[2]
	orig.UploadedImages = []task.UploadedImage{{Name: "a.png", DataURL: "data:image/png;base64,AA=="}}

	assert.Equal(t, orig, task.FromWire(task.ToWire(orig)))
}
