package workspace

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	labelguildv1 "github.com/kazz187/labelguild/api/labelguildv1"
	"github.com/kazz187/labelguild/internal/eventbus"
	"github.com/kazz187/labelguild/pkg/cerr"
	"github.com/kazz187/labelguild/pkg/clog"
)

func TestServer_SubmitThroughRPC(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t, "")
	bus := eventbus.New()
	_, events := bus.Subscribe(4)
	srv := NewServer(NewRegistry(store), bus)

	opened, err := srv.OpenWorkspace(ctx, connect.NewRequest(&labelguildv1.OpenWorkspaceRequest{TaskID: "task-102"}))
	require.NoError(t, err)
	ws := opened.Msg.Workspace
	assert.Equal(t, labelguildv1.SourceSample, ws.Source)
	assert.Equal(t, "Returned", ws.Task.Status)
	assert.Equal(t, AdvisoryChecklistIncomplete, ws.Advisory)
	assert.False(t, ws.CanSubmit)
	sid := ws.SessionID

	_, err = srv.RequestSubmit(ctx, connect.NewRequest(&labelguildv1.SessionRequest{SessionID: sid}))
	assert.ErrorIs(t, err, ErrChecklistIncomplete)

	for i := range ws.Checked {
		_, err := srv.ToggleChecklistItem(ctx, connect.NewRequest(&labelguildv1.ToggleChecklistItemRequest{SessionID: sid, Index: int32(i)}))
		require.NoError(t, err)
	}
	_, err = srv.ToggleChecklistItem(ctx, connect.NewRequest(&labelguildv1.ToggleChecklistItemRequest{SessionID: sid, Index: 9}))
	assert.True(t, cerr.IsCode(err, cerr.InvalidArgument))

	added, err := srv.AddLabel(ctx, connect.NewRequest(&labelguildv1.AddLabelRequest{SessionID: sid, Label: "Mass"}))
	require.NoError(t, err)
	assert.False(t, added.Msg.Added)

	req, err := srv.RequestSubmit(ctx, connect.NewRequest(&labelguildv1.SessionRequest{SessionID: sid}))
	require.NoError(t, err)
	assert.True(t, req.Msg.Workspace.Confirming)

	done, err := srv.ConfirmSubmit(ctx, connect.NewRequest(&labelguildv1.SessionRequest{SessionID: sid}))
	require.NoError(t, err)
	assert.True(t, done.Msg.Workspace.Submitted)
	assert.Equal(t, "Pending Review", done.Msg.Workspace.Task.Status)

	ev := <-events
	assert.Equal(t, eventbus.EventTypeTaskSubmitted, ev.Type)
	assert.Equal(t, "task-102", ev.ResourceID)

	_, err = srv.CloseWorkspace(ctx, connect.NewRequest(&labelguildv1.SessionRequest{SessionID: sid}))
	require.NoError(t, err)
	_, err = srv.GetWorkspace(ctx, connect.NewRequest(&labelguildv1.SessionRequest{SessionID: sid}))
	assert.True(t, cerr.IsCode(err, cerr.NotFound))
}

func TestServer_TagsRequestLog(t *testing.T) {
	store, _ := newStore(t, "")
	srv := NewServer(NewRegistry(store), eventbus.New())

	openCtx := clog.ContextWithSlog(context.Background())
	opened, err := srv.OpenWorkspace(openCtx, connect.NewRequest(&labelguildv1.OpenWorkspaceRequest{TaskID: "task-100"}))
	require.NoError(t, err)
	sid := opened.Msg.Workspace.SessionID

	attrs := clog.GetAttributes(openCtx)
	assert.Equal(t, sid, attrs[clog.SessionIDKey])
	assert.Equal(t, "task-100", attrs[clog.TaskIDKey])
	assert.Equal(t, "sample", attrs[clog.SourceKey])

	toggleCtx := clog.ContextWithSlog(context.Background())
	_, err = srv.ToggleChecklistItem(toggleCtx, connect.NewRequest(&labelguildv1.ToggleChecklistItemRequest{SessionID: sid, Index: 0}))
	require.NoError(t, err)
	assert.Equal(t, "task-100", clog.GetTaskID(toggleCtx))

	missingCtx := clog.ContextWithSlog(context.Background())
	_, err = srv.GetWorkspace(missingCtx, connect.NewRequest(&labelguildv1.SessionRequest{SessionID: "nope"}))
	assert.True(t, cerr.IsCode(err, cerr.NotFound))
	assert.Empty(t, clog.GetTaskID(missingCtx))
}
