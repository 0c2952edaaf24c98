package event

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/labelguild/internal/eventbus"
)

func TestJournal_AppendAndRead(t *testing.T) {
	dir := t.TempDir()
	j, err := NewJournal(dir)
	require.NoError(t, err)

	day := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	require.NoError(t, j.Append(&eventbus.Event{ID: "1", Type: eventbus.EventTypeTaskAssigned, ResourceID: "task-a", CreatedAt: day}))
	require.NoError(t, j.Append(&eventbus.Event{ID: "2", Type: eventbus.EventTypeTasksUpdated, CreatedAt: day}))
	require.NoError(t, j.Append(&eventbus.Event{ID: "3", Type: eventbus.EventTypeTaskApproved, ResourceID: "task-a", CreatedAt: day.Add(24 * time.Hour)}))

	_, err = os.Stat(filepath.Join(dir, "events_2026-03-01.ndjson"))
	require.NoError(t, err)

	all, err := j.Read(day)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "task-a", all[0].ResourceID)

	assigned, err := j.Read(day, eventbus.EventTypeTaskAssigned)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "1", assigned[0].ID)

	none, err := j.Read(day.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestJournal_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	j, err := NewJournal(dir)
	require.NoError(t, err)

	day := time.Now()
	require.NoError(t, os.WriteFile(j.path(day), []byte("not json\n\n"), 0o644))
	require.NoError(t, j.Append(&eventbus.Event{ID: "ok", Type: eventbus.EventTypeTaskReturned, CreatedAt: day}))

	events, err := j.Read(day)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ok", events[0].ID)
}

func TestJournal_RunRecordsBusEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	j, err := NewJournal(t.TempDir())
	require.NoError(t, err)
	bus := eventbus.New()
	go j.Run(ctx, bus)

	require.Eventually(t, func() bool { return bus.SubscriberCount() == 1 }, time.Second, 5*time.Millisecond)
	e := bus.PublishNew(eventbus.EventTypeTaskSubmitted, "task-100", "", nil)

	require.Eventually(t, func() bool {
		events, err := j.Read(e.CreatedAt)
		return err == nil && len(events) == 1 && events[0].ResourceID == "task-100"
	}, 2*time.Second, 10*time.Millisecond)
}
