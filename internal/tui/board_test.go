package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	labelguildv1 "github.com/kazz187/labelguild/api/labelguildv1"
	"github.com/kazz187/labelguild/internal/task"
)

type fakeLister struct {
	calls []*labelguildv1.ListTasksRequest
	err   error
}

func (f *fakeLister) ListTasks(_ context.Context, filter *labelguildv1.ListTasksRequest) ([]*labelguildv1.Task, *labelguildv1.TaskCounts, error) {
	f.calls = append(f.calls, filter)
	if f.err != nil {
		return nil, nil, f.err
	}
	var out []*labelguildv1.Task
	for _, t := range (task.Filter{
		Search:   filter.Search,
		Status:   task.Status(filter.Status),
		Priority: task.Priority(filter.Priority),
	}).Apply(task.DefaultTasks()) {
		out = append(out, task.ToWire(t))
	}
	return out, task.CountsToWire(task.Count(task.DefaultTasks())), nil
}

// run executes cmd and feeds its message back into the board.
func run(t *testing.T, b *Board, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	b.Update(cmd())
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBoard_LoadsAndRenders(t *testing.T) {
	lister := &fakeLister{}
	b := NewBoard(lister)
	run(t, b, b.Init())

	require.Len(t, b.tasks, 4)
	view := b.View()
	assert.Contains(t, view, "total 4")
	assert.Contains(t, view, "Retail Shelf Audit")

	b.Update(key("j"))
	assert.Equal(t, "task-101", b.Selected().ID)
	b.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, b.View(), "Urban-Cam-12")
}

func TestBoard_FiltersCycle(t *testing.T) {
	lister := &fakeLister{}
	b := NewBoard(lister)
	run(t, b, b.Init())

	_, cmd := b.Update(key("s"))
	run(t, b, cmd)
	assert.Equal(t, task.StatusInProgress, b.status)
	require.Len(t, b.tasks, 1)
	assert.Equal(t, "task-100", b.tasks[0].ID)

	for range task.Statuses {
		_, cmd = b.Update(key("s"))
		run(t, b, cmd)
	}
	assert.Equal(t, task.Status(""), b.status)
	assert.Len(t, b.tasks, 4)

	b.Update(key("/"))
	for _, r := range "scan" {
		_, cmd = b.Update(key(string(r)))
		run(t, b, cmd)
	}
	b.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, b.searching)
	require.Len(t, b.tasks, 1)
	assert.Equal(t, "task-102", b.tasks[0].ID)
	assert.Equal(t, "scan", lister.calls[len(lister.calls)-1].Search)

	_, cmd = b.Update(key("c"))
	run(t, b, cmd)
	assert.Len(t, b.tasks, 4)
}

func TestBoard_RefreshKeepsLastGoodListOnError(t *testing.T) {
	lister := &fakeLister{}
	b := NewBoard(lister)
	run(t, b, b.Init())

	lister.err = errors.New("connection refused")
	_, cmd := b.Update(RefreshMsg{})
	run(t, b, cmd)

	assert.Len(t, b.tasks, 4)
	assert.Contains(t, b.View(), "connection refused")
}

func TestNext(t *testing.T) {
	assert.Equal(t, task.PriorityLow, next(priorities, ""))
	assert.Equal(t, task.PriorityHigh, next(priorities, task.PriorityNormal))
	assert.Equal(t, task.Priority(""), next(priorities, task.PriorityHigh))
}
