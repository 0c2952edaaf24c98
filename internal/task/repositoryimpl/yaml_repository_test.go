package repositoryimpl

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/labelguild/internal/task"
	"github.com/kazz187/labelguild/pkg/cerr"
	"github.com/kazz187/labelguild/pkg/storage"
)

type countingNotifier struct {
	n atomic.Int32
}

func (c *countingNotifier) Changed(context.Context) { c.n.Add(1) }

type failingStorage struct {
	storage.Storage
}

func (failingStorage) Write(context.Context, string, []byte) error {
	return errors.New("disk full")
}

// flakyStorage fails the next readFailures reads.
type flakyStorage struct {
	storage.Storage
	readFailures atomic.Int32
}

func (f *flakyStorage) Read(ctx context.Context, path string) ([]byte, error) {
	if f.readFailures.Add(-1) >= 0 {
		return nil, errors.New("connection reset by peer")
	}
	return f.Storage.Read(ctx, path)
}

func taskIDs(tasks []*task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestYAMLRepository_ReadAllFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	cases := map[string]string{
		"mapping":        "id: task-1\n",
		"scalar":         "not a list",
		"broken":         "- id: [unterminated",
		"scalar entries": "- 1\n- 2\n",
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			s := storage.NewMemoryStorage()
			require.NoError(t, s.Write(ctx, "annotator-assigned-tasks.yaml", []byte(payload)))
			repo := NewYAMLRepository(s, "", nil)

			assert.Equal(t, []string{"task-100", "task-101", "task-102", "task-103"}, taskIDs(repo.ReadAll(ctx)))
			_, ok := repo.ReadPersisted(ctx)
			assert.False(t, ok)
		})
	}

	t.Run("absent", func(t *testing.T) {
		repo := NewYAMLRepository(storage.NewMemoryStorage(), "", nil)
		assert.Len(t, repo.ReadAll(ctx), 4)
	})
}

func TestYAMLRepository_WriteAllVisibleAndNotifies(t *testing.T) {
	ctx := context.Background()
	n := &countingNotifier{}
	repo := NewYAMLRepository(storage.NewMemoryStorage(), "", n)

	written := []*task.Task{{ID: "task-abc", ProjectName: "Fresh", Status: task.StatusInProgress}}
	require.NoError(t, repo.WriteAll(ctx, written))

	all := repo.ReadAll(ctx)
	assert.Equal(t, []string{"task-abc", "task-100", "task-101", "task-102", "task-103"}, taskIDs(all))
	assert.Equal(t, "Fresh", all[0].ProjectName)
	assert.EqualValues(t, 1, n.n.Load())

	persisted, ok := repo.ReadPersisted(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"task-abc"}, taskIDs(persisted))
}

func TestYAMLRepository_WriteFailure(t *testing.T) {
	ctx := context.Background()
	n := &countingNotifier{}
	repo := NewYAMLRepository(failingStorage{storage.NewMemoryStorage()}, "", n)

	err := repo.WriteAll(ctx, task.DefaultTasks())
	assert.True(t, cerr.IsCode(err, cerr.Internal))
	assert.Zero(t, n.n.Load())
}

func TestYAMLRepository_Update(t *testing.T) {
	ctx := context.Background()
	n := &countingNotifier{}
	repo := NewYAMLRepository(storage.NewMemoryStorage(), "tasks", n)
	assert.Equal(t, "tasks.yaml", repo.StoragePath())

	updated, err := repo.Update(ctx, "task-100", task.Submit)
	require.NoError(t, err)
	assert.Equal(t, task.StatusPendingReview, updated.Status)

	persisted, ok := repo.ReadPersisted(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"task-100"}, taskIDs(persisted))
	assert.Equal(t, task.StatusPendingReview, persisted[0].Status)
	assert.EqualValues(t, 1, n.n.Load())

	_, err = repo.Update(ctx, "task-101", task.Approve)
	require.NoError(t, err)
	persisted, _ = repo.ReadPersisted(ctx)
	assert.Equal(t, []string{"task-100", "task-101"}, taskIDs(persisted))
	assert.EqualValues(t, 2, n.n.Load())

	_, err = repo.Update(ctx, "task-100", task.Submit)
	assert.ErrorIs(t, err, task.ErrInvalidTransition)

	_, err = repo.Update(ctx, "task-missing", task.Submit)
	assert.True(t, cerr.IsCode(err, cerr.NotFound))
	assert.EqualValues(t, 2, n.n.Load())
}

func TestYAMLRepository_UpdateKeepsStoreOnReadFailure(t *testing.T) {
	ctx := context.Background()
	n := &countingNotifier{}
	s := &flakyStorage{Storage: storage.NewMemoryStorage()}
	repo := NewYAMLRepository(s, "", n)

	assigned := &task.Task{ID: "task-assigned", ProjectName: "Fresh", Status: task.StatusPendingReview}
	require.NoError(t, repo.Append(ctx, assigned))

	s.readFailures.Store(1)
	_, err := repo.Update(ctx, "task-101", task.Approve)
	assert.True(t, cerr.IsCode(err, cerr.Internal))

	s.readFailures.Store(1)
	err = repo.Append(ctx, &task.Task{ID: "task-other", Status: task.StatusInProgress})
	assert.True(t, cerr.IsCode(err, cerr.Internal))
	assert.EqualValues(t, 1, n.n.Load())

	persisted, ok := repo.ReadPersisted(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"task-assigned"}, taskIDs(persisted))

	updated, err := repo.Update(ctx, "task-assigned", task.Approve)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, updated.Status)
}

func TestYAMLRepository_ReadAllDegradesOnReadFailure(t *testing.T) {
	ctx := context.Background()
	s := &flakyStorage{Storage: storage.NewMemoryStorage()}
	repo := NewYAMLRepository(s, "", nil)
	require.NoError(t, repo.Append(ctx, &task.Task{ID: "task-assigned", Status: task.StatusInProgress}))

	s.readFailures.Store(1)
	assert.Equal(t, []string{"task-100", "task-101", "task-102", "task-103"}, taskIDs(repo.ReadAll(ctx)))
	assert.Len(t, repo.ReadAll(ctx), 5)
}

func TestYAMLRepository_UpdateRepairsMalformedPayload(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStorage()
	require.NoError(t, s.Write(ctx, "annotator-assigned-tasks.yaml", []byte("not a list")))
	repo := NewYAMLRepository(s, "", nil)

	_, err := repo.Update(ctx, "task-100", task.Submit)
	require.NoError(t, err)
	persisted, ok := repo.ReadPersisted(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"task-100"}, taskIDs(persisted))
}

func TestYAMLRepository_Append(t *testing.T) {
	ctx := context.Background()
	repo := NewYAMLRepository(storage.NewMemoryStorage(), "", nil)

	require.NoError(t, repo.Append(ctx, &task.Task{ID: "task-new-1", Status: task.StatusInProgress}))
	assert.Equal(t, []string{"task-new-1", "task-100", "task-101", "task-102", "task-103"}, taskIDs(repo.ReadAll(ctx)))
	persisted, _ := repo.ReadPersisted(ctx)
	assert.Equal(t, []string{"task-new-1"}, taskIDs(persisted))

	err := repo.Append(ctx, &task.Task{ID: "task-100"})
	assert.True(t, cerr.IsCode(err, cerr.AlreadyExists))
}

func TestDecode_DropsEntriesWithoutID(t *testing.T) {
	tasks, err := Decode([]byte("- id: task-1\n- project_name: orphan\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"task-1"}, taskIDs(tasks))

	tasks, err = Decode([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
