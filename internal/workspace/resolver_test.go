package workspace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/labelguild/internal/task"
	"github.com/kazz187/labelguild/internal/task/repositoryimpl"
	"github.com/kazz187/labelguild/pkg/storage"
)

func newStore(t *testing.T, payload string) (*repositoryimpl.YAMLRepository, storage.Storage) {
	t.Helper()
	s := storage.NewMemoryStorage()
	if payload != "" {
		require.NoError(t, s.Write(context.Background(), "annotator-assigned-tasks.yaml", []byte(payload)))
	}
	return repositoryimpl.NewYAMLRepository(s, "", nil), s
}

func TestResolve_UnknownIDYieldsPlaceholder(t *testing.T) {
	store, _ := newStore(t, "")
	for _, id := range []string{"", "task-999", "task-103"} {
		v := NewResolver(store).Resolve(context.Background(), id)
		assert.Equal(t, SourcePlaceholder, v.Source, id)
		assert.Equal(t, "task-new", v.ID)
		assert.Equal(t, "New Assignment", v.ProjectName)
		assert.Equal(t, "Unassigned", v.Dataset)
		assert.Equal(t, "item_001.png", v.ItemName)
		assert.Equal(t, "Default", v.Preset)
		assert.Equal(t, task.AIPrelabelRunning, v.AIPrelabel)
		assert.Equal(t, []string{"Labels reviewed", "Checklist completed"}, v.Checklist)
		assert.Equal(t, []string{"Label A", "Label B"}, v.Labels)
		assert.Equal(t, task.StatusInProgress, v.Status)
	}
}

func TestResolve_SampleMap(t *testing.T) {
	store, _ := newStore(t, "")
	v := NewResolver(store).Resolve(context.Background(), "task-101")

	assert.Equal(t, SourceSample, v.Source)
	assert.Equal(t, "frame_0192.jpg", v.ItemName)
	assert.Equal(t, []string{"Car", "Bus", "Bike", "Truck"}, v.Labels)
	assert.Equal(t, task.StatusPendingReview, v.Status)

	v.Labels[0] = "mutated"
	again := NewResolver(store).Resolve(context.Background(), "task-101")
	assert.Equal(t, "Car", again.Labels[0])
}

func TestResolve_MalformedStoreFallsThrough(t *testing.T) {
	store, _ := newStore(t, "{{{ not yaml")
	v := NewResolver(store).Resolve(context.Background(), "task-102")

	assert.Equal(t, SourceSample, v.Source)
	assert.Equal(t, "slice_018.png", v.ItemName)
	assert.Equal(t, task.StatusReturned, v.Status)
	assert.Equal(t, "Check slices 14-20 for missing hemorrhage labels.", v.ReviewerNote)
}

func TestResolve_PersistedTaskIsHydrated(t *testing.T) {
	store, _ := newStore(t, `
- id: task-abc
  status: In Progress
  ai_prelabel: Maybe
- id: task-def
  project_name: Fruit Detection
  dataset: Orchard-1
  preset: Fruit Boxes
  ai_prelabel: Ready
  status: Returned
  instructions: []
  checklist: [Boxes tight]
  labels: [Apple, Pear]
  uploaded_images:
    - name: tree_01.png
      data_url: data:image/png;base64,AA==
`)
	r := NewResolver(store)

	bare := r.Resolve(context.Background(), "task-abc")
	assert.Equal(t, SourceStore, bare.Source)
	assert.Equal(t, "Assigned Project", bare.ProjectName)
	assert.Equal(t, "Manager uploaded dataset", bare.Dataset)
	assert.Equal(t, "Custom preset", bare.Preset)
	assert.Equal(t, "item_001.png", bare.ItemName)
	assert.Equal(t, task.AIPrelabelOff, bare.AIPrelabel)
	assert.Equal(t, []string{"Follow manager instructions before labeling."}, bare.Instructions)
	assert.Equal(t, []string{"Checklist completed"}, bare.Checklist)
	assert.Equal(t, []string{"Label A", "Label B"}, bare.Labels)

	full := r.Resolve(context.Background(), "task-def")
	assert.Equal(t, "Fruit Detection", full.ProjectName)
	assert.Equal(t, "tree_01.png", full.ItemName)
	assert.Equal(t, task.AIPrelabelReady, full.AIPrelabel)
	assert.Empty(t, full.Instructions)
	assert.Equal(t, []string{"Boxes tight"}, full.Checklist)
	assert.Equal(t, []string{"Apple", "Pear"}, full.Labels)
	assert.Equal(t, task.StatusReturned, full.Status)
}

func TestResolve_PersistedCollectionWithoutID(t *testing.T) {
	store, _ := newStore(t, "- id: task-abc\n")
	v := NewResolver(store).Resolve(context.Background(), "task-100")
	assert.Equal(t, SourceSample, v.Source)
	assert.Equal(t, "shelf_043.png", v.ItemName)
}
