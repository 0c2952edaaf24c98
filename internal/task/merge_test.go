package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(tasks []*Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestMerge_PersistedFirstThenMissingDefaults(t *testing.T) {
	persisted := []*Task{
		{ID: "task-abc", ProjectName: "New", Status: StatusInProgress},
		{ID: "task-101", ProjectName: "Edited", Status: StatusCompleted},
	}

	merged := Merge(persisted, DefaultTasks(), PreferPersisted)

	assert.Equal(t, []string{"task-abc", "task-101", "task-100", "task-102", "task-103"}, ids(merged))
	byID := Index(merged)
	assert.Equal(t, "Edited", byID["task-101"].ProjectName)
	assert.Equal(t, StatusCompleted, byID["task-101"].Status)
}

func TestMerge_PreferDefaults(t *testing.T) {
	persisted := []*Task{{ID: "task-101", ProjectName: "Edited"}}

	merged := Merge(persisted, DefaultTasks(), PreferDefaults)

	byID := Index(merged)
	require.Contains(t, byID, "task-101")
	assert.Equal(t, "Street Scene Vehicles", byID["task-101"].ProjectName)
	assert.Equal(t, "task-101", merged[0].ID)
}

func TestMerge_DuplicatePersistedID(t *testing.T) {
	persisted := []*Task{
		{ID: "task-x", ProjectName: "first"},
		{ID: "task-y"},
		{ID: "task-x", ProjectName: "second"},
	}

	merged := Merge(persisted, nil, PreferPersisted)

	assert.Equal(t, []string{"task-x", "task-y"}, ids(merged))
	assert.Equal(t, "second", merged[0].ProjectName)
}

func TestMerge_EmptyPersisted(t *testing.T) {
	merged := Merge(nil, DefaultTasks(), PreferPersisted)
	assert.Equal(t, []string{"task-100", "task-101", "task-102", "task-103"}, ids(merged))
}

func TestDefaultTasks_FreshCopies(t *testing.T) {
	a := DefaultTasks()
	a[0].Labels = append(a[0].Labels, "mutated")
	a[0].Status = StatusCompleted

	b := DefaultTasks()
	assert.Equal(t, StatusInProgress, b[0].Status)
	assert.NotContains(t, b[0].Labels, "mutated")
}

func TestIsDefault(t *testing.T) {
	reviewed := DefaultTasks()[0]
	require.NoError(t, Submit(reviewed))
	assert.True(t, IsDefault(reviewed))

	renamed := DefaultTasks()[1]
	renamed.ProjectName = "Street Scene Vehicles v2"
	assert.False(t, IsDefault(renamed))

	withImages := DefaultTasks()[2]
	withImages.UploadedImages = []UploadedImage{{Name: "slice_001.png"}}
	assert.False(t, IsDefault(withImages))

	assert.False(t, IsDefault(&Task{ID: "task-abc"}))
}

func TestTask_Clone(t *testing.T) {
	orig := &Task{
		ID:             "task-1",
		Labels:         []string{"A"},
		UploadedImages: []UploadedImage{{Name: "a.png"}},
	}
	c := orig.Clone()
	c.Labels[0] = "B"
	c.UploadedImages[0].Name = "b.png"

	assert.Equal(t, "A", orig.Labels[0])
	assert.Equal(t, "a.png", orig.UploadedImages[0].Name)
}
