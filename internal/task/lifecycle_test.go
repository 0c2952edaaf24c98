package task

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/labelguild/pkg/cerr"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusInProgress, StatusPendingReview}: true,
		{StatusReturned, StatusPendingReview}:   true,
		{StatusPendingReview, StatusReturned}:   true,
		{StatusPendingReview, StatusCompleted}:  true,
	}
	for _, from := range Statuses {
		for _, to := range Statuses {
			assert.Equal(t, allowed[[2]Status{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestSubmittable(t *testing.T) {
	assert.True(t, Submittable(StatusInProgress))
	assert.True(t, Submittable(StatusReturned))
	assert.False(t, Submittable(StatusPendingReview))
	assert.False(t, Submittable(StatusCompleted))
}

func TestSubmit(t *testing.T) {
	tk := &Task{ID: "task-1", Status: StatusReturned}
	require.NoError(t, Submit(tk))
	assert.Equal(t, StatusPendingReview, tk.Status)

	err := Submit(tk)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.True(t, cerr.IsCode(err, cerr.FailedPrecondition))
	assert.Equal(t, StatusPendingReview, tk.Status)
}

func TestReturnAndApprove(t *testing.T) {
	tk := &Task{ID: "task-1", Status: StatusPendingReview, Progress: 90}
	require.NoError(t, Return(tk, "  fix boxes  ", []string{"Loose box"}))
	assert.Equal(t, StatusReturned, tk.Status)
	assert.Equal(t, "fix boxes", tk.ReviewerNote)
	assert.Equal(t, []string{"Loose box"}, tk.ErrorTypes)

	require.ErrorIs(t, Approve(tk), ErrInvalidTransition)

	require.NoError(t, Submit(tk))
	require.NoError(t, Approve(tk))
	assert.Equal(t, StatusCompleted, tk.Status)
	assert.Equal(t, 100, tk.Progress)

	for _, to := range Statuses {
		assert.False(t, CanTransition(StatusCompleted, to))
	}
}

func TestAssign(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tk, err := Assign(&AssignRequest{
		ProjectName: " Fruit Detection ",
		Dataset:     "Orchard-1",
		Labels:      []string{"Apple", "Pear"},
	}, now)
	require.NoError(t, err)
	assert.Regexp(t, `^task-[0-9a-z]{26}$`, tk.ID)
	assert.Equal(t, "Fruit Detection", tk.ProjectName)
	assert.Equal(t, StatusInProgress, tk.Status)
	assert.Equal(t, PriorityNormal, tk.Priority)
	assert.Equal(t, AIPrelabelOff, tk.AIPrelabel)
	assert.Equal(t, "2026-03-01", tk.AssignedAt)
	assert.Equal(t, "2026-03-08", tk.DueAt)
	assert.Equal(t, []string{"Apple", "Pear"}, tk.Labels)
}

func TestAssign_Invalid(t *testing.T) {
	now := time.Now()
	cases := map[string]*AssignRequest{
		"missing project": {},
		"bad priority":    {ProjectName: "p", Priority: "Urgent"},
		"bad prelabel":    {ProjectName: "p", AIPrelabel: "Maybe"},
		"bad due date":    {ProjectName: "p", DueAt: "03/01/2026"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Assign(req, now)
			assert.True(t, cerr.IsCode(err, cerr.InvalidArgument))
		})
	}
}
