package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/kazz187/labelguild/pkg/cerr"
)

var ErrInvalidTransition = errors.New("invalid status transition")

const dateLayout = "2006-01-02"

// defaultDueIn is used when an assignment carries no due date.
const defaultDueIn = 7 * 24 * time.Hour

var transitions = map[Status][]Status{
	StatusInProgress:    {StatusPendingReview},
	StatusReturned:      {StatusPendingReview},
	StatusPendingReview: {StatusReturned, StatusCompleted},
	StatusCompleted:     {},
}

func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Submittable reports whether an annotator may send a task with this status
// to review.
func Submittable(s Status) bool {
	return CanTransition(s, StatusPendingReview)
}

func (t *Task) transition(to Status) error {
	if !CanTransition(t.Status, to) {
		return cerr.NewError(
			cerr.FailedPrecondition,
			fmt.Sprintf("task %s cannot move from %q to %q", t.ID, t.Status, to),
			ErrInvalidTransition,
		)
	}
	t.Status = to
	return nil
}

// Submit moves an In Progress or Returned task to Pending Review.
func Submit(t *Task) error {
	return t.transition(StatusPendingReview)
}

// Return sends a task under review back to the annotator with feedback.
func Return(t *Task, note string, errorTypes []string) error {
	if err := t.transition(StatusReturned); err != nil {
		return err
	}
	t.ReviewerNote = strings.TrimSpace(note)
	t.ErrorTypes = cloneStrings(errorTypes)
	return nil
}

// Approve completes a task under review.
func Approve(t *Task) error {
	if err := t.transition(StatusCompleted); err != nil {
		return err
	}
	t.Progress = 100
	return nil
}

type AssignRequest struct {
	ProjectName        string
	Dataset            string
	Preset             string
	Priority           Priority
	DueAt              string
	AIPrelabel         AIPrelabel
	Instructions       []string
	Checklist          []string
	Labels             []string
	AssignedAnnotators []string
	UploadedImages     []UploadedImage
}

// Assign builds a new In Progress task from a manager assignment.
func Assign(req *AssignRequest, now time.Time) (*Task, error) {
	if strings.TrimSpace(req.ProjectName) == "" {
		return nil, cerr.NewError(cerr.InvalidArgument, "project name is required", nil)
	}
	priority := req.Priority
	if priority == "" {
		priority = PriorityNormal
	}
	if !priority.Valid() {
		return nil, cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("unknown priority %q", priority), nil)
	}
	prelabel := req.AIPrelabel
	if prelabel == "" {
		prelabel = AIPrelabelOff
	}
	if !prelabel.Valid() {
		return nil, cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("unknown AI pre-label state %q", prelabel), nil)
	}
	due := req.DueAt
	if due == "" {
		due = now.Add(defaultDueIn).Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, due); err != nil {
		return nil, cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("due date %q is not YYYY-MM-DD", due), err)
	}

	return &Task{
		ID:                 "task-" + strings.ToLower(ulid.Make().String()),
		ProjectName:        strings.TrimSpace(req.ProjectName),
		Dataset:            req.Dataset,
		Preset:             req.Preset,
		Priority:           priority,
		Status:             StatusInProgress,
		AssignedAt:         now.Format(dateLayout),
		DueAt:              due,
		AIPrelabel:         prelabel,
		Instructions:       cloneStrings(req.Instructions),
		Checklist:          cloneStrings(req.Checklist),
		Labels:             cloneStrings(req.Labels),
		AssignedAnnotators: cloneStrings(req.AssignedAnnotators),
		UploadedImages:     append([]UploadedImage(nil), req.UploadedImages...),
	}, nil
}
