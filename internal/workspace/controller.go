package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/kazz187/labelguild/internal/task"
	"github.com/kazz187/labelguild/pkg/cerr"
)

const AdvisoryChecklistIncomplete = "Complete the checklist before submitting for review."

var (
	ErrChecklistIncomplete = errors.New("checklist incomplete")
	ErrAlreadySubmitted    = errors.New("already submitted")
	ErrNoPendingSubmission = errors.New("no submission pending")
)

// Controller holds the transient state of one workspace.
type Controller struct {
	mu     sync.Mutex
	store  task.Store
	drafts DraftRepository
	now    func() time.Time

	view        *View
	checked     []bool
	labels      []string
	aiApplied   bool
	submitted   bool
	confirming  bool
	activeImage int
}

type Option func(*Controller)

// WithDraftRepository persists checklist, labels and submission flags so
// that a workspace survives a restart.
func WithDraftRepository(repo DraftRepository) Option {
	return func(c *Controller) {
		c.drafts = repo
	}
}

func NewController(ctx context.Context, store task.Store, view *View, opts ...Option) *Controller {
	c := &Controller{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.reset(view)
	c.restore(ctx)
	return c
}

func (c *Controller) reset(view *View) {
	c.view = view
	c.checked = make([]bool, len(view.Checklist))
	c.labels = append([]string(nil), view.Labels...)
	c.aiApplied = view.AIPrelabel == task.AIPrelabelReady
	c.submitted = false
	c.confirming = false
	c.activeImage = 0
}

func (c *Controller) restore(ctx context.Context) {
	if c.drafts == nil {
		return
	}
	d, err := c.drafts.Get(ctx, c.view.ID)
	if err != nil {
		if !cerr.IsCode(err, cerr.NotFound) {
			slog.Warn("workspace: failed to load draft", "task_id", c.view.ID, "error", err)
		}
		return
	}
	if len(d.Checked) == len(c.checked) {
		copy(c.checked, d.Checked)
	}
	if len(d.Labels) > 0 {
		c.labels = append([]string(nil), d.Labels...)
	}
	c.aiApplied = c.aiApplied || d.AIApplied
	c.submitted = d.Submitted
}

func (c *Controller) save(ctx context.Context) {
	if c.drafts == nil {
		return
	}
	err := c.drafts.Save(ctx, &Draft{
		TaskID:    c.view.ID,
		Checked:   append([]bool(nil), c.checked...),
		Labels:    append([]string(nil), c.labels...),
		AIApplied: c.aiApplied,
		Submitted: c.submitted,
		UpdatedAt: c.now(),
	})
	if err != nil {
		slog.Warn("workspace: failed to save draft", "task_id", c.view.ID, "error", err)
	}
}

// Reload swaps in a freshly resolved view. State is re-initialized only when
// the view's content changed; it reports whether that happened.
func (c *Controller) Reload(ctx context.Context, view *View) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view.sameContent(view) {
		returnedAgain := c.submitted && view.Status != c.view.Status && task.Submittable(view.Status)
		c.view.Status = view.Status
		c.view.ReviewerNote = view.ReviewerNote
		c.view.ErrorTypes = view.ErrorTypes
		if returnedAgain {
			c.submitted = false
			c.save(ctx)
		}
		return false
	}
	c.reset(view)
	c.save(ctx)
	return true
}

func (c *Controller) ToggleChecklist(ctx context.Context, index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.checked) {
		return false
	}
	c.checked[index] = !c.checked[index]
	c.save(ctx)
	return true
}

func (c *Controller) allChecked() bool {
	for _, ok := range c.checked {
		if !ok {
			return false
		}
	}
	return true
}

func (c *Controller) AllChecked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.allChecked()
}

func (c *Controller) canSubmit() bool {
	return c.allChecked() && !c.submitted && task.Submittable(c.view.Status)
}

func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canSubmit()
}

// Advisory returns the hint shown while the checklist blocks submission.
func (c *Controller) Advisory() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.advisory()
}

func (c *Controller) advisory() string {
	if c.allChecked() {
		return ""
	}
	return AdvisoryChecklistIncomplete
}

func (c *Controller) submitBlocker() error {
	switch {
	case !c.allChecked():
		e := cerr.NewError(cerr.FailedPrecondition, AdvisoryChecklistIncomplete, ErrChecklistIncomplete)
		for i, item := range c.view.Checklist {
			if !c.checked[i] {
				e.AddDetailMessage(fmt.Sprintf("unchecked: %s", item))
			}
		}
		return e
	case c.submitted:
		return cerr.NewError(cerr.FailedPrecondition, "task already submitted for review", ErrAlreadySubmitted)
	case !task.Submittable(c.view.Status):
		return cerr.NewError(cerr.FailedPrecondition,
			fmt.Sprintf("task in status %q cannot be submitted", c.view.Status), task.ErrInvalidTransition)
	}
	return nil
}

// RequestSubmit opens the confirmation step.
func (c *Controller) RequestSubmit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.submitBlocker(); err != nil {
		return err
	}
	c.confirming = true
	return nil
}

func (c *Controller) CancelSubmit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirming = false
}

// ConfirmSubmit moves the task to Pending Review. Tasks the store does not
// know, such as the placeholder, are only marked submitted locally.
func (c *Controller) ConfirmSubmit(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.confirming {
		return cerr.NewError(cerr.FailedPrecondition, "no submission pending confirmation", ErrNoPendingSubmission)
	}
	if err := c.submitBlocker(); err != nil {
		c.confirming = false
		return err
	}

	_, err := c.store.Update(ctx, c.view.ID, task.Submit)
	switch {
	case err == nil:
		c.view.Status = task.StatusPendingReview
	case cerr.IsCode(err, cerr.NotFound):
		slog.Info("workspace: task not in store, submitted locally", "task_id", c.view.ID)
	default:
		return err
	}
	c.submitted = true
	c.confirming = false
	c.save(ctx)
	return nil
}

// AddLabel appends a trimmed label. Empty input and exact duplicates are
// ignored.
func (c *Controller) AddLabel(ctx context.Context, label string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	label = strings.TrimSpace(label)
	if label == "" || slices.Contains(c.labels, label) {
		return false
	}
	c.labels = append(c.labels, label)
	c.save(ctx)
	return true
}

func (c *Controller) ApplyAIPrelabels(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.aiApplied {
		return
	}
	c.aiApplied = true
	c.save(ctx)
}

func (c *Controller) SelectImage(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.view.UploadedImages) {
		return false
	}
	c.activeImage = index
	return true
}

type Snapshot struct {
	View          *View
	Checked       []bool
	Labels        []string
	AIApplied     bool
	Submitted     bool
	Confirming    bool
	ActiveImage   int
	AllChecked    bool
	CanSubmit     bool
	Advisory      string
	DisplayStatus task.Status
}

func (c *Controller) Snapshot() *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := &Snapshot{
		View:          c.view.clone(),
		Checked:       append([]bool(nil), c.checked...),
		Labels:        append([]string(nil), c.labels...),
		AIApplied:     c.aiApplied,
		Submitted:     c.submitted,
		Confirming:    c.confirming,
		ActiveImage:   c.activeImage,
		AllChecked:    c.allChecked(),
		CanSubmit:     c.canSubmit(),
		Advisory:      c.advisory(),
		DisplayStatus: c.view.Status,
	}
	if c.submitted {
		s.DisplayStatus = task.StatusPendingReview
	}
	return s
}
