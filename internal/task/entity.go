package task

type Status string

const (
	StatusInProgress    Status = "In Progress"
	StatusPendingReview Status = "Pending Review"
	StatusReturned      Status = "Returned"
	StatusCompleted     Status = "Completed"
)

var Statuses = []Status{StatusInProgress, StatusPendingReview, StatusReturned, StatusCompleted}

func (s Status) Valid() bool {
	switch s {
	case StatusInProgress, StatusPendingReview, StatusReturned, StatusCompleted:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityNormal Priority = "Normal"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

type AIPrelabel string

const (
	AIPrelabelReady   AIPrelabel = "Ready"
	AIPrelabelRunning AIPrelabel = "Running"
	AIPrelabelOff     AIPrelabel = "Off"
)

func (a AIPrelabel) Valid() bool {
	switch a {
	case AIPrelabelReady, AIPrelabelRunning, AIPrelabelOff:
		return true
	}
	return false
}

// UploadedImage is one dataset item, carried inline as a data URL.
type UploadedImage struct {
	Name    string `yaml:"name"`
	DataURL string `yaml:"data_url"`
}

// Task is one unit of labeling work. Only Status, Progress, ReviewerNote and
// ErrorTypes change after assignment.
type Task struct {
	ID                 string          `yaml:"id"`
	ProjectName        string          `yaml:"project_name"`
	Dataset            string          `yaml:"dataset"`
	Preset             string          `yaml:"preset"`
	Priority           Priority        `yaml:"priority"`
	Status             Status          `yaml:"status"`
	AssignedAt         string          `yaml:"assigned_at"`
	DueAt              string          `yaml:"due_at"`
	AIPrelabel         AIPrelabel      `yaml:"ai_prelabel"`
	Progress           int             `yaml:"progress"`
	Instructions       []string        `yaml:"instructions,omitempty"`
	Checklist          []string        `yaml:"checklist,omitempty"`
	Labels             []string        `yaml:"labels,omitempty"`
	ReviewerNote       string          `yaml:"reviewer_note,omitempty"`
	ErrorTypes         []string        `yaml:"error_types,omitempty"`
	AssignedAnnotators []string        `yaml:"assigned_annotators,omitempty"`
	UploadedImages     []UploadedImage `yaml:"uploaded_images,omitempty"`
}

func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	c.Instructions = cloneStrings(t.Instructions)
	c.Checklist = cloneStrings(t.Checklist)
	c.Labels = cloneStrings(t.Labels)
	c.ErrorTypes = cloneStrings(t.ErrorTypes)
	c.AssignedAnnotators = cloneStrings(t.AssignedAnnotators)
	if t.UploadedImages != nil {
		c.UploadedImages = append([]UploadedImage(nil), t.UploadedImages...)
	}
	return &c
}

func CloneAll(tasks []*Task) []*Task {
	out := make([]*Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
