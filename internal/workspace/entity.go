package workspace

import (
	"reflect"
	"time"

	"github.com/kazz187/labelguild/internal/task"
)

type Source string

const (
	SourceStore       Source = "store"
	SourceSample      Source = "sample"
	SourcePlaceholder Source = "placeholder"
)

// View is what an annotator works on. Status, ReviewerNote and ErrorTypes
// follow the store but are not part of the view's identity: a review
// decision alone does not reset the workspace.
type View struct {
	ID             string
	ProjectName    string
	Dataset        string
	ItemName       string
	Preset         string
	AIPrelabel     task.AIPrelabel
	Instructions   []string
	Checklist      []string
	Labels         []string
	UploadedImages []task.UploadedImage
	Source         Source

	Status       task.Status
	ReviewerNote string
	ErrorTypes   []string
}

func (v *View) clone() *View {
	c := *v
	c.Instructions = append([]string(nil), v.Instructions...)
	c.Checklist = append([]string(nil), v.Checklist...)
	c.Labels = append([]string(nil), v.Labels...)
	c.UploadedImages = append([]task.UploadedImage(nil), v.UploadedImages...)
	c.ErrorTypes = append([]string(nil), v.ErrorTypes...)
	return &c
}

// sameContent compares everything except the review fields.
func (v *View) sameContent(o *View) bool {
	if v == nil || o == nil {
		return v == o
	}
	a, b := *v, *o
	a.Status, b.Status = "", ""
	a.ReviewerNote, b.ReviewerNote = "", ""
	a.ErrorTypes, b.ErrorTypes = nil, nil
	return reflect.DeepEqual(a, b)
}

// Draft is the persisted part of a workspace.
type Draft struct {
	TaskID    string    `yaml:"task_id"`
	Checked   []bool    `yaml:"checked"`
	Labels    []string  `yaml:"labels"`
	AIApplied bool      `yaml:"ai_applied"`
	Submitted bool      `yaml:"submitted"`
	UpdatedAt time.Time `yaml:"updated_at"`
}
