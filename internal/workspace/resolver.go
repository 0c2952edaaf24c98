package workspace

import (
	"context"

	"github.com/kazz187/labelguild/internal/task"
)

const (
	fallbackItemName     = "item_001.png"
	fallbackProjectName  = "Assigned Project"
	fallbackDataset      = "Manager uploaded dataset"
	fallbackPreset       = "Custom preset"
	fallbackInstruction  = "Follow manager instructions before labeling."
	fallbackChecklistRow = "Checklist completed"
)

var fallbackLabels = []string{"Label A", "Label B"}

var samples = map[string]*View{
	"task-100": {
		ID:          "task-100",
		ProjectName: "Retail Shelf Audit",
		Dataset:     "Shelf-Images-Set-3",
		ItemName:    "shelf_043.png",
		Preset:      "Retail SKU V2",
		AIPrelabel:  task.AIPrelabelReady,
		Instructions: []string{
			"Draw bounding boxes around every SKU facing.",
			"Include partially occluded items if the brand is readable.",
			"Use label `Other` for unreadable brands.",
		},
		Checklist: []string{
			"All visible SKUs are labeled",
			"No overlapping boxes for same SKU",
			"Brand label is assigned",
		},
		Labels: []string{"Cereal", "Snack", "Soda", "Other"},
	},
	"task-101": {
		ID:          "task-101",
		ProjectName: "Street Scene Vehicles",
		Dataset:     "Urban-Cam-12",
		ItemName:    "frame_0192.jpg",
		Preset:      "Vehicle Boxes",
		AIPrelabel:  task.AIPrelabelReady,
		Instructions: []string{
			"Label cars, buses, bikes, and trucks.",
			"Tight box around vehicle body.",
		},
		Checklist: []string{"All vehicles labeled", "Boxes are tight"},
		Labels:    []string{"Car", "Bus", "Bike", "Truck"},
	},
	"task-102": {
		ID:          "task-102",
		ProjectName: "Medical Scan Classification",
		Dataset:     "CT-Slice-22",
		ItemName:    "slice_018.png",
		Preset:      "CT Findings",
		AIPrelabel:  task.AIPrelabelOff,
		Instructions: []string{
			"Assign one primary finding per slice.",
			"Use `Uncertain` when ambiguous.",
		},
		Checklist: []string{"Single class per slice", "No missing slices"},
		Labels:    []string{"Hemorrhage", "Mass", "Edema", "Uncertain"},
	},
}

var placeholder = &View{
	ID:           "task-new",
	ProjectName:  "New Assignment",
	Dataset:      "Unassigned",
	ItemName:     fallbackItemName,
	Preset:       "Default",
	AIPrelabel:   task.AIPrelabelRunning,
	Instructions: []string{"Follow project guidelines before labeling."},
	Checklist:    []string{"Labels reviewed", "Checklist completed"},
	Labels:       []string{"Label A", "Label B"},
}

type Resolver struct {
	store task.Store
}

func NewResolver(store task.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve looks the id up in the persisted collection, then in the sample
// map, then falls back to the placeholder. It never fails.
func (r *Resolver) Resolve(ctx context.Context, id string) *View {
	persisted, ok := r.store.ReadPersisted(ctx)
	return ResolveIn(persisted, ok, id)
}

// ResolveIn resolves id against an already read persisted collection. A
// persisted default that only differs in review state keeps its sample
// content.
func ResolveIn(persisted []*task.Task, ok bool, id string) *View {
	var stored *task.Task
	if ok && id != "" {
		stored, _ = task.Find(task.Merge(persisted, nil, task.PreferPersisted), id)
	}
	sample, isSample := samples[id]
	if stored != nil && !(isSample && task.IsDefault(stored)) {
		return Hydrate(stored)
	}

	var v *View
	if isSample {
		v = sample.clone()
		v.Source = SourceSample
	} else {
		v = placeholder.clone()
		v.Source = SourcePlaceholder
	}

	// Review state of sample and placeholder views still comes from the
	// store, which always holds the default tasks.
	merged := task.DefaultTasks()
	if ok {
		merged = task.Merge(persisted, merged, task.PreferPersisted)
	}
	v.Status = task.StatusInProgress
	if t, found := task.Find(merged, v.ID); found {
		v.Status = t.Status
		v.ReviewerNote = t.ReviewerNote
		v.ErrorTypes = append([]string(nil), t.ErrorTypes...)
	}
	return v
}

// Hydrate builds a view from a persisted task, filling in whatever an
// assignment left out.
func Hydrate(t *task.Task) *View {
	v := &View{
		ID:             t.ID,
		ProjectName:    orDefault(t.ProjectName, fallbackProjectName),
		Dataset:        orDefault(t.Dataset, fallbackDataset),
		ItemName:       fallbackItemName,
		Preset:         orDefault(t.Preset, fallbackPreset),
		AIPrelabel:     t.AIPrelabel,
		Instructions:   append([]string(nil), t.Instructions...),
		Checklist:      append([]string(nil), t.Checklist...),
		Labels:         append([]string(nil), t.Labels...),
		UploadedImages: append([]task.UploadedImage(nil), t.UploadedImages...),
		Source:         SourceStore,
		Status:         t.Status,
		ReviewerNote:   t.ReviewerNote,
		ErrorTypes:     append([]string(nil), t.ErrorTypes...),
	}
	if t.Instructions == nil {
		v.Instructions = []string{fallbackInstruction}
	}
	if t.Checklist == nil {
		v.Checklist = []string{fallbackChecklistRow}
	}
	if t.Labels == nil {
		v.Labels = append([]string(nil), fallbackLabels...)
	}
	if !v.AIPrelabel.Valid() {
		v.AIPrelabel = task.AIPrelabelOff
	}
	if !v.Status.Valid() {
		v.Status = task.StatusInProgress
	}
	if len(t.UploadedImages) > 0 && t.UploadedImages[0].Name != "" {
		v.ItemName = t.UploadedImages[0].Name
	}
	return v
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
