package task

import "slices"

// DefaultTasks returns the built-in catalog that is always visible, even
// before any assignment has been persisted. Each call returns fresh copies.
func DefaultTasks() []*Task {
	return []*Task{
		{
			ID:          "task-100",
			ProjectName: "Retail Shelf Audit",
			Dataset:     "Shelf-Images-Set-3",
			Priority:    PriorityHigh,
			Status:      StatusInProgress,
			AssignedAt:  "2026-02-26",
			DueAt:       "2026-03-05",
			AIPrelabel:  AIPrelabelReady,
			Preset:      "Retail SKU V2",
			Progress:    45,
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
		},
		{
			ID:          "task-101",
			ProjectName: "Street Scene Vehicles",
			Dataset:     "Urban-Cam-12",
			Priority:    PriorityNormal,
			Status:      StatusPendingReview,
			AssignedAt:  "2026-02-24",
			DueAt:       "2026-03-02",
			AIPrelabel:  AIPrelabelReady,
			Preset:      "Vehicle Boxes",
			Progress:    100,
			Instructions: []string{
				"Label cars, buses, bikes, and trucks.",
				"Tight box around vehicle body.",
			},
			Checklist: []string{"All vehicles labeled", "Boxes are tight"},
		},
		{
			ID:          "task-102",
			ProjectName: "Medical Scan Classification",
			Dataset:     "CT-Slice-22",
			Priority:    PriorityNormal,
			Status:      StatusReturned,
			AssignedAt:  "2026-02-18",
			DueAt:       "2026-03-01",
			AIPrelabel:  AIPrelabelOff,
			Preset:      "CT Findings",
			Progress:    80,
			Instructions: []string{
				"Assign one primary finding per slice.",
				"Use `Uncertain` when ambiguous.",
			},
			Checklist:    []string{"Single class per slice", "No missing slices"},
			ReviewerNote: "Check slices 14-20 for missing hemorrhage labels.",
			ErrorTypes:   []string{"Missed label", "Incorrect class"},
		},
		{
			ID:          "task-103",
			ProjectName: "Document Entities",
			Dataset:     "Contracts-Set-1",
			Priority:    PriorityLow,
			Status:      StatusCompleted,
			AssignedAt:  "2026-02-12",
			DueAt:       "2026-02-19",
			AIPrelabel:  AIPrelabelReady,
			Preset:      "NER Basic",
			Progress:    100,
			Instructions: []string{
				"Tag PERSON, ORG, DATE entities.",
				"Ignore boilerplate signatures.",
			},
			Checklist: []string{"Entities tagged", "No overlapping spans"},
		},
	}
}

// IsDefault reports whether t still carries the built-in assignment of the
// default task with the same id. Review state is ignored.
func IsDefault(t *Task) bool {
	d, ok := Find(DefaultTasks(), t.ID)
	if !ok {
		return false
	}
	return t.ProjectName == d.ProjectName &&
		t.Dataset == d.Dataset &&
		t.Preset == d.Preset &&
		t.AIPrelabel == d.AIPrelabel &&
		slices.Equal(t.Instructions, d.Instructions) &&
		slices.Equal(t.Checklist, d.Checklist) &&
		slices.Equal(t.Labels, d.Labels) &&
		len(t.UploadedImages) == 0
}
