package task

import labelguildv1 "github.com/kazz187/labelguild/api/labelguildv1"

func ToWire(t *Task) *labelguildv1.Task {
	if t == nil {
		return nil
	}
	w := &labelguildv1.Task{
		ID:                 t.ID,
		ProjectName:        t.ProjectName,
		Dataset:            t.Dataset,
		Preset:             t.Preset,
		Priority:           string(t.Priority),
		Status:             string(t.Status),
		AssignedAt:         t.AssignedAt,
		DueAt:              t.DueAt,
		AIPrelabel:         string(t.AIPrelabel),
		Progress:           int32(t.Progress),
		Instructions:       cloneStrings(t.Instructions),
		Checklist:          cloneStrings(t.Checklist),
		Labels:             cloneStrings(t.Labels),
		ReviewerNote:       t.ReviewerNote,
		ErrorTypes:         cloneStrings(t.ErrorTypes),
		AssignedAnnotators: cloneStrings(t.AssignedAnnotators),
	}
	for _, img := range t.UploadedImages {
		w.UploadedImages = append(w.UploadedImages, &labelguildv1.UploadedImage{Name: img.Name, DataURL: img.DataURL})
	}
	return w
}

func ToWireAll(tasks []*Task) []*labelguildv1.Task {
	out := make([]*labelguildv1.Task, len(tasks))
	for i, t := range tasks {
		out[i] = ToWire(t)
	}
	return out
}

func FromWire(w *labelguildv1.Task) *Task {
	if w == nil {
		return nil
	}
	t := &Task{
		ID:                 w.ID,
		ProjectName:        w.ProjectName,
		Dataset:            w.Dataset,
		Preset:             w.Preset,
		Priority:           Priority(w.Priority),
		Status:             Status(w.Status),
		AssignedAt:         w.AssignedAt,
		DueAt:              w.DueAt,
		AIPrelabel:         AIPrelabel(w.AIPrelabel),
		Progress:           int(w.Progress),
		Instructions:       cloneStrings(w.Instructions),
		Checklist:          cloneStrings(w.Checklist),
		Labels:             cloneStrings(w.Labels),
		ReviewerNote:       w.ReviewerNote,
		ErrorTypes:         cloneStrings(w.ErrorTypes),
		AssignedAnnotators: cloneStrings(w.AssignedAnnotators),
	}
	for _, img := range w.UploadedImages {
		if img != nil {
			t.UploadedImages = append(t.UploadedImages, UploadedImage{Name: img.Name, DataURL: img.DataURL})
		}
	}
	return t
}

func CountsToWire(c Counts) *labelguildv1.TaskCounts {
	return &labelguildv1.TaskCounts{
		Total:         int32(c.Total),
		InProgress:    int32(c.InProgress),
		PendingReview: int32(c.PendingReview),
		Returned:      int32(c.Returned),
		Completed:     int32(c.Completed),
	}
}
