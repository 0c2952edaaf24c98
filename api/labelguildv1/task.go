package labelguildv1

type UploadedImage struct {
	Name    string `json:"name"`
	DataURL string `json:"dataUrl,omitempty"`
}

type Task struct {
	ID                 string           `json:"id"`
	ProjectName        string           `json:"projectName"`
	Dataset            string           `json:"dataset"`
	Preset             string           `json:"preset"`
	Priority           string           `json:"priority"`
	Status             string           `json:"status"`
	AssignedAt         string           `json:"assignedAt"`
	DueAt              string           `json:"dueAt"`
	AIPrelabel         string           `json:"aiPrelabel"`
	Progress           int32            `json:"progress"`
	Instructions       []string         `json:"instructions,omitempty"`
	Checklist          []string         `json:"checklist,omitempty"`
	Labels             []string         `json:"labels,omitempty"`
	ReviewerNote       string           `json:"reviewerNote,omitempty"`
	ErrorTypes         []string         `json:"errorTypes,omitempty"`
	AssignedAnnotators []string         `json:"assignedAnnotators,omitempty"`
	UploadedImages     []*UploadedImage `json:"uploadedImages,omitempty"`
}

type TaskCounts struct {
	Total         int32 `json:"total"`
	InProgress    int32 `json:"inProgress"`
	PendingReview int32 `json:"pendingReview"`
	Returned      int32 `json:"returned"`
	Completed     int32 `json:"completed"`
}

type ListTasksRequest struct {
	Search   string `json:"search,omitempty"`
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
}

type ListTasksResponse struct {
	Tasks []*Task `json:"tasks"`
	// Counts cover the whole collection, not only the filtered tasks.
	Counts *TaskCounts `json:"counts"`
}

type GetTaskRequest struct {
	ID string `json:"id"`
}

func (r *GetTaskRequest) LogAttrs() map[string]any { return map[string]any{"task_id": r.ID} }

type GetTaskResponse struct {
	Task *Task `json:"task"`
}

type AssignTaskRequest struct {
	ProjectName        string           `json:"projectName"`
	Dataset            string           `json:"dataset,omitempty"`
	Preset             string           `json:"preset,omitempty"`
	Priority           string           `json:"priority,omitempty"`
	DueAt              string           `json:"dueAt,omitempty"`
	AIPrelabel         string           `json:"aiPrelabel,omitempty"`
	Instructions       []string         `json:"instructions,omitempty"`
	Checklist          []string         `json:"checklist,omitempty"`
	Labels             []string         `json:"labels,omitempty"`
	AssignedAnnotators []string         `json:"assignedAnnotators,omitempty"`
	UploadedImages     []*UploadedImage `json:"uploadedImages,omitempty"`
}

type AssignTaskResponse struct {
	Task *Task `json:"task"`
}

type ReturnTaskRequest struct {
	ID           string   `json:"id"`
	ReviewerNote string   `json:"reviewerNote"`
	ErrorTypes   []string `json:"errorTypes,omitempty"`
}

func (r *ReturnTaskRequest) LogAttrs() map[string]any { return map[string]any{"task_id": r.ID} }

type ReturnTaskResponse struct {
	Task *Task `json:"task"`
}

type ApproveTaskRequest struct {
	ID string `json:"id"`
}

func (r *ApproveTaskRequest) LogAttrs() map[string]any { return map[string]any{"task_id": r.ID} }

type ApproveTaskResponse struct {
	Task *Task `json:"task"`
}
