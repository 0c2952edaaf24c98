package labelguildv1

// Source tells where a workspace view was resolved from.
const (
	SourceStore       = "store"
	SourceSample      = "sample"
	SourcePlaceholder = "placeholder"
)

type Workspace struct {
	SessionID   string   `json:"sessionId"`
	Task        *Task    `json:"task"`
	Source      string   `json:"source"`
	ItemName    string   `json:"itemName"`
	Checked     []bool   `json:"checked"`
	Labels      []string `json:"labels"`
	AIApplied   bool     `json:"aiApplied"`
	Submitted   bool     `json:"submitted"`
	Confirming  bool     `json:"confirming"`
	ActiveImage int32    `json:"activeImage"`
	AllChecked  bool     `json:"allChecked"`
	CanSubmit   bool     `json:"canSubmit"`
	// Advisory is set while submission is blocked by the checklist.
	Advisory string `json:"advisory,omitempty"`
}

type WorkspaceResponse struct {
	Workspace *Workspace `json:"workspace"`
}

type OpenWorkspaceRequest struct {
	TaskID string `json:"taskId"`
}

func (r *OpenWorkspaceRequest) LogAttrs() map[string]any { return map[string]any{"task_id": r.TaskID} }

// SessionRequest addresses an open workspace without further arguments.
type SessionRequest struct {
	SessionID string `json:"sessionId"`
}

func (r *SessionRequest) LogAttrs() map[string]any { return map[string]any{"session_id": r.SessionID} }

type ToggleChecklistItemRequest struct {
	SessionID string `json:"sessionId"`
	Index     int32  `json:"index"`
}

func (r *ToggleChecklistItemRequest) LogAttrs() map[string]any {
	return map[string]any{"session_id": r.SessionID}
}

type AddLabelRequest struct {
	SessionID string `json:"sessionId"`
	Label     string `json:"label"`
}

func (r *AddLabelRequest) LogAttrs() map[string]any { return map[string]any{"session_id": r.SessionID} }

type AddLabelResponse struct {
	Workspace *Workspace `json:"workspace"`
	Added     bool       `json:"added"`
}

type SelectImageRequest struct {
	SessionID string `json:"sessionId"`
	Index     int32  `json:"index"`
}

func (r *SelectImageRequest) LogAttrs() map[string]any { return map[string]any{"session_id": r.SessionID} }

type CloseWorkspaceResponse struct{}
