package eventbus

import "time"

type EventType string

const (
	// EventTypeTasksUpdated is raised in the writer's own process right after
	// the task store has been rewritten.
	EventTypeTasksUpdated EventType = "tasks.updated"
	// EventTypeStorageChanged is raised when another process rewrote the
	// shared task store.
	EventTypeStorageChanged EventType = "storage.changed"

	EventTypeTaskAssigned  EventType = "task.assigned"
	EventTypeTaskSubmitted EventType = "task.submitted"
	EventTypeTaskReturned  EventType = "task.returned"
	EventTypeTaskApproved  EventType = "task.approved"
)

// Event carries no task data. Receivers re-read the store.
type Event struct {
	ID         string            `json:"id"`
	Type       EventType         `json:"type"`
	ResourceID string            `json:"resource_id,omitempty"`
	Origin     string            `json:"origin,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// IsStoreChange reports whether receivers should re-read the task store.
func (e *Event) IsStoreChange() bool {
	return e.Type == EventTypeTasksUpdated || e.Type == EventTypeStorageChanged
}
