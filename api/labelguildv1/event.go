package labelguildv1

import "time"

type Event struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	ResourceID string            `json:"resourceId,omitempty"`
	Origin     string            `json:"origin,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}

type SubscribeEventsRequest struct {
	// EventTypes filters the stream. Empty means every type.
	EventTypes []string `json:"eventTypes,omitempty"`
}
