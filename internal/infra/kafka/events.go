package kafka

import "time"

// Stream change actions carried by StreamChangedEvent.
const (
	ActionCreated     = "created"
	ActionUpdated     = "updated"
	ActionDeleted     = "deleted"
	ActionFeatured    = "featured"
	ActionUnfeatured  = "unfeatured"
	ActionActivated   = "activated"
	ActionDeactivated = "deactivated"
)

// StreamChangedEvent announces that one or more catalog streams changed.
type StreamChangedEvent struct {
	Action     string    `json:"action"`
	StreamIDs  []int64   `json:"stream_ids"`
	OccurredAt time.Time `json:"occurred_at"`
}

// WatchTrackedEvent mirrors a freshly recorded watch event.
type WatchTrackedEvent struct {
	ID            int64     `json:"id"`
	StreamID      int64     `json:"stream_id"`
	DeviceID      string    `json:"device_id"`
	WatchDuration int       `json:"watch_duration"`
	Completed     bool      `json:"completed"`
	WatchedAt     time.Time `json:"watched_at"`
}
