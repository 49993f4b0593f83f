package models

import "time"

// Event represents a loggable action in the platform's activity feed.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "blog.create", "user.register"
	Level     string    `json:"level"` // e.g., "info", "warn", "error"
	Message   string    `json:"message"`
	SubjectID *string   `json:"subjectId,omitempty"` // Nullable for system-wide events
	CreatedAt time.Time `json:"createdAt"`
}

// OrphanAsset is a remote asset known to be unreferenced, queued for the
// background sweeper to delete.
type OrphanAsset struct {
	PublicID string    `json:"public_id"`
	Reason   string    `json:"reason"`
	QueuedAt time.Time `json:"queuedAt"`
}
