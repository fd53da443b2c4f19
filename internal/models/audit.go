package models

import "time"

// AuditEntry represents one moderation log row.
type AuditEntry struct {
	ID           int       `json:"id"`
	ActorID      int       `json:"actor_id"`
	Action       string    `json:"action"`        // delete_post, grant_admin
	ResourceType string    `json:"resource_type"` // post, user
	ResourceID   int       `json:"resource_id"`
	CreatedAt    time.Time `json:"created_at"`
}
