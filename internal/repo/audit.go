package repo

import (
	"context"
	"database/sql"

	"github.com/sidelines/sidelines/internal/models"
)

// AuditRepo persists moderation log entries.
type AuditRepo struct {
	db *sql.DB
}

// NewAuditRepo returns a new AuditRepo.
func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// Log records that actorID performed action on a resource (e.g. delete_post on post 7).
func (r *AuditRepo) Log(ctx context.Context, actorID int, action, resourceType string, resourceID int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (actor_id, action, resource_type, resource_id) VALUES ($1, $2, $3, $4)`,
		actorID, action, resourceType, resourceID,
	)
	return err
}

// List returns recent entries, newest first.
func (r *AuditRepo) List(ctx context.Context, limit, offset int) ([]models.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, actor_id, action, resource_type, resource_id, created_at FROM audit_log ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.ResourceType, &e.ResourceID, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
