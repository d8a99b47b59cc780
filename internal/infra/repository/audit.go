package repository

import (
	"context"

	"civicdesk/internal/infra"
	"civicdesk/internal/infra/db"
	"civicdesk/internal/usecase/shared"
)

// AuditRepository appends to request_updates. The table is append-only:
// there is no update or delete statement in this file on purpose.
type AuditRepository struct {
	db db.DBTX
}

func NewAuditRepository(dbtx db.DBTX) *AuditRepository {
	return &AuditRepository{db: dbtx}
}

const insertAuditEntryQuery = `
INSERT INTO request_updates (request_id, actor_id, old_status, new_status, notes, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

func (r *AuditRepository) Append(ctx context.Context, entry shared.AuditEntry) error {
	var oldStatus *string
	if entry.OldStatus != nil {
		s := entry.OldStatus.String()
		oldStatus = &s
	}

	_, err := r.db.Exec(ctx, insertAuditEntryQuery,
		entry.RequestID,
		entry.ActorID,
		oldStatus,
		entry.NewStatus.String(),
		entry.Notes,
		entry.CreatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to append audit entry", err)
	}
	return nil
}
