package repository

import (
	"context"
	"time"

	"civicdesk/internal/infra"
	"civicdesk/internal/infra/db"

	"github.com/google/uuid"
)

// NotificationRepository writes outbox jobs. A separate worker owns
// delivery; this side only enqueues.
type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

const insertNotificationJobQuery = `
INSERT INTO notification_jobs (id, kind, topic, payload, status, run_at, created_at)
VALUES ($1, $2, $3, $4, 'pending', $5, $5)`

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := r.db.Exec(ctx, insertNotificationJobQuery, uuid.New(), kind, topic, payload, runAt)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}
