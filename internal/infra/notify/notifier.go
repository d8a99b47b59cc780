package notify

import (
	"context"
	"encoding/json"

	"civicdesk/internal/domain/request"
	"civicdesk/internal/infra"
	"civicdesk/internal/pkg/clock"
	"civicdesk/internal/usecase/shared"
)

const jobKindEmail = "email"

type statusChangedPayload struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
	Category  string `json:"category"`
	Title     string `json:"title"`
}

// OutboxNotifier turns status-changed events into pending rows in the
// notification_jobs table. Delivery is a separate worker's problem.
type OutboxNotifier struct {
	jobs  shared.NotificationRepository
	clock clock.Clock
}

func NewOutboxNotifier(jobs shared.NotificationRepository, clk clock.Clock) *OutboxNotifier {
	return &OutboxNotifier{jobs: jobs, clock: clk}
}

func (n *OutboxNotifier) StatusChanged(ctx context.Context, rec request.Record) error {
	payload, err := json.Marshal(statusChangedPayload{
		Type:      "request_status_changed",
		RequestID: rec.ID.String(),
		Status:    rec.Status.String(),
		Category:  rec.Category,
		Title:     rec.Title,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to encode notification payload", err, infra.KindDBFailure)
	}

	topic := "request_" + rec.Status.String()
	return n.jobs.CreateJob(ctx, jobKindEmail, topic, payload, n.clock.Now())
}
