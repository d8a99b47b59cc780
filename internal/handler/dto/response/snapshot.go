package response

import (
	"time"

	"civicdesk/internal/usecase/queries"

	"github.com/google/uuid"
)

type SnapshotMetaResponse struct {
	Key       string    `json:"key"`
	RequestID uuid.UUID `json:"request_id"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func FromSnapshotMetaView(view *queries.SnapshotMetaView) *SnapshotMetaResponse {
	return &SnapshotMetaResponse{
		Key:       view.Key,
		RequestID: view.RequestID,
		Label:     view.Label,
		CreatedAt: view.CreatedAt,
	}
}
