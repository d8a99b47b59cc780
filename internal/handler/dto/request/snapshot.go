package request

import "github.com/google/uuid"

type CreateSnapshotRequest struct {
	RequestID uuid.UUID `json:"request_id" binding:"required"`
	Label     string    `json:"label"`
}

type RestoreSnapshotRequest struct {
	Key string `json:"key" binding:"required"`
}
