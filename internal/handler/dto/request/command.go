package request

import "github.com/google/uuid"

type ExecuteCommandRequest struct {
	Kind         string     `json:"kind" binding:"required"`
	RequestID    uuid.UUID  `json:"request_id" binding:"required"`
	NewStatus    *string    `json:"new_status,omitempty"`
	TechnicianID *uuid.UUID `json:"technician_id,omitempty"`
	Notes        string     `json:"notes"`
}
