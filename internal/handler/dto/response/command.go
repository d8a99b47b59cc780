package response

import (
	"encoding/json"
	"time"

	"civicdesk/internal/usecase"
	"civicdesk/internal/usecase/queries"

	"github.com/google/uuid"
)

type CommandResultResponse struct {
	Request *RequestResponse `json:"request,omitempty"`
	CanUndo bool             `json:"can_undo"`
	CanRedo bool             `json:"can_redo"`
}

type CommandHistoryItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	RequestID  uuid.UUID       `json:"request_id"`
	Kind       string          `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	ExecutedAt time.Time       `json:"executed_at"`
	Stack      string          `json:"stack"`
}

type CommandAvailabilityResponse struct {
	CanUndo bool `json:"can_undo"`
	CanRedo bool `json:"can_redo"`
}

func FromCommandResult(res *usecase.CommandResult) *CommandResultResponse {
	out := &CommandResultResponse{
		CanUndo: res.CanUndo,
		CanRedo: res.CanRedo,
	}
	if res.Request != nil {
		out.Request = FromRecord(res.Request)
	}
	return out
}

func FromCommandView(view *queries.CommandView) *CommandHistoryItemResponse {
	return &CommandHistoryItemResponse{
		ID:         view.ID,
		RequestID:  view.RequestID,
		Kind:       view.Kind,
		Payload:    json.RawMessage(view.Payload),
		ExecutedAt: view.ExecutedAt,
		Stack:      view.Stack,
	}
}
