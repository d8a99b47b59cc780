package response

import (
	"time"

	"civicdesk/internal/domain/request"
	"civicdesk/internal/usecase/queries"

	"github.com/google/uuid"
)

type RequestResponse struct {
	ID          uuid.UUID  `json:"id"`
	Status      string     `json:"status"`
	Category    string     `json:"category"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Priority    string     `json:"priority"`
	RequesterID uuid.UUID  `json:"requester_id"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type AuditEntryResponse struct {
	ID        int64     `json:"id"`
	ActorID   uuid.UUID `json:"actor_id"`
	OldStatus *string   `json:"old_status,omitempty"`
	NewStatus string    `json:"new_status"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

type RequestDetailResponse struct {
	Request RequestResponse      `json:"request"`
	Updates []AuditEntryResponse `json:"updates"`
}

func FromRecord(rec *request.Record) *RequestResponse {
	return &RequestResponse{
		ID:          rec.ID,
		Status:      rec.Status.String(),
		Category:    rec.Category,
		Title:       rec.Title,
		Description: rec.Description,
		Location:    rec.Location,
		Priority:    rec.Priority.String(),
		RequesterID: rec.RequesterID,
		AssignedTo:  rec.AssignedTo,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func FromRequestView(view *queries.RequestView) *RequestResponse {
	return &RequestResponse{
		ID:          view.ID,
		Status:      view.Status,
		Category:    view.Category,
		Title:       view.Title,
		Description: view.Description,
		Location:    view.Location,
		Priority:    view.Priority,
		RequesterID: view.RequesterID,
		AssignedTo:  view.AssignedTo,
		CreatedAt:   view.CreatedAt,
		UpdatedAt:   view.UpdatedAt,
	}
}

func FromRequestDetailView(view *queries.RequestDetailView) *RequestDetailResponse {
	updates := make([]AuditEntryResponse, len(view.Updates))
	for i, u := range view.Updates {
		updates[i] = AuditEntryResponse{
			ID:        u.ID,
			ActorID:   u.ActorID,
			OldStatus: u.OldStatus,
			NewStatus: u.NewStatus,
			Notes:     u.Notes,
			CreatedAt: u.CreatedAt,
		}
	}
	return &RequestDetailResponse{
		Request: *FromRequestView(&view.Request),
		Updates: updates,
	}
}
