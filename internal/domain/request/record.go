package request

import (
	"time"

	"github.com/google/uuid"
)

// Record is the full persisted shape of a service request. It is the
// currency of the read side, the state entry/exit hooks, and the
// snapshot store (a memento's captured state is one immutable Record).
type Record struct {
	ID          uuid.UUID  `json:"id"`
	Status      Status     `json:"status"`
	Category    string     `json:"category"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Priority    Priority   `json:"priority"`
	RequesterID uuid.UUID  `json:"requester_id"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RecordFromEntity flattens an entity into its persisted shape.
func RecordFromEntity(r *ServiceRequest) Record {
	return Record{
		ID:          r.ID(),
		Status:      r.Status(),
		Category:    r.Category().String(),
		Title:       r.Title().String(),
		Description: r.Description().String(),
		Location:    r.Location().String(),
		Priority:    r.Priority(),
		RequesterID: r.RequesterID(),
		AssignedTo:  r.AssignedTo(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}
}
