package request

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidStatus   = errors.New("invalid request status")
)

// ServiceRequest is a citizen-reported issue moving through the
// lifecycle state machine. Status is mutated only through the lifecycle
// engine's validated path or the privileged snapshot restore.
type ServiceRequest struct {
	id          uuid.UUID
	status      Status
	category    Category
	title       Title
	description Description
	location    Location
	priority    Priority
	requesterID uuid.UUID
	assignedTo  *uuid.UUID
	createdAt   time.Time
	updatedAt   time.Time
}

// NewServiceRequest creates a request in the pending status.
func NewServiceRequest(
	category Category,
	title Title,
	description Description,
	location Location,
	priority Priority,
	requesterID uuid.UUID,
	now time.Time,
) (*ServiceRequest, error) {
	if !priority.IsValid() {
		return nil, ErrInvalidPriority
	}

	return &ServiceRequest{
		id:          uuid.New(),
		status:      StatusPending,
		category:    category,
		title:       title,
		description: description,
		location:    location,
		priority:    priority,
		requesterID: requesterID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructServiceRequest rebuilds an entity from persisted state
// without re-running creation validation.
func ReconstructServiceRequest(
	id uuid.UUID,
	status Status,
	category Category,
	title Title,
	description Description,
	location Location,
	priority Priority,
	requesterID uuid.UUID,
	assignedTo *uuid.UUID,
	createdAt, updatedAt time.Time,
) *ServiceRequest {
	return &ServiceRequest{
		id:          id,
		status:      status,
		category:    category,
		title:       title,
		description: description,
		location:    location,
		priority:    priority,
		requesterID: requesterID,
		assignedTo:  assignedTo,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ApplyStatus records a status change that has already passed the
// registry's legality check. The engine owns that check; the entity
// only rejects values outside the enumerated set.
func (r *ServiceRequest) ApplyStatus(to Status, now time.Time) error {
	if !to.IsValid() {
		return ErrInvalidStatus
	}
	r.status = to
	r.updatedAt = now
	return nil
}

// Assign sets or clears the technician reference.
func (r *ServiceRequest) Assign(technicianID *uuid.UUID, now time.Time) {
	r.assignedTo = technicianID
	r.updatedAt = now
}

func (r *ServiceRequest) IsOpen() bool {
	return !r.status.IsTerminal()
}

func (r *ServiceRequest) ID() uuid.UUID            { return r.id }
func (r *ServiceRequest) Status() Status           { return r.status }
func (r *ServiceRequest) Category() Category       { return r.category }
func (r *ServiceRequest) Title() Title             { return r.title }
func (r *ServiceRequest) Description() Description { return r.description }
func (r *ServiceRequest) Location() Location       { return r.location }
func (r *ServiceRequest) Priority() Priority       { return r.priority }
func (r *ServiceRequest) RequesterID() uuid.UUID   { return r.requesterID }
func (r *ServiceRequest) AssignedTo() *uuid.UUID   { return r.assignedTo }
func (r *ServiceRequest) CreatedAt() time.Time     { return r.createdAt }
func (r *ServiceRequest) UpdatedAt() time.Time     { return r.updatedAt }
