package repository

import (
	"context"
	"time"

	"civicdesk/internal/domain/request"
	"civicdesk/internal/infra"
	"civicdesk/internal/infra/db"
	"civicdesk/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RequestRepository struct {
	db db.DBTX
}

func NewRequestRepository(dbtx db.DBTX) *RequestRepository {
	return &RequestRepository{db: dbtx}
}

const insertRequestQuery = `
INSERT INTO service_requests (
    id, status, category, title, description, location,
    priority, requester_id, assigned_to, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

func (r *RequestRepository) Create(ctx context.Context, req *request.ServiceRequest) (uuid.UUID, error) {
	_, err := r.db.Exec(ctx, insertRequestQuery,
		req.ID(),
		req.Status().String(),
		req.Category().String(),
		req.Title().String(),
		req.Description().String(),
		req.Location().String(),
		req.Priority().String(),
		req.RequesterID(),
		pgconv.PgUUIDPtr(req.AssignedTo()),
		req.CreatedAt(),
		req.UpdatedAt(),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create service request", err)
	}
	return req.ID(), nil
}

const selectRequestForUpdateQuery = `
SELECT id, status, category, title, description, location,
       priority, requester_id, assigned_to, created_at, updated_at
FROM service_requests
WHERE id = $1
FOR UPDATE`

// GetForUpdate locks the row for the rest of the transaction so the
// legality check and the write that follows cannot interleave with a
// concurrent transition on the same request.
func (r *RequestRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*request.Record, error) {
	row := r.db.QueryRow(ctx, selectRequestForUpdateQuery, id)
	rec, err := scanRequestRecord(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock service request", err)
	}
	return rec, nil
}

const updateRequestStatusQuery = `
UPDATE service_requests SET status = $2, updated_at = $3 WHERE id = $1`

func (r *RequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, to request.Status, now time.Time) error {
	tag, err := r.db.Exec(ctx, updateRequestStatusQuery, id, to.String(), now)
	if err != nil {
		return infra.WrapRepoErr("failed to update request status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("service request not found", nil, infra.KindNotFound)
	}
	return nil
}

const updateRequestAssignmentQuery = `
UPDATE service_requests SET assigned_to = $2, updated_at = $3 WHERE id = $1`

func (r *RequestRepository) UpdateAssignment(ctx context.Context, id uuid.UUID, technicianID *uuid.UUID, now time.Time) error {
	tag, err := r.db.Exec(ctx, updateRequestAssignmentQuery, id, pgconv.PgUUIDPtr(technicianID), now)
	if err != nil {
		return infra.WrapRepoErr("failed to update request assignment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("service request not found", nil, infra.KindNotFound)
	}
	return nil
}

const overwriteRequestQuery = `
UPDATE service_requests
SET status = $2, category = $3, title = $4, description = $5,
    location = $6, priority = $7, requester_id = $8, assigned_to = $9,
    created_at = $10, updated_at = $11
WHERE id = $1`

// Overwrite replaces every column, timestamps included. Snapshot
// restore depends on this being a full replacement and not a merge.
func (r *RequestRepository) Overwrite(ctx context.Context, rec request.Record) error {
	tag, err := r.db.Exec(ctx, overwriteRequestQuery,
		rec.ID,
		rec.Status.String(),
		rec.Category,
		rec.Title,
		rec.Description,
		rec.Location,
		rec.Priority.String(),
		rec.RequesterID,
		pgconv.PgUUIDPtr(rec.AssignedTo),
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to overwrite service request", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("service request not found", nil, infra.KindNotFound)
	}
	return nil
}

const selectRequestQuery = `
SELECT id, status, category, title, description, location,
       priority, requester_id, assigned_to, created_at, updated_at
FROM service_requests
WHERE id = $1`

// Get loads without a lock, for reads outside a write transaction.
func (r *RequestRepository) Get(ctx context.Context, id uuid.UUID) (*request.Record, error) {
	row := r.db.QueryRow(ctx, selectRequestQuery, id)
	rec, err := scanRequestRecord(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get service request", err)
	}
	return rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequestRecord(row rowScanner) (*request.Record, error) {
	var (
		id          pgtype.UUID
		status      string
		category    string
		title       string
		description string
		location    string
		priority    string
		requesterID pgtype.UUID
		assignedTo  pgtype.UUID
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	err := row.Scan(
		&id, &status, &category, &title, &description, &location,
		&priority, &requesterID, &assignedTo, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &request.Record{
		ID:          pgconv.UUIDFromPgtype(id),
		Status:      request.Status(status),
		Category:    category,
		Title:       title,
		Description: description,
		Location:    location,
		Priority:    request.Priority(priority),
		RequesterID: pgconv.UUIDFromPgtype(requesterID),
		AssignedTo:  pgconv.UUIDPtrFromPgtype(assignedTo),
		CreatedAt:   pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:   pgconv.TimeFromPgtype(updatedAt),
	}, nil
}
