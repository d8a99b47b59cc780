package readstore

import (
	"context"

	"civicdesk/internal/infra"
	"civicdesk/internal/infra/db"
	"civicdesk/internal/pkg/pgconv"
	"civicdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RequestReadStore struct {
	db db.DBTX
}

func NewRequestReadStore(dbtx db.DBTX) *RequestReadStore {
	return &RequestReadStore{db: dbtx}
}

const findRequestByIDQuery = `
SELECT id, status, category, title, description, location,
       priority, requester_id, assigned_to, created_at, updated_at
FROM service_requests
WHERE id = $1`

func (s *RequestReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RequestView, error) {
	row := s.db.QueryRow(ctx, findRequestByIDQuery, id)
	view, err := scanRequestView(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find service request", err)
	}
	return view, nil
}

const findRequestUpdatesQuery = `
SELECT id, request_id, actor_id, old_status, new_status, notes, created_at
FROM request_updates
WHERE request_id = $1
ORDER BY created_at ASC, id ASC`

func (s *RequestReadStore) FindUpdates(ctx context.Context, requestID uuid.UUID) ([]queries.AuditEntryView, error) {
	rows, err := s.db.Query(ctx, findRequestUpdatesQuery, requestID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list request updates", err)
	}
	defer rows.Close()

	views := make([]queries.AuditEntryView, 0)
	for rows.Next() {
		var (
			id        int64
			reqID     pgtype.UUID
			actorID   pgtype.UUID
			oldStatus pgtype.Text
			newStatus string
			notes     string
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &reqID, &actorID, &oldStatus, &newStatus, &notes, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan request update row", err)
		}
		views = append(views, queries.AuditEntryView{
			ID:        id,
			RequestID: pgconv.UUIDFromPgtype(reqID),
			ActorID:   pgconv.UUIDFromPgtype(actorID),
			OldStatus: pgconv.StringPtrFromPgtype(oldStatus),
			NewStatus: newStatus,
			Notes:     notes,
			CreatedAt: pgconv.TimeFromPgtype(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate request update rows", err)
	}
	return views, nil
}

const findRequestsByStatusQuery = `
SELECT id, status, category, title, description, location,
       priority, requester_id, assigned_to, created_at, updated_at
FROM service_requests
WHERE ($1::text IS NULL OR status = $1)
ORDER BY created_at DESC
LIMIT $2`

func (s *RequestReadStore) FindByStatus(ctx context.Context, status *string, limit int32) ([]*queries.RequestView, error) {
	rows, err := s.db.Query(ctx, findRequestsByStatusQuery, pgconv.PgTextPtr(status), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list service requests", err)
	}
	defer rows.Close()

	views := make([]*queries.RequestView, 0)
	for rows.Next() {
		view, err := scanRequestView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan service request row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate service request rows", err)
	}
	return views, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequestView(row rowScanner) (*queries.RequestView, error) {
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

	return &queries.RequestView{
		ID:          pgconv.UUIDFromPgtype(id),
		Status:      status,
		Category:    category,
		Title:       title,
		Description: description,
		Location:    location,
		Priority:    priority,
		RequesterID: pgconv.UUIDFromPgtype(requesterID),
		AssignedTo:  pgconv.UUIDPtrFromPgtype(assignedTo),
		CreatedAt:   pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:   pgconv.TimeFromPgtype(updatedAt),
	}, nil
}
