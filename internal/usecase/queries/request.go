package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type RequestView struct {
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

type AuditEntryView struct {
	ID        int64     `json:"id"`
	RequestID uuid.UUID `json:"request_id"`
	ActorID   uuid.UUID `json:"actor_id"`
	OldStatus *string   `json:"old_status,omitempty"`
	NewStatus string    `json:"new_status"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

type RequestDetailView struct {
	Request RequestView      `json:"request"`
	Updates []AuditEntryView `json:"updates"`
}

type CommandView struct {
	ID         uuid.UUID `json:"id"`
	RequestID  uuid.UUID `json:"request_id"`
	Kind       string    `json:"kind"`
	Payload    []byte    `json:"payload"`
	ExecutedAt time.Time `json:"executed_at"`
	Stack      string    `json:"stack"`
}

type SnapshotMetaView struct {
	Key       string    `json:"key"`
	RequestID uuid.UUID `json:"request_id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

type RequestQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RequestDetailView, error)
	ListByStatus(ctx context.Context, status *string, limit int) ([]*RequestView, error)
}

type CommandQueries interface {
	History(ctx context.Context, actorID uuid.UUID) ([]*CommandView, error)
}

type SnapshotQueries interface {
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*SnapshotMetaView, error)
}

type RequestViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RequestView, error)
	FindUpdates(ctx context.Context, requestID uuid.UUID) ([]AuditEntryView, error)
	FindByStatus(ctx context.Context, status *string, limit int32) ([]*RequestView, error)
}

type CommandViewRepo interface {
	FindByActor(ctx context.Context, actorID uuid.UUID) ([]*CommandView, error)
}

type SnapshotViewRepo interface {
	FindMetaByRequest(ctx context.Context, requestID uuid.UUID) ([]*SnapshotMetaView, error)
}

type requestQueriesImpl struct {
	repo RequestViewRepo
}

func NewRequestQueries(repo RequestViewRepo) RequestQueries {
	return &requestQueriesImpl{repo: repo}
}

func (q *requestQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RequestDetailView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates, err := q.repo.FindUpdates(ctx, id)
	if err != nil {
		return nil, err
	}

	return &RequestDetailView{
		Request: *view,
		Updates: updates,
	}, nil
}

func (q *requestQueriesImpl) ListByStatus(ctx context.Context, status *string, limit int) ([]*RequestView, error) {
	if limit <= 0 {
		limit = 50
	}
	return q.repo.FindByStatus(ctx, status, int32(limit))
}

type commandQueriesImpl struct {
	repo CommandViewRepo
}

func NewCommandQueries(repo CommandViewRepo) CommandQueries {
	return &commandQueriesImpl{repo: repo}
}

func (q *commandQueriesImpl) History(ctx context.Context, actorID uuid.UUID) ([]*CommandView, error) {
	return q.repo.FindByActor(ctx, actorID)
}

type snapshotQueriesImpl struct {
	repo SnapshotViewRepo
}

func NewSnapshotQueries(repo SnapshotViewRepo) SnapshotQueries {
	return &snapshotQueriesImpl{repo: repo}
}

func (q *snapshotQueriesImpl) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*SnapshotMetaView, error) {
	return q.repo.FindMetaByRequest(ctx, requestID)
}
