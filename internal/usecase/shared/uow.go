package shared

import (
	"context"
	"time"

	"civicdesk/internal/domain/request"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: Direct access to reads outside transactions
	Reads() Reads
}

// Tx exposes the write repositories bound to one transaction. Every
// mutating lifecycle step (lock, status update, audit append, command
// log bookkeeping, snapshot write) runs through one Tx so a storage
// failure never leaves the audit log and the status inconsistent.
type Tx interface {
	Requests() RequestRepository
	Audit() AuditRepository
	CommandLog() CommandLogRepository
	Snapshots() SnapshotRepository
	Reads() Reads
}

type Reads interface {
	RequestByID(ctx context.Context, id uuid.UUID) (*request.Record, error)
	CommandCount(ctx context.Context, actorID uuid.UUID, stack CommandStack) (int64, error)
}

type RequestRepository interface {
	Create(ctx context.Context, rec *request.ServiceRequest) (uuid.UUID, error)
	// GetForUpdate loads the row under a per-request lock so two
	// concurrent transitions cannot both pass the legality check.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*request.Record, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, to request.Status, now time.Time) error
	UpdateAssignment(ctx context.Context, id uuid.UUID, technicianID *uuid.UUID, now time.Time) error
	// Overwrite replaces every field, timestamps included, with the
	// given record, bypassing transition validation. Snapshot restore
	// only: restoring a snapshot taken a moment ago must be a no-op.
	Overwrite(ctx context.Context, rec request.Record) error
}

// AuditRepository is append-only: no update or delete exists.
type AuditRepository interface {
	Append(ctx context.Context, entry AuditEntry) error
}

type CommandLogRepository interface {
	Push(ctx context.Context, rec CommandRecord) error
	Top(ctx context.Context, actorID uuid.UUID, stack CommandStack) (*CommandRecord, error)
	Move(ctx context.Context, id uuid.UUID, stack CommandStack, position int64) error
	NextPosition(ctx context.Context, actorID uuid.UUID, stack CommandStack) (int64, error)
	Count(ctx context.Context, actorID uuid.UUID, stack CommandStack) (int64, error)
	ClearRedo(ctx context.Context, actorID uuid.UUID) error
	// PruneUndo drops the oldest undo entries beyond depth.
	PruneUndo(ctx context.Context, actorID uuid.UUID, depth int) error
}

type SnapshotRepository interface {
	Save(ctx context.Context, rec SnapshotRecord) error
	Get(ctx context.Context, key string) (*SnapshotRecord, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]SnapshotRecord, error)
	Remove(ctx context.Context, key string) (bool, error)
	// PruneOldest drops the oldest snapshots beyond keep for one request.
	PruneOldest(ctx context.Context, requestID uuid.UUID, keep int) error
}

// NotificationRepository enqueues outbox jobs for delivery channels
// owned by external collaborators.
type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
