package shared

import (
	"time"

	"civicdesk/internal/domain/request"

	"github.com/google/uuid"
)

// AuditEntry is one append-only row of the request update log. OldStatus
// is nil only for the creation row.
type AuditEntry struct {
	ID        int64
	RequestID uuid.UUID
	ActorID   uuid.UUID
	OldStatus *request.Status
	NewStatus request.Status
	Notes     string
	CreatedAt time.Time
}

type CommandKind string

const (
	CommandUpdateStatus     CommandKind = "update_status"
	CommandAssignTechnician CommandKind = "assign_technician"
)

func (k CommandKind) IsValid() bool {
	switch k {
	case CommandUpdateStatus, CommandAssignTechnician:
		return true
	default:
		return false
	}
}

// CommandStack names which side of the invoker a persisted command
// currently sits on.
type CommandStack string

const (
	StackUndo CommandStack = "undo"
	StackRedo CommandStack = "redo"
)

// CommandRecord is one reified command. Payload is the JSON-encoded
// kind-specific payload, immutable once the command has executed:
// inversion uses the captured previous values, never a re-derivation.
type CommandRecord struct {
	ID         uuid.UUID
	ActorID    uuid.UUID
	RequestID  uuid.UUID
	Kind       CommandKind
	Payload    []byte
	ExecutedAt time.Time
	Stack      CommandStack
	Position   int64
}

// SnapshotRecord is a stored memento: a full immutable copy of one
// request's fields at capture time, keyed by request id + capture time.
type SnapshotRecord struct {
	Key           string
	RequestID     uuid.UUID
	Label         string
	CapturedState request.Record
	CreatedAt     time.Time
}
