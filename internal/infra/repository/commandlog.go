package repository

import (
	"context"

	"civicdesk/internal/infra"
	"civicdesk/internal/infra/db"
	"civicdesk/internal/pkg/pgconv"
	"civicdesk/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// CommandLogRepository persists the per-actor undo/redo stacks. A row's
// stack column says which side it sits on; position orders rows within
// one actor's stack, highest on top.
type CommandLogRepository struct {
	db db.DBTX
}

func NewCommandLogRepository(dbtx db.DBTX) *CommandLogRepository {
	return &CommandLogRepository{db: dbtx}
}

const insertCommandQuery = `
INSERT INTO command_log (id, actor_id, request_id, kind, payload, executed_at, stack, position)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (r *CommandLogRepository) Push(ctx context.Context, rec shared.CommandRecord) error {
	_, err := r.db.Exec(ctx, insertCommandQuery,
		rec.ID,
		rec.ActorID,
		rec.RequestID,
		string(rec.Kind),
		rec.Payload,
		rec.ExecutedAt,
		string(rec.Stack),
		rec.Position,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to push command", err)
	}
	return nil
}

const selectTopCommandQuery = `
SELECT id, actor_id, request_id, kind, payload, executed_at, stack, position
FROM command_log
WHERE actor_id = $1 AND stack = $2
ORDER BY position DESC
LIMIT 1
FOR UPDATE`

// Top returns the newest entry on the given stack, or nil when the
// stack is empty. The row lock serializes concurrent undo/redo calls
// from the same actor.
func (r *CommandLogRepository) Top(ctx context.Context, actorID uuid.UUID, stack shared.CommandStack) (*shared.CommandRecord, error) {
	row := r.db.QueryRow(ctx, selectTopCommandQuery, actorID, string(stack))
	rec, err := scanCommandRecord(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to read command stack top", err)
	}
	return rec, nil
}

const moveCommandQuery = `
UPDATE command_log SET stack = $2, position = $3 WHERE id = $1`

func (r *CommandLogRepository) Move(ctx context.Context, id uuid.UUID, stack shared.CommandStack, position int64) error {
	tag, err := r.db.Exec(ctx, moveCommandQuery, id, string(stack), position)
	if err != nil {
		return infra.WrapRepoErr("failed to move command between stacks", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("command not found", nil, infra.KindNotFound)
	}
	return nil
}

const nextCommandPositionQuery = `
SELECT COALESCE(MAX(position), 0) + 1
FROM command_log
WHERE actor_id = $1 AND stack = $2`

func (r *CommandLogRepository) NextPosition(ctx context.Context, actorID uuid.UUID, stack shared.CommandStack) (int64, error) {
	var pos int64
	if err := r.db.QueryRow(ctx, nextCommandPositionQuery, actorID, string(stack)).Scan(&pos); err != nil {
		return 0, infra.WrapRepoErr("failed to compute next stack position", err)
	}
	return pos, nil
}

const countCommandsQuery = `
SELECT COUNT(*) FROM command_log WHERE actor_id = $1 AND stack = $2`

func (r *CommandLogRepository) Count(ctx context.Context, actorID uuid.UUID, stack shared.CommandStack) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, countCommandsQuery, actorID, string(stack)).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count commands", err)
	}
	return n, nil
}

const clearRedoQuery = `
DELETE FROM command_log WHERE actor_id = $1 AND stack = 'redo'`

func (r *CommandLogRepository) ClearRedo(ctx context.Context, actorID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, clearRedoQuery, actorID); err != nil {
		return infra.WrapRepoErr("failed to clear redo stack", err)
	}
	return nil
}

const pruneUndoQuery = `
DELETE FROM command_log
WHERE actor_id = $1 AND stack = 'undo' AND id NOT IN (
    SELECT id FROM command_log
    WHERE actor_id = $1 AND stack = 'undo'
    ORDER BY position DESC
    LIMIT $2
)`

func (r *CommandLogRepository) PruneUndo(ctx context.Context, actorID uuid.UUID, depth int) error {
	if _, err := r.db.Exec(ctx, pruneUndoQuery, actorID, depth); err != nil {
		return infra.WrapRepoErr("failed to prune undo stack", err)
	}
	return nil
}

const selectCommandsByActorQuery = `
SELECT id, actor_id, request_id, kind, payload, executed_at, stack, position
FROM command_log
WHERE actor_id = $1
ORDER BY executed_at ASC, position ASC`

// FindByActor returns the actor's full log, both stacks, in execution
// order. Serves the read side only.
func (r *CommandLogRepository) FindByActor(ctx context.Context, actorID uuid.UUID) ([]shared.CommandRecord, error) {
	rows, err := r.db.Query(ctx, selectCommandsByActorQuery, actorID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list commands", err)
	}
	defer rows.Close()

	var recs []shared.CommandRecord
	for rows.Next() {
		rec, err := scanCommandRecord(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan command row", err)
		}
		recs = append(recs, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate command rows", err)
	}
	return recs, nil
}

func scanCommandRecord(row rowScanner) (*shared.CommandRecord, error) {
	var (
		id         pgtype.UUID
		actorID    pgtype.UUID
		requestID  pgtype.UUID
		kind       string
		payload    []byte
		executedAt pgtype.Timestamptz
		stack      string
		position   int64
	)
	err := row.Scan(&id, &actorID, &requestID, &kind, &payload, &executedAt, &stack, &position)
	if err != nil {
		return nil, err
	}

	return &shared.CommandRecord{
		ID:         pgconv.UUIDFromPgtype(id),
		ActorID:    pgconv.UUIDFromPgtype(actorID),
		RequestID:  pgconv.UUIDFromPgtype(requestID),
		Kind:       shared.CommandKind(kind),
		Payload:    payload,
		ExecutedAt: pgconv.TimeFromPgtype(executedAt),
		Stack:      shared.CommandStack(stack),
		Position:   position,
	}, nil
}
