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

type CommandReadStore struct {
	db db.DBTX
}

func NewCommandReadStore(dbtx db.DBTX) *CommandReadStore {
	return &CommandReadStore{db: dbtx}
}

const findCommandsByActorQuery = `
SELECT id, request_id, kind, payload, executed_at, stack
FROM command_log
WHERE actor_id = $1
ORDER BY executed_at ASC, position ASC`

func (s *CommandReadStore) FindByActor(ctx context.Context, actorID uuid.UUID) ([]*queries.CommandView, error) {
	rows, err := s.db.Query(ctx, findCommandsByActorQuery, actorID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list command history", err)
	}
	defer rows.Close()

	views := make([]*queries.CommandView, 0)
	for rows.Next() {
		var (
			id         pgtype.UUID
			requestID  pgtype.UUID
			kind       string
			payload    []byte
			executedAt pgtype.Timestamptz
			stack      string
		)
		if err := rows.Scan(&id, &requestID, &kind, &payload, &executedAt, &stack); err != nil {
			return nil, infra.WrapRepoErr("failed to scan command row", err)
		}
		views = append(views, &queries.CommandView{
			ID:         pgconv.UUIDFromPgtype(id),
			RequestID:  pgconv.UUIDFromPgtype(requestID),
			Kind:       kind,
			Payload:    payload,
			ExecutedAt: pgconv.TimeFromPgtype(executedAt),
			Stack:      stack,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate command rows", err)
	}
	return views, nil
}
