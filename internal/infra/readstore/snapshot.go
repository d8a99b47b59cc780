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

type SnapshotReadStore struct {
	db db.DBTX
}

func NewSnapshotReadStore(dbtx db.DBTX) *SnapshotReadStore {
	return &SnapshotReadStore{db: dbtx}
}

const findSnapshotMetaQuery = `
SELECT key, request_id, label, created_at
FROM snapshots
WHERE request_id = $1
ORDER BY created_at DESC`

// FindMetaByRequest lists snapshot metadata only. The captured state is
// never exposed on the read side; restore is the only consumer.
func (s *SnapshotReadStore) FindMetaByRequest(ctx context.Context, requestID uuid.UUID) ([]*queries.SnapshotMetaView, error) {
	rows, err := s.db.Query(ctx, findSnapshotMetaQuery, requestID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list snapshot metadata", err)
	}
	defer rows.Close()

	views := make([]*queries.SnapshotMetaView, 0)
	for rows.Next() {
		var (
			key       string
			reqID     pgtype.UUID
			label     string
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&key, &reqID, &label, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan snapshot metadata row", err)
		}
		views = append(views, &queries.SnapshotMetaView{
			Key:       key,
			RequestID: pgconv.UUIDFromPgtype(reqID),
			Label:     label,
			CreatedAt: pgconv.TimeFromPgtype(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate snapshot metadata rows", err)
	}
	return views, nil
}
