package repository

import (
	"context"
	"encoding/json"

	"civicdesk/internal/domain/request"
	"civicdesk/internal/infra"
	"civicdesk/internal/infra/db"
	"civicdesk/internal/pkg/pgconv"
	"civicdesk/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// SnapshotRepository stores mementos as jsonb. The captured state is
// serialized once at save time and never touched afterwards.
type SnapshotRepository struct {
	db db.DBTX
}

func NewSnapshotRepository(dbtx db.DBTX) *SnapshotRepository {
	return &SnapshotRepository{db: dbtx}
}

const insertSnapshotQuery = `
INSERT INTO snapshots (key, request_id, label, captured_state, created_at)
VALUES ($1, $2, $3, $4, $5)`

func (r *SnapshotRepository) Save(ctx context.Context, rec shared.SnapshotRecord) error {
	captured, err := json.Marshal(rec.CapturedState)
	if err != nil {
		return infra.WrapRepoErr("failed to encode captured state", err, infra.KindDBFailure)
	}

	_, err = r.db.Exec(ctx, insertSnapshotQuery,
		rec.Key,
		rec.RequestID,
		rec.Label,
		captured,
		rec.CreatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save snapshot", err)
	}
	return nil
}

const selectSnapshotQuery = `
SELECT key, request_id, label, captured_state, created_at
FROM snapshots
WHERE key = $1`

// Get returns nil when no snapshot exists under the key.
func (r *SnapshotRepository) Get(ctx context.Context, key string) (*shared.SnapshotRecord, error) {
	row := r.db.QueryRow(ctx, selectSnapshotQuery, key)
	rec, err := scanSnapshotRecord(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to get snapshot", err)
	}
	return rec, nil
}

const selectSnapshotsByRequestQuery = `
SELECT key, request_id, label, captured_state, created_at
FROM snapshots
WHERE request_id = $1
ORDER BY created_at DESC`

func (r *SnapshotRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]shared.SnapshotRecord, error) {
	rows, err := r.db.Query(ctx, selectSnapshotsByRequestQuery, requestID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list snapshots", err)
	}
	defer rows.Close()

	var recs []shared.SnapshotRecord
	for rows.Next() {
		rec, err := scanSnapshotRecord(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan snapshot row", err)
		}
		recs = append(recs, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate snapshot rows", err)
	}
	return recs, nil
}

const deleteSnapshotQuery = `
DELETE FROM snapshots WHERE key = $1`

func (r *SnapshotRepository) Remove(ctx context.Context, key string) (bool, error) {
	tag, err := r.db.Exec(ctx, deleteSnapshotQuery, key)
	if err != nil {
		return false, infra.WrapRepoErr("failed to remove snapshot", err)
	}
	return tag.RowsAffected() > 0, nil
}

const pruneSnapshotsQuery = `
DELETE FROM snapshots
WHERE request_id = $1 AND key NOT IN (
    SELECT key FROM snapshots
    WHERE request_id = $1
    ORDER BY created_at DESC
    LIMIT $2
)`

func (r *SnapshotRepository) PruneOldest(ctx context.Context, requestID uuid.UUID, keep int) error {
	if _, err := r.db.Exec(ctx, pruneSnapshotsQuery, requestID, keep); err != nil {
		return infra.WrapRepoErr("failed to prune snapshots", err)
	}
	return nil
}

func scanSnapshotRecord(row rowScanner) (*shared.SnapshotRecord, error) {
	var (
		key       string
		requestID pgtype.UUID
		label     string
		captured  []byte
		createdAt pgtype.Timestamptz
	)
	if err := row.Scan(&key, &requestID, &label, &captured, &createdAt); err != nil {
		return nil, err
	}

	var state request.Record
	if err := json.Unmarshal(captured, &state); err != nil {
		return nil, err
	}

	return &shared.SnapshotRecord{
		Key:           key,
		RequestID:     pgconv.UUIDFromPgtype(requestID),
		Label:         label,
		CapturedState: state,
		CreatedAt:     pgconv.TimeFromPgtype(createdAt),
	}, nil
}
