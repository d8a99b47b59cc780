package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"civicdesk/internal/domain/request"
	"civicdesk/internal/infra/db"
	"civicdesk/internal/infra/repository"
	"civicdesk/internal/pkg/errs"
	"civicdesk/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes;
// the row lock taken by GetForUpdate carries the per-request ordering.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) Reads() shared.Reads {
	return &pgReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Mask high bit to keep the conversion positive
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	requestRepo    shared.RequestRepository
	auditRepo      shared.AuditRepository
	commandLogRepo shared.CommandLogRepository
	snapshotRepo   shared.SnapshotRepository
	reads          shared.Reads
}

func (t *pgTx) Requests() shared.RequestRepository {
	if t.requestRepo == nil {
		t.requestRepo = repository.NewRequestRepository(t.dbtx)
	}
	return t.requestRepo
}

func (t *pgTx) Audit() shared.AuditRepository {
	if t.auditRepo == nil {
		t.auditRepo = repository.NewAuditRepository(t.dbtx)
	}
	return t.auditRepo
}

func (t *pgTx) CommandLog() shared.CommandLogRepository {
	if t.commandLogRepo == nil {
		t.commandLogRepo = repository.NewCommandLogRepository(t.dbtx)
	}
	return t.commandLogRepo
}

func (t *pgTx) Snapshots() shared.SnapshotRepository {
	if t.snapshotRepo == nil {
		t.snapshotRepo = repository.NewSnapshotRepository(t.dbtx)
	}
	return t.snapshotRepo
}

func (t *pgTx) Reads() shared.Reads {
	if t.reads == nil {
		t.reads = &pgReads{dbtx: t.dbtx}
	}
	return t.reads
}

type pgReads struct {
	dbtx db.DBTX

	requestRepo    *repository.RequestRepository
	commandLogRepo *repository.CommandLogRepository
}

func (r *pgReads) RequestByID(ctx context.Context, id uuid.UUID) (*request.Record, error) {
	if r.requestRepo == nil {
		r.requestRepo = repository.NewRequestRepository(r.dbtx)
	}
	return r.requestRepo.Get(ctx, id)
}

func (r *pgReads) CommandCount(ctx context.Context, actorID uuid.UUID, stack shared.CommandStack) (int64, error) {
	if r.commandLogRepo == nil {
		r.commandLogRepo = repository.NewCommandLogRepository(r.dbtx)
	}
	return r.commandLogRepo.Count(ctx, actorID, stack)
}
