package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"civicdesk/internal/domain/request"
	"civicdesk/internal/infra"
	"civicdesk/internal/pkg/clock"
	"civicdesk/internal/pkg/errs"
	"civicdesk/internal/usecase/queries"
	"civicdesk/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// SnapshotCommands is the memento path: capture a request's complete
// state and later force-restore it, bypassing transition legality. This
// is a privileged administrative escape hatch, gated by role in the
// handler layer, and deliberately separate from the lifecycle engine.
type SnapshotCommands interface {
	Create(ctx context.Context, requestID uuid.UUID, label string, actorID uuid.UUID) (*queries.SnapshotMetaView, error)
	Restore(ctx context.Context, key string, actorID uuid.UUID) (*request.Record, error)
	Remove(ctx context.Context, key string) error
}

type snapshotUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	keep  int
}

func NewSnapshotUseCase(uow shared.UnitOfWork, clk clock.Clock, keepPerRequest int) SnapshotCommands {
	return &snapshotUseCaseImpl{
		uow:   uow,
		clock: clk,
		keep:  keepPerRequest,
	}
}

func (s *snapshotUseCaseImpl) Create(ctx context.Context, requestID uuid.UUID, label string, actorID uuid.UUID) (*queries.SnapshotMetaView, error) {
	var meta queries.SnapshotMetaView
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rec, err := tx.Requests().GetForUpdate(ctx, requestID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrRequestNotFound)
			}
			return errs.Mark(err, errs.ErrStorageFailure)
		}

		// The memento is a value object: deep-copy so later mutations of
		// the live record can never reach the captured state.
		var captured request.Record
		if err := copier.CopyWithOption(&captured, rec, copier.Option{DeepCopy: true}); err != nil {
			return errs.Mark(err, errs.ErrStorageFailure)
		}

		now := s.clock.Now()
		snap := shared.SnapshotRecord{
			Key:           fmt.Sprintf("%s_%d", requestID, now.UnixNano()),
			RequestID:     requestID,
			Label:         label,
			CapturedState: captured,
			CreatedAt:     now,
		}
		if err := tx.Snapshots().Save(ctx, snap); err != nil {
			return errs.Mark(err, errs.ErrStorageFailure)
		}
		if err := tx.Snapshots().PruneOldest(ctx, requestID, s.keep); err != nil {
			return errs.Mark(err, errs.ErrStorageFailure)
		}

		meta = queries.SnapshotMetaView{
			Key:       snap.Key,
			RequestID: requestID,
			Label:     label,
			CreatedAt: now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// Restore overwrites the target record with the memento's captured
// state, unconditionally. No canTransitionTo check runs here: moving a
// completed request back to pending is exactly what this path is for.
func (s *snapshotUseCaseImpl) Restore(ctx context.Context, key string, actorID uuid.UUID) (*request.Record, error) {
	var restored request.Record
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Snapshots().Get(ctx, key)
		if err != nil {
			return errs.Mark(err, errs.ErrStorageFailure)
		}
		if snap == nil {
			return errs.ErrSnapshotNotFound
		}

		current, err := tx.Requests().GetForUpdate(ctx, snap.RequestID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrRequestNotFound)
			}
			return errs.Mark(err, errs.ErrStorageFailure)
		}

		if err := tx.Requests().Overwrite(ctx, snap.CapturedState); err != nil {
			return errs.Mark(err, errs.ErrStorageFailure)
		}

		slog.Info("request restored from snapshot",
			"snapshot_key", key,
			"request_id", snap.RequestID.String(),
			"actor_id", actorID.String(),
			"from_status", current.Status.String(),
			"to_status", snap.CapturedState.Status.String())

		restored = snap.CapturedState
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &restored, nil
}

func (s *snapshotUseCaseImpl) Remove(ctx context.Context, key string) error {
	return s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		removed, err := tx.Snapshots().Remove(ctx, key)
		if err != nil {
			return errs.Mark(err, errs.ErrStorageFailure)
		}
		if !removed {
			return errs.ErrSnapshotNotFound
		}
		return nil
	})
}
