package usecase

import (
	"context"
	"log/slog"
	"time"

	"civicdesk/internal/domain/request"
	"civicdesk/internal/infra"
	"civicdesk/internal/pkg/clock"
	"civicdesk/internal/pkg/errs"
	"civicdesk/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateRequestParams struct {
	Category    string
	Title       string
	Description string
	Location    string
	Priority    string
	RequesterID uuid.UUID
}

// LifecycleCommands is the single validated mutation path for request
// status. Everything except snapshot restore goes through here.
type LifecycleCommands interface {
	CreateRequest(ctx context.Context, params CreateRequestParams) (*request.Record, error)
	Transition(ctx context.Context, requestID uuid.UUID, to request.Status, actorID uuid.UUID, notes string) (*request.Record, error)
}

type lifecycleUseCaseImpl struct {
	uow    shared.UnitOfWork
	engine *engine
	clock  clock.Clock
}

func NewLifecycleUseCase(
	uow shared.UnitOfWork,
	registry *request.Registry,
	clk clock.Clock,
) LifecycleCommands {
	return &lifecycleUseCaseImpl{
		uow:    uow,
		engine: &engine{registry: registry, clock: clk},
		clock:  clk,
	}
}

func (u *lifecycleUseCaseImpl) CreateRequest(ctx context.Context, params CreateRequestParams) (*request.Record, error) {
	entity, err := buildRequestEntity(params, u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var created request.Record
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Requests().Create(ctx, entity); err != nil {
			return errs.Mark(err, errs.ErrStorageFailure)
		}

		// Creation is the initial entry into pending and gets its own
		// audit row with a NULL old status.
		entry := shared.AuditEntry{
			RequestID: entity.ID(),
			ActorID:   params.RequesterID,
			OldStatus: nil,
			NewStatus: entity.Status(),
			Notes:     "request created",
			CreatedAt: u.clock.Now(),
		}
		if err := tx.Audit().Append(ctx, entry); err != nil {
			return errs.Mark(err, errs.ErrStorageFailure)
		}

		created = request.RecordFromEntity(entity)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.engine.runEnterHooks(ctx, created)
	return &created, nil
}

func (u *lifecycleUseCaseImpl) Transition(ctx context.Context, requestID uuid.UUID, to request.Status, actorID uuid.UUID, notes string) (*request.Record, error) {
	var (
		updated request.Record
		old     request.Status
	)
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rec, oldStatus, err := u.engine.transitionInTx(ctx, tx, requestID, to, actorID, notes)
		if err != nil {
			return err
		}
		updated = *rec
		old = oldStatus
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.engine.runTransitionHooks(ctx, old, updated)
	return &updated, nil
}

func buildRequestEntity(params CreateRequestParams, now time.Time) (*request.ServiceRequest, error) {
	category, err := request.NewCategory(params.Category)
	if err != nil {
		return nil, err
	}
	title, err := request.NewTitle(params.Title)
	if err != nil {
		return nil, err
	}
	description, err := request.NewDescription(params.Description)
	if err != nil {
		return nil, err
	}
	location, err := request.NewLocation(params.Location)
	if err != nil {
		return nil, err
	}

	return request.NewServiceRequest(
		category,
		title,
		description,
		location,
		request.Priority(params.Priority),
		params.RequesterID,
		now,
	)
}

// engine performs the validated transition sequence inside a caller
// supplied transaction so the invoker can share it with its command log
// bookkeeping.
type engine struct {
	registry *request.Registry
	clock    clock.Clock
}

// transitionInTx: load under row lock, check legality, persist the new
// status, append the audit row. Hooks are NOT run here; the caller
// dispatches them after the transaction commits.
func (e *engine) transitionInTx(
	ctx context.Context,
	tx shared.Tx,
	requestID uuid.UUID,
	to request.Status,
	actorID uuid.UUID,
	notes string,
) (*request.Record, request.Status, error) {
	rec, err := tx.Requests().GetForUpdate(ctx, requestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, "", errs.Mark(err, errs.ErrRequestNotFound)
		}
		return nil, "", errs.Mark(err, errs.ErrStorageFailure)
	}

	current, err := e.registry.State(rec.Status)
	if err != nil {
		return nil, "", errs.Mark(err, errs.ErrUnknownState)
	}
	if _, err := e.registry.State(to); err != nil {
		return nil, "", errs.Mark(err, errs.ErrUnknownState)
	}

	if !current.CanTransitionTo(to) {
		return nil, "", errs.Mark(
			errs.Newf("cannot transition request %s from %s to %s", requestID, rec.Status, to),
			errs.ErrIllegalTransition,
		)
	}

	now := e.clock.Now()
	if err := tx.Requests().UpdateStatus(ctx, requestID, to, now); err != nil {
		return nil, "", errs.Mark(err, errs.ErrStorageFailure)
	}

	oldStatus := rec.Status
	entry := shared.AuditEntry{
		RequestID: requestID,
		ActorID:   actorID,
		OldStatus: &oldStatus,
		NewStatus: to,
		Notes:     notes,
		CreatedAt: now,
	}
	if err := tx.Audit().Append(ctx, entry); err != nil {
		return nil, "", errs.Mark(err, errs.ErrStorageFailure)
	}

	updated := *rec
	updated.Status = to
	updated.UpdatedAt = now
	return &updated, oldStatus, nil
}

// runTransitionHooks dispatches the exit hooks of the old state and the
// entry hooks of the new one. The transition has already committed, so
// failures are logged and swallowed: a lost notification must not poison
// a completed status change.
func (e *engine) runTransitionHooks(ctx context.Context, old request.Status, updated request.Record) {
	if oldState, err := e.registry.State(old); err == nil {
		before := updated
		before.Status = old
		if hookErr := oldState.Exit(ctx, &before); hookErr != nil {
			slog.Warn("state exit hook failed",
				"request_id", updated.ID.String(),
				"status", old.String(),
				"error", hookErr.Error())
		}
	}
	e.runEnterHooks(ctx, updated)
}

func (e *engine) runEnterHooks(ctx context.Context, rec request.Record) {
	newState, err := e.registry.State(rec.Status)
	if err != nil {
		return
	}
	if hookErr := newState.Enter(ctx, &rec); hookErr != nil {
		slog.Warn("state entry hook failed",
			"request_id", rec.ID.String(),
			"status", rec.Status.String(),
			"error", hookErr.Error())
	}
}
