package usecase

import (
	"context"
	"errors"

	"civicdesk/internal/domain/request"
	"civicdesk/internal/infra"
	"civicdesk/internal/pkg/clock"
	"civicdesk/internal/pkg/errs"
	"civicdesk/internal/usecase/shared"

	"github.com/google/uuid"
)

type CommandResult struct {
	Request *request.Record
	CanUndo bool
	CanRedo bool
}

// CommandInvoker maintains per-actor undo/redo stacks over reified
// commands. The stacks are persisted, so undo stays meaningful across
// requests and restarts. Executing a new command clears the redo stack.
type CommandInvoker interface {
	Execute(ctx context.Context, actorID uuid.UUID, input CommandInput) (*CommandResult, error)
	Undo(ctx context.Context, actorID uuid.UUID) (*CommandResult, error)
	Redo(ctx context.Context, actorID uuid.UUID) (*CommandResult, error)
	CanUndo(ctx context.Context, actorID uuid.UUID) (bool, error)
	CanRedo(ctx context.Context, actorID uuid.UUID) (bool, error)
}

type hookEvent struct {
	old request.Status
	rec request.Record
}

type commandInvokerImpl struct {
	uow       shared.UnitOfWork
	engine    *engine
	clock     clock.Clock
	undoDepth int
}

func NewCommandInvoker(
	uow shared.UnitOfWork,
	registry *request.Registry,
	clk clock.Clock,
	undoDepth int,
) CommandInvoker {
	return &commandInvokerImpl{
		uow:       uow,
		engine:    &engine{registry: registry, clock: clk},
		clock:     clk,
		undoDepth: undoDepth,
	}
}

func (c *commandInvokerImpl) Execute(ctx context.Context, actorID uuid.UUID, input CommandInput) (*CommandResult, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var (
		res    CommandResult
		events []hookEvent
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		events = events[:0]

		var payload any
		switch input.Kind {
		case shared.CommandUpdateStatus:
			updated, old, err := c.engine.transitionInTx(ctx, tx, input.RequestID, *input.NewStatus, actorID, input.Notes)
			if err != nil {
				return err
			}
			payload = updateStatusPayload{
				RequestID:  input.RequestID,
				NewStatus:  *input.NewStatus,
				PrevStatus: old,
				Notes:      input.Notes,
			}
			events = append(events, hookEvent{old: old, rec: *updated})
			res.Request = updated

		case shared.CommandAssignTechnician:
			updated, p, driven, err := c.executeAssignment(ctx, tx, actorID, input, &events)
			if err != nil {
				return err
			}
			p.StatusDriven = driven
			payload = p
			res.Request = updated
		}

		data, err := marshalPayload(payload)
		if err != nil {
			return err
		}

		pos, err := tx.CommandLog().NextPosition(ctx, actorID, shared.StackUndo)
		if err != nil {
			return errs.Mark(err, errs.ErrStorageFailure)
		}
		rec := shared.CommandRecord{
			ID:         uuid.New(),
			ActorID:    actorID,
			RequestID:  input.RequestID,
			Kind:       input.Kind,
			Payload:    data,
			ExecutedAt: c.clock.Now(),
			Stack:      shared.StackUndo,
			Position:   pos,
		}
		if err := tx.CommandLog().Push(ctx, rec); err != nil {
			return errs.Mark(err, errs.ErrStorageFailure)
		}
		// Standard undo/redo discipline: no redo history survives a
		// fresh forward action.
		if err := tx.CommandLog().ClearRedo(ctx, actorID); err != nil {
			return errs.Mark(err, errs.ErrStorageFailure)
		}
		if err := tx.CommandLog().PruneUndo(ctx, actorID, c.undoDepth); err != nil {
			return errs.Mark(err, errs.ErrStorageFailure)
		}

		res.CanUndo = true
		res.CanRedo = false
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.dispatchHooks(ctx, events)
	return &res, nil
}

// executeAssignment sets the technician reference and, when the
// transition table allows it from the current status, drives the request
// to assigned through the validated path.
func (c *commandInvokerImpl) executeAssignment(
	ctx context.Context,
	tx shared.Tx,
	actorID uuid.UUID,
	input CommandInput,
	events *[]hookEvent,
) (*request.Record, assignTechnicianPayload, bool, error) {
	var p assignTechnicianPayload

	rec, err := tx.Requests().GetForUpdate(ctx, input.RequestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, p, false, errs.Mark(err, errs.ErrRequestNotFound)
		}
		return nil, p, false, errs.Mark(err, errs.ErrStorageFailure)
	}

	now := c.clock.Now()
	if err := tx.Requests().UpdateAssignment(ctx, input.RequestID, input.TechnicianID, now); err != nil {
		return nil, p, false, errs.Mark(err, errs.ErrStorageFailure)
	}

	p = assignTechnicianPayload{
		RequestID:        input.RequestID,
		TechnicianID:     input.TechnicianID,
		PrevTechnicianID: rec.AssignedTo,
		PrevStatus:       rec.Status,
	}

	updated := *rec
	updated.AssignedTo = input.TechnicianID
	updated.UpdatedAt = now

	driven := false
	if input.TechnicianID != nil && request.CanTransition(rec.Status, request.StatusAssigned) {
		after, old, err := c.engine.transitionInTx(ctx, tx, input.RequestID, request.StatusAssigned, actorID, "technician assigned")
		if err != nil {
			return nil, p, false, err
		}
		driven = true
		updated = *after
		*events = append(*events, hookEvent{old: old, rec: *after})
	}

	return &updated, p, driven, nil
}

func (c *commandInvokerImpl) Undo(ctx context.Context, actorID uuid.UUID) (*CommandResult, error) {
	var (
		res    CommandResult
		events []hookEvent
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		events = events[:0]

		top, err := tx.CommandLog().Top(ctx, actorID, shared.StackUndo)
		if err != nil {
			return errs.Mark(err, errs.ErrStorageFailure)
		}
		if top == nil {
			return errs.ErrNothingToUndo
		}

		switch top.Kind {
		case shared.CommandUpdateStatus:
			p, err := unmarshalUpdateStatus(top)
			if err != nil {
				return err
			}
			// Undo re-enters the validated path targeting the captured
			// previous status; a command is only undoable if the reverse
			// transition is itself legal.
			updated, old, err := c.engine.transitionInTx(ctx, tx, p.RequestID, p.PrevStatus, actorID, "undo status change")
			if err != nil {
				if errors.Is(err, errs.ErrIllegalTransition) {
					return errs.Mark(err, errs.ErrUndoNotPossible)
				}
				return err
			}
			events = append(events, hookEvent{old: old, rec: *updated})
			res.Request = updated

		case shared.CommandAssignTechnician:
			updated, err := c.undoAssignment(ctx, tx, top)
			if err != nil {
				return err
			}
			res.Request = updated
		}

		pos, err := tx.CommandLog().NextPosition(ctx, actorID, shared.StackRedo)
		if err != nil {
			return errs.Mark(err, errs.ErrStorageFailure)
		}
		if err := tx.CommandLog().Move(ctx, top.ID, shared.StackRedo, pos); err != nil {
			return errs.Mark(err, errs.ErrStorageFailure)
		}

		remaining, err := tx.CommandLog().Count(ctx, actorID, shared.StackUndo)
		if err != nil {
			return errs.Mark(err, errs.ErrStorageFailure)
		}
		res.CanUndo = remaining > 0
		res.CanRedo = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.dispatchHooks(ctx, events)
	return &res, nil
}

// undoAssignment restores the previous technician reference. When the
// command drove the status to assigned, the prior status is restored
// directly: the reverse hop is never in the transition table, and losing
// undo for every assignment would make the command log useless.
func (c *commandInvokerImpl) undoAssignment(ctx context.Context, tx shared.Tx, top *shared.CommandRecord) (*request.Record, error) {
	p, err := unmarshalAssignTechnician(top)
	if err != nil {
		return nil, err
	}

	rec, err := tx.Requests().GetForUpdate(ctx, p.RequestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrRequestNotFound)
		}
		return nil, errs.Mark(err, errs.ErrStorageFailure)
	}

	now := c.clock.Now()
	if err := tx.Requests().UpdateAssignment(ctx, p.RequestID, p.PrevTechnicianID, now); err != nil {
		return nil, errs.Mark(err, errs.ErrStorageFailure)
	}

	updated := *rec
	updated.AssignedTo = p.PrevTechnicianID
	updated.UpdatedAt = now

	if p.StatusDriven {
		if err := tx.Requests().UpdateStatus(ctx, p.RequestID, p.PrevStatus, now); err != nil {
			return nil, errs.Mark(err, errs.ErrStorageFailure)
		}
		updated.Status = p.PrevStatus
	}

	return &updated, nil
}

func (c *commandInvokerImpl) Redo(ctx context.Context, actorID uuid.UUID) (*CommandResult, error) {
	var (
		res    CommandResult
		events []hookEvent
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		events = events[:0]

		top, err := tx.CommandLog().Top(ctx, actorID, shared.StackRedo)
		if err != nil {
			return errs.Mark(err, errs.ErrStorageFailure)
		}
		if top == nil {
			return errs.ErrNothingToRedo
		}

		switch top.Kind {
		case shared.CommandUpdateStatus:
			p, err := unmarshalUpdateStatus(top)
			if err != nil {
				return err
			}
			updated, old, err := c.engine.transitionInTx(ctx, tx, p.RequestID, p.NewStatus, actorID, "redo status change")
			if err != nil {
				return err
			}
			events = append(events, hookEvent{old: old, rec: *updated})
			res.Request = updated

		case shared.CommandAssignTechnician:
			updated, err := c.redoAssignment(ctx, tx, actorID, top, &events)
			if err != nil {
				return err
			}
			res.Request = updated
		}

		pos, err := tx.CommandLog().NextPosition(ctx, actorID, shared.StackUndo)
		if err != nil {
			return errs.Mark(err, errs.ErrStorageFailure)
		}
		if err := tx.CommandLog().Move(ctx, top.ID, shared.StackUndo, pos); err != nil {
			return errs.Mark(err, errs.ErrStorageFailure)
		}

		remaining, err := tx.CommandLog().Count(ctx, actorID, shared.StackRedo)
		if err != nil {
			return errs.Mark(err, errs.ErrStorageFailure)
		}
		res.CanUndo = true
		res.CanRedo = remaining > 0
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.dispatchHooks(ctx, events)
	return &res, nil
}

func (c *commandInvokerImpl) redoAssignment(
	ctx context.Context,
	tx shared.Tx,
	actorID uuid.UUID,
	top *shared.CommandRecord,
	events *[]hookEvent,
) (*request.Record, error) {
	p, err := unmarshalAssignTechnician(top)
	if err != nil {
		return nil, err
	}

	rec, err := tx.Requests().GetForUpdate(ctx, p.RequestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrRequestNotFound)
		}
		return nil, errs.Mark(err, errs.ErrStorageFailure)
	}

	now := c.clock.Now()
	if err := tx.Requests().UpdateAssignment(ctx, p.RequestID, p.TechnicianID, now); err != nil {
		return nil, errs.Mark(err, errs.ErrStorageFailure)
	}

	updated := *rec
	updated.AssignedTo = p.TechnicianID
	updated.UpdatedAt = now

	if p.StatusDriven {
		after, old, err := c.engine.transitionInTx(ctx, tx, p.RequestID, request.StatusAssigned, actorID, "technician assigned")
		if err != nil {
			return nil, err
		}
		updated = *after
		*events = append(*events, hookEvent{old: old, rec: *after})
	}

	return &updated, nil
}

func (c *commandInvokerImpl) CanUndo(ctx context.Context, actorID uuid.UUID) (bool, error) {
	count, err := c.uow.Reads().CommandCount(ctx, actorID, shared.StackUndo)
	if err != nil {
		return false, errs.Mark(err, errs.ErrStorageFailure)
	}
	return count > 0, nil
}

func (c *commandInvokerImpl) CanRedo(ctx context.Context, actorID uuid.UUID) (bool, error) {
	count, err := c.uow.Reads().CommandCount(ctx, actorID, shared.StackRedo)
	if err != nil {
		return false, errs.Mark(err, errs.ErrStorageFailure)
	}
	return count > 0, nil
}

func (c *commandInvokerImpl) dispatchHooks(ctx context.Context, events []hookEvent) {
	for _, ev := range events {
		c.engine.runTransitionHooks(ctx, ev.old, ev.rec)
	}
}
