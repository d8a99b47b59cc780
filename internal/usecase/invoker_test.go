//go:build unit

package usecase_test

import (
	"context"
	"testing"

	"civicdesk/internal/domain/request"
	"civicdesk/internal/pkg/clock"
	"civicdesk/internal/pkg/errs"
	"civicdesk/internal/usecase"
	"civicdesk/internal/usecase/shared"
	"civicdesk/tests/common/builder"
	"civicdesk/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultUndoDepth = 50

func newInvoker(store *fake.Store, undoDepth int) (usecase.CommandInvoker, *clock.MockClock) {
	clk := clock.NewMockClock(testStart)
	registry := request.NewRegistry(request.Hooks{})
	return usecase.NewCommandInvoker(store, registry, clk, undoDepth), clk
}

func statusPtr(s request.Status) *request.Status {
	return &s
}

func updateStatusInput(requestID uuid.UUID, to request.Status) usecase.CommandInput {
	return usecase.CommandInput{
		Kind:      shared.CommandUpdateStatus,
		RequestID: requestID,
		NewStatus: statusPtr(to),
	}
}

func assignInput(requestID uuid.UUID, technicianID *uuid.UUID) usecase.CommandInput {
	return usecase.CommandInput{
		Kind:         shared.CommandAssignTechnician,
		RequestID:    requestID,
		TechnicianID: technicianID,
	}
}

func TestExecute(t *testing.T) {
	actorID := uuid.New()

	t.Run("status command transitions and lands on the undo stack", func(t *testing.T) {
		store := fake.NewStore()
		invoker, _ := newInvoker(store, defaultUndoDepth)

		rec := builder.NewServiceRequestBuilder().BuildRecord(request.StatusPending)
		store.Seed(rec)

		res, err := invoker.Execute(context.Background(), actorID, updateStatusInput(rec.ID, request.StatusReviewed))
		require.NoError(t, err)

		assert.Equal(t, request.StatusReviewed, res.Request.Status)
		assert.True(t, res.CanUndo)
		assert.False(t, res.CanRedo)
		assert.Equal(t, 1, store.StackCount(actorID, shared.StackUndo))
		assert.Equal(t, 0, store.StackCount(actorID, shared.StackRedo))

		stored, ok := store.Request(rec.ID)
		require.True(t, ok)
		assert.Equal(t, request.StatusReviewed, stored.Status)
		assert.Len(t, store.AuditEntries(rec.ID), 1)
	})

	t.Run("illegal status command leaves the stacks untouched", func(t *testing.T) {
		store := fake.NewStore()
		invoker, _ := newInvoker(store, defaultUndoDepth)

		rec := builder.NewServiceRequestBuilder().BuildRecord(request.StatusCompleted)
		store.Seed(rec)

		_, err := invoker.Execute(context.Background(), actorID, updateStatusInput(rec.ID, request.StatusPending))
		require.ErrorIs(t, err, errs.ErrIllegalTransition)
		assert.Equal(t, 0, store.StackCount(actorID, shared.StackUndo))
	})

	t.Run("assignment from reviewed drives the status to assigned", func(t *testing.T) {
		store := fake.NewStore()
		invoker, _ := newInvoker(store, defaultUndoDepth)

		rec := builder.NewServiceRequestBuilder().BuildRecord(request.StatusReviewed)
		store.Seed(rec)
		techID := uuid.New()

		res, err := invoker.Execute(context.Background(), actorID, assignInput(rec.ID, &techID))
		require.NoError(t, err)

		assert.Equal(t, request.StatusAssigned, res.Request.Status)
		require.NotNil(t, res.Request.AssignedTo)
		assert.Equal(t, techID, *res.Request.AssignedTo)
		assert.Len(t, store.AuditEntries(rec.ID), 1)
	})

	t.Run("assignment before review keeps the current status", func(t *testing.T) {
		store := fake.NewStore()
		invoker, _ := newInvoker(store, defaultUndoDepth)

		rec := builder.NewServiceRequestBuilder().BuildRecord(request.StatusPending)
		store.Seed(rec)
		techID := uuid.New()

		res, err := invoker.Execute(context.Background(), actorID, assignInput(rec.ID, &techID))
		require.NoError(t, err)

		assert.Equal(t, request.StatusPending, res.Request.Status)
		require.NotNil(t, res.Request.AssignedTo)
		assert.Empty(t, store.AuditEntries(rec.ID))
	})

	t.Run("a fresh command clears the redo stack", func(t *testing.T) {
		store := fake.NewStore()
		invoker, _ := newInvoker(store, defaultUndoDepth)

		rec := builder.NewServiceRequestBuilder().BuildRecord(request.StatusReviewed)
		store.Seed(rec)
		techID := uuid.New()

		_, err := invoker.Execute(context.Background(), actorID, assignInput(rec.ID, &techID))
		require.NoError(t, err)
		_, err = invoker.Undo(context.Background(), actorID)
		require.NoError(t, err)
		require.Equal(t, 1, store.StackCount(actorID, shared.StackRedo))

		otherTech := uuid.New()
		res, err := invoker.Execute(context.Background(), actorID, assignInput(rec.ID, &otherTech))
		require.NoError(t, err)

		assert.False(t, res.CanRedo)
		assert.Equal(t, 0, store.StackCount(actorID, shared.StackRedo))

		_, err = invoker.Redo(context.Background(), actorID)
		require.ErrorIs(t, err, errs.ErrNothingToRedo)
	})

	t.Run("undo stack is bounded", func(t *testing.T) {
		store := fake.NewStore()
		invoker, _ := newInvoker(store, 2)

		rec := builder.NewServiceRequestBuilder().BuildRecord(request.StatusReviewed)
		store.Seed(rec)

		for range 3 {
			techID := uuid.New()
			_, err := invoker.Execute(context.Background(), actorID, assignInput(rec.ID, &techID))
			require.NoError(t, err)
		}

		assert.Equal(t, 2, store.StackCount(actorID, shared.StackUndo))
	})

	t.Run("input validation", func(t *testing.T) {
		store := fake.NewStore()
		invoker, _ := newInvoker(store, defaultUndoDepth)

		_, err := invoker.Execute(context.Background(), actorID, usecase.CommandInput{
			Kind:      shared.CommandKind("escalate"),
			RequestID: uuid.New(),
		})
		require.ErrorIs(t, err, errs.ErrDomainValidation)

		_, err = invoker.Execute(context.Background(), actorID, usecase.CommandInput{
			Kind:      shared.CommandUpdateStatus,
			RequestID: uuid.New(),
		})
		require.ErrorIs(t, err, errs.ErrDomainValidation)

		_, err = invoker.Execute(context.Background(), actorID, usecase.CommandInput{
			Kind:      shared.CommandUpdateStatus,
			NewStatus: statusPtr(request.StatusReviewed),
		})
		require.ErrorIs(t, err, errs.ErrDomainValidation)
	})

	t.Run("missing request", func(t *testing.T) {
		store := fake.NewStore()
		invoker, _ := newInvoker(store, defaultUndoDepth)

		_, err := invoker.Execute(context.Background(), actorID, updateStatusInput(uuid.New(), request.StatusReviewed))
		require.ErrorIs(t, err, errs.ErrRequestNotFound)
	})
}

func TestUndo(t *testing.T) {
	actorID := uuid.New()

	t.Run("empty stack", func(t *testing.T) {
		store := fake.NewStore()
		invoker, _ := newInvoker(store, defaultUndoDepth)

		_, err := invoker.Undo(context.Background(), actorID)
		require.ErrorIs(t, err, errs.ErrNothingToUndo)
	})

	t.Run("assignment undo restores assignee and driven status", func(t *testing.T) {
		store := fake.NewStore()
		invoker, _ := newInvoker(store, defaultUndoDepth)

		rec := builder.NewServiceRequestBuilder().BuildRecord(request.StatusReviewed)
		store.Seed(rec)
		techID := uuid.New()

		_, err := invoker.Execute(context.Background(), actorID, assignInput(rec.ID, &techID))
		require.NoError(t, err)

		res, err := invoker.Undo(context.Background(), actorID)
		require.NoError(t, err)

		assert.Equal(t, request.StatusReviewed, res.Request.Status)
		assert.Nil(t, res.Request.AssignedTo)
		assert.False(t, res.CanUndo)
		assert.True(t, res.CanRedo)
		assert.Equal(t, 0, store.StackCount(actorID, shared.StackUndo))
		assert.Equal(t, 1, store.StackCount(actorID, shared.StackRedo))
	})

	t.Run("assignment undo leaves an undriven status alone", func(t *testing.T) {
		store := fake.NewStore()
		invoker, _ := newInvoker(store, defaultUndoDepth)

		rec := builder.NewServiceRequestBuilder().BuildRecord(request.StatusPending)
		store.Seed(rec)
		techID := uuid.New()

		_, err := invoker.Execute(context.Background(), actorID, assignInput(rec.ID, &techID))
		require.NoError(t, err)

		res, err := invoker.Undo(context.Background(), actorID)
		require.NoError(t, err)

		assert.Equal(t, request.StatusPending, res.Request.Status)
		assert.Nil(t, res.Request.AssignedTo)
	})

	t.Run("status undo fails when the reverse hop is not in the table", func(t *testing.T) {
		store := fake.NewStore()
		invoker, _ := newInvoker(store, defaultUndoDepth)

		rec := builder.NewServiceRequestBuilder().BuildRecord(request.StatusInProgress)
		store.Seed(rec)

		_, err := invoker.Execute(context.Background(), actorID, updateStatusInput(rec.ID, request.StatusCompleted))
		require.NoError(t, err)

		_, err = invoker.Undo(context.Background(), actorID)
		require.ErrorIs(t, err, errs.ErrUndoNotPossible)

		stored, ok := store.Request(rec.ID)
		require.True(t, ok)
		assert.Equal(t, request.StatusCompleted, stored.Status)
		assert.Equal(t, 1, store.StackCount(actorID, shared.StackUndo), "failed undo must not consume the command")
		assert.Equal(t, 0, store.StackCount(actorID, shared.StackRedo))
	})
}

func TestRedo(t *testing.T) {
	actorID := uuid.New()

	t.Run("empty stack", func(t *testing.T) {
		store := fake.NewStore()
		invoker, _ := newInvoker(store, defaultUndoDepth)

		_, err := invoker.Redo(context.Background(), actorID)
		require.ErrorIs(t, err, errs.ErrNothingToRedo)
	})

	t.Run("redo reapplies an undone assignment", func(t *testing.T) {
		store := fake.NewStore()
		invoker, _ := newInvoker(store, defaultUndoDepth)

		rec := builder.NewServiceRequestBuilder().BuildRecord(request.StatusReviewed)
		store.Seed(rec)
		techID := uuid.New()

		_, err := invoker.Execute(context.Background(), actorID, assignInput(rec.ID, &techID))
		require.NoError(t, err)
		_, err = invoker.Undo(context.Background(), actorID)
		require.NoError(t, err)

		res, err := invoker.Redo(context.Background(), actorID)
		require.NoError(t, err)

		assert.Equal(t, request.StatusAssigned, res.Request.Status)
		require.NotNil(t, res.Request.AssignedTo)
		assert.Equal(t, techID, *res.Request.AssignedTo)
		assert.True(t, res.CanUndo)
		assert.False(t, res.CanRedo)
		assert.Equal(t, 1, store.StackCount(actorID, shared.StackUndo))
		assert.Equal(t, 0, store.StackCount(actorID, shared.StackRedo))
	})
}

// The round trip holds for any command sequence whose inverses are
// themselves applicable, which in practice means assignment chains: a
// status change forward through the table has no legal reverse hop.
func TestUndoRedoRoundTrip(t *testing.T) {
	actorID := uuid.New()
	store := fake.NewStore()
	invoker, _ := newInvoker(store, defaultUndoDepth)

	rec := builder.NewServiceRequestBuilder().BuildRecord(request.StatusReviewed)
	store.Seed(rec)
	before, _ := store.Request(rec.ID)

	techA := uuid.New()
	techB := uuid.New()
	inputs := []usecase.CommandInput{
		assignInput(rec.ID, &techA),
		assignInput(rec.ID, &techB),
		assignInput(rec.ID, nil),
	}
	for _, in := range inputs {
		_, err := invoker.Execute(context.Background(), actorID, in)
		require.NoError(t, err)
	}
	after, _ := store.Request(rec.ID)
	assert.Equal(t, request.StatusAssigned, after.Status)
	assert.Nil(t, after.AssignedTo)

	for range inputs {
		_, err := invoker.Undo(context.Background(), actorID)
		require.NoError(t, err)
	}
	restored, _ := store.Request(rec.ID)
	assert.Equal(t, before, restored)
	assert.Equal(t, 0, store.StackCount(actorID, shared.StackUndo))
	assert.Equal(t, 3, store.StackCount(actorID, shared.StackRedo))

	for range inputs {
		_, err := invoker.Redo(context.Background(), actorID)
		require.NoError(t, err)
	}
	replayed, _ := store.Request(rec.ID)
	assert.Equal(t, after, replayed)
	assert.Equal(t, 3, store.StackCount(actorID, shared.StackUndo))
	assert.Equal(t, 0, store.StackCount(actorID, shared.StackRedo))
}

func TestCanUndoCanRedo(t *testing.T) {
	actorID := uuid.New()
	store := fake.NewStore()
	invoker, _ := newInvoker(store, defaultUndoDepth)

	rec := builder.NewServiceRequestBuilder().BuildRecord(request.StatusPending)
	store.Seed(rec)

	canUndo, err := invoker.CanUndo(context.Background(), actorID)
	require.NoError(t, err)
	assert.False(t, canUndo)
	canRedo, err := invoker.CanRedo(context.Background(), actorID)
	require.NoError(t, err)
	assert.False(t, canRedo)

	_, err = invoker.Execute(context.Background(), actorID, updateStatusInput(rec.ID, request.StatusReviewed))
	require.NoError(t, err)

	canUndo, err = invoker.CanUndo(context.Background(), actorID)
	require.NoError(t, err)
	assert.True(t, canUndo)

	// Stacks are keyed by actor; another actor starts empty.
	canUndo, err = invoker.CanUndo(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, canUndo)
}
