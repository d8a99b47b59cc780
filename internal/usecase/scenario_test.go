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

// End-to-end walk over one request: triage, assignment through the
// command log, a change of heart, and cancellation.
func TestRequestLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()
	techID := uuid.New()

	store := fake.NewStore()
	clk := clock.NewMockClock(testStart)
	registry := request.NewRegistry(request.Hooks{})
	lifecycle := usecase.NewLifecycleUseCase(store, registry, clk)
	invoker := usecase.NewCommandInvoker(store, registry, clk, defaultUndoDepth)

	rec := builder.NewServiceRequestBuilder().BuildRecord(request.StatusPending)
	store.Seed(rec)

	// Triage: pending -> reviewed.
	updated, err := lifecycle.Transition(ctx, rec.ID, request.StatusReviewed, adminID, "ok")
	require.NoError(t, err)
	assert.Equal(t, request.StatusReviewed, updated.Status)
	assert.Len(t, store.AuditEntries(rec.ID), 1)

	// Assignment through the command log drives the status to assigned.
	res, err := invoker.Execute(ctx, adminID, usecase.CommandInput{
		Kind:         shared.CommandAssignTechnician,
		RequestID:    rec.ID,
		TechnicianID: &techID,
	})
	require.NoError(t, err)
	assert.Equal(t, request.StatusAssigned, res.Request.Status)
	assert.Equal(t, 1, store.StackCount(adminID, shared.StackUndo))

	// Change of heart: undo returns the request to reviewed.
	res, err = invoker.Undo(ctx, adminID)
	require.NoError(t, err)
	assert.Equal(t, request.StatusReviewed, res.Request.Status)
	assert.Nil(t, res.Request.AssignedTo)
	assert.Equal(t, 0, store.StackCount(adminID, shared.StackUndo))
	assert.Equal(t, 1, store.StackCount(adminID, shared.StackRedo))

	// reviewed -> cancelled is legal.
	updated, err = lifecycle.Transition(ctx, rec.ID, request.StatusCancelled, adminID, "never mind")
	require.NoError(t, err)
	assert.Equal(t, request.StatusCancelled, updated.Status)

	// Cancelled is terminal.
	_, err = lifecycle.Transition(ctx, rec.ID, request.StatusAssigned, adminID, "x")
	require.ErrorIs(t, err, errs.ErrIllegalTransition)
}
