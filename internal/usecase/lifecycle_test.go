//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"civicdesk/internal/domain/request"
	"civicdesk/internal/pkg/clock"
	"civicdesk/internal/pkg/errs"
	"civicdesk/internal/usecase"
	"civicdesk/tests/common/builder"
	"civicdesk/tests/common/fake"
	usecasemock "civicdesk/tests/mock/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testStart = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newLifecycle(t *testing.T, store *fake.Store, notifier usecase.Notifier) (usecase.LifecycleCommands, *clock.MockClock) {
	t.Helper()
	clk := clock.NewMockClock(testStart)
	hooks := request.Hooks{}
	if notifier != nil {
		hooks = usecase.NewLifecycleHooks(notifier)
	}
	registry := request.NewRegistry(hooks)
	return usecase.NewLifecycleUseCase(store, registry, clk), clk
}

func TestCreateRequest(t *testing.T) {
	t.Run("success: enters pending with a creation audit row", func(t *testing.T) {
		store := fake.NewStore()
		uc, _ := newLifecycle(t, store, nil)

		created, err := uc.CreateRequest(context.Background(), usecase.CreateRequestParams{
			Category:    "streetlight",
			Title:       "Streetlight out on Oak Ave",
			Description: "Pole 41 has been dark for three nights.",
			Location:    "Oak Ave & 9th St",
			Priority:    "high",
			RequesterID: uuid.New(),
		})
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, request.StatusPending, created.Status)

		stored, ok := store.Request(created.ID)
		require.True(t, ok)
		assert.Equal(t, *created, stored)

		entries := store.AuditEntries(created.ID)
		require.Len(t, entries, 1)
		assert.Nil(t, entries[0].OldStatus)
		assert.Equal(t, request.StatusPending, entries[0].NewStatus)
	})

	t.Run("error: invalid input fails domain validation", func(t *testing.T) {
		store := fake.NewStore()
		uc, _ := newLifecycle(t, store, nil)

		_, err := uc.CreateRequest(context.Background(), usecase.CreateRequestParams{
			Category:    "pothole",
			Title:       "",
			Location:    "Main St",
			Priority:    "normal",
			RequesterID: uuid.New(),
		})
		require.ErrorIs(t, err, errs.ErrDomainValidation)
	})

	t.Run("entry hook fires after creation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := usecasemock.NewMockNotifier(ctrl)
		notifier.EXPECT().StatusChanged(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		store := fake.NewStore()
		uc, _ := newLifecycle(t, store, notifier)

		_, err := uc.CreateRequest(context.Background(), usecase.CreateRequestParams{
			Category:    "pothole",
			Title:       "Pothole on Main Street",
			Location:    "Main St & 3rd Ave",
			Priority:    "normal",
			RequesterID: uuid.New(),
		})
		require.NoError(t, err)
	})
}

func TestTransition(t *testing.T) {
	actorID := uuid.New()

	t.Run("legal transition updates status and appends audit row", func(t *testing.T) {
		store := fake.NewStore()
		uc, clk := newLifecycle(t, store, nil)

		rec := builder.NewServiceRequestBuilder().BuildRecord(request.StatusPending)
		store.Seed(rec)
		clk.Advance(time.Hour)

		updated, err := uc.Transition(context.Background(), rec.ID, request.StatusReviewed, actorID, "triage done")
		require.NoError(t, err)
		assert.Equal(t, request.StatusReviewed, updated.Status)
		assert.Equal(t, clk.Now(), updated.UpdatedAt)

		entries := store.AuditEntries(rec.ID)
		require.Len(t, entries, 1)
		require.NotNil(t, entries[0].OldStatus)
		assert.Equal(t, request.StatusPending, *entries[0].OldStatus)
		assert.Equal(t, request.StatusReviewed, entries[0].NewStatus)
		assert.Equal(t, "triage done", entries[0].Notes)
	})

	t.Run("every illegal pair is rejected without mutation or audit", func(t *testing.T) {
		for _, from := range request.AllStatuses() {
			for _, to := range request.AllStatuses() {
				if request.CanTransition(from, to) {
					continue
				}
				store := fake.NewStore()
				uc, _ := newLifecycle(t, store, nil)

				rec := builder.NewServiceRequestBuilder().BuildRecord(from)
				store.Seed(rec)

				_, err := uc.Transition(context.Background(), rec.ID, to, actorID, "")
				require.ErrorIs(t, err, errs.ErrIllegalTransition, "%s -> %s", from, to)

				after, ok := store.Request(rec.ID)
				require.True(t, ok)
				assert.Equal(t, rec, after, "%s -> %s must not mutate", from, to)
				assert.Empty(t, store.AuditEntries(rec.ID), "%s -> %s must not audit", from, to)
			}
		}
	})

	t.Run("unknown target status", func(t *testing.T) {
		store := fake.NewStore()
		uc, _ := newLifecycle(t, store, nil)

		rec := builder.NewServiceRequestBuilder().BuildRecord(request.StatusPending)
		store.Seed(rec)

		_, err := uc.Transition(context.Background(), rec.ID, request.Status("on_hold"), actorID, "")
		require.ErrorIs(t, err, errs.ErrUnknownState)
	})

	t.Run("missing request", func(t *testing.T) {
		store := fake.NewStore()
		uc, _ := newLifecycle(t, store, nil)

		_, err := uc.Transition(context.Background(), uuid.New(), request.StatusReviewed, actorID, "")
		require.ErrorIs(t, err, errs.ErrRequestNotFound)
	})

	t.Run("hook failure does not poison a committed transition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := usecasemock.NewMockNotifier(ctrl)
		notifier.EXPECT().StatusChanged(gomock.Any(), gomock.Any()).
			Return(errors.New("smtp unreachable")).Times(1)

		store := fake.NewStore()
		uc, _ := newLifecycle(t, store, notifier)

		rec := builder.NewServiceRequestBuilder().BuildRecord(request.StatusPending)
		store.Seed(rec)

		updated, err := uc.Transition(context.Background(), rec.ID, request.StatusReviewed, actorID, "")
		require.NoError(t, err)
		assert.Equal(t, request.StatusReviewed, updated.Status)
	})

	t.Run("entry hook observes the new status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := usecasemock.NewMockNotifier(ctrl)

		var observed request.Status
		notifier.EXPECT().StatusChanged(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, rec request.Record) error {
				observed = rec.Status
				return nil
			}).Times(1)

		store := fake.NewStore()
		uc, _ := newLifecycle(t, store, notifier)

		rec := builder.NewServiceRequestBuilder().BuildRecord(request.StatusInProgress)
		store.Seed(rec)

		_, err := uc.Transition(context.Background(), rec.ID, request.StatusCompleted, actorID, "")
		require.NoError(t, err)
		assert.Equal(t, request.StatusCompleted, observed)
	})
}
