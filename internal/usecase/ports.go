package usecase

import (
	"context"

	"civicdesk/internal/domain/request"
)

// Notifier is the outbound port for status-changed events. Delivery
// channels (email, SMS, in-app) belong to external collaborators; the
// core only hands them the fact that a request entered a new status.
// Calls happen after the transition has committed and are best-effort.
type Notifier interface {
	StatusChanged(ctx context.Context, rec request.Record) error
}

// NewLifecycleHooks binds the notifier to every state's entry hook.
func NewLifecycleHooks(notifier Notifier) request.Hooks {
	onEnter := make(map[request.Status][]request.Hook)
	for _, status := range request.AllStatuses() {
		onEnter[status] = []request.Hook{
			func(ctx context.Context, rec *request.Record) error {
				return notifier.StatusChanged(ctx, *rec)
			},
		}
	}
	return request.Hooks{OnEnter: onEnter}
}
