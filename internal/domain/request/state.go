package request

import (
	"context"
	"errors"
)

var ErrUnknownState = errors.New("unknown request state")

// transitionTable is the authoritative map of legal status changes.
// Every status change outside this table must be rejected, with one
// documented exception: snapshot restore, which is a privileged
// administrative path that never consults the table.
var transitionTable = map[Status][]Status{
	StatusPending:    {StatusReviewed, StatusCancelled},
	StatusReviewed:   {StatusAssigned, StatusCancelled},
	StatusAssigned:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// Hook is a side effect bound to entering or leaving a state. Hooks run
// after the status mutation has committed and are best-effort: callers
// log failures instead of propagating them.
type Hook func(ctx context.Context, rec *Record) error

// Hooks carries the entry/exit side effects to bind into a registry.
type Hooks struct {
	OnEnter map[Status][]Hook
	OnExit  map[Status][]Hook
}

// State describes one lifecycle status: its legal outgoing transitions
// and the side effects of entering or leaving it.
type State struct {
	status  Status
	next    map[Status]struct{}
	onEnter []Hook
	onExit  []Hook
}

func (s *State) Status() Status {
	return s.status
}

// CanTransitionTo is a pure predicate over the transition table.
func (s *State) CanTransitionTo(target Status) bool {
	_, ok := s.next[target]
	return ok
}

// AllowedTargets returns the outgoing set in table order.
func (s *State) AllowedTargets() []Status {
	targets := make([]Status, 0, len(s.next))
	for _, candidate := range transitionTable[s.status] {
		if _, ok := s.next[candidate]; ok {
			targets = append(targets, candidate)
		}
	}
	return targets
}

// Enter runs the entry hooks for this state. All hooks run even if an
// earlier one fails; failures are joined and returned for logging.
func (s *State) Enter(ctx context.Context, rec *Record) error {
	return runHooks(ctx, s.onEnter, rec)
}

// Exit runs the exit hooks for this state.
func (s *State) Exit(ctx context.Context, rec *Record) error {
	return runHooks(ctx, s.onExit, rec)
}

func runHooks(ctx context.Context, hooks []Hook, rec *Record) error {
	var errs []error
	for _, h := range hooks {
		if err := h(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Registry resolves a status name to its State descriptor.
type Registry struct {
	states map[Status]*State
}

// NewRegistry builds the registry from the transition table, binding the
// given hooks. A zero Hooks value yields a registry with no side effects.
func NewRegistry(hooks Hooks) *Registry {
	states := make(map[Status]*State, len(transitionTable))
	for status, targets := range transitionTable {
		next := make(map[Status]struct{}, len(targets))
		for _, t := range targets {
			next[t] = struct{}{}
		}
		states[status] = &State{
			status:  status,
			next:    next,
			onEnter: hooks.OnEnter[status],
			onExit:  hooks.OnExit[status],
		}
	}
	return &Registry{states: states}
}

// State returns the descriptor for name, or ErrUnknownState when name is
// not in the enumerated set (a corrupt stored value, for instance).
func (r *Registry) State(name Status) (*State, error) {
	s, ok := r.states[name]
	if !ok {
		return nil, ErrUnknownState
	}
	return s, nil
}

// CanTransition is a convenience predicate over the table for callers
// that do not need the full descriptor.
func CanTransition(from, to Status) bool {
	for _, t := range transitionTable[from] {
		if t == to {
			return true
		}
	}
	return false
}
