package fake

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"civicdesk/internal/domain/request"
	"civicdesk/internal/infra"
	"civicdesk/internal/usecase/shared"

	"github.com/google/uuid"
)

// NotificationJob is one enqueued outbox row.
type NotificationJob struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

// Store is an in-memory stand-in for the Postgres unit of work. Each
// Within call works on a copy of the state and publishes it only on
// success, mirroring transactional rollback.
type Store struct {
	mu        sync.Mutex
	requests  map[uuid.UUID]request.Record
	audit     []shared.AuditEntry
	auditSeq  int64
	commands  map[uuid.UUID]shared.CommandRecord
	snapshots map[string]shared.SnapshotRecord
	jobs      []NotificationJob
}

func NewStore() *Store {
	return &Store{
		requests:  make(map[uuid.UUID]request.Record),
		commands:  make(map[uuid.UUID]shared.CommandRecord),
		snapshots: make(map[string]shared.SnapshotRecord),
	}
}

// Seed inserts a record directly, bypassing the repositories.
func (s *Store) Seed(rec request.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[rec.ID] = rec
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.snapshotState()
	tx := &fakeTx{store: s}
	if err := fn(ctx, tx); err != nil {
		s.restoreState(state)
		return err
	}
	return nil
}

func (s *Store) Reads() shared.Reads {
	return &fakeReads{store: s}
}

// CreateJob implements the notification outbox.
func (s *Store) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, NotificationJob{Kind: kind, Topic: topic, Payload: payload, RunAt: runAt})
	return nil
}

// Inspection helpers for assertions.

func (s *Store) Request(id uuid.UUID) (request.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.requests[id]
	return rec, ok
}

func (s *Store) AuditEntries(requestID uuid.UUID) []shared.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []shared.AuditEntry
	for _, e := range s.audit {
		if e.RequestID == requestID {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store) StackCount(actorID uuid.UUID, stack shared.CommandStack) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stackLocked(actorID, stack))
}

func (s *Store) SnapshotCount(requestID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, snap := range s.snapshots {
		if snap.RequestID == requestID {
			n++
		}
	}
	return n
}

func (s *Store) Jobs() []NotificationJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.jobs)
}

type storeState struct {
	requests  map[uuid.UUID]request.Record
	audit     []shared.AuditEntry
	auditSeq  int64
	commands  map[uuid.UUID]shared.CommandRecord
	snapshots map[string]shared.SnapshotRecord
	jobs      []NotificationJob
}

func (s *Store) snapshotState() storeState {
	return storeState{
		requests:  maps.Clone(s.requests),
		audit:     slices.Clone(s.audit),
		auditSeq:  s.auditSeq,
		commands:  maps.Clone(s.commands),
		snapshots: maps.Clone(s.snapshots),
		jobs:      slices.Clone(s.jobs),
	}
}

func (s *Store) restoreState(state storeState) {
	s.requests = state.requests
	s.audit = state.audit
	s.auditSeq = state.auditSeq
	s.commands = state.commands
	s.snapshots = state.snapshots
	s.jobs = state.jobs
}

// stackLocked returns the stack ordered by position ascending.
func (s *Store) stackLocked(actorID uuid.UUID, stack shared.CommandStack) []shared.CommandRecord {
	var out []shared.CommandRecord
	for _, rec := range s.commands {
		if rec.ActorID == actorID && rec.Stack == stack {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

type fakeTx struct {
	store *Store
}

func (t *fakeTx) Requests() shared.RequestRepository   { return &fakeRequests{store: t.store} }
func (t *fakeTx) Audit() shared.AuditRepository        { return &fakeAudit{store: t.store} }
func (t *fakeTx) CommandLog() shared.CommandLogRepository {
	return &fakeCommandLog{store: t.store}
}
func (t *fakeTx) Snapshots() shared.SnapshotRepository { return &fakeSnapshots{store: t.store} }
func (t *fakeTx) Reads() shared.Reads                  { return &fakeReads{store: t.store, inTx: true} }

type fakeRequests struct {
	store *Store
}

func (r *fakeRequests) Create(_ context.Context, req *request.ServiceRequest) (uuid.UUID, error) {
	rec := request.RecordFromEntity(req)
	r.store.requests[rec.ID] = rec
	return rec.ID, nil
}

func (r *fakeRequests) GetForUpdate(_ context.Context, id uuid.UUID) (*request.Record, error) {
	rec, ok := r.store.requests[id]
	if !ok {
		return nil, notFound("service request not found")
	}
	return &rec, nil
}

func (r *fakeRequests) UpdateStatus(_ context.Context, id uuid.UUID, to request.Status, now time.Time) error {
	rec, ok := r.store.requests[id]
	if !ok {
		return notFound("service request not found")
	}
	rec.Status = to
	rec.UpdatedAt = now
	r.store.requests[id] = rec
	return nil
}

func (r *fakeRequests) UpdateAssignment(_ context.Context, id uuid.UUID, technicianID *uuid.UUID, now time.Time) error {
	rec, ok := r.store.requests[id]
	if !ok {
		return notFound("service request not found")
	}
	rec.AssignedTo = technicianID
	rec.UpdatedAt = now
	r.store.requests[id] = rec
	return nil
}

func (r *fakeRequests) Overwrite(_ context.Context, rec request.Record) error {
	if _, ok := r.store.requests[rec.ID]; !ok {
		return notFound("service request not found")
	}
	r.store.requests[rec.ID] = rec
	return nil
}

type fakeAudit struct {
	store *Store
}

func (a *fakeAudit) Append(_ context.Context, entry shared.AuditEntry) error {
	a.store.auditSeq++
	entry.ID = a.store.auditSeq
	a.store.audit = append(a.store.audit, entry)
	return nil
}

type fakeCommandLog struct {
	store *Store
}

func (c *fakeCommandLog) Push(_ context.Context, rec shared.CommandRecord) error {
	c.store.commands[rec.ID] = rec
	return nil
}

func (c *fakeCommandLog) Top(_ context.Context, actorID uuid.UUID, stack shared.CommandStack) (*shared.CommandRecord, error) {
	entries := c.store.stackLocked(actorID, stack)
	if len(entries) == 0 {
		return nil, nil
	}
	top := entries[len(entries)-1]
	return &top, nil
}

func (c *fakeCommandLog) Move(_ context.Context, id uuid.UUID, stack shared.CommandStack, position int64) error {
	rec, ok := c.store.commands[id]
	if !ok {
		return notFound("command not found")
	}
	rec.Stack = stack
	rec.Position = position
	c.store.commands[id] = rec
	return nil
}

func (c *fakeCommandLog) NextPosition(_ context.Context, actorID uuid.UUID, stack shared.CommandStack) (int64, error) {
	entries := c.store.stackLocked(actorID, stack)
	if len(entries) == 0 {
		return 1, nil
	}
	return entries[len(entries)-1].Position + 1, nil
}

func (c *fakeCommandLog) Count(_ context.Context, actorID uuid.UUID, stack shared.CommandStack) (int64, error) {
	return int64(len(c.store.stackLocked(actorID, stack))), nil
}

func (c *fakeCommandLog) ClearRedo(_ context.Context, actorID uuid.UUID) error {
	for id, rec := range c.store.commands {
		if rec.ActorID == actorID && rec.Stack == shared.StackRedo {
			delete(c.store.commands, id)
		}
	}
	return nil
}

func (c *fakeCommandLog) PruneUndo(_ context.Context, actorID uuid.UUID, depth int) error {
	entries := c.store.stackLocked(actorID, shared.StackUndo)
	if len(entries) <= depth {
		return nil
	}
	for _, rec := range entries[:len(entries)-depth] {
		delete(c.store.commands, rec.ID)
	}
	return nil
}

type fakeSnapshots struct {
	store *Store
}

func (s *fakeSnapshots) Save(_ context.Context, rec shared.SnapshotRecord) error {
	s.store.snapshots[rec.Key] = rec
	return nil
}

func (s *fakeSnapshots) Get(_ context.Context, key string) (*shared.SnapshotRecord, error) {
	rec, ok := s.store.snapshots[key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *fakeSnapshots) ListByRequest(_ context.Context, requestID uuid.UUID) ([]shared.SnapshotRecord, error) {
	var out []shared.SnapshotRecord
	for _, rec := range s.store.snapshots {
		if rec.RequestID == requestID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeSnapshots) Remove(_ context.Context, key string) (bool, error) {
	if _, ok := s.store.snapshots[key]; !ok {
		return false, nil
	}
	delete(s.store.snapshots, key)
	return true, nil
}

func (s *fakeSnapshots) PruneOldest(_ context.Context, requestID uuid.UUID, keep int) error {
	all, _ := s.ListByRequest(context.Background(), requestID)
	if len(all) <= keep {
		return nil
	}
	for _, rec := range all[keep:] {
		delete(s.store.snapshots, rec.Key)
	}
	return nil
}

type fakeReads struct {
	store *Store
	inTx  bool
}

func (r *fakeReads) RequestByID(_ context.Context, id uuid.UUID) (*request.Record, error) {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	rec, ok := r.store.requests[id]
	if !ok {
		return nil, notFound("service request not found")
	}
	return &rec, nil
}

func (r *fakeReads) CommandCount(_ context.Context, actorID uuid.UUID, stack shared.CommandStack) (int64, error) {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	return int64(len(r.store.stackLocked(actorID, stack))), nil
}
