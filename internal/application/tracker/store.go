// Package tracker is the application layer of the attendance tracker. Store
// owns the ordered collection of records, applies every mutation and keeps
// the persisted entry in step with memory.
package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alem-hub/attendance-tracker/internal/domain/attendance"
	"github.com/alem-hub/attendance-tracker/internal/domain/shared"
	"github.com/alem-hub/attendance-tracker/pkg/logger"
	"github.com/alem-hub/attendance-tracker/pkg/retry"
)

// DefaultWriteAttempts is how many times a save is tried before the failure
// is reported to the caller.
const DefaultWriteAttempts = 3

// ══════════════════════════════════════════════════════════════════════════════
// OPTIONS
// ══════════════════════════════════════════════════════════════════════════════

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPolicy sets the attendance policy used by Status and Projection.
func WithPolicy(p attendance.Policy) Option {
	return func(s *Store) {
		s.policy = p
	}
}

// WithRetrier sets the retrier used for saves.
func WithRetrier(r *retry.Retrier) Option {
	return func(s *Store) {
		if r != nil {
			s.retrier = r
		}
	}
}

// WithWriteAttempts is a shortcut for WithRetrier(retry.PersistenceRetrier(n)).
func WithWriteAttempts(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.retrier = retry.PersistenceRetrier(n)
		}
	}
}

// WithRollbackOnWriteFailure makes a failed save undo the mutation, so memory
// never gets ahead of storage. By default the mutation is kept and the store
// is marked dirty.
func WithRollbackOnWriteFailure() Option {
	return func(s *Store) {
		s.rollback = true
	}
}

// WithIDGenerator replaces the ID source for new records.
func WithIDGenerator(fn func() attendance.ID) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// STORE
// ══════════════════════════════════════════════════════════════════════════════

// Store holds the records in insertion order. It is meant for a single
// writer and does no locking.
type Store struct {
	repo     attendance.Repository
	log      *logger.Logger
	policy   attendance.Policy
	retrier  *retry.Retrier
	rollback bool
	newID    func() attendance.ID

	records []attendance.Record
	dirty   bool
}

// New creates an empty store backed by repo. Call Load to hydrate it.
func New(repo attendance.Repository, opts ...Option) *Store {
	s := &Store{
		repo:    repo,
		log:     logger.NewNop(),
		policy:  attendance.DefaultPolicy(),
		retrier: retry.PersistenceRetrier(DefaultWriteAttempts),
		newID:   func() attendance.ID { return attendance.ID(uuid.NewString()) },
		records: []attendance.Record{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("tracker"))
	return s
}

// Load replaces the in-memory records with the persisted entry.
//
// A malformed entry is logged and the store starts empty; the next write
// replaces it. Any other read error is returned and the store is unchanged.
func (s *Store) Load(ctx context.Context) error {
	start := time.Now()

	records, err := s.repo.Load(ctx)
	if err != nil {
		if shared.IsPersistenceRead(err) {
			s.log.Warn("persisted entry is malformed, starting empty", logger.Err(err))
			s.records = []attendance.Record{}
			s.dirty = false
			return nil
		}
		return fmt.Errorf("tracker: load: %w", err)
	}

	s.records = records
	s.dirty = false
	s.log.Info("records loaded",
		logger.RecordCount(len(records)),
		logger.Latency(time.Since(start)),
	)
	return nil
}

// Policy returns the attendance policy of the store.
func (s *Store) Policy() attendance.Policy {
	return s.policy
}

// Dirty reports whether memory holds changes that failed to persist.
func (s *Store) Dirty() bool {
	return s.dirty
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// List returns a copy of all records in insertion order.
func (s *Store) List() []attendance.Record {
	out := make([]attendance.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(id attendance.ID) (attendance.Record, error) {
	i := s.index(id)
	if i < 0 {
		return attendance.Record{}, notFound("Get", id)
	}
	return s.records[i], nil
}

// Aggregate sums the counters over all records.
func (s *Store) Aggregate() attendance.Summary {
	return attendance.Summarize(s.records)
}

// ══════════════════════════════════════════════════════════════════════════════
// MUTATIONS
// Every effective mutation rewrites the whole entry. On a failed write the
// returned error matches shared.ErrPersistenceWrite; unless rollback is
// enabled the mutation stays applied and the record is returned with it.
// ══════════════════════════════════════════════════════════════════════════════

// Add appends a new record with a freshly generated id.
func (s *Store) Add(ctx context.Context, cmd AddSubject) (attendance.Record, error) {
	if err := cmd.Validate(); err != nil {
		return attendance.Record{}, err
	}

	id := s.newID()
	if s.index(id) >= 0 {
		return attendance.Record{}, shared.NewDomainError("tracker", "Add", shared.ErrInvalidID,
			fmt.Sprintf("generated id %s is already in use", id))
	}

	rec, err := attendance.NewRecord(id, cmd.Name, cmd.Attended, cmd.Total)
	if err != nil {
		return attendance.Record{}, err
	}

	prev := s.snapshot()
	s.records = append(s.records, *rec)
	if err := s.commit(ctx, "Add", prev, rec.ID); err != nil {
		if s.rollback {
			return attendance.Record{}, err
		}
		return *rec, err
	}

	s.log.Info("record added", logger.RecordID(rec.ID.String()), logger.Subject(rec.Name))
	return *rec, nil
}

// Edit replaces name and both counters of an existing record.
func (s *Store) Edit(ctx context.Context, cmd EditSubject) (attendance.Record, error) {
	if err := cmd.Validate(); err != nil {
		return attendance.Record{}, err
	}

	i := s.index(cmd.ID)
	if i < 0 {
		return attendance.Record{}, notFound("Edit", cmd.ID)
	}

	updated := s.records[i]
	if err := updated.Update(cmd.Name, cmd.Attended, cmd.Total); err != nil {
		return attendance.Record{}, err
	}
	if updated == s.records[i] {
		return updated, nil
	}

	return s.replace(ctx, "Edit", i, updated)
}

// Delete removes the record with the given id.
func (s *Store) Delete(ctx context.Context, id attendance.ID) error {
	i := s.index(id)
	if i < 0 {
		return notFound("Delete", id)
	}

	prev := s.snapshot()
	s.records = append(s.records[:i:i], s.records[i+1:]...)
	if err := s.commit(ctx, "Delete", prev, id); err != nil {
		return err
	}

	s.log.Info("record deleted", logger.RecordID(id.String()))
	return nil
}

// RecordPresent counts an attended class.
func (s *Store) RecordPresent(ctx context.Context, id attendance.ID) (attendance.Record, error) {
	return s.transition(ctx, "RecordPresent", id, (*attendance.Record).MarkPresent)
}

// RecordAbsent counts a missed class.
func (s *Store) RecordAbsent(ctx context.Context, id attendance.ID) (attendance.Record, error) {
	return s.transition(ctx, "RecordAbsent", id, (*attendance.Record).MarkAbsent)
}

// UndoAttended removes one attended class. It does nothing when there is
// none to remove.
func (s *Store) UndoAttended(ctx context.Context, id attendance.ID) (attendance.Record, error) {
	return s.transition(ctx, "UndoAttended", id, (*attendance.Record).UndoPresent)
}

// UndoAbsent removes one missed class. It does nothing when there is none
// to remove.
func (s *Store) UndoAbsent(ctx context.Context, id attendance.ID) (attendance.Record, error) {
	return s.transition(ctx, "UndoAbsent", id, (*attendance.Record).UndoAbsent)
}

// Flush retries the save of a dirty store. It is a no-op when clean.
func (s *Store) Flush(ctx context.Context) error {
	if !s.dirty {
		return nil
	}
	if err := s.save(ctx, "Flush"); err != nil {
		return err
	}
	s.log.Info("pending changes flushed", logger.RecordCount(len(s.records)))
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// INTERNALS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Store) transition(ctx context.Context, op string, id attendance.ID, apply func(*attendance.Record) bool) (attendance.Record, error) {
	i := s.index(id)
	if i < 0 {
		return attendance.Record{}, notFound(op, id)
	}

	updated := s.records[i]
	if !apply(&updated) {
		s.log.Debug("transition ignored", logger.Operation(op), logger.RecordID(id.String()))
		return updated, nil
	}
	return s.replace(ctx, op, i, updated)
}

func (s *Store) replace(ctx context.Context, op string, i int, updated attendance.Record) (attendance.Record, error) {
	prev := s.snapshot()
	s.records[i] = updated
	if err := s.commit(ctx, op, prev, updated.ID); err != nil {
		if s.rollback {
			return prev[i], err
		}
		return updated, err
	}

	s.log.Debug("record updated",
		logger.Operation(op),
		logger.RecordID(updated.ID.String()),
		logger.Int("attended", updated.Attended),
		logger.Int("total", updated.Total),
	)
	return updated, nil
}

// commit saves the current records. On failure it either restores prev or
// marks the store dirty.
func (s *Store) commit(ctx context.Context, op string, prev []attendance.Record, id attendance.ID) error {
	err := s.save(ctx, op)
	if err == nil {
		return nil
	}

	if s.rollback {
		s.records = prev
		s.log.Warn("write failed, change rolled back",
			logger.Operation(op), logger.RecordID(id.String()), logger.Err(err))
		return err
	}

	s.log.Warn("write failed, change kept in memory",
		logger.Operation(op), logger.RecordID(id.String()), logger.Err(err))
	return err
}

func (s *Store) save(ctx context.Context, op string) error {
	records := s.List()
	attempt := 0
	err := s.retrier.Do(ctx, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			s.log.Debug("retrying write", logger.Operation(op), logger.Attempt(attempt))
		}
		return s.repo.Save(ctx, records)
	})
	if err != nil {
		if !s.rollback {
			s.dirty = true
		}
		if shared.IsPersistenceWrite(err) {
			return err
		}
		return shared.WrapError("tracker", op, shared.ErrPersistenceWrite, "change may not survive a restart", err)
	}

	s.dirty = false
	return nil
}

func (s *Store) snapshot() []attendance.Record {
	return s.List()
}

func (s *Store) index(id attendance.ID) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

func notFound(op string, id attendance.ID) error {
	return shared.NewDomainError("tracker", op, shared.ErrNotFound, fmt.Sprintf("subject %s not found", id))
}
