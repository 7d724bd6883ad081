// Package memory implements the storage interfaces on plain maps guarded by
// a single mutex. It backs tests and local development; transactions stage
// their writes on copies and swap them in on commit, so the commit-or-abort
// contract matches the PostgreSQL backend. The store-wide lock is coarser
// than the per-stamp serialization the engine requires, which is acceptable
// at this backend's scale.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"stamps/pkg/domain"
	"stamps/pkg/storage"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// Store is an in-memory storage.Storage implementation.
type Store struct {
	// sem serializes transactions. A weighted semaphore instead of a mutex so
	// Begin can respect context cancellation while waiting.
	sem    *semaphore.Weighted
	stamps map[domain.StampID]domain.Stamp
	votes  map[domain.UserID]map[domain.StampID]domain.VoteKind

	// now is replaceable in tests
	now func() time.Time
}

var _ storage.Storage = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		sem:    semaphore.NewWeighted(1),
		stamps: make(map[domain.StampID]domain.Stamp),
		votes:  make(map[domain.UserID]map[domain.StampID]domain.VoteKind),
		now:    time.Now,
	}
}

// Close releases nothing; it exists to satisfy storage.Storage.
func (s *Store) Close() error { return nil }

// Tx is a staged view of the store. Reads and writes go to copies; Commit
// swaps the copies in, Rollback discards them. The store's semaphore is held
// for the lifetime of the transaction.
type Tx struct {
	store  *Store
	stamps map[domain.StampID]domain.Stamp
	votes  map[domain.UserID]map[domain.StampID]domain.VoteKind
	done   bool
}

var _ storage.TxStorage = (*Tx)(nil)

// Begin acquires the store lock and returns a transactional handle with a
// staged copy of the current state.
func (s *Store) Begin(ctx context.Context) (storage.TxStorage, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, err //nolint: wrapcheck
	}

	votes := make(map[domain.UserID]map[domain.StampID]domain.VoteKind, len(s.votes))
	for user, ledger := range s.votes {
		votes[user] = maps.Clone(ledger)
	}

	return &Tx{
		store:  s,
		stamps: maps.Clone(s.stamps),
		votes:  votes,
	}, nil
}

// WithTx begins a transaction, runs the callback and commits on success or
// rolls back when the callback errors.
func (s *Store) WithTx(ctx context.Context, cb func(storage storage.AllStorage) error) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}

	if err := cb(tx); err != nil {
		_ = tx.Rollback()

		return err
	}

	return tx.Commit()
}

// Commit publishes the staged state and releases the store lock.
func (t *Tx) Commit() error {
	if t.done {
		return storage.ErrNotInTx
	}
	t.done = true

	t.store.stamps = t.stamps
	t.store.votes = t.votes
	t.store.sem.Release(1)

	return nil
}

// Rollback discards the staged state and releases the store lock.
func (t *Tx) Rollback() error {
	if t.done {
		return storage.ErrNotInTx
	}
	t.done = true
	t.store.sem.Release(1)

	return nil
}

// Non-transactional reads and writes run as single-operation transactions.

func (s *Store) StoreStamp(ctx context.Context, stamp domain.Stamp) (*domain.Stamp, error) {
	var stored *domain.Stamp
	err := s.WithTx(ctx, func(tx storage.AllStorage) error {
		var err error
		stored, err = tx.StoreStamp(ctx, stamp)

		return err
	})

	return stored, err
}

func (s *Store) Stamps(ctx context.Context) ([]domain.Stamp, error) {
	var out []domain.Stamp
	err := s.WithTx(ctx, func(tx storage.AllStorage) error {
		var err error
		out, err = tx.Stamps(ctx)

		return err
	})

	return out, err
}

func (s *Store) StampByID(ctx context.Context, id domain.StampID, forUpdate bool) (*domain.Stamp, error) {
	var out *domain.Stamp
	err := s.WithTx(ctx, func(tx storage.AllStorage) error {
		var err error
		out, err = tx.StampByID(ctx, id, forUpdate)

		return err
	})

	return out, err
}

func (s *Store) DeleteStamp(ctx context.Context, id domain.StampID) (bool, error) {
	var deleted bool
	err := s.WithTx(ctx, func(tx storage.AllStorage) error {
		var err error
		deleted, err = tx.DeleteStamp(ctx, id)

		return err
	})

	return deleted, err
}

func (s *Store) ApplyVoteDelta(ctx context.Context,
	id domain.StampID,
	likeDelta, dislikeDelta int) (int, int, error) {
	var likes, dislikes int
	err := s.WithTx(ctx, func(tx storage.AllStorage) error {
		var err error
		likes, dislikes, err = tx.ApplyVoteDelta(ctx, id, likeDelta, dislikeDelta)

		return err
	})

	return likes, dislikes, err
}

func (s *Store) VoteByUser(ctx context.Context,
	userID domain.UserID,
	stampID domain.StampID) (domain.VoteKind, error) {
	var kind domain.VoteKind
	err := s.WithTx(ctx, func(tx storage.AllStorage) error {
		var err error
		kind, err = tx.VoteByUser(ctx, userID, stampID)

		return err
	})

	return kind, err
}

func (s *Store) UserVotes(ctx context.Context,
	userID domain.UserID) (map[domain.StampID]domain.VoteKind, error) {
	var votes map[domain.StampID]domain.VoteKind
	err := s.WithTx(ctx, func(tx storage.AllStorage) error {
		var err error
		votes, err = tx.UserVotes(ctx, userID)

		return err
	})

	return votes, err
}

func (s *Store) SetVote(ctx context.Context,
	userID domain.UserID,
	stampID domain.StampID,
	kind domain.VoteKind) error {
	return s.WithTx(ctx, func(tx storage.AllStorage) error {
		return tx.SetVote(ctx, userID, stampID, kind)
	})
}

func (s *Store) ClearVote(ctx context.Context,
	userID domain.UserID,
	stampID domain.StampID) error {
	return s.WithTx(ctx, func(tx storage.AllStorage) error {
		return tx.ClearVote(ctx, userID, stampID)
	})
}

// Transactional implementations.

func (t *Tx) StoreStamp(_ context.Context, stamp domain.Stamp) (*domain.Stamp, error) {
	stamp.ID = domain.StampID(uuid.New())
	stamp.Likes = 0
	stamp.Dislikes = 0
	stamp.CreatedAt = t.store.now()

	t.stamps[stamp.ID] = stamp

	return &stamp, nil
}

func (t *Tx) Stamps(_ context.Context) ([]domain.Stamp, error) {
	out := make([]domain.Stamp, 0, len(t.stamps))
	for _, s := range t.stamps {
		out = append(out, s)
	}
	// stable order matching the SQL backend
	slices.SortFunc(out, func(a, b domain.Stamp) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		return strings.Compare(a.ID.String(), b.ID.String())
	})

	return out, nil
}

func (t *Tx) StampByID(_ context.Context, id domain.StampID, _ bool) (*domain.Stamp, error) {
	// forUpdate is implied: the transaction already holds the store lock
	s, ok := t.stamps[id]
	if !ok {
		return nil, nil
	}

	return &s, nil
}

func (t *Tx) DeleteStamp(_ context.Context, id domain.StampID) (bool, error) {
	// ledger entries referencing the stamp stay behind
	if _, ok := t.stamps[id]; !ok {
		return false, nil
	}
	delete(t.stamps, id)

	return true, nil
}

func (t *Tx) ApplyVoteDelta(_ context.Context,
	id domain.StampID,
	likeDelta, dislikeDelta int) (int, int, error) {
	s, ok := t.stamps[id]
	if !ok {
		return 0, 0, fmt.Errorf("stamp %s vanished mid-transaction", id)
	}

	s.Likes = max(0, s.Likes+likeDelta)
	s.Dislikes = max(0, s.Dislikes+dislikeDelta)
	t.stamps[id] = s

	return s.Likes, s.Dislikes, nil
}

func (t *Tx) VoteByUser(_ context.Context,
	userID domain.UserID,
	stampID domain.StampID) (domain.VoteKind, error) {
	return t.votes[userID][stampID], nil
}

func (t *Tx) UserVotes(_ context.Context,
	userID domain.UserID) (map[domain.StampID]domain.VoteKind, error) {
	return maps.Clone(t.votes[userID]), nil
}

func (t *Tx) SetVote(_ context.Context,
	userID domain.UserID,
	stampID domain.StampID,
	kind domain.VoteKind) error {
	ledger, ok := t.votes[userID]
	if !ok {
		ledger = make(map[domain.StampID]domain.VoteKind)
		t.votes[userID] = ledger
	}
	ledger[stampID] = kind

	return nil
}

func (t *Tx) ClearVote(_ context.Context,
	userID domain.UserID,
	stampID domain.StampID) error {
	delete(t.votes[userID], stampID)

	return nil
}
