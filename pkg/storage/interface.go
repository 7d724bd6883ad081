// Package storage defines the storage interfaces the application relies on.
// It abstracts persistence and transaction management so different backends
// (PostgreSQL, in-memory) can provide concrete implementations.
package storage

import "context"

// AllStorage is a composite interface that includes all domain-specific
// storage capabilities: the stamp collection and the per-user vote ledger.
type AllStorage interface {
	StampStorage
	VoteStorage
}

// TxStorage describes a storage handle operating within a transaction. It
// exposes the same capabilities as AllStorage plus commit/rollback. The vote
// engine performs its counter and ledger updates through a TxStorage so both
// land as one atomic unit. Implementations become unusable after Commit or
// Rollback.
type TxStorage interface {
	AllStorage

	// Commit finalizes the transaction, persisting all changes.
	Commit() error
	// Rollback aborts the transaction, discarding all uncommitted changes.
	Rollback() error
}

// Storage describes a non-transactional storage handle with the ability to
// start transactions.
type Storage interface {
	AllStorage

	// Close releases any resources held by the storage implementation. After
	// Close, the instance should not be used.
	Close() error

	// Begin starts a new transaction and returns a TxStorage scoped to it.
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx begins a transaction, invokes the callback with a transactional
	// handle, and commits on success or rolls back when the callback errors.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}
