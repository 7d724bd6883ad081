package storage

import (
	"context"

	"stamps/pkg/domain"
)

// StampStorage defines persistence operations on the stamp collection.
//
// The counters on a stamp row are only written through ApplyVoteDelta, and
// only from inside the same transaction that updates the vote ledger; no
// other write path touches them.
type StampStorage interface {
	// StoreStamp inserts a stamp and returns the stored row as it exists in
	// the database, including the generated ID, zeroed counters and creation
	// timestamp. Optional fields left empty on the input are persisted with
	// their defaults rather than rejected.
	StoreStamp(ctx context.Context, stamp domain.Stamp) (*domain.Stamp, error)

	// Stamps returns every currently stored stamp.
	Stamps(ctx context.Context) ([]domain.Stamp, error)

	// StampByID fetches a stamp by ID. When forUpdate is true the row is
	// locked for the duration of the surrounding transaction, serializing
	// concurrent vote toggles on the same stamp. Returns nil when not found.
	StampByID(ctx context.Context, id domain.StampID, forUpdate bool) (*domain.Stamp, error)

	// DeleteStamp removes the record. Deletion is terminal; ledger entries
	// referencing the stamp are left behind. Returns false when no such row
	// exists.
	DeleteStamp(ctx context.Context, id domain.StampID) (bool, error)

	// ApplyVoteDelta adjusts a stamp's counters by the given deltas, clamping
	// the results at zero, and returns the counters after the update. It must
	// run inside the same transaction as the corresponding ledger update.
	ApplyVoteDelta(ctx context.Context, id domain.StampID, likeDelta, dislikeDelta int) (likes, dislikes int, err error)
}
