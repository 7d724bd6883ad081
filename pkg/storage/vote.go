package storage

import (
	"context"

	"stamps/pkg/domain"
)

// VoteStorage defines operations on the per-user vote ledger. A ledger entry
// exists only while the user holds a vote on the stamp; readers must
// tolerate entries referencing stamps that have since been deleted.
type VoteStorage interface {
	// VoteByUser returns the user's recorded vote for the stamp, or VoteNone
	// when no entry exists.
	VoteByUser(ctx context.Context, userID domain.UserID, stampID domain.StampID) (domain.VoteKind, error)

	// UserVotes returns the user's complete ledger: stamp ID to vote kind.
	UserVotes(ctx context.Context, userID domain.UserID) (map[domain.StampID]domain.VoteKind, error)

	// SetVote creates or replaces the user's ledger entry for the stamp.
	SetVote(ctx context.Context, userID domain.UserID, stampID domain.StampID, kind domain.VoteKind) error

	// ClearVote removes the user's ledger entry for the stamp. Clearing a
	// missing entry is not an error.
	ClearVote(ctx context.Context, userID domain.UserID, stampID domain.StampID) error
}
