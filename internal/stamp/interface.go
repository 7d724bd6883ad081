package stamp

import (
	"context"

	"stamps/pkg/domain"
)

// NewStamp carries the caller-supplied fields of a stamp to be created.
// Missing fields default (strings to empty, coordinates to 0) instead of
// failing creation.
type NewStamp struct {
	Type        string
	Title       string
	Description string
	Coordinates domain.Coordinates
}

//go:generate mockgen -package mockstamp -source=interface.go -destination=mock/mockstamp.go *
type Service interface {
	// Create persists a new stamp for the given creator and returns it with
	// its assigned ID, zeroed counters and creation timestamp.
	Create(ctx context.Context, creatorID domain.UserID, input NewStamp) (*domain.Stamp, error)

	// Nearby returns all stamps within radiusKm of the center, boundary
	// inclusive, via an exhaustive distance scan.
	Nearby(ctx context.Context, center domain.Coordinates, radiusKm float64) ([]domain.Stamp, error)

	// Delete removes a stamp. Votes referencing it are left behind for
	// readers to tolerate. Returns a not-found error when no such stamp
	// exists.
	Delete(ctx context.Context, id domain.StampID) error

	// ToggleVote atomically toggles the user's vote of the given kind on the
	// stamp and returns the canonical outcome. Same kind again undoes the
	// vote; the opposite kind switches it. Concurrent toggles on one stamp
	// serialize; toggles on distinct stamps proceed in parallel. There is no
	// idempotency token: a retry after an ambiguous failure re-runs the
	// toggle against current state.
	ToggleVote(ctx context.Context,
		id domain.StampID,
		userID domain.UserID,
		kind domain.VoteKind) (*domain.VoteResult, error)

	// UserVotes returns the user's vote ledger.
	UserVotes(ctx context.Context, userID domain.UserID) (map[domain.StampID]domain.VoteKind, error)
}
