// Package stamp implements the stamp service: creation, radius queries,
// deletion and the vote transaction engine. It is the sole writer path for
// vote counters and the vote ledger.
package stamp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"stamps/internal/realtime"
	"stamps/pkg/domain"
	"stamps/pkg/geo"
	"stamps/pkg/logger"
	"stamps/pkg/serrors"
	"stamps/pkg/storage"

	"go.uber.org/zap"
)

// service is the concrete implementation of the Service interface. It
// coordinates persistence with the storage layer and publishes a full
// snapshot to the hub after every committed mutation.
type service struct {
	storage storage.Storage
	hub     *realtime.Hub

	// publishMu orders snapshot publication: without it two commits could
	// read and publish their snapshots out of commit order.
	publishMu sync.Mutex
}

// New creates a Service backed by the provided storage, publishing change
// snapshots to hub. The hub may be nil in contexts that need no push
// delivery (tests, batch tools).
func New(strg storage.Storage, hub *realtime.Hub) Service {
	return &service{
		storage: strg,
		hub:     hub,
	}
}

func (s *service) Create(ctx context.Context, creatorID domain.UserID, input NewStamp) (*domain.Stamp, error) {
	stored, err := s.storage.StoreStamp(ctx, domain.Stamp{
		CreatorID:   creatorID,
		Type:        input.Type,
		Title:       input.Title,
		Description: input.Description,
		Coordinates: input.Coordinates,
	})
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "could not store stamp")
	}

	s.publish(ctx)

	return stored, nil
}

func (s *service) Nearby(ctx context.Context,
	center domain.Coordinates,
	radiusKm float64) ([]domain.Stamp, error) {
	all, err := s.storage.Stamps(ctx)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "could not fetch stamps")
	}

	return geo.Filter(all, center.Lat, center.Lng, radiusKm), nil
}

func (s *service) Delete(ctx context.Context, id domain.StampID) error {
	deleted, err := s.storage.DeleteStamp(ctx, id)
	if err != nil {
		return serrors.Wrap(serrors.ErrUnavailable, err, "could not delete stamp")
	}
	if !deleted {
		return serrors.With(serrors.ErrNotFound, "stamp not found")
	}

	s.publish(ctx)

	return nil
}

// ToggleVote runs the toggle as one storage transaction. The stamp row is
// locked first, so two concurrent toggles on the same stamp serialize and
// neither update is lost; counters and the ledger entry commit together, so
// no observer can see them disagree.
func (s *service) ToggleVote(ctx context.Context,
	id domain.StampID,
	userID domain.UserID,
	kind domain.VoteKind) (*domain.VoteResult, error) {
	if !kind.Valid() {
		return nil, serrors.With(serrors.ErrBadRequest, "invalid vote kind %q", kind)
	}

	var result domain.VoteResult
	err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		current, err := tx.StampByID(ctx, id, true)
		if err != nil {
			return fmt.Errorf("could not load stamp: %w", err)
		}
		if current == nil {
			return serrors.With(serrors.ErrNotFound, "stamp not found")
		}

		held, err := tx.VoteByUser(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("could not load user vote: %w", err)
		}

		next := domain.Toggle(current.Likes, current.Dislikes, held, kind)

		likes, dislikes, err := tx.ApplyVoteDelta(ctx, id,
			next.Likes-current.Likes,
			next.Dislikes-current.Dislikes)
		if err != nil {
			return fmt.Errorf("could not apply vote delta: %w", err)
		}

		if next.UserVote == domain.VoteNone {
			err = tx.ClearVote(ctx, userID, id)
		} else {
			err = tx.SetVote(ctx, userID, id, next.UserVote)
		}
		if err != nil {
			return fmt.Errorf("could not update vote ledger: %w", err)
		}

		result = domain.VoteResult{
			Likes:    likes,
			Dislikes: dislikes,
			UserVote: next.UserVote,
		}

		return nil
	})
	if err != nil {
		var sErr *serrors.Error
		if errors.As(err, &sErr) {
			return nil, err
		}

		// anything else is a storage/transport failure; the whole action can
		// be retried
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "could not toggle vote")
	}

	s.publish(ctx)

	return &result, nil
}

func (s *service) UserVotes(ctx context.Context,
	userID domain.UserID) (map[domain.StampID]domain.VoteKind, error) {
	votes, err := s.storage.UserVotes(ctx, userID)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "could not fetch user votes")
	}

	return votes, nil
}

// publish pushes the complete current stamp set to the hub. It reads after
// the mutation committed, so subscribers observe committed state only; the
// mutex keeps snapshots in commit order.
func (s *service) publish(ctx context.Context) {
	if s.hub == nil {
		return
	}

	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	snapshot, err := s.storage.Stamps(ctx)
	if err != nil {
		// subscribers simply miss this push; the next mutation resends the
		// full set
		logger.Warn(ctx, "could not snapshot stamps for push", zap.Error(err))

		return
	}

	s.hub.Publish(snapshot)
}
