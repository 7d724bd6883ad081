package memory_test

import (
	"context"
	"errors"
	"testing"

	"stamps/pkg/domain"
	"stamps/pkg/storage"
	"stamps/pkg/storage/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestStoreStamp_AssignsIDAndTimestamp(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	stored, err := store.StoreStamp(ctx, domain.Stamp{Title: "pier", Likes: 99})
	require.NoError(t, err)
	require.NotEqual(t, domain.StampID{}, stored.ID)
	require.False(t, stored.CreatedAt.IsZero())
	// counters always start at zero regardless of input
	require.Zero(t, stored.Likes)

	got, err := store.StampByID(ctx, stored.ID, false)
	require.NoError(t, err)
	require.Equal(t, stored, got)
}

func TestStamps_StableOrder(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	for _, title := range []string{"a", "b", "c"} {
		_, err := store.StoreStamp(ctx, domain.Stamp{Title: title})
		require.NoError(t, err)
	}

	first, err := store.Stamps(ctx)
	require.NoError(t, err)
	require.Len(t, first, 3)

	second, err := store.Stamps(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestDeleteStamp_LeavesLedgerBehind(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	user := domain.UserID(uuid.New())

	stored, err := store.StoreStamp(ctx, domain.Stamp{Title: "gone soon"})
	require.NoError(t, err)
	require.NoError(t, store.SetVote(ctx, user, stored.ID, domain.VoteLike))

	deleted, err := store.DeleteStamp(ctx, stored.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = store.DeleteStamp(ctx, stored.ID)
	require.NoError(t, err)
	require.False(t, deleted)

	votes, err := store.UserVotes(ctx, user)
	require.NoError(t, err)
	require.Equal(t, domain.VoteLike, votes[stored.ID])
}

func TestApplyVoteDelta_Clamping(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	stored, err := store.StoreStamp(ctx, domain.Stamp{Title: "counted"})
	require.NoError(t, err)

	likes, dislikes, err := store.ApplyVoteDelta(ctx, stored.ID, 1, 0)
	require.NoError(t, err)
	require.Equal(t, 1, likes)
	require.Equal(t, 0, dislikes)

	likes, dislikes, err = store.ApplyVoteDelta(ctx, stored.ID, -5, -5)
	require.NoError(t, err)
	require.Zero(t, likes)
	require.Zero(t, dislikes)

	_, _, err = store.ApplyVoteDelta(ctx, domain.StampID(uuid.New()), 1, 0)
	require.Error(t, err)
}

func TestVotes(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	user := domain.UserID(uuid.New())

	a, err := store.StoreStamp(ctx, domain.Stamp{Title: "a"})
	require.NoError(t, err)

	kind, err := store.VoteByUser(ctx, user, a.ID)
	require.NoError(t, err)
	require.Equal(t, domain.VoteNone, kind)

	require.NoError(t, store.SetVote(ctx, user, a.ID, domain.VoteLike))
	require.NoError(t, store.SetVote(ctx, user, a.ID, domain.VoteDislike))

	kind, err = store.VoteByUser(ctx, user, a.ID)
	require.NoError(t, err)
	require.Equal(t, domain.VoteDislike, kind)

	require.NoError(t, store.ClearVote(ctx, user, a.ID))
	require.NoError(t, store.ClearVote(ctx, user, a.ID))

	votes, err := store.UserVotes(ctx, user)
	require.NoError(t, err)
	require.Empty(t, votes)
}

func TestWithTx_RollbackDiscardsStagedWrites(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	user := domain.UserID(uuid.New())

	stored, err := store.StoreStamp(ctx, domain.Stamp{Title: "staged"})
	require.NoError(t, err)

	err = store.WithTx(ctx, func(tx storage.AllStorage) error {
		if err := tx.SetVote(ctx, user, stored.ID, domain.VoteLike); err != nil {
			return err
		}
		if _, _, err := tx.ApplyVoteDelta(ctx, stored.ID, 1, 0); err != nil {
			return err
		}

		return errors.New("boom")
	})
	require.Error(t, err)

	got, err := store.StampByID(ctx, stored.ID, false)
	require.NoError(t, err)
	require.Zero(t, got.Likes)

	kind, err := store.VoteByUser(ctx, user, stored.ID)
	require.NoError(t, err)
	require.Equal(t, domain.VoteNone, kind)
}

func TestWithTx_CommitPublishesAtomically(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	user := domain.UserID(uuid.New())

	stored, err := store.StoreStamp(ctx, domain.Stamp{Title: "atomic"})
	require.NoError(t, err)

	err = store.WithTx(ctx, func(tx storage.AllStorage) error {
		if err := tx.SetVote(ctx, user, stored.ID, domain.VoteLike); err != nil {
			return err
		}
		_, _, err := tx.ApplyVoteDelta(ctx, stored.ID, 1, 0)

		return err
	})
	require.NoError(t, err)

	got, err := store.StampByID(ctx, stored.ID, false)
	require.NoError(t, err)
	require.Equal(t, 1, got.Likes)

	kind, err := store.VoteByUser(ctx, user, stored.ID)
	require.NoError(t, err)
	require.Equal(t, domain.VoteLike, kind)
}

func TestBegin_RespectsContextCancellation(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	// a second Begin waits on the store lock; cancellation releases it
	cancelCtx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = store.Begin(cancelCtx)
	require.ErrorIs(t, err, context.Canceled)

	require.NoError(t, tx.Rollback())

	// done transactions refuse further commits and rollbacks
	require.ErrorIs(t, tx.Rollback(), storage.ErrNotInTx)
	require.ErrorIs(t, tx.Commit(), storage.ErrNotInTx)
}
