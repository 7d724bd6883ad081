package postgres_test

import (
	"context"
	"testing"

	"stamps/pkg/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestStoreStamp(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	creator := domain.UserID(uuid.New())
	stored, err := pg.StoreStamp(ctx, domain.Stamp{
		CreatorID:   creator,
		Type:        "viewpoint",
		Title:       "city overlook",
		Description: "great at sunset",
		Coordinates: domain.Coordinates{Lat: 52.52, Lng: 13.4},
	})
	require.NoError(t, err)
	require.NotEqual(t, domain.StampID{}, stored.ID)
	require.Equal(t, creator, stored.CreatorID)
	require.Equal(t, "viewpoint", stored.Type)
	require.Equal(t, "city overlook", stored.Title)
	require.Equal(t, 52.52, stored.Coordinates.Lat)
	require.Equal(t, 13.4, stored.Coordinates.Lng)
	require.Zero(t, stored.Likes)
	require.Zero(t, stored.Dislikes)
	require.False(t, stored.CreatedAt.IsZero())

	got, err := pg.StampByID(ctx, stored.ID, false)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, stored.ID, got.ID)
}

func TestStoreStamp_EmptyOptionalFields(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	stored, err := pg.StoreStamp(ctx, domain.Stamp{})
	require.NoError(t, err)
	require.True(t, stored.CreatorID.IsZero())
	require.Empty(t, stored.Type)
	require.Empty(t, stored.Title)
	require.Zero(t, stored.Coordinates.Lat)
	require.Zero(t, stored.Coordinates.Lng)

	// a NULL creator round-trips to the zero user id
	got, err := pg.StampByID(ctx, stored.ID, false)
	require.NoError(t, err)
	require.True(t, got.CreatorID.IsZero())
}

func TestStamps(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	want := make([]domain.StampID, 0, 3)
	for _, title := range []string{"a", "b", "c"} {
		stored, err := pg.StoreStamp(ctx, domain.Stamp{Title: title})
		require.NoError(t, err)
		want = append(want, stored.ID)
	}

	stamps, err := pg.Stamps(ctx)
	require.NoError(t, err)
	require.Len(t, stamps, 3)

	got := make([]domain.StampID, 0, 3)
	for _, st := range stamps {
		got = append(got, st.ID)
	}
	require.ElementsMatch(t, want, got)

	// listing order is stable across calls
	again, err := pg.Stamps(ctx)
	require.NoError(t, err)
	require.Equal(t, stamps, again)
}

func TestStampByID_NotFound(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	got, err := pg.StampByID(context.Background(), domain.StampID(uuid.New()), false)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestDeleteStamp(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	stored, err := pg.StoreStamp(ctx, domain.Stamp{Title: "gone soon"})
	require.NoError(t, err)

	user := domain.UserID(uuid.New())
	require.NoError(t, pg.SetVote(ctx, user, stored.ID, domain.VoteLike))

	deleted, err := pg.DeleteStamp(ctx, stored.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = pg.DeleteStamp(ctx, stored.ID)
	require.NoError(t, err)
	require.False(t, deleted)

	// the ledger entry survives the deletion
	votes, err := pg.UserVotes(ctx, user)
	require.NoError(t, err)
	require.Equal(t, domain.VoteLike, votes[stored.ID])
}

func TestApplyVoteDelta(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	stored, err := pg.StoreStamp(ctx, domain.Stamp{Title: "counted"})
	require.NoError(t, err)

	likes, dislikes, err := pg.ApplyVoteDelta(ctx, stored.ID, 1, 0)
	require.NoError(t, err)
	require.Equal(t, 1, likes)
	require.Equal(t, 0, dislikes)

	likes, dislikes, err = pg.ApplyVoteDelta(ctx, stored.ID, -1, 1)
	require.NoError(t, err)
	require.Equal(t, 0, likes)
	require.Equal(t, 1, dislikes)

	// clamped at zero even when the delta underflows
	likes, dislikes, err = pg.ApplyVoteDelta(ctx, stored.ID, -5, -5)
	require.NoError(t, err)
	require.Equal(t, 0, likes)
	require.Equal(t, 0, dislikes)
}

func TestApplyVoteDelta_MissingStamp(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	_, _, err := pg.ApplyVoteDelta(context.Background(), domain.StampID(uuid.New()), 1, 0)
	require.Error(t, err)
}
