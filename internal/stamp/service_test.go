package stamp_test

import (
	"sync"
	"testing"
	"time"

	"stamps/internal/realtime"
	"stamps/internal/stamp"
	"stamps/pkg/domain"
	"stamps/pkg/logger"
	"stamps/pkg/serrors"
	"stamps/pkg/storage/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func newTestService(t *testing.T) (stamp.Service, *realtime.Hub) {
	t.Helper()

	hub := realtime.NewHub()

	return stamp.New(memory.New(), hub), hub
}

func newUser() domain.UserID { return domain.UserID(uuid.New()) }

func createStamp(t *testing.T, svc stamp.Service) *domain.Stamp {
	t.Helper()

	created, err := svc.Create(t.Context(), newUser(), stamp.NewStamp{
		Type:  "viewpoint",
		Title: "city overlook",
	})
	require.NoError(t, err)

	return created
}

func TestCreate_AssignsDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	creator := newUser()

	// entirely empty optional fields must not fail creation
	created, err := svc.Create(t.Context(), creator, stamp.NewStamp{})
	require.NoError(t, err)
	require.NotEqual(t, domain.StampID{}, created.ID)
	require.Equal(t, creator, created.CreatorID)
	require.Empty(t, created.Type)
	require.Empty(t, created.Title)
	require.Zero(t, created.Coordinates.Lat)
	require.Zero(t, created.Coordinates.Lng)
	require.Zero(t, created.Likes)
	require.Zero(t, created.Dislikes)
	require.False(t, created.CreatedAt.IsZero())
}

func TestNearby_FiltersByRadius(t *testing.T) {
	svc, _ := newTestService(t)

	near, err := svc.Create(t.Context(), newUser(), stamp.NewStamp{
		Title:       "near",
		Coordinates: domain.Coordinates{Lat: 0, Lng: 0.05},
	})
	require.NoError(t, err)
	_, err = svc.Create(t.Context(), newUser(), stamp.NewStamp{
		Title:       "far",
		Coordinates: domain.Coordinates{Lat: 10, Lng: 10},
	})
	require.NoError(t, err)

	got, err := svc.Nearby(t.Context(), domain.Coordinates{}, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, near.ID, got[0].ID)
}

func TestDelete_RemovesStamp(t *testing.T) {
	svc, _ := newTestService(t)
	created := createStamp(t, svc)

	require.NoError(t, svc.Delete(t.Context(), created.ID))

	got, err := svc.Nearby(t.Context(), domain.Coordinates{}, 1e9)
	require.NoError(t, err)
	require.Empty(t, got)

	// terminal: second delete reports not found
	err = svc.Delete(t.Context(), created.ID)
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestToggleVote_UndoReturnsToInitialState(t *testing.T) {
	svc, _ := newTestService(t)
	created := createStamp(t, svc)
	user := newUser()

	res, err := svc.ToggleVote(t.Context(), created.ID, user, domain.VoteLike)
	require.NoError(t, err)
	require.Equal(t, &domain.VoteResult{Likes: 1, Dislikes: 0, UserVote: domain.VoteLike}, res)

	res, err = svc.ToggleVote(t.Context(), created.ID, user, domain.VoteLike)
	require.NoError(t, err)
	require.Equal(t, &domain.VoteResult{Likes: 0, Dislikes: 0, UserVote: domain.VoteNone}, res)

	votes, err := svc.UserVotes(t.Context(), user)
	require.NoError(t, err)
	require.Empty(t, votes)
}

func TestToggleVote_SwitchMovesCount(t *testing.T) {
	svc, _ := newTestService(t)
	created := createStamp(t, svc)
	user := newUser()

	_, err := svc.ToggleVote(t.Context(), created.ID, user, domain.VoteLike)
	require.NoError(t, err)

	res, err := svc.ToggleVote(t.Context(), created.ID, user, domain.VoteDislike)
	require.NoError(t, err)
	require.Equal(t, &domain.VoteResult{Likes: 0, Dislikes: 1, UserVote: domain.VoteDislike}, res)

	votes, err := svc.UserVotes(t.Context(), user)
	require.NoError(t, err)
	require.Equal(t, map[domain.StampID]domain.VoteKind{created.ID: domain.VoteDislike}, votes)
}

func TestToggleVote_MissingStamp(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ToggleVote(t.Context(), domain.StampID(uuid.New()), newUser(), domain.VoteLike)
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestToggleVote_InvalidKind(t *testing.T) {
	svc, _ := newTestService(t)
	created := createStamp(t, svc)

	_, err := svc.ToggleVote(t.Context(), created.ID, newUser(), domain.VoteKind("meh"))
	require.Error(t, err)

	_, err = svc.ToggleVote(t.Context(), created.ID, newUser(), domain.VoteNone)
	require.Error(t, err)
}

func TestToggleVote_ConcurrentFirstVotesAllCount(t *testing.T) {
	svc, _ := newTestService(t)
	created := createStamp(t, svc)

	const voters = 16
	var wg sync.WaitGroup
	for range voters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ToggleVote(t.Context(), created.ID, newUser(), domain.VoteLike)
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := svc.Nearby(t.Context(), domain.Coordinates{}, 1e9)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, voters, got[0].Likes)
	require.Zero(t, got[0].Dislikes)
}

func TestToggleVote_ConcurrentTogglesStayConsistent(t *testing.T) {
	svc, _ := newTestService(t)
	created := createStamp(t, svc)

	// every user toggles an odd number of times, so each must end holding a
	// like and the counter must equal the user count
	const voters = 8
	var wg sync.WaitGroup
	users := make([]domain.UserID, voters)
	for i := range users {
		users[i] = newUser()
	}
	for _, user := range users {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 3 {
				_, err := svc.ToggleVote(t.Context(), created.ID, user, domain.VoteLike)
				require.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	got, err := svc.Nearby(t.Context(), domain.Coordinates{}, 1e9)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, voters, got[0].Likes)

	for _, user := range users {
		votes, err := svc.UserVotes(t.Context(), user)
		require.NoError(t, err)
		require.Equal(t, domain.VoteLike, votes[created.ID])
	}
}

func TestMutations_PublishSnapshots(t *testing.T) {
	svc, hub := newTestService(t)

	snapshots := make(chan []domain.Stamp, 16)
	sub := hub.Subscribe(func(s []domain.Stamp) { snapshots <- s })
	defer sub.Close()

	created := createStamp(t, svc)

	requireSnapshot(t, snapshots, func(s []domain.Stamp) bool {
		return len(s) == 1 && s[0].Likes == 0
	})

	_, err := svc.ToggleVote(t.Context(), created.ID, newUser(), domain.VoteLike)
	require.NoError(t, err)

	requireSnapshot(t, snapshots, func(s []domain.Stamp) bool {
		return len(s) == 1 && s[0].Likes == 1
	})

	require.NoError(t, svc.Delete(t.Context(), created.ID))

	requireSnapshot(t, snapshots, func(s []domain.Stamp) bool {
		return len(s) == 0
	})
}

func requireSnapshot(t *testing.T, ch chan []domain.Stamp, ok func([]domain.Stamp) bool) {
	t.Helper()

	deadline := time.After(time.Second)
	for {
		select {
		case s := <-ch:
			if ok(s) {
				return
			}
		case <-deadline:
			t.Fatal("expected snapshot not delivered")
		}
	}
}
