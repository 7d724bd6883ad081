package domain_test

import (
	"testing"

	"stamps/pkg/domain"

	"github.com/stretchr/testify/require"
)

func TestToggle_FirstVote(t *testing.T) {
	res := domain.Toggle(0, 0, domain.VoteNone, domain.VoteLike)
	require.Equal(t, domain.VoteResult{Likes: 1, Dislikes: 0, UserVote: domain.VoteLike}, res)

	res = domain.Toggle(0, 0, domain.VoteNone, domain.VoteDislike)
	require.Equal(t, domain.VoteResult{Likes: 0, Dislikes: 1, UserVote: domain.VoteDislike}, res)
}

func TestToggle_UndoReturnsToInitialState(t *testing.T) {
	first := domain.Toggle(0, 0, domain.VoteNone, domain.VoteLike)
	second := domain.Toggle(first.Likes, first.Dislikes, first.UserVote, domain.VoteLike)

	require.Equal(t, domain.VoteResult{Likes: 0, Dislikes: 0, UserVote: domain.VoteNone}, second)
}

func TestToggle_SwitchMovesCount(t *testing.T) {
	first := domain.Toggle(0, 0, domain.VoteNone, domain.VoteLike)
	second := domain.Toggle(first.Likes, first.Dislikes, first.UserVote, domain.VoteDislike)

	require.Equal(t, domain.VoteResult{Likes: 0, Dislikes: 1, UserVote: domain.VoteDislike}, second)
}

func TestToggle_PreservesOtherVotes(t *testing.T) {
	// counters include votes from other users; toggling must only move this
	// user's contribution
	res := domain.Toggle(5, 3, domain.VoteDislike, domain.VoteLike)
	require.Equal(t, domain.VoteResult{Likes: 6, Dislikes: 2, UserVote: domain.VoteLike}, res)
}

func TestToggle_ClampsAtZero(t *testing.T) {
	// drifted legacy record: ledger says like, counter already at zero
	res := domain.Toggle(0, 0, domain.VoteLike, domain.VoteLike)
	require.Equal(t, domain.VoteResult{Likes: 0, Dislikes: 0, UserVote: domain.VoteNone}, res)

	res = domain.Toggle(0, 0, domain.VoteDislike, domain.VoteLike)
	require.Equal(t, domain.VoteResult{Likes: 1, Dislikes: 0, UserVote: domain.VoteLike}, res)
}

func TestToggle_NeverNegative(t *testing.T) {
	kinds := []domain.VoteKind{domain.VoteNone, domain.VoteLike, domain.VoteDislike}
	for _, current := range kinds {
		for _, kind := range kinds[1:] {
			for likes := 0; likes <= 2; likes++ {
				for dislikes := 0; dislikes <= 2; dislikes++ {
					res := domain.Toggle(likes, dislikes, current, kind)
					require.GreaterOrEqual(t, res.Likes, 0)
					require.GreaterOrEqual(t, res.Dislikes, 0)
				}
			}
		}
	}
}
