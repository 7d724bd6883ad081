package domain

// VoteKind is a user's vote on a stamp. A user holds at most one kind per
// stamp; VoteNone means no vote is recorded.
type VoteKind string

const (
	VoteNone    VoteKind = ""
	VoteLike    VoteKind = "like"
	VoteDislike VoteKind = "dislike"
)

// Valid reports whether the kind is one of the two castable vote kinds.
func (k VoteKind) Valid() bool {
	return k == VoteLike || k == VoteDislike
}

// Opposite returns the other castable kind. It is only meaningful for valid
// kinds.
func (k VoteKind) Opposite() VoteKind {
	if k == VoteLike {
		return VoteDislike
	}

	return VoteLike
}

// VoteResult is the canonical outcome of a vote toggle: the stamp's counters
// after the transaction committed and the user's resulting vote.
type VoteResult struct {
	Likes    int      `json:"likes"`
	Dislikes int      `json:"dislikes"`
	UserVote VoteKind `json:"userVote"`
}

// Toggle computes the counter adjustments and resulting vote for a user
// toggling kind on a stamp whose counters are likes/dislikes and whose
// currently recorded vote is current.
//
// Toggling the kind already held undoes it. Toggling the opposite kind
// switches the vote, moving one count from the old kind to the new one.
// Counters are floored at zero so a legacy record whose counters drifted
// below its ledger can never go negative.
//
// The same function drives both the server-side transaction and the client's
// optimistic prediction, so the two always agree when they start from the
// same state.
func Toggle(likes, dislikes int, current, kind VoteKind) VoteResult {
	switch {
	case current == kind:
		// undo
		if kind == VoteLike {
			likes--
		} else {
			dislikes--
		}
		current = VoteNone
	case kind == VoteLike:
		likes++
		if current == VoteDislike {
			dislikes--
		}
		current = VoteLike
	default:
		dislikes++
		if current == VoteLike {
			likes--
		}
		current = VoteDislike
	}

	return VoteResult{
		Likes:    max(0, likes),
		Dislikes: max(0, dislikes),
		UserVote: current,
	}
}
