// Package reconciler keeps a client-side view of stamps consistent while
// actions are optimistically applied before the backend confirms them.
//
// The view is a canonical baseline (replaced wholesale by ApplySnapshot)
// plus short-lived per-stamp overlays. An overlay holds the predicted
// outcome of exactly one in-flight action and is dropped when that action
// settles or fails, so a prediction can never permanently overwrite a
// later canonical value.
package reconciler

import (
	"context"
	"sync"

	"stamps/pkg/domain"
	"stamps/pkg/serrors"
)

// Backend performs the mutations the reconciler predicts. It can sit in
// front of the in-process service or a remote HTTP client; either way the
// acting user is implied by the backend's own credentials.
type Backend interface {
	ToggleVote(ctx context.Context, id domain.StampID, kind domain.VoteKind) (*domain.VoteResult, error)
	DeleteStamp(ctx context.Context, id domain.StampID) error
}

type overlay struct {
	// gen is the snapshot generation the prediction was based on. A settle
	// only writes counters back into the baseline when no newer snapshot
	// arrived in between.
	gen      uint64
	deleted  bool
	likes    int
	dislikes int
	vote     domain.VoteKind
}

// Reconciler is safe for concurrent use. Actions on the same stamp
// serialize; actions on distinct stamps proceed in parallel, mirroring the
// backend's own isolation.
type Reconciler struct {
	backend Backend

	mu       sync.Mutex
	gen      uint64
	stamps   map[domain.StampID]domain.Stamp
	order    []domain.StampID
	votes    map[domain.StampID]domain.VoteKind
	overlays map[domain.StampID]*overlay
	actions  map[domain.StampID]*sync.Mutex
}

func New(backend Backend) *Reconciler {
	return &Reconciler{
		backend:  backend,
		stamps:   make(map[domain.StampID]domain.Stamp),
		votes:    make(map[domain.StampID]domain.VoteKind),
		overlays: make(map[domain.StampID]*overlay),
		actions:  make(map[domain.StampID]*sync.Mutex),
	}
}

// ApplySnapshot replaces the canonical baseline with a full stamp list as
// delivered by a realtime push. In-flight predictions keep overlaying the
// new baseline until their action settles.
func (r *Reconciler) ApplySnapshot(stamps []domain.Stamp) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gen++
	r.stamps = make(map[domain.StampID]domain.Stamp, len(stamps))
	r.order = make([]domain.StampID, 0, len(stamps))
	for _, st := range stamps {
		r.stamps[st.ID] = st
		r.order = append(r.order, st.ID)
	}
}

// ApplyVotes replaces the canonical vote ledger of the acting user.
func (r *Reconciler) ApplyVotes(votes map[domain.StampID]domain.VoteKind) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.votes = make(map[domain.StampID]domain.VoteKind, len(votes))
	for id, kind := range votes {
		r.votes[id] = kind
	}
}

// Stamps returns the current view: the baseline in push order with
// predictions applied and optimistically deleted stamps removed.
func (r *Reconciler) Stamps() []domain.Stamp {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Stamp, 0, len(r.order))
	for _, id := range r.order {
		st, ok := r.stamps[id]
		if !ok {
			continue
		}
		if ov := r.overlays[id]; ov != nil {
			if ov.deleted {
				continue
			}
			st.Likes, st.Dislikes = ov.likes, ov.dislikes
		}
		out = append(out, st)
	}

	return out
}

// Vote returns the user's effective vote on a stamp, prediction included.
func (r *Reconciler) Vote(id domain.StampID) domain.VoteKind {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ov := r.overlays[id]; ov != nil && !ov.deleted {
		return ov.vote
	}

	return r.votes[id]
}

// ToggleVote optimistically toggles the user's vote on a stamp and settles
// against the backend. On success the canonical result replaces the
// prediction; on failure the view reverts exactly to its pre-action state
// and the error is surfaced for the caller to retry the whole action.
func (r *Reconciler) ToggleVote(ctx context.Context, id domain.StampID, kind domain.VoteKind) (*domain.VoteResult, error) {
	if !kind.Valid() {
		return nil, serrors.With(serrors.ErrBadRequest, "invalid vote kind %q", kind)
	}

	unlock := r.lockStamp(id)
	defer unlock()

	r.mu.Lock()
	st, ok := r.stamps[id]
	if !ok {
		r.mu.Unlock()

		return nil, serrors.With(serrors.ErrNotFound, "unknown stamp %s", id)
	}
	predicted := domain.Toggle(st.Likes, st.Dislikes, r.votes[id], kind)
	r.overlays[id] = &overlay{
		gen:      r.gen,
		likes:    predicted.Likes,
		dislikes: predicted.Dislikes,
		vote:     predicted.UserVote,
	}
	r.mu.Unlock()

	res, err := r.backend.ToggleVote(ctx, id, kind)

	r.mu.Lock()
	defer r.mu.Unlock()
	ov := r.overlays[id]
	delete(r.overlays, id)
	if err != nil {
		return nil, err
	}

	if res.UserVote == domain.VoteNone {
		delete(r.votes, id)
	} else {
		r.votes[id] = res.UserVote
	}
	if ov != nil && ov.gen == r.gen {
		if st, ok := r.stamps[id]; ok {
			st.Likes, st.Dislikes = res.Likes, res.Dislikes
			r.stamps[id] = st
		}
	}

	return res, nil
}

// DeleteStamp optimistically removes a stamp and settles against the
// backend, re-inserting the stamp when the deletion fails.
func (r *Reconciler) DeleteStamp(ctx context.Context, id domain.StampID) error {
	unlock := r.lockStamp(id)
	defer unlock()

	r.mu.Lock()
	if _, ok := r.stamps[id]; !ok {
		r.mu.Unlock()

		return serrors.With(serrors.ErrNotFound, "unknown stamp %s", id)
	}
	r.overlays[id] = &overlay{gen: r.gen, deleted: true}
	r.mu.Unlock()

	err := r.backend.DeleteStamp(ctx, id)

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.overlays, id)
	if err != nil {
		return err
	}

	delete(r.stamps, id)
	delete(r.votes, id)

	return nil
}

func (r *Reconciler) lockStamp(id domain.StampID) func() {
	r.mu.Lock()
	m, ok := r.actions[id]
	if !ok {
		m = &sync.Mutex{}
		r.actions[id] = m
	}
	r.mu.Unlock()

	m.Lock()

	return m.Unlock
}
