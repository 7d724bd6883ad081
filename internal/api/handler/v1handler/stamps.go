package v1handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"stamps/internal/stamp"
	"stamps/pkg/domain"
	"stamps/pkg/serrors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type createStampRequest struct {
	Type        string             `json:"type"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Coordinates domain.Coordinates `json:"coordinates"`
}

func (h *Handler) createStamp(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, r, serrors.With(serrors.ErrUnauthorized, "missing user identity"))

		return
	}

	var req createStampRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body"))

		return
	}

	created, err := h.stamps.Create(r.Context(), userID, stamp.NewStamp{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Coordinates: req.Coordinates,
	})
	if err != nil {
		writeError(w, r, err)

		return
	}

	respond(w, http.StatusCreated, created)
}

func (h *Handler) nearbyStamps(w http.ResponseWriter, r *http.Request) {
	center, radiusKm, err := h.parseProximityQuery(r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	stamps, err := h.stamps.Nearby(r.Context(), center, radiusKm)
	if err != nil {
		writeError(w, r, err)

		return
	}

	respond(w, http.StatusOK, stamps)
}

func (h *Handler) deleteStamp(w http.ResponseWriter, r *http.Request) {
	id, err := stampIDParam(r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	if err := h.stamps.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type toggleVoteRequest struct {
	Kind domain.VoteKind `json:"kind"`
}

func (h *Handler) toggleVote(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, r, serrors.With(serrors.ErrUnauthorized, "missing user identity"))

		return
	}

	id, err := stampIDParam(r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	var req toggleVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body"))

		return
	}

	res, err := h.stamps.ToggleVote(r.Context(), id, userID, req.Kind)
	if err != nil {
		writeError(w, r, err)

		return
	}

	respond(w, http.StatusOK, res)
}

func (h *Handler) userVotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, r, serrors.With(serrors.ErrUnauthorized, "missing user identity"))

		return
	}

	votes, err := h.stamps.UserVotes(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)

		return
	}

	respond(w, http.StatusOK, votes)
}

func stampIDParam(r *http.Request) (domain.StampID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "stampID"))
	if err != nil {
		return domain.StampID{}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid stamp id")
	}

	return domain.StampID(id), nil
}

// parseProximityQuery reads lat, lng and radius from the query string.
// Radius is in kilometers; omitted it falls back to the configured default
// and it is capped at the configured maximum.
func (h *Handler) parseProximityQuery(r *http.Request) (domain.Coordinates, float64, error) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		return domain.Coordinates{}, 0, serrors.Wrap(serrors.ErrBadRequest, err, "invalid lat")
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil {
		return domain.Coordinates{}, 0, serrors.Wrap(serrors.ErrBadRequest, err, "invalid lng")
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return domain.Coordinates{}, 0, serrors.With(serrors.ErrBadRequest, "coordinates out of range")
	}

	radiusKm := h.defaultRadiusKm
	if raw := q.Get("radius"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.Coordinates{}, 0, serrors.Wrap(serrors.ErrBadRequest, err, "invalid radius")
		}
		if radiusKm < 0 {
			return domain.Coordinates{}, 0, serrors.With(serrors.ErrBadRequest, "radius must not be negative")
		}
	}
	radiusKm = min(radiusKm, h.maxRadiusKm)

	return domain.Coordinates{Lat: lat, Lng: lng}, radiusKm, nil
}
