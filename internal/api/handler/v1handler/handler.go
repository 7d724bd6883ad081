// Package v1handler implements the v1 HTTP API: stamp creation, proximity
// queries, vote toggling, the caller's vote ledger and the realtime
// snapshot stream.
package v1handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"stamps/internal/realtime"
	"stamps/internal/stamp"
	"stamps/pkg/logger"
	"stamps/pkg/serrors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Options struct {
	Stamps stamp.Service
	Hub    *realtime.Hub

	// DefaultRadiusKm is used when a proximity query omits the radius;
	// MaxRadiusKm caps what a single query may request.
	DefaultRadiusKm float64
	MaxRadiusKm     float64
}

type Handler struct {
	stamps          stamp.Service
	hub             *realtime.Hub
	defaultRadiusKm float64
	maxRadiusKm     float64
}

func New(opts Options) *Handler {
	return &Handler{
		stamps:          opts.Stamps,
		hub:             opts.Hub,
		defaultRadiusKm: opts.DefaultRadiusKm,
		maxRadiusKm:     opts.MaxRadiusKm,
	}
}

// Routes registers all v1 endpoints on the given router. The router is
// expected to already carry the authentication middleware.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/stamps", h.createStamp)
	r.Get("/stamps", h.nearbyStamps)
	r.Delete("/stamps/{stampID}", h.deleteStamp)
	r.Post("/stamps/{stampID}/votes", h.toggleVote)
	r.Get("/stamps/stream", h.streamStamps)
	r.Get("/votes", h.userVotes)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// writeError maps semantic error kinds to HTTP statuses. Messages of server
// side failures are not echoed back to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var sErr *serrors.Error
	if !errors.As(err, &sErr) {
		logger.Error(r.Context(), "unhandled error", zap.Error(err))
		respond(w, http.StatusInternalServerError, errorResponse{Code: "INTERNAL"})

		return
	}

	status := http.StatusInternalServerError
	switch sErr.Kind() {
	case serrors.ErrBadRequest:
		status = http.StatusBadRequest
	case serrors.ErrUnauthorized:
		status = http.StatusUnauthorized
	case serrors.ErrForbidden:
		status = http.StatusForbidden
	case serrors.ErrNotFound:
		status = http.StatusNotFound
	case serrors.ErrConflict:
		status = http.StatusConflict
	case serrors.ErrUnavailable:
		status = http.StatusServiceUnavailable
	}

	resp := errorResponse{Code: sErr.Kind().Error()}
	if status < http.StatusInternalServerError {
		resp.Message = sErr.Message()
	} else {
		logger.Error(r.Context(), "request failed", zap.Error(err))
	}
	respond(w, status, resp)
}
