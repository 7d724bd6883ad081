package v1handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"stamps/pkg/domain"
	"stamps/pkg/geo"
	"stamps/pkg/serrors"
)

// streamStamps is a server-sent-events endpoint pushing the full, proximity
// filtered stamp list to the client on every committed mutation. The first
// event carries the current state so the client can render immediately.
func (h *Handler) streamStamps(w http.ResponseWriter, r *http.Request) {
	center, radiusKm, err := h.parseProximityQuery(r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, r, serrors.With(serrors.ErrInternal, "streaming unsupported"))

		return
	}

	ctx := r.Context()

	// the callback hands snapshots over to this request's goroutine. It must
	// bail out the moment the handler stops receiving, not just when the
	// client goes away: ctx is only cancelled once this handler returns, and
	// it cannot return while Close waits for a callback stuck on the send.
	// done breaks that cycle, so close it before unsubscribing.
	updates := make(chan []domain.Stamp)
	done := make(chan struct{})
	sub := h.hub.Subscribe(func(stamps []domain.Stamp) {
		select {
		case updates <- stamps:
		case <-done:
		case <-ctx.Done():
		}
	})
	defer sub.Close()
	defer close(done)

	initial, err := h.stamps.Nearby(ctx, center, radiusKm)
	if err != nil {
		writeError(w, r, err)

		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, initial); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case stamps := <-updates:
			if err := writeEvent(w, geo.Filter(stamps, center.Lat, center.Lng, radiusKm)); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, stamps []domain.Stamp) error {
	payload, err := json.Marshal(stamps)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", payload)

	return err
}
