package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"restaurant-panel/internal/sse"
)

// StreamOrders streams enriched order snapshots for the orders screen.
func (h *Handler) StreamOrders(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, h.Orders)
}

// StreamReservations streams enriched reservation snapshots.
func (h *Handler) StreamReservations(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, h.Reservations)
}

// StreamUsers streams the registered users list.
func (h *Handler) StreamUsers(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, h.Users)
}

// stream is the shared SSE loop: subscribe to the broadcaster for the
// request lifetime and forward every event. Navigating away closes the
// request context, which unsubscribes; navigating back re-subscribes, which
// is also the only retry path after a subscription error.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request, broadcaster *sse.Broadcaster) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	setupSSEHeaders(w)

	// Context cancels when the client disconnects
	ctx := r.Context()
	events := broadcaster.Subscribe(ctx)

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"collection\":%q}\n\n", broadcaster.Collection)
	flusher.Flush()

	h.Logger.Info("SSE", fmt.Sprintf("Client connected to %s stream", broadcaster.Collection))

	for {
		select {
		case event, ok := <-events:
			if !ok {
				h.Logger.Debug("SSE", fmt.Sprintf("Channel closed for %s stream", broadcaster.Collection))
				return
			}

			jsonData, err := json.Marshal(event.Data)
			if err != nil {
				h.Logger.Error("SSE", fmt.Sprintf("Failed to serialize %s event: %v", broadcaster.Collection, err))
				continue
			}

			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Kind, jsonData)
			flusher.Flush()

			// A subscription error is terminal for this screen; the client
			// shows the error panel and reconnects on remount.
			if event.Kind == "error" {
				return
			}

		case <-ctx.Done():
			h.Logger.Debug("SSE", fmt.Sprintf("Client disconnected from %s stream", broadcaster.Collection))
			return
		}
	}
}

func setupSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream;charset=UTF-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	w.Header().Set("X-Content-Type-Options", "nosniff")
}
