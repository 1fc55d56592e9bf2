package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Abhyam-Mathur/nagar-team/internal/realtime"
)

type EventsHTTP struct {
	hub *realtime.Hub
	log zerolog.Logger
}

func NewEventsHTTP(hub *realtime.Hub, log zerolog.Logger) *EventsHTTP {
	return &EventsHTTP{hub: hub, log: log}
}

// GET /api/events — change feed as server-sent events. One `data:` line
// per change, JSON-encoded {table, op, id}; comment pings keep proxies
// from closing an idle stream.
func (h *EventsHTTP) Stream() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		id, events := h.hub.Subscribe()
		defer h.hub.Unsubscribe(id)
		h.log.Debug().Str("subscriber", id).Msg("event stream opened")

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-ping.C:
				fmt.Fprint(w, ": ping\n\n")
				flusher.Flush()
			case e, open := <-events:
				if !open {
					return
				}
				payload, err := json.Marshal(e)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "data: %s\n\n", payload)
				flusher.Flush()
			}
		}
	}
}
