// Package stream serves a session's event feed over Server-Sent Events,
// for clients that cannot hold a websocket.
package stream

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	gameservice "github.com/hollowgames/whisper-room/backend/internal/service/game"
	"github.com/hollowgames/whisper-room/backend/pkg/utils"
)

// Handler streams game events as SSE frames.
type Handler struct {
	svc *gameservice.Service
}

// New creates the stream handler.
func New(svc *gameservice.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the SSE endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stream/{sessionID}", h.handleStream)
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	g, err := h.svc.Get(sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}
	utils.SetupSSEHeaders(w)

	events, cancel := g.Subscribe()
	defer cancel()

	log.Printf("[sse] opening stream for session=%s", sessionID)
	defer log.Printf("[sse] closing stream for session=%s", sessionID)

	utils.SendSSEChunk(w, flusher, map[string]any{
		"event":   "status",
		"message": "stream established",
	})

	ctx := r.Context()
	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, open := <-events:
			if !open {
				// Session closed; tell the client not to reconnect.
				utils.SendSSEEvent(w, flusher, "closed", map[string]string{"sessionId": sessionID})
				return
			}
			utils.SendSSEEvent(w, flusher, string(ev.Type), ev)
		case t := <-heartbeat.C:
			utils.SendSSEChunk(w, flusher, map[string]any{
				"event": "heartbeat",
				"time":  t.UTC().Format(time.RFC3339),
			})
		}
	}
}
