// Package ws serves the interactive websocket transport: events flow out,
// chat and puzzle answers flow in on the same connection.
package ws

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/hollowgames/whisper-room/backend/internal/model/event"
	gameservice "github.com/hollowgames/whisper-room/backend/internal/service/game"
	"github.com/hollowgames/whisper-room/backend/pkg/utils"
)

// Handler upgrades connections and bridges them to a session.
type Handler struct {
	svc      *gameservice.Service
	upgrader websocket.Upgrader
}

// New creates the websocket handler.
func New(svc *gameservice.Service) *Handler {
	return &Handler{
		svc: svc,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleConn)
}

type inboundFrame struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type outboundFrame struct {
	Type      string    `json:"type"`
	SessionID string    `json:"sessionId"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func (h *Handler) handleConn(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	g, err := h.svc.Get(sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] connected session=%s", sessionID)
	defer log.Printf("[ws] disconnected session=%s", sessionID)

	events, cancel := g.Subscribe()
	defer cancel()

	// Writer: one goroutine owns all writes to the connection.
	outbound := make(chan outboundFrame, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		// Closing the connection here unblocks the reader below when the
		// session feed shuts down first.
		defer conn.Close()
		for {
			select {
			case frame, ok := <-outbound:
				if !ok {
					return
				}
				if err := conn.WriteJSON(frame); err != nil {
					return
				}
			case ev, ok := <-events:
				if !ok {
					_ = conn.WriteJSON(outboundFrame{
						Type:      "closed",
						SessionID: sessionID,
						Timestamp: time.Now().UTC(),
					})
					return
				}
				if err := conn.WriteJSON(frameFor(ev)); err != nil {
					return
				}
			}
		}
	}()

	// Reader: decode player frames until the connection drops.
	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			break
		}

		var submitErr error
		switch frame.Type {
		case "chat":
			submitErr = g.SubmitMessage(frame.Text)
		case "answer":
			submitErr = g.SubmitAnswer(frame.Text)
		default:
			submitErr = nil
		}

		if submitErr != nil {
			select {
			case outbound <- outboundFrame{
				Type:      "error",
				SessionID: sessionID,
				Data:      errorPayload{Message: submitErr.Error()},
				Timestamp: time.Now().UTC(),
			}:
			case <-done:
				return
			}
		}
	}

	close(outbound)
	<-done
}

func frameFor(ev event.Event) outboundFrame {
	return outboundFrame{
		Type:      string(ev.Type),
		SessionID: ev.SessionID,
		Data:      ev.Data,
		Timestamp: ev.Timestamp,
	}
}
