package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	gamehandler "github.com/hollowgames/whisper-room/backend/internal/handler/game"
	"github.com/hollowgames/whisper-room/backend/internal/handler/stream"
	"github.com/hollowgames/whisper-room/backend/internal/handler/ws"
	"github.com/hollowgames/whisper-room/backend/internal/middleware"
	gameservice "github.com/hollowgames/whisper-room/backend/internal/service/game"
)

// NewRouter wires HTTP routes to the game service.
func NewRouter(svc *gameservice.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)

	r.Route("/api", func(api chi.Router) {
		gamehandler.New(svc).RegisterRoutes(api)
		stream.New(svc).RegisterRoutes(api)
		ws.New(svc).RegisterRoutes(api)
	})

	return r
}
