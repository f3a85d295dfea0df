package game

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hollowgames/whisper-room/backend/internal/model/chat"
	gameservice "github.com/hollowgames/whisper-room/backend/internal/service/game"
	"github.com/hollowgames/whisper-room/backend/pkg/utils"
)

// Handler exposes the game service over REST.
type Handler struct {
	svc *gameservice.Service
}

// New creates the game handler.
func New(svc *gameservice.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleStart)
	r.Route("/session/{sessionID}", func(r chi.Router) {
		r.Get("/", h.handleSnapshot)
		r.Get("/transcript", h.handleTranscript)
		r.Post("/messages", h.handleMessage)
		r.Post("/answer", h.handleAnswer)
		r.Post("/restart", h.handleRestart)
	})
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PlayerName string `json:"playerName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.svc.StartSession(r.Context(), payload.PlayerName)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, session)
}

// puzzleView is the player-facing slice of the active puzzle; the expected
// answer stays server-side.
type puzzleView struct {
	Prompt   string    `json:"prompt"`
	Hint     string    `json:"hint"`
	Deadline time.Time `json:"deadline"`
}

type snapshotResponse struct {
	chat.Session
	Puzzle *puzzleView `json:"puzzle,omitempty"`
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	g, err := h.svc.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := snapshotResponse{Session: g.Snapshot()}
	if inst, ok := g.CurrentPuzzle(); ok {
		resp.Puzzle = &puzzleView{Prompt: inst.Prompt, Hint: inst.Hint, Deadline: inst.Deadline}
	}
	utils.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	g, err := h.svc.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, g.Transcript())
}

func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	h.handleInput(w, r, func(g *gameservice.Game, text string) error {
		return g.SubmitMessage(text)
	})
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	h.handleInput(w, r, func(g *gameservice.Game, text string) error {
		return g.SubmitAnswer(text)
	})
}

func (h *Handler) handleInput(w http.ResponseWriter, r *http.Request, submit func(*gameservice.Game, string) error) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.svc.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if err := submit(g, payload.Text); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusAccepted, g.Snapshot())
}

func (h *Handler) handleRestart(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.Restart(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, session)
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gameservice.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, gameservice.ErrNameRequired), errors.Is(err, gameservice.ErrEmptyMessage):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, gameservice.ErrSessionEnded), errors.Is(err, gameservice.ErrNoActivePuzzle):
		utils.RespondError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
