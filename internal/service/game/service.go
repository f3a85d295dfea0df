// Package game hosts the conversation engine: per-session state machines
// that deliver the antagonist's script, interpret player input, run the
// puzzle handoffs, and resolve endings.
package game

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hollowgames/whisper-room/backend/internal/config"
	"github.com/hollowgames/whisper-room/backend/internal/model/chat"
	"github.com/hollowgames/whisper-room/backend/internal/model/script"
)

var (
	ErrNameRequired    = errors.New("player name is required")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionEnded    = errors.New("session has ended")
	ErrEmptyMessage    = errors.New("message is empty")
	ErrNoActivePuzzle  = errors.New("no active puzzle")
)

// Service is the session registry. Sessions are in-memory only and live
// until a restart discards them or the process exits.
type Service struct {
	mu      sync.RWMutex
	games   map[string]*Game
	scripts script.Store
	cfg     config.GameConfig
}

// NewService bootstraps the in-memory game service.
func NewService(scripts script.Store, cfg config.GameConfig) *Service {
	return &Service{
		games:   make(map[string]*Game),
		scripts: scripts,
		cfg:     cfg,
	}
}

// StartSession creates a fresh game for the named player and starts the
// scripted sequence immediately.
func (s *Service) StartSession(_ context.Context, playerName string) (chat.Session, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return chat.Session{}, ErrNameRequired
	}

	id := uuid.NewString()
	g := newGame(id, playerName, s.scripts, s.cfg, newRNG())

	s.mu.Lock()
	s.games[id] = g
	s.mu.Unlock()

	return g.Snapshot(), nil
}

// Restart discards an existing session and starts a new one for the same
// player. The old session's timers are cancelled and its feed closed.
func (s *Service) Restart(ctx context.Context, sessionID string) (chat.Session, error) {
	s.mu.Lock()
	old, ok := s.games[sessionID]
	if ok {
		delete(s.games, sessionID)
	}
	s.mu.Unlock()

	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}

	playerName := old.Snapshot().PlayerName
	old.Close()
	return s.StartSession(ctx, playerName)
}

// Get retrieves a live game by session identifier.
func (s *Service) Get(sessionID string) (*Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return g, nil
}

// Shutdown closes every live session.
func (s *Service) Shutdown() {
	s.mu.Lock()
	games := s.games
	s.games = make(map[string]*Game)
	s.mu.Unlock()

	for _, g := range games {
		g.Close()
	}
}

func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
