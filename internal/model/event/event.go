// Package event defines the presentation events the engine publishes.
// Rendering, CSS effects, and audio live in the frontend; the backend only
// tells subscribers what happened and when.
package event

import (
	"time"

	"github.com/hollowgames/whisper-room/backend/internal/model/chat"
	"github.com/hollowgames/whisper-room/backend/internal/model/script"
)

// Type discriminates the Data payload of an Event.
type Type string

const (
	TypeMessage   Type = "message"
	TypeTyping    Type = "typing"
	TypeEffect    Type = "effect"
	TypeSound     Type = "sound"
	TypeScreen    Type = "screen"
	TypePuzzle    Type = "puzzle"
	TypeCountdown Type = "countdown"
	TypeEnding    Type = "ending"
)

// Screen identifiers understood by the frontend.
const (
	ScreenStart  = "start"
	ScreenChat   = "chat"
	ScreenPuzzle = "puzzle"
	ScreenEnding = "ending"
)

// Sound cue names understood by the frontend.
const (
	SoundTyping       = "typing"
	SoundNotification = "notification"
	SoundGlitch       = "glitch"
	SoundHorror       = "horror"
	SoundTension      = "tension"
)

// Event is one entry on a session's live feed.
type Event struct {
	Type      Type      `json:"type"`
	SessionID string    `json:"sessionId"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// TypingPayload toggles the typing indicator.
type TypingPayload struct {
	Active bool `json:"active"`
}

// EffectPayload asks the frontend to fire a fire-and-forget visual cue.
type EffectPayload struct {
	Name   script.EffectName `json:"name"`
	Target string            `json:"target,omitempty"`
}

// SoundPayload asks the frontend to play a named cue.
type SoundPayload struct {
	Name string `json:"name"`
}

// ScreenPayload switches the active presentation screen.
type ScreenPayload struct {
	Screen string `json:"screen"`
}

// PuzzlePayload describes the puzzle the player must now solve. The
// expected answer never leaves the backend.
type PuzzlePayload struct {
	Prompt   string    `json:"prompt"`
	Hint     string    `json:"hint"`
	Deadline time.Time `json:"deadline"`
}

// CountdownPayload ticks the puzzle timer once per second.
type CountdownPayload struct {
	SecondsLeft int `json:"secondsLeft"`
}

// EndingPayload announces the terminal classification and its closing line.
type EndingPayload struct {
	Category string `json:"category"`
	Line     string `json:"line"`
}

func now() time.Time { return time.Now().UTC() }

// NewMessage wraps a transcript message for the feed.
func NewMessage(msg chat.Message) Event {
	return Event{Type: TypeMessage, SessionID: msg.SessionID, Data: msg, Timestamp: now()}
}

// NewTyping toggles the typing indicator.
func NewTyping(sessionID string, active bool) Event {
	return Event{Type: TypeTyping, SessionID: sessionID, Data: TypingPayload{Active: active}, Timestamp: now()}
}

// NewEffect fires a visual cue.
func NewEffect(sessionID string, name script.EffectName) Event {
	return Event{Type: TypeEffect, SessionID: sessionID, Data: EffectPayload{Name: name}, Timestamp: now()}
}

// NewSound fires an audio cue.
func NewSound(sessionID, name string) Event {
	return Event{Type: TypeSound, SessionID: sessionID, Data: SoundPayload{Name: name}, Timestamp: now()}
}

// NewScreen switches the active screen.
func NewScreen(sessionID, screen string) Event {
	return Event{Type: TypeScreen, SessionID: sessionID, Data: ScreenPayload{Screen: screen}, Timestamp: now()}
}

// NewPuzzle presents a puzzle.
func NewPuzzle(sessionID, prompt, hint string, deadline time.Time) Event {
	return Event{Type: TypePuzzle, SessionID: sessionID, Data: PuzzlePayload{Prompt: prompt, Hint: hint, Deadline: deadline}, Timestamp: now()}
}

// NewCountdown ticks the puzzle countdown.
func NewCountdown(sessionID string, secondsLeft int) Event {
	return Event{Type: TypeCountdown, SessionID: sessionID, Data: CountdownPayload{SecondsLeft: secondsLeft}, Timestamp: now()}
}

// NewEnding announces the session's ending.
func NewEnding(sessionID, category, line string) Event {
	return Event{Type: TypeEnding, SessionID: sessionID, Data: EndingPayload{Category: category, Line: line}, Timestamp: now()}
}
