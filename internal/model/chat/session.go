package chat

import "time"

// Stats accumulates the counters the ending classifier reads.
type Stats struct {
	MessagesReceived int       `json:"messagesReceived"`
	PuzzlesSolved    int       `json:"puzzlesSolved"`
	PuzzlesFailed    int       `json:"puzzlesFailed"`
	StartTime        time.Time `json:"startTime"`
}

// Session is a read-only snapshot of one game session, safe to hand to
// handlers while the engine keeps mutating its own state.
type Session struct {
	ID         string    `json:"id"`
	PlayerName string    `json:"playerName"`
	Stage      int       `json:"stage"`
	SubState   string    `json:"subState,omitempty"`
	Screen     string    `json:"screen"`
	Ended      bool      `json:"ended"`
	Ending     string    `json:"ending,omitempty"`
	Stats      Stats     `json:"stats"`
	CreatedAt  time.Time `json:"createdAt"`
}
