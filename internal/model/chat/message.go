package chat

import "time"

// Role identifies who authored a message.
type Role string

const (
	RoleSystem     Role = "system"
	RoleAntagonist Role = "antagonist"
	RolePlayer     Role = "player"
)

// Message is one immutable entry in the session transcript.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Sender    Role      `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
