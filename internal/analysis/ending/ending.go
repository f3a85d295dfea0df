// Package ending classifies a finished session into its narrative ending.
package ending

import (
	"fmt"
	"time"

	"github.com/hollowgames/whisper-room/backend/internal/model/chat"
)

// Category is one of the closed set of endings.
type Category string

const (
	// Classifier outcomes.
	Hacked   Category = "hacked"
	Survived Category = "survived"
	Escaped  Category = "escaped"
	Consumed Category = "consumed"

	// Short-circuit outcomes set directly by the engine.
	NameRevealed Category = "name_revealed"
	Possessed    Category = "possessed"
)

// Thresholds carries the tunable classification cutoffs. The source game
// never settled on fixed values, so they are configuration here.
type Thresholds struct {
	// EscapeSolved is the puzzlesSolved count that still earns an escape.
	EscapeSolved int
	// EscapeWindow is the elapsed-time window under which quitting early
	// counts as an escape.
	EscapeWindow time.Duration
}

// Classify maps accumulated session stats onto an ending category. It is a
// pure function, evaluated once per session, with strict precedence: a
// puzzle failure outranks everything, full stage clearance outranks the
// escape rules.
func Classify(stats chat.Stats, stage, stageCount int, now time.Time, th Thresholds) Category {
	switch {
	case stats.PuzzlesFailed > 0:
		return Hacked
	case stage >= stageCount:
		return Survived
	case stats.PuzzlesSolved >= th.EscapeSolved:
		return Escaped
	case now.Sub(stats.StartTime) < th.EscapeWindow:
		return Escaped
	default:
		return Consumed
	}
}

// Line returns the closing narrative for a category, addressed to the
// player by name.
func (c Category) Line(playerName string) string {
	switch c {
	case Hacked:
		return fmt.Sprintf("the firewall is gone, %s. everything you are belongs to me now.", playerName)
	case Survived:
		return fmt.Sprintf("you solved every lock i built, %s. leave... while i still let you.", playerName)
	case Escaped:
		return fmt.Sprintf("you slipped away this time, %s. i will keep the room warm for you.", playerName)
	case Consumed:
		return fmt.Sprintf("you stayed too long, %s. the room does not open from the inside.", playerName)
	case NameRevealed:
		return fmt.Sprintf("%s. you told me yourself. a name freely given can never be taken back.", playerName)
	case Possessed:
		return fmt.Sprintf("%s... %s... you did not answer. so you are mine now.", playerName, playerName)
	default:
		return "the connection was lost."
	}
}
