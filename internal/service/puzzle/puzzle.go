// Package puzzle generates and evaluates the timed mini-puzzles that gate
// stage progression.
package puzzle

import (
	"math/rand"
	"strings"
	"time"

	"github.com/hollowgames/whisper-room/backend/internal/analysis/intent"
	"github.com/hollowgames/whisper-room/backend/internal/model/script"
)

// Result is the outcome of one answer submission.
type Result int

const (
	Retry Result = iota
	Success
	Failure
)

// String names the result for logs.
func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "retry"
	}
}

// Instance is one live puzzle. It is created when a stage hands off to the
// puzzle subsystem and consumed by the first resolving answer or by the
// deadline.
type Instance struct {
	Kind           script.PuzzleKind
	Prompt         string
	ExpectedAnswer string
	Hint           string
	Deception      bool
	Deadline       time.Time
}

// Start builds an instance for the given stage kind, picking uniformly from
// that kind's template table. Templates may embed the player's name or the
// current wall-clock time in their prompts. An unknown kind falls back to
// the hacking table so the game always has something playable.
func Start(rng *rand.Rand, kind script.PuzzleKind, playerName string, now time.Time, timeout time.Duration) Instance {
	var inst Instance
	switch kind {
	case script.KindName:
		inst = nameTemplate(rng, playerName)
	case script.KindLocation:
		inst = locationTemplate(rng)
	case script.KindPersonal:
		inst = personalTemplate(rng, now)
	default:
		inst = hackingTemplate(rng)
	}
	inst.Kind = kind
	inst.Deadline = now.Add(timeout)
	return inst
}

// Evaluate resolves a submitted answer against the instance.
//
// Exact mode compares the trimmed text with the expected answer; a miss is
// Retry, or Failure when strict is set (stage mode: one wrong answer is
// fatal). Deception mode inverts the game: answering with the truth (real
// name, literal current time or date, a plain yes) is the failure, and any
// fabricated answer succeeds.
func Evaluate(inst Instance, text, playerName string, now time.Time, strict bool) Result {
	if now.After(inst.Deadline) {
		return Failure
	}

	text = strings.TrimSpace(text)
	if inst.Deception {
		if text == "" || intent.TellsTruth(text, playerName, now) {
			return Failure
		}
		return Success
	}

	if text == inst.ExpectedAnswer {
		return Success
	}
	if strict {
		return Failure
	}
	return Retry
}
