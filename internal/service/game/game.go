package game

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hollowgames/whisper-room/backend/internal/analysis/ending"
	"github.com/hollowgames/whisper-room/backend/internal/analysis/intent"
	"github.com/hollowgames/whisper-room/backend/internal/config"
	"github.com/hollowgames/whisper-room/backend/internal/model/chat"
	"github.com/hollowgames/whisper-room/backend/internal/model/event"
	"github.com/hollowgames/whisper-room/backend/internal/model/script"
	"github.com/hollowgames/whisper-room/backend/internal/service/puzzle"
)

// subState tracks the opening stage's obsession arc.
type subState int

const (
	subNone subState = iota
	subInitial
	subObsessive
	subSpamming
	subCompleted
)

func (s subState) String() string {
	switch s {
	case subInitial:
		return "initial"
	case subObsessive:
		return "obsessive"
	case subSpamming:
		return "spamming"
	case subCompleted:
		return "completed"
	default:
		return ""
	}
}

// Game is one live session's conversation engine. All state behind mu; the
// mutex also serializes scheduled callbacks against direct calls, so no two
// pieces of session-mutating logic ever interleave. Stale callbacks are
// made inert by the ended flag and the gen counter, which is bumped on
// every transition that cancels outstanding timers.
type Game struct {
	mu  sync.Mutex
	rng *rand.Rand

	id         string
	playerName string
	cfg        config.GameConfig
	scripts    script.Store

	sched *scheduler
	feed  *feed

	stage      int
	sub        subState
	queue      []string
	transcript []chat.Message
	stats      chat.Stats
	screen     string
	createdAt  time.Time

	puzzle   *puzzle.Instance
	spamStep int
	gen      int
	ended    bool
	ending   ending.Category
}

func newGame(id, playerName string, scripts script.Store, cfg config.GameConfig, rng *rand.Rand) *Game {
	now := time.Now().UTC()
	g := &Game{
		rng:        rng,
		id:         id,
		playerName: playerName,
		cfg:        cfg,
		scripts:    scripts,
		sched:      newScheduler(),
		feed:       newFeed(),
		sub:        subInitial,
		createdAt:  now,
		stats:      chat.Stats{StartTime: now},
	}

	if st, ok := scripts.ByIndex(0); ok {
		g.queue = append([]string(nil), st.Lines...)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.setScreenLocked(event.ScreenChat)
	g.appendMessageLocked(chat.RoleSystem, "connected to anonymous chatroom.")
	g.appendMessageLocked(chat.RoleSystem, "an anonymous user has joined.")
	g.scheduleAdvanceLocked()
	return g
}

// Subscribe attaches a new consumer to the session's event feed.
func (g *Game) Subscribe() (<-chan event.Event, func()) {
	return g.feed.Subscribe()
}

// SubmitMessage handles free-text player input.
func (g *Game) SubmitMessage(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ended {
		return ErrSessionEnded
	}

	g.appendMessageLocked(chat.RolePlayer, text)

	// Trigger rules in priority order: name reveal short-circuits the
	// session, a stop keyword ends the spam burst, anything else may
	// randomly escalate.
	if g.stage == 0 && intent.RevealsName(text, g.playerName) {
		g.finishLocked(ending.NameRevealed)
		return nil
	}

	if g.sub == subSpamming && intent.Stop(text) {
		g.sub = subCompleted
		g.advanceStageLocked()
		return nil
	}

	if g.puzzle == nil && g.rng.Float64() < g.cfg.EscalationChance {
		effects := []script.EffectName{script.EffectGlitch, script.EffectShake}
		g.publish(event.NewEffect(g.id, effects[g.rng.Intn(len(effects))]))
		g.publish(event.NewSound(g.id, event.SoundGlitch))
	}
	return nil
}

// SubmitAnswer resolves the active puzzle against a submitted answer.
func (g *Game) SubmitAnswer(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ended {
		return ErrSessionEnded
	}
	if g.puzzle == nil {
		return ErrNoActivePuzzle
	}

	g.appendMessageLocked(chat.RolePlayer, text)

	switch puzzle.Evaluate(*g.puzzle, text, g.playerName, time.Now().UTC(), g.cfg.StrictAnswers) {
	case puzzle.Success:
		g.puzzle = nil
		g.stats.PuzzlesSolved++
		g.appendMessageLocked(chat.RoleSystem, "security code accepted.")
		g.advanceStageLocked()
	case puzzle.Failure:
		g.puzzle = nil
		g.onPuzzleFailureLocked()
	default: // Retry
		g.publish(event.NewEffect(g.id, script.EffectShake))
		g.appendMessageLocked(chat.RoleSystem, "wrong code. try again...")
	}
	return nil
}

// Snapshot returns a read-only copy of the session state for handlers.
func (g *Game) Snapshot() chat.Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return chat.Session{
		ID:         g.id,
		PlayerName: g.playerName,
		Stage:      g.stage,
		SubState:   g.sub.String(),
		Screen:     g.screen,
		Ended:      g.ended,
		Ending:     string(g.ending),
		Stats:      g.stats,
		CreatedAt:  g.createdAt,
	}
}

// Transcript returns a copy of the message log.
func (g *Game) Transcript() []chat.Message {
	g.mu.Lock()
	defer g.mu.Unlock()
	copied := make([]chat.Message, len(g.transcript))
	copy(copied, g.transcript)
	return copied
}

// CurrentPuzzle reports the active puzzle instance, if any.
func (g *Game) CurrentPuzzle() (puzzle.Instance, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.puzzle == nil {
		return puzzle.Instance{}, false
	}
	return *g.puzzle, true
}

// Close tears the session down without emitting an ending. Used on restart
// and server shutdown.
func (g *Game) Close() {
	g.mu.Lock()
	g.ended = true
	g.gen++
	g.mu.Unlock()
	g.sched.Close()
	g.feed.close()
}

// --- engine internals; every *Locked method requires g.mu held ---

func (g *Game) scheduleAdvanceLocked() {
	gen := g.gen
	g.publish(event.NewTyping(g.id, true))
	g.sched.Schedule(g.typingDelay(), func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.ended || gen != g.gen || g.puzzle != nil {
			return
		}
		g.advanceLocked()
	})
}

func (g *Game) typingDelay() time.Duration {
	min, max := g.cfg.TypingDelayMin, g.cfg.TypingDelayMax
	if max <= min {
		return min
	}
	return min + time.Duration(g.rng.Int63n(int64(max-min)+1))
}

func (g *Game) advanceLocked() {
	if len(g.queue) == 0 {
		g.stageExhaustedLocked()
		return
	}

	line := strings.ReplaceAll(g.queue[0], "{name}", g.playerName)
	g.queue = g.queue[1:]

	g.publish(event.NewTyping(g.id, false))
	g.appendMessageLocked(chat.RoleAntagonist, line)
	g.stats.MessagesReceived++
	g.fireTriggersLocked(line)

	// The obsession begins the moment it first says the name back.
	if g.stage == 0 && g.sub == subInitial &&
		strings.Contains(strings.ToLower(line), strings.ToLower(g.playerName)) {
		g.sub = subObsessive
	}

	if len(g.queue) > 0 {
		g.scheduleAdvanceLocked()
	} else {
		g.stageExhaustedLocked()
	}
}

func (g *Game) fireTriggersLocked(line string) {
	st, ok := g.scripts.ByIndex(g.stage)
	if !ok {
		return
	}
	lowered := strings.ToLower(line)
	for _, trigger := range st.Effects {
		if trigger.Substring == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(trigger.Substring)) {
			g.publish(event.NewEffect(g.id, trigger.Effect))
			if trigger.Effect == script.EffectJumpscare {
				g.publish(event.NewSound(g.id, event.SoundHorror))
			}
		}
	}
}

func (g *Game) stageExhaustedLocked() {
	if g.stage == 0 {
		g.enterSpamLocked()
		return
	}
	g.enterPuzzleLocked()
}

// enterSpamLocked starts the stage-0 spam burst: escalating repeats of the
// player's name at shrinking intervals until a stop keyword arrives or the
// timeout fires the possessive ending.
func (g *Game) enterSpamLocked() {
	g.cancelTimersLocked()
	g.sub = subSpamming
	g.publish(event.NewSound(g.id, event.SoundTension))
	g.spamStep = 0
	g.scheduleSpamStepLocked(g.cfg.SpamInterval)

	gen := g.gen
	g.sched.Schedule(g.cfg.SpamTimeout, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.ended || gen != g.gen {
			return
		}
		g.finishLocked(ending.Possessed)
	})
}

func (g *Game) scheduleSpamStepLocked(interval time.Duration) {
	gen := g.gen
	g.sched.Schedule(interval, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.ended || gen != g.gen {
			return
		}

		g.spamStep++
		name := strings.ToUpper(g.playerName)
		line := strings.TrimSpace(strings.Repeat(name+" ", g.spamStep)) + strings.Repeat("!", g.spamStep)
		g.appendMessageLocked(chat.RoleAntagonist, line)
		g.stats.MessagesReceived++
		if g.spamStep%2 == 0 {
			g.publish(event.NewEffect(g.id, script.EffectShake))
		}

		next := interval * 3 / 4
		floor := g.cfg.SpamInterval / 10
		if floor < 10*time.Millisecond {
			floor = 10 * time.Millisecond
		}
		if next < floor {
			next = floor
		}
		g.scheduleSpamStepLocked(next)
	})
}

func (g *Game) enterPuzzleLocked() {
	g.cancelTimersLocked()

	st, _ := g.scripts.ByIndex(g.stage)
	now := time.Now().UTC()
	inst := puzzle.Start(g.rng, st.Puzzle, g.playerName, now, g.cfg.PuzzleTimeout)
	g.puzzle = &inst

	g.setScreenLocked(event.ScreenPuzzle)
	g.publish(event.NewPuzzle(g.id, inst.Prompt, inst.Hint, inst.Deadline))
	g.publish(event.NewSound(g.id, event.SoundTension))

	gen := g.gen
	g.sched.ScheduleRepeating(time.Second, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.ended || gen != g.gen || g.puzzle == nil {
			return
		}
		left := int(time.Until(g.puzzle.Deadline).Seconds())
		if left < 0 {
			left = 0
		}
		g.publish(event.NewCountdown(g.id, left))
	})
	g.sched.Schedule(g.cfg.PuzzleTimeout, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.ended || gen != g.gen || g.puzzle == nil {
			return
		}
		g.puzzle = nil
		g.appendMessageLocked(chat.RoleSystem, "time is up. the system has been breached.")
		g.onPuzzleFailureLocked()
	})
}

func (g *Game) onPuzzleFailureLocked() {
	g.stats.PuzzlesFailed++
	g.endWithClassifierLocked()
}

// advanceStageLocked moves to the next stage, or ends the session when the
// script is fully cleared. Stage only ever moves forward, by exactly one.
func (g *Game) advanceStageLocked() {
	g.cancelTimersLocked()
	g.stage++

	st, ok := g.scripts.ByIndex(g.stage)
	if g.stage >= g.scripts.Count() || !ok {
		g.endWithClassifierLocked()
		return
	}

	g.queue = append([]string(nil), st.Lines...)
	g.sub = subNone
	g.setScreenLocked(event.ScreenChat)
	g.scheduleAdvanceLocked()
}

func (g *Game) endWithClassifierLocked() {
	cat := ending.Classify(g.stats, g.stage, g.scripts.Count(), time.Now().UTC(), ending.Thresholds{
		EscapeSolved: g.cfg.EscapeSolved,
		EscapeWindow: g.cfg.EscapeWindow,
	})
	g.finishLocked(cat)
}

func (g *Game) finishLocked(cat ending.Category) {
	if g.ended {
		return
	}
	g.ended = true
	g.ending = cat
	g.cancelTimersLocked()
	g.puzzle = nil

	if cat == ending.NameRevealed || cat == ending.Possessed {
		g.publish(event.NewEffect(g.id, script.EffectJumpscare))
	}
	g.setScreenLocked(event.ScreenEnding)
	g.publish(event.NewSound(g.id, event.SoundHorror))
	g.publish(event.NewEnding(g.id, string(cat), cat.Line(g.playerName)))
}

func (g *Game) cancelTimersLocked() {
	g.sched.CancelAll()
	g.gen++
}

func (g *Game) setScreenLocked(screen string) {
	g.screen = screen
	g.publish(event.NewScreen(g.id, screen))
}

func (g *Game) appendMessageLocked(sender chat.Role, content string) {
	msg := chat.Message{
		ID:        uuid.NewString(),
		SessionID: g.id,
		Sender:    sender,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	g.transcript = append(g.transcript, msg)
	g.publish(event.NewMessage(msg))
	if sender == chat.RoleAntagonist {
		g.publish(event.NewSound(g.id, event.SoundNotification))
	}
}

func (g *Game) publish(ev event.Event) {
	g.feed.publish(ev)
}
