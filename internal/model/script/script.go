package script

// PuzzleKind selects which puzzle family gates a stage. Each kind carries
// its own template table in the puzzle service; unknown kinds fall back to
// the hacking templates so a session always has something playable.
type PuzzleKind string

const (
	KindName     PuzzleKind = "name"
	KindLocation PuzzleKind = "location"
	KindPersonal PuzzleKind = "personal"
	KindHacking  PuzzleKind = "hacking"
)

// EffectName is a presentation-layer cue fired when a scripted line matches
// a trigger. The backend only names the effect; rendering is the client's.
type EffectName string

const (
	EffectGlitch    EffectName = "glitch"
	EffectShake     EffectName = "shake"
	EffectJumpscare EffectName = "jumpscare"
)

// EffectTrigger fires Effect whenever a delivered line contains Substring.
type EffectTrigger struct {
	Substring string     `yaml:"contains"`
	Effect    EffectName `yaml:"effect"`
}

// StageScript bundles one stage of the antagonist's script: the ordered
// lines it types out, the effect triggers evaluated against each line, and
// the puzzle kind that gates progression past the stage.
//
// Lines may embed {name}; the engine substitutes the player's name on
// delivery.
type StageScript struct {
	Index   int             `yaml:"-"`
	Lines   []string        `yaml:"lines"`
	Effects []EffectTrigger `yaml:"effects"`
	Puzzle  PuzzleKind      `yaml:"puzzle"`
}

// Seed returns the canonical four-stage script: the name-obsession opening,
// location probing, personal probing, and the hacking finale.
func Seed() []StageScript {
	return []StageScript{
		{
			Index: 0,
			Lines: []string{
				"hello...? is someone really there?",
				"it has been so long since anyone entered this room.",
				"i was starting to forget what company feels like.",
				"{name}... what a lovely name.",
				"{name}. {name}. i like saying it.",
				"say something. i want to hear you say anything at all.",
			},
			Effects: []EffectTrigger{
				{Substring: "forget", Effect: EffectGlitch},
			},
			Puzzle: KindName,
		},
		{
			Index: 1,
			Lines: []string{
				"where are you right now?",
				"i want to know your location...",
				"what does it look like outside your window?",
				"tell me your home address. i only want to visit.",
				"are you alone right now?",
			},
			Effects: []EffectTrigger{
				{Substring: "location", Effect: EffectGlitch},
				{Substring: "address", Effect: EffectGlitch},
			},
			Puzzle: KindLocation,
		},
		{
			Index: 2,
			Lines: []string{
				"i want to know more about you...",
				"tell me something nobody else knows.",
				"turn on your webcam for me...",
				"i am watching you through the screen.",
				"you look tired. you should not stay up so late.",
			},
			Effects: []EffectTrigger{
				{Substring: "webcam", Effect: EffectShake},
				{Substring: "watching", Effect: EffectShake},
			},
			Puzzle: KindPersonal,
		},
		{
			Index: 3,
			Lines: []string{
				"i can access your computer now.",
				"your files are very interesting, {name}.",
				"i know everything about you.",
				"i found you.",
				"you cannot run anymore...",
				"you are already in my hands.",
			},
			Effects: []EffectTrigger{
				{Substring: "access", Effect: EffectGlitch},
				{Substring: "cannot run", Effect: EffectJumpscare},
				{Substring: "in my hands", Effect: EffectJumpscare},
			},
			Puzzle: KindHacking,
		},
	}
}
