package script

// Store exposes stage-script retrieval for the conversation engine.
type Store interface {
	Count() int
	ByIndex(i int) (StageScript, bool)
}

// MemoryStore implements Store over an in-memory slice.
type MemoryStore struct {
	stages []StageScript
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied stages,
// renumbering them so Index always matches slice position.
func NewMemoryStore(stages []StageScript) *MemoryStore {
	copied := append([]StageScript(nil), stages...)
	for i := range copied {
		copied[i].Index = i
	}
	return &MemoryStore{stages: copied}
}

// Count reports how many stages the script has.
func (s *MemoryStore) Count() int {
	return len(s.stages)
}

// ByIndex looks up a stage by its progression index.
func (s *MemoryStore) ByIndex(i int) (StageScript, bool) {
	if i < 0 || i >= len(s.stages) {
		return StageScript{}, false
	}
	return s.stages[i], true
}
