package script

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type scriptFile struct {
	Stages []StageScript `yaml:"stages"`
}

// Load reads a stage script from a YAML file. Stages with no puzzle kind,
// or an unrecognized one, are coerced to the hacking kind so the game
// remains playable with a sloppy script file.
func Load(path string) (*MemoryStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script file: %w", err)
	}

	var file scriptFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse script file %s: %w", path, err)
	}
	if len(file.Stages) == 0 {
		return nil, fmt.Errorf("script file %s defines no stages", path)
	}

	for i := range file.Stages {
		if len(file.Stages[i].Lines) == 0 {
			return nil, fmt.Errorf("script file %s: stage %d has no lines", path, i)
		}
		switch file.Stages[i].Puzzle {
		case KindName, KindLocation, KindPersonal, KindHacking:
		default:
			file.Stages[i].Puzzle = KindHacking
		}
	}

	return NewMemoryStore(file.Stages), nil
}
