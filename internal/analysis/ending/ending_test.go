package ending_test

import (
	"strings"
	"testing"
	"time"

	"github.com/hollowgames/whisper-room/backend/internal/analysis/ending"
	"github.com/hollowgames/whisper-room/backend/internal/model/chat"
)

var thresholds = ending.Thresholds{
	EscapeSolved: 2,
	EscapeWindow: time.Minute,
}

func TestClassifyPrecedence(t *testing.T) {
	start := time.Date(2024, time.March, 9, 22, 0, 0, 0, time.UTC)
	late := start.Add(10 * time.Minute)

	cases := []struct {
		name       string
		stats      chat.Stats
		stage      int
		stageCount int
		now        time.Time
		want       ending.Category
	}{
		{
			// A recorded failure beats any amount of stage progress.
			name:       "failure beats progress",
			stats:      chat.Stats{PuzzlesFailed: 1, PuzzlesSolved: 3, StartTime: start},
			stage:      3,
			stageCount: 4,
			now:        late,
			want:       ending.Hacked,
		},
		{
			name:       "all stages cleared",
			stats:      chat.Stats{PuzzlesSolved: 3, StartTime: start},
			stage:      4,
			stageCount: 4,
			now:        late,
			want:       ending.Survived,
		},
		{
			name:       "enough puzzles solved escapes",
			stats:      chat.Stats{PuzzlesSolved: 2, StartTime: start},
			stage:      3,
			stageCount: 4,
			now:        late,
			want:       ending.Escaped,
		},
		{
			name:       "quick exit escapes",
			stats:      chat.Stats{StartTime: start},
			stage:      1,
			stageCount: 4,
			now:        start.Add(30 * time.Second),
			want:       ending.Escaped,
		},
		{
			name:       "lingering without progress is consumed",
			stats:      chat.Stats{PuzzlesSolved: 1, StartTime: start},
			stage:      1,
			stageCount: 4,
			now:        late,
			want:       ending.Consumed,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ending.Classify(tc.stats, tc.stage, tc.stageCount, tc.now, thresholds)
			if got != tc.want {
				t.Fatalf("Classify = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestLineAddressesPlayer(t *testing.T) {
	for _, cat := range []ending.Category{
		ending.Hacked, ending.Survived, ending.Escaped, ending.Consumed,
		ending.NameRevealed, ending.Possessed,
	} {
		line := cat.Line("Kim")
		if !strings.Contains(line, "Kim") {
			t.Fatalf("%s line does not address the player: %q", cat, line)
		}
	}
}
