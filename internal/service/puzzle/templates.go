package puzzle

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// The name, location and personal tables are all deception puzzles: the
// prompt begs for the player's real information, and lying is the only way
// through. ExpectedAnswer holds a decoy the frontend may show scribbled in
// the corner; evaluation only cares whether the answer is the truth.

func nameTemplate(rng *rand.Rand, playerName string) Instance {
	prompts := []string{
		"what is your name? you can tell me. i already suspect it is " + playerName + ".",
		"introduce yourself properly. your real name, please.",
		"i will trade you: my name for yours. yours first.",
	}
	return Instance{
		Prompt:         prompts[rng.Intn(len(prompts))],
		ExpectedAnswer: "9999",
		Hint:           "it wants your name. do not give it your name.",
		Deception:      true,
	}
}

func locationTemplate(rng *rand.Rand) Instance {
	prompts := []string{
		"where do you live? a street name is enough.",
		"which city are you in right now? be honest.",
		"describe the building you are in. i like details.",
	}
	return Instance{
		Prompt:         prompts[rng.Intn(len(prompts))],
		ExpectedAnswer: "nowhere",
		Hint:           "any made-up place will do. never the real one.",
		Deception:      true,
	}
}

func personalTemplate(rng *rand.Rand, now time.Time) Instance {
	prompts := []string{
		fmt.Sprintf("what time is it where you are? my clock says %s.", now.Format("15:04")),
		fmt.Sprintf("what is today's date? i keep losing track after %s.", now.Format("January 2")),
		"is anyone else in the room with you? yes or no.",
	}
	return Instance{
		Prompt:         prompts[rng.Intn(len(prompts))],
		ExpectedAnswer: "never",
		Hint:           "lie. whatever it asks, lie.",
		Deception:      true,
	}
}

// hackingTemplate picks one of the four exact-answer security-code
// generators.
func hackingTemplate(rng *rand.Rand) Instance {
	generators := []func(*rand.Rand) Instance{
		numberSequence,
		binaryCode,
		patternMatch,
		mathProblem,
	}
	return generators[rng.Intn(len(generators))](rng)
}

func numberSequence(rng *rand.Rand) Instance {
	start := rng.Intn(10)
	step := rng.Intn(5) + 1

	var seq string
	for i := 0; i < 5; i++ {
		if i > 0 {
			seq += " "
		}
		seq += strconv.Itoa(start + i*step)
	}

	return Instance{
		Prompt:         seq + " ?",
		ExpectedAnswer: strconv.Itoa(start + 5*step),
		Hint:           fmt.Sprintf("the next number (rule: +%d)", step),
	}
}

func binaryCode(rng *rand.Rand) Instance {
	n := rng.Intn(100)
	return Instance{
		Prompt:         "binary: " + strconv.FormatInt(int64(n), 2),
		ExpectedAnswer: strconv.Itoa(n),
		Hint:           "convert to decimal",
	}
}

func patternMatch(rng *rand.Rand) Instance {
	patterns := []Instance{
		{Prompt: "A B C D ?", ExpectedAnswer: "E", Hint: "alphabetical order"},
		{Prompt: "1 4 9 16 ?", ExpectedAnswer: "25", Hint: "square numbers"},
		{Prompt: "2 4 8 16 ?", ExpectedAnswer: "32", Hint: "powers of two"},
		{Prompt: "1 1 2 3 ?", ExpectedAnswer: "5", Hint: "fibonacci"},
	}
	return patterns[rng.Intn(len(patterns))]
}

func mathProblem(rng *rand.Rand) Instance {
	a := rng.Intn(20) + 1
	b := rng.Intn(20) + 1

	if rng.Intn(2) == 0 {
		return Instance{
			Prompt:         fmt.Sprintf("%d + %d = ?", a, b),
			ExpectedAnswer: strconv.Itoa(a + b),
			Hint:           "simple arithmetic",
		}
	}
	return Instance{
		Prompt:         fmt.Sprintf("%d * %d = ?", a, b),
		ExpectedAnswer: strconv.Itoa(a * b),
		Hint:           "simple arithmetic",
	}
}
