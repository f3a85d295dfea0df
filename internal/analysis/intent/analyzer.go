// Package intent performs the keyword-level reading of player input the
// game needs. This is deliberately not NLP: the antagonist reacts to
// substrings, the way a scripted thing would.
package intent

import (
	"strings"
	"time"
)

var stopKeywords = []string{
	"stop", "quit", "enough", "go away", "leave me alone", "shut up",
	"silence", "no more", "please stop", "stay away",
}

var affirmativeKeywords = []string{
	"yes", "yeah", "yep", "yup", "ok", "okay", "sure", "true", "of course",
}

// Stop reports whether the text matches the stop/cancel keyword set that
// ends the antagonist's spam burst.
func Stop(text string) bool {
	return containsAny(normalize(text), stopKeywords)
}

// Affirmative reports whether the text is a plain agreement.
func Affirmative(text string) bool {
	normalized := normalize(text)
	for _, word := range affirmativeKeywords {
		if normalized == word {
			return true
		}
	}
	return false
}

// RevealsName reports whether the text contains the player's own name.
// Matching is case-insensitive and ignores surrounding words: typing the
// name anywhere counts as revealing it.
func RevealsName(text, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	return strings.Contains(normalize(text), strings.ToLower(name))
}

// TellsTruth implements the deception-puzzle truthfulness heuristic: the
// answer is "true" when it is the player's real name, a plain affirmative,
// or the literal current time or date. The check is intentionally loose; a
// fabricated answer that happens to equal the real date still counts as
// the truth.
func TellsTruth(text, name string, now time.Time) bool {
	normalized := normalize(text)
	if normalized == "" {
		return false
	}
	if strings.TrimSpace(name) != "" && normalized == strings.ToLower(strings.TrimSpace(name)) {
		return true
	}
	if Affirmative(text) {
		return true
	}

	literals := []string{
		now.Format("15:04"),
		now.Format("3:04 pm"),
		now.Format("3:04pm"),
		now.Format("2006-01-02"),
		strings.ToLower(now.Format("January 2")),
		strings.ToLower(now.Format("January 2, 2006")),
	}
	return containsAny(normalized, literals)
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func containsAny(normalized string, keywords []string) bool {
	for _, word := range keywords {
		if word == "" {
			continue
		}
		if strings.Contains(normalized, strings.ToLower(word)) {
			return true
		}
	}
	return false
}
