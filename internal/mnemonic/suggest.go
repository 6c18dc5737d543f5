package mnemonic

import (
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// MaxTypoDistance is the maximum edit distance for typo suggestions.
const MaxTypoDistance = 2

// Typo describes a word that is not in the wordlist, with a suggested
// correction when one is close enough.
type Typo struct {
	// Index is the zero-based position of the word in the phrase
	Index int

	// Word is the invalid word as entered
	Word string

	// Suggestion is the closest dictionary word (empty if none within
	// MaxTypoDistance)
	Suggestion string

	// Distance is the edit distance to the suggestion
	Distance int
}

// SuggestWord returns the closest dictionary word within MaxTypoDistance
// edits, or empty string if none qualifies.
func SuggestWord(word string) (string, int) {
	word = strings.ToLower(word)

	bestWord := ""
	bestDistance := MaxTypoDistance + 1

	for _, candidate := range wordlist {
		distance := levenshtein.ComputeDistance(word, candidate)
		if distance < bestDistance {
			bestWord = candidate
			bestDistance = distance

			// Exact match, no need to continue
			if distance == 0 {
				break
			}
		}
	}

	if bestDistance > MaxTypoDistance {
		return "", 0
	}

	return bestWord, bestDistance
}

// DetectTypos normalizes a phrase and returns one Typo per word that is not
// in the wordlist. An empty result means every word is valid; it does not
// mean the phrase decodes.
func DetectTypos(phrase string) []Typo {
	words := strings.Fields(Normalize(phrase))

	var typos []Typo
	for i, word := range words {
		if IsValidWord(word) {
			continue
		}

		suggestion, distance := SuggestWord(word)
		typos = append(typos, Typo{
			Index:      i,
			Word:       word,
			Suggestion: suggestion,
			Distance:   distance,
		})
	}

	return typos
}

// FormatTypos renders typo detections as human-readable lines.
func FormatTypos(typos []Typo) string {
	if len(typos) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Possible typos detected:\n")

	for _, typo := range typos {
		sb.WriteString("  Word ")
		sb.WriteString(strconv.Itoa(typo.Index + 1))
		sb.WriteString(": '")
		sb.WriteString(typo.Word)
		sb.WriteString("'")

		if typo.Suggestion != "" {
			sb.WriteString(" - did you mean '")
			sb.WriteString(typo.Suggestion)
			sb.WriteString("'?")
		} else {
			sb.WriteString(" is not in the wordlist")
		}

		sb.WriteString("\n")
	}

	return sb.String()
}
