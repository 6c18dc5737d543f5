// Package contracts defines the interface contracts for the Splinter MVP.
// These are design artifacts - not compiled code.
// Actual implementations go in internal/mnemonic/ and internal/phrase/
package contracts

import (
	"io"
)

// WordCodec converts between raw secret bytes and wordlist phrases.
// The dictionary is the standard 2048-word English mnemonic list, but the
// encoding is NOT BIP39: there is no checksum. The final 11-bit group is
// padded with low-order zero bits and decode ignores the padding.
type WordCodec interface {
	// Encode renders a 16- or 32-byte string as its canonical phrase:
	// 11-bit groups, most significant bit first (12 or 24 words).
	Encode(data []byte) ([]string, error)

	// Decode converts a 12- or 24-word phrase back to its exact byte
	// string, truncated to the field byte width. Decode(Encode(b)) == b.
	Decode(words []string) ([]byte, error)

	// IsValidWord reports whether a word is in the dictionary.
	IsValidWord(word string) bool
}

// InputCleaner normalizes pasted phrase input before decoding.
type InputCleaner interface {
	// Normalize lowercases, strips numbered list prefixes ("1." "2)" "3:")
	// and bullets ("-" "*"), replaces commas with spaces, and collapses
	// whitespace runs.
	Normalize(input string) string

	// DetectTypos returns every word missing from the dictionary, with
	// the closest dictionary word (Levenshtein distance <= 2) when one
	// exists.
	DetectTypos(phrase string) []Typo
}

// Typo describes a word that is not in the dictionary.
type Typo struct {
	// Index is the 0-based word position in the normalized phrase.
	Index int

	// Word is the offending input word.
	Word string

	// Suggestion is the closest dictionary word, empty when nothing is
	// within the edit-distance limit.
	Suggestion string
}

// PhraseService is the workflow layer the CLI talks to: whole phrases in,
// whole phrases out. A share line is "<index> <words>": a 1-based decimal
// index, whitespace, then 12 or 24 dictionary words.
type PhraseService interface {
	// Generate draws a fresh random secret and returns it as a phrase:
	// 12 words by default, 24 when long is set.
	Generate(long bool, rng io.Reader) (string, error)

	// Split decodes a seed phrase and splits it into count share lines,
	// any threshold of which reconstruct it via Combine. The field width
	// is inferred from the word count.
	Split(seedPhrase string, threshold, count int, rng io.Reader) ([]string, error)

	// Combine parses share lines and reconstructs the original phrase in
	// canonical encoding. Every line participates in the interpolation;
	// fewer lines than the split's threshold yields a wrong-but-plausible
	// phrase, never an error.
	Combine(shareLines []string) (string, error)

	// Inspect reports word count, inferred field width, and typos for
	// the check command, without turning the input into a secret.
	Inspect(input string) (PhraseReport, error)
}

// PhraseReport summarizes a phrase for display.
type PhraseReport struct {
	// Words is the word count after normalization.
	Words int

	// Field is the inferred field width, zero when Words matches
	// neither supported count.
	Field FieldSize

	// Typos lists the words missing from the dictionary.
	Typos []Typo
}

// Codec-related errors.
var (
	ErrUnknownWord       = Error{Code: "UNKNOWN_WORD", Message: "word is not in the wordlist"}
	ErrWordCountMismatch = Error{Code: "WORD_COUNT_MISMATCH", Message: "phrase must contain 12 or 24 words"}
	ErrInvalidLength     = Error{Code: "INVALID_LENGTH", Message: "secret must be exactly 16 or 32 bytes"}
	ErrFieldSizeMismatch = Error{Code: "FIELD_SIZE_MISMATCH", Message: "shares encode different field sizes"}
	ErrInvalidShareLine  = Error{Code: "INVALID_SHARE_LINE", Message: "share line must be an index followed by words"}
)
