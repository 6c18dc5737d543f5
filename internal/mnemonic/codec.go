// Package mnemonic implements the codec between raw secret bytes and
// wordlist phrases, plus input normalization and typo detection.
//
// The dictionary is the standard 2048-word English mnemonic list, so shares
// can be written down and transcribed with the same tooling as seed
// phrases. The encoding is NOT BIP39: there is no checksum. The final
// 11-bit group is padded with low-order zero bits, and decode discards the
// padding without validating it.
package mnemonic

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

var (
	// ErrInvalidLength indicates an encode input that is not a supported
	// secret width.
	ErrInvalidLength = errors.New("byte length must be 16 or 32")

	// ErrWordCountMismatch indicates a phrase whose word count matches no
	// supported field width.
	ErrWordCountMismatch = errors.New("word count must be 12 or 24")

	// ErrUnknownWord indicates a word that is not in the wordlist.
	ErrUnknownWord = errors.New("unknown word")
)

const (
	// BitsPerWord is the index width of the 2048-word dictionary.
	BitsPerWord = 11

	// WordListSize is the number of words in the dictionary.
	WordListSize = 2048
)

// wordlist is the shared read-only dictionary, index 0-2047.
//
//nolint:gochecknoglobals // fixed external asset, loaded once
var wordlist = bip39.GetWordList()

func init() {
	// The 11-bit packing in Encode/Decode assumes this exact size.
	if len(wordlist) != WordListSize {
		panic(fmt.Sprintf("wordlist has %d entries, want %d", len(wordlist), WordListSize))
	}
}

var (
	// whitespaceRegex matches one or more whitespace characters.
	whitespaceRegex = regexp.MustCompile(`\s+`)

	// numberedListRegex matches numbered list prefixes like "1." "2)" "3:"
	numberedListRegex = regexp.MustCompile(`(?m)^\s*\d+[\.\)\:]\s*`)

	// bulletListRegex matches bullet prefixes like "- " "* " "• "
	bulletListRegex = regexp.MustCompile(`(?m)^\s*[-*•]\s*`)
)

// Encode renders a 16- or 32-byte string as its canonical phrase: the bit
// string split into 11-bit groups, most significant bit first, the final
// group padded with low-order zeros (128 bits -> 12 words with 4 padding
// bits, 256 bits -> 24 words with 8).
func Encode(data []byte) ([]string, error) {
	if len(data) != 16 && len(data) != 32 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidLength, len(data))
	}

	words := make([]string, 0, (len(data)*8+BitsPerWord-1)/BitsPerWord)

	var acc uint32
	var bits uint
	for _, b := range data {
		acc = acc<<8 | uint32(b)
		bits += 8
		if bits >= BitsPerWord {
			bits -= BitsPerWord
			words = append(words, wordlist[(acc>>bits)&(WordListSize-1)])
		}
	}
	if bits > 0 {
		// Final partial group: data bits high, zero padding low.
		words = append(words, wordlist[(acc<<(BitsPerWord-bits))&(WordListSize-1)])
	}

	return words, nil
}

// Decode converts a 12- or 24-word phrase back to its exact byte string.
// Word indexes are concatenated most significant bit first and truncated to
// the field byte width; the padding bits written by Encode carry no meaning
// and are ignored, not validated. Decode(Encode(b)) == b for every valid b.
func Decode(words []string) ([]byte, error) {
	var byteLen int
	switch len(words) {
	case 12:
		byteLen = 16
	case 24:
		byteLen = 32
	default:
		return nil, fmt.Errorf("%w: got %d words, want 12 or 24", ErrWordCountMismatch, len(words))
	}

	out := make([]byte, 0, byteLen)

	var acc uint32
	var bits uint
	for i, w := range words {
		idx, ok := bip39.GetWordIndex(w)
		if !ok {
			return nil, fmt.Errorf("%w: %q at position %d", ErrUnknownWord, w, i+1)
		}

		acc = acc<<BitsPerWord | uint32(idx) //nolint:gosec // idx < 2048
		bits += BitsPerWord
		for bits >= 8 && len(out) < byteLen {
			bits -= 8
			out = append(out, byte(acc>>bits))
		}
	}

	return out, nil
}

// Normalize cleans pasted phrase input by:
// - Converting to lowercase
// - Removing numbered list prefixes (1. 2) 3: etc.)
// - Removing bullet prefixes (- * •)
// - Replacing commas with spaces
// - Collapsing all whitespace runs to single spaces and trimming
func Normalize(input string) string {
	input = strings.ToLower(input)
	input = numberedListRegex.ReplaceAllString(input, " ")
	input = bulletListRegex.ReplaceAllString(input, " ")
	input = strings.ReplaceAll(input, ",", " ")
	input = whitespaceRegex.ReplaceAllString(input, " ")
	return strings.TrimSpace(input)
}

// IsValidWord reports whether a word is in the wordlist.
func IsValidWord(word string) bool {
	_, ok := bip39.GetWordIndex(strings.ToLower(word))
	return ok
}
