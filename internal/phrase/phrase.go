// Package phrase binds the wordlist codec to the secret sharing engine.
// It is the layer the CLI talks to: whole phrases in, whole phrases out,
// with failures already mapped to coded errors carrying details and
// suggestions.
//
// A share line is "<index> <words>": a 1-based decimal index, whitespace,
// then 12 or 24 wordlist words. Field width is never passed explicitly;
// it is inferred from the word count everywhere.
package phrase

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/splinterlabs/splinter/internal/field"
	"github.com/splinterlabs/splinter/internal/mnemonic"
	"github.com/splinterlabs/splinter/internal/secmem"
	"github.com/splinterlabs/splinter/internal/shamir"
	splinterr "github.com/splinterlabs/splinter/pkg/errors"
)

// Generate draws a fresh random secret and returns it as a phrase:
// 12 words by default, 24 when long is set.
func Generate(long bool, rng io.Reader) (string, error) {
	size := field.Size128
	if long {
		size = field.Size256
	}

	elem, err := field.Random(size, rng)
	if err != nil {
		return "", splinterr.Wrap(err, "failed to generate random secret")
	}
	defer elem.Zeroize()

	return encodeElement(size, elem)
}

// Split decodes a seed phrase and splits it into count share lines, any
// threshold of which reconstruct it via Combine.
func Split(seedPhrase string, threshold, count int, rng io.Reader) ([]string, error) {
	size, elem, err := decodePhrase(seedPhrase)
	if err != nil {
		return nil, err
	}
	defer elem.Zeroize()

	shares, err := shamir.Split(size, elem, threshold, count, rng)
	if err != nil {
		return nil, codedSplitErr(err, threshold, count)
	}
	defer zeroShares(shares)

	lines := make([]string, len(shares))
	for i, sh := range shares {
		phrasePart, err := encodeElement(size, sh.Value)
		if err != nil {
			return nil, err
		}
		lines[i] = strconv.Itoa(sh.Index) + " " + phrasePart
	}

	return lines, nil
}

// Combine parses share lines and reconstructs the original seed phrase.
// Every line given participates in the interpolation, so the caller must
// supply at least as many shares as the split's threshold; fewer than that
// yields a wrong-but-plausible phrase, never an error.
func Combine(shareLines []string) (string, error) {
	if len(shareLines) < 2 {
		return "", splinterr.WithDetails(splinterr.ErrInsufficientShares, map[string]string{
			"shares": strconv.Itoa(len(shareLines)),
		})
	}

	var size field.Size
	shares := make([]shamir.Share, 0, len(shareLines))
	defer func() { zeroShares(shares) }()

	seen := make(map[int]bool, len(shareLines))
	for i, line := range shareLines {
		idx, s, elem, err := parseShareLine(line)
		if err != nil {
			return "", splinterr.Wrap(err, "share line %d", i+1)
		}

		if seen[idx] {
			elem.Zeroize()
			return "", splinterr.WithDetails(splinterr.ErrDuplicateIndex, map[string]string{
				"index": strconv.Itoa(idx),
			})
		}
		seen[idx] = true

		if i == 0 {
			size = s
		} else if s != size {
			elem.Zeroize()
			return "", splinterr.WithDetails(splinterr.ErrFieldSizeMismatch, map[string]string{
				"expected": size.String(),
				"actual":   s.String(),
			})
		}

		shares = append(shares, shamir.Share{Index: idx, Value: elem})
	}

	secret, err := shamir.Combine(size, shares)
	if err != nil {
		return "", codedCombineErr(err)
	}
	defer secret.Zeroize()

	return encodeElement(size, secret)
}

// Report summarizes a phrase for the check command without turning it into
// a secret.
type Report struct {
	Words int             // word count after normalization
	Size  field.Size      // inferred field width, zero when Words matches neither
	Typos []mnemonic.Typo // words missing from the wordlist, with suggestions
}

// Valid reports whether the phrase has a usable word count and every word
// is in the wordlist. A valid phrase always decodes.
func (r Report) Valid() bool {
	return r.Size.Valid() && len(r.Typos) == 0
}

// Inspect normalizes a phrase and reports its word count, inferred field
// size, and any words that are not in the wordlist.
func Inspect(input string) (Report, error) {
	normalized := mnemonic.Normalize(input)
	if normalized == "" {
		return Report{}, splinterr.WithSuggestion(splinterr.ErrInvalidInput, "enter a phrase to check")
	}

	words := strings.Fields(normalized)
	r := Report{Words: len(words)}
	if size, ok := field.SizeForWords(len(words)); ok {
		r.Size = size
	}
	r.Typos = mnemonic.DetectTypos(normalized)

	return r, nil
}

// decodePhrase normalizes a phrase, decodes it, and infers the field size
// from the word count.
func decodePhrase(input string) (field.Size, field.Element, error) {
	words := strings.Fields(mnemonic.Normalize(input))

	size, ok := field.SizeForWords(len(words))
	if !ok {
		return 0, field.Element{}, splinterr.WithDetails(splinterr.ErrWordCountMismatch, map[string]string{
			"expected": "12 or 24",
			"actual":   strconv.Itoa(len(words)),
		})
	}

	raw, err := mnemonic.Decode(words)
	if err != nil {
		return 0, field.Element{}, codedDecodeErr(err, words)
	}
	defer secmem.ZeroBytes(raw)

	elem, err := field.FromBytes(size, raw)
	if err != nil {
		return 0, field.Element{}, splinterr.Wrap(err, "failed to load secret element")
	}

	return size, elem, nil
}

// encodeElement renders an element as a space-joined phrase, wiping the
// intermediate byte buffer.
func encodeElement(s field.Size, e field.Element) (string, error) {
	raw := e.Bytes(s)
	defer secmem.ZeroBytes(raw)

	words, err := mnemonic.Encode(raw)
	if err != nil {
		return "", splinterr.Wrap(err, "failed to encode secret")
	}

	return strings.Join(words, " "), nil
}

// parseShareLine splits "<index> <words>" and decodes the words. The index
// may carry list punctuation ("3.", "3)", "3:") from transcription.
func parseShareLine(line string) (int, field.Size, field.Element, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return 0, 0, field.Element{}, splinterr.WithSuggestion(splinterr.ErrInvalidShareLine,
			`expected "<index> <words>", e.g. "1 legal winner thank ..."`)
	}

	idx, err := strconv.Atoi(strings.TrimRight(tokens[0], ".):"))
	if err != nil {
		return 0, 0, field.Element{}, splinterr.WithDetails(splinterr.ErrInvalidShareLine, map[string]string{
			"index": tokens[0],
		})
	}
	if idx < 1 || idx > shamir.MaxShares {
		return 0, 0, field.Element{}, splinterr.WithDetails(splinterr.ErrInvalidShareIndex, map[string]string{
			"index": strconv.Itoa(idx),
		})
	}

	words := strings.Fields(mnemonic.Normalize(strings.Join(tokens[1:], " ")))
	size, ok := field.SizeForWords(len(words))
	if !ok {
		return 0, 0, field.Element{}, splinterr.WithDetails(splinterr.ErrWordCountMismatch, map[string]string{
			"expected": "12 or 24",
			"actual":   strconv.Itoa(len(words)),
		})
	}

	raw, err := mnemonic.Decode(words)
	if err != nil {
		return 0, 0, field.Element{}, codedDecodeErr(err, words)
	}
	defer secmem.ZeroBytes(raw)

	elem, err := field.FromBytes(size, raw)
	if err != nil {
		return 0, 0, field.Element{}, splinterr.Wrap(err, "failed to load share value")
	}

	return idx, size, elem, nil
}

// codedDecodeErr maps codec sentinels onto coded errors with the details
// the CLI prints: the offending word, its position, and a close dictionary
// word when one exists.
func codedDecodeErr(err error, words []string) error {
	switch {
	case errors.Is(err, mnemonic.ErrUnknownWord):
		for i, w := range words {
			if mnemonic.IsValidWord(w) {
				continue
			}
			coded := splinterr.WithDetails(splinterr.ErrUnknownWord, map[string]string{
				"word":     w,
				"position": strconv.Itoa(i + 1),
			})
			if suggestion, _ := mnemonic.SuggestWord(w); suggestion != "" {
				coded = splinterr.WithSuggestion(coded, fmt.Sprintf("did you mean %q?", suggestion))
			}
			return coded
		}
		return splinterr.ErrUnknownWord
	case errors.Is(err, mnemonic.ErrWordCountMismatch):
		return splinterr.WithDetails(splinterr.ErrWordCountMismatch, map[string]string{
			"expected": "12 or 24",
			"actual":   strconv.Itoa(len(words)),
		})
	default:
		return splinterr.Wrap(err, "failed to decode phrase")
	}
}

// codedSplitErr maps engine sentinels raised at split time.
func codedSplitErr(err error, threshold, count int) error {
	switch {
	case errors.Is(err, shamir.ErrInvalidThreshold):
		return splinterr.WithDetails(splinterr.ErrInvalidThreshold, map[string]string{
			"threshold": strconv.Itoa(threshold),
			"count":     strconv.Itoa(count),
		})
	case errors.Is(err, shamir.ErrTooManyShares):
		return splinterr.WithDetails(splinterr.ErrTooManyShares, map[string]string{
			"count": strconv.Itoa(count),
		})
	default:
		return splinterr.Wrap(err, "failed to split secret")
	}
}

// codedCombineErr maps engine sentinels raised at combine time. The
// duplicate and index checks in this package normally fire first; these
// cover direct misuse of the engine semantics.
func codedCombineErr(err error) error {
	switch {
	case errors.Is(err, shamir.ErrInsufficientShares):
		return splinterr.ErrInsufficientShares
	case errors.Is(err, shamir.ErrDuplicateIndex):
		return splinterr.ErrDuplicateIndex
	case errors.Is(err, shamir.ErrInvalidIndex):
		return splinterr.ErrInvalidShareIndex
	case errors.Is(err, field.ErrDivisionByZero):
		return splinterr.ErrDivisionByZero
	default:
		return splinterr.Wrap(err, "failed to combine shares")
	}
}

func zeroShares(shares []shamir.Share) {
	for i := range shares {
		shares[i].Value.Zeroize()
	}
}
