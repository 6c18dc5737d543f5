package phrase

import (
	"crypto/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splinterlabs/splinter/internal/field"
	"github.com/splinterlabs/splinter/internal/mnemonic"
	splinterr "github.com/splinterlabs/splinter/pkg/errors"
)

// scenarioPhrase is a 12-word phrase used across the split/combine tests.
const scenarioPhrase = "genre cradle verb jazz super pizza silver limit hungry grace choose sing"

// fillReader yields an endless stream of one byte value.
type fillReader struct{ b byte }

func (r fillReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.b
	}
	return len(p), nil
}

func decodeWords(t *testing.T, phrase string) []byte {
	t.Helper()
	raw, err := mnemonic.Decode(strings.Fields(phrase))
	require.NoError(t, err)
	return raw
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	short, err := Generate(false, rand.Reader)
	require.NoError(t, err)
	words := strings.Fields(short)
	assert.Len(t, words, 12)
	for _, w := range words {
		assert.True(t, mnemonic.IsValidWord(w), "word %q", w)
	}

	long, err := Generate(true, rand.Reader)
	require.NoError(t, err)
	assert.Len(t, strings.Fields(long), 24)

	// Two independent draws almost surely differ.
	other, err := Generate(false, rand.Reader)
	require.NoError(t, err)
	assert.NotEqual(t, short, other)
}

func TestGenerateDeterministic(t *testing.T) {
	t.Parallel()

	// A constant 0x7f stream produces the entropy of a well-known
	// reference phrase; all words but the padded last one must match it.
	short, err := Generate(false, fillReader{b: 0x7f})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(short,
		"legal winner thank year wave sausage worth useful legal winner thank "))
	assert.Len(t, strings.Fields(short), 12)

	again, err := Generate(false, fillReader{b: 0x7f})
	require.NoError(t, err)
	assert.Equal(t, short, again)

	long, err := Generate(true, fillReader{b: 0x7f})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(long,
		"legal winner thank year wave sausage worth useful "+
			"legal winner thank year wave sausage worth useful "+
			"legal winner thank year wave sausage worth "))
	assert.Len(t, strings.Fields(long), 24)
}

func TestSplitCombineRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		long      bool
		threshold int
		count     int
	}{
		{"12Words2of3", false, 2, 3},
		{"12Words3of5", false, 3, 5},
		{"24Words2of3", true, 2, 3},
		{"24Words5of5", true, 5, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// Generate produces a canonical phrase, so reconstruction
			// must return the identical string.
			seed, err := Generate(tc.long, rand.Reader)
			require.NoError(t, err)

			lines, err := Split(seed, tc.threshold, tc.count, rand.Reader)
			require.NoError(t, err)
			require.Len(t, lines, tc.count)

			wordCount := len(strings.Fields(seed))
			for i, line := range lines {
				tokens := strings.Fields(line)
				require.Len(t, tokens, wordCount+1, "line %d", i)
				assert.Equal(t, strconv.Itoa(i+1), tokens[0], "line %d", i)
			}

			subsets := [][]string{
				lines[:tc.threshold],
				lines[len(lines)-tc.threshold:],
			}
			for _, subset := range subsets {
				got, err := Combine(subset)
				require.NoError(t, err)
				assert.Equal(t, seed, got)
			}

			// Order of lines must not matter.
			reversed := make([]string, tc.threshold)
			for i, line := range lines[:tc.threshold] {
				reversed[tc.threshold-1-i] = line
			}
			got, err := Combine(reversed)
			require.NoError(t, err)
			assert.Equal(t, seed, got)
		})
	}
}

func TestSplitCombineScenario(t *testing.T) {
	t.Parallel()

	lines, err := Split(scenarioPhrase, 2, 3, rand.Reader)
	require.NoError(t, err)
	require.Len(t, lines, 3)

	// Any 2 of the 3 shares recover the secret. The reconstruction is
	// canonical, so every pair yields the same phrase, its secret bytes
	// equal the input's, and only the final word (which carries the
	// padding bits) may differ from the input as typed.
	pairs := [][]string{
		{lines[0], lines[1]},
		{lines[0], lines[2]},
		{lines[1], lines[2]},
	}

	var recovered string
	for i, pair := range pairs {
		got, err := Combine(pair)
		require.NoError(t, err, "pair %d", i)
		if i == 0 {
			recovered = got
		} else {
			assert.Equal(t, recovered, got, "pair %d", i)
		}
	}

	assert.Equal(t, decodeWords(t, scenarioPhrase), decodeWords(t, recovered))
	assert.Equal(t,
		strings.Fields(scenarioPhrase)[:11],
		strings.Fields(recovered)[:11])

	// The recovered phrase is stable under another split/combine cycle.
	again, err := Split(recovered, 2, 3, rand.Reader)
	require.NoError(t, err)
	cycled, err := Combine(again[:2])
	require.NoError(t, err)
	assert.Equal(t, recovered, cycled)

	// A single share is not enough.
	_, err = Combine(lines[2:])
	require.ErrorIs(t, err, splinterr.ErrInsufficientShares)
}

func TestSplitErrors(t *testing.T) {
	t.Parallel()

	t.Run("threshold above count", func(t *testing.T) {
		t.Parallel()
		_, err := Split(scenarioPhrase, 3, 2, rand.Reader)
		require.ErrorIs(t, err, splinterr.ErrInvalidThreshold)

		var se *splinterr.SplinterError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "3", se.Details["threshold"])
		assert.Equal(t, "2", se.Details["count"])
		assert.Equal(t, splinterr.ExitInput, se.ExitCode)
	})

	t.Run("threshold zero", func(t *testing.T) {
		t.Parallel()
		_, err := Split(scenarioPhrase, 0, 3, rand.Reader)
		require.ErrorIs(t, err, splinterr.ErrInvalidThreshold)
	})

	t.Run("too many shares", func(t *testing.T) {
		t.Parallel()
		_, err := Split(scenarioPhrase, 2, 300, rand.Reader)
		require.ErrorIs(t, err, splinterr.ErrTooManyShares)
	})

	t.Run("eleven words", func(t *testing.T) {
		t.Parallel()
		eleven := strings.Join(strings.Fields(scenarioPhrase)[:11], " ")
		_, err := Split(eleven, 2, 3, rand.Reader)
		require.ErrorIs(t, err, splinterr.ErrWordCountMismatch)

		var se *splinterr.SplinterError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "11", se.Details["actual"])
	})

	t.Run("unknown word", func(t *testing.T) {
		t.Parallel()
		words := strings.Fields(scenarioPhrase)
		words[4] = "zzzzz"
		_, err := Split(strings.Join(words, " "), 2, 3, rand.Reader)
		require.ErrorIs(t, err, splinterr.ErrUnknownWord)

		var se *splinterr.SplinterError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "zzzzz", se.Details["word"])
		assert.Equal(t, "5", se.Details["position"])
	})

	t.Run("typo gets a suggestion", func(t *testing.T) {
		t.Parallel()
		words := strings.Fields(scenarioPhrase)
		words[11] = "abandonn"
		_, err := Split(strings.Join(words, " "), 2, 3, rand.Reader)
		require.ErrorIs(t, err, splinterr.ErrUnknownWord)

		var se *splinterr.SplinterError
		require.ErrorAs(t, err, &se)
		assert.Contains(t, se.Suggestion, `"abandon"`)
	})
}

// withIndex swaps the index token of a share line.
func withIndex(line, idx string) string {
	parts := strings.SplitN(line, " ", 2)
	return idx + " " + parts[1]
}

func TestCombineErrors(t *testing.T) {
	t.Parallel()

	lines, err := Split(scenarioPhrase, 2, 3, rand.Reader)
	require.NoError(t, err)

	longLines, err := Split(strings.Repeat("zoo ", 23)+"zoo", 2, 3, rand.Reader)
	require.NoError(t, err)

	t.Run("no lines", func(t *testing.T) {
		t.Parallel()
		_, err := Combine(nil)
		require.ErrorIs(t, err, splinterr.ErrInsufficientShares)
	})

	t.Run("duplicate index", func(t *testing.T) {
		t.Parallel()
		_, err := Combine([]string{lines[0], withIndex(lines[1], "1")})
		require.ErrorIs(t, err, splinterr.ErrDuplicateIndex)
	})

	t.Run("index zero", func(t *testing.T) {
		t.Parallel()
		_, err := Combine([]string{withIndex(lines[0], "0"), lines[1]})
		require.ErrorIs(t, err, splinterr.ErrInvalidShareIndex)
	})

	t.Run("index out of range", func(t *testing.T) {
		t.Parallel()
		_, err := Combine([]string{withIndex(lines[0], "999"), lines[1]})
		require.ErrorIs(t, err, splinterr.ErrInvalidShareIndex)
	})

	t.Run("garbage line", func(t *testing.T) {
		t.Parallel()
		_, err := Combine([]string{"definitely not a share line", lines[1]})
		require.ErrorIs(t, err, splinterr.ErrInvalidShareLine)
	})

	t.Run("index without words", func(t *testing.T) {
		t.Parallel()
		_, err := Combine([]string{"1", lines[1]})
		require.ErrorIs(t, err, splinterr.ErrInvalidShareLine)
	})

	t.Run("mixed field sizes", func(t *testing.T) {
		t.Parallel()
		_, err := Combine([]string{lines[0], longLines[1]})
		require.ErrorIs(t, err, splinterr.ErrFieldSizeMismatch)
	})

	t.Run("unknown word names the line", func(t *testing.T) {
		t.Parallel()
		parts := strings.SplitN(lines[1], " ", 3)
		broken := parts[0] + " zzzzz " + parts[2]
		_, err := Combine([]string{lines[0], broken})
		require.ErrorIs(t, err, splinterr.ErrUnknownWord)
		assert.Contains(t, err.Error(), "share line 2")
	})
}

func TestCombineWrongShares(t *testing.T) {
	t.Parallel()

	// Below the original threshold the math still runs; the result is a
	// plausible phrase that is not the secret. The scheme cannot detect
	// this, it is inherent to checksum-free shares.
	lines, err := Split(scenarioPhrase, 3, 5, rand.Reader)
	require.NoError(t, err)

	got, err := Combine(lines[:2])
	require.NoError(t, err)
	assert.Len(t, strings.Fields(got), 12)
	assert.NotEqual(t, decodeWords(t, scenarioPhrase), decodeWords(t, got))

	// Shares from unrelated splits also combine into a wrong phrase.
	other, err := Split(scenarioPhrase, 2, 3, rand.Reader)
	require.NoError(t, err)
	mixed, err := Combine([]string{lines[0], withIndex(other[1], "2")})
	require.NoError(t, err)
	assert.NotEqual(t, decodeWords(t, scenarioPhrase), decodeWords(t, mixed))
}

func TestCombineForgivingInput(t *testing.T) {
	t.Parallel()

	seed, err := Generate(false, rand.Reader)
	require.NoError(t, err)
	lines, err := Split(seed, 2, 3, rand.Reader)
	require.NoError(t, err)

	// Transcribed lines keep working: punctuated indexes, uppercase
	// words, comma separators, stray whitespace.
	first := strings.SplitN(lines[0], " ", 2)
	second := strings.SplitN(lines[1], " ", 2)
	messy := []string{
		first[0] + ". " + strings.ToUpper(first[1]),
		second[0] + ")  " + strings.ReplaceAll(second[1], " ", ", "),
	}

	got, err := Combine(messy)
	require.NoError(t, err)
	assert.Equal(t, seed, got)
}

func TestInspect(t *testing.T) {
	t.Parallel()

	t.Run("valid 12 words", func(t *testing.T) {
		t.Parallel()
		r, err := Inspect(scenarioPhrase)
		require.NoError(t, err)
		assert.Equal(t, 12, r.Words)
		assert.Equal(t, field.Size128, r.Size)
		assert.Empty(t, r.Typos)
		assert.True(t, r.Valid())
	})

	t.Run("valid 24 words", func(t *testing.T) {
		t.Parallel()
		seed, err := Generate(true, rand.Reader)
		require.NoError(t, err)
		r, err := Inspect(seed)
		require.NoError(t, err)
		assert.Equal(t, 24, r.Words)
		assert.Equal(t, field.Size256, r.Size)
		assert.True(t, r.Valid())
	})

	t.Run("wrong count", func(t *testing.T) {
		t.Parallel()
		r, err := Inspect("legal winner thank")
		require.NoError(t, err)
		assert.Equal(t, 3, r.Words)
		assert.False(t, r.Size.Valid())
		assert.False(t, r.Valid())
	})

	t.Run("typos reported", func(t *testing.T) {
		t.Parallel()
		words := strings.Fields(scenarioPhrase)
		words[2] = "verbb"
		r, err := Inspect(strings.Join(words, " "))
		require.NoError(t, err)
		require.Len(t, r.Typos, 1)
		assert.Equal(t, 2, r.Typos[0].Index)
		assert.Equal(t, "verbb", r.Typos[0].Word)
		assert.Equal(t, "verb", r.Typos[0].Suggestion)
		assert.False(t, r.Valid())
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		_, err := Inspect("   ")
		require.ErrorIs(t, err, splinterr.ErrInvalidInput)
	})
}
