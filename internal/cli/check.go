package cli

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/splinterlabs/splinter/internal/mnemonic"
	"github.com/splinterlabs/splinter/internal/output"
	"github.com/splinterlabs/splinter/internal/phrase"
	splinterr "github.com/splinterlabs/splinter/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var checkCmd = &cobra.Command{
	Use:   "check [phrase]",
	Short: "Check a phrase or share for typos",
	Long: `Check a phrase or share line against the wordlist without decoding it.

Reports the word count, the matching field width, and any words that are
not in the wordlist, with the closest spelling for each. The input never
leaves the machine and is not stored.

Example:
  splinter check legal winner thank year wave sausage worth useful legal winner thank yellow
  echo "3 physical prize mercy ..." | splinter check`,
	Args: cobra.ArbitraryArgs,
	RunE: runCheck,
}

// checkJSON is the JSON shape for phrase inspection.
type checkJSON struct {
	Words int        `json:"words"`
	Field string     `json:"field,omitempty"`
	Valid bool       `json:"valid"`
	Typos []typoJSON `json:"typos,omitempty"`
}

type typoJSON struct {
	Position   int    `json:"position"`
	Word       string `json:"word"`
	Suggestion string `json:"suggestion,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := GetCmdContext(cmd)

	input := strings.Join(args, " ")
	if strings.TrimSpace(input) == "" {
		var err error
		input, err = promptPhraseFn("Enter phrase to check: ")
		if err != nil {
			return err
		}
	}

	report, err := phrase.Inspect(input)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if ctx.Fmt.Format() == output.FormatJSON {
		if err := writeJSON(w, checkReportJSON(report)); err != nil {
			return err
		}
	} else {
		displayCheckText(w, report)
	}

	if !report.Valid() {
		return splinterr.WithSuggestion(
			splinterr.ErrInvalidInput,
			"fix the problems listed above and check again",
		)
	}
	return nil
}

func checkReportJSON(r phrase.Report) checkJSON {
	c := checkJSON{
		Words: r.Words,
		Valid: r.Valid(),
	}
	if r.Size.Valid() {
		c.Field = r.Size.String()
	}
	for _, typo := range r.Typos {
		c.Typos = append(c.Typos, typoJSON{
			Position:   typo.Index + 1,
			Word:       typo.Word,
			Suggestion: typo.Suggestion,
		})
	}
	return c
}

func displayCheckText(w io.Writer, r phrase.Report) {
	out(w, "Words: %d\n", r.Words)
	if r.Size.Valid() {
		out(w, "Field: %s\n", r.Size)
	} else {
		outln(w, "Field: none (need 12 or 24 words)")
	}

	outln(w)
	if len(r.Typos) > 0 {
		outln(w, mnemonic.FormatTypos(r.Typos))
	} else {
		outln(w, "All words are in the wordlist.")
	}
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(checkCmd)
}
