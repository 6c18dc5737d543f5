package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/splinterlabs/splinter/internal/output"
	"github.com/splinterlabs/splinter/internal/phrase"
	"github.com/splinterlabs/splinter/internal/secmem"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var (
	randomLong bool

	randomCmd = &cobra.Command{
		Use:   "random",
		Short: "Generate a random seed phrase",
		Long: `Generate a fresh seed phrase from the system's secure random source.

The default is 12 words (128 bits of entropy). Pass --long for 24 words
(256 bits). The phrase is printed to stdout so it can be piped straight
into split:

  splinter random | splinter split --threshold 2 --count 3`,
		Args: cobra.NoArgs,
		RunE: runRandom,
	}
)

// phraseJSON is the JSON shape for commands that print a single phrase.
type phraseJSON struct {
	Phrase string `json:"phrase"`
	Words  int    `json:"words"`
}

func runRandom(cmd *cobra.Command, _ []string) error {
	ctx := GetCmdContext(cmd)

	long := randomLong
	if !cmd.Flags().Changed("long") {
		long = ctx.Cfg.GetGenerate().Long
	}

	seedPhrase, err := phrase.Generate(long, secmem.Reader)
	if err != nil {
		return err
	}

	words := len(strings.Fields(seedPhrase))
	ctx.Log.Debug("generated %d-word phrase", words)

	w := cmd.OutOrStdout()
	if ctx.Fmt.Format() == output.FormatJSON {
		return writeJSON(w, phraseJSON{Phrase: seedPhrase, Words: words})
	}

	outln(w, seedPhrase)
	return nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(randomCmd)
	randomCmd.Flags().BoolVar(&randomLong, "long", false, "generate a 24-word (256-bit) phrase")
}
