package cli

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/splinterlabs/splinter/internal/backup"
	"github.com/splinterlabs/splinter/internal/output"
	"github.com/splinterlabs/splinter/internal/phrase"
	"github.com/splinterlabs/splinter/internal/secmem"
	splinterr "github.com/splinterlabs/splinter/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var (
	combineInput string

	combineCmd = &cobra.Command{
		Use:   "combine [threshold]",
		Short: "Reconstruct a seed phrase from shares",
		Long: `Reconstruct a seed phrase from shares produced by split.

Pass the number of shares you hold; each is then read from stdin as an
index followed by its words, exactly as split printed it:

  3 physical prize mercy stadium errand vacant ...

Supplying fewer shares than the split's threshold does not fail: the
result is simply a different, wrong phrase. Verify the reconstructed
phrase before relying on it.

Pass --input to read every share from an encrypted .splinter archive
instead of typing them.

Example:
  splinter combine 2
  splinter combine --input family-savings`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCombine,
	}
)

func runCombine(cmd *cobra.Command, args []string) error {
	ctx := GetCmdContext(cmd)

	var (
		lines []string
		err   error
	)
	if combineInput != "" {
		if len(args) > 0 {
			output.Warn("--input uses every archived share; the threshold argument is ignored")
		}
		lines, err = readShareArchive(ctx)
	} else {
		lines, err = readShareLines(args)
	}
	if err != nil {
		return err
	}

	seedPhrase, err := phrase.Combine(lines)
	if err != nil {
		return err
	}

	ctx.Log.Debug("combined %d shares", len(lines))

	w := cmd.OutOrStdout()
	if ctx.Fmt.Format() == output.FormatJSON {
		return writeJSON(w, phraseJSON{
			Phrase: seedPhrase,
			Words:  len(strings.Fields(seedPhrase)),
		})
	}

	outln(w, seedPhrase)
	return nil
}

// readShareLines prompts for the given number of share lines.
func readShareLines(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, splinterr.WithSuggestion(
			splinterr.ErrInvalidInput,
			`pass the number of shares to combine, e.g. "splinter combine 3"`,
		)
	}

	threshold, err := strconv.Atoi(args[0])
	if err != nil || threshold < 1 {
		return nil, splinterr.WithDetails(splinterr.ErrInvalidInput, map[string]string{
			"threshold": args[0],
		})
	}

	lines := make([]string, 0, threshold)
	for i := 1; i <= threshold; i++ {
		line, err := promptShareLineFn(i)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// readShareArchive decrypts the shares from a .splinter archive.
func readShareArchive(ctx *CommandContext) ([]string, error) {
	home := ctx.Cfg.GetHome()
	path, err := resolveArchivePath(home, combineInput)
	if err != nil {
		return nil, err
	}

	passphrase, err := promptPasswordFn("Enter archive passphrase: ")
	if err != nil {
		return nil, err
	}
	defer secmem.ZeroBytes(passphrase)

	svc := backup.NewService(filepath.Join(home, "archives"))
	lines, err := svc.Restore(path, passphrase)
	if err != nil {
		return nil, err
	}

	ctx.Log.Debug("restored %d shares from %s", len(lines), path)
	return lines, nil
}

// resolveArchivePath turns the --input value into a readable archive path.
// It accepts a direct path, an exact filename under <home>/archives, or a
// bare archive name, in which case the newest matching archive wins.
func resolveArchivePath(home, input string) (string, error) {
	if fileExists(input) {
		return input, nil
	}

	svc := backup.NewService(filepath.Join(home, "archives"))
	if exact := svc.ArchivePath(input); fileExists(exact) {
		return exact, nil
	}

	names, err := svc.List()
	if err != nil {
		return "", err
	}

	// Archive filenames embed their creation time, so lexical order is
	// creation order and the last prefix match is the newest.
	prefix := strings.TrimSuffix(input, backup.ArchiveExtension) + "-"
	newest := ""
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			newest = name
		}
	}
	if newest != "" {
		return svc.ArchivePath(newest), nil
	}

	return "", splinterr.WithDetails(splinterr.ErrArchiveNotFound, map[string]string{
		"path": input,
	})
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(combineCmd)
	combineCmd.Flags().StringVar(&combineInput, "input", "", "read shares from an encrypted .splinter archive")
}
