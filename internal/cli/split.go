package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/splinterlabs/splinter/internal/backup"
	"github.com/splinterlabs/splinter/internal/output"
	"github.com/splinterlabs/splinter/internal/phrase"
	"github.com/splinterlabs/splinter/internal/secmem"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var (
	splitThreshold int
	splitCount     int
	splitQR        bool
	splitArchive   string

	splitCmd = &cobra.Command{
		Use:   "split",
		Short: "Split a seed phrase into shares",
		Long: `Split a seed phrase into shares using Shamir's Secret Sharing.

The phrase is read from stdin, one line of words. Each share is printed
as an index followed by the same number of words as the phrase:

  3 physical prize mercy stadium errand vacant ...

Any --threshold of the --count shares reconstructs the phrase; fewer
reveal nothing about it. Write each share down exactly as printed, index
included.

Pass --archive to write the shares into a passphrase-encrypted .splinter
file instead of printing them.

Example:
  splinter random | splinter split --threshold 2 --count 3
  splinter split --threshold 3 --count 5 --archive family-savings`,
		Args: cobra.NoArgs,
		RunE: runSplit,
	}
)

// splitJSON is the JSON shape for printed shares.
type splitJSON struct {
	Threshold int      `json:"threshold"`
	Count     int      `json:"count"`
	Shares    []string `json:"shares"`
}

// archiveJSON is the JSON shape for a written archive.
type archiveJSON struct {
	Path      string `json:"path"`
	Threshold int    `json:"threshold"`
	Count     int    `json:"count"`
}

func runSplit(cmd *cobra.Command, _ []string) error {
	ctx := GetCmdContext(cmd)

	seedPhrase, err := promptPhraseFn("Enter seed phrase: ")
	if err != nil {
		return err
	}

	lines, err := phrase.Split(seedPhrase, splitThreshold, splitCount, secmem.Reader)
	if err != nil {
		return err
	}

	ctx.Log.Debug("split phrase into %d shares with threshold %d", splitCount, splitThreshold)

	switch {
	case splitThreshold == 1:
		output.Warn("threshold 1: any single share recovers the phrase")
	case splitThreshold == splitCount:
		output.Warn("threshold equals share count: losing any single share loses the phrase")
	}

	if splitArchive != "" {
		return writeShareArchive(cmd, ctx, lines)
	}

	w := cmd.OutOrStdout()
	if ctx.Fmt.Format() == output.FormatJSON {
		return writeJSON(w, splitJSON{
			Threshold: splitThreshold,
			Count:     splitCount,
			Shares:    lines,
		})
	}

	for _, line := range lines {
		outln(w, line)
	}

	if splitQR {
		renderShareQRs(w, lines)
	}

	return nil
}

// writeShareArchive encrypts the shares into a .splinter file.
func writeShareArchive(cmd *cobra.Command, ctx *CommandContext, lines []string) error {
	dir, name := archiveTarget(ctx.Cfg.GetHome(), splitArchive)

	passphrase, err := promptNewPassphraseFn()
	if err != nil {
		return err
	}
	defer secmem.ZeroBytes(passphrase)

	svc := backup.NewService(dir)
	_, path, err := svc.Create(name, lines, splitThreshold, passphrase)
	if err != nil {
		return err
	}

	ctx.Log.Debug("wrote share archive %s", path)

	if ctx.Fmt.Format() == output.FormatJSON {
		return writeJSON(cmd.OutOrStdout(), archiveJSON{
			Path:      path,
			Threshold: splitThreshold,
			Count:     splitCount,
		})
	}

	output.Successf("Encrypted archive written to %s", path)
	return nil
}

// archiveTarget resolves the --archive flag into a directory and archive
// name. A bare name lands in <home>/archives; anything with a path
// separator is used as given.
func archiveTarget(home, flag string) (dir, name string) {
	name = strings.TrimSuffix(filepath.Base(flag), backup.ArchiveExtension)
	if strings.ContainsRune(flag, os.PathSeparator) {
		return filepath.Dir(flag), name
	}
	return filepath.Join(home, "archives"), name
}

// renderShareQRs draws one QR code per share. Skipped when stdout is not a
// terminal, since QR output is for scanning, not piping.
func renderShareQRs(w io.Writer, lines []string) {
	if !output.CanRenderQR(w) {
		output.Warn("QR rendering skipped: stdout is not a terminal")
		return
	}

	cfg := output.DefaultQRConfig()
	for i, line := range lines {
		out(w, "\nShare %d QR:\n", i+1)
		if err := output.RenderQR(w, line, cfg); err != nil {
			output.Warnf("QR rendering failed: %v", err)
			return
		}
	}
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(splitCmd)
	splitCmd.Flags().IntVarP(&splitThreshold, "threshold", "t", 0, "shares needed to reconstruct the phrase (required)")
	splitCmd.Flags().IntVarP(&splitCount, "count", "n", 0, "total shares to create (required)")
	splitCmd.Flags().BoolVar(&splitQR, "qr", false, "render each share as a QR code")
	splitCmd.Flags().StringVar(&splitArchive, "archive", "", "write shares to an encrypted .splinter archive instead of printing")
	_ = splitCmd.MarkFlagRequired("threshold")
	_ = splitCmd.MarkFlagRequired("count")
}
