package cli

import (
	"io"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/splinterlabs/splinter/internal/backup"
	"github.com/splinterlabs/splinter/internal/output"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var archivesCmd = &cobra.Command{
	Use:   "archives",
	Short: "List encrypted share archives",
	Long: `List the encrypted share archives under the splinter home directory.

Archive manifests are stored in the clear, so listing never asks for a
passphrase. Restore one with: splinter combine --input <name>`,
	Args: cobra.NoArgs,
	RunE: runArchives,
}

// archiveListJSON is the JSON shape for one listed archive.
type archiveListJSON struct {
	File string `json:"file"`
	backup.Manifest
}

func runArchives(cmd *cobra.Command, _ []string) error {
	ctx := GetCmdContext(cmd)
	svc := backup.NewService(filepath.Join(ctx.Cfg.GetHome(), "archives"))

	names, err := svc.List()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	format := ctx.Fmt.Format()

	if len(names) == 0 {
		formatEmptyArchiveList(w, format)
		return nil
	}

	entries := make([]archiveListJSON, 0, len(names))
	for _, name := range names {
		manifest, verifyErr := svc.Verify(svc.ArchivePath(name))
		if verifyErr != nil {
			output.Warnf("skipping %s: %v", name, verifyErr)
			continue
		}
		entries = append(entries, archiveListJSON{File: name, Manifest: *manifest})
	}

	if format == output.FormatJSON {
		return writeJSON(w, entries)
	}

	table := output.NewTable("ARCHIVE", "CREATED", "THRESHOLD", "SHARES", "WORDS")
	for _, e := range entries {
		table.AddRow(
			e.File,
			e.CreatedAt.Format("2006-01-02 15:04"),
			strconv.Itoa(e.Threshold),
			strconv.Itoa(e.ShareCount),
			strconv.Itoa(e.WordsPerShare),
		)
	}
	return table.Render(w)
}

func formatEmptyArchiveList(w io.Writer, format output.Format) {
	if format == output.FormatJSON {
		_ = writeJSON(w, []archiveListJSON{})
		return
	}
	outln(w, "No archives found.")
	outln(w, "Create one with: splinter split --threshold 3 --count 5 --archive <name>")
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(archivesCmd)
}
