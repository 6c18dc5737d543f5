package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/splinterlabs/splinter/internal/output"
	"github.com/splinterlabs/splinter/internal/version"
)

const (
	// devVersionString is the string used for development builds
	devVersionString = "dev"
	// releaseOwner is the GitHub repository owner
	releaseOwner = "splinterlabs"
	// releaseRepo is the GitHub repository name
	releaseRepo = "splinter"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var (
	versionCheck bool

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show the splinter version, commit, and build date.

Pass --check to also query GitHub for the latest release.

Example:
  splinter version
  splinter version --check`,
		Args: cobra.NoArgs,
		RunE: runVersion,
	}
)

// releaseCheckJSON is the JSON shape for version --check.
type releaseCheckJSON struct {
	version.Info
	Latest           string `json:"latest"`
	UpgradeAvailable bool   `json:"upgrade_available"`
}

func runVersion(cmd *cobra.Command, _ []string) error {
	ctx := GetCmdContext(cmd)
	info := version.Get()

	w := cmd.OutOrStdout()
	isJSON := ctx.Fmt.Format() == output.FormatJSON

	if !versionCheck {
		if isJSON {
			return writeJSON(w, info)
		}
		outln(w, info.String())
		return nil
	}

	release, err := version.NewClient().GetLatestRelease(cmd.Context(), releaseOwner, releaseRepo)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	isDev := info.Version == devVersionString || info.Version == ""
	newer := !isDev && version.IsNewerVersion(info.Version, latest)

	if isJSON {
		return writeJSON(w, releaseCheckJSON{
			Info:             info,
			Latest:           latest,
			UpgradeAvailable: newer,
		})
	}

	outln(w, info.String())

	switch {
	case isDev:
		output.Warnf("Development build; latest release is %s", displayVersion(latest))
	case newer:
		output.Warnf("A newer version is available: %s -> %s", displayVersion(info.Version), displayVersion(latest))
		out(w, "Download: https://github.com/%s/%s/releases/latest\n", releaseOwner, releaseRepo)
	default:
		output.Success("You are on the latest version")
	}

	return nil
}

// displayVersion formats a version string for display.
func displayVersion(v string) string {
	if v == devVersionString || v == "" {
		return devVersionString
	}
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "check GitHub for a newer release")
}
