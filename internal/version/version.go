// Package version provides build metadata, version comparison, and
// GitHub release fetching for the version command's update check.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Build metadata, injected at release time via -ldflags.
//
//nolint:gochecknoglobals // Populated by the linker
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Date      string `json:"date,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders the info the way `splinter version` prints it in text mode.
func (i Info) String() string {
	var sb strings.Builder
	sb.WriteString("splinter " + i.Version)
	if i.Commit != "" {
		sb.WriteString(" (" + i.Commit)
		if i.Date != "" {
			sb.WriteString(", " + i.Date)
		}
		sb.WriteString(")")
	}
	sb.WriteString("\n" + i.GoVersion + " " + i.Platform)
	return sb.String()
}

// CompareVersions compares two version strings.
// Returns:
//   - 1 if v1 > v2
//   - 0 if v1 == v2
//   - -1 if v1 < v2
func CompareVersions(v1, v2 string) int {
	v1 = strings.TrimPrefix(v1, "v")
	v2 = strings.TrimPrefix(v2, "v")

	// Development builds and commit hashes sort below any release
	isV1Dev := v1 == "dev" || v1 == "" || isCommitHash(v1)
	isV2Dev := v2 == "dev" || v2 == "" || isCommitHash(v2)

	if isV1Dev && isV2Dev {
		return 0
	}
	if isV1Dev {
		return -1
	}
	if isV2Dev {
		return 1
	}

	parts1 := parseVersion(v1)
	parts2 := parseVersion(v2)

	for i := 0; i < 3; i++ {
		if i >= len(parts1) && i >= len(parts2) {
			break
		}
		val1 := 0
		val2 := 0
		if i < len(parts1) {
			val1 = parts1[i]
		}
		if i < len(parts2) {
			val2 = parts2[i]
		}

		if val1 > val2 {
			return 1
		}
		if val1 < val2 {
			return -1
		}
	}

	return 0
}

// IsNewerVersion checks if latestVersion is newer than currentVersion.
func IsNewerVersion(currentVersion, latestVersion string) bool {
	return CompareVersions(latestVersion, currentVersion) > 0
}

// NormalizeVersion removes the 'v' prefix, whitespace, and any
// pre-release or build metadata suffixes (e.g., -rc1, -dirty, +build).
func NormalizeVersion(version string) string {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	for {
		trimmed := strings.TrimSpace(version)
		trimmed = strings.TrimLeft(trimmed, "v")
		if trimmed == version {
			break
		}
		version = trimmed
	}

	return version
}

// parseVersion parses a version string into major, minor, patch integers.
func parseVersion(version string) []int {
	// Remove any suffixes like -dirty, -rc1, +build
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	parts := strings.Split(version, ".")
	result := make([]int, 0, len(parts))

	for _, part := range parts {
		var num int
		if _, err := fmt.Sscanf(part, "%d", &num); err == nil {
			result = append(result, num)
		}
	}

	return result
}

// isCommitHash checks if a string looks like a git commit hash:
// 7-40 hex characters with at least one letter, so pure numeric
// versions are not mistaken for hashes.
func isCommitHash(s string) bool {
	s = strings.TrimSuffix(s, "-dirty")

	if len(s) < 7 || len(s) > 40 {
		return false
	}

	hasLetter := false
	for _, c := range s {
		isDigit := c >= '0' && c <= '9'
		isLowerHex := c >= 'a' && c <= 'f'
		isUpperHex := c >= 'A' && c <= 'F'

		if !isDigit && !isLowerHex && !isUpperHex {
			return false
		}
		if isLowerHex || isUpperHex {
			hasLetter = true
		}
	}

	return hasLetter
}
