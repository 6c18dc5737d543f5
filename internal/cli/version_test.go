package cli

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splinterlabs/splinter/internal/output"
	"github.com/splinterlabs/splinter/internal/version"
)

func TestDisplayVersion(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty is dev", input: "", expected: "dev"},
		{name: "dev passes through", input: "dev", expected: "dev"},
		{name: "bare version gets v prefix", input: "1.2.3", expected: "v1.2.3"},
		{name: "prefixed version unchanged", input: "v2.0.0", expected: "v2.0.0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, displayVersion(tc.input))
		})
	}
}

func TestRunVersion_Text(t *testing.T) {
	origCheck := versionCheck
	defer func() { versionCheck = origCheck }()
	versionCheck = false

	cmd, buf := newTestCmd(t.TempDir(), output.FormatText)

	require.NoError(t, runVersion(cmd, nil))

	result := buf.String()
	assert.Contains(t, result, "splinter dev")
	assert.Contains(t, result, runtime.Version())
}

func TestRunVersion_JSON(t *testing.T) {
	origCheck := versionCheck
	defer func() { versionCheck = origCheck }()
	versionCheck = false

	cmd, buf := newTestCmd(t.TempDir(), output.FormatJSON)

	require.NoError(t, runVersion(cmd, nil))

	var info version.Info
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Contains(t, info.Platform, runtime.GOOS)
}
