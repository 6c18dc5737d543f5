package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splinterlabs/splinter/internal/config"
	"github.com/splinterlabs/splinter/internal/output"
)

func TestNewCommandContext(t *testing.T) {
	tests := []struct {
		name   string
		config *config.Config
		log    *config.Logger
		fmt    *output.Formatter
	}{
		{
			name:   "with all values",
			config: config.Defaults(),
			log:    config.NullLogger(),
			fmt:    output.NewFormatter(output.FormatText, nil),
		},
		{
			name:   "with nil config",
			config: nil,
			log:    config.NullLogger(),
			fmt:    output.NewFormatter(output.FormatText, nil),
		},
		{
			name:   "with nil formatter",
			config: config.Defaults(),
			log:    config.NullLogger(),
			fmt:    nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cc := NewCommandContext(tc.config, tc.log, tc.fmt)
			require.NotNil(t, cc)

			// Check fields are assigned correctly
			assert.Equal(t, tc.config, cc.Cfg)
			assert.Equal(t, tc.log, cc.Log)
			assert.Equal(t, tc.fmt, cc.Fmt)
		})
	}
}

func TestSetCmdContext_GetCmdContext_Roundtrip(t *testing.T) {
	testCfg := config.Defaults()
	testLogger := config.NullLogger()
	testFormatter := output.NewFormatter(output.FormatText, nil)

	cc := NewCommandContext(testCfg, testLogger, testFormatter)

	cmd := &cobra.Command{}
	// Initialize the command's context (required before SetCmdContext)
	cmd.SetContext(context.Background())

	// Set the context
	SetCmdContext(cmd, cc)

	// Get it back
	retrieved := GetCmdContext(cmd)
	require.NotNil(t, retrieved)

	// Verify it's the same context
	assert.Equal(t, cc, retrieved)
	assert.Equal(t, testCfg, retrieved.Cfg)
	assert.Equal(t, testLogger, retrieved.Log)
	assert.Equal(t, testFormatter, retrieved.Fmt)
}

func TestSetCmdContext_WithoutBaseContext(t *testing.T) {
	cc := NewCommandContext(config.Defaults(), config.NullLogger(), nil)

	// SetCmdContext must work even when the command has no context yet.
	cmd := &cobra.Command{}
	SetCmdContext(cmd, cc)

	retrieved := GetCmdContext(cmd)
	require.NotNil(t, retrieved)
	assert.Equal(t, cc, retrieved)
}

func TestGetCmdContext_FallsBackToGlobals(t *testing.T) {
	_, cleanup := setupTestEnv(t)
	defer cleanup()

	// No per-command context set, so the globals win.
	cmd := &cobra.Command{}
	retrieved := GetCmdContext(cmd)
	require.NotNil(t, retrieved)
	assert.Equal(t, cmdCtx, retrieved)
}

func TestGetCmdContext_PerCommandWinsOverGlobals(t *testing.T) {
	_, cleanup := setupTestEnv(t)
	defer cleanup()

	injected := &CommandContext{
		Cfg: &mockConfigProvider{home: "/injected"},
		Log: &mockLogWriter{},
		Fmt: &mockFormatProvider{format: output.FormatJSON},
	}

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	SetCmdContext(cmd, injected)

	retrieved := GetCmdContext(cmd)
	require.NotNil(t, retrieved)
	assert.NotEqual(t, cmdCtx, retrieved)
	assert.Equal(t, "/injected", retrieved.Cfg.GetHome())
	assert.Equal(t, output.FormatJSON, retrieved.Fmt.Format())
}

// mockFormatProvider implements FormatProvider for testing.
type mockFormatProvider struct{ format output.Format }

func (m *mockFormatProvider) Format() output.Format { return m.format }

// Compile-time check that mock types implement interfaces.
var (
	_ ConfigProvider = (*mockConfigProvider)(nil)
	_ LogWriter      = (*mockLogWriter)(nil)
	_ FormatProvider = (*mockFormatProvider)(nil)
)
