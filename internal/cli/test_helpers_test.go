package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/splinterlabs/splinter/internal/backup"
	"github.com/splinterlabs/splinter/internal/config"
	"github.com/splinterlabs/splinter/internal/output"
)

func TestMain(m *testing.M) {
	backup.SetScryptWorkFactor(10) // Fast for tests
	os.Exit(m.Run())
}

// setupTestEnv creates a temporary environment for CLI testing.
// It saves and restores global state to avoid test pollution.
// Tests using this function should NOT use t.Parallel() as they
// modify package-level globals.
func setupTestEnv(t *testing.T) (string, func()) {
	t.Helper()

	// Save original global state
	origCfg := cfg
	origLogger := logger
	origFormatter := formatter
	origCmdCtx := cmdCtx

	tmpDir, err := os.MkdirTemp("", "splinter-cli-test")
	require.NoError(t, err)

	// Create archives directory
	archivesDir := filepath.Join(tmpDir, "archives")
	require.NoError(t, os.MkdirAll(archivesDir, 0o750))

	// Set up test-specific global config
	testCfg := config.Defaults()
	testCfg.Home = tmpDir
	cfg = testCfg

	// Set up null logger for tests
	logger = config.NullLogger()

	// Set up text formatter for tests
	formatter = output.NewFormatter(output.FormatText, os.Stdout)

	cmdCtx = NewCommandContext(cfg, logger, formatter)

	cleanup := func() {
		// Restore original global state
		cfg = origCfg
		logger = origLogger
		formatter = origFormatter
		cmdCtx = origCmdCtx

		// Clean up temp directory
		_ = os.RemoveAll(tmpDir)
	}

	return tmpDir, cleanup
}

// newTestCmd creates a cobra.Command with an injected CommandContext and a
// captured output buffer for calling run functions directly.
func newTestCmd(home string, format output.Format) (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	SetCmdContext(cmd, &CommandContext{
		Cfg: &mockConfigProvider{home: home},
		Log: &mockLogWriter{},
		Fmt: &mockFormatProvider{format: format},
	})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	return cmd, &buf
}

// withMockPrompts replaces prompt functions for testing and restores on cleanup.
func withMockPrompts(t *testing.T, seedPhrase string, passphrase []byte) {
	t.Helper()
	origPW := promptPasswordFn
	origNewPW := promptNewPassphraseFn
	origPhrase := promptPhraseFn
	t.Cleanup(func() {
		promptPasswordFn = origPW
		promptNewPassphraseFn = origNewPW
		promptPhraseFn = origPhrase
	})
	promptPasswordFn = func(_ string) ([]byte, error) {
		cp := make([]byte, len(passphrase))
		copy(cp, passphrase)
		return cp, nil
	}
	promptNewPassphraseFn = func() ([]byte, error) {
		cp := make([]byte, len(passphrase))
		copy(cp, passphrase)
		return cp, nil
	}
	promptPhraseFn = func(_ string) (string, error) {
		return seedPhrase, nil
	}
}

// withMockShareLines feeds canned share lines to the interactive combine flow.
func withMockShareLines(t *testing.T, lines []string) {
	t.Helper()
	orig := promptShareLineFn
	t.Cleanup(func() { promptShareLineFn = orig })
	promptShareLineFn = func(n int) (string, error) {
		if n < 1 || n > len(lines) {
			return "", fmt.Errorf("no mock share line %d", n)
		}
		return lines[n-1], nil
	}
}

// mockConfigProvider implements ConfigProvider for testing.
type mockConfigProvider struct {
	home         string
	generate     config.GenerateConfig
	security     config.SecurityConfig
	logLevel     string
	logFile      string
	outputFormat string
	verbose      bool
}

func (m *mockConfigProvider) GetHome() string                    { return m.home }
func (m *mockConfigProvider) GetGenerate() config.GenerateConfig { return m.generate }
func (m *mockConfigProvider) GetSecurity() config.SecurityConfig { return m.security }
func (m *mockConfigProvider) GetLoggingLevel() string            { return m.logLevel }
func (m *mockConfigProvider) GetLoggingFile() string             { return m.logFile }
func (m *mockConfigProvider) GetOutputFormat() string            { return m.outputFormat }
func (m *mockConfigProvider) IsVerbose() bool                    { return m.verbose }

// mockLogWriter implements LogWriter for testing.
type mockLogWriter struct {
	errorCalls []string
	debugCalls []string
}

func (m *mockLogWriter) Debug(format string, _ ...interface{}) {
	m.debugCalls = append(m.debugCalls, format)
}

func (m *mockLogWriter) Error(format string, _ ...interface{}) {
	m.errorCalls = append(m.errorCalls, format)
}

func (m *mockLogWriter) Close() error { return nil }
