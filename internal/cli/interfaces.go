package cli

import (
	"github.com/splinterlabs/splinter/internal/config"
	"github.com/splinterlabs/splinter/internal/output"
)

// ConfigProvider describes the configuration surface commands depend on.
// Tests substitute lightweight fakes for the full config type.
type ConfigProvider interface {
	GetHome() string
	GetGenerate() config.GenerateConfig
	GetSecurity() config.SecurityConfig
	GetLoggingLevel() string
	GetLoggingFile() string
	GetOutputFormat() string
	IsVerbose() bool
}

// LogWriter is the logging surface commands write to.
type LogWriter interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
	Close() error
}

// FormatProvider exposes the active output format.
type FormatProvider interface {
	Format() output.Format
}

// Compile-time checks that the concrete types satisfy the interfaces.
var (
	_ ConfigProvider = (*config.Config)(nil)
	_ LogWriter      = (*config.Logger)(nil)
	_ FormatProvider = (*output.Formatter)(nil)
)
