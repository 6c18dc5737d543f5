// Package contracts defines the interface contracts for the Splinter MVP.
// These are design artifacts - not compiled code.
// Actual implementations go in internal/output/
package contracts

import (
	"io"
)

// OutputFormat represents supported output formats.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatAuto OutputFormat = "auto"
)

// FormatterFactory creates formatters based on output preferences.
type FormatterFactory interface {
	// Create returns a formatter for the given format and output writer.
	Create(format OutputFormat, w io.Writer) Formatter

	// DetectFormat determines the appropriate format based on context.
	// Returns JSON for non-TTY, text for TTY, unless explicitly overridden.
	DetectFormat(w io.Writer, explicit OutputFormat) OutputFormat
}

// Formatter defines the interface for output formatting. Every command
// supports both text and JSON so the tool composes in pipelines.
type Formatter interface {
	// Format returns the current output format.
	Format() OutputFormat

	// FormatPhrase formats a generated or reconstructed phrase.
	// Text: the bare phrase. JSON: {"phrase": ..., "words": ...}.
	FormatPhrase(phrase string) string

	// FormatShares formats split output.
	// Text: one "<index> <words>" line per share.
	// JSON: {"threshold": ..., "count": ..., "shares": [...]}.
	FormatShares(threshold, count int, shares []string) string

	// FormatReport formats a check report with word count, field width,
	// and typo list.
	FormatReport(report PhraseReport) string

	// FormatArchiveList formats the archives listing as an aligned
	// table (text) or a manifest array (JSON).
	FormatArchiveList(entries []ArchiveManifest) string

	// FormatError formats an error with code, details, and suggestion.
	FormatError(err error) string
}

// TableConfig defines table rendering options.
type TableConfig struct {
	// Headers are the column names.
	Headers []string

	// Rows are the data rows.
	Rows [][]string
}

// TableRenderer renders width-aligned tabular data for text output.
type TableRenderer interface {
	// Render renders a table to the writer.
	Render(w io.Writer, config TableConfig) error
}

// QRRenderer renders share lines as terminal QR codes.
type QRRenderer interface {
	// CanRender reports whether the writer is a terminal capable of
	// QR output. Non-terminals skip rendering silently.
	CanRender(w io.Writer) bool

	// Render draws one QR code for the given share line.
	Render(w io.Writer, shareLine string) error
}

// ErrorFormatter formats errors with context and suggestions.
type ErrorFormatter interface {
	// Format formats an error for display.
	// For text: message, sorted detail lines, then the suggestion.
	// For JSON: {"error": {"code", "message", "details", "suggestion",
	// "exit_code"}}.
	Format(err error) string

	// WithDetails adds details to an error.
	WithDetails(err error, details map[string]string) error

	// WithSuggestion adds an actionable suggestion to an error.
	WithSuggestion(err error, suggestion string) error
}
