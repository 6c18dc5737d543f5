// Package errors provides structured error handling for Splinter.
// It defines sentinel errors, exit codes, and helpers for adding
// context, details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes reported by the CLI.
const (
	ExitSuccess    = 0 // Successful execution
	ExitGeneral    = 1 // General/unknown error
	ExitInput      = 2 // Invalid input
	ExitAuth       = 3 // Decryption or passphrase failure
	ExitNotFound   = 4 // Resource not found
	ExitPermission = 5 // Permission denied
)

// SplinterError is the structured error type for Splinter.
type SplinterError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *SplinterError) Error() string {
	msg := e.Message

	// Include details in error message (sorted for deterministic output)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *SplinterError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for SplinterError.
func (e *SplinterError) Is(target error) bool {
	var t *SplinterError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &SplinterError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &SplinterError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	ErrNotFound = &SplinterError{
		Code:     "NOT_FOUND",
		Message:  "resource not found",
		ExitCode: ExitNotFound,
	}

	ErrPermission = &SplinterError{
		Code:     "PERMISSION_DENIED",
		Message:  "permission denied",
		ExitCode: ExitPermission,
	}

	// Sharing-specific errors.
	ErrInvalidThreshold = &SplinterError{
		Code:     "INVALID_THRESHOLD",
		Message:  "threshold must be between 1 and the share count",
		ExitCode: ExitInput,
	}

	ErrTooManyShares = &SplinterError{
		Code:     "TOO_MANY_SHARES",
		Message:  "share count exceeds the maximum of 255",
		ExitCode: ExitInput,
	}

	ErrDivisionByZero = &SplinterError{
		Code:     "DIVISION_BY_ZERO",
		Message:  "field inversion of zero",
		ExitCode: ExitGeneral,
	}

	ErrDuplicateIndex = &SplinterError{
		Code:     "DUPLICATE_INDEX",
		Message:  "two shares carry the same index",
		ExitCode: ExitInput,
	}

	ErrInvalidShareIndex = &SplinterError{
		Code:     "INVALID_SHARE_INDEX",
		Message:  "share index must be between 1 and 255",
		ExitCode: ExitInput,
	}

	ErrInsufficientShares = &SplinterError{
		Code:     "INSUFFICIENT_SHARES",
		Message:  "combining requires at least 2 shares",
		ExitCode: ExitInput,
	}

	// Phrase-specific errors.
	ErrUnknownWord = &SplinterError{
		Code:     "UNKNOWN_WORD",
		Message:  "word is not in the wordlist",
		ExitCode: ExitInput,
	}

	ErrWordCountMismatch = &SplinterError{
		Code:     "WORD_COUNT_MISMATCH",
		Message:  "phrase must contain 12 or 24 words",
		ExitCode: ExitInput,
	}

	ErrInvalidLength = &SplinterError{
		Code:     "INVALID_LENGTH",
		Message:  "secret must be exactly 16 or 32 bytes",
		ExitCode: ExitGeneral,
	}

	ErrFieldSizeMismatch = &SplinterError{
		Code:     "FIELD_SIZE_MISMATCH",
		Message:  "shares encode different field sizes",
		ExitCode: ExitInput,
	}

	ErrInvalidShareLine = &SplinterError{
		Code:     "INVALID_SHARE_LINE",
		Message:  "share line must be an index followed by words",
		ExitCode: ExitInput,
	}

	// Archive-specific errors.
	ErrDecryptionFailed = &SplinterError{
		Code:     "DECRYPTION_FAILED",
		Message:  "decryption failed - wrong passphrase or corrupted file",
		ExitCode: ExitAuth,
	}

	ErrArchiveNotFound = &SplinterError{
		Code:     "ARCHIVE_NOT_FOUND",
		Message:  "share archive not found",
		ExitCode: ExitNotFound,
	}

	ErrArchiveCorrupted = &SplinterError{
		Code:     "ARCHIVE_CORRUPTED",
		Message:  "share archive is corrupted - checksum mismatch",
		ExitCode: ExitInput,
	}

	ErrArchiveInvalid = &SplinterError{
		Code:     "INVALID_ARCHIVE",
		Message:  "share archive format is invalid",
		ExitCode: ExitInput,
	}

	// Config-specific errors.
	ErrConfigNotFound = &SplinterError{
		Code:     "CONFIG_NOT_FOUND",
		Message:  "configuration file not found",
		ExitCode: ExitNotFound,
	}

	ErrConfigInvalid = &SplinterError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}

	ErrUnknownConfigKey = &SplinterError{
		Code:     "UNKNOWN_CONFIG_KEY",
		Message:  "unknown config key",
		ExitCode: ExitInput,
	}
)

// New creates a new SplinterError with the given code and message.
func New(code, message string) *SplinterError {
	return &SplinterError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var se *SplinterError
	if errors.As(err, &se) {
		return &SplinterError{
			Code:       se.Code,
			Message:    fmt.Sprintf("%s: %s", msg, se.Message),
			Details:    se.Details,
			Suggestion: se.Suggestion,
			Cause:      err,
			ExitCode:   se.ExitCode,
		}
	}

	return &SplinterError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var se *SplinterError
	if errors.As(err, &se) {
		return &SplinterError{
			Code:       se.Code,
			Message:    se.Message,
			Details:    details,
			Suggestion: se.Suggestion,
			Cause:      se.Cause,
			ExitCode:   se.ExitCode,
		}
	}

	return &SplinterError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var se *SplinterError
	if errors.As(err, &se) {
		return &SplinterError{
			Code:       se.Code,
			Message:    se.Message,
			Details:    se.Details,
			Suggestion: suggestion,
			Cause:      se.Cause,
			ExitCode:   se.ExitCode,
		}
	}

	return &SplinterError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var se *SplinterError
	if errors.As(err, &se) {
		return se.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var se *SplinterError
	if errors.As(err, &se) {
		return se.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
