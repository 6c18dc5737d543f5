package shamir

import "errors"

var (
	// ErrInvalidThreshold is returned when threshold < 1 or threshold > count.
	ErrInvalidThreshold = errors.New("threshold must be between 1 and the share count")

	// ErrTooManyShares is returned when count > MaxShares.
	ErrTooManyShares = errors.New("share count cannot exceed 255")

	// ErrInsufficientShares is returned when fewer than 2 shares are given to Combine.
	ErrInsufficientShares = errors.New("at least 2 shares are required")

	// ErrDuplicateIndex is returned when two shares carry the same index.
	ErrDuplicateIndex = errors.New("shares have duplicate indexes")

	// ErrInvalidIndex is returned when a share index is outside 1..255.
	ErrInvalidIndex = errors.New("share index must be between 1 and 255")
)
