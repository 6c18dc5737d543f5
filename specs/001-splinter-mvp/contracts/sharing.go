// Package contracts defines the interface contracts for the Splinter MVP.
// These are design artifacts - not compiled code.
// Actual implementations go in internal/field/ and internal/shamir/
package contracts

import (
	"io"
)

// FieldSize selects the binary extension field a secret lives in.
// The width always matches the phrase entropy exactly.
type FieldSize int

const (
	// FieldSize128 is GF(2^128), the field of 12-word phrases.
	FieldSize128 FieldSize = 128

	// FieldSize256 is GF(2^256), the field of 24-word phrases.
	FieldSize256 FieldSize = 256
)

// FieldElement is an opaque element of GF(2^128) or GF(2^256).
// Implementations must keep arithmetic free of secret-dependent branches
// and provide in-place zeroization.
type FieldElement interface {
	// Bytes serializes the element to exactly size/8 bytes,
	// little-endian within each 64-bit limb.
	Bytes(size FieldSize) []byte

	// IsZero reports whether the element is the additive identity,
	// in constant time.
	IsZero() bool

	// Zeroize overwrites the element in place. Call on every secret
	// element before it goes out of scope.
	Zeroize()
}

// FieldArithmetic defines the operations the sharing engine needs.
// Addition is XOR; multiplication is a carry-less product reduced by the
// field's irreducible polynomial:
//
//	GF(2^128): z^128 + z^7 + z^2 + z + 1
//	GF(2^256): z^256 + z^10 + z^5 + z^2 + 1
type FieldArithmetic interface {
	// Add returns a + b (bitwise XOR, also subtraction).
	Add(a, b FieldElement) FieldElement

	// Mul returns a * b reduced modulo the irreducible polynomial.
	Mul(size FieldSize, a, b FieldElement) FieldElement

	// Invert returns a^-1 via exponentiation to 2^w - 2.
	// Returns ErrDivisionByZero for the zero element.
	Invert(size FieldSize, a FieldElement) (FieldElement, error)

	// Random draws a uniform element from the given reader.
	// Every size/8-byte string is a valid element; no rejection needed.
	Random(size FieldSize, rng io.Reader) (FieldElement, error)
}

// Share is one point of the sharing polynomial: the value at x = Index.
type Share struct {
	// Index is the 1-based evaluation point, 1..255. Index 0 would
	// reveal the secret directly and must never be issued.
	Index int

	// Value is the polynomial evaluated at Index.
	Value FieldElement
}

// SharingEngine defines (threshold, count) secret sharing over a field.
type SharingEngine interface {
	// Split builds a random polynomial of degree threshold-1 with the
	// secret as its constant term and returns its value at x = 1..count.
	// Requires 1 <= threshold <= count <= 255. All intermediate
	// coefficients are zeroized before returning.
	Split(size FieldSize, secret FieldElement, threshold, count int, rng io.Reader) ([]Share, error)

	// Combine interpolates the polynomial through the given shares at
	// x = 0. Requires at least 2 shares with pairwise distinct indexes.
	// Fewer shares than the original threshold is NOT detectable: the
	// result is a well-formed but wrong secret, never an error.
	Combine(size FieldSize, shares []Share) (FieldElement, error)
}

// Sharing-related errors.
var (
	ErrInvalidThreshold   = Error{Code: "INVALID_THRESHOLD", Message: "threshold must be between 1 and the share count"}
	ErrTooManyShares      = Error{Code: "TOO_MANY_SHARES", Message: "share count exceeds the maximum of 255"}
	ErrInsufficientShares = Error{Code: "INSUFFICIENT_SHARES", Message: "combining requires at least 2 shares"}
	ErrDuplicateIndex     = Error{Code: "DUPLICATE_INDEX", Message: "two shares carry the same index"}
	ErrInvalidShareIndex  = Error{Code: "INVALID_SHARE_INDEX", Message: "share index must be between 1 and 255"}
	ErrDivisionByZero     = Error{Code: "DIVISION_BY_ZERO", Message: "field inversion of zero"}
)

// Error is a structured error with code for programmatic handling.
type Error struct {
	Code    string
	Message string
	Details map[string]string
}

func (e Error) Error() string {
	return e.Message
}
