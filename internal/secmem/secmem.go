// Package secmem provides best-effort protections for secret material
// held in process memory: explicit zeroing, mlock-backed buffers, and
// the process-wide source of entropy used when generating seeds and
// polynomial coefficients.
package secmem

import (
	"crypto/rand"
	"io"
)

// Reader is the cryptographically secure random number generator.
// It wraps crypto/rand.Reader so tests can substitute a deterministic
// stream without touching the packages that consume it.
//
//nolint:gochecknoglobals // Package-level RNG is required for testability
var Reader io.Reader = rand.Reader

// RandomBytes generates cryptographically secure random bytes.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ZeroBytes overwrites b with zeros. It is a no-op for empty slices.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
