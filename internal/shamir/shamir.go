// Package shamir implements Shamir's Secret Sharing over the binary
// extension fields GF(2^128) and GF(2^256). It splits a secret field
// element into n shares under a (t, n) threshold scheme and reconstructs
// it from any t of them by Lagrange interpolation at x = 0.
package shamir

import (
	"fmt"
	"io"

	"github.com/splinterlabs/splinter/internal/field"
)

// MaxShares is the largest count a single split may produce. Indexes are
// 1-based, so it also bounds the valid index range.
const MaxShares = 255

// Share is a single share of a split secret.
type Share struct {
	Index int           // The x-coordinate (1-based, never zero)
	Value field.Element // The y-coordinate, the polynomial evaluated at Index
}

// Split divides a secret into count shares, any threshold of which
// reconstruct it.
//
// The secret is the constant term of a polynomial of degree threshold-1
// whose remaining coefficients are drawn from rng:
//
//	f(x) = secret + c_1*x + ... + c_(threshold-1)*x^(threshold-1)
//
// Share i carries f(i) for i = 1..count. x = 0 is never issued because
// f(0) is the secret itself. Any set of fewer than threshold shares is
// consistent with every possible secret. Coefficients are zeroed before
// returning on all paths.
func Split(s field.Size, secret field.Element, threshold, count int, rng io.Reader) ([]Share, error) {
	if threshold < 1 || threshold > count {
		return nil, fmt.Errorf("%w: threshold %d with %d shares", ErrInvalidThreshold, threshold, count)
	}
	if count > MaxShares {
		return nil, fmt.Errorf("%w: %d", ErrTooManyShares, count)
	}

	coeffs := make([]field.Element, threshold)
	coeffs[0] = secret
	defer zeroElements(coeffs)

	for i := 1; i < threshold; i++ {
		c, err := field.Random(s, rng)
		if err != nil {
			return nil, fmt.Errorf("failed to generate polynomial coefficients: %w", err)
		}
		coeffs[i] = c
	}

	shares := make([]Share, count)
	for x := 1; x <= count; x++ {
		shares[x-1] = Share{Index: x, Value: evaluate(s, coeffs, uint64(x))}
	}

	return shares, nil
}

// evaluate computes f(x) by Horner's rule.
func evaluate(s field.Size, coeffs []field.Element, x uint64) field.Element {
	xe := field.FromUint64(x)
	acc := coeffs[len(coeffs)-1]
	for i := len(coeffs) - 2; i >= 0; i-- {
		acc = field.Add(field.Mul(s, acc, xe), coeffs[i])
	}
	return acc
}

func zeroElements(elems []field.Element) {
	for i := range elems {
		elems[i].Zeroize()
	}
}

// Combine reconstructs the secret from the shares given. The threshold is
// implicitly len(shares): interpolation uses every share supplied, and the
// caller is responsible for providing at least as many as the split's
// threshold. Shares carry no checksum, so a wrong or short share set
// yields a wrong-but-plausible secret rather than an error.
func Combine(s field.Size, shares []Share) (field.Element, error) {
	if len(shares) < 2 {
		return field.Element{}, fmt.Errorf("%w: got %d", ErrInsufficientShares, len(shares))
	}

	xs := make([]field.Element, len(shares))
	seen := make(map[int]bool, len(shares))
	for i, sh := range shares {
		if sh.Index < 1 || sh.Index > MaxShares {
			return field.Element{}, fmt.Errorf("%w: %d", ErrInvalidIndex, sh.Index)
		}
		if seen[sh.Index] {
			return field.Element{}, fmt.Errorf("%w: index %d", ErrDuplicateIndex, sh.Index)
		}
		seen[sh.Index] = true
		xs[i] = field.FromUint64(uint64(sh.Index))
	}

	// Lagrange interpolation at x = 0. The basis coefficient for share j
	// is the product over i != j of x_i / (x_i + x_j); numerator and
	// denominator are accumulated separately, one inversion per share.
	secret := field.Zero()
	for j := range shares {
		top := field.One()
		bot := field.One()
		for i := range shares {
			if i == j {
				continue
			}
			top = field.Mul(s, top, xs[i])
			bot = field.Mul(s, bot, field.Add(xs[i], xs[j]))
		}

		// bot is a product of nonzero factors as long as the indexes are
		// pairwise distinct, which the duplicate check above enforces.
		inv, err := field.Invert(s, bot)
		if err != nil {
			return field.Element{}, err
		}

		coeff := field.Mul(s, top, inv)
		secret = field.Add(secret, field.Mul(s, coeff, shares[j].Value))
	}

	return secret, nil
}
