// Package field implements arithmetic over the binary extension fields
// GF(2^128) and GF(2^256) used by the secret sharing engine.
//
// Elements are polynomials over GF(2) packed into little-endian uint64
// limbs. Addition is bitwise XOR. Multiplication is a carry-less product
// reduced modulo a fixed irreducible polynomial:
//
//	GF(2^128): z^128 + z^7 + z^2 + z + 1
//	GF(2^256): z^256 + z^10 + z^5 + z^2 + 1
//
// A binary field is used instead of a prime field so that element width
// matches the seed entropy width exactly; every 16- or 32-byte string is a
// valid element and no range checks or rejection sampling are needed.
// Arithmetic on element values uses arithmetic masks rather than
// data-dependent branches, so secret material does not leak through timing.
package field

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrDivisionByZero indicates a multiplicative inverse of zero was
	// requested. Zero has no inverse; callers that hit this on share data
	// have violated the distinct-index precondition.
	ErrDivisionByZero = errors.New("division by zero: zero has no multiplicative inverse")

	// ErrElementLength indicates a byte buffer of the wrong width for the
	// selected field size.
	ErrElementLength = errors.New("element byte length does not match field size")
)

// maxLimbs is the limb count of the widest supported field.
const maxLimbs = 4

// Size selects one of the two supported field widths. It determines the
// element byte width and the reduction polynomial, and is passed explicitly
// into every width-dependent operation rather than carried on elements.
type Size int

// Supported field sizes.
const (
	// Size128 is GF(2^128), the field of 12-word phrases.
	Size128 Size = 128

	// Size256 is GF(2^256), the field of 24-word phrases.
	Size256 Size = 256
)

// Bits returns the field width in bits.
func (s Size) Bits() int { return int(s) }

// Bytes returns the byte width of a serialized element.
func (s Size) Bytes() int { return int(s) / 8 }

// Words returns the number of wordlist words that encode one element.
func (s Size) Words() int {
	if s == Size128 {
		return 12
	}
	return 24
}

// Valid reports whether s is one of the supported sizes.
func (s Size) Valid() bool { return s == Size128 || s == Size256 }

func (s Size) String() string {
	return fmt.Sprintf("GF(2^%d)", int(s))
}

// limbs returns the number of significant uint64 limbs.
func (s Size) limbs() int { return int(s) / 64 }

// SizeForBytes returns the field size whose elements serialize to n bytes.
func SizeForBytes(n int) (Size, bool) {
	switch n {
	case 16:
		return Size128, true
	case 32:
		return Size256, true
	default:
		return 0, false
	}
}

// SizeForWords returns the field size encoded by an n-word phrase.
func SizeForWords(n int) (Size, bool) {
	switch n {
	case 12:
		return Size128, true
	case 24:
		return Size256, true
	default:
		return 0, false
	}
}

// Element is a field element of up to 256 bits stored as little-endian
// uint64 limbs. Size128 elements occupy limbs 0 and 1 and keep the upper
// limbs zero. The zero value is the additive identity. Arithmetic treats
// elements as immutable values; only Zeroize mutates in place.
type Element struct {
	limbs [maxLimbs]uint64
}

// Zero returns the additive identity.
func Zero() Element { return Element{} }

// One returns the multiplicative identity.
func One() Element { return Element{limbs: [maxLimbs]uint64{1}} }

// FromUint64 returns the element whose low limb is v. Share indexes enter
// the field through this constructor.
func FromUint64(v uint64) Element { return Element{limbs: [maxLimbs]uint64{v}} }

// FromBytes deserializes an element from exactly s.Bytes() bytes,
// little-endian within each limb, limbs in ascending order.
func FromBytes(s Size, data []byte) (Element, error) {
	if len(data) != s.Bytes() {
		return Element{}, fmt.Errorf("%w: got %d bytes, want %d", ErrElementLength, len(data), s.Bytes())
	}

	var e Element
	for i := 0; i < s.limbs(); i++ {
		e.limbs[i] = binary.LittleEndian.Uint64(data[i*8:])
	}
	return e, nil
}

// Bytes serializes the element to s.Bytes() bytes, the inverse of FromBytes.
func (e Element) Bytes(s Size) []byte {
	out := make([]byte, s.Bytes())
	for i := 0; i < s.limbs(); i++ {
		binary.LittleEndian.PutUint64(out[i*8:], e.limbs[i])
	}
	return out
}

// IsZero reports whether e is the additive identity, without branching on
// limb values.
func (e Element) IsZero() bool {
	var acc uint64
	for _, l := range e.limbs {
		acc |= l
	}
	return acc == 0
}

// Equal reports whether two elements are equal, accumulating the comparison
// across all limbs before testing so timing does not depend on where they
// differ.
func (e Element) Equal(other Element) bool {
	var diff uint64
	for i := range e.limbs {
		diff |= e.limbs[i] ^ other.limbs[i]
	}
	return diff == 0
}

// Zeroize clears the element in place. Callers scrub secrets and ephemeral
// polynomial coefficients with this before releasing them.
func (e *Element) Zeroize() {
	for i := range e.limbs {
		e.limbs[i] = 0
	}
}

// Add returns a + b. Addition in GF(2^n) is bitwise XOR: total, commutative,
// and its own inverse (a + a = 0). Subtraction is the same operation.
func Add(a, b Element) Element {
	var out Element
	for i := range out.limbs {
		out.limbs[i] = a.limbs[i] ^ b.limbs[i]
	}
	return out
}

// Mul returns a * b in the field selected by s.
//
// The carry-less product is accumulated over a double-width limb register:
// for each bit position of a, from the most significant down, b is XORed in
// at every limb offset where that bit is set, then the whole register
// shifts left one bit. Bit selection uses an all-ones/all-zeros mask so the
// work done is independent of the operand values. The double-width result
// is then folded modulo the field polynomial.
func Mul(s Size, a, b Element) Element {
	n := s.limbs()

	var acc [2 * maxLimbs]uint64
	for k := 63; k >= 0; k-- {
		for j := 0; j < n; j++ {
			mask := uint64(0) - ((a.limbs[j] >> uint(k)) & 1)
			for i := 0; i < n; i++ {
				acc[j+i] ^= b.limbs[i] & mask
			}
		}
		if k > 0 {
			shiftLeft(acc[:2*n])
		}
	}

	if s == Size128 {
		return reduce128(&acc)
	}
	return reduce256(&acc)
}

// shiftLeft shifts a multi-limb value left by one bit, carrying across
// limbs. The top bit shifted out is discarded; callers size the register so
// it is always zero.
func shiftLeft(v []uint64) {
	for i := len(v) - 1; i > 0; i-- {
		v[i] = v[i]<<1 | v[i-1]>>63
	}
	v[0] <<= 1
}

// reduce128 folds a 256-bit carry-less product modulo
// z^128 + z^7 + z^2 + z + 1.
//
// z^128 = z^7 + z^2 + z + 1 (mod p), so the high half is shifted through
// each tap and XORed into the low half. Shifting pushes at most 7 bits past
// z^127; those collect in top and are folded through the taps once more,
// which cannot overflow again since top < 2^7.
func reduce128(acc *[2 * maxLimbs]uint64) Element {
	lo0, lo1 := acc[0], acc[1]
	hi0, hi1 := acc[2], acc[3]

	var top uint64
	for _, tap := range [4]uint{7, 2, 1, 0} {
		lo0 ^= hi0 << tap
		lo1 ^= hi1<<tap ^ hi0>>(64-tap)
		top ^= hi1 >> (64 - tap)
	}
	for _, tap := range [4]uint{7, 2, 1, 0} {
		lo0 ^= top << tap
	}

	return Element{limbs: [maxLimbs]uint64{lo0, lo1}}
}

// reduce256 folds a 512-bit carry-less product modulo
// z^256 + z^10 + z^5 + z^2 + 1, the same construction as reduce128 with
// taps {10, 5, 2, 0} and a four-limb half. top < 2^10, so one extra fold
// suffices here too.
func reduce256(acc *[2 * maxLimbs]uint64) Element {
	lo := [4]uint64{acc[0], acc[1], acc[2], acc[3]}
	hi := [4]uint64{acc[4], acc[5], acc[6], acc[7]}

	var top uint64
	for _, tap := range [4]uint{10, 5, 2, 0} {
		lo[0] ^= hi[0] << tap
		lo[1] ^= hi[1]<<tap ^ hi[0]>>(64-tap)
		lo[2] ^= hi[2]<<tap ^ hi[1]>>(64-tap)
		lo[3] ^= hi[3]<<tap ^ hi[2]>>(64-tap)
		top ^= hi[3] >> (64 - tap)
	}
	for _, tap := range [4]uint{10, 5, 2, 0} {
		lo[0] ^= top << tap
	}

	return Element{limbs: lo}
}

// Invert returns the multiplicative inverse of a nonzero element.
//
// The multiplicative group has order 2^w - 1, so a^(2^w - 2) = a^-1. The
// ladder below maintains acc = a^(2^k - 1) after k iterations of
// square-then-multiply; after w-1 iterations one final squaring gives
// a^(2^w - 2). Fails with ErrDivisionByZero when a is zero.
func Invert(s Size, a Element) (Element, error) {
	if a.IsZero() {
		return Element{}, ErrDivisionByZero
	}

	acc := One()
	for i := 0; i < s.Bits()-1; i++ {
		acc = Mul(s, acc, acc)
		acc = Mul(s, acc, a)
	}
	return Mul(s, acc, acc), nil
}

// Random draws a uniformly random element by filling the element's byte
// width from rng. Every bit pattern is a valid element, so no rejection is
// needed. The temporary buffer is wiped before returning.
func Random(s Size, rng io.Reader) (Element, error) {
	buf := make([]byte, s.Bytes())
	if _, err := io.ReadFull(rng, buf); err != nil {
		return Element{}, fmt.Errorf("reading random element: %w", err)
	}

	e, err := FromBytes(s, buf)
	for i := range buf {
		buf[i] = 0
	}
	if err != nil {
		return Element{}, err
	}
	return e, nil
}
