package frametime

import (
	"errors"
	"fmt"
	"math/bits"
	"time"
)

// ErrZeroDenominator is returned when a frame time with a zero denominator is given.
var ErrZeroDenominator = errors.New("frame time denominator must not be zero")

// Rational is a frame period in seconds expressed as an exact integer ratio.
// The zero value is not a valid frame time, use New to build one.
type Rational struct {
	Num   uint64
	Denom uint64
}

// New returns num/denom, or ErrZeroDenominator.
func New(num, denom uint64) (Rational, error) {
	if denom == 0 {
		return Rational{}, ErrZeroDenominator
	}
	return Rational{Num: num, Denom: denom}, nil
}

// Valid reports whether the denominator is non-zero.
func (r Rational) Valid() bool {
	return r.Denom != 0
}

// Cmp compares r and o by cross multiplication, returning -1, 0 or +1.
func (r Rational) Cmp(o Rational) int {
	lhsHi, lhsLo := bits.Mul64(r.Num, o.Denom)
	rhsHi, rhsLo := bits.Mul64(o.Num, r.Denom)

	switch {
	case lhsHi < rhsHi:
		return -1
	case lhsHi > rhsHi:
		return 1
	case lhsLo < rhsLo:
		return -1
	case lhsLo > rhsLo:
		return 1
	}
	return 0
}

// Equal reports whether r and o denote the same value (1/2 equals 2/4).
func (r Rational) Equal(o Rational) bool {
	return r.Cmp(o) == 0
}

// Less reports whether r < o.
func (r Rational) Less(o Rational) bool {
	return r.Cmp(o) < 0
}

// Reduce divides numerator and denominator by their greatest common divisor.
func (r Rational) Reduce() Rational {
	g := gcd(r.Num, r.Denom)
	if g <= 1 {
		return r
	}
	return Rational{Num: r.Num / g, Denom: r.Denom / g}
}

// Inverse swaps numerator and denominator, turning a period into a rate and
// back. The inverse of a zero value is invalid.
func (r Rational) Inverse() Rational {
	return Rational{Num: r.Denom, Denom: r.Num}
}

// Duration converts the period into a time.Duration, rounding to the nearest
// nanosecond. Only the final conversion rounds.
func (r Rational) Duration() time.Duration {
	if r.Denom == 0 {
		return 0
	}
	hi, lo := bits.Mul64(r.Num, uint64(time.Second))
	if hi >= r.Denom {
		// would not fit in 64 bits
		return time.Duration(1<<63 - 1)
	}
	q, rem := bits.Div64(hi, lo, r.Denom)
	if rem >= r.Denom-rem {
		q++
	}
	if q > 1<<63-1 {
		return time.Duration(1<<63 - 1)
	}
	return time.Duration(q)
}

// FPS returns the frame rate as a float. Display only, never compare with it.
func (r Rational) FPS() float64 {
	if r.Num == 0 {
		return 0
	}
	return float64(r.Denom) / float64(r.Num)
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Denom)
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
