// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package radix

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/govalues/decimal"
)

var remHalf = decimal.MustParse("0.5")

func checkPlaces(n int) {
	if n < 0 {
		panic(fmt.Sprintf("radix: negative number of places %d", n))
	}
}

// Resize returns x expressed with n fractional places. Digits cut off become
// part of the remainder. Added places come from the remainder, which is only
// kept to 19 decimal places: digits widened from a non-zero remainder are
// exact only as far as those 19 decimals reach. Operators compute at their
// target places and do not widen this way. Resize panics if n < 0.
func (x *Real) Resize(n int) *Real {
	checkPlaces(n)
	if n == len(x.right) {
		return x
	}
	if n > len(x.right) && x.rem.IsZero() {
		right := make([]int, n)
		copy(right, x.right)
		return newReal(x.base, x.neg, slices.Clone(x.left), right, decimal.Decimal{})
	}
	return fromRat(x.base, x.Rat(), n)
}

// Truncate returns x with n fractional places and no remainder, rounding
// toward zero. Truncate panics if n < 0.
func (x *Real) Truncate(n int) *Real {
	checkPlaces(n)
	if n <= len(x.right) {
		return newReal(x.base, x.neg, slices.Clone(x.left), slices.Clone(x.right[:n]), decimal.Decimal{})
	}
	return x.Resize(n).dropRemainder()
}

func (x *Real) dropRemainder() *Real {
	if x.rem.IsZero() {
		return x
	}
	return newReal(x.base, x.neg, x.left, x.right, decimal.Decimal{})
}

// Round returns x rounded to n fractional places, halves rounded away from
// zero. Round panics if n < 0.
func (x *Real) Round(n int) *Real {
	r := x.Resize(n)
	if r.rem.Cmp(remHalf) >= 0 {
		return r.bump()
	}
	return r.dropRemainder()
}

// Ceil returns the smallest value with n fractional places that is >= x.
// Ceil panics if n < 0.
func (x *Real) Ceil(n int) *Real {
	r := x.Resize(n)
	if !r.rem.IsZero() && !r.neg {
		return r.bump()
	}
	return r.dropRemainder()
}

// Floor returns the largest value with n fractional places that is <= x.
// Floor panics if n < 0.
func (x *Real) Floor(n int) *Real {
	r := x.Resize(n)
	if !r.rem.IsZero() && r.neg {
		return r.bump()
	}
	return r.dropRemainder()
}

// MinimizePrecision returns x without its trailing zero fractional digits.
// Values with a remainder are returned unchanged.
func (x *Real) MinimizePrecision() *Real {
	if !x.rem.IsZero() {
		return x
	}
	n := len(x.right)
	for n > 0 && x.right[n-1] == 0 {
		n--
	}
	return x.Truncate(n)
}

// Shift returns x × B⁻ⁱ where B is the base of x: a positive i moves every
// digit i positions to the right of the units, a negative i to the left. The
// number of fractional places grows or shrinks accordingly. The base of x must
// be uniform.
func (x *Real) Shift(i int) (*Real, error) {
	if !x.base.uniform {
		return nil, &DomainError{Op: OpShift, Err: ErrMixedShift}
	}
	q := x.Rat()
	f := new(big.Int).Exp(big.NewInt(int64(x.base.integer[0])), big.NewInt(int64(abs(i))), nil)
	if i > 0 {
		q.Quo(q, new(big.Rat).SetInt(f))
	} else {
		q.Mul(q, new(big.Rat).SetInt(f))
	}
	return x.base.check(fromRat(x.base, q, max(0, len(x.right)+i)))
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
