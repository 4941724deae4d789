// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package radix

import (
	"iter"
	"math"
	"math/big"
)

// maxAutoPlaces bounds the number of places FromFloat64 tries.
const maxAutoPlaces = 30

// tolerance returns the magnitude below which the digits of f are noise.
func tolerance(f float64) *big.Rat {
	return new(big.Rat).SetFloat64(math.Ldexp(math.Abs(f), -50))
}

// FromFloat64Prec returns f expressed with the given number of fractional
// places. Float representation noise is removed: a leftover smaller than a
// few ulps of f is dropped, and one that falls short of a whole unit by less
// than that is carried. As a result
//
//	b.FromFloat64Prec(x.Float64(), x.Significant())
//
// gives back x for any x whose digits fit in the precision of a float64.
func (b *Base) FromFloat64Prec(f float64, places int) (*Real, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, &DomainError{Op: OpConvert, Err: ErrNotFinite}
	}
	if places < 0 {
		return nil, &DomainError{Op: OpConvert, Err: ErrInvalidPrecision}
	}
	x := fromRat(b, new(big.Rat).SetFloat64(f), places)
	return b.check(snap(x, tolerance(f)))
}

// FromFloat64 returns f with the smallest number of fractional places that
// represents it within float64 precision.
func (b *Base) FromFloat64(f float64) (*Real, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, &DomainError{Op: OpConvert, Err: ErrNotFinite}
	}
	q := new(big.Rat).SetFloat64(f)
	tol := tolerance(f)
	var x *Real
	for n := 0; n <= maxAutoPlaces; n++ {
		x = snap(fromRat(b, q, n), tol)
		if x.rem.IsZero() {
			break
		}
		unit := new(big.Rat).SetFrac(big.NewInt(1), b.FactorAt(n))
		if unit.Cmp(tol) < 0 {
			break
		}
	}
	return b.check(x)
}

// snap drops or carries the remainder of x if its magnitude is within tol.
func snap(x *Real, tol *big.Rat) *Real {
	if x.rem.IsZero() {
		return x
	}
	unit := new(big.Rat).SetInt(x.base.FactorAt(len(x.right)))
	r := ratOf(x.rem)
	if new(big.Rat).Quo(r, unit).Cmp(tol) <= 0 {
		return x.dropRemainder()
	}
	r.Sub(ratOne, r)
	if r.Quo(r, unit).Cmp(tol) <= 0 {
		return x.bump()
	}
	return x
}

// Range returns a sequence of the integers in [start, stop) in base b.
func (b *Base) Range(start, stop int64) iter.Seq[*Real] {
	return b.RangeStep(start, stop, 1)
}

// RangeStep returns a sequence start, start+step, ... of the integers strictly
// before stop in base b. The sequence is empty if step is 0.
func (b *Base) RangeStep(start, stop, step int64) iter.Seq[*Real] {
	return func(yield func(*Real) bool) {
		if step == 0 {
			return
		}
		for i := start; (step > 0 && i < stop) || (step < 0 && i > stop); i += step {
			x := fromRat(b, new(big.Rat).SetInt64(i), 0)
			if _, err := b.check(x); err != nil {
				return
			}
			if !yield(x) {
				return
			}
			if step > 0 && i > math.MaxInt64-step || step < 0 && i < math.MinInt64-step {
				return
			}
		}
	}
}

