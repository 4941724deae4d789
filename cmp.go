// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package radix

import (
	"math"
	"math/big"
)

// Cmp compares the exact values of x and y, remainders included, and returns
//
//	-1 if x <  y
//	 0 if x == y
//	+1 if x >  y
//
// x and y may have different bases.
func (x *Real) Cmp(y *Real) int {
	return x.Rat().Cmp(y.Rat())
}

// CmpRat compares x and q like Cmp.
func (x *Real) CmpRat(q *big.Rat) int {
	return x.Rat().Cmp(q)
}

// CmpFloat64 compares x and f like Cmp, f being taken at its exact binary
// value. ±Inf compare as expected. CmpFloat64 panics with a DomainError if f
// is NaN.
func (x *Real) CmpFloat64(f float64) int {
	switch {
	case math.IsNaN(f):
		panic(&DomainError{Op: OpConvert, Err: ErrNotFinite})
	case math.IsInf(f, 1):
		return -1
	case math.IsInf(f, -1):
		return 1
	}
	return x.Rat().Cmp(new(big.Rat).SetFloat64(f))
}

// EqualFloat64 reports whether x == f after expressing f in the base of x
// with the places of x, the way mixed-type arithmetic converts plain numbers.
func (x *Real) EqualFloat64(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	y, err := x.base.FromFloat64Prec(f, len(x.right))
	if err != nil {
		return false
	}
	return x.Cmp(y) == 0
}
