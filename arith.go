// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package radix

import (
	"math"
	"math/big"
)

// Operators of a Context return a new Real computed as follows:
//
//  1. an operand y in another base than x is converted to the base of x
//     through float64, with the places of x. This conversion is lossy;
//  2. the context's algorithm for the operator computes the result;
//  3. the result is cut to the places selected by the context precision,
//     using the context truncation mode;
//  4. one record is appended to the context recorder.
//
// Errors are returned before anything is recorded.

// align returns y in the base of x.
func (c *Context) align(x, y *Real) (*Real, error) {
	if y.base == x.base {
		return y, nil
	}
	return x.base.FromFloat64Prec(y.Float64(), len(x.right))
}

// algorithm returns the algorithm of c for op. The built-in division computes
// at least places fractional places, so that a fixed precision wider than the
// operands gets exact digits.
func (c *Context) algorithm(op Op, places int) (Algorithm, error) {
	if id, ok := c.algos[op]; ok {
		return LookupAlgorithm(id)
	}
	if op == OpDiv {
		return func(x, y *Real) (*Real, error) {
			return quo(x, y, max(places, len(x.right), len(y.right)))
		}, nil
	}
	return Exact(op), nil
}

func (c *Context) binary(op Op, x, y *Real) (*Real, error) {
	yy, err := c.align(x, y)
	if err != nil {
		return nil, err
	}
	n := c.prec.Places(x, yy)
	algo, err := c.algorithm(op, n)
	if err != nil {
		return nil, err
	}
	z, err := algo(x, yy)
	if err != nil {
		return nil, err
	}
	return c.finish(op, c.mode.apply(z, n), x, y)
}

// finish checks the width of z and records it.
func (c *Context) finish(op Op, z *Real, operands ...*Real) (*Real, error) {
	return c.finishPinned(op, z, nil, operands...)
}

// finishPinned is finish for operators that build some of their operands.
// The record holds the pinned Reals strongly.
func (c *Context) finishPinned(op Op, z *Real, pinned []*Real, operands ...*Real) (*Real, error) {
	z, err := z.base.check(z)
	if err != nil {
		return nil, err
	}
	if c.Recording() {
		r := newRecord(c, op, z, operands)
		r.pinned = pinned
		c.recorder.Record(r)
	}
	return z, nil
}

// Add returns x + y.
func (c *Context) Add(x, y *Real) (*Real, error) { return c.binary(OpAdd, x, y) }

// Sub returns x - y.
func (c *Context) Sub(x, y *Real) (*Real, error) { return c.binary(OpSub, x, y) }

// Mul returns x × y.
func (c *Context) Mul(x, y *Real) (*Real, error) { return c.binary(OpMul, x, y) }

// Div returns x / y.
func (c *Context) Div(x, y *Real) (*Real, error) { return c.binary(OpDiv, x, y) }

func (c *Context) divMod(op Op, x, y *Real) (*big.Int, *big.Rat, *Real, error) {
	yy, err := c.align(x, y)
	if err != nil {
		return nil, nil, nil, err
	}
	if yy.isZero() {
		return nil, nil, nil, &DomainError{Op: op, Err: ErrDivisionByZero}
	}
	q, r := floorDivMod(x.Rat(), yy.Rat())
	return q, r, yy, nil
}

// FloorDiv returns ⌊x / y⌋ with the places of x.
func (c *Context) FloorDiv(x, y *Real) (*Real, error) {
	q, _, _, err := c.divMod(OpFloorDiv, x, y)
	if err != nil {
		return nil, err
	}
	n := len(x.right)
	return c.finish(OpFloorDiv, fromRat(x.base, new(big.Rat).SetInt(q), n), x, y)
}

// Mod returns x - ⌊x / y⌋ × y with the places of x. Digits past the places of x
// go to the remainder; the truncation mode does not apply. A non-zero result
// has the sign of y and is smaller than y in magnitude.
func (c *Context) Mod(x, y *Real) (*Real, error) {
	_, r, _, err := c.divMod(OpMod, x, y)
	if err != nil {
		return nil, err
	}
	return c.finish(OpMod, fromRat(x.base, r, len(x.right)), x, y)
}

// DivMod returns FloorDiv(x, y) and Mod(x, y). Both results are recorded.
func (c *Context) DivMod(x, y *Real) (q, m *Real, err error) {
	if q, err = c.FloorDiv(x, y); err != nil {
		return nil, nil, err
	}
	if m, err = c.Mod(x, y); err != nil {
		return nil, nil, err
	}
	return q, m, nil
}

// Pow returns x**y with the places the context precision selects for x.
// Integer exponents are computed exactly by repeated squaring and cut once.
// An integer exponent out of the int64 range fails with ErrNotFinite unless x
// is 0, 1 or -1. Other exponents go through float64.
func (c *Context) Pow(x, y *Real) (*Real, error) {
	n := c.prec.Places(x, x)
	if y.IsInt() {
		e, ok := y.Int64()
		if !ok {
			z, err := c.powHuge(x, y, n)
			if err != nil {
				return nil, err
			}
			return c.finish(OpPow, z, x, y)
		}
		z, err := c.powInt(x, e, n)
		if err != nil {
			return nil, err
		}
		return c.finish(OpPow, z, x, y)
	}
	switch {
	case x.isZero() && y.neg:
		return nil, &DomainError{Op: OpPow, Err: ErrDivisionByZero}
	case x.neg:
		return nil, &DomainError{Op: OpPow, Err: ErrNonIntegerPower}
	}
	f := math.Pow(x.Float64(), y.Float64())
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, &DomainError{Op: OpPow, Err: ErrNotFinite}
	}
	z, err := x.base.FromFloat64Prec(f, n)
	if err != nil {
		return nil, err
	}
	return c.finish(OpPow, c.mode.apply(z, n), x, y)
}

// PowInt returns x**e. See Pow.
func (c *Context) PowInt(x *Real, e int) (*Real, error) {
	z, err := c.powInt(x, int64(e), c.prec.Places(x, x))
	if err != nil {
		return nil, err
	}
	y := fromRat(x.base, new(big.Rat).SetInt64(int64(e)), 0)
	return c.finishPinned(OpPow, z, []*Real{y}, x, y)
}

// powHuge returns x**y for an integer y out of the int64 range. Only the bases
// 0, 1 and -1 give a finite non-zero result or an exact zero.
func (c *Context) powHuge(x, y *Real, places int) (*Real, error) {
	switch {
	case x.isZero() && y.neg:
		return nil, &DomainError{Op: OpPow, Err: ErrDivisionByZero}
	case x.isZero():
		return x.base.Zero(places), nil
	}
	a := x.Rat()
	if a.Abs(a).Cmp(big.NewRat(1, 1)) != 0 {
		return nil, &DomainError{Op: OpPow, Err: ErrNotFinite}
	}
	one := x.base.One(places)
	if x.neg && y.Int().Bit(0) == 1 {
		return one.Neg(), nil
	}
	return one, nil
}

func (c *Context) powInt(x *Real, e int64, places int) (*Real, error) {
	if e < 0 && x.isZero() {
		return nil, &DomainError{Op: OpPow, Err: ErrDivisionByZero}
	}
	q := ratPow(x.Rat(), uint64(max(e, -e)))
	if e < 0 {
		q.Inv(q)
	}
	return c.mode.apply(fromRat(x.base, q, places), places), nil
}

// ratPow returns x**n by repeated squaring.
func ratPow(x *big.Rat, n uint64) *big.Rat {
	y := big.NewRat(1, 1)
	if n == 0 {
		return y
	}
	z := new(big.Rat).Set(x)
	for n > 1 {
		if n%2 != 0 {
			y.Mul(y, z)
		}
		z.Mul(z, z)
		n /= 2
	}
	return z.Mul(z, y)
}

// Sqrt returns the square root of x by Babylonian iteration, seeded with the
// float64 square root of x. A negative iterations count selects the number
// of places the context precision gives x. Intermediate results are cut like
// the final result and are not recorded.
func (c *Context) Sqrt(x *Real, iterations int) (*Real, error) {
	if x.Sign() < 0 {
		return nil, &DomainError{Op: OpSqrt, Err: ErrNegativeRoot}
	}
	n := c.prec.Places(x, x)
	if iterations < 0 {
		iterations = n
	}
	if x.isZero() {
		return c.finish(OpSqrt, x.Truncate(n), x)
	}
	inner, err := c.With(WithPrec(Precision(n)), WithRecording(false))
	if err != nil {
		return nil, err
	}
	f := x.Float64()
	if math.IsInf(f, 0) {
		return nil, &DomainError{Op: OpSqrt, Err: ErrNotFinite}
	}
	r, err := x.base.FromFloat64Prec(math.Sqrt(f), n)
	if err != nil {
		return nil, err
	}
	if r.isZero() {
		r = x.base.One(n)
	}
	two := fromRat(x.base, big.NewRat(2, 1), 0)
	for range iterations {
		q, err := inner.Div(x, r)
		if err != nil {
			return nil, err
		}
		s, err := inner.Add(r, q)
		if err != nil {
			return nil, err
		}
		if r, err = inner.Div(s, two); err != nil {
			return nil, err
		}
	}
	return c.finish(OpSqrt, c.mode.apply(r, n), x)
}

// The methods below compute with the active context.

// Add returns x + y in the active context.
func (x *Real) Add(y *Real) (*Real, error) { return Active().Add(x, y) }

// Sub returns x - y in the active context.
func (x *Real) Sub(y *Real) (*Real, error) { return Active().Sub(x, y) }

// Mul returns x × y in the active context.
func (x *Real) Mul(y *Real) (*Real, error) { return Active().Mul(x, y) }

// Div returns x / y in the active context.
func (x *Real) Div(y *Real) (*Real, error) { return Active().Div(x, y) }

// FloorDiv returns ⌊x / y⌋ in the active context.
func (x *Real) FloorDiv(y *Real) (*Real, error) { return Active().FloorDiv(x, y) }

// Mod returns x mod y in the active context.
func (x *Real) Mod(y *Real) (*Real, error) { return Active().Mod(x, y) }

// Pow returns x**y in the active context.
func (x *Real) Pow(y *Real) (*Real, error) { return Active().Pow(x, y) }

// Sqrt returns the square root of x in the active context.
func (x *Real) Sqrt() (*Real, error) { return Active().Sqrt(x, -1) }
