// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package radix

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/govalues/decimal"
)

// remScale is the number of decimal places kept in a remainder.
const remScale = 19

// A Real is a signed number written in a positional Base: integer digits,
// fractional digits, and a remainder in [0, 1) expressing in units of the last
// fractional place the magnitude that was cut off when the value was
// truncated. The value of x is
//
//	sign × (integer digits ; fractional digits + remainder × unit of last place)
//
// Reals are immutable. The zero value is not usable; Reals are created by the
// constructors of a Base or returned by operations.
type Real struct {
	base  *Base
	neg   bool
	left  []int // most significant first, never empty
	right []int
	rem   decimal.Decimal
}

// newReal returns the canonical Real for the given parts. It takes ownership
// of left and right and performs no bound checking.
func newReal(b *Base, neg bool, left, right []int, rem decimal.Decimal) *Real {
	i := 0
	for i < len(left)-1 && left[i] == 0 {
		i++
	}
	left = left[i:]
	if len(left) == 0 {
		left = []int{0}
	}
	x := &Real{base: b, neg: neg, left: left, right: right, rem: rem}
	if neg && x.isZero() {
		x.neg = false
	}
	return x
}

func (x *Real) isZero() bool {
	if !x.rem.IsZero() {
		return false
	}
	for _, d := range x.left {
		if d != 0 {
			return false
		}
	}
	for _, d := range x.right {
		if d != 0 {
			return false
		}
	}
	return true
}

// check returns an OverflowError if x exceeds the integer width of its base.
func (b *Base) check(x *Real) (*Real, error) {
	if b.width > 0 && len(x.left) > b.width {
		return nil, &OverflowError{Base: b.name, Width: b.width, Digits: len(x.left)}
	}
	return x, nil
}

// New returns the Real with the given sign (-1 or 1), integer digits (most
// significant first), fractional digits and remainder. Leading integer zeros
// are dropped; the number of fractional digits is kept as given.
func (b *Base) New(sign int, integer, fraction []int, rem decimal.Decimal) (*Real, error) {
	if sign != 1 && sign != -1 {
		return nil, fmt.Errorf("radix: %w: got %d", ErrInvalidSign, sign)
	}
	if rem.Sign() < 0 || ratOf(rem).Cmp(ratOne) >= 0 {
		return nil, fmt.Errorf("radix: %w: got %s", ErrInvalidRemainder, rem)
	}
	n := len(integer)
	for i, d := range integer {
		pos := i - (n - 1)
		if r := b.BaseAt(pos); d < 0 || d >= r {
			return nil, &InvalidDigitError{Base: b.name, Pos: pos, Digit: d, Radix: r}
		}
	}
	for i, d := range fraction {
		if r := b.BaseAt(i + 1); d < 0 || d >= r {
			return nil, &InvalidDigitError{Base: b.name, Pos: i + 1, Digit: d, Radix: r}
		}
	}
	return b.check(newReal(b, sign < 0, slices.Clone(integer), slices.Clone(fraction), rem))
}

// FromDigits returns the non-negative integer with the given digits, most
// significant first.
func (b *Base) FromDigits(digits ...int) (*Real, error) {
	return b.New(1, digits, nil, decimal.Decimal{})
}

// Zero returns 0 with the given number of fractional places.
func (b *Base) Zero(places int) *Real {
	return newReal(b, false, []int{0}, make([]int, max(places, 0)), decimal.Decimal{})
}

// One returns 1 with the given number of fractional places.
func (b *Base) One(places int) *Real {
	return newReal(b, false, []int{1}, make([]int, max(places, 0)), decimal.Decimal{})
}

// FromInt64 returns v with the given number of fractional places.
func (b *Base) FromInt64(v int64, places int) (*Real, error) {
	return b.FromBigInt(big.NewInt(v), places)
}

// FromBigInt returns v with the given number of fractional places.
func (b *Base) FromBigInt(v *big.Int, places int) (*Real, error) {
	return b.FromRat(new(big.Rat).SetInt(v), places)
}

// FromRat returns q expressed with the given number of fractional places. The
// part of q that does not fit is kept as remainder.
func (b *Base) FromRat(q *big.Rat, places int) (*Real, error) {
	if places < 0 {
		return nil, fmt.Errorf("radix: %w: %d places", ErrInvalidPrecision, places)
	}
	return b.check(fromRat(b, q, places))
}

// FromDecimal returns d expressed with the given number of fractional places.
func (b *Base) FromDecimal(d decimal.Decimal, places int) (*Real, error) {
	return b.FromRat(ratOf(d), places)
}

// In returns x expressed exactly in base b with the given number of
// fractional places. Unlike mixed-base arithmetic, the conversion does not go
// through float64.
func (x *Real) In(b *Base, places int) (*Real, error) {
	return b.FromRat(x.Rat(), places)
}

// fromRat converts q to base b. Digits are truncated toward zero at places
// fractional positions and the leftover is kept as remainder.
func fromRat(b *Base, q *big.Rat, places int) *Real {
	den := new(big.Int).Set(q.Denom())
	ip, fr := new(big.Int).QuoRem(new(big.Int).Abs(q.Num()), den, new(big.Int))
	right := make([]int, places)
	var r, d big.Int
	for i := range right {
		fr.Mul(fr, r.SetInt64(int64(b.BaseAt(i+1))))
		d.QuoRem(fr, den, fr)
		right[i] = int(d.Int64())
	}
	rem, carry := remainder(fr, den)
	x := newReal(b, q.Sign() < 0, intDigits(b, ip), right, rem)
	if carry {
		x = x.bump()
	}
	return x
}

// intDigits returns the digits of n >= 0, most significant first.
func intDigits(b *Base, n *big.Int) []int {
	if n.Sign() == 0 {
		return []int{0}
	}
	var digits []int
	n = new(big.Int).Set(n)
	var r, m big.Int
	for pos := 0; n.Sign() > 0; pos-- {
		n.QuoRem(n, r.SetInt64(int64(b.BaseAt(pos))), &m)
		digits = append(digits, int(m.Int64()))
	}
	slices.Reverse(digits)
	return digits
}

// remainder returns num/den as a decimal with remScale places. If rounding to
// remScale places makes it 1, carry is true and rem is 0.
func remainder(num, den *big.Int) (rem decimal.Decimal, carry bool) {
	if num.Sign() == 0 {
		return decimal.Decimal{}, false
	}
	s := new(big.Rat).SetFrac(num, den).FloatString(remScale)
	if s[0] == '1' {
		return decimal.Decimal{}, true
	}
	s = strings.TrimRight(s, "0")
	if s == "0." {
		return decimal.Decimal{}, false
	}
	return decimal.MustParse(s), false
}

var ratOne = big.NewRat(1, 1)

// ratOf returns the exact value of d.
func ratOf(d decimal.Decimal) *big.Rat {
	q, ok := new(big.Rat).SetString(d.String())
	if !ok {
		panic("radix: cannot convert decimal " + d.String())
	}
	return q
}

// bump returns x with its magnitude increased by one unit of its last place,
// carrying through every position, and no remainder.
func (x *Real) bump() *Real {
	left, right := slices.Clone(x.left), slices.Clone(x.right)
	carry := true
	for i := len(right) - 1; i >= 0 && carry; i-- {
		right[i]++
		if carry = right[i] == x.base.BaseAt(i+1); carry {
			right[i] = 0
		}
	}
	for i := len(left) - 1; i >= 0 && carry; i-- {
		left[i]++
		if carry = left[i] == x.base.BaseAt(i-(len(left)-1)); carry {
			left[i] = 0
		}
	}
	if carry {
		left = slices.Insert(left, 0, 1)
	}
	return newReal(x.base, x.neg, left, right, decimal.Decimal{})
}

// Base returns the base of x.
func (x *Real) Base() *Base { return x.base }

// Sign returns -1, 0 or 1 depending on the sign of x.
func (x *Real) Sign() int {
	switch {
	case x.isZero():
		return 0
	case x.neg:
		return -1
	}
	return 1
}

// IsNeg reports whether x < 0.
func (x *Real) IsNeg() bool { return x.neg }

// IsZero reports whether x == 0, remainder included.
func (x *Real) IsZero() bool { return x.isZero() }

// IsInt reports whether x has no fractional part.
func (x *Real) IsInt() bool {
	if !x.rem.IsZero() {
		return false
	}
	for _, d := range x.right {
		if d != 0 {
			return false
		}
	}
	return true
}

// Significant returns the number of fractional places of x.
func (x *Real) Significant() int { return len(x.right) }

// Integer returns a copy of the integer digits of x, most significant first.
func (x *Real) Integer() []int { return slices.Clone(x.left) }

// Fraction returns a copy of the fractional digits of x.
func (x *Real) Fraction() []int { return slices.Clone(x.right) }

// Digits returns the integer digits of x followed by its fractional digits.
func (x *Real) Digits() []int { return slices.Concat(x.left, x.right) }

// Digit returns the digit of x at position pos (see Base.BaseAt). Positions
// outside of the stored digits read as 0.
func (x *Real) Digit(pos int) int {
	if pos > 0 {
		if pos <= len(x.right) {
			return x.right[pos-1]
		}
		return 0
	}
	if i := len(x.left) - 1 + pos; i >= 0 {
		return x.left[i]
	}
	return 0
}

// Remainder returns the remainder of x, in [0, 1).
func (x *Real) Remainder() decimal.Decimal { return x.rem }

// Neg returns -x.
func (x *Real) Neg() *Real {
	z := *x
	z.neg = !x.neg && !x.isZero()
	return &z
}

// Abs returns |x|.
func (x *Real) Abs() *Real {
	if !x.neg {
		return x
	}
	return x.Neg()
}

// Equal reports whether x and y have the same base, sign and digits. The
// remainder is not compared; use Cmp to compare values.
func (x *Real) Equal(y *Real) bool {
	return x.base == y.base && x.neg == y.neg && slices.Equal(x.left, y.left) && slices.Equal(x.right, y.right)
}

// numerator returns the magnitude of x without remainder, in units of its
// last place.
func (x *Real) numerator() *big.Int {
	n := new(big.Int)
	var r, d big.Int
	for i, v := range x.left {
		n.Mul(n, r.SetInt64(int64(x.base.BaseAt(i-(len(x.left)-1)))))
		n.Add(n, d.SetInt64(int64(v)))
	}
	for i, v := range x.right {
		n.Mul(n, r.SetInt64(int64(x.base.BaseAt(i+1))))
		n.Add(n, d.SetInt64(int64(v)))
	}
	return n
}

// Rat returns the exact value of x, remainder included.
func (x *Real) Rat() *big.Rat {
	den := x.base.FactorAt(len(x.right))
	q := new(big.Rat).SetFrac(x.numerator(), den)
	if !x.rem.IsZero() {
		r := ratOf(x.rem)
		r.Quo(r, new(big.Rat).SetInt(den))
		q.Add(q, r)
	}
	if x.neg {
		q.Neg(q)
	}
	return q
}

// Float64 returns the float64 value nearest to x.
func (x *Real) Float64() float64 {
	f, _ := x.Rat().Float64()
	return f
}

// Int returns the integer part of x, truncated toward zero.
func (x *Real) Int() *big.Int {
	n := new(big.Int)
	var r, d big.Int
	for i, v := range x.left {
		n.Mul(n, r.SetInt64(int64(x.base.BaseAt(i-(len(x.left)-1)))))
		n.Add(n, d.SetInt64(int64(v)))
	}
	if x.neg {
		n.Neg(n)
	}
	return n
}

// Int64 returns the integer part of x truncated toward zero and reports
// whether it fits in an int64.
func (x *Real) Int64() (int64, bool) {
	n := x.Int()
	return n.Int64(), n.IsInt64()
}

// Decimal returns the value of x as a decimal, rounded to the precision of
// decimal.Decimal.
func (x *Real) Decimal() (decimal.Decimal, error) {
	return decimal.Parse(x.Rat().FloatString(remScale))
}

// SubunitQuantity returns the signed number of whole units of position i
// contained in x: with x = 1,00 ; 02,30 in sexagesimal, SubunitQuantity(1) is
// 3602 and SubunitQuantity(-1) is 1.
func (x *Real) SubunitQuantity(i int) *big.Int {
	q := x.Rat()
	q.Abs(q)
	f := new(big.Rat).SetInt(x.base.FactorAt(i))
	if i >= 0 {
		q.Mul(q, f)
	} else {
		q.Quo(q, f)
	}
	n := new(big.Int).Quo(q.Num(), q.Denom())
	if x.neg {
		n.Neg(n)
	}
	return n
}
