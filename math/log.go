package math

import (
	"errors"
	stdmath "math"

	"github.com/db47h/radix"
)

// ErrNegativeLog is the cause of the DomainError returned by Log for a negative
// operand.
var ErrNegativeLog = errors.New("natural logarithm of a negative number")

// Log returns the natural logarithm of x with the places the precision of c
// selects for x.
//
// Log solves e**y - x = 0 by Halley's iteration
//
//	y' = y + 2 × (x - e**y) / (x + e**y)
//
// seeded with the float64 logarithm of x. Each step triples the number of
// correct digits.
func Log(c *radix.Context, x *radix.Real) (*radix.Real, error) {
	switch x.Sign() {
	case -1:
		return nil, &radix.DomainError{Op: OpLog, Err: ErrNegativeLog}
	case 0:
		return nil, &radix.DomainError{Op: OpLog, Err: radix.ErrNotFinite}
	}
	b := x.Base()
	n := c.Prec().Places(x, x)
	pp := n + guard(b, n)
	ic, err := inner(c, pp)
	if err != nil {
		return nil, err
	}
	f := stdmath.Log(x.Float64())
	if stdmath.IsInf(f, 0) || stdmath.IsNaN(f) {
		return nil, &radix.DomainError{Op: OpLog, Err: radix.ErrNotFinite}
	}
	y, err := b.FromFloat64Prec(f, pp)
	if err != nil {
		return nil, err
	}

	var (
		k    = &calc{c: ic}
		two  = small(b, 2)
		xx   = x.Resize(pp)
		need = float64(b.FactorAt(pp).BitLen()) * stdmath.Log10(2)
	)
	for digits := 15.0; k.err == nil; digits *= 3 {
		e, err := Exp(ic, y)
		if err != nil {
			return nil, err
		}
		y = k.add(y, k.quo(k.mul(two, k.sub(xx, e)), k.add(xx, e)))
		if digits >= need {
			break
		}
	}
	if k.err != nil {
		return nil, k.err
	}
	return cut(c, y, n), nil
}
