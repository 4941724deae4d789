// Package math provides elementary functions over radix values.
//
// Functions take the context that selects the precision and truncation mode
// of their result. Intermediate values are computed with guard places in a
// non-recording copy of that context, using the exact algorithms.
package math

import (
	"math/big"

	"github.com/db47h/radix"
)

// Operators reported by the DomainError values of this package.
const (
	OpExp radix.Op = "exp"
	OpLog radix.Op = "log"
)

var exactAlgos = []radix.Op{radix.OpAdd, radix.OpSub, radix.OpMul, radix.OpDiv}

// inner returns a non-recording copy of c with places fixed places, the
// truncation mode and the exact algorithms.
func inner(c *radix.Context, places int) (*radix.Context, error) {
	opts := []radix.Option{
		radix.WithPrec(radix.Precision(places)),
		radix.WithMode(radix.ModeTrunc),
		radix.WithRecording(false),
	}
	for _, op := range exactAlgos {
		opts = append(opts, radix.WithAlgorithm(op, radix.DefaultAlgorithm))
	}
	return c.With(opts...)
}

// cut returns x with n places, using the truncation mode of c.
func cut(c *radix.Context, x *radix.Real, n int) *radix.Real {
	switch c.Mode() {
	case radix.ModeRound:
		return x.Round(n)
	case radix.ModeCeil:
		return x.Ceil(n)
	case radix.ModeFloor:
		return x.Floor(n)
	}
	return x.Resize(n)
}

var guardFactor = big.NewInt(10000)

// guard returns the number of places to add after places so that the guard
// places of b are worth at least four decimal digits.
func guard(b *radix.Base, places int) int {
	g := 1
	f := new(big.Int)
	for {
		f.Mul(b.FactorAt(places), guardFactor)
		if b.FactorAt(places+g).Cmp(f) >= 0 {
			return g
		}
		g++
	}
}

// ulp returns one unit of position places in base b.
func ulp(b *radix.Base, places int) *radix.Real {
	return radix.Must(b.FromRat(new(big.Rat).SetFrac(big.NewInt(1), b.FactorAt(places)), places))
}

func small(b *radix.Base, n int64) *radix.Real {
	return radix.Must(b.FromInt64(n, 0))
}

// calc chains operators of a context. After the first error, every operator
// returns nil and err keeps that error.
type calc struct {
	c   *radix.Context
	err error
}

func (k *calc) do(fn func(x, y *radix.Real) (*radix.Real, error), x, y *radix.Real) *radix.Real {
	if k.err != nil {
		return nil
	}
	z, err := fn(x, y)
	if err != nil {
		k.err = err
		return nil
	}
	return z
}

func (k *calc) add(x, y *radix.Real) *radix.Real { return k.do(k.c.Add, x, y) }
func (k *calc) sub(x, y *radix.Real) *radix.Real { return k.do(k.c.Sub, x, y) }
func (k *calc) mul(x, y *radix.Real) *radix.Real { return k.do(k.c.Mul, x, y) }
func (k *calc) quo(x, y *radix.Real) *radix.Real { return k.do(k.c.Div, x, y) }

func (k *calc) sqrt(x *radix.Real) *radix.Real {
	if k.err != nil {
		return nil
	}
	z, err := k.c.Sqrt(x, -1)
	if err != nil {
		k.err = err
		return nil
	}
	return z
}

// within reports whether |x - y| <= eps.
func (k *calc) within(x, y, eps *radix.Real) bool {
	d := k.sub(x, y)
	return k.err == nil && d.Abs().Cmp(eps) <= 0
}
