package math

import (
	stdmath "math"

	"github.com/db47h/radix"
)

// Exp returns e**x with the places the precision of c selects for x.
func Exp(c *radix.Context, x *radix.Real) (*radix.Real, error) {
	b := x.Base()
	n := c.Prec().Places(x, x)
	if x.IsZero() {
		return b.One(n), nil
	}
	f := x.Float64()
	if stdmath.IsInf(stdmath.Exp(f), 0) {
		return nil, &radix.DomainError{Op: OpExp, Err: radix.ErrNotFinite}
	}
	// e**x = (e**(x/2**k))**(2**k) with |x/2**k| <= 1/2
	k := 0
	if _, e := stdmath.Frexp(f); e > -1 {
		k = e + 1
	}
	pp := n + guard(b, n) + k
	ic, err := inner(c, pp)
	if err != nil {
		return nil, err
	}
	z, err := expT(ic, x.Resize(pp), k)
	if err != nil {
		return nil, err
	}
	return cut(c, z, n), nil
}

// expT computes e**x in c by the Taylor series of e**(x/2**k), squared k
// times.
func expT(c *radix.Context, x *radix.Real, k int) (*radix.Real, error) {
	var (
		m    = &calc{c: c}
		b    = x.Base()
		pp   = int(c.Prec())
		two  = small(b, 2)
		term = x
		eps  = ulp(b, pp)
	)
	for range k {
		term = m.quo(term, two)
	}
	y := term
	s := m.add(b.One(pp), y)
	for i := int64(2); m.err == nil; i++ {
		term = m.quo(m.mul(term, y), small(b, i))
		if m.err != nil || term.Abs().Cmp(eps) <= 0 {
			break
		}
		s = m.add(s, term)
	}
	for range k {
		s = m.mul(s, s)
	}
	if m.err != nil {
		return nil, m.err
	}
	return s, nil
}
