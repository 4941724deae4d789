package math

import (
	"sync"

	"github.com/db47h/radix"
)

// computed values of π per base, with guard places.
var piCache = struct {
	sync.Mutex
	m map[*radix.Base]*radix.Real
}{m: make(map[*radix.Base]*radix.Real)}

// Pi returns π in base b with places fractional places, cut with the
// truncation mode of c. The most precise value computed so far in each base is
// cached.
func Pi(c *radix.Context, b *radix.Base, places int) (*radix.Real, error) {
	if places < 0 {
		return nil, radix.ErrInvalidPrecision
	}
	pp := places + guard(b, places)

	piCache.Lock()
	defer piCache.Unlock()
	if z, ok := piCache.m[b]; ok && z.Significant() >= pp {
		return cut(c, z, places), nil
	}
	z, err := pi(c, b, pp)
	if err != nil {
		return nil, err
	}
	piCache.m[b] = z
	return cut(c, z, places), nil
}

// pi computes π with the Gauss-Legendre algorithm with pp places.
func pi(c *radix.Context, b *radix.Base, pp int) (*radix.Real, error) {
	ic, err := inner(c, pp)
	if err != nil {
		return nil, err
	}
	var (
		k    = &calc{c: ic}
		one  = b.One(pp)
		two  = small(b, 2)
		four = small(b, 4)
		a    = one
		u    = k.sqrt(two)
		bn   = k.quo(one, u)
		t    = k.quo(one, four)
		p    = one
		eps  = ulp(b, pp-1)
	)
	// truncation noise may keep |a - b| above eps
	for range 64 {
		u = a                        // a_n
		a = k.quo(k.add(a, bn), two) // a_n+1
		bn = k.sqrt(k.mul(u, bn))    // b_n+1
		d := k.sub(u, a)
		t = k.sub(t, k.mul(p, k.mul(d, d)))
		if k.err != nil || k.within(a, bn, eps) {
			break
		}
		p = k.add(p, p)
	}
	s := k.add(a, bn)
	z := k.quo(k.mul(s, s), k.mul(four, t))
	if k.err != nil {
		return nil, k.err
	}
	return z, nil
}
