package math

import "github.com/db47h/radix"

// Sqrt returns the square root of x in c.
//
// This function is a proxy for c.Sqrt(x, -1).
func Sqrt(c *radix.Context, x *radix.Real) (*radix.Real, error) {
	return c.Sqrt(x, -1)
}

// PowInt returns x**e in c.
//
// This function is a proxy for c.PowInt(x, e).
func PowInt(c *radix.Context, x *radix.Real, e int) (*radix.Real, error) {
	return c.PowInt(x, e)
}
