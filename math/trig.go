package math

import (
	stdmath "math"

	"github.com/db47h/radix"
)

// Sine returns the sine of the angle x, in degrees, of a circle of the given
// radius: radius × sin(x°). The result is computed through float64 and has the
// places the precision of c selects for x.
//
// With a radius of 60, Sine gives the entries of sexagesimal sine tables.
func Sine(c *radix.Context, x, radius *radix.Real) (*radix.Real, error) {
	return chord(c, x, radius, stdmath.Sin)
}

// Cosine returns radius × cos(x°). See Sine.
func Cosine(c *radix.Context, x, radius *radix.Real) (*radix.Real, error) {
	return chord(c, x, radius, stdmath.Cos)
}

func chord(c *radix.Context, x, radius *radix.Real, fn func(float64) float64) (*radix.Real, error) {
	f := radius.Float64() * fn(x.Float64()*stdmath.Pi/180)
	n := c.Prec().Places(x, x)
	z, err := x.Base().FromFloat64Prec(f, n)
	if err != nil {
		return nil, err
	}
	return cut(c, z, n), nil
}
