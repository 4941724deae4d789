// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package radix implements arithmetic on numbers written in historical
positional notations: sexagesimal, mixed integer and fractional radices, and
calendar-like mixed bases, reproducing the way astronomers truncated or
rounded their intermediate results.

A Base describes a notation. The base of every integer position and of every
fractional position is given by a short list that repeats outward:

	radix.Sexagesimal   // 60 on both sides: 01,02,03 ; 30
	radix.Historical    // days: 2r 07s 29 ; 00 (bases 10, 12, 30 ; 60)
	radix.Temporal      // days ; hours, minutes

New notations are created with Register.

A Real is an immutable signed number in a Base: integer digits, a number of
fractional digits (its significant places), and a remainder in [0, 1)
recording in units of the last place what was cut off the last time the value
was truncated. Reals are created from digits, strings, integers, rationals,
floats or decimals:

	x, err := radix.Sexagesimal.New(1, []int{1, 2, 3}, []int{30}, decimal.Decimal{})
	y := radix.Sexagesimal.MustParse("0 ; 20")
	z, err := radix.Sexagesimal.FromFloat64Prec(3723.5, 1)

Operators are methods of a Context, which carries a precision (how many
places a result keeps), a truncation mode (what happens to the digits beyond
them), the algorithm used for each operator, and the history recorder:

	c, err := radix.DefaultContext().With(radix.WithPrec(2), radix.WithMode(radix.ModeRound))
	p, err := c.Mul(x, y)

The precision is either Max (the largest number of places of the operands,
the default), Sci (the smallest), or a fixed number of places. The default
mode, ModeTrunc, discards digits and keeps their magnitude as remainder, so
that no information is lost until the value is rounded explicitly.

The methods Add, Sub, Mul, Div, FloorDiv, Mod, Pow and Sqrt of Real use the
active context of the ambient Stack. Scopes change it temporarily:

	err := radix.WithPrecision(func(c *radix.Context) error {
		s, err := x.Add(y)
		...
	}, radix.WithPrec(1))

The previous context is restored however the function exits. Concurrent code
should pass its context explicitly, or carry it in a context.Context with
NewContext and FromContext.

Every operation appends a Record to the recorder of its context, which is
DefaultHistory unless configured otherwise. Records reference their operands
weakly.
*/
package radix
