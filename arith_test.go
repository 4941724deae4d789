// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package radix

import (
	"errors"
	"math"
	"math/big"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/govalues/decimal"
)

func sx(s string) *Real { return Sexagesimal.MustParse(s) }

// quiet returns a non recording context with opts applied.
func quiet(t *testing.T, opts ...Option) *Context {
	t.Helper()
	c, err := DefaultContext().With(append([]Option{WithRecording(false)}, opts...)...)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

type binop func(c *Context, x, y *Real) (*Real, error)

var (
	add binop = (*Context).Add
	sub binop = (*Context).Sub
	mul binop = (*Context).Mul
	div binop = (*Context).Div
)

func TestPrecisionModes(t *testing.T) {
	s1 := sx("0;30,0,0,6")
	s2 := sx("2")
	s1t := s1.Truncate(3)
	for _, test := range []struct {
		prec Precision
		op   binop
		x, y *Real
		want string
	}{
		{Max, add, s1, s2, "02 ; 30,00,00,06"},
		{Max, mul, s1, s2, "01 ; 00,00,00,12"},
		{Max, div, s1, s2, "00 ; 15,00,00,03"},
		{Sci, add, s1t, s2, "02 ; |r0.5"},
		{Sci, mul, s1t, s2, "01 ;"},
		{Sci, div, s1t, s2, "00 ; |r0.25"},
		{3, add, s1, s2, "02 ; 30,00,00 |r0.1"},
		{3, mul, s1, s2, "01 ; 00,00,00 |r0.2"},
		{3, div, s1, s2, "00 ; 15,00,00 |r0.05"},
		{3, sub, s2, s1, "01 ; 29,59,59 |r0.9"},
	} {
		c := quiet(t, WithPrec(test.prec))
		z, err := test.op(c, test.x, test.y)
		if err != nil {
			t.Errorf("prec %s: %s op %s: %v", test.prec, test.x, test.y, err)
			continue
		}
		if got := z.String(); got != test.want {
			t.Errorf("prec %s: %s op %s = %s; want %s", test.prec, test.x, test.y, got, test.want)
		}
	}
	if got := sx("2 |r0.5").Round(0); got.CmpFloat64(3) != 0 {
		t.Errorf("Round(2 |r0.5) = %s; want 3", got)
	}
}

func TestTruncationModes(t *testing.T) {
	s1 := sx("0;30,0,0,6")
	s2 := sx("2")
	one := sx("1")
	for _, test := range []struct {
		mode TruncationMode
		op   binop
		x, y *Real
		want int64
	}{
		{ModeRound, add, s1, s2, 3},
		{ModeRound, mul, s1, s2, 1},
		{ModeRound, div, s1, s2, 0},
		{ModeRound, div, s1, one, 1},
		{ModeTrunc, add, s1, s2, 2},
		{ModeTrunc, mul, s1, s2, 1},
		{ModeTrunc, div, s1, s2, 0},
		{ModeTrunc, div, s1, one, 0},
		{ModeFloor, add, s1, s2, 2},
		{ModeFloor, mul, s1, s2, 1},
		{ModeFloor, div, s1, s2, 0},
		{ModeFloor, div, s1, one, 0},
		{ModeFloor, add, s1.Neg(), s2.Neg(), -3},
		{ModeFloor, mul, s1, s2.Neg(), -2},
		{ModeFloor, div, s1, s2.Neg(), -1},
		{ModeFloor, div, s1.Neg(), one, -1},
		{ModeCeil, add, s1, s2, 3},
		{ModeCeil, mul, s1, s2, 2},
		{ModeCeil, div, s1, s2, 1},
		{ModeCeil, div, s1, one, 1},
		{ModeCeil, add, s1.Neg(), s2.Neg(), -2},
		{ModeCeil, mul, s1, s2.Neg(), -1},
		{ModeCeil, div, s1, s2.Neg(), 0},
		{ModeCeil, div, s1.Neg(), one, 0},
	} {
		c := quiet(t, WithPrec(Sci), WithMode(test.mode))
		z, err := test.op(c, test.x, test.y)
		if err != nil {
			t.Fatal(err)
		}
		want := Must(Sexagesimal.FromInt64(test.want, 0))
		if !z.Equal(want) {
			t.Errorf("%s: %s op %s = %s; want %s", test.mode, test.x, test.y, z, want)
		}
	}
}

func TestAddDigits(t *testing.T) {
	c := quiet(t)
	a := Must(Sexagesimal.FromDigits(1, 2, 3))
	b := Must(Sexagesimal.FromDigits(0, 0, 1))
	z, err := c.Add(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if want := Must(Sexagesimal.FromDigits(1, 2, 4)); !same(z, want) {
		t.Errorf("%s + %s = %s; want %s", a, b, z, want)
	}
	x := Must(Sexagesimal.New(1, []int{1, 2, 3}, []int{30}, decimal.Decimal{}))
	if x.CmpFloat64(3723.5) != 0 {
		t.Errorf("%s != 3723.5", x)
	}
}

func TestMixedBases(t *testing.T) {
	c := quiet(t)
	x := sx("01 ; 30")
	y := HistoricalDecimal.MustParse("1 ; 50")
	z, err := c.Add(x, y)
	if err != nil {
		t.Fatal(err)
	}
	if z.Base() != Sexagesimal || z.String() != "03 ; 00" {
		t.Errorf("%s + %s = %s (%s)", x, y, z, z.Base())
	}
	// inside one mixed base, computations are exact
	d := Temporal.MustParse("1 ; 12, 30")
	e := Temporal.MustParse("0 ; 11, 45")
	s, err := c.Add(d, e)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.String(); got != "2 ; 00,15" {
		t.Errorf("%s + %s = %s; want 2 ; 00,15", d, e, got)
	}
}

func TestDivisionByZero(t *testing.T) {
	c := quiet(t)
	zero := Sexagesimal.Zero(2)
	for _, op := range []func() (*Real, error){
		func() (*Real, error) { return c.Div(sx("1"), zero) },
		func() (*Real, error) { return c.FloorDiv(sx("1"), zero) },
		func() (*Real, error) { return c.Mod(sx("1"), zero) },
		func() (*Real, error) { return c.PowInt(zero, -1) },
		func() (*Real, error) { return c.Pow(zero, sx("-0;30")) },
	} {
		_, err := op()
		var de *DomainError
		if !errors.As(err, &de) || !errors.Is(err, ErrDivisionByZero) {
			t.Errorf("error = %v; want division by zero", err)
		}
	}
	if _, _, err := c.DivMod(sx("1"), zero); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("DivMod error = %v; want division by zero", err)
	}
}

func TestFloorDivMod(t *testing.T) {
	c := quiet(t)
	for _, test := range []struct {
		x, y string
		q, m string
	}{
		{"7", "2", "03 ;", "01 ;"},
		{"7", "-2", "-04 ;", "-01 ;"},
		{"-7", "2", "-04 ;", "01 ;"},
		{"-0;30", "1", "-01 ; 00", "00 ; 30"},
		{"10;20,30", "3;7", "03 ; 00,00", "00 ; 59,30"},
		{"-1,0", "1,0", "-01 ;", "00 ;"},
	} {
		x, y := sx(test.x), sx(test.y)
		q, m, err := c.DivMod(x, y)
		if err != nil {
			t.Fatal(err)
		}
		if q.String() != test.q || m.String() != test.m {
			t.Errorf("DivMod(%s, %s) = %s, %s; want %s, %s", x, y, q, m, test.q, test.m)
		}
		if m.Sign() != 0 && m.Sign() != y.Sign() {
			t.Errorf("%s mod %s = %s: sign differs from the divisor", x, y, m)
		}
		// x == q*y + m
		back := q.Rat()
		back.Mul(back, y.Rat())
		back.Add(back, m.Rat())
		if back.Cmp(x.Rat()) != 0 {
			t.Errorf("%s * %s + %s = %s; want %s", q, y, m, back, x.Rat())
		}
	}

	// the truncation mode does not apply to the modulus
	for _, mode := range []TruncationMode{ModeTrunc, ModeRound, ModeCeil, ModeFloor} {
		mc := quiet(t, WithMode(mode))
		for _, test := range []struct {
			x, y string
			q, m string
		}{
			{"1;00", "0;00,59", "01,01 ; 00", "00 ; 00"},
			{"1;0,50", "0;0,0,7", "08,41,25 ; 00,00", "00 ; 00,00"},
			{"-1;00", "0;00,59", "-01,02 ; 00", "00 ; 00"},
		} {
			x, y := sx(test.x), sx(test.y)
			q, m, err := mc.DivMod(x, y)
			if err != nil {
				t.Fatal(err)
			}
			if q.String() != test.q || m.Truncate(m.Significant()).String() != test.m {
				t.Errorf("%s: DivMod(%s, %s) = %s, %s; want %s, %s", mode, x, y, q, m, test.q, test.m)
			}
			checkDivMod(t, x, y, q, m)
		}
	}
}

// checkDivMod checks that x == q*y + m up to the precision of the remainder of
// m, and that m has the sign of y and a smaller magnitude.
func checkDivMod(t *testing.T, x, y, q, m *Real) {
	t.Helper()
	if !q.IsInt() {
		t.Errorf("%s // %s = %s: not an integer", x, y, q)
	}
	if m.Sign() != 0 && m.Sign() != y.Sign() {
		t.Errorf("%s mod %s = %s: sign differs from the divisor", x, y, m)
	}
	if m.Abs().Cmp(y.Abs()) >= 0 {
		t.Errorf("%s mod %s = %s: not smaller than the divisor", x, y, m)
	}
	diff := q.Rat()
	diff.Mul(diff, y.Rat())
	diff.Add(diff, m.Rat())
	diff.Sub(diff, x.Rat())
	tol := new(big.Rat).Mul(ulpAt(m.base, m.Significant()), big.NewRat(1, 1e18))
	if diff.Abs(diff).Cmp(tol) > 0 {
		t.Errorf("%s * %s + %s differs from %s by %s", q, y, m, x, diff.FloatString(30))
	}
}

// ulpAt returns the value of one unit in the last of n places of b.
func ulpAt(b *Base, n int) *big.Rat {
	if n == 0 {
		return big.NewRat(1, 1)
	}
	fraction := make([]int, n)
	fraction[n-1] = 1
	return Must(b.New(1, nil, fraction, decimal.Decimal{})).Rat()
}

func TestDivModRandom(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	for _, mode := range []TruncationMode{ModeTrunc, ModeRound, ModeCeil, ModeFloor} {
		c := quiet(t, WithMode(mode))
		for _, b := range []*Base{Sexagesimal, Historical, Temporal} {
			for range 200 {
				x := randomReal(r, b, r.IntN(4))
				y := randomReal(r, b, r.IntN(4))
				if y.IsZero() {
					continue
				}
				q, m, err := c.DivMod(x, y)
				if err != nil {
					t.Fatalf("%s: DivMod(%s, %s): %v", mode, x, y, err)
				}
				checkDivMod(t, x, y, q, m)
			}
		}
	}
}

func TestDivFixedPrecision(t *testing.T) {
	// 1/7 = 0;08,34,17 repeating
	var digits []string
	for range 7 {
		digits = append(digits, "08", "34", "17")
	}
	for _, places := range []int{3, 11, 20} {
		c := quiet(t, WithPrec(Precision(places)))
		z, err := c.Div(sx("1;0"), sx("7;0"))
		if err != nil {
			t.Fatal(err)
		}
		want := "00 ; " + strings.Join(digits[:places], ",")
		if got := z.Truncate(places).String(); got != want {
			t.Errorf("prec %d: 1;0 / 7;0 = %s; want %s", places, got, want)
		}
		if z.Significant() != places || z.Remainder().IsZero() {
			t.Errorf("prec %d: 1;0 / 7;0 = %s", places, z)
		}
	}

	// a reciprocal is truncated at the operand places, then multiplied exactly
	rc := quiet(t, WithPrec(20), WithAlgorithm(OpDiv, ReciprocalAlgorithm))
	z, err := rc.Div(sx("1;0"), sx("7;0"))
	if err != nil {
		t.Fatal(err)
	}
	if z.CmpRat(big.NewRat(8, 60)) != 0 || z.Significant() != 20 {
		t.Errorf("reciprocal 1;0 / 7;0 = %s", z)
	}
}

func TestPow(t *testing.T) {
	c := quiet(t)
	for _, test := range []struct {
		prec Precision
		x    string
		e    int
		want string
	}{
		{Max, "1;30", 2, "02 ; 15"},
		{Max, "1;30", 3, "03 ; 22 |r0.5"},
		{Max, "2", 10, "17,04 ;"},
		{1, "2", -1, "00 ; 30"},
		{Max, "5;0", 0, "01 ; 00"},
		{2, "-0;30", 3, "-00 ; 07,30"},
	} {
		cc := quiet(t, WithPrec(test.prec))
		z, err := cc.PowInt(sx(test.x), test.e)
		if err != nil {
			t.Fatal(err)
		}
		if got := z.String(); got != test.want {
			t.Errorf("prec %s: %s ** %d = %s; want %s", test.prec, test.x, test.e, got, test.want)
		}
		// an integral exponent given as a Real takes the same route
		y, err := cc.Pow(sx(test.x), Must(Sexagesimal.FromInt64(int64(test.e), 1)))
		if err != nil || !same(y, z) {
			t.Errorf("Pow(%s, %d) = %v, %v; want %s", test.x, test.e, y, err, z)
		}
	}

	c1 := quiet(t, WithPrec(1))
	z, err := c1.Pow(sx("4"), sx("0;30"))
	if err != nil {
		t.Fatal(err)
	}
	if got := z.String(); got != "02 ; 00" {
		t.Errorf("4 ** 0;30 = %s", got)
	}
	if _, err := c.Pow(sx("-2"), sx("0;30")); !errors.Is(err, ErrNonIntegerPower) {
		t.Errorf("-2 ** 0;30 error = %v; want ErrNonIntegerPower", err)
	}

	// integral exponents past int64
	huge := sx("1,0,0,0,0,0,0,0,0,0,0,0")
	odd := sx("1,0,0,0,0,0,0,0,0,0,0,1")
	for _, test := range []struct {
		x    string
		y    *Real
		want string
		err  error
	}{
		{"-2", huge, "", ErrNotFinite},
		{"2", huge, "", ErrNotFinite},
		{"0;30", huge.Neg(), "", ErrNotFinite},
		{"0", huge.Neg(), "", ErrDivisionByZero},
		{"0", huge, "00 ;", nil},
		{"1", huge, "01 ;", nil},
		{"-1", huge, "01 ;", nil},
		{"-1", odd, "-01 ;", nil},
		{"-1", odd.Neg(), "-01 ;", nil},
	} {
		z, err := c.Pow(sx(test.x), test.y)
		if test.err != nil {
			var de *DomainError
			if !errors.As(err, &de) || de.Op != OpPow || !errors.Is(err, test.err) {
				t.Errorf("%s ** %s error = %v; want %v", test.x, test.y, err, test.err)
			}
			continue
		}
		if err != nil || z.String() != test.want {
			t.Errorf("%s ** %s = %v, %v; want %s", test.x, test.y, z, err, test.want)
		}
	}
}

func TestSqrt(t *testing.T) {
	c := quiet(t)
	z, err := c.Sqrt(sx("9"), -1)
	if err != nil {
		t.Fatal(err)
	}
	if !same(z, sx("3")) {
		t.Errorf("Sqrt(9) = %s", z)
	}
	if z, err = c.Sqrt(sx("12;15"), 5); err != nil || !same(z, sx("3;30")) {
		t.Errorf("Sqrt(12;15) = %v, %v; want 03 ; 30", z, err)
	}
	c3 := quiet(t, WithPrec(3))
	two := sx("2")
	if z, err = c3.Sqrt(two, -1); err != nil {
		t.Fatal(err)
	}
	if got := z.Truncate(3).String(); got != "01 ; 24,51,10" {
		t.Errorf("Sqrt(2) = %s; want 01 ; 24,51,10", got)
	}
	if math.Abs(z.Float64()-math.Sqrt2) > 1e-6 {
		t.Errorf("Sqrt(2) = %g", z.Float64())
	}
	if z, err = c.Sqrt(Sexagesimal.Zero(2), -1); err != nil || !z.IsZero() || z.Significant() != 2 {
		t.Errorf("Sqrt(0) = %v, %v", z, err)
	}
	if _, err := c.Sqrt(sx("-1"), -1); !errors.Is(err, ErrNegativeRoot) {
		t.Errorf("Sqrt(-1) error = %v; want ErrNegativeRoot", err)
	}
}

var (
	plusOne = func(op Op) Algorithm {
		return func(x, y *Real) (*Real, error) {
			y1, err := x.Base().FromFloat64Prec(y.Float64()+1, 0)
			if err != nil {
				return nil, err
			}
			return Exact(op)(x, y1)
		}
	}
	_ = mustRegisterAlgorithm("TEST_ADD", plusOne(OpAdd))
	_ = mustRegisterAlgorithm("TEST_SUB", plusOne(OpSub))
	_ = mustRegisterAlgorithm("TEST_MUL", plusOne(OpMul))
	_ = mustRegisterAlgorithm("TEST_DIV", func(x, y *Real) (*Real, error) {
		return Sexagesimal.FromInt64(5, 0)
	})
)

func mustRegisterAlgorithm(id string, fn Algorithm) bool {
	if err := RegisterAlgorithm(id, fn); err != nil {
		panic(err)
	}
	return true
}

func TestCustomAlgorithms(t *testing.T) {
	c := quiet(t,
		WithAlgorithm(OpAdd, "TEST_ADD"),
		WithAlgorithm(OpSub, "TEST_SUB"),
		WithAlgorithm(OpMul, "TEST_MUL"),
		WithAlgorithm(OpDiv, "TEST_DIV"),
	)
	one := sx("1")
	for _, test := range []struct {
		op   binop
		want float64
	}{
		{add, 3},
		{sub, -1},
		{mul, 2},
		{div, 5},
	} {
		z, err := test.op(c, one, one)
		if err != nil {
			t.Fatal(err)
		}
		if z.CmpFloat64(test.want) != 0 {
			t.Errorf("custom 1 op 1 = %s; want %g", z, test.want)
		}
	}
	if c.Algorithm(OpMul) != "TEST_MUL" || c.Algorithm(OpMod) != DefaultAlgorithm {
		t.Errorf("Algorithm() = %s, %s", c.Algorithm(OpMul), c.Algorithm(OpMod))
	}
	d, err := c.With(WithAlgorithm(OpAdd, DefaultAlgorithm))
	if err != nil {
		t.Fatal(err)
	}
	if z, _ := d.Add(one, one); z.CmpFloat64(2) != 0 {
		t.Errorf("default 1 + 1 = %s", z)
	}

	if err := RegisterAlgorithm("TEST_ADD", plusOne(OpAdd)); !errors.Is(err, ErrDuplicateAlgorithm) {
		t.Errorf("duplicate RegisterAlgorithm error = %v", err)
	}
	if _, err := c.With(WithAlgorithm(OpAdd, "NOPE")); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("WithAlgorithm(NOPE) error = %v", err)
	}
	if _, err := c.With(WithAlgorithm(OpMod, "TEST_ADD")); !errors.Is(err, ErrUnsupportedOp) {
		t.Errorf("WithAlgorithm(mod) error = %v", err)
	}
}

func TestReciprocalDivision(t *testing.T) {
	c := quiet(t, WithPrec(1))
	r := quiet(t, WithPrec(1), WithAlgorithm(OpDiv, ReciprocalAlgorithm))
	x, y := sx("1;0"), sx("7;0")
	exact, err := c.Div(x, y)
	if err != nil {
		t.Fatal(err)
	}
	recip, err := r.Div(x, y)
	if err != nil {
		t.Fatal(err)
	}
	if recip.String() != "00 ; 08" || exact.Truncate(1).String() != "00 ; 08" {
		t.Errorf("1/7 = %s (reciprocal), %s (exact)", recip, exact)
	}
	if exact.Remainder().IsZero() {
		t.Errorf("exact 1/7 has no remainder")
	}
	want := new(big.Rat).SetFrac64(8, 60)
	if recip.CmpRat(want) != 0 {
		t.Errorf("reciprocal 1/7 = %s; want 8/60", recip.Rat())
	}
}
