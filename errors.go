// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package radix

import (
	"errors"
	"fmt"
)

// Sentinel causes. DomainError wraps the first five, so that
//
//	errors.Is(err, radix.ErrDivisionByZero)
//
// works on whatever an operator returns.
var (
	ErrDivisionByZero  = errors.New("division by zero")
	ErrNegativeRoot    = errors.New("square root of negative operand")
	ErrNonIntegerPower = errors.New("negative base raised to a non-integer power")
	ErrNotFinite       = errors.New("value is not finite")
	ErrMixedShift      = errors.New("shift requires a uniform base")

	ErrInvalidSign        = errors.New("sign must be -1 or 1")
	ErrInvalidRemainder   = errors.New("remainder must be in [0, 1)")
	ErrInvalidBase        = errors.New("invalid base")
	ErrDuplicateBase      = errors.New("base already registered")
	ErrScopeActive        = errors.New("cannot replace the context inside an active scope")
	ErrUnknownAlgorithm   = errors.New("unknown algorithm")
	ErrDuplicateAlgorithm = errors.New("algorithm already registered")
	ErrUnsupportedOp      = errors.New("operator does not accept custom algorithms")
	ErrInvalidPrecision   = errors.New("invalid precision")
)

// An InvalidDigitError is returned when a digit does not fit the base at its
// position.
type InvalidDigitError struct {
	Base  string
	Pos   int // position of the digit, 0 for units
	Digit int
	Radix int // base at Pos
}

func (e *InvalidDigitError) Error() string {
	return fmt.Sprintf("radix: invalid digit %d at position %d for base %s: must be in [0, %d)", e.Digit, e.Pos, e.Base, e.Radix)
}

// An UnknownBaseError is returned by Lookup for unregistered names.
type UnknownBaseError struct {
	Name string
}

func (e *UnknownBaseError) Error() string {
	return fmt.Sprintf("radix: unknown base %q", e.Name)
}

// A ParseError records a failed conversion of a string to a Real.
type ParseError struct {
	Input string
	Token string // offending token, may be empty
	Err   error
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("radix: parsing %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("radix: parsing %q: token %q: %v", e.Input, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// A DomainError is returned by operators called on operands for which the
// result is undefined.
type DomainError struct {
	Op  Op
	Err error
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("radix: %s: %v", e.Op, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }

// An OverflowError is returned when a value needs more integer digits than
// its base allows.
type OverflowError struct {
	Base   string
	Width  int
	Digits int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("radix: %d integer digits exceed the fixed width %d of base %s", e.Digits, e.Width, e.Base)
}

// Must returns x or panics if err is not nil. It is intended for variable
// initializations such as
//
//	var third = radix.Must(radix.Sexagesimal.Parse("0;20"))
func Must(x *Real, err error) *Real {
	if err != nil {
		panic(err)
	}
	return x
}
