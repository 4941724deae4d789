// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package radix

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// An Op identifies an operator in contexts and history records.
type Op string

// Operators.
const (
	OpAdd      Op = "add"
	OpSub      Op = "sub"
	OpMul      Op = "mul"
	OpDiv      Op = "div"
	OpFloorDiv Op = "floordiv"
	OpMod      Op = "mod"
	OpPow      Op = "pow"
	OpSqrt     Op = "sqrt"
	OpShift    Op = "shift"
	OpConvert  Op = "convert"
)

func (op Op) String() string { return string(op) }

// Symbol returns the infix symbol of op, or its name if it has none.
func (op Op) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpFloorDiv:
		return "//"
	case OpMod:
		return "%"
	case OpPow:
		return "**"
	}
	return string(op)
}

// Precision selects the number of fractional places of operation results.
// Non-negative values are a fixed number of places.
type Precision int

const (
	// Sci uses the smallest number of places of the operands.
	Sci Precision = -2
	// Max uses the largest number of places of the operands.
	Max Precision = -1
)

// Places returns the number of fractional places p selects for a result of x
// and y.
func (p Precision) Places(x, y *Real) int {
	switch p {
	case Max:
		return max(len(x.right), len(y.right))
	case Sci:
		return min(len(x.right), len(y.right))
	}
	return int(p)
}

func (p Precision) String() string {
	switch p {
	case Max:
		return "max"
	case Sci:
		return "sci"
	}
	return strconv.Itoa(int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Precision) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. It accepts "max", "sci"
// or a non-negative number of places.
func (p *Precision) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	switch s {
	case "max":
		*p = Max
		return nil
	case "sci":
		*p = Sci
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("radix: %w: %q", ErrInvalidPrecision, text)
	}
	*p = Precision(n)
	return nil
}

// A TruncationMode determines how a result is cut to its number of places.
type TruncationMode int

// Truncation modes.
const (
	// ModeTrunc discards the digits beyond the last place and keeps their
	// magnitude as remainder.
	ModeTrunc TruncationMode = iota
	// ModeRound rounds half away from zero.
	ModeRound
	// ModeCeil rounds toward +∞.
	ModeCeil
	// ModeFloor rounds toward -∞.
	ModeFloor
)

var modeNames = [...]string{"trunc", "round", "ceil", "floor"}

func (m TruncationMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "TruncationMode(" + strconv.Itoa(int(m)) + ")"
	}
	return modeNames[m]
}

// MarshalText implements encoding.TextMarshaler.
func (m TruncationMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *TruncationMode) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for i, name := range modeNames {
		if s == name {
			*m = TruncationMode(i)
			return nil
		}
	}
	return fmt.Errorf("radix: invalid truncation mode %q", text)
}

// apply cuts x to n places according to m.
func (m TruncationMode) apply(x *Real, n int) *Real {
	switch m {
	case ModeRound:
		return x.Round(n)
	case ModeCeil:
		return x.Ceil(n)
	case ModeFloor:
		return x.Floor(n)
	}
	return x.Resize(n)
}

// A Context holds the precision, truncation mode, algorithms and history
// recorder used by operators. Contexts are immutable; use With to derive a
// modified copy.
type Context struct {
	prec      Precision
	mode      TruncationMode
	algos     map[Op]string
	recorder  Recorder
	recording bool
}

var defaultContext = &Context{
	prec:      Max,
	mode:      ModeTrunc,
	recorder:  DefaultHistory,
	recording: true,
}

// DefaultContext returns the context in effect when none has been activated:
// Max precision, ModeTrunc, default algorithms, recording into DefaultHistory.
func DefaultContext() *Context { return defaultContext }

// An Option modifies a Context being derived by With.
type Option func(c *Context) error

// WithPrec sets the precision.
func WithPrec(p Precision) Option {
	return func(c *Context) error {
		if p < Sci {
			return fmt.Errorf("radix: %w: %d", ErrInvalidPrecision, p)
		}
		c.prec = p
		return nil
	}
}

// WithMode sets the truncation mode.
func WithMode(m TruncationMode) Option {
	return func(c *Context) error {
		if m < ModeTrunc || m > ModeFloor {
			return fmt.Errorf("radix: invalid truncation mode %d", m)
		}
		c.mode = m
		return nil
	}
}

// WithAlgorithm selects the registered algorithm id for op, which must be one
// of OpAdd, OpSub, OpMul or OpDiv. DefaultAlgorithm restores the built-in
// algorithm.
func WithAlgorithm(op Op, id string) Option {
	return func(c *Context) error {
		switch op {
		case OpAdd, OpSub, OpMul, OpDiv:
		default:
			return fmt.Errorf("radix: %w: %s", ErrUnsupportedOp, op)
		}
		if id == DefaultAlgorithm {
			delete(c.algos, op)
			return nil
		}
		if _, err := LookupAlgorithm(id); err != nil {
			return err
		}
		c.algos[op] = id
		return nil
	}
}

// WithRecorder sets the history recorder. A nil recorder disables recording.
func WithRecorder(r Recorder) Option {
	return func(c *Context) error {
		c.recorder = r
		return nil
	}
}

// WithRecording enables or disables history recording.
func WithRecording(on bool) Option {
	return func(c *Context) error {
		c.recording = on
		return nil
	}
}

// With returns a copy of c with opts applied.
func (c *Context) With(opts ...Option) (*Context, error) {
	z := *c
	z.algos = maps.Clone(c.algos)
	if z.algos == nil {
		z.algos = make(map[Op]string)
	}
	for _, opt := range opts {
		if err := opt(&z); err != nil {
			return nil, err
		}
	}
	return &z, nil
}

// Prec returns the precision of c.
func (c *Context) Prec() Precision { return c.prec }

// Mode returns the truncation mode of c.
func (c *Context) Mode() TruncationMode { return c.mode }

// Algorithm returns the id of the algorithm c uses for op.
func (c *Context) Algorithm(op Op) string {
	if id, ok := c.algos[op]; ok {
		return id
	}
	return DefaultAlgorithm
}

// Recorder returns the recorder of c.
func (c *Context) Recorder() Recorder { return c.recorder }

// Recording reports whether c records operations.
func (c *Context) Recording() bool { return c.recording && c.recorder != nil }

func (c *Context) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "prec=%s mode=%s", c.prec, c.mode)
	for _, op := range []Op{OpAdd, OpSub, OpMul, OpDiv} {
		if id, ok := c.algos[op]; ok {
			fmt.Fprintf(&sb, " %s=%s", op, id)
		}
	}
	return sb.String()
}
