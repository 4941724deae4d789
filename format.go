// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package radix

import (
	"fmt"
	"strconv"
	"strings"
)

var _ fmt.Formatter = (*Real)(nil)

func writeDigit(sb *strings.Builder, d, width int) {
	s := strconv.Itoa(d)
	for i := len(s); i < width; i++ {
		sb.WriteByte('0')
	}
	sb.WriteString(s)
}

// String returns x in positional notation: integer digits separated by the
// separators of the base, " ; ", then comma-separated fractional digits. Each
// digit is zero-padded to the width of the largest digit of its base. A
// non-zero remainder is appended after " |r":
//
//	-01,02,31 ; 06 |r0.3
//
// The output is accepted by Parse.
func (x *Real) String() string {
	var sb strings.Builder
	if x.neg {
		sb.WriteByte('-')
	}
	n := len(x.left)
	for i, d := range x.left {
		pos := i - (n - 1)
		if i > 0 {
			sb.WriteString(x.base.SeparatorAt(pos))
		}
		writeDigit(&sb, d, digitWidth(x.base.BaseAt(pos)))
	}
	sb.WriteString(" ;")
	for i, d := range x.right {
		if i == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteByte(',')
		}
		writeDigit(&sb, d, digitWidth(x.base.BaseAt(i+1)))
	}
	if !x.rem.IsZero() {
		sb.WriteString(" |r")
		sb.WriteString(x.rem.String())
	}
	return sb.String()
}

// Format implements fmt.Formatter. The verbs 'v' and 's' print x in
// positional notation. 'f' and 'F' print its exact decimal expansion, with 6
// decimals unless a precision is given. 'e', 'E', 'g' and 'G' print its float64
// value. Width and the '-' flag are honored.
func (x *Real) Format(s fmt.State, verb rune) {
	prec, hasPrec := s.Precision()
	var str string
	switch verb {
	case 'v', 's':
		str = x.String()
	case 'f', 'F':
		if !hasPrec {
			prec = 6
		}
		str = x.Rat().FloatString(prec)
	case 'e', 'E', 'g', 'G':
		if !hasPrec {
			prec = -1
		}
		str = strconv.FormatFloat(x.Float64(), byte(verb), prec, 64)
	default:
		fmt.Fprintf(s, "%%!%c(*radix.Real=%s)", verb, x.String())
		return
	}
	if w, ok := s.Width(); ok && w > len(str) {
		pad := strings.Repeat(" ", w-len(str))
		if s.Flag('-') {
			str += pad
		} else {
			str = pad + str
		}
	}
	fmt.Fprint(s, str)
}

// MarshalText implements encoding.TextMarshaler.
func (x *Real) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The text is parsed in
// the base of x, or in Sexagesimal if x has no base, and x is overwritten
// with the result. This is the only operation that modifies a Real; it must
// not be used on a Real shared with other code.
func (x *Real) UnmarshalText(text []byte) error {
	b := x.base
	if b == nil {
		b = Sexagesimal
	}
	y, err := b.Parse(string(text))
	if err != nil {
		return err
	}
	*x = *y
	return nil
}
