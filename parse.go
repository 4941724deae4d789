// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package radix

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/govalues/decimal"
	"golang.org/x/text/width"
)

var (
	errEmpty      = errors.New("empty input")
	errSeparators = errors.New("more than one ';'")
	errEmptyToken = errors.New("missing digit")
	errSyntax     = errors.New("invalid digit syntax")
	errRemainder  = errors.New("invalid remainder")
)

// Parse converts s in positional notation to a Real in base b. The accepted
// syntax is the one of Real.String, with optional spaces around digits, an
// optional leading '+' or '-', and an optional " |r<decimal>" remainder:
//
//	1, 12; 4, 25
//	-0;1
//	2r 7s 29 ; 0
//	03 ; 30 |r0.25
//
// Full-width characters are folded to their ASCII equivalents first. Parse
// returns a *ParseError for malformed input and an *InvalidDigitError for a
// digit out of the range of its position.
func (b *Base) Parse(s string) (*Real, error) {
	in := s
	s = strings.ToLower(strings.TrimSpace(width.Narrow.String(s)))
	if s == "" {
		return nil, &ParseError{Input: in, Err: errEmpty}
	}

	var rem decimal.Decimal
	if i := strings.Index(s, "|r"); i >= 0 {
		tok := strings.TrimSpace(s[i+2:])
		r, err := decimal.Parse(tok)
		if err != nil {
			return nil, &ParseError{Input: in, Token: tok, Err: errRemainder}
		}
		rem = r
		s = strings.TrimSpace(s[:i])
	}

	sign := 1
	switch {
	case strings.HasPrefix(s, "-"):
		sign = -1
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if s == "" {
		return nil, &ParseError{Input: in, Err: errEmpty}
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ";")
	if strings.Contains(fracPart, ";") {
		return nil, &ParseError{Input: in, Err: errSeparators}
	}
	var fraction []int
	if fracPart = strings.TrimSpace(fracPart); hasFrac && fracPart != "" {
		for tok := range strings.SplitSeq(fracPart, ",") {
			d, err := parseDigit(in, tok)
			if err != nil {
				return nil, err
			}
			fraction = append(fraction, d)
		}
	}
	integer, err := b.parseInteger(in, strings.TrimSpace(intPart))
	if err != nil {
		return nil, err
	}
	return b.New(sign, integer, fraction, rem)
}

// MustParse is like Parse but panics on error.
func (b *Base) MustParse(s string) *Real {
	return Must(b.Parse(s))
}

// parseInteger splits s from the units leftward, using at each position the
// separator that precedes its digit. An empty separator denotes a single
// character digit.
func (b *Base) parseInteger(in, s string) ([]int, error) {
	if s == "" {
		return []int{0}, nil
	}
	var digits []int
	for pos := 0; s != ""; pos-- {
		var tok string
		sep := strings.TrimSpace(b.SeparatorAt(pos))
		if sep == "" {
			_, n := utf8.DecodeLastRuneInString(s)
			tok, s = s[len(s)-n:], s[:len(s)-n]
		} else if i := strings.LastIndex(s, sep); i >= 0 {
			tok, s = s[i+len(sep):], s[:i]
		} else {
			tok, s = s, ""
		}
		s = strings.TrimSpace(s)
		d, err := parseDigit(in, tok)
		if err != nil {
			return nil, err
		}
		digits = append(digits, d)
	}
	slices.Reverse(digits)
	return digits, nil
}

func parseDigit(in, tok string) (int, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0, &ParseError{Input: in, Err: errEmptyToken}
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return 0, &ParseError{Input: in, Token: tok, Err: errSyntax}
		}
	}
	d, err := strconv.Atoi(tok)
	if err != nil {
		return 0, &ParseError{Input: in, Token: tok, Err: errSyntax}
	}
	return d, nil
}
