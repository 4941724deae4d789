// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package radix

import (
	"fmt"
	"math/big"
	"slices"
	"sync"
)

// An Algorithm computes a binary operation on two Reals of the same base. The
// Context cuts its result to the context precision afterwards, so an
// algorithm should return as many places as it deems meaningful, with the
// leftover in the remainder.
type Algorithm func(x, y *Real) (*Real, error)

// DefaultAlgorithm is the id of the built-in algorithms.
const DefaultAlgorithm = "DEFAULT"

// ReciprocalAlgorithm is the id of the division that multiplies the dividend
// by the reciprocal of the divisor, the reciprocal being truncated to the
// places of the operands, the way reciprocal tables were used.
const ReciprocalAlgorithm = "RECIPROCAL"

var algorithms = struct {
	sync.RWMutex
	m map[string]Algorithm
}{m: map[string]Algorithm{
	ReciprocalAlgorithm: reciprocalDiv,
}}

// RegisterAlgorithm registers fn under id for use with WithAlgorithm.
func RegisterAlgorithm(id string, fn Algorithm) error {
	if fn == nil || id == "" || id == DefaultAlgorithm {
		return fmt.Errorf("radix: invalid algorithm registration %q", id)
	}
	algorithms.Lock()
	defer algorithms.Unlock()
	if _, ok := algorithms.m[id]; ok {
		return fmt.Errorf("radix: %w: %s", ErrDuplicateAlgorithm, id)
	}
	algorithms.m[id] = fn
	return nil
}

// LookupAlgorithm returns the algorithm registered under id.
func LookupAlgorithm(id string) (Algorithm, error) {
	algorithms.RLock()
	defer algorithms.RUnlock()
	if fn, ok := algorithms.m[id]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("radix: %w: %s", ErrUnknownAlgorithm, id)
}

// Algorithms returns the sorted ids of the registered algorithms.
func Algorithms() []string {
	algorithms.RLock()
	defer algorithms.RUnlock()
	ids := make([]string, 0, len(algorithms.m))
	for id := range algorithms.m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Exact returns the built-in algorithm for op, or nil if op has none. Custom
// algorithms can use it to compute on prepared operands.
func Exact(op Op) Algorithm {
	switch op {
	case OpAdd:
		return exactAdd
	case OpSub:
		return exactSub
	case OpMul:
		return exactMul
	case OpDiv:
		return exactDiv
	}
	return nil
}

// The built-in algorithms compute on exact rationals. Sums keep the places
// of the widest operand, products the sum of the operand places, quotients
// the places of the widest operand. The remainder carries the rest.

func exactAdd(x, y *Real) (*Real, error) {
	q := x.Rat()
	return fromRat(x.base, q.Add(q, y.Rat()), max(len(x.right), len(y.right))), nil
}

func exactSub(x, y *Real) (*Real, error) {
	q := x.Rat()
	return fromRat(x.base, q.Sub(q, y.Rat()), max(len(x.right), len(y.right))), nil
}

func exactMul(x, y *Real) (*Real, error) {
	q := x.Rat()
	return fromRat(x.base, q.Mul(q, y.Rat()), len(x.right)+len(y.right)), nil
}

func exactDiv(x, y *Real) (*Real, error) {
	return quo(x, y, max(len(x.right), len(y.right)))
}

// quo returns x / y computed exactly to places fractional places.
func quo(x, y *Real, places int) (*Real, error) {
	if y.isZero() {
		return nil, &DomainError{Op: OpDiv, Err: ErrDivisionByZero}
	}
	q := x.Rat()
	return fromRat(x.base, q.Quo(q, y.Rat()), places), nil
}

func reciprocalDiv(x, y *Real) (*Real, error) {
	if y.isZero() {
		return nil, &DomainError{Op: OpDiv, Err: ErrDivisionByZero}
	}
	n := max(len(x.right), len(y.right))
	r := y.Rat()
	inv := fromRat(x.base, r.Inv(r), n).Truncate(n)
	q := x.Rat()
	// the product of two finite expansions is finite
	return fromRat(x.base, q.Mul(q, inv.Rat()), len(x.right)+n), nil
}

// floorDivMod returns ⌊x/y⌋ and x - ⌊x/y⌋×y.
func floorDivMod(x, y *big.Rat) (*big.Int, *big.Rat) {
	q := new(big.Rat).Quo(x, y)
	n := new(big.Int)
	m := new(big.Int)
	n.DivMod(q.Num(), q.Denom(), m) // Euclidean; denominator > 0 so this is floor
	r := new(big.Rat).SetInt(n)
	r.Mul(r, y)
	return n, r.Sub(x, r)
}
