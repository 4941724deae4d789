// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package radix

import (
	"fmt"
	"math/big"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// A Base describes a positional notation: the base of every integer position
// and every fractional position, and the separators printed between integer
// digits.
//
// Integer bases are listed most significant first; positions to the left of
// the declared list repeat its first entry. Fractional bases are listed from
// the first fractional place; positions beyond the list repeat its last entry.
//
// Bases are created with Register and are immutable.
type Base struct {
	name       string
	integer    []int
	fractional []int
	separators []string
	width      int
	uniform    bool
}

// A BaseOption configures a Base at registration.
type BaseOption func(b *Base) error

// WithSeparators sets the separators of the integer positions, aligned with
// the integer bases: seps[i] is printed before the digit whose base is
// integer[i]. The separator of the most significant position is only printed
// when the integer side extends beyond the declared bases.
func WithSeparators(seps ...string) BaseOption {
	return func(b *Base) error {
		if len(seps) != len(b.integer) {
			return fmt.Errorf("%w: %d separators for %d integer bases", ErrInvalidBase, len(seps), len(b.integer))
		}
		b.separators = slices.Clone(seps)
		return nil
	}
}

// WithIntegerWidth limits the number of integer digits of values in the base.
// Values needing more digits fail with an OverflowError.
func WithIntegerWidth(n int) BaseOption {
	return func(b *Base) error {
		if n <= 0 {
			return fmt.Errorf("%w: integer width %d", ErrInvalidBase, n)
		}
		b.width = n
		return nil
	}
}

func newBase(name string, integer, fractional []int, opts ...BaseOption) (*Base, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidBase)
	}
	if len(integer) == 0 || len(fractional) == 0 {
		return nil, fmt.Errorf("%w: %s: integer and fractional bases must not be empty", ErrInvalidBase, name)
	}
	b := &Base{
		name:       name,
		integer:    slices.Clone(integer),
		fractional: slices.Clone(fractional),
		uniform:    true,
	}
	for _, r := range slices.Concat(integer, fractional) {
		if r < 2 {
			return nil, fmt.Errorf("%w: %s: base %d < 2", ErrInvalidBase, name, r)
		}
		if r != integer[0] {
			b.uniform = false
		}
	}
	b.separators = make([]string, len(integer))
	for i, r := range integer {
		if r != 10 {
			b.separators[i] = ","
		}
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Name returns the registered name of b.
func (b *Base) Name() string { return b.name }

// String returns b's name.
func (b *Base) String() string { return b.name }

// TypeName returns b's name in CamelCase: "historical_decimal" becomes
// "HistoricalDecimal".
func (b *Base) TypeName() string {
	title := cases.Title(language.Und)
	var sb strings.Builder
	for _, part := range strings.Split(b.name, "_") {
		sb.WriteString(title.String(part))
	}
	return sb.String()
}

// IntegerBases returns a copy of the declared integer bases.
func (b *Base) IntegerBases() []int { return slices.Clone(b.integer) }

// FractionalBases returns a copy of the declared fractional bases.
func (b *Base) FractionalBases() []int { return slices.Clone(b.fractional) }

// Uniform reports whether every position of b has the same base.
func (b *Base) Uniform() bool { return b.uniform }

// IntegerWidth returns the maximum number of integer digits, or 0 if there is
// no limit.
func (b *Base) IntegerWidth() int { return b.width }

// index returns the index in b.integer of integer position pos <= 0.
func (b *Base) index(pos int) int {
	return max(len(b.integer)-1+pos, 0)
}

// BaseAt returns the base at position pos. Positions pos <= 0 are integer
// positions, 0 being the units. Positions pos > 0 are fractional places.
func (b *Base) BaseAt(pos int) int {
	if pos > 0 {
		return b.fractional[min(pos-1, len(b.fractional)-1)]
	}
	return b.integer[b.index(pos)]
}

// SeparatorAt returns the separator printed before the integer digit at
// position pos <= 0.
func (b *Base) SeparatorAt(pos int) string {
	if pos > 0 {
		return ","
	}
	return b.separators[b.index(pos)]
}

// FactorAt returns the value of one unit at position pos expressed in units
// of position 0 (pos < 0), or the number of units of position pos in one unit
// (pos > 0). FactorAt(0) is 1.
func (b *Base) FactorAt(pos int) *big.Int {
	f := big.NewInt(1)
	var r big.Int
	for i := 1; i <= pos; i++ {
		f.Mul(f, r.SetInt64(int64(b.BaseAt(i))))
	}
	for i := 0; i > pos; i-- {
		f.Mul(f, r.SetInt64(int64(b.BaseAt(i))))
	}
	return f
}

// digitWidth returns the number of decimal characters needed to print any
// digit of base r.
func digitWidth(r int) int {
	n := 1
	for r--; r >= 10; r /= 10 {
		n++
	}
	return n
}

// A Registry maps names to bases. A name can be looked up with any letter
// case and with or without underscores: "historical_decimal",
// "HistoricalDecimal" and "historicaldecimal" find the same base.
type Registry struct {
	mu    sync.RWMutex
	bases map[string]*Base
	order []*Base
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{bases: make(map[string]*Base)}
}

var fold = cases.Fold()

func registryKey(name string) string {
	return fold.String(strings.ReplaceAll(name, "_", ""))
}

// Register creates a base and adds it to r.
func (r *Registry) Register(name string, integer, fractional []int, opts ...BaseOption) (*Base, error) {
	b, err := newBase(name, integer, fractional, opts...)
	if err != nil {
		return nil, err
	}
	key := registryKey(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bases[key]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateBase, name)
	}
	r.bases[key] = b
	r.order = append(r.order, b)
	return b, nil
}

// Lookup returns the base registered under name.
func (r *Registry) Lookup(name string) (*Base, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if b, ok := r.bases[registryKey(name)]; ok {
		return b, nil
	}
	return nil, &UnknownBaseError{Name: name}
}

// Bases returns the registered bases in registration order.
func (r *Registry) Bases() []*Base {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

var bases = NewRegistry()

// Register creates a base and adds it to the package registry.
func Register(name string, integer, fractional []int, opts ...BaseOption) (*Base, error) {
	return bases.Register(name, integer, fractional, opts...)
}

// Lookup returns the base registered under name in the package registry.
func Lookup(name string) (*Base, error) { return bases.Lookup(name) }

// Bases returns the bases of the package registry.
func Bases() []*Base { return bases.Bases() }

func mustRegister(name string, integer, fractional []int, opts ...BaseOption) *Base {
	b, err := Register(name, integer, fractional, opts...)
	if err != nil {
		panic(err)
	}
	return b
}

// Predefined bases.
var (
	// Sexagesimal is base 60 on both sides.
	Sexagesimal = mustRegister("sexagesimal", []int{60}, []int{60})
	// Historical counts days the way Ptolemy's tables do: units in base 30,
	// then 12, then decimal positions ("2r 07s 29"); fractions in base 60.
	Historical = mustRegister("historical", []int{10, 12, 30}, []int{60}, WithSeparators("", "r ", "s "))
	// HistoricalDecimal uses decimal integers and centesimal fractions.
	HistoricalDecimal = mustRegister("historical_decimal", []int{10}, []int{100})
	// IntegerAndSexagesimal uses decimal integers and sexagesimal fractions.
	IntegerAndSexagesimal = mustRegister("integer_and_sexagesimal", []int{10}, []int{60})
	// Temporal uses decimal days, then hours and minutes.
	Temporal = mustRegister("temporal", []int{10}, []int{24, 60})
)
