// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package radix

import (
	"slices"
	"strings"
	"sync"
	"weak"
)

// A Record describes one operation: its operator, operands, result and the
// context it ran in. Operands are referenced weakly and may be reclaimed by
// the garbage collector; the result is kept alive by the record.
type Record struct {
	Op        Op
	Result    *Real
	Prec      Precision
	Mode      TruncationMode
	Algorithm string

	operands []weak.Pointer[Real]
	pinned   []*Real // operands built by the operator itself
}

func newRecord(c *Context, op Op, z *Real, operands []*Real) Record {
	r := Record{
		Op:        op,
		Result:    z,
		Prec:      c.prec,
		Mode:      c.mode,
		Algorithm: c.Algorithm(op),
		operands:  make([]weak.Pointer[Real], len(operands)),
	}
	for i, x := range operands {
		r.operands[i] = weak.Make(x)
	}
	return r
}

// Operands returns the operands of r. An operand that has been reclaimed is
// nil.
func (r Record) Operands() []*Real {
	xs := make([]*Real, len(r.operands))
	for i, p := range r.operands {
		xs[i] = p.Value()
	}
	return xs
}

func (r Record) String() string {
	var sb strings.Builder
	xs := r.Operands()
	str := func(x *Real) string {
		if x == nil {
			return "<reclaimed>"
		}
		return x.String()
	}
	switch len(xs) {
	case 1:
		sb.WriteString(r.Op.Symbol())
		sb.WriteString("(")
		sb.WriteString(str(xs[0]))
		sb.WriteString(")")
	case 2:
		sb.WriteString(str(xs[0]))
		sb.WriteString(" " + r.Op.Symbol() + " ")
		sb.WriteString(str(xs[1]))
	}
	sb.WriteString(" = ")
	sb.WriteString(str(r.Result))
	return sb.String()
}

// A Recorder receives the records of operations. Record is called
// synchronously by the operator and must not call back into the operator's
// context stack.
type Recorder interface {
	Record(r Record)
}

// A History is an append-only in-memory Recorder, safe for concurrent use.
type History struct {
	mu      sync.Mutex
	records []Record
}

// DefaultHistory is the recorder of the default context.
var DefaultHistory = new(History)

// Record appends r to h.
func (h *History) Record(r Record) {
	h.mu.Lock()
	h.records = append(h.records, r)
	h.mu.Unlock()
}

// Records returns a copy of the records of h, oldest first.
func (h *History) Records() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.records)
}

// Len returns the number of records in h.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

// Last returns the most recent record.
func (h *History) Last() (Record, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.records) == 0 {
		return Record{}, false
	}
	return h.records[len(h.records)-1], true
}

// Lookup returns the most recent record whose result is x.
func (h *History) Lookup(x *Real) (Record, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := len(h.records) - 1; i >= 0; i-- {
		if h.records[i].Result == x {
			return h.records[i], true
		}
	}
	return Record{}, false
}

// Clear removes every record from h.
func (h *History) Clear() {
	h.mu.Lock()
	h.records = nil
	h.mu.Unlock()
}

// MultiRecorder returns a Recorder that forwards every record to each of rs.
func MultiRecorder(rs ...Recorder) Recorder {
	return multiRecorder(slices.Clone(rs))
}

type multiRecorder []Recorder

func (m multiRecorder) Record(r Record) {
	for _, rec := range m {
		rec.Record(r)
	}
}
