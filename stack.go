// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package radix

import (
	"context"
	"sync"
)

// A Stack is a stack of contexts. The top of the stack is the active context.
// Scopes pushed on a Stack nest: leaving a scope restores the context that was
// active when it was entered, whatever happened in between.
//
// A Stack is safe for concurrent use, but nested scopes are tied to a single
// call chain: a scope entered by one goroutine and left by another unwinds the
// whole stack above it. Code running on several goroutines should carry its
// context with NewContext instead.
type Stack struct {
	mu     sync.Mutex
	root   *Context
	frames []*Context
}

// NewStack returns a stack whose bottom context is c.
func NewStack(c *Context) *Stack {
	return &Stack{root: c}
}

// Active returns the context at the top of s.
func (s *Stack) Active() *Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.top()
}

func (s *Stack) top() *Context {
	if n := len(s.frames); n > 0 {
		return s.frames[n-1]
	}
	return s.root
}

// Depth returns the number of active scopes.
func (s *Stack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

// Push activates a copy of the active context with opts applied. The
// returned function restores the context that was active before the call;
// calling it more than once has no effect.
func (s *Stack) Push(opts ...Option) (restore func(), err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.top().With(opts...)
	if err != nil {
		return nil, err
	}
	depth := len(s.frames)
	s.frames = append(s.frames, c)
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if len(s.frames) > depth {
				clear(s.frames[depth:])
				s.frames = s.frames[:depth]
			}
		})
	}, nil
}

// Do runs fn with a copy of the active context with opts applied. The
// previous context is restored when fn returns or panics.
func (s *Stack) Do(fn func(c *Context) error, opts ...Option) error {
	restore, err := s.Push(opts...)
	if err != nil {
		return err
	}
	defer restore()
	return fn(s.Active())
}

// Replace sets the bottom context of s. It fails with ErrScopeActive while a
// scope is active.
func (s *Stack) Replace(c *Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) > 0 {
		return ErrScopeActive
	}
	s.root = c
	return nil
}

var ambient = NewStack(defaultContext)

// Ambient returns the process-wide stack used by the methods of Real.
func Ambient() *Stack { return ambient }

// Active returns the active context of the ambient stack.
func Active() *Context { return ambient.Active() }

// Activate pushes a scope on the ambient stack. See Stack.Push.
func Activate(opts ...Option) (restore func(), err error) { return ambient.Push(opts...) }

// WithPrecision runs fn in a scope of the ambient stack. See Stack.Do.
//
//	err := radix.WithPrecision(func(c *radix.Context) error {
//		z, err := x.Mul(y) // computed with 2 places, rounded
//		...
//	}, radix.WithPrec(2), radix.WithMode(radix.ModeRound))
func WithPrecision(fn func(c *Context) error, opts ...Option) error {
	return ambient.Do(fn, opts...)
}

// SetContext replaces the bottom context of the ambient stack. See
// Stack.Replace.
func SetContext(c *Context) error { return ambient.Replace(c) }

type ctxKey struct{}

// NewContext returns a copy of parent carrying c.
func NewContext(parent context.Context, c *Context) context.Context {
	return context.WithValue(parent, ctxKey{}, c)
}

// FromContext returns the Context carried by ctx, or the active context of
// the ambient stack if there is none.
func FromContext(ctx context.Context) *Context {
	if c, ok := ctx.Value(ctxKey{}).(*Context); ok && c != nil {
		return c
	}
	return Active()
}
