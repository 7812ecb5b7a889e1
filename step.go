// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package susp

import (
	"code.hybscloud.com/kont"
)

// Effect iterators step a kont producer one effect at a time on the
// consumer's goroutine. Yield operations are the suspension points; no
// goroutine or channel is involved, and each pull evaluates the producer
// only up to its next yield.

// errorDispatcher is the structural interface of kont's error operations.
type errorDispatcher = interface {
	DispatchError(ctx *kont.ErrorContext[error]) (kont.Resumed, bool)
}

// effectSource holds the stepping state of an effect iterator.
type effectSource[T any] struct {
	start   func() (struct{}, *kont.Suspension[struct{}])
	susp    *kont.Suspension[struct{}]
	resume  kont.Resumed
	pending []T
	head    int
}

// Effects returns an iterator over the values a Cont-world producer
// yields with [Yield] and [YieldAll]. A kont.ThrowError[error] in the
// producer ends the sequence with that error in [Iterator.Err].
// Any other effect panics.
func Effects[T any](producer kont.Eff[struct{}]) *Iterator[T] {
	s := &effectSource[T]{start: func() (struct{}, *kont.Suspension[struct{}]) {
		return kont.Step(producer)
	}}
	return newIterator(s.pull, s.discard)
}

// ExprEffects is Effects for an Expr-world producer. Producers built from
// pooled frames are single-use: evaluate each one with one iterator.
func ExprEffects[T any](producer kont.Expr[struct{}]) *Iterator[T] {
	s := &effectSource[T]{start: func() (struct{}, *kont.Suspension[struct{}]) {
		return kont.StepExpr(producer)
	}}
	return newIterator(s.pull, s.discard)
}

func (s *effectSource[T]) pull() (T, bool, error) {
	var zero T
	for {
		if s.head < len(s.pending) {
			v := s.pending[s.head]
			s.pending[s.head] = zero
			s.head++
			return v, true, nil
		}
		s.pending, s.head = s.pending[:0], 0
		more, err := s.advance()
		if !more {
			return zero, false, err
		}
	}
}

// advance evaluates the producer to its next effect and dispatches it.
// Returns false when the producer completed or threw.
func (s *effectSource[T]) advance() (bool, error) {
	var susp *kont.Suspension[struct{}]
	switch {
	case s.start != nil:
		_, susp = s.start()
		s.start = nil
	case s.susp != nil:
		_, susp = s.susp.Resume(s.resume)
	}
	s.susp = susp
	if susp == nil {
		return false, nil
	}
	switch op := susp.Op().(type) {
	case yieldDispatcher[T]:
		s.resume = op.DispatchYield(&s.pending)
		return true, nil
	case errorDispatcher:
		var ctx kont.ErrorContext[error]
		v, _ := op.DispatchError(&ctx)
		if ctx.HasErr {
			susp.Discard()
			s.susp = nil
			return false, ctx.Err
		}
		s.resume = v
		return true, nil
	}
	panic("susp: unhandled effect in Effects")
}

// discard abandons a suspended producer.
func (s *effectSource[T]) discard() {
	s.start = nil
	if s.susp != nil {
		s.susp.Discard()
		s.susp = nil
	}
}
