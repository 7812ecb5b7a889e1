// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package susp

import (
	"context"
	"runtime"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// yieldBufferCapacity is the bounded capacity of a Yielder's pending
// output. A YieldAll longer than this suspends once per full buffer; the
// consumer sees the same sequence either way.
const yieldBufferCapacity = 8

// Yielder is the producer's handle on a generator. Its methods may only be
// called from the producer function, while it is being stepped.
type Yielder[T any] struct {
	ctx context.Context
	buf lfq.SPSC[T]
}

// Yield emits v and suspends the producer until the consumer wants the
// next value. Returns false once the consumer has stopped; the producer
// should then return.
func (y *Yielder[T]) Yield(v T) bool {
	return y.YieldAll(v)
}

// YieldAll emits vs in order, then suspends. An empty YieldAll does not
// suspend.
func (y *Yielder[T]) YieldAll(vs ...T) bool {
	if len(vs) == 0 {
		return y.ctx.Err() == nil
	}
	for i := range vs {
		for {
			err := y.buf.Enqueue(&vs[i])
			if err == nil {
				break
			}
			if !iox.IsWouldBlock(err) {
				panic(err)
			}
			// Full: let the consumer drain before continuing.
			if Suspend(y.ctx) != nil {
				return false
			}
		}
	}
	return Suspend(y.ctx) == nil
}

// generator pulls values out of a producer stepped by an Invoker on the
// consumer's goroutine. The buffer is written only while a step runs and
// read only between steps, so producer and consumer never touch it at once.
type generator[T any] struct {
	inv *Invoker
	y   *Yielder[T]
}

// Iter returns a lazy iterator over the values producer yields.
//
// Each pull drains one buffered value, or steps the producer once when the
// buffer is empty. The producer may be infinite; it does no work ahead of
// demand. An error returned by producer ends the sequence and is reported
// by [Iterator.Err]. A panic in producer ends it too and propagates out of
// the pull that observed it as a [*PanicError].
//
// Stop the iterator when abandoning it early. An unreachable iterator
// releases its producer when it is garbage collected.
func Iter[T any](producer func(y *Yielder[T]) error) *Iterator[T] {
	y := &Yielder[T]{}
	y.buf.Init(yieldBufferCapacity)
	inv := NewInvoker(context.Background(), Inline, func(ctx context.Context) error {
		y.ctx = ctx
		return producer(y)
	})
	g := &generator[T]{inv: inv, y: y}
	it := newIterator(g.pull, g.stop)
	runtime.AddCleanup(it, func(inv *Invoker) { inv.Cancel(ErrStopped) }, inv)
	return it
}

// pull steps the producer until a value is buffered or the sequence ends.
// A producer only suspends after enqueuing, so one step normally suffices.
func (g *generator[T]) pull() (T, bool, error) {
	for {
		if v, err := g.y.buf.Dequeue(); err == nil {
			return v, true, nil
		}
		if more, err := g.inv.Next(); !more {
			var zero T
			return zero, false, err
		}
	}
}

func (g *generator[T]) stop() {
	g.inv.Cancel(ErrStopped)
}
