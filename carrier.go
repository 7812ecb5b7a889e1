// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package susp

import (
	"context"
	"sync"

	"code.hybscloud.com/atomix"
	"golang.org/x/sync/semaphore"
)

// Carrier executes the steps of suspended computations.
//
// Execute must run step synchronously, exactly once, before returning.
// It need not run every step on the same goroutine; it only has to be
// exclusive for the duration of one step. Invokers assert this contract
// and panic with [ErrCarrier] when it is broken.
type Carrier interface {
	Execute(step func())
}

// CarrierFunc adapts an ordinary function to a [Carrier].
type CarrierFunc func(step func())

// Execute calls f(step).
func (f CarrierFunc) Execute(step func()) { f(step) }

// Inline runs every step on the goroutine that calls [Invoker.Next].
var Inline Carrier = CarrierFunc(func(step func()) { step() })

// Locked returns a carrier that runs each step while holding l.
// This is the shape of a session-lock adapter: the computation observes
// the lock held for exactly as long as it runs, and never while suspended.
func Locked(l sync.Locker) Carrier {
	return CarrierFunc(func(step func()) {
		l.Lock()
		defer l.Unlock()
		step()
	})
}

// EventLoop is a carrier backed by one dedicated goroutine.
// Steps from every invoker sharing the loop run on it in submission order,
// the way a UI thread serializes access to its components.
type EventLoop struct {
	work   chan func()
	quit   chan struct{}
	done   chan struct{}
	closed atomix.Uint32
}

// NewEventLoop starts a loop goroutine. Close stops it.
func NewEventLoop() *EventLoop {
	l := &EventLoop{
		work: make(chan func()),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *EventLoop) run() {
	defer close(l.done)
	for {
		select {
		case f := <-l.work:
			f()
		case <-l.quit:
			return
		}
	}
}

// Execute runs step on the loop goroutine and waits for it.
// A panic in step is re-raised on the calling goroutine.
// Once the loop is closed, step runs directly on the calling goroutine so
// that computations being torn down can still unwind.
func (l *EventLoop) Execute(step func()) {
	if l.closed.Load() == 0 {
		var (
			p        any
			panicked bool
		)
		finished := make(chan struct{})
		f := func() {
			defer close(finished)
			defer func() {
				if r := recover(); r != nil {
					p, panicked = r, true
				}
			}()
			step()
		}
		select {
		case l.work <- f:
			<-finished
			if panicked {
				panic(p)
			}
			return
		case <-l.quit:
		}
	}
	step()
}

// Close stops the loop goroutine after the step it is running, if any.
// Close is idempotent and must not be called from a step.
func (l *EventLoop) Close() {
	if l.closed.CompareAndSwap(0, 1) {
		close(l.quit)
	}
	<-l.done
}

// Pool is a carrier that runs steps on the calling goroutines but admits
// at most n of them at a time.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool returns a carrier admitting at most n concurrent steps.
func NewPool(n int64) *Pool {
	if n < 1 {
		n = 1
	}
	return &Pool{sem: semaphore.NewWeighted(n)}
}

// Execute waits for a free slot, then runs step.
func (p *Pool) Execute(step func()) {
	if err := p.sem.Acquire(context.Background(), 1); err != nil {
		panic(err)
	}
	defer p.sem.Release(1)
	step()
}
