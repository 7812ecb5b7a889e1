// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package susp

import (
	"context"

	"code.hybscloud.com/atomix"
	"github.com/petermattis/goid"
)

// Computation is a unit of sequential work stepped by an [Invoker].
//
// ctx identifies the invoker to the suspension points ([Suspend], [Block],
// [Await]) and is cancelled when the invoker is. Anything the computation
// needs from its environment should be captured by the closure or carried
// in ctx; nothing is bound per goroutine.
type Computation func(ctx context.Context) error

// parkKind tells the driver how the computation left the carrier.
type parkKind uint8

const (
	parkSuspended parkKind = iota // runnable again right away
	parkBlocked                   // waiting off-carrier; signals ready when runnable
	parkFinished                  // returned or panicked
	parkCancelled                 // interrupted; detached from the protocol
)

// Invoker steps one computation, one suspend interval at a time.
//
// Each call to Next hands exactly one step to the carrier. The step runs
// the computation until it reaches a suspension point or returns, so from
// the caller's perspective Next is synchronous. The computation itself runs
// on a goroutine owned by the invoker, started by the first Next, and only
// ever while a step holds the carrier.
//
// An Invoker is driven by one caller at a time. Concurrent Next calls panic.
type Invoker struct {
	fn      Computation
	carrier Carrier
	serial  Serial

	ctx    context.Context
	cancel context.CancelCauseFunc

	// unpark is the rendezvous: the driver deposits one token per step and
	// the computation takes it to run. Capacity is exactly one; the slot is
	// empty while the computation runs.
	unpark chan struct{}
	// parked carries the computation's hand-back at the end of a step.
	parked chan parkKind
	// ready is signalled when a computation parked in Block can run again.
	ready chan struct{}

	step  func()
	steps atomix.Uint32
	want  atomix.Uint32
	done  atomix.Uint32
	busy  atomix.Uint32

	// Driver state. Written by Next and by the step on the carrier, which
	// the carrier contract orders before Execute returns.
	started bool
	last    parkKind

	// Computation state. gid is written before the first hand-back, err
	// before the final one; the parked channel publishes both.
	gid        int64
	err        error
	detached   bool
	offCarrier bool
}

type invokerKey struct{}

// NewInvoker returns an invoker for fn. Nothing runs until the first Next.
// Cancelling ctx interrupts the computation at its current or next
// suspension point. A nil carrier means [Inline].
func NewInvoker(ctx context.Context, carrier Carrier, fn Computation) *Invoker {
	if fn == nil {
		panic("susp: nil computation")
	}
	if carrier == nil {
		carrier = Inline
	}
	c := &Invoker{
		fn:      fn,
		carrier: carrier,
		serial:  nextSerial(),
		unpark:  make(chan struct{}, 1),
		parked:  make(chan parkKind, 1),
		ready:   make(chan struct{}, 1),
	}
	cctx, cancel := context.WithCancelCause(ctx)
	c.ctx = context.WithValue(cctx, invokerKey{}, c)
	c.cancel = cancel
	c.step = c.runStep
	return c
}

// Serial returns the serial number assigned to this invoker.
func (c *Invoker) Serial() Serial { return c.serial }

// Steps returns the number of steps the carrier has run.
func (c *Invoker) Steps() uint32 { return c.steps.Load() }

// IsDone reports whether Next has observed the computation finish or be
// cancelled. It never reverts.
func (c *Invoker) IsDone() bool { return c.done.Load() != 0 }

// Cancel interrupts the computation with the given cause. A suspended
// computation observes an error matching [ErrCancelled] and cause; a
// following Next returns that error without invoking the carrier. A step
// already running keeps the carrier until the computation reaches its next
// suspension point, where it observes the same error.
func (c *Invoker) Cancel(cause error) { c.cancel(cause) }

// Next runs the next step of the computation on the carrier.
//
// Returns (true, nil) if the computation suspended again, or false once it
// has finished: with the error it returned, a [*PanicError] if it panicked,
// or a cancellation error if the invoker was cancelled. If the computation
// is waiting in [Block], Next first waits for it, off-carrier.
//
// Panics with a [*ProtocolError] when called after returning false, when
// called concurrently, or when the carrier breaks its contract.
func (c *Invoker) Next() (bool, error) {
	if !c.busy.CompareAndSwap(0, 1) {
		violation("Next", ErrConcurrentStep)
	}
	defer c.busy.Store(0)
	if c.IsDone() {
		violation("Next", ErrFinished)
	}
	if c.ctx.Err() != nil {
		return c.interrupted()
	}
	if c.last == parkBlocked {
		select {
		case <-c.ready:
		case <-c.ctx.Done():
			return c.interrupted()
		}
	}
	if !c.started {
		c.started = true
		go c.main()
	}

	invoked := c.steps.Load()
	c.want.Store(invoked + 1)
	c.carrier.Execute(c.step)
	if c.steps.Load() != invoked+1 {
		violation("Next", ErrCarrier)
	}

	switch c.last {
	case parkFinished:
		c.done.Store(1)
		c.cancel(ErrFinished)
		return false, c.err
	case parkCancelled:
		return c.interrupted()
	}
	return true, nil
}

// runStep is the unit of work handed to the carrier.
func (c *Invoker) runStep() {
	if c.steps.Add(1) != c.want.Load() {
		violation("step", ErrCarrier)
	}
	// The slot is empty: the previous token was taken, or the computation
	// detached and is never stepped again.
	c.unpark <- struct{}{}
	// A step ends only when the computation hands back. Cancellation
	// reaches a running step at its next suspension point, which detaches.
	c.last = <-c.parked
}

// main is the computation goroutine.
func (c *Invoker) main() {
	select {
	case <-c.unpark:
	case <-c.ctx.Done():
		c.hand(parkCancelled)
		return
	}
	c.gid = goid.Get()
	defer func() {
		if r := recover(); r != nil {
			c.err = newPanicError(r)
		}
		if c.detached {
			return
		}
		c.hand(parkFinished)
		if c.offCarrier {
			// Finished inside Block: let the waiting Next take one last step
			// to observe it.
			c.signalReady()
		}
	}()
	c.err = c.fn(c.ctx)
}

// hand passes k to the step waiting on the carrier. The slot is always
// empty in protocol; a full slot means the driver stopped listening.
func (c *Invoker) hand(k parkKind) {
	select {
	case c.parked <- k:
	default:
	}
}

func (c *Invoker) signalReady() {
	select {
	case c.ready <- struct{}{}:
	default:
	}
}

// interrupted ends stepping after cancellation.
func (c *Invoker) interrupted() (bool, error) {
	c.done.Store(1)
	return false, c.cancelErr()
}

func (c *Invoker) cancelErr() error {
	return &cancelError{cause: context.Cause(c.ctx)}
}

// detach releases the computation from the stepping protocol after
// cancellation. It keeps running on its own goroutine, never on the carrier.
func (c *Invoker) detach() error {
	c.detached = true
	c.hand(parkCancelled)
	return c.cancelErr()
}
