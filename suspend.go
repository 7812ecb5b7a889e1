// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package susp

import (
	"context"

	"github.com/petermattis/goid"
)

// Suspension points. A computation may leave the carrier only through
// these; ctx must be the context its invoker passed in (or derived from it).

// current returns the invoker owning ctx, panicking unless the caller is
// that invoker's computation goroutine running on the carrier.
func current(ctx context.Context, op string) *Invoker {
	c, _ := ctx.Value(invokerKey{}).(*Invoker)
	if c == nil || c.gid != goid.Get() || c.offCarrier {
		violation(op, ErrForeignSuspend)
	}
	return c
}

// Suspend ends the current step and blocks until the next call to
// [Invoker.Next] resumes the computation.
//
// Returns nil on resumption. Returns an error matching [ErrCancelled] if the
// invoker was cancelled; from then on the computation is detached from its
// carrier and should return.
func Suspend(ctx context.Context) error {
	c := current(ctx, "Suspend")
	if c.detached {
		return c.cancelErr()
	}
	if c.ctx.Err() != nil {
		return c.detach()
	}
	c.hand(parkSuspended)
	return c.resume()
}

// Block ends the current step, runs fn off the carrier, and resumes on the
// carrier at the next step after fn returns.
//
// Use Block around any wait for an external event: the carrier is free for
// other work while fn blocks, and the next [Invoker.Next] does not occupy the
// carrier until fn has returned. fn should observe ctx so that cancellation
// can interrupt it.
func Block(ctx context.Context, fn func()) error {
	c := current(ctx, "Block")
	if c.detached {
		return c.cancelErr()
	}
	if c.ctx.Err() != nil {
		return c.detach()
	}
	c.hand(parkBlocked)
	c.offCarrier = true
	fn()
	c.offCarrier = false
	if c.ctx.Err() != nil {
		return c.detach()
	}
	c.signalReady()
	return c.resume()
}

// Await receives from ch off the carrier and resumes on the carrier with the
// result. ok is false if ch was closed.
func Await[T any](ctx context.Context, ch <-chan T) (v T, ok bool, err error) {
	err = Block(ctx, func() {
		select {
		case v, ok = <-ch:
		case <-ctx.Done():
		}
	})
	return v, ok, err
}

// resume waits for the next step's token.
func (c *Invoker) resume() error {
	select {
	case <-c.unpark:
		return nil
	case <-c.ctx.Done():
		return c.detach()
	}
}
