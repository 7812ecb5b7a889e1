// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package susp

import (
	"context"
	"log/slog"

	"code.hybscloud.com/atomix"
)

// ErrorSink receives an error that escaped a computation run by an
// [Executor]. closing reports whether the executor was being closed, so
// that interruptions caused by Close can be told apart from failures.
type ErrorSink func(err error, closing bool)

// Option configures an [Executor].
type Option func(*Executor)

// WithName sets the name reported in diagnostics.
func WithName(name string) Option {
	return func(e *Executor) { e.name = name }
}

// WithErrorSink replaces the default sink, which logs.
func WithErrorSink(sink ErrorSink) Option {
	return func(e *Executor) { e.sink = sink }
}

// WithLogger sets the logger used by the default sink and by Close.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// Executor runs computations as series of steps on a carrier.
//
// Each computation gets its own [Invoker] and a goroutine that drives it;
// steps of all computations are submitted to the one carrier. While a
// computation is suspended, in [Suspend], [Block] or [Await], the carrier is
// free to run other steps.
type Executor struct {
	carrier Carrier
	name    string
	sink    ErrorSink
	logger  *slog.Logger

	ctx     context.Context
	cancel  context.CancelCauseFunc
	closing atomix.Uint32
	live    atomix.Uint32
}

// NewExecutor returns an executor submitting steps to carrier.
// A nil carrier means [Inline].
func NewExecutor(carrier Carrier, opts ...Option) *Executor {
	if carrier == nil {
		carrier = Inline
	}
	e := &Executor{carrier: carrier, name: "susp"}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.sink == nil {
		e.sink = e.logError
	}
	e.ctx, e.cancel = context.WithCancelCause(context.Background())
	return e
}

// Name returns the executor's diagnostic name.
func (e *Executor) Name() string { return e.name }

// Len returns the number of tasks not yet finished or cancelled.
func (e *Executor) Len() int { return int(e.live.Load()) }

// Run starts stepping fn and returns without waiting for any step.
// Errors escaping fn go to the error sink, not to the caller.
// Returns [ErrClosed] after Close.
func (e *Executor) Run(fn Computation) (*Task, error) {
	if e.closing.Load() != 0 {
		return nil, ErrClosed
	}
	t := &Task{
		inv:  NewInvoker(e.ctx, e.carrier, fn),
		done: make(chan struct{}),
	}
	e.live.Add(1)
	go e.drive(t)
	return t, nil
}

// Close interrupts every task immediately and does not wait for them.
// Suspended computations observe an error matching [ErrCancelled] and
// [ErrClosed], and are never stepped on the carrier again. A computation in
// the middle of a step finishes that step on the carrier and observes the
// same error at its next suspension point.
// Close is idempotent.
func (e *Executor) Close() error {
	if e.closing.CompareAndSwap(0, 1) {
		e.cancel(ErrClosed)
		e.logger.Debug("susp: executor closed", "executor", e.name, "live", e.Len())
	}
	return nil
}

// logError is the default error sink.
func (e *Executor) logError(err error, closing bool) {
	if closing && IsCancelled(err) {
		e.logger.Info("susp: computation interrupted while closing", "executor", e.name, "err", err)
		return
	}
	e.logger.Error("susp: computation failed", "executor", e.name, "closing", closing, "err", err)
}
