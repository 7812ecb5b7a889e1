// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package susp

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Protocol violations. These are raised as panics carrying a [*ProtocolError]
// and indicate a bug in the caller, the carrier, or the computation.
var (
	// ErrFinished reports a Next call on an invoker whose computation has finished.
	ErrFinished = errors.New("susp: computation already finished")
	// ErrConcurrentStep reports a Next call while another Next is in flight.
	ErrConcurrentStep = errors.New("susp: concurrent step on the same invoker")
	// ErrForeignSuspend reports a suspension point reached outside the
	// computation's own goroutine or outside a step.
	ErrForeignSuspend = errors.New("susp: suspend called outside the computation")
	// ErrCarrier reports a carrier that did not run the step exactly once,
	// synchronously, before returning.
	ErrCarrier = errors.New("susp: carrier did not run the step exactly once")
)

// Termination causes.
var (
	// ErrCancelled is matched by every error delivered to a computation
	// interrupted while suspended.
	ErrCancelled = errors.New("susp: computation cancelled")
	// ErrClosed is the cancellation cause when the owning executor is closed.
	// Run also returns it after Close.
	ErrClosed = errors.New("susp: executor closed")
	// ErrStopped is the cancellation cause when the consumer stops an iterator.
	ErrStopped = errors.New("susp: iterator stopped")
)

// ProtocolError is the panic value for a violated stepping protocol.
// It is never returned as an error and never retried.
type ProtocolError struct {
	Op  string
	Err error
}

func (e *ProtocolError) Error() string {
	return e.Err.Error() + " (" + e.Op + ")"
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// violation panics with a ProtocolError.
// Extracted as a noinline function so that its callers remain inlineable.
//
//go:noinline
func violation(op string, err error) {
	panic(&ProtocolError{Op: op, Err: err})
}

// PanicError wraps a value recovered from a panicking computation.
type PanicError struct {
	Value any
	Stack []byte
}

func newPanicError(v any) *PanicError {
	return &PanicError{Value: v, Stack: debug.Stack()}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("susp: computation panicked: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// cancelError is delivered at a suspension point interrupted by cancellation.
// It matches ErrCancelled and the cancellation cause.
type cancelError struct {
	cause error
}

func (e *cancelError) Error() string {
	if e.cause == nil {
		return ErrCancelled.Error()
	}
	return ErrCancelled.Error() + ": " + e.cause.Error()
}

func (e *cancelError) Is(target error) bool { return target == ErrCancelled }

func (e *cancelError) Unwrap() error { return e.cause }

// IsCancelled reports whether err is a cancellation delivered by the engine
// rather than a failure of the computation itself.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
