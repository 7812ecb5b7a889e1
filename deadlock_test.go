// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package susp_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/susp"
)

// Computations waiting on each other never occupy the carrier, and Close
// releases them.
func TestDeadlockCircularAwait(t *testing.T) {
	loop := susp.NewEventLoop()
	defer loop.Close()
	e := susp.NewExecutor(loop, susp.WithErrorSink(func(error, bool) {}))

	aToB := make(chan int)
	bToA := make(chan int)
	a, err := e.Run(func(ctx context.Context) error {
		_, _, err := susp.Await(ctx, bToA)
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Run(func(ctx context.Context) error {
		_, _, err := susp.Await(ctx, aToB)
		return err
	})
	if err != nil {
		t.Fatal(err)
	}

	// The loop stays responsive while both wait.
	ran := make(chan struct{})
	go loop.Execute(func() { close(ran) })
	receive(t, ran)

	e.Close()
	for _, task := range []*susp.Task{a, b} {
		receive(t, task.Done())
		if !errors.Is(task.Err(), susp.ErrClosed) {
			t.Fatalf("task %d: %v, want %v", task.Serial(), task.Err(), susp.ErrClosed)
		}
	}
}

// A Next waiting for a blocked computation is released by Cancel from
// another goroutine.
func TestDeadlockNextWaitingForBlock(t *testing.T) {
	inv := susp.NewInvoker(context.Background(), susp.Inline, func(ctx context.Context) error {
		return susp.Block(ctx, func() { <-ctx.Done() })
	})
	if more, err := inv.Next(); !more || err != nil {
		t.Fatalf("got (%v, %v), want (true, nil)", more, err)
	}

	time.AfterFunc(10*time.Millisecond, func() { inv.Cancel(errReason) })
	more, err := inv.Next()
	if more || !errors.Is(err, errReason) {
		t.Fatalf("got (%v, %v), want cancellation by %v", more, err, errReason)
	}
}

// A producer that never yields again is not a deadlock for its consumer
// once the consumer stops.
func TestDeadlockAbandonedGenerator(t *testing.T) {
	exited := make(chan struct{})
	it := susp.Iter(func(y *susp.Yielder[int]) error {
		defer close(exited)
		y.Yield(1)
		for y.Yield(2) {
		}
		return nil
	})
	if v, _ := it.Next(); v != 1 {
		t.Fatalf("got %d, want 1", v)
	}
	it.Stop()
	receive(t, exited)
}
