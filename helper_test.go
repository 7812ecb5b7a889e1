// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package susp_test

import (
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/susp"
)

var (
	errBoom   = errors.New("boom")
	errReason = errors.New("reason")
)

// countingCarrier counts Execute calls before delegating to inner.
type countingCarrier struct {
	inner susp.Carrier
	n     atomix.Uint32
}

func (c *countingCarrier) Execute(step func()) {
	c.n.Add(1)
	c.inner.Execute(step)
}

func (c *countingCarrier) Count() uint32 { return c.n.Load() }

// expectViolation runs f and fails unless it panics with a ProtocolError
// matching want.
func expectViolation(t *testing.T, want error, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		pe, ok := r.(*susp.ProtocolError)
		if !ok {
			t.Fatalf("recovered %v (%T), want *ProtocolError", r, r)
		}
		if !errors.Is(pe, want) {
			t.Fatalf("got %v, want %v", pe, want)
		}
	}()
	f()
}

// collect drains it.
func collect[T any](it *susp.Iterator[T]) []T {
	var out []T
	for v := range it.All() {
		out = append(out, v)
	}
	return out
}

// take pulls at most n values and stops it.
func take[T any](it *susp.Iterator[T], n int) []T {
	defer it.Stop()
	out := make([]T, 0, n)
	for len(out) < n {
		v, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

// receive waits for a value from ch, failing the test after a timeout.
func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}
