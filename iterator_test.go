// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package susp_test

import (
	"slices"
	"testing"

	"code.hybscloud.com/susp"
)

func TestGenerate(t *testing.T) {
	n := 0
	calls := 0
	it := susp.Generate(func() (int, bool) {
		calls++
		if n == 3 {
			return 0, false
		}
		n++
		return n, true
	})
	if calls != 0 {
		t.Fatal("next called before the first pull")
	}
	got := collect(it)
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Fatalf("got %v, want [1 2 3]", got)
	}
	it.HasNext()
	it.Next()
	if calls != 4 {
		t.Fatalf("next called %d times, want 4", calls)
	}
}

func TestGenerateHasNextIdempotent(t *testing.T) {
	calls := 0
	it := susp.Generate(func() (string, bool) {
		calls++
		return "x", calls == 1
	})
	for range 3 {
		if !it.HasNext() {
			t.Fatal("HasNext false")
		}
	}
	if calls != 1 {
		t.Fatalf("HasNext computed %d values, want 1", calls)
	}
	if v, ok := it.Next(); !ok || v != "x" {
		t.Fatalf("got (%q, %v)", v, ok)
	}
	if it.HasNext() {
		t.Fatal("HasNext true at end")
	}
}

func TestIteratorStopDiscardsPeeked(t *testing.T) {
	it := susp.Generate(func() (int, bool) { return 1, true })
	if !it.HasNext() {
		t.Fatal("HasNext false")
	}
	it.Stop()
	if v, ok := it.Next(); ok {
		t.Fatalf("Next after Stop returned %d", v)
	}
}

func TestIteratorAllTwice(t *testing.T) {
	it := susp.Generate(func() (int, bool) { return 1, true })
	for v := range it.All() {
		if v != 1 {
			t.Fatalf("got %d", v)
		}
		break
	}
	// Breaking stopped the iterator; a second range sees nothing.
	for v := range it.All() {
		t.Fatalf("range after break yielded %d", v)
	}
}
