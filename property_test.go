// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package susp_test

import (
	"context"
	"slices"
	"testing"
	"testing/quick"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/susp"
)

// TestPropertyIterOrder proves that for any sequence of integers, however
// it is split into Yield and YieldAll calls, the consumer sees exactly
// that sequence, without loss, duplication, or reordering.
func TestPropertyIterOrder(t *testing.T) {
	property := func(payload []int, split uint8) bool {
		cut := 0
		if len(payload) > 0 {
			cut = int(split) % (len(payload) + 1)
		}
		it := susp.Iter(func(y *susp.Yielder[int]) error {
			for _, v := range payload[:cut] {
				if !y.Yield(v) {
					return nil
				}
			}
			y.YieldAll(payload[cut:]...)
			return nil
		})
		got := collect(it)
		return it.Err() == nil && slices.Equal(got, payload)
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}

// TestPropertyEffectsOrder is TestPropertyIterOrder for kont producers.
func TestPropertyEffectsOrder(t *testing.T) {
	property := func(payload []int) bool {
		producer := susp.Unfold(payload, func(s []int) (int, []int, bool) {
			if len(s) == 0 {
				return 0, nil, false
			}
			return s[0], s[1:], true
		})
		cont := collect(susp.Effects[int](producer))

		expr := collect(susp.ExprEffects[int](susp.ExprYieldAllThen(payload, kont.ExprReturn(struct{}{}))))
		return slices.Equal(cont, payload) && slices.Equal(expr, payload)
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}

// TestPropertyStepsMatchSuspensions proves that a computation suspending
// n times is stepped exactly n+1 times, one carrier call per step.
func TestPropertyStepsMatchSuspensions(t *testing.T) {
	property := func(n uint8) bool {
		cc := &countingCarrier{inner: susp.Inline}
		inv := susp.NewInvoker(context.Background(), cc, func(ctx context.Context) error {
			for range n {
				if err := susp.Suspend(ctx); err != nil {
					return err
				}
			}
			return nil
		})
		nexts := 0
		for {
			nexts++
			more, err := inv.Next()
			if err != nil {
				return false
			}
			if !more {
				break
			}
		}
		return nexts == int(n)+1 && cc.Count() == uint32(n)+1 && inv.Steps() == uint32(n)+1
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}
