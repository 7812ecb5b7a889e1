// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package susp_test

import "testing"

// skipRace skips tests that count allocations.
// The race detector instruments channel and goroutine operations and
// allocates shadow state, so allocation counts are not meaningful.
func skipRace(tb testing.TB) {
	tb.Helper()
	tb.Skip("skip: allocation counts differ under the race detector")
}
