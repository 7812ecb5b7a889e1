// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package susp_test

import (
	"testing"

	"go.uber.org/goleak"
)

// Every computation goroutine must have exited once its invoker is
// finished, cancelled, or stopped.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
