// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package susp

import (
	"code.hybscloud.com/kont"
)

// Unfold builds a producer (Cont-world) that yields values generated from
// seed. step returns the value to yield, the next state, and whether to go
// on. Each step after the first runs only when the consumer pulls, so the
// producer may be infinite.
func Unfold[S, T any](seed S, step func(S) (T, S, bool)) kont.Eff[struct{}] {
	v, next, ok := step(seed)
	if !ok {
		return kont.Pure(struct{}{})
	}
	return YieldBind(v, func() kont.Eff[struct{}] {
		return Unfold(next, step)
	})
}

// ExprUnfold builds a producer (Expr-world) that yields values generated
// from seed, with the same laziness as Unfold.
func ExprUnfold[S, T any](seed S, step func(S) (T, S, bool)) kont.Expr[struct{}] {
	v, next, ok := step(seed)
	if !ok {
		return kont.ExprReturn(struct{}{})
	}
	return ExprYieldBind(v, func() kont.Expr[struct{}] {
		return ExprUnfold(next, step)
	})
}
