// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package susp

import (
	"code.hybscloud.com/kont"
)

// YieldThen emits v and then continues with next.
// Fuses Perform(Yield[T]{Value: v}) + Then.
func YieldThen[T, B any](v T, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Yield[T]{Value: v}), next)
}

// YieldAllThen emits vs and then continues with next.
// Fuses Perform(YieldAll[T]{Values: vs}) + Then.
func YieldAllThen[T, B any](vs []T, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(YieldAll[T]{Values: vs}), next)
}

// YieldBind emits v and then continues with the computation built by next.
// next runs only when the consumer pulls past v, which keeps recursive
// and infinite producers lazy.
// Fuses Perform(Yield[T]{Value: v}) + Bind.
func YieldBind[T, B any](v T, next func() kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Yield[T]{Value: v}), func(struct{}) kont.Eff[B] {
		return next()
	})
}

// YieldDone emits v and finishes the producer.
// Fuses Perform(Yield[T]{Value: v}) + Then + Pure.
func YieldDone[T any](v T) kont.Eff[struct{}] {
	return kont.Then(kont.Perform(Yield[T]{Value: v}), kont.Pure(struct{}{}))
}
