// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package susp

import (
	"code.hybscloud.com/kont"
)

// Pre-allocated erased values to eliminate heap escapes when boxing empty
// structs into any/kont.Frame during Expr-world execution.
var (
	exprReturnFrame kont.Frame  = kont.ReturnFrame{}
	exprUnit        kont.Erased = struct{}{}
)

// identityResume is the identity resume function for EffectFrame construction.
// Named function produces a static function value, consistent with kont convention.
func identityResume(v kont.Erased) kont.Erased { return v }

// exprYieldThen chains op and next through pooled frames.
func exprYieldThen[B any](op kont.Operation, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = op
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// ExprYieldThen emits v and then continues with next.
// Fuses ExprPerform(Yield[T]{Value: v}) + ExprThen.
func ExprYieldThen[T, B any](v T, next kont.Expr[B]) kont.Expr[B] {
	return exprYieldThen(Yield[T]{Value: v}, next)
}

// ExprYieldAllThen emits vs and then continues with next.
// Fuses ExprPerform(YieldAll[T]{Values: vs}) + ExprThen.
func ExprYieldAllThen[T, B any](vs []T, next kont.Expr[B]) kont.Expr[B] {
	return exprYieldThen(YieldAll[T]{Values: vs}, next)
}

func yieldBindUnwind[B any](data, _, _ kont.Erased, _ kont.Erased) (kont.Erased, kont.Frame) {
	next := data.(func() kont.Expr[B])
	result := next()
	return kont.Erased(result.Value), result.Frame
}

// ExprYieldBind emits v and then continues with the computation built by
// next, which runs only when the consumer pulls past v.
// Fuses ExprPerform(Yield[T]{Value: v}) + ExprBind.
func ExprYieldBind[T, B any](v T, next func() kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = next
	bf.Unwind = yieldBindUnwind[B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = Yield[T]{Value: v}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

// ExprYieldDone emits v and finishes the producer.
// Fuses ExprPerform(Yield[T]{Value: v}) + ExprThen + ExprReturn.
func ExprYieldDone[T any](v T) kont.Expr[struct{}] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: exprUnit, Frame: exprReturnFrame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = Yield[T]{Value: v}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[struct{}](ef)
}
