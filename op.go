// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package susp

import (
	"code.hybscloud.com/kont"
)

// resumedUnit is the pre-boxed resumption value for yield operations.
var resumedUnit kont.Resumed = struct{}{}

// yieldDispatcher is the structural interface for yield operations.
// DispatchYield appends the emitted values to the consumer's pending
// output and returns the value the producer resumes with.
type yieldDispatcher[T any] interface {
	DispatchYield(pending *[]T) kont.Resumed
}

// Yield is the effect operation for emitting a value of type T.
// Perform(Yield[T]{Value: v}) hands v to the consumer and suspends until
// the consumer pulls again.
type Yield[T any] struct {
	kont.Phantom[struct{}]
	Value T
}

// DispatchYield handles Yield for an effect iterator.
func (o Yield[T]) DispatchYield(pending *[]T) kont.Resumed {
	*pending = append(*pending, o.Value)
	return resumedUnit
}

// YieldAll is the effect operation for emitting several values at once.
// Perform(YieldAll[T]{Values: vs}) hands vs to the consumer in order.
// An empty YieldAll resumes immediately without a visible boundary.
type YieldAll[T any] struct {
	kont.Phantom[struct{}]
	Values []T
}

// DispatchYield handles YieldAll for an effect iterator.
func (o YieldAll[T]) DispatchYield(pending *[]T) kont.Resumed {
	*pending = append(*pending, o.Values...)
	return resumedUnit
}
