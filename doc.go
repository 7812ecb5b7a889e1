// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package susp runs ordinary sequential Go code as a series of discrete
// steps on an externally supplied carrier.
//
// A computation is written as straight-line code and marks its suspension
// points explicitly. Between two suspension points it runs exclusively on
// the carrier; while suspended it holds neither the carrier nor any
// resource the carrier guards. Steps of many computations can therefore be
// interleaved on one event loop, or under one session lock, without the
// computations being rewritten as callbacks.
//
// # Architecture
//
//   - Stepping: [Invoker] steps one computation. Each [Invoker.Next] hands exactly one step to the [Carrier] and returns when the computation suspends or finishes.
//   - Suspension: [Suspend] ends a step. [Block] and [Await] wait for an external event off the carrier. All three take the context the invoker passed to the computation.
//   - Carriers: [Inline], [Locked], [EventLoop] and [Pool]. Any type with an Execute method that runs the step synchronously, exactly once, is a carrier.
//   - Execution: [Executor] drives many computations on one carrier and routes escaping errors to an [ErrorSink]. [Executor.Close] interrupts every suspended computation.
//   - Generators: [Iter] adapts a producer function that calls [Yielder.Yield] into a lazy [Iterator]. Values are produced only on demand.
//   - Effects: [Effects] and [ExprEffects] iterate the [Yield] and [YieldAll] operations of a [code.hybscloud.com/kont] producer, with no goroutine per producer.
//
// # Protocol Violations
//
// Misuse of the stepping protocol is a bug, not a runtime condition, and
// panics with a [*ProtocolError]: stepping a finished computation, stepping
// it concurrently, suspending from a foreign goroutine, or a carrier that
// does not run its step exactly once.
//
// # Example
//
//	it := susp.Iter(func(y *susp.Yielder[int]) error {
//		a, b := 0, 1
//		for y.Yield(a) {
//			a, b = b, a+b
//		}
//		return nil
//	})
//	defer it.Stop()
//	for v := range it.All() {
//		if v > 100 {
//			break
//		}
//		fmt.Println(v)
//	}
package susp
