// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package susp

import (
	"errors"
	"iter"
)

// Iterator is a lazy, forward-only sequence. No value is computed before
// the first HasNext or Next, and at most one value is computed ahead of the
// consumer. Iterators are not restartable and not safe for concurrent use.
type Iterator[T any] struct {
	pull   func() (T, bool, error)
	stop   func()
	item   T
	peeked bool
	done   bool
	err    error
}

func newIterator[T any](pull func() (T, bool, error), stop func()) *Iterator[T] {
	return &Iterator[T]{pull: pull, stop: stop}
}

// Generate returns an iterator that calls next for each value until next
// reports false. next is not called again after that.
func Generate[T any](next func() (T, bool)) *Iterator[T] {
	return newIterator(func() (T, bool, error) {
		v, ok := next()
		return v, ok, nil
	}, nil)
}

// HasNext reports whether Next will return a value, computing it if needed.
//
// A panic in the producer ends the sequence and is re-raised here as a
// [*PanicError]; Err reports it afterwards as well.
func (it *Iterator[T]) HasNext() bool {
	if it.peeked {
		return true
	}
	if it.done {
		return false
	}
	v, ok, err := it.pull()
	if !ok {
		it.finish(err)
		var pe *PanicError
		if errors.As(err, &pe) {
			panic(pe)
		}
		return false
	}
	it.item, it.peeked = v, true
	return true
}

// Next returns the next value, or false once the sequence has ended.
// After false, Next keeps returning false; check Err for the reason.
func (it *Iterator[T]) Next() (T, bool) {
	var zero T
	if !it.HasNext() {
		return zero, false
	}
	v := it.item
	it.item, it.peeked = zero, false
	return v, true
}

// Err returns the error that ended the sequence, if any.
func (it *Iterator[T]) Err() error { return it.err }

// Stop ends the sequence early and releases its producer.
// Stop is idempotent.
func (it *Iterator[T]) Stop() {
	if !it.done {
		it.finish(nil)
	}
}

// All adapts the iterator to a range-over-func sequence.
// Breaking out of the loop stops the iterator.
func (it *Iterator[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := it.Next()
			if !ok {
				return
			}
			if !yield(v) {
				it.Stop()
				return
			}
		}
	}
}

func (it *Iterator[T]) finish(err error) {
	var zero T
	it.done, it.err = true, err
	it.item, it.peeked = zero, false
	if it.stop != nil {
		it.stop()
		it.stop = nil
	}
}
