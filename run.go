// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package susp

import (
	"context"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// TaskState is the lifecycle state of a [Task].
// TaskFinished and TaskCancelled are terminal.
type TaskState uint32

const (
	TaskCreated TaskState = iota
	TaskStepping
	TaskFinished
	TaskCancelled
)

func (s TaskState) String() string {
	switch s {
	case TaskCreated:
		return "created"
	case TaskStepping:
		return "stepping"
	case TaskFinished:
		return "finished"
	case TaskCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Task is a computation submitted to an [Executor].
type Task struct {
	inv   *Invoker
	state atomix.Uint32
	done  chan struct{}
	err   error
}

// Serial returns the serial of the task's invoker.
func (t *Task) Serial() Serial { return t.inv.Serial() }

// Steps returns the number of steps run on the carrier so far.
func (t *Task) Steps() uint32 { return t.inv.Steps() }

// State returns the current lifecycle state.
func (t *Task) State() TaskState { return TaskState(t.state.Load()) }

// Done is closed once the task is finished or cancelled.
func (t *Task) Done() <-chan struct{} { return t.done }

// Err returns the error the task ended with. Valid after Done is closed.
func (t *Task) Err() error {
	<-t.done
	return t.err
}

// drive is the task's stepping loop. It runs on its own goroutine, so any
// number of suspended tasks costs no carrier time.
func (e *Executor) drive(t *Task) {
	defer e.live.Add(^uint32(0))
	defer close(t.done)
	t.state.Store(uint32(TaskStepping))
	for {
		more, err := t.inv.Next()
		if more {
			continue
		}
		t.err = err
		if IsCancelled(err) {
			t.state.Store(uint32(TaskCancelled))
		} else {
			t.state.Store(uint32(TaskFinished))
		}
		e.logger.Debug("susp: task done", "executor", e.name, "task", t.Serial(),
			"state", t.State(), "steps", t.Steps())
		if err != nil {
			e.sink(err, e.closing.Load() != 0)
		}
		return
	}
}

// Wait blocks until no task is live or ctx is done, backing off
// adaptively with iox.Backoff between checks. Close never waits; Wait is
// for callers that want a natural drain.
func (e *Executor) Wait(ctx context.Context) error {
	var bo iox.Backoff
	for e.live.Load() != 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		bo.Wait()
	}
	return nil
}
