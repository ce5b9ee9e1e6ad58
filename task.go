package bucketqueue

import (
	"context"
	"sync"
)

// TaskFunc is our interface, to be implemented by user
type TaskFunc func(context.Context, any) (any, error)

// Task is the main object that Engine schedules.
// It is is basically a `promise` implementation.
type Task struct {
	ctx      context.Context
	priority int
	fn       TaskFunc
	arg      any
	wg       *sync.WaitGroup
	result   any
	err      error
}

// newTask creates a bucketqueue.Task object with the given parameter
func newTask(
	ctx context.Context,
	priority int,
	fn TaskFunc,
	arg any) *Task {
	wg := &sync.WaitGroup{}
	wg.Add(1)
	return &Task{
		ctx:      ctx,
		priority: priority,
		fn:       fn,
		arg:      arg,
		wg:       wg,
	}
}

func (t *Task) set(result any, err error) {
	t.result = result
	t.err = err
	t.wg.Done()
}

// Priority is the priority the task was submitted with
func (t *Task) Priority() int {
	return t.priority
}

// Result waits until the Task object completes
func (t *Task) Result() (any, error) {
	t.wg.Wait()
	if t.err != nil {
		return nil, t.err
	}
	return t.result, nil
}
