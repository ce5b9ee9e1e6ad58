package bucketqueue

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Engine is our prioritizing engine.
// It has 2 parts: queue and worker.
//
// The queues of this module are single-threaded,
// so Engine owns its queue and guards every Add/Pop with one mutex.
// Worker is designed as a goroutine pool,
// in which each will wait for an item in the queue, and then do the work.
type Engine struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	q        Queue[*Task]
	closed   bool
	workers  errgroup.Group
	logger   *slog.Logger
}

// ErrNumOfWorkerIsNegativeOrZero is returned when `numOfWorker` parameter is <= 0
var ErrNumOfWorkerIsNegativeOrZero = errors.New("number of workers should be positive")

// ErrCtxAlreadyCancelled is returned when task.ctx taken by worker is already done
var ErrCtxAlreadyCancelled = errors.New("context is already cancelled when it is gonna be taken")

// ErrAlreadyClosed is returned when `Submit()` is called after `Close()`,
// and by the Result of tasks still queued when `Close()` is called.
var ErrAlreadyClosed = errors.New("this engine is already closed")

// New creates our new prioritization engine.
//
// q must not be used by anything else afterwards.
func New(q Queue[*Task], numOfWorker int, opts ...Option) (*Engine, error) {
	if numOfWorker <= 0 {
		return nil, ErrNumOfWorkerIsNegativeOrZero
	}
	e := &Engine{
		q:      q,
		logger: slog.Default(),
	}
	e.notEmpty = sync.NewCond(&e.mu)
	for _, opt := range opts {
		opt(e)
	}

	for i := 0; i < numOfWorker; i++ {
		worker := i
		e.workers.Go(func() error {
			e.workLoop(worker)
			return nil
		})
	}
	e.logger.Debug("engine started", slog.Int("workers", numOfWorker))
	return e, nil
}

// next waits until a task is queued, ok is false once the engine is closed
func (e *Engine) next() (*Task, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for !e.closed && e.q.Len() == 0 {
		e.notEmpty.Wait()
	}
	if e.closed {
		return nil, false
	}

	item, ok := e.q.Pop()
	if !ok {
		panic("Broken implementation: queue reported items but Pop found none")
	}
	return item.Payload, true
}

func (e *Engine) workLoop(worker int) {
	for {
		task, ok := e.next()
		if !ok {
			e.logger.Debug("worker stopped", slog.Int("worker", worker))
			return
		}

		select {
		case <-task.ctx.Done():
			// fast path
			// already timeout/done, skip with error
			e.logger.Debug(
				"task skipped, context done",
				slog.Int("worker", worker),
				slog.Int("priority", task.priority),
			)
			task.set(nil, ErrCtxAlreadyCancelled)
		default:
			result, err := task.fn(task.ctx, task.arg)
			task.set(result, err)
		}
	}
}

// Submit creates task to be done in the worker goroutine
//
// The callee can call `.Result()` call to wait for result and error returned by fn.
// A priority the queue does not accept is returned as is (*common.OutOfRangeError).
func (e *Engine) Submit(
	ctx context.Context,
	priority int,
	fn TaskFunc,
	arg any) (*Task, error) {

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, ErrAlreadyClosed
	}

	task := newTask(ctx, priority, fn, arg)
	if err := e.q.Add(priority, task); err != nil {
		e.logger.Debug(
			"task rejected",
			slog.Int("priority", priority),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	e.notEmpty.Signal()
	return task, nil
}

// Len is the number of tasks waiting for a worker
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.q.Len()
}

// Close the instance, and all background goroutine worker.
// It waits for running tasks to finish,
// and fails the ones still queued with ErrAlreadyClosed.
//
// Subsequent request will be rejected.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.notEmpty.Broadcast()
	e.mu.Unlock()

	_ = e.workers.Wait()

	e.mu.Lock()
	defer e.mu.Unlock()

	abandoned := 0
	for {
		item, ok := e.q.Pop()
		if !ok {
			break
		}
		item.Payload.set(nil, ErrAlreadyClosed)
		abandoned++
	}
	e.logger.Info("engine closed", slog.Int("abandoned_tasks", abandoned))
}
