package priority

import (
	"fmt"

	"github.com/aarondwi/bucketqueue/common"
	"github.com/aarondwi/bucketqueue/linkedslice"
)

// PriorityQueue is a queue in which
// always try to return the most urgent (lowest numbered) priority first,
// and items sharing a priority in the order they were added.
//
// It is not designed using heap,
// because as we bound the number of priority allowed,
// this implementation can reduce check-and-swap nature of `heap`-based implementation
// and also getting a much clearer code-base
//
// PriorityQueue is NOT thread(goroutine)-safe.
// Wrap it (see bucketqueue.Engine) when multiple goroutines need it.
type PriorityQueue[T any] struct {
	// we separate number tracking from the queues
	// so checking numberOfTasksInEachQueue just need 1 cache miss (putting into cpu L1 cache)
	numberOfTasksInEachQueue []int

	// we also create separate queues for each priority
	// so it is simple to push/pop the item.
	// queues[i] holds priority r.Min+i
	queues []*linkedslice.LinkedSlice[T]

	r    common.Range
	size int
}

// MaxLevels is the widest range NewPriorityQueue accepts,
// as every level gets its own bucket up front.
// Use sparse.SparseQueue for wider ranges.
const MaxLevels = 1 << 16

// NewPriorityQueue creates a queue accepting priorities in r
func NewPriorityQueue[T any](r common.Range) (*PriorityQueue[T], error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	n, ok := r.Levels()
	if !ok || n > MaxLevels {
		return nil, fmt.Errorf("%s: %w (at most %d)", r, common.ErrRangeTooWide, MaxLevels)
	}
	queues := make([]*linkedslice.LinkedSlice[T], n)
	for i := range queues {
		queues[i] = linkedslice.NewLinkedSlice[T]()
	}

	return &PriorityQueue[T]{
		numberOfTasksInEachQueue: make([]int, n),
		queues:                   queues,
		r:                        r,
	}, nil
}

// Add puts payload at the back of the bucket for priority.
// It returns *common.OutOfRangeError, leaving the queue untouched,
// if priority is outside the queue's range.
func (pq *PriorityQueue[T]) Add(priority int, payload T) error {
	if err := pq.r.Check(priority); err != nil {
		return err
	}

	idx := priority - pq.r.Min
	pq.queues[idx].Push(payload)
	pq.numberOfTasksInEachQueue[idx]++
	pq.size++
	return nil
}

// AddEntry accepts the {priority: payload} single-entry form
func (pq *PriorityQueue[T]) AddEntry(entry map[int]T) error {
	p, payload, err := common.SingleEntry(entry)
	if err != nil {
		return err
	}
	return pq.Add(p, payload)
}

// Pop returns 1 item from the most urgent non-empty bucket.
// ok is false when the queue is empty, which is not an error.
func (pq *PriorityQueue[T]) Pop() (item common.Item[T], ok bool) {
	if pq.size == 0 {
		return item, false
	}

	idx := -1
	for i, n := range pq.numberOfTasksInEachQueue {
		if n > 0 {
			idx = i
			break
		}
	}

	payload, ok := pq.queues[idx].Pop()
	if !ok {
		panic("Broken implementation: counter says non-empty, bucket says empty")
	}
	pq.numberOfTasksInEachQueue[idx]--
	pq.size--

	return common.Item[T]{Priority: pq.r.Min + idx, Payload: payload}, true
}

// Len is the total number of queued items
func (pq *PriorityQueue[T]) Len() int {
	return pq.size
}

// LenAt is the number of items queued at priority
func (pq *PriorityQueue[T]) LenAt(priority int) (int, error) {
	if err := pq.r.Check(priority); err != nil {
		return 0, err
	}
	return pq.numberOfTasksInEachQueue[priority-pq.r.Min], nil
}

// Range returns the accepted priority range
func (pq *PriorityQueue[T]) Range() common.Range {
	return pq.r
}

// Snapshot copies every non-empty bucket, keyed by priority, in pop order
func (pq *PriorityQueue[T]) Snapshot() map[int][]T {
	snap := make(map[int][]T)
	for i, q := range pq.queues {
		if pq.numberOfTasksInEachQueue[i] == 0 {
			continue
		}
		bucket := make([]T, 0, q.Len())
		q.Each(func(v T) { bucket = append(bucket, v) })
		snap[pq.r.Min+i] = bucket
	}
	return snap
}
