package sparse

import (
	"math"
	"sort"

	"github.com/aarondwi/bucketqueue/common"
	"github.com/aarondwi/bucketqueue/heap"
	"github.com/aarondwi/bucketqueue/linkedslice"
)

// FullRange accepts every int priority
var FullRange = common.Range{Min: math.MinInt, Max: math.MaxInt}

// SparseQueue is the map-of-buckets variant of priority.PriorityQueue.
//
// Buckets are created when their priority gets an item and dropped
// once drained, so the range does not need to be small, or even bounded,
// and memory follows the levels in use rather than every level ever seen.
// A min-heap of non-empty levels replaces the scan over every level,
// making Pop O(log levels in use) instead of O(levels in range).
//
// SparseQueue is NOT thread(goroutine)-safe.
type SparseQueue[T any] struct {
	buckets map[int]*linkedslice.LinkedSlice[T]
	active  *heap.Levels
	r       common.Range
	size    int
}

// New creates a SparseQueue accepting priorities in r
func New[T any](r common.Range) (*SparseQueue[T], error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &SparseQueue[T]{
		buckets: make(map[int]*linkedslice.LinkedSlice[T]),
		active:  heap.NewLevels(0),
		r:       r,
	}, nil
}

// NewUnbounded creates a SparseQueue accepting any int priority
func NewUnbounded[T any]() *SparseQueue[T] {
	q, _ := New[T](FullRange)
	return q
}

// Add puts payload at the back of the bucket for priority
func (q *SparseQueue[T]) Add(priority int, payload T) error {
	if err := q.r.Check(priority); err != nil {
		return err
	}

	b, ok := q.buckets[priority]
	if !ok {
		b = linkedslice.NewLinkedSlice[T]()
		q.buckets[priority] = b
		q.active.Push(priority)
	}
	b.Push(payload)
	q.size++
	return nil
}

// AddEntry accepts the {priority: payload} single-entry form
func (q *SparseQueue[T]) AddEntry(entry map[int]T) error {
	p, payload, err := common.SingleEntry(entry)
	if err != nil {
		return err
	}
	return q.Add(p, payload)
}

// Pop returns 1 item from the most urgent non-empty bucket, ok is false if none exists
func (q *SparseQueue[T]) Pop() (item common.Item[T], ok bool) {
	p, ok := q.active.Peek()
	if !ok {
		return item, false
	}

	b := q.buckets[p]
	payload, ok := b.Pop()
	if !ok {
		panic("Broken implementation: active level has an empty bucket")
	}
	if b.Len() == 0 {
		q.active.Pop()
		delete(q.buckets, p)
	}
	q.size--

	return common.Item[T]{Priority: p, Payload: payload}, true
}

// Len is the total number of queued items
func (q *SparseQueue[T]) Len() int {
	return q.size
}

// LenAt is the number of items queued at priority
func (q *SparseQueue[T]) LenAt(priority int) (int, error) {
	if err := q.r.Check(priority); err != nil {
		return 0, err
	}
	if b, ok := q.buckets[priority]; ok {
		return b.Len(), nil
	}
	return 0, nil
}

// Range returns the accepted priority range, FullRange when unbounded
func (q *SparseQueue[T]) Range() common.Range {
	return q.r
}

// Levels returns the non-empty priorities, most urgent first
func (q *SparseQueue[T]) Levels() []int {
	levels := make([]int, 0, len(q.buckets))
	for p := range q.buckets {
		levels = append(levels, p)
	}
	sort.Ints(levels)
	return levels
}

// Snapshot copies every non-empty bucket, keyed by priority, in pop order
func (q *SparseQueue[T]) Snapshot() map[int][]T {
	snap := make(map[int][]T, len(q.buckets))
	for p, b := range q.buckets {
		bucket := make([]T, 0, b.Len())
		b.Each(func(v T) { bucket = append(bucket, v) })
		snap[p] = bucket
	}
	return snap
}
