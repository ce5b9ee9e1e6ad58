package bucketqueue

import "github.com/aarondwi/bucketqueue/common"

// Queue is the interface for the bounded-priority queues of this module.
// Both priority.PriorityQueue and sparse.SparseQueue implement it,
// and you may implement it to create custom priority queuing mechanism.
//
// Add returns error, while Pop never does.
// This is by design, as a bad priority is the caller's bug to know about,
// but draining to empty is normal for any consumer loop.
//
// Implementations are NOT expected to be thread(goroutine)-safe,
// Engine serializes access for concurrent producers/consumers.
type Queue[T any] interface {
	// Add places payload at the back of the bucket for priority,
	// or returns *common.OutOfRangeError.
	Add(priority int, payload T) error

	// AddEntry is Add for the {priority: payload} single-entry form,
	// returning *common.MalformedItemError unless entry has exactly one key.
	AddEntry(entry map[int]T) error

	// Pop removes the oldest item of the most urgent non-empty priority.
	// ok is false iff the queue is empty.
	Pop() (item common.Item[T], ok bool)

	Len() int
}
