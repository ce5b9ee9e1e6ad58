package linkedslice

import "errors"

var internalSliceSize = 256

// Bounded one-way slices, not a circular one.
// Designed this way to maintain FIFO semantic, even after it is full.
//
// This struct is NOT thread(goroutine)-safe.
type internalSlice[T any] struct {
	head      int
	tail      int
	sizeLimit int
	arr       []T
	next      *internalSlice[T]
}

func newInternalSlice[T any]() *internalSlice[T] {
	return &internalSlice[T]{
		sizeLimit: internalSliceSize,
		arr:       make([]T, internalSliceSize),
	}
}

// reset clears the payloads too, so a recycled chunk
// doesn't keep popped items reachable
func (is *internalSlice[T]) reset() {
	var zero T
	for i := 0; i < is.head; i++ {
		is.arr[i] = zero
	}
	is.head = 0
	is.tail = 0
	is.next = nil
}

var errSliceIsFull = errors.New("this slice is full")
var errSliceIsEmpty = errors.New("this slice is empty")

func (is *internalSlice[T]) push(v T) error {
	if !is.canPush() {
		return errSliceIsFull
	}
	is.arr[is.head] = v
	is.head++
	return nil
}

func (is *internalSlice[T]) pop() (T, error) {
	if is.isEmpty() {
		var zero T
		return zero, errSliceIsEmpty
	}
	result := is.arr[is.tail]
	var zero T
	is.arr[is.tail] = zero
	is.tail++
	return result, nil
}

func (is *internalSlice[T]) canPush() bool {
	return is.head < is.sizeLimit
}

func (is *internalSlice[T]) isEmpty() bool {
	return is.head == 0 || is.tail == is.head
}

func (is *internalSlice[T]) slotsUsedUp() bool {
	return is.tail == is.sizeLimit
}
