package linkedslice

// LinkedSlice is a queue in which never full,
// but also don't care about priority, instead it is FIFO
//
// This is the bucket of our priority queues,
// which split items into one LinkedSlice per priority level,
// and need each level to be unbounded.
//
// There are 2 pointer needed here.
//
// 1. head maintains the base of the linked list, and pop always takes from head
//
// 2. pushPointer is a pointer pointing to which node new insert should go
//
// As items are popped, head gonna go forward, and the previous one is kept
// as a spare, so a bucket that keeps cycling does not allocate new chunks.
//
// This struct is NOT thread(goroutine)-safe, callers serialize access.
type LinkedSlice[T any] struct {
	head        *internalSlice[T]
	pushPointer *internalSlice[T]
	spare       *internalSlice[T]
	size        int
}

// NewLinkedSlice creates our LinkedSlice struct
func NewLinkedSlice[T any]() *LinkedSlice[T] {
	return &LinkedSlice[T]{}
}

func (ls *LinkedSlice[T]) newChunk() *internalSlice[T] {
	if ls.spare != nil {
		is := ls.spare
		ls.spare = nil
		return is
	}
	return newInternalSlice[T]()
}

func (ls *LinkedSlice[T]) checkHeadExist() {
	if ls.head == nil {
		ls.head = ls.newChunk()
		ls.pushPointer = ls.head
	}
}

// Push insert item at the back of the queue.
// As this implementation is unbounded, it can not fail.
func (ls *LinkedSlice[T]) Push(v T) {
	ls.checkHeadExist()
	if !ls.pushPointer.canPush() { //meaning full already
		newSlice := ls.newChunk()
		ls.pushPointer.next = newSlice
		ls.pushPointer = newSlice
	}
	if err := ls.pushPointer.push(v); err != nil {
		panic("Broken implementation: pushPointer should always have a free slot here")
	}
	ls.size++
}

// Pop removes and returns the front item, ok is false if none exists
func (ls *LinkedSlice[T]) Pop() (v T, ok bool) {
	if ls.size == 0 {
		return v, false
	}

	result, err := ls.head.pop()
	if err != nil {
		panic("Broken implementation: size is positive but head is empty")
	}
	ls.size--

	if ls.head.slotsUsedUp() {
		usedLS := ls.head
		ls.head = ls.head.next
		if ls.head == nil {
			ls.pushPointer = nil
		}
		usedLS.reset()
		ls.spare = usedLS
	}
	return result, true
}

// Len is the number of items currently queued
func (ls *LinkedSlice[T]) Len() int {
	return ls.size
}

// Each calls fn for every queued item, front to back
func (ls *LinkedSlice[T]) Each(fn func(T)) {
	for is := ls.head; is != nil; is = is.next {
		for i := is.tail; i < is.head; i++ {
			fn(is.arr[i])
		}
	}
}
