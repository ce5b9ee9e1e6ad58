package common

import (
	"fmt"
	"math"
)

// Item is what comes out of a queue: the payload
// together with the priority it was added with.
type Item[T any] struct {
	Priority int
	Payload  T
}

func (i Item[T]) String() string {
	return fmt.Sprintf("(%d, %v)", i.Priority, i.Payload)
}

// Range is the closed interval [Min, Max] of priority levels a queue accepts.
// Lower value means more urgent, so Min drains first.
type Range struct {
	Min int
	Max int
}

// DefaultRange is [0, 10]
var DefaultRange = Range{Min: 0, Max: 10}

// Validate returns ErrInvalidRange if Min > Max
func (r Range) Validate() error {
	if r.Min > r.Max {
		return ErrInvalidRange
	}
	return nil
}

// Contains reports whether p lies within [Min, Max]
func (r Range) Contains(p int) bool {
	return p >= r.Min && p <= r.Max
}

// Width is Max - Min, computed without overflowing.
// It is only meaningful for a valid range.
func (r Range) Width() uint64 {
	return uint64(r.Max) - uint64(r.Min)
}

// Levels is the number of priority levels in the range.
// ok is false when that number does not fit in an int,
// e.g. for [0, math.MaxInt] or [math.MinInt, math.MaxInt].
func (r Range) Levels() (n int, ok bool) {
	w := r.Width()
	if w >= uint64(math.MaxInt) {
		return 0, false
	}
	return int(w) + 1, true
}

// Check returns an *OutOfRangeError if p is not inside the range
func (r Range) Check(p int) error {
	if !r.Contains(p) {
		return &OutOfRangeError{Priority: p, Range: r}
	}
	return nil
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Min, r.Max)
}

// SingleEntry unpacks the legacy {priority: payload} calling convention.
//
// The map must hold exactly one key, else *MalformedItemError is returned.
func SingleEntry[T any](entry map[int]T) (int, T, error) {
	if len(entry) != 1 {
		var zero T
		return 0, zero, &MalformedItemError{Keys: len(entry)}
	}
	for p, payload := range entry {
		return p, payload, nil
	}
	panic("unreachable")
}
