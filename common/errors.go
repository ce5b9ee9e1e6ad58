package common

import (
	"errors"
	"fmt"
)

// ErrPriorityOutOfRange is matched (via errors.Is) by every *OutOfRangeError.
var ErrPriorityOutOfRange = errors.New("priority is out of range")

// ErrMalformedItem is matched (via errors.Is) by every *MalformedItemError.
var ErrMalformedItem = errors.New("item can not be mapped to exactly one priority")

// ErrInvalidRange is returned when a queue is created with Min > Max
var ErrInvalidRange = errors.New("minimum priority should not be greater than maximum priority")

// ErrRangeTooWide is returned when a queue that allocates one bucket per level
// is created with more levels than it allows
var ErrRangeTooWide = errors.New("priority range has too many levels for a fixed bucket array")

// OutOfRangeError is returned by Add when the priority is outside the queue's range.
//
// It is never swallowed by the queue, the caller decides whether to
// reject, clamp, or re-route the item.
type OutOfRangeError struct {
	Priority int
	Range    Range
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf(
		"priority %d is out of range, only %s is accepted",
		e.Priority, e.Range)
}

// Is makes errors.Is(err, ErrPriorityOutOfRange) work
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrPriorityOutOfRange
}

// MalformedItemError is returned by AddEntry when the entry
// does not hold exactly one priority key.
type MalformedItemError struct {
	Keys int
}

func (e *MalformedItemError) Error() string {
	return fmt.Sprintf(
		"expected exactly one {priority: payload} pair, got %d", e.Keys)
}

// Is makes errors.Is(err, ErrMalformedItem) work
func (e *MalformedItemError) Is(target error) bool {
	return target == ErrMalformedItem
}
