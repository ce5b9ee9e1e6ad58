package linkedslice

import (
	"testing"
)

func TestInternalSlice(t *testing.T) {
	is := newInternalSlice[uint64]()

	// from empty queue
	_, err := is.pop()
	if err == nil || err != errSliceIsEmpty {
		t.Fatalf("it should return `errSliceIsEmpty`, but instead we got %v", err)
	}

	if !is.canPush() {
		t.Fatal("Should be able to push, but we can't")
	}

	for i := 0; i < 128; i++ {
		err := is.push(uint64(i))
		if err != nil {
			t.Fatalf("It should not return error, cause slots still available, but instead we got %v", err)
		}
	}
	if is.isEmpty() {
		t.Fatal("It should hold 128 items, but it says it is empty")
	}
	for i := 0; i < 128; i++ {
		v, err := is.pop()
		if err != nil {
			t.Fatalf("It should not return error, cause items still available, but instead we got %v", err)
		}
		if v != uint64(i) {
			t.Fatalf("It should be FIFO, expected %d but got %d", i, v)
		}
	}

	// after put half
	_, err = is.pop()
	if err == nil || err != errSliceIsEmpty {
		t.Fatalf("it should return `errSliceIsEmpty`, but instead we got %v", err)
	}

	if !is.canPush() {
		t.Fatal("Should be able to push, but we can't")
	}

	for i := 0; i < 128; i++ {
		err := is.push(uint64(i))
		if err != nil {
			t.Fatalf("It should not return error, cause slots still available, but instead we got %v", err)
		}
	}
	for i := 0; i < 128; i++ {
		_, err := is.pop()
		if err != nil {
			t.Fatalf("It should not return error, cause items still available, but instead we got %v", err)
		}
	}

	// after both is used up
	err = is.push(200)
	if err == nil || err != errSliceIsFull {
		t.Fatalf("it should return `errSliceIsFull`, but instead we got %v", err)
	}
	if !is.slotsUsedUp() {
		t.Fatal("All slots are consumed, but slotsUsedUp says otherwise")
	}

	is.reset()
	if !is.isEmpty() || !is.canPush() {
		t.Fatal("After reset it should be empty and pushable")
	}
}

func TestInternalSliceReleasesPoppedPayload(t *testing.T) {
	is := newInternalSlice[*int]()
	v := 1
	_ = is.push(&v)
	_, _ = is.pop()
	if is.arr[0] != nil {
		t.Fatal("popped slot should be cleared")
	}
}
