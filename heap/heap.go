package heap

// Levels is a min-heap of priority levels.
//
// The sparse queue keeps one entry per non-empty bucket here,
// so finding the most urgent bucket does not need a scan over every level.
// A level must not be pushed while it is already in the heap.
//
// This struct is NOT thread(goroutine)-safe.
type Levels struct {
	arr []int
}

// NewLevels setups an empty heap, with room for sizeHint levels
func NewLevels(sizeHint int) *Levels {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Levels{arr: make([]int, 0, sizeHint)}
}

func (h *Levels) parent(index int) int {
	return (index - 1) / 2
}

func (h *Levels) leftchild(index int) int {
	return 2*index + 1
}

func (h *Levels) rightchild(index int) int {
	return 2*index + 2
}

func (h *Levels) swap(first, second int) {
	h.arr[first], h.arr[second] = h.arr[second], h.arr[first]
}

func (h *Levels) less(first, second int) bool {
	return h.arr[first] < h.arr[second]
}

func (h *Levels) up(index int) {
	for index > 0 && h.less(index, h.parent(index)) {
		h.swap(index, h.parent(index))
		index = h.parent(index)
	}
}

func (h *Levels) down(current int) {
	for {
		smallest := current
		leftChildIndex := h.leftchild(current)
		rightChildIndex := h.rightchild(current)
		if leftChildIndex < len(h.arr) && h.less(leftChildIndex, smallest) {
			smallest = leftChildIndex
		}
		if rightChildIndex < len(h.arr) && h.less(rightChildIndex, smallest) {
			smallest = rightChildIndex
		}
		if smallest == current {
			return
		}
		h.swap(current, smallest)
		current = smallest
	}
}

// Push adds a level into the heap
func (h *Levels) Push(level int) {
	h.arr = append(h.arr, level)
	h.up(len(h.arr) - 1)
}

// Peek returns the smallest level without removing it
func (h *Levels) Peek() (int, bool) {
	if len(h.arr) == 0 {
		return 0, false
	}
	return h.arr[0], true
}

// Pop removes + returns the smallest level, ok is false if the heap is empty
func (h *Levels) Pop() (int, bool) {
	n := len(h.arr)
	if n == 0 {
		return 0, false
	}
	top := h.arr[0]
	h.arr[0] = h.arr[n-1]
	h.arr = h.arr[:n-1]
	h.down(0)
	return top, true
}

// Len is the number of levels in the heap
func (h *Levels) Len() int {
	return len(h.arr)
}
