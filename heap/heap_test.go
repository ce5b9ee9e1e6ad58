package heap

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func swap(arr []int, i1, i2 int) {
	arr[i1], arr[i2] = arr[i2], arr[i1]
}

func TestLevelsMainFlow(t *testing.T) {
	randomizedArr := make([]int, 100)
	for i := 0; i < 100; i++ {
		randomizedArr[i] = 100 - i
	}
	for i := 0; i < 50; i++ {
		swap(randomizedArr, i, i+50)
	}

	h := NewLevels(100)
	for _, level := range randomizedArr {
		h.Push(level)
	}
	require.Equal(t, 100, h.Len())

	top, ok := h.Peek()
	require.True(t, ok)
	assert.Equal(t, 1, top)

	for i := 1; i <= 100; i++ {
		level, ok := h.Pop()
		require.True(t, ok)
		require.Equal(t, i, level, "levels should come out ascending")
	}

	_, ok = h.Pop()
	assert.False(t, ok)
	_, ok = h.Peek()
	assert.False(t, ok)
}

func TestLevelsNegative(t *testing.T) {
	h := NewLevels(-1)
	h.Push(3)
	h.Push(-7)
	h.Push(0)

	level, _ := h.Pop()
	assert.Equal(t, -7, level)
	level, _ = h.Pop()
	assert.Equal(t, 0, level)
	level, _ = h.Pop()
	assert.Equal(t, 3, level)
}

func TestLevelsSorts(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		levels := rapid.SliceOf(rapid.IntRange(-1000, 1000)).Draw(t, "levels")

		h := NewLevels(len(levels))
		for _, l := range levels {
			h.Push(l)
		}

		want := append([]int(nil), levels...)
		sort.Ints(want)

		for i, w := range want {
			got, ok := h.Pop()
			if !ok || got != w {
				t.Fatalf("pop %d: expected %d, got %d (ok=%v)", i, w, got, ok)
			}
		}
		if h.Len() != 0 {
			t.Fatalf("expected heap to be empty, %d levels left", h.Len())
		}
	})
}
