package common

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange(t *testing.T) {
	assert.NoError(t, DefaultRange.Validate())
	assert.True(t, DefaultRange.Contains(0))
	assert.True(t, DefaultRange.Contains(10))
	assert.False(t, DefaultRange.Contains(-1))
	assert.False(t, DefaultRange.Contains(11))

	assert.ErrorIs(t, Range{Min: 3, Max: 2}.Validate(), ErrInvalidRange)
	assert.NoError(t, Range{Min: -5, Max: -5}.Validate())
}

func TestRangeLevels(t *testing.T) {
	tests := []struct {
		name   string
		r      Range
		width  uint64
		levels int
		ok     bool
	}{
		{"default", DefaultRange, 10, 11, true},
		{"single", Range{Min: -5, Max: -5}, 0, 1, true},
		{"widest that fits", Range{Min: 0, Max: math.MaxInt - 1}, math.MaxInt - 1, math.MaxInt, true},
		{"zero to max", Range{Min: 0, Max: math.MaxInt}, math.MaxInt, 0, false},
		{"min to max", Range{Min: math.MinInt, Max: math.MaxInt}, math.MaxUint64, 0, false},
		{"min to zero", Range{Min: math.MinInt, Max: 0}, math.MaxInt + 1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, tt.r.Validate())
			assert.Equal(t, tt.width, tt.r.Width())

			n, ok := tt.r.Levels()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.levels, n)
		})
	}
}

func TestOutOfRangeError(t *testing.T) {
	err := DefaultRange.Check(11)
	require.Error(t, err)

	wrapped := fmt.Errorf("submitting: %w", err)
	assert.ErrorIs(t, wrapped, ErrPriorityOutOfRange)
	assert.False(t, errors.Is(wrapped, ErrMalformedItem))

	var oor *OutOfRangeError
	require.True(t, errors.As(wrapped, &oor))
	assert.Equal(t, 11, oor.Priority)
	assert.Equal(t, DefaultRange, oor.Range)
	assert.Equal(t, "priority 11 is out of range, only [0, 10] is accepted", oor.Error())

	assert.NoError(t, DefaultRange.Check(10))
}

func TestSingleEntry(t *testing.T) {
	p, payload, err := SingleEntry(map[int]string{7: "one"})
	require.NoError(t, err)
	assert.Equal(t, 7, p)
	assert.Equal(t, "one", payload)

	tests := []struct {
		name  string
		entry map[int]string
		keys  int
	}{
		{"nil", nil, 0},
		{"empty", map[int]string{}, 0},
		{"multiple", map[int]string{1: "a", 2: "b"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := SingleEntry(tt.entry)
			assert.ErrorIs(t, err, ErrMalformedItem)

			var mal *MalformedItemError
			require.ErrorAs(t, err, &mal)
			assert.Equal(t, tt.keys, mal.Keys)
		})
	}
}

func TestItemString(t *testing.T) {
	assert.Equal(t, "(0, three)", Item[string]{Priority: 0, Payload: "three"}.String())
}
