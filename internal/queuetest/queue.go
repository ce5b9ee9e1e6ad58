package queuetest

import (
	"fmt"
	"testing"

	"github.com/aarondwi/bucketqueue"
	"github.com/aarondwi/bucketqueue/common"
	"github.com/aarondwi/bucketqueue/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Factory creates an empty queue accepting priorities in r.
type Factory func(r common.Range) (bucketqueue.Queue[string], error)

// RunTests runs the behaviour every bucketqueue.Queue implementation must have.
func RunTests(t *testing.T, newQueue Factory) {
	newDefault := func(t *testing.T) bucketqueue.Queue[string] {
		q, err := newQueue(common.DefaultRange)
		require.NoError(t, err)
		return q
	}

	t.Run("it drains in priority order, FIFO within a priority", func(t *testing.T) {
		q := newDefault(t)

		require.NoError(t, q.Add(7, "one"))
		require.NoError(t, q.Add(0, "three"))
		require.NoError(t, q.Add(0, "five"))
		require.NoError(t, q.Add(7, "three"))
		require.NoError(t, q.Add(9, "one"))
		require.NoError(t, q.Add(2, "three"))

		test.Expect(
			t,
			"unexpected drain order",
			Drain(q),
			[]common.Item[string]{
				{Priority: 0, Payload: "three"},
				{Priority: 0, Payload: "five"},
				{Priority: 2, Payload: "three"},
				{Priority: 7, Payload: "one"},
				{Priority: 7, Payload: "three"},
				{Priority: 9, Payload: "one"},
			},
		)

		_, ok := q.Pop()
		assert.False(t, ok, "a drained queue should signal empty")
	})

	t.Run("it rejects priorities outside the range", func(t *testing.T) {
		q := newDefault(t)
		require.NoError(t, q.Add(10, "last"))

		for _, p := range []int{common.DefaultRange.Min - 1, common.DefaultRange.Max + 1} {
			err := q.Add(p, "x")
			require.ErrorIs(t, err, common.ErrPriorityOutOfRange)

			var oor *common.OutOfRangeError
			require.ErrorAs(t, err, &oor)
			assert.Equal(t, p, oor.Priority)
		}
		assert.Equal(t, 1, q.Len(), "a rejected item should not change the queue")

		for _, item := range Drain(q) {
			assert.NotEqual(t, "x", item.Payload)
		}
	})

	t.Run("it accepts the single-entry form", func(t *testing.T) {
		q := newDefault(t)

		require.NoError(t, q.AddEntry(map[int]string{3: "b"}))
		require.NoError(t, q.AddEntry(map[int]string{1: "a"}))

		err := q.AddEntry(map[int]string{1: "c", 2: "d"})
		require.ErrorIs(t, err, common.ErrMalformedItem)
		err = q.AddEntry(map[int]string{})
		require.ErrorIs(t, err, common.ErrMalformedItem)
		err = q.AddEntry(map[int]string{42: "e"})
		require.ErrorIs(t, err, common.ErrPriorityOutOfRange)

		test.Expect(
			t,
			"unexpected drain order",
			Drain(q),
			[]common.Item[string]{
				{Priority: 1, Payload: "a"},
				{Priority: 3, Payload: "b"},
			},
		)
	})

	t.Run("it signals empty until refilled", func(t *testing.T) {
		q := newDefault(t)

		for i := 0; i < 3; i++ {
			_, ok := q.Pop()
			require.False(t, ok)
		}

		require.NoError(t, q.Add(5, "x"))
		item, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, common.Item[string]{Priority: 5, Payload: "x"}, item)

		_, ok = q.Pop()
		assert.False(t, ok)
	})

	t.Run("it supports negative ranges", func(t *testing.T) {
		q, err := newQueue(common.Range{Min: -3, Max: 3})
		require.NoError(t, err)

		require.NoError(t, q.Add(3, "c"))
		require.NoError(t, q.Add(-3, "a"))
		require.NoError(t, q.Add(0, "b"))
		require.ErrorIs(t, q.Add(-4, "x"), common.ErrPriorityOutOfRange)

		test.Expect(
			t,
			"unexpected drain order",
			Drain(q),
			[]common.Item[string]{
				{Priority: -3, Payload: "a"},
				{Priority: 0, Payload: "b"},
				{Priority: 3, Payload: "c"},
			},
		)
	})

	t.Run("it rejects an inverted range", func(t *testing.T) {
		_, err := newQueue(common.Range{Min: 5, Max: 4})
		assert.ErrorIs(t, err, common.ErrInvalidRange)
	})

	t.Run("it behaves like a model of FIFO buckets", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			r := common.Range{
				Min: rapid.IntRange(-5, 5).Draw(t, "min"),
			}
			r.Max = r.Min + rapid.IntRange(0, 10).Draw(t, "levels")

			q, err := newQueue(r)
			if err != nil {
				t.Fatalf("unable to create queue: %s", err)
			}

			m := &model{r: r, buckets: map[int][]string{}}
			seq := 0
			nextPayload := func() string {
				seq++
				return fmt.Sprintf("item-%d", seq)
			}

			t.Repeat(
				map[string]func(*rapid.T){
					"add": func(t *rapid.T) {
						p := rapid.IntRange(r.Min-2, r.Max+2).Draw(t, "priority")
						payload := nextPayload()

						err := q.Add(p, payload)
						if !r.Contains(p) {
							if err == nil {
								t.Fatalf("expected out of range error for priority %d", p)
							}
							return
						}
						if err != nil {
							t.Fatalf("unexpected error: %s", err)
						}
						m.add(p, payload)
					},
					"add entry": func(t *rapid.T) {
						keys := rapid.IntRange(0, 2).Draw(t, "keys")
						entry := map[int]string{}
						for len(entry) < keys {
							entry[rapid.IntRange(r.Min, r.Max+5).Draw(t, "entry priority")] = nextPayload()
						}

						err := q.AddEntry(entry)
						if len(entry) != 1 {
							if err == nil {
								t.Fatalf("expected malformed item error for %v", entry)
							}
							return
						}
						for p, payload := range entry {
							if !r.Contains(p) {
								if err == nil {
									t.Fatalf("expected out of range error for priority %d", p)
								}
								return
							}
							if err != nil {
								t.Fatalf("unexpected error: %s", err)
							}
							m.add(p, payload)
						}
					},
					"pop": func(t *rapid.T) {
						got, ok := q.Pop()
						want, wantOK := m.pop()
						if ok != wantOK {
							t.Fatalf("expected ok=%v, got ok=%v", wantOK, ok)
						}
						test.Expect(t, "unexpected item popped", got, want)
					},
					"": func(t *rapid.T) {
						if q.Len() != m.len() {
							t.Fatalf("expected length %d, got %d", m.len(), q.Len())
						}
					},
				},
			)
		})
	})
}

// Drain pops until the queue signals empty
func Drain[T any](q bucketqueue.Queue[T]) []common.Item[T] {
	var items []common.Item[T]
	for {
		item, ok := q.Pop()
		if !ok {
			return items
		}
		items = append(items, item)
	}
}

type model struct {
	r       common.Range
	buckets map[int][]string
}

func (m *model) add(p int, payload string) {
	m.buckets[p] = append(m.buckets[p], payload)
}

func (m *model) pop() (common.Item[string], bool) {
	for p := m.r.Min; p <= m.r.Max; p++ {
		if b := m.buckets[p]; len(b) > 0 {
			m.buckets[p] = b[1:]
			return common.Item[string]{Priority: p, Payload: b[0]}, true
		}
	}
	return common.Item[string]{}, false
}

func (m *model) len() int {
	n := 0
	for _, b := range m.buckets {
		n += len(b)
	}
	return n
}
