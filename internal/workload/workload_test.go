package workload

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aarondwi/bucketqueue/common"
	"github.com/aarondwi/bucketqueue/internal/queuetest"
	"github.com/aarondwi/bucketqueue/priority"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemsYAML = `
items:
  - {priority: 7, command: one}
  - {0: three}
  - priority: 0
    command: five
  - {7: three}
  - {9: one, 3: two}
  - {2: three}
  - {11: x}
`

func TestLoad(t *testing.T) {
	entries, err := Load(strings.NewReader(itemsYAML))
	require.NoError(t, err)
	require.Len(t, entries, 7)

	assert.Equal(t, Entry{Priority: 7, Command: "one"}, entries[0])
	assert.Equal(t, Entry{Legacy: map[int]string{0: "three"}}, entries[1])
	assert.Equal(t, Entry{Priority: 0, Command: "five"}, entries[2])
	assert.Equal(t, "{3: two, 9: one}", entries[4].String())
	assert.Equal(t, "{7: one}", entries[0].String())
}

func TestApply(t *testing.T) {
	entries, err := Load(strings.NewReader(itemsYAML))
	require.NoError(t, err)

	q, err := priority.NewPriorityQueue[string](common.DefaultRange)
	require.NoError(t, err)

	var errs []error
	for _, e := range entries {
		if err := e.Apply(q); err != nil {
			errs = append(errs, err)
		}
	}

	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], common.ErrMalformedItem)
	assert.ErrorIs(t, errs[1], common.ErrPriorityOutOfRange)

	assert.Equal(t, []common.Item[string]{
		{Priority: 0, Payload: "three"},
		{Priority: 0, Payload: "five"},
		{Priority: 2, Payload: "three"},
		{Priority: 7, Payload: "one"},
		{Priority: 7, Payload: "three"},
	}, queuetest.Drain[string](q))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(strings.NewReader("items:\n  - {command: one}\n"))
	assert.ErrorContains(t, err, "no priority")

	_, err = Load(strings.NewReader("items:\n  - just a string\n"))
	assert.ErrorContains(t, err, "should be a mapping")

	_, err = Load(strings.NewReader("items:\n  - {high: one}\n"))
	assert.Error(t, err)

	entries, err := Load(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.yaml")
	require.NoError(t, os.WriteFile(path, []byte(itemsYAML), 0o600))

	entries, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, entries, 7)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenerate(t *testing.T) {
	r := common.Range{Min: -2, Max: 2}
	entries := Generate(rand.New(rand.NewSource(1)), 200, r)
	require.Len(t, entries, 200)

	seen := map[int]bool{}
	for _, e := range entries {
		assert.True(t, r.Contains(e.Priority), "priority %d out of %s", e.Priority, r)
		assert.True(t, strings.HasPrefix(e.Command, "command_"))
		assert.Nil(t, e.Legacy)
		seen[e.Priority] = true
	}
	assert.Len(t, seen, 5, "200 draws should hit every level")

	again := Generate(rand.New(rand.NewSource(1)), 200, r)
	assert.Equal(t, entries, again, "same seed, same entries")
}

func TestGenerateWideRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, r := range []common.Range{
		{Min: 0, Max: math.MaxInt},
		{Min: math.MinInt, Max: math.MaxInt},
		{Min: math.MinInt, Max: math.MinInt + 1},
		{Min: math.MaxInt, Max: math.MaxInt},
	} {
		for _, e := range Generate(rng, 100, r) {
			assert.True(t, r.Contains(e.Priority), "priority %d out of %s", e.Priority, r)
		}
	}
}
