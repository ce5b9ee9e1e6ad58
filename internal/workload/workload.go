package workload

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"sort"
	"strings"

	"github.com/aarondwi/bucketqueue"
	"github.com/aarondwi/bucketqueue/common"
	"gopkg.in/yaml.v3"
)

var commands = []string{"one", "two", "three", "four", "five"}

// Entry is one command to enqueue.
//
// It is either a plain {priority, command} pair,
// or, when Legacy is non-nil, the {priority: command} single-entry form
// which is handed to the queue as is, so the queue validates its shape.
type Entry struct {
	Priority int
	Command  string
	Legacy   map[int]string
}

// File is the layout of a YAML items file
type File struct {
	Items []Entry `yaml:"items"`
}

type plainEntry struct {
	Priority *int   `yaml:"priority"`
	Command  string `yaml:"command"`
}

// UnmarshalYAML accepts both `{priority: 7, command: one}` and `{7: one}`
func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: item should be a mapping", value.Line)
	}

	for i := 0; i < len(value.Content); i += 2 {
		if k := value.Content[i].Value; k == "priority" || k == "command" {
			var p plainEntry
			if err := value.Decode(&p); err != nil {
				return err
			}
			if p.Priority == nil {
				return fmt.Errorf("line %d: item has no priority", value.Line)
			}
			*e = Entry{Priority: *p.Priority, Command: p.Command}
			return nil
		}
	}

	legacy := map[int]string{}
	if err := value.Decode(&legacy); err != nil {
		return fmt.Errorf("line %d: expected {priority: command}: %w", value.Line, err)
	}
	*e = Entry{Legacy: legacy}
	return nil
}

// Apply adds the entry to q, through AddEntry for the legacy form
func (e Entry) Apply(q bucketqueue.Queue[string]) error {
	if e.Legacy != nil {
		return q.AddEntry(e.Legacy)
	}
	return q.Add(e.Priority, e.Command)
}

func (e Entry) String() string {
	if e.Legacy == nil {
		return fmt.Sprintf("{%d: %s}", e.Priority, e.Command)
	}

	keys := make([]int, 0, len(e.Legacy))
	for p := range e.Legacy {
		keys = append(keys, p)
	}
	sort.Ints(keys)

	parts := make([]string, 0, len(keys))
	for _, p := range keys {
		parts = append(parts, fmt.Sprintf("%d: %s", p, e.Legacy[p]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Generate returns n random entries with priorities in r
// and commands named command_one to command_five.
func Generate(rng *rand.Rand, n int, r common.Range) []Entry {
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, Entry{
			Priority: r.Min + int(offset(rng, r.Width())),
			Command:  "command_" + commands[rng.Intn(len(commands))],
		})
	}
	return entries
}

// offset draws uniformly from [0, w] for any w, including math.MaxUint64
func offset(rng *rand.Rand, w uint64) uint64 {
	if w < math.MaxInt64 {
		return uint64(rng.Int63n(int64(w) + 1))
	}
	for {
		if v := rng.Uint64(); v <= w {
			return v
		}
	}
}

// Load decodes a YAML items file
func Load(r io.Reader) ([]Entry, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding items: %w", err)
	}
	return f.Items, nil
}

// LoadFile decodes the YAML items file at path
func LoadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}
