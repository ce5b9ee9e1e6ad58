package config

import (
	"fmt"
	"log/slog"

	"github.com/aarondwi/bucketqueue"
	"github.com/aarondwi/bucketqueue/common"
	"github.com/aarondwi/bucketqueue/priority"
	"github.com/aarondwi/bucketqueue/sparse"
	"github.com/dogmatiq/ferrite"
)

// Strategy selects the queue implementation
type Strategy string

const (
	// Array is priority.PriorityQueue, one pre-allocated bucket per level
	Array Strategy = "array"
	// Sparse is sparse.SparseQueue, lazily created buckets and a heap of levels
	Sparse Strategy = "sparse"
)

// FerriteRegistry is a registry of the environment variables used by bucketq.
var FerriteRegistry = ferrite.NewRegistry(
	"aarondwi.bucketq",
	"bucketq",
)

var env = newEnvironment(FerriteRegistry)

// environment holds the variable definitions of one registry.
// Each variable reads the process environment once, on first use.
type environment struct {
	minPriority ferrite.Required[int]
	maxPriority ferrite.Required[int]
	strategy    ferrite.Required[string]
	logLevel    ferrite.Required[string]
}

func newEnvironment(reg ferrite.Registry) *environment {
	return &environment{
		minPriority: ferrite.
			Signed[int]("BUCKETQ_MIN_PRIORITY", "the most urgent priority level accepted").
			WithDefault(common.DefaultRange.Min).
			Required(ferrite.WithRegistry(reg)),

		maxPriority: ferrite.
			Signed[int]("BUCKETQ_MAX_PRIORITY", "the least urgent priority level accepted").
			WithDefault(common.DefaultRange.Max).
			Required(ferrite.WithRegistry(reg)),

		strategy: ferrite.
			Enum("BUCKETQ_STRATEGY", "the bucket layout of the queue").
			WithMembers(string(Array), string(Sparse)).
			WithDefault(string(Array)).
			Required(ferrite.WithRegistry(reg)),

		logLevel: ferrite.
			Enum("BUCKETQ_LOG_LEVEL", "the minimum level of log messages").
			WithMembers("debug", "info", "warn", "error").
			WithDefault("info").
			Required(ferrite.WithRegistry(reg)),
	}
}

// Init validates the environment, it must be called first thing in main
func Init() {
	ferrite.Init(ferrite.WithRegistry(FerriteRegistry))
}

// Config is the environment-provided configuration of the bucketq binary
type Config struct {
	Range    common.Range
	Strategy Strategy
	LogLevel slog.Level
}

// Load reads the configuration from the environment
func Load() (Config, error) {
	return env.load()
}

func (e *environment) load() (Config, error) {
	c := Config{
		Range: common.Range{
			Min: e.minPriority.Value(),
			Max: e.maxPriority.Value(),
		},
		Strategy: Strategy(e.strategy.Value()),
	}

	if err := c.Range.Validate(); err != nil {
		return Config{}, fmt.Errorf("BUCKETQ_MIN_PRIORITY/BUCKETQ_MAX_PRIORITY: %w", err)
	}

	lvl, err := ParseLevel(e.logLevel.Value())
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = lvl

	return c, nil
}

// ParseLevel maps a BUCKETQ_LOG_LEVEL value to its slog.Level
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("BUCKETQ_LOG_LEVEL: %w", err)
	}
	return lvl, nil
}

// NewQueue creates an empty queue using the configured range and strategy
func NewQueue[T any](c Config) (bucketqueue.Queue[T], error) {
	switch c.Strategy {
	case Array, "":
		return priority.NewPriorityQueue[T](c.Range)
	case Sparse:
		return sparse.New[T](c.Range)
	default:
		return nil, fmt.Errorf("unknown queue strategy %q", c.Strategy)
	}
}
