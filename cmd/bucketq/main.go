package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/aarondwi/bucketqueue"
	"github.com/aarondwi/bucketqueue/common"
	"github.com/aarondwi/bucketqueue/internal/config"
	"github.com/aarondwi/bucketqueue/internal/workload"
)

const version = "1.0.0"

func main() {
	config.Init()

	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	switch os.Args[1] {
	case "demo":
		err = runDemo(cfg, os.Args[2:], os.Stdout)
	case "drain":
		err = runDrain(cfg, os.Args[2:], os.Stdout)
	case "run":
		err = runEngine(cfg, logger, os.Args[2:], os.Stdout)
	case "version":
		fmt.Printf("bucketq %s\n", version)
	case "help", "--help", "-h":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `usage: bucketq <command> [options]

commands:
  demo [-n N] [-seed S]         add N random commands, show the buckets, drain them
  drain FILE                    add the items of a YAML file, drain them
  run [-n N] [-workers W]       run N random commands through a worker pool
  version                       print the version

environment:
  BUCKETQ_MIN_PRIORITY, BUCKETQ_MAX_PRIORITY, BUCKETQ_STRATEGY, BUCKETQ_LOG_LEVEL
`)
}

func runDemo(cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	n := fs.Int("n", 17, "number of commands to generate")
	seed := fs.Int64("seed", time.Now().UnixNano(), "random seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	q, err := config.NewQueue[string](cfg)
	if err != nil {
		return err
	}

	entries := workload.Generate(rand.New(rand.NewSource(*seed)), *n, cfg.Range)
	if err := addAll(q, entries, out); err != nil {
		return err
	}
	printBuckets(q, out)
	drain(q, out)
	return nil
}

func runDrain(cfg config.Config, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: bucketq drain FILE")
	}

	entries, err := workload.LoadFile(args[0])
	if err != nil {
		return err
	}

	q, err := config.NewQueue[string](cfg)
	if err != nil {
		return err
	}

	// rejected items are reported after the accepted ones are drained
	addErr := addAll(q, entries, out)
	drain(q, out)
	return addErr
}

// addAll adds every entry, returning all rejections joined together
func addAll(q bucketqueue.Queue[string], entries []workload.Entry, out io.Writer) error {
	var errs []error
	for _, e := range entries {
		fmt.Fprintf(out, "Adding %s\n", e)
		if err := e.Apply(q); err != nil {
			slog.Warn("item rejected", slog.String("item", e.String()), slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("%s: %w", e, err))
		}
	}
	return errors.Join(errs...)
}

type snapshotter interface {
	Snapshot() map[int][]string
}

func printBuckets(q bucketqueue.Queue[string], out io.Writer) {
	s, ok := q.(snapshotter)
	if !ok {
		return
	}
	snap := s.Snapshot()

	levels := make([]int, 0, len(snap))
	for p := range snap {
		levels = append(levels, p)
	}
	sort.Ints(levels)

	fmt.Fprintln(out)
	for _, p := range levels {
		fmt.Fprintf(out, "%d: %q\n", p, snap[p])
	}
	fmt.Fprintln(out)
}

func drain(q bucketqueue.Queue[string], out io.Writer) {
	for {
		item, ok := q.Pop()
		if !ok {
			return
		}
		fmt.Fprintln(out, item)
	}
}

func runEngine(cfg config.Config, logger *slog.Logger, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	n := fs.Int("n", 17, "number of commands to run")
	workers := fs.Int("workers", 2, "number of workers")
	seed := fs.Int64("seed", time.Now().UnixNano(), "random seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	q, err := config.NewQueue[*bucketqueue.Task](cfg)
	if err != nil {
		return err
	}
	engine, err := bucketqueue.New(q, *workers, bucketqueue.WithLogger(logger))
	if err != nil {
		return err
	}
	defer engine.Close()

	var mu sync.Mutex
	run := func(ctx context.Context, arg any) (any, error) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, "running %s\n", arg)
		return arg, nil
	}

	var tasks []*bucketqueue.Task
	for _, e := range workload.Generate(rand.New(rand.NewSource(*seed)), *n, cfg.Range) {
		task, err := engine.Submit(context.Background(), e.Priority, run, common.Item[string]{Priority: e.Priority, Payload: e.Command})
		if err != nil {
			return err
		}
		tasks = append(tasks, task)
	}

	var errs []error
	for _, task := range tasks {
		if _, err := task.Result(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
