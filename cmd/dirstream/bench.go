package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/calvinalkan/dirstream"
)

type benchCmd struct {
	workers int
	repeat  int
	jsonOut bool
}

func (*benchCmd) Name() string     { return "bench" }
func (*benchCmd) Synopsis() string { return "enumerate directories repeatedly and report throughput" }
func (*benchCmd) Usage() string {
	return `bench [-workers N] [-repeat N] [-json] DIR...:
  Enumerate every DIR -repeat times, one independent stream per task,
  with at most -workers streams open at once.
`
}

func (c *benchCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.workers, "workers", -1, "concurrent streams (0 = one per task, -1 = config)")
	f.IntVar(&c.repeat, "repeat", 0, "enumerations per directory (0 = config)")
	f.BoolVar(&c.jsonOut, "json", false, "print the result as JSON")
}

type benchResult struct {
	Timestamp time.Time `json:"ts"`

	Dirs       []string `json:"dirs"`
	Workers    int      `json:"workers"`
	Repeat     int      `json:"repeat"`
	BufferSize int      `json:"buffer_size"`

	Entries       uint64        `json:"entries"`
	Errors        uint64        `json:"errors"`
	Duration      time.Duration `json:"duration"`
	EntriesPerSec float64       `json:"entries_per_sec"`

	GoVersion   string `json:"go"`
	GOOS        string `json:"goos"`
	GOARCH      string `json:"goarch"`
	GOMAXPROCS  int    `json:"gomaxprocs"`
	NumCPU      int    `json:"numcpu"`
	VCSRevision string `json:"vcs_revision,omitempty"`
}

type benchParams struct {
	dirs       []string
	workers    int
	repeat     int
	streamOpts []dirstream.Option
}

func (c *benchCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	a := appFrom(args)

	if f.NArg() == 0 {
		f.Usage()

		return subcommands.ExitUsageError
	}

	params := benchParams{
		dirs:       f.Args(),
		workers:    a.cfg.Bench.Workers,
		repeat:     a.cfg.Bench.Repeat,
		streamOpts: a.streamOptions(),
	}

	if c.workers >= 0 {
		params.workers = c.workers
	}

	if c.repeat > 0 {
		params.repeat = c.repeat
	}

	res, err := runBench(ctx, params, a.log)
	res.BufferSize = a.cfg.BufferSize

	if err != nil {
		a.log.WithError(err).Error("bench failed")

		return subcommands.ExitFailure
	}

	err = writeBenchResult(a.stdout, &res, c.jsonOut)
	if err != nil {
		a.log.WithError(err).Error("write result")

		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

// runBench enumerates each directory repeat times. Every task opens its own
// stream; streams are never shared between goroutines.
func runBench(ctx context.Context, p benchParams, log *logrus.Logger) (benchResult, error) {
	var entries, errCount atomic.Uint64

	g, ctx := errgroup.WithContext(ctx)
	if p.workers > 0 {
		g.SetLimit(p.workers)
	}

	start := time.Now()

	for range p.repeat {
		for _, dir := range p.dirs {
			g.Go(func() error {
				if ctx.Err() != nil {
					return nil
				}

				n, err := countEntries(dir, p.streamOpts...)
				entries.Add(n)

				if err != nil {
					errCount.Add(1)
					log.WithError(err).WithField("dir", dir).Warn("enumeration failed")

					return err
				}

				return nil
			})
		}
	}

	err := g.Wait()
	duration := time.Since(start)

	res := newBenchResult(p)
	res.Entries = entries.Load()
	res.Errors = errCount.Load()
	res.Duration = duration

	if duration > 0 {
		res.EntriesPerSec = float64(res.Entries) / duration.Seconds()
	}

	log.WithFields(logrus.Fields{
		"entries":  res.Entries,
		"errors":   res.Errors,
		"duration": duration,
	}).Debug("bench done")

	return res, err
}

// countEntries enumerates dir once and returns the number of entries read,
// dots included.
func countEntries(dir string, opts ...dirstream.Option) (uint64, error) {
	d, err := dirstream.OpenPath(dir, opts...)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", dir, err)
	}

	defer func() { _ = d.Close() }()

	var n uint64

	for _, err := range d.Entries() {
		if err != nil {
			return n, fmt.Errorf("read %s: %w", dir, err)
		}

		n++
	}

	return n, nil
}

func newBenchResult(p benchParams) benchResult {
	res := benchResult{
		Timestamp:  time.Now(),
		Dirs:       p.dirs,
		Workers:    p.workers,
		Repeat:     p.repeat,
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		NumCPU:     runtime.NumCPU(),
	}

	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		res.GoVersion = bi.GoVersion
		for _, setting := range bi.Settings {
			if setting.Key == "vcs.revision" {
				res.VCSRevision = setting.Value
			}
		}
	}

	return res
}

func writeBenchResult(w io.Writer, res *benchResult, jsonOut bool) error {
	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)

		err := enc.Encode(res)
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}

		return nil
	}

	_, err := fmt.Fprintf(w, "entries=%d errors=%d repeat=%d workers=%d duration=%v entries/sec=%.0f\n",
		res.Entries, res.Errors, res.Repeat, res.Workers, res.Duration, res.EntriesPerSec)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
