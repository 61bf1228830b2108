// Command largecoll-bench exercises the largecoll containers with
// synthetic workloads and reports timings.
package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/oda/largecoll"
	"github.com/oda/largecoll/bptree"
	"github.com/oda/largecoll/hashdict"
	"github.com/oda/largecoll/larray"
)

func main() {
	app := &cli.App{
		Name:  "largecoll-bench",
		Usage: "workload driver for the largecoll containers",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "random seed",
				Value: 1,
			},
		},
		Before: func(cctx *cli.Context) error {
			level := slog.LevelInfo
			if cctx.Bool("debug") {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
			return nil
		},
		Commands: []*cli.Command{
			sortCmd,
			treeCmd,
			dictCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}
}

var sortCmd = &cli.Command{
	Name:  "sort",
	Usage: "compare sequential and parallel sort over a random array",
	Flags: []cli.Flag{
		&cli.Int64Flag{
			Name:  "count",
			Usage: "number of elements",
			Value: 1_000_000,
		},
		&cli.IntFlag{
			Name:  "parallelism",
			Usage: "max degree of parallelism (0 = GOMAXPROCS)",
			Value: 0,
		},
	},
	Action: func(cctx *cli.Context) error {
		n := cctx.Int64("count")
		degree := cctx.Int("parallelism")
		rng := rand.New(rand.NewSource(cctx.Int64("seed")))

		seq, err := larray.New[int64](n)
		if err != nil {
			return err
		}
		par, err := larray.New[int64](n)
		if err != nil {
			return err
		}
		for i := int64(0); i < n; i++ {
			v := rng.Int63()
			seq.Set(i, v)
			par.Set(i, v)
		}
		slog.Debug("generated input", "count", n)

		start := time.Now()
		if err := seq.Sort(largecoll.Ascending[int64]{}); err != nil {
			return err
		}
		seqTook := time.Since(start)

		start = time.Now()
		if err := par.ParallelSortRange(0, n, largecoll.Ascending[int64]{}, degree); err != nil {
			return err
		}
		parTook := time.Since(start)

		for i := int64(0); i < n; i++ {
			if seq.Get(i) != par.Get(i) {
				return fmt.Errorf("sorted outputs diverge at index %d", i)
			}
		}

		if degree <= 0 {
			degree = runtime.GOMAXPROCS(0)
		}
		fmt.Printf("%s elements: sequential %s, parallel(%d) %s\n",
			humanize.Comma(n), seqTook.Round(time.Millisecond),
			degree, parTook.Round(time.Millisecond))
		return nil
	},
}

var treeCmd = &cli.Command{
	Name:  "tree",
	Usage: "insert, look up and range-scan a B+ tree",
	Flags: []cli.Flag{
		&cli.Int64Flag{
			Name:  "count",
			Usage: "number of keys",
			Value: 1_000_000,
		},
		&cli.IntFlag{
			Name:  "order",
			Usage: "tree order",
			Value: 64,
		},
	},
	Action: func(cctx *cli.Context) error {
		n := cctx.Int64("count")
		rng := rand.New(rand.NewSource(cctx.Int64("seed")))

		tr, err := bptree.NewOrdered[int64, int64](cctx.Int("order"))
		if err != nil {
			return err
		}

		keys := rng.Perm(int(n))
		start := time.Now()
		for _, k := range keys {
			if err := tr.Set(int64(k), int64(k)*2); err != nil {
				return err
			}
		}
		insertTook := time.Since(start)
		slog.Debug("inserted", "count", tr.Count())

		start = time.Now()
		for i := int64(0); i < n; i++ {
			if _, found := tr.TryGet(i); !found {
				return fmt.Errorf("key %d missing after insert", i)
			}
		}
		lookupTook := time.Since(start)

		start = time.Now()
		scanned := tr.CountInRange(n/4, 3*n/4)
		scanTook := time.Since(start)

		fmt.Printf("%s keys: insert %s, lookup %s, range scan of %s keys %s\n",
			humanize.Comma(n), insertTook.Round(time.Millisecond),
			lookupTook.Round(time.Millisecond),
			humanize.Comma(scanned), scanTook.Round(time.Millisecond))
		return nil
	},
}

var dictCmd = &cli.Command{
	Name:  "dict",
	Usage: "fill and probe the hash dictionary",
	Flags: []cli.Flag{
		&cli.Int64Flag{
			Name:  "count",
			Usage: "number of keys",
			Value: 1_000_000,
		},
	},
	Action: func(cctx *cli.Context) error {
		n := cctx.Int64("count")

		d, err := hashdict.NewComparable[int64, int64]()
		if err != nil {
			return err
		}

		start := time.Now()
		for i := int64(0); i < n; i++ {
			if err := d.Set(i, i); err != nil {
				return err
			}
		}
		fillTook := time.Since(start)

		start = time.Now()
		for i := int64(0); i < n; i++ {
			if !d.ContainsKey(i) {
				return fmt.Errorf("key %d missing after fill", i)
			}
		}
		probeTook := time.Since(start)

		fmt.Printf("%s keys: fill %s, probe %s\n",
			humanize.Comma(n), fillTook.Round(time.Millisecond),
			probeTook.Round(time.Millisecond))
		return nil
	},
}
