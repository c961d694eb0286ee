package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/lucidmath/internal/log"
	"github.com/zephyrtronium/lucidmath/internal/profile"
)

// Bench measures repeated evaluation of one formula.
type Bench struct {
	Formula     string `arg:"" help:"Formula to evaluate."`
	Count       int    `short:"n" default:"1000000" help:"Number of invocations."`
	Workers     int    `short:"w" default:"0" help:"Number of concurrent workers. Zero means GOMAXPROCS."`
	Fmt         string `default:"%g" help:"Result formatting verb."`
	Profile     string `enum:"${profiles}" default:"" help:"Profile the invocations in a mode such as cpu or heap."`
	ProfilePath string `default:"" help:"Directory for profiles. Default is a temporary directory." type:"path"`
}

// Validate checks the counts.
func (b *Bench) Validate() error {
	if b.Count < 1 {
		return errors.New("--count must be positive")
	}
	if b.Workers < 0 {
		return errors.New("--workers must not be negative")
	}
	return nil
}

// Run executes the bench command.
func (b *Bench) Run(ctx context.Context, s *session) error {
	p, err := s.compile(b.Formula)
	if err != nil {
		return ErrCompile.Wrap(err)
	}
	workers := b.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, b.Count)
	want := p.Invoke()

	prof, err := profile.Start(b.Profile, b.ProfilePath, true)
	if err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	per, extra := b.Count/workers, b.Count%workers
	start := time.Now()
	for i := range workers {
		n := per
		if i < extra {
			n++
		}
		g.Go(func() error {
			for j := range n {
				if j%1024 == 0 && gctx.Err() != nil {
					return gctx.Err()
				}
				if r := p.Invoke(); !same(r, want) {
					return ErrMismatch.With(slog.Float64("want", want), slog.Float64("got", r), slog.Int("worker", i))
				}
			}
			return nil
		})
	}
	err = g.Wait()
	elapsed := time.Since(start)
	prof.Stop()
	if err != nil {
		return err
	}
	per1 := elapsed / time.Duration(b.Count)
	log.InfoContext(ctx, "bench",
		slog.String("formula", b.Formula),
		slog.Int("count", b.Count),
		slog.Int("workers", workers),
		slog.Duration("elapsed", elapsed),
		slog.Duration("per_op", per1),
	)
	fmt.Fprintf(s.out, "%d invocations, %d workers, %v, %v/op: "+b.Fmt+"\n", b.Count, workers, elapsed, per1, want)
	return nil
}
