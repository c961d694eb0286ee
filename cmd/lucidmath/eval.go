package main

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Eval evaluates formulas given as arguments or read one per line.
type Eval struct {
	Formulas []string `arg:"" optional:"" help:"Formulas to evaluate."`
	In       string   `short:"i" help:"Read formulas from a file, one per line. Use - for stdin. Default is stdin when no formulas are given."`
	Fmt      string   `default:"%g" help:"Result formatting verb."`
	Echo     bool     `help:"Print each formula in postfix form before its result."`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context, s *session) error {
	in, closer, err := e.input(s)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	failed := 0
	for _, f := range e.Formulas {
		if !s.eval(f, e.Fmt, e.Echo) {
			failed++
		}
	}
	if in != nil {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			if !s.eval(line, e.Fmt, e.Echo) {
				failed++
			}
		}
		if err := sc.Err(); err != nil {
			return err
		}
	}
	if failed > 0 {
		return ErrFailed.With(slog.Int("count", failed))
	}
	return nil
}

func (e *Eval) input(s *session) (io.Reader, io.Closer, error) {
	switch {
	case e.In != "" && e.In != "-":
		f, err := os.Open(e.In)
		if err != nil {
			return nil, nil, err
		}
		return f, f, nil
	case e.In == "-", len(e.Formulas) == 0:
		return s.in, nil, nil
	}
	return nil, nil, nil
}
