package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/zephyrtronium/lucidmath"
	"github.com/zephyrtronium/lucidmath/internal/config"
	"github.com/zephyrtronium/lucidmath/internal/log"
)

// session is the state shared by all commands: compile options built from
// global flags and the streams to use.
type session struct {
	opts  []lucidmath.Option
	names []string

	in  io.Reader
	out io.Writer
	err io.Writer
}

// newSession builds compile options from a function table file and given
// definitions.
func newSession(funcs string, given []string, in io.Reader, out, errw io.Writer) (*session, error) {
	s := session{in: in, out: out, err: errw}
	for _, name := range lucidmath.Builtins() {
		if lucidmath.IsName(name) {
			s.names = append(s.names, name)
		}
	}
	if funcs != "" {
		t, err := config.Load(funcs)
		if err != nil {
			return nil, err
		}
		s.opts = append(s.opts, t.Option())
		s.names = append(s.names, t.Names()...)
		for name, fn := range t.Funcs() {
			if fn == nil {
				s.names = slices.DeleteFunc(s.names, func(n string) bool { return n == name })
			}
		}
	}
	if len(given) > 0 {
		g, err := parseGiven(given, s.opts)
		if err != nil {
			return nil, err
		}
		s.opts = append(g.opts, lucidmath.WithResolver(g.resolve))
		for name := range g.src {
			s.names = append(s.names, name)
		}
	}
	slices.Sort(s.names)
	s.names = slices.Compact(s.names)
	return &s, nil
}

// compile compiles a formula with the session's options. Diagnostics are
// rendered to the error stream.
func (s *session) compile(text string) (*lucidmath.Program, error) {
	p, err := lucidmath.Compile(text, s.opts...)
	if err != nil {
		render(s.err, err, s.names)
		log.Debug("compile failed", slog.Any("diagnostic", err))
		return nil, err
	}
	log.Trace("compiled", slog.String("text", text), slog.String("postfix", p.String()))
	return p, nil
}

// eval compiles and evaluates one formula and prints its result with verb.
// It reports whether the formula compiled.
func (s *session) eval(text, verb string, echo bool) bool {
	p, err := s.compile(text)
	if err != nil {
		return false
	}
	if echo {
		fmt.Fprintf(s.out, "%v : ", p)
	}
	fmt.Fprintf(s.out, verb+"\n", p.Invoke())
	return true
}

// givens serves name=formula definitions through a resolver. Each formula
// is evaluated the first time a program uses its name.
type givens struct {
	src  map[string]string
	opts []lucidmath.Option
	vals map[string]lucidmath.Func
	busy map[string]bool
}

func parseGiven(defs []string, opts []lucidmath.Option) (*givens, error) {
	g := givens{
		src:  make(map[string]string, len(defs)),
		opts: slices.Clip(opts),
		vals: make(map[string]lucidmath.Func, len(defs)),
		busy: make(map[string]bool),
	}
	for _, s := range defs {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return nil, ErrGiven.With(slog.String("given", s)).Wrap(fmt.Errorf(`definitions must be "name=formula", not %q`, s))
		}
		name := strings.ToLower(strings.TrimSpace(d[0]))
		if !lucidmath.IsName(name) {
			return nil, ErrGiven.With(slog.String("given", s)).Wrap(fmt.Errorf("%q is not a name", name))
		}
		g.src[name] = strings.TrimSpace(d[1])
	}
	// Given names shadow built-ins and table functions of the same name.
	hide := make(lucidmath.Funcs, len(g.src))
	for name := range g.src {
		hide[name] = nil
	}
	g.opts = slices.Clip(append(g.opts, lucidmath.WithFuncs(hide)))
	return &g, nil
}

func (g *givens) resolve(name string) lucidmath.Func {
	if f, ok := g.vals[name]; ok {
		return f
	}
	src, ok := g.src[name]
	if !ok || g.busy[name] {
		// A definition that refers to itself is undefined there.
		return nil
	}
	g.busy[name] = true
	defer delete(g.busy, name)
	r, err := lucidmath.Eval(src, append(g.opts, lucidmath.WithResolver(g.resolve))...)
	if err != nil {
		log.Warn("definition failed", slog.String("name", name), slog.Any("error", err))
		g.vals[name] = nil
		return nil
	}
	log.Debug("defined", slog.String("name", name), slog.Float64("value", r))
	f := lucidmath.Constant(r)
	g.vals[name] = f
	return f
}

// same reports whether two results are identical, counting NaNs as equal.
func same(a, b float64) bool {
	return a == b || math.IsNaN(a) && math.IsNaN(b)
}
