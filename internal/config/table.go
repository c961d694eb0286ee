// Package config loads function tables, YAML files that define constants and
// functions for formulas or hide built-in ones.
//
// A table looks like:
//
//	constants:
//	  tau: 6.283185307179586
//	functions:
//	  trip:
//	    arity: 1
//	    expr: args[0] * 3
//	disable: [tan]
//
// Function bodies are expr-lang expressions. The operands of a call are in
// args, first operand first. Bodies may give numbers or booleans; anything
// else, or a failure at run time, gives NaN.
package config

import (
	"log/slog"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-yaml"

	"github.com/zephyrtronium/lucidmath"
	"github.com/zephyrtronium/lucidmath/internal/log"
)

// File is the YAML form of a function table.
type File struct {
	Constants map[string]float64  `yaml:"constants"`
	Functions map[string]Function `yaml:"functions"`
	Disable   []string            `yaml:"disable"`
}

// Function is the YAML form of a scripted function.
type Function struct {
	Arity int    `yaml:"arity"`
	Expr  string `yaml:"expr"`
}

// Table is a loaded function table.
type Table struct {
	funcs lucidmath.Funcs
	names []string
}

// Load reads and compiles the function table at path.
func Load(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrRead.Wrap(err).With(slog.String("path", path))
	}
	t, err := Parse(b)
	if err != nil {
		if e, ok := err.(*Error); ok {
			return nil, e.With(slog.String("path", path))
		}
		return nil, err
	}
	log.Debug("loaded function table", slog.String("path", path), slog.Int("names", len(t.names)))
	return t, nil
}

// Parse decodes and compiles a function table.
func Parse(data []byte) (*Table, error) {
	var f File
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.DisallowUnknownField()); err != nil {
		return nil, ErrDecode.Wrap(err)
	}
	return f.Compile()
}

// Compile checks the names in f and compiles its function bodies.
func (f *File) Compile() (*Table, error) {
	t := Table{funcs: make(lucidmath.Funcs, len(f.Constants)+len(f.Functions)+len(f.Disable))}
	for name, x := range f.Constants {
		if err := t.add(name, lucidmath.Constant(x)); err != nil {
			return nil, err
		}
	}
	for name, fn := range f.Functions {
		if fn.Arity < 0 {
			return nil, ErrArity.With(slog.String("name", name), slog.Int("arity", fn.Arity))
		}
		prog, err := expr.Compile(fn.Expr, expr.Env(env{}))
		if err != nil {
			return nil, ErrCompile.Wrap(err).With(slog.String("name", name), slog.String("expr", fn.Expr))
		}
		if err := t.add(name, scripted(name, fn.Arity, prog)); err != nil {
			return nil, err
		}
	}
	for _, name := range f.Disable {
		k := strings.ToLower(name)
		if _, ok := t.funcs[k]; ok {
			return nil, ErrDuplicate.With(slog.String("name", name))
		}
		t.funcs[k] = nil
	}
	slices.Sort(t.names)
	return &t, nil
}

func (t *Table) add(name string, fn lucidmath.Func) error {
	if !lucidmath.IsName(name) {
		return ErrName.With(slog.String("name", name))
	}
	k := strings.ToLower(name)
	if _, ok := t.funcs[k]; ok {
		return ErrDuplicate.With(slog.String("name", name))
	}
	t.funcs[k] = fn
	t.names = append(t.names, k)
	return nil
}

// Funcs returns the table's functions. Disabled names have nil entries.
func (t *Table) Funcs() lucidmath.Funcs {
	return t.funcs
}

// Names returns the sorted names the table defines, not including disabled
// names.
func (t *Table) Names() []string {
	return t.names
}

// Option returns a compile option that adds the table's functions.
func (t *Table) Option() lucidmath.Option {
	return lucidmath.WithFuncs(t.funcs)
}

// env is the environment of function bodies.
type env struct {
	Args []float64 `expr:"args"`

	Sqrt func(float64) float64          `expr:"sqrt"`
	Sin  func(float64) float64          `expr:"sin"`
	Cos  func(float64) float64          `expr:"cos"`
	Tan  func(float64) float64          `expr:"tan"`
	Exp  func(float64) float64          `expr:"exp"`
	Ln   func(float64) float64          `expr:"ln"`
	Log  func(float64) float64          `expr:"log"`
	Pow  func(float64, float64) float64 `expr:"pow"`
	Pi   float64                        `expr:"pi"`
}

func makeEnv(args []float64) env {
	return env{
		Args: args,
		Sqrt: math.Sqrt,
		Sin:  math.Sin,
		Cos:  math.Cos,
		Tan:  math.Tan,
		Exp:  math.Exp,
		Ln:   math.Log,
		Log:  math.Log10,
		Pow:  math.Pow,
		Pi:   math.Pi,
	}
}

// scripted creates a Func running prog over its operands. Run time failures
// give NaN.
func scripted(name string, arity int, prog *vm.Program) lucidmath.Func {
	return lucidmath.StackFunc(arity, func(s *lucidmath.Stack) {
		args := make([]float64, arity)
		for i := arity - 1; i >= 0; i-- {
			args[i] = s.Pop()
		}
		r, err := expr.Run(prog, makeEnv(args))
		if err != nil {
			log.Debug("function failed",
				slog.String("name", name),
				slog.Any("args", args),
				slog.String("err", err.Error()),
			)
			s.Push(math.NaN())
			return
		}
		s.Push(number(r))
	})
}

// number converts a result of a function body to a float64.
func number(v any) float64 {
	switch v := v.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return math.NaN()
	}
}
