package lucidmath

import (
	"math"
	"strconv"
)

// Func is an operation that can appear in a formula: an operator, a
// function, or a constant.
type Func interface {
	// Arity returns the number of operands the function consumes. Functions
	// of arity 0 are constants and are written without arguments, e.g. "pi".
	Arity() int

	// Call replaces the top Arity() operands of s with the function's
	// result. The last argument is on top. Call must push exactly one value
	// and should not otherwise inspect or modify s.
	Call(s *Stack)
}

// Funcs is a table of functions by name. Names should be lower case. A nil
// entry hides the built-in function of the same name.
type Funcs map[string]Func

// Resolver supplies a function for a name that is in no table. It returns
// nil if it has no function for the name.
type Resolver func(name string) Func

// Stack is the operand stack used while evaluating a Program.
type Stack struct {
	v []float64
}

// Push pushes x.
func (s *Stack) Push(x float64) {
	s.v = append(s.v, x)
}

// Pop removes and returns the top operand. Popping an empty stack returns
// NaN.
func (s *Stack) Pop() float64 {
	if len(s.v) == 0 {
		return math.NaN()
	}
	x := s.v[len(s.v)-1]
	s.v = s.v[:len(s.v)-1]
	return x
}

// Top returns the top operand without removing it, or NaN if the stack is
// empty.
func (s *Stack) Top() float64 {
	if len(s.v) == 0 {
		return math.NaN()
	}
	return s.v[len(s.v)-1]
}

// Len returns the number of operands on the stack.
func (s *Stack) Len() int {
	return len(s.v)
}

type stackfn struct {
	n int
	f func(*Stack)
}

func (f stackfn) Arity() int    { return f.n }
func (f stackfn) Call(s *Stack) { f.f(s) }

// StackFunc wraps a function operating directly on the operand stack into a
// Func of the given arity.
func StackFunc(arity int, f func(s *Stack)) Func {
	if arity < 0 {
		panic("lucidmath: negative arity " + strconv.Itoa(arity))
	}
	return stackfn{arity, f}
}

type niladic func() float64

func (niladic) Arity() int      { return 0 }
func (f niladic) Call(s *Stack) { s.Push(f()) }

// Niladic wraps a function of no arguments, generally one which computes a
// constant, into a Func.
func Niladic(f func() float64) Func {
	return niladic(f)
}

// Constant returns a Func of arity 0 that always gives x.
func Constant(x float64) Func {
	return niladic(func() float64 { return x })
}

type monadic func(x float64) float64

func (monadic) Arity() int      { return 1 }
func (f monadic) Call(s *Stack) { s.Push(f(s.Pop())) }

// Monadic wraps a function of one argument into a Func.
func Monadic(f func(x float64) float64) Func {
	return monadic(f)
}

type dyadic func(x, y float64) float64

func (dyadic) Arity() int { return 2 }

func (f dyadic) Call(s *Stack) {
	y := s.Pop()
	x := s.Pop()
	s.Push(f(x, y))
}

// Dyadic wraps a function of two arguments into a Func. For an infix
// operator, x is the left operand.
func Dyadic(f func(x, y float64) float64) Func {
	return dyadic(f)
}

type triadic func(x, y, z float64) float64

func (triadic) Arity() int { return 3 }

func (f triadic) Call(s *Stack) {
	z := s.Pop()
	y := s.Pop()
	x := s.Pop()
	s.Push(f(x, y, z))
}

// Triadic wraps a function of three arguments into a Func.
func Triadic(f func(x, y, z float64) float64) Func {
	return triadic(f)
}

// Truthy reports whether x counts as true in a boolean context, i.e.
// whether it is neither zero nor NaN.
func Truthy(x float64) bool {
	return x != 0 && !math.IsNaN(x)
}

func boolf(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
