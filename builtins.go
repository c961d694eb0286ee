package lucidmath

import (
	"math"
	"sort"
)

var globalfuncs = Funcs{
	"||": Dyadic(func(x, y float64) float64 {
		if Truthy(x) {
			return x
		}
		return y
	}),
	"&&": Dyadic(func(x, y float64) float64 {
		if !Truthy(x) {
			return x
		}
		return y
	}),

	"==": Dyadic(func(x, y float64) float64 { return boolf(x == y) }),
	"!=": Dyadic(func(x, y float64) float64 { return boolf(x != y) }),
	"<>": Dyadic(func(x, y float64) float64 { return boolf(x != y) }),

	"<":  Dyadic(func(x, y float64) float64 { return boolf(x < y) }),
	">":  Dyadic(func(x, y float64) float64 { return boolf(x > y) }),
	"<=": Dyadic(func(x, y float64) float64 { return boolf(x <= y) }),
	">=": Dyadic(func(x, y float64) float64 { return boolf(x >= y) }),

	"+": Dyadic(func(x, y float64) float64 { return x + y }),
	"-": Dyadic(func(x, y float64) float64 { return x - y }),
	"*": Dyadic(func(x, y float64) float64 { return x * y }),
	"/": Dyadic(func(x, y float64) float64 { return x / y }),
	"%": Dyadic(math.Mod),
	"^": Dyadic(math.Pow),

	negName: Monadic(func(x float64) float64 { return -x }),
	"!":     Monadic(func(x float64) float64 { return boolf(!Truthy(x)) }),

	"sqrt":     Monadic(math.Sqrt),
	"sin":      Monadic(math.Sin),
	"cos":      Monadic(math.Cos),
	"tan":      Monadic(math.Tan),
	"identity": Monadic(func(x float64) float64 { return x }),
	"abs":      Monadic(math.Abs),
	"log":      Monadic(math.Log10),
	"ln":       Monadic(math.Log),
	"exp":      Monadic(math.Exp),
	"floor":    Monadic(math.Floor),
	"ceil":     Monadic(math.Ceil),
	"round":    Dyadic(roundTo),

	"pi": Constant(math.Pi),
	"e":  Constant(math.E),

	"if": Triadic(func(c, t, f float64) float64 {
		if Truthy(c) {
			return t
		}
		return f
	}),
}

// roundTo rounds x to the nearest multiple of step. Halves round toward
// positive infinity.
func roundTo(x, step float64) float64 {
	q := x / step
	r := math.Round(q)
	if r-q == -0.5 {
		// math.Round takes negative halves away from zero.
		r++
	}
	return r * step
}

// Builtins returns the sorted names of the built-in functions and operators.
func Builtins() []string {
	names := make([]string, 0, len(globalfuncs))
	for k := range globalfuncs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// isNamed reports whether a built-in name is spelled as an identifier, as
// opposed to an operator. Negation is registered as u- and is an operator.
func isNamed(name string) bool {
	return IsName(name)
}
