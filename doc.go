// Package lucidmath compiles infix arithmetic and boolean formulas into
// programs that can be evaluated any number of times.
//
// A formula is converted once into a postfix sequence of literals and
// operations and checked so that every operation has enough operands.
// Evaluating the result is then a single pass over that sequence with a
// fresh operand stack, so a compiled Program may be shared between
// goroutines as long as the functions it calls are safe to share.
//
// Operations are looked up by name in a table of built-in functions, which
// a caller can extend or override with its own Funcs and with a Resolver
// that supplies functions for names the tables don't know:
//
//	trip := lucidmath.Monadic(func(x float64) float64 { return 3 * x })
//	p, err := lucidmath.Compile("trip(100)", lucidmath.WithFunc("trip", trip))
//	if err != nil {
//		// err is a *Diagnostic naming the problem and its position.
//	}
//	fmt.Println(p.Invoke()) // 300
//
// Names are case-insensitive. A "-" that begins an expression or follows
// an operator, comma, or open parenthesis is negation; when it is directly
// followed by a number, it is part of that number.
package lucidmath
