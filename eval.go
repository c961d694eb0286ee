package lucidmath

import (
	"math"
	"strings"
)

// Program is a compiled formula. A Program is immutable; it is safe to call
// Invoke concurrently if every function it uses is.
type Program struct {
	text string
	toks []Token
	prog []instr
	// depth is the greatest operand stack depth Invoke needs.
	depth int
}

// Compile compiles a formula. If the formula is invalid, the error is a
// *Diagnostic describing the first problem found. The given options are
// applied in order.
func Compile(text string, opts ...Option) (*Program, error) {
	var r registry
	for _, opt := range opts {
		r = opt.compileOption(r)
	}
	toks, err := tokenize(text, &r)
	if err != nil {
		return nil, err
	}
	prog, depth, err := toPostfix(text, toks, &r)
	if err != nil {
		return nil, err
	}
	return &Program{text: text, toks: toks, prog: prog, depth: depth}, nil
}

// Invoke evaluates the program. Each call uses its own operand stack.
func (p *Program) Invoke() float64 {
	s := Stack{v: make([]float64, 0, p.depth)}
	for i := range p.prog {
		in := &p.prog[i]
		switch in.kind {
		case instrNum:
			s.Push(in.num)
		case instrCall:
			in.fn.Call(&s)
		default:
			panic("lucidmath: invalid instruction " + in.String())
		}
	}
	if s.Len() == 0 {
		// Only a misbehaving Func can cause this.
		return math.NaN()
	}
	return s.Top()
}

// Text returns the source text of the program.
func (p *Program) Text() string {
	return p.text
}

// Tokens returns a copy of the tokens of the program's source.
func (p *Program) Tokens() []Token {
	return append(([]Token)(nil), p.toks...)
}

// String formats the program in postfix notation, e.g. "100 5 2 * +" for
// "100+5*2". Negation is written as neg.
func (p *Program) String() string {
	var b strings.Builder
	fmtprog(&b, p.prog)
	return b.String()
}

// Eval is a shortcut to compile and evaluate a formula once.
func Eval(text string, opts ...Option) (float64, error) {
	p, err := Compile(text, opts...)
	if err != nil {
		return math.NaN(), err
	}
	return p.Invoke(), nil
}
