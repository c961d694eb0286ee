package lucidmath

import (
	"errors"
	"strconv"
)

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
}

// yields reports whether an operator already on the stack must be output
// before pushing next.
func (p operator) yields(next operator) bool {
	if next.right {
		return p.prec > next.prec
	}
	return p.prec >= next.prec
}

// binop gets the operator for an infix token. If there is no such operator,
// the result has a prec of 0.
func binop(text string) operator {
	switch text {
	case "||":
		return operator{1, false}
	case "&&":
		return operator{2, false}
	case "==", "!=", "<>":
		return operator{3, false}
	case "<", ">", "<=", ">=":
		return operator{4, false}
	case "+", "-":
		return operator{5, false}
	case "*", "%", "/":
		return operator{6, false}
	case "^":
		return operator{7, true}
	default:
		return operator{}
	}
}

// prefixprec is the precedence of every function application and unary
// operator.
var prefixprec = operator{8, true}

// pending is an entry on the converter's operator stack: either an operation
// waiting for its operands or an open parenthesis.
type pending struct {
	op    operator
	paren bool
	call  instr
}

// converter holds the state of one shunting-yard conversion.
type converter struct {
	text  string
	reg   *registry
	stack []pending
	out   []instr
}

// toPostfix converts tokens to postfix order and checks that every operation
// has its operands. The second result is the greatest stack depth the
// program reaches.
func toPostfix(text string, toks []Token, reg *registry) ([]instr, int, error) {
	c := converter{
		text:  text,
		reg:   reg,
		stack: make([]pending, 0, len(toks)/2+1),
		out:   make([]instr, 0, len(toks)),
	}
	for _, tok := range toks {
		if err := c.token(tok); err != nil {
			return nil, 0, err
		}
	}
	for len(c.stack) > 0 {
		top := c.pop()
		if top.paren {
			// The lexer balances parentheses, so this is unreachable.
			return nil, 0, &Diagnostic{Text: text, Index: top.call.pos, Token: "(", Kind: KindParen}
		}
		c.out = append(c.out, top.call)
	}
	depth, err := checkArity(text, c.out)
	if err != nil {
		return nil, 0, err
	}
	return c.out, depth, nil
}

func (c *converter) token(tok Token) error {
	switch tok.Kind {
	case TokenNum:
		x, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			// The lexer only produces numbers ParseFloat accepts.
			return &Diagnostic{Text: c.text, Index: tok.Pos, Token: tok.Text, Kind: KindSyntax}
		}
		// Out of range literals are ±Inf or ±0, which is what we want.
		c.out = append(c.out, instr{kind: instrNum, num: x, pos: tok.Pos})
	case TokenInfix, TokenPrefix:
		op := prefixprec
		if tok.Kind == TokenInfix {
			op = binop(tok.Text)
			if op.prec == 0 {
				return &Diagnostic{Text: c.text, Index: tok.Pos, Token: tok.Text, Kind: KindUnspecified}
			}
		}
		fn := c.reg.lookup(tok.Text)
		if fn == nil {
			return &Diagnostic{Text: c.text, Index: tok.Pos, Token: tok.Text, Kind: KindUndefined}
		}
		for len(c.stack) > 0 {
			top := c.stack[len(c.stack)-1]
			if top.paren || !top.op.yields(op) {
				break
			}
			c.out = append(c.out, c.pop().call)
		}
		c.stack = append(c.stack, pending{op: op, call: instr{kind: instrCall, name: tok.Text, fn: fn, pos: tok.Pos}})
	case TokenParen:
		if tok.Text == "(" {
			c.stack = append(c.stack, pending{paren: true, call: instr{pos: tok.Pos}})
			return nil
		}
		if !c.flush() {
			return &Diagnostic{Text: c.text, Index: tok.Pos, Token: tok.Text, Kind: KindParen}
		}
		c.pop()
	case TokenSep:
		// Finish one argument and leave the call's parenthesis for the next.
		if !c.flush() {
			return &Diagnostic{Text: c.text, Index: tok.Pos, Token: tok.Text, Kind: KindSep}
		}
	default:
		return &Diagnostic{Text: c.text, Index: tok.Pos, Token: tok.Text, Kind: KindUnspecified}
	}
	return nil
}

// flush outputs operations until reaching an open parenthesis, which it leaves
// on the stack. It returns false if there is no open parenthesis.
func (c *converter) flush() bool {
	for len(c.stack) > 0 {
		if c.stack[len(c.stack)-1].paren {
			return true
		}
		c.out = append(c.out, c.pop().call)
	}
	return false
}

func (c *converter) pop() pending {
	p := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return p
}

// checkArity simulates the stack depth of a postfix program. Each literal
// adds one operand, and each operation removes its arity and adds its result.
// The program is valid if exactly one operand remains at the end. The first
// result is the greatest depth reached.
func checkArity(text string, prog []instr) (int, error) {
	depth, peak := 0, 0
	var under *instr
	for i := range prog {
		p := &prog[i]
		switch p.kind {
		case instrNum:
			depth++
		case instrCall:
			depth -= p.fn.Arity()
			if depth < 0 && under == nil {
				under = p
			}
			depth++
		default:
			panic("lucidmath: invalid instruction " + p.String())
		}
		if depth > peak {
			peak = depth
		}
	}
	if depth == 1 && under == nil {
		return peak, nil
	}
	if under != nil {
		return 0, &Diagnostic{Text: text, Index: under.pos, Token: under.name, Kind: KindArity}
	}
	return 0, &Diagnostic{Text: text, Index: len(text), Kind: KindArity}
}
