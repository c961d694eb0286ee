package lucidmath

import (
	"errors"
	"testing"
)

func TestOpPrecsExist(t *testing.T) {
	for _, op := range infixOps {
		if binop(op).prec == 0 {
			t.Errorf("no precedence for %q", op)
		}
		if globalfuncs[op] == nil {
			t.Errorf("no function for %q", op)
		}
	}
}

func TestPrefixPrecBindsTightest(t *testing.T) {
	for _, op := range infixOps {
		if p := binop(op); p.prec >= prefixprec.prec {
			t.Errorf("%q has prec %d, not below prefix prec %d", op, p.prec, prefixprec.prec)
		}
	}
}

func TestPostfix(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"num", "1", "1"},
		{"add", "1+2", "1 2 +"},
		{"prec", "100+5*2", "100 5 2 * +"},
		{"left", "10-3-2", "10 3 - 2 -"},
		{"right", "2^3^2", "2 3 2 ^ ^"},
		{"mixed", "1+2*3^2", "1 2 3 2 ^ * +"},
		{"paren", "(1+2)*3", "1 2 + 3 *"},
		{"nested", "((1))", "1"},
		{"neg", "-(1)", "1 neg"},
		{"neg-num", "-1", "-1"},
		{"neg-pow", "-pi^2", "pi neg 2 ^"},
		{"not", "!0 || 1", "0 ! 1 ||"},
		{"call", "sin(pi/2)", "pi 2 / sin"},
		{"call-args", "round(7, 5)", "7 5 round"},
		{"call-expr-args", "if(1 > 2, 10, 20)", "1 2 > 10 20 if"},
		{"bare-chain", "sin cos 0", "0 cos sin"},
		{"call-then-op", "abs(-3)*2", "-3 abs 2 *"},
		{"compare", "1 + 2 == 3", "1 2 + 3 =="},
		{"logic", "1 || 0 && 0", "1 0 0 && ||"},
		{"relational", "1 < 2 == 2 > 1", "1 2 < 2 1 > =="},
		{"exp", "1.5e3", "1500"},
		{"huge", "1e999", "+Inf"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := Compile(c.src)
			if err != nil {
				t.Fatalf("%q failed to compile: %v", c.src, err)
			}
			if got := p.String(); got != c.want {
				t.Errorf("%q: want %q, got %q", c.src, c.want, got)
			}
		})
	}
}

func TestPostfixDepth(t *testing.T) {
	cases := []struct {
		src   string
		depth int
	}{
		{"1", 1},
		{"1+2", 2},
		{"1+2*3", 3},
		{"1*2+3", 2},
		{"if(1, 2, 3)", 3},
		{"2^3^2", 3},
	}
	for _, c := range cases {
		p, err := Compile(c.src)
		if err != nil {
			t.Errorf("%q failed to compile: %v", c.src, err)
			continue
		}
		if p.depth != c.depth {
			t.Errorf("%q: want depth %d, got %d", c.src, c.depth, p.depth)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want Diagnostic
		opts []Option
	}{
		{"adjacent", "1 pi", Diagnostic{Index: 4, Kind: KindArity}, nil},
		{"adjacent-consts", "pi e", Diagnostic{Index: 4, Kind: KindArity}, nil},
		{"empty", "", Diagnostic{Index: 0, Kind: KindArity}, nil},
		{"empty-parens", "()", Diagnostic{Index: 2, Kind: KindArity}, nil},
		{"tuple", "(1,2)", Diagnostic{Index: 5, Kind: KindArity}, nil},
		{"bare-args", "2 sin 3", Diagnostic{Index: 7, Kind: KindArity}, nil},
		{"trailing-op", "1 +", Diagnostic{Index: 2, Token: "+", Kind: KindArity}, nil},
		{"missing-arg", "round(1)", Diagnostic{Index: 0, Token: "round", Kind: KindArity}, nil},
		{"bare-func", "sin", Diagnostic{Index: 0, Token: "sin", Kind: KindArity}, nil},
		{"starved-then-padded", "round(2)*(3,4)", Diagnostic{Index: 0, Token: "round", Kind: KindArity}, nil},
		{"top-sep", "1,2", Diagnostic{Index: 1, Token: ",", Kind: KindSep}, nil},
		{"sep-after-paren", "(1),2", Diagnostic{Index: 3, Token: ",", Kind: KindSep}, nil},
		{"hidden-infix", "1+2", Diagnostic{Index: 1, Token: "+", Kind: KindUndefined}, []Option{WithFunc("+", nil)}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Compile(c.src, c.opts...)
			var d *Diagnostic
			if !errors.As(err, &d) {
				t.Fatalf("compiling %q: want diagnostic, got %v", c.src, err)
			}
			c.want.Text = c.src
			if *d != c.want {
				t.Errorf("compiling %q: want %+v, got %+v", c.src, c.want, *d)
			}
		})
	}
}

func TestConverterUnreachable(t *testing.T) {
	// Token sequences the lexer never produces still fail cleanly.
	cases := []struct {
		name string
		toks []Token
		kind Kind
	}{
		{"close", []Token{{Kind: TokenParen, Text: ")"}}, KindParen},
		{"open", []Token{{Kind: TokenParen, Text: "("}, {Kind: TokenNum, Text: "1"}}, KindParen},
		{"kind", []Token{{Kind: tokenNone, Text: "?"}}, KindUnspecified},
		{"infix", []Token{{Kind: TokenNum, Text: "1"}, {Kind: TokenInfix, Text: "sin"}, {Kind: TokenNum, Text: "1"}}, KindUnspecified},
		{"num", []Token{{Kind: TokenNum, Text: "1x"}}, KindSyntax},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := toPostfix("", c.toks, &registry{})
			if !errors.Is(err, c.kind) {
				t.Errorf("want %v, got %v", c.kind.String(), err)
			}
		})
	}
}
