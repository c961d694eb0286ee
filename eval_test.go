package lucidmath_test

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/zephyrtronium/lucidmath"
)

// near reports whether got is within a relative tolerance of want, treating
// NaNs as equal.
func near(got, want float64) bool {
	if math.IsNaN(want) {
		return math.IsNaN(got)
	}
	if got == want {
		return true
	}
	return math.Abs(got-want) <= 1e-12*math.Max(math.Abs(want), 1)
}

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"num", "1", 1},
		{"real", "1.5", 1.5},
		{"leading-dot", ".5", 0.5},
		{"exp", "1.5e3", 1500},
		{"huge", "1e999", math.Inf(1)},
		{"prec", "100+5*2", 110},
		{"left", "10-3-2", 5},
		{"right", "2^3^2", 512},
		{"paren", "2*(3+4)", 14},
		{"div", "7/2", 3.5},
		{"mod", "7 % 3", 1},
		{"mod-neg", "-7 % 3", -1},
		{"neg", "-(2+3)", -5},
		{"neg-neg", "--3", 3},
		{"sub-neg", "5--3", 8},
		{"pow-neg", "2^-1", 0.5},
		{"neg-literal-pow", "-2^2", 4},
		{"neg-call-pow", "-(2)^2", 4},
		{"eq", "1 == 1", 1},
		{"ne", "1 != 1", 0},
		{"ne-angle", "1 <> 2", 1},
		{"lt", "2 < 3", 1},
		{"gt", "3 > 2", 1},
		{"le", "3 <= 2", 0},
		{"ge", "2 >= 2", 1},
		{"cmp-prec", "1 + 2 == 3", 1},
		{"or-left", "3 || 5", 3},
		{"or-right", "0 || 5", 5},
		{"and-left", "0 && 5", 0},
		{"and-right", "3 && 5", 5},
		{"not-zero", "!0", 1},
		{"not-nonzero", "!3", 0},
		{"sqrt", "sqrt(16)", 4},
		{"abs", "abs(-3)", 3},
		{"floor-ceil", "floor(2.7) + ceil(2.2)", 5},
		{"identity", "identity(5)", 5},
		{"sin", "sin(0)", 0},
		{"cos", "cos(0)", 1},
		{"sin-pi", "sin(pi/2)", 1},
		{"tan", "tan(0)", 0},
		{"bare-chain", "sin cos 0", math.Sin(1)},
		{"log", "log(1000)", 3},
		{"ln", "ln(e)", 1},
		{"exp-fn", "exp(0)", 1},
		{"pi", "pi", math.Pi},
		{"e", "e", math.E},
		{"upper", "SIN(0) + PI", math.Pi},
		{"round-down", "round(7, 5)", 5},
		{"round-up", "round(8, 5)", 10},
		{"round-half", "round(2.5, 1)", 3},
		{"round-neg-half", "round(-2.5, 1)", -2},
		{"if-true", "if(1, 2, 3)", 2},
		{"if-false", "if(0, 2, 3)", 3},
		{"if-expr", "if(1 > 2, 10, 20)", 20},
		{"nan", "0/0", math.NaN()},
		{"if-nan", "if(0/0, 1, 2)", 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := lucidmath.Compile(c.src)
			if err != nil {
				t.Fatal(c.src, "failed to compile:", err)
			}
			if r := p.Invoke(); !near(r, c.r) {
				t.Errorf("wrong result: want %g, got %g", c.r, r)
			}
		})
	}
}

func TestEvalShortcut(t *testing.T) {
	r, err := lucidmath.Eval("100+5*2")
	if err != nil {
		t.Fatal(err)
	}
	if r != 110 {
		t.Errorf("want 110, got %g", r)
	}
	r, err = lucidmath.Eval("1+")
	if !errors.Is(err, lucidmath.KindArity) {
		t.Errorf("want arity error, got %v", err)
	}
	if !math.IsNaN(r) {
		t.Errorf("want NaN result with error, got %g", r)
	}
}

func TestInvokeRepeatable(t *testing.T) {
	p, err := lucidmath.Compile("sin(1)*100 + round(7, 5)")
	if err != nil {
		t.Fatal(err)
	}
	want := p.Invoke()
	for i := 0; i < 10; i++ {
		if r := p.Invoke(); r != want {
			t.Fatalf("invocation %d: want %g, got %g", i, want, r)
		}
	}
}

func TestInvokeConcurrent(t *testing.T) {
	p, err := lucidmath.Compile("if(2 > 1, sqrt(2)*sqrt(2), 0) + 3^2")
	if err != nil {
		t.Fatal(err)
	}
	want := p.Invoke()
	var wg sync.WaitGroup
	results := make(chan float64, 64)
	for i := 0; i < cap(results); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- p.Invoke()
		}()
	}
	wg.Wait()
	close(results)
	for r := range results {
		if r != want {
			t.Errorf("concurrent result %g differs from %g", r, want)
		}
	}
}

func TestProgramIntrospection(t *testing.T) {
	src := "1 + Sin(0)"
	p, err := lucidmath.Compile(src)
	if err != nil {
		t.Fatal(err)
	}
	if p.Text() != src {
		t.Errorf("want text %q, got %q", src, p.Text())
	}
	toks := p.Tokens()
	want := []lucidmath.Token{
		{Kind: lucidmath.TokenNum, Text: "1", Pos: 0},
		{Kind: lucidmath.TokenInfix, Text: "+", Pos: 2},
		{Kind: lucidmath.TokenPrefix, Text: "sin", Pos: 4},
		{Kind: lucidmath.TokenParen, Text: "(", Pos: 7},
		{Kind: lucidmath.TokenNum, Text: "0", Pos: 8},
		{Kind: lucidmath.TokenParen, Text: ")", Pos: 9},
	}
	if len(toks) != len(want) {
		t.Fatalf("want tokens %v, got %v", want, toks)
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("token %d: want %v, got %v", i, want[i], toks[i])
		}
	}
	// Modifying the copy must not affect the program.
	toks[0].Text = "2"
	if p.Tokens()[0].Text != "1" {
		t.Error("Tokens returned the program's own slice")
	}
	if s := p.String(); s != "1 0 sin +" {
		t.Errorf("want postfix %q, got %q", "1 0 sin +", s)
	}
}
