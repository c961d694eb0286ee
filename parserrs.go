package lucidmath

import (
	"log/slog"
	"strconv"
	"unicode/utf8"
)

// Kind classifies a Diagnostic. Each Kind is also an error that the
// diagnostics of that kind unwrap to, so errors.Is(err, KindParen) reports
// whether err is a parenthesis diagnostic.
type Kind int8

const (
	// KindUnspecified is an internal failure of the converter. Valid and
	// invalid input alike should never produce it.
	KindUnspecified Kind = iota
	// KindParen indicates unbalanced parentheses.
	KindParen
	// KindUndefined indicates a name with no function.
	KindUndefined
	// KindSyntax indicates text that is not any token.
	KindSyntax
	// KindSep indicates a separator outside of any parentheses.
	KindSep
	// KindArity indicates operations with too few or too many operands.
	KindArity
)

var kindNames = [...]string{
	KindUnspecified: "unspecified",
	KindParen:       "paren",
	KindUndefined:   "undefined",
	KindSyntax:      "syntax",
	KindSep:         "sep",
	KindArity:       "arity",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

func (k Kind) Error() string {
	return "lucidmath: " + k.String() + " error"
}

// Diagnostic describes the first problem found while compiling a formula.
// It implements InputError.
type Diagnostic struct {
	// Text is the formula as given to Compile.
	Text string
	// Index is the byte offset of the problem in Text. Problems at the end
	// of the formula have Index equal to len(Text).
	Index int
	// Token is the offending lexeme, if there is one.
	Token string
	// Kind is the class of the problem.
	Kind Kind
}

func (d *Diagnostic) Error() string {
	return errpos(d.Index, d.message())
}

func (d *Diagnostic) message() string {
	switch d.Kind {
	case KindParen:
		if d.Token == "" {
			return "open parenthesis with no close parenthesis"
		}
		return "close parenthesis with no open parenthesis"
	case KindUndefined:
		return "undefined name " + strconv.Quote(d.Token)
	case KindSyntax:
		if d.Index < len(d.Text) {
			r, _ := utf8.DecodeRuneInString(d.Text[d.Index:])
			return "unexpected " + strconv.QuoteRune(r)
		}
		return "unexpected end of formula"
	case KindSep:
		return "separator " + strconv.Quote(d.Token) + " outside of a function call"
	case KindArity:
		if d.Token != "" {
			return "not enough operands for " + strconv.Quote(d.Token)
		}
		return "wrong number of operands"
	default:
		return "internal error converting " + strconv.Quote(d.Token)
	}
}

func (d *Diagnostic) Pos() int {
	return d.Index
}

// Unwrap returns d.Kind.
func (d *Diagnostic) Unwrap() error {
	return d.Kind
}

// LogValue implements slog.LogValuer.
func (d *Diagnostic) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", d.Kind.String()),
		slog.Int("index", d.Index),
		slog.String("token", d.Token),
		slog.String("text", d.Text),
	)
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the byte offset in the input of the token that caused
	// the error.
	Pos() int
}

var (
	_ InputError     = (*Diagnostic)(nil)
	_ slog.LogValuer = (*Diagnostic)(nil)
	_ error          = KindParen
)
