package lucidmath

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Token is a lexeme of a formula.
type Token struct {
	// Kind is the class of the token.
	Kind TokenKind
	// Text is the lower-cased lexeme. Negation is spelled "u-" to keep it
	// apart from subtraction.
	Text string
	// Pos is the byte offset of the token in the source.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the class of a Token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenNum is a numeric literal, possibly signed.
	TokenNum
	// TokenInfix is a binary operator written between its operands.
	TokenInfix
	// TokenPrefix is a function name or unary operator. Constants are
	// prefix tokens as well.
	TokenPrefix
	// TokenParen is an open or close parenthesis.
	TokenParen
	// TokenSep is an argument separator.
	TokenSep
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=TokenKind -trimprefix=Token

// last is the class of the most recent token that affects what may come
// next. Parentheses leave it unchanged.
type last int8

const (
	lastSep last = iota
	lastInfix
	lastPrefix
	lastValue
)

// negName is the registry name of unary minus.
const negName = "u-"

// infixOps lists the infix operators. Two-byte operators come first so that
// they are preferred over their one-byte prefixes.
var infixOps = [...]string{
	"<=", ">=", "!=", "==", "<>", "&&", "||",
	"-", "^", "+", "*", "%", "/", ">", "<",
}

type lexer struct {
	// src is the text as given, for diagnostics.
	src string
	// t is src with ASCII letters lowered. It has the same length as src.
	t    string
	pos  int
	last last
	// open is the number of unclosed parentheses.
	open int
	reg  *registry
	toks []Token
}

// tokenize splits text into tokens. Identifiers are checked against reg,
// which may invoke its resolver.
func tokenize(text string, reg *registry) ([]Token, error) {
	l := lexer{src: text, t: lowerASCII(text), reg: reg}
	for l.pos < len(l.t) {
		if err := l.next(); err != nil {
			return nil, err
		}
	}
	if l.open != 0 {
		return nil, &Diagnostic{Text: text, Index: len(text), Kind: KindParen}
	}
	return l.toks, nil
}

// next scans one token or one whitespace rune.
func (l *lexer) next() error {
	s := l.t[l.pos:]
	r, sz := utf8.DecodeRuneInString(s)
	switch {
	case unicode.IsSpace(r):
		l.pos += sz
		return nil
	case r == '(' || r == ')':
		if r == '(' {
			l.open++
		} else {
			l.open--
			if l.open < 0 {
				return &Diagnostic{Text: l.src, Index: l.pos, Token: ")", Kind: KindParen}
			}
		}
		l.emit(TokenParen, s[:1])
		return nil
	case r == ',' && l.last != lastSep:
		l.emit(TokenSep, s[:1])
		l.last = lastSep
		return nil
	}
	if l.last == lastValue {
		if op := scanInfix(s); op != "" {
			l.emit(TokenInfix, op)
			l.last = lastInfix
			return nil
		}
	} else if n := scanNum(s); n > 0 {
		l.emit(TokenNum, s[:n])
		l.last = lastValue
		return nil
	}
	if n := scanIdent(s); n > 0 {
		return l.ident(s[:n])
	}
	return &Diagnostic{Text: l.src, Index: l.pos, Kind: KindSyntax}
}

// ident classifies a function name or unary operator.
func (l *lexer) ident(lexeme string) error {
	name := lexeme
	if name == "-" {
		name = negName
	}
	fn := l.reg.lookup(name)
	if fn == nil {
		return &Diagnostic{Text: l.src, Index: l.pos, Token: lexeme, Kind: KindUndefined}
	}
	if fn.Arity() == 0 {
		l.last = lastValue
	} else {
		l.last = lastPrefix
	}
	l.toks = append(l.toks, Token{Kind: TokenPrefix, Text: name, Pos: l.pos})
	l.pos += len(lexeme)
	return nil
}

func (l *lexer) emit(kind TokenKind, text string) {
	l.toks = append(l.toks, Token{Kind: kind, Text: text, Pos: l.pos})
	l.pos += len(text)
}

// scanInfix returns the infix operator at the start of s, if any.
func scanInfix(s string) string {
	for _, op := range infixOps {
		if len(s) >= len(op) && s[:len(op)] == op {
			return op
		}
	}
	return ""
}

// scanNum returns the length of the numeric literal at the start of s, or 0
// if there is none. Literals may have a leading minus, a fraction with or
// without leading digits, and an exponent.
func scanNum(s string) int {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	d := digits(s[i:])
	i += d
	if d > 0 {
		// 1 or 1. or 1.5
		if i < len(s) && s[i] == '.' {
			i++
			i += digits(s[i:])
		}
	} else {
		// .5, but not . alone
		if i >= len(s) || s[i] != '.' {
			return 0
		}
		f := digits(s[i+1:])
		if f == 0 {
			return 0
		}
		i += 1 + f
	}
	if i < len(s) && s[i] == 'e' {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if e := digits(s[j:]); e > 0 {
			i = j + e
		}
	}
	return i
}

// scanIdent returns the length of the identifier at the start of s, or 0 if
// there is none. The single characters ! and - are identifiers.
func scanIdent(s string) int {
	if s == "" {
		return 0
	}
	switch c := s[0]; {
	case c == '!', c == '-':
		return 1
	case !isLower(c):
		return 0
	}
	i := 1
	for i < len(s) && (isLower(s[i]) || isDigit(s[i]) || s[i] == '.' || s[i] == '_') {
		i++
	}
	if i < len(s) && s[i] == '\'' {
		i++
	}
	return i
}

// IsName reports whether s can be written in a formula as a function or
// constant name, ignoring case. The operators ! and - are not names.
func IsName(s string) bool {
	if len(s) < 1 || s[0] == '!' || s[0] == '-' {
		return false
	}
	return scanIdent(lowerASCII(s)) == len(s)
}

func digits(s string) int {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
func isLower(c byte) bool { return 'a' <= c && c <= 'z' }

// lowerASCII lowers ASCII letters only, so that byte offsets into the result
// are also offsets into s.
func lowerASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if 'A' <= s[i] && s[i] <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if 'A' <= b[j] && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
