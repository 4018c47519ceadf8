package expression

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokSysFunc
	tokOperator
	tokLParen
	tokRParen
	tokComma
	tokQuestion
	tokColon
)

type token struct {
	kind  tokenKind
	text  string
	pos   int
	value value // Set for tokNumber
}

// Operators ordered so that longer spellings are matched first.
var operators = []string{
	"===", "!==",
	"**", "<<", ">>", "<=", ">=", "==", "!=", "&&", "||",
	"+", "-", "*", "/", "%", "<", ">", "&", "|", "^", "~", "!",
}

var sysFuncs = map[string]int{
	"$clog2": 1,
	"$pow":   2,
	"$sqrt":  1,
}

type lexer struct {
	src    string
	pos    int
	tokens []token
}

func lex(src string) ([]token, error) {
	l := &lexer{src: src}
	for {
		l.skipSpace()
		if l.pos >= len(l.src) {
			l.tokens = append(l.tokens, token{kind: tokEOF, pos: l.pos})
			return l.tokens, nil
		}
		if err := l.next(); err != nil {
			return nil, err
		}
	}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
}

func (l *lexer) emit(kind tokenKind, start int) {
	l.tokens = append(l.tokens, token{kind: kind, text: l.src[start:l.pos], pos: start})
}

func (l *lexer) fail(kind ErrorKind, start int, detail string) error {
	return &Error{Kind: kind, Expr: l.src, Pos: start, Detail: detail}
}

func (l *lexer) next() error {
	start := l.pos
	c := l.src[l.pos]
	switch {
	case isDigit(c) || c == '\'':
		return l.number()
	case isIdentStart(c):
		for l.pos < len(l.src) && isIdentChar(l.src[l.pos]) {
			l.pos++
		}
		l.emit(tokIdent, start)
		return nil
	case c == '$':
		l.pos++
		for l.pos < len(l.src) && isIdentChar(l.src[l.pos]) {
			l.pos++
		}
		name := l.src[start:l.pos]
		if _, ok := sysFuncs[name]; !ok {
			return l.fail(ErrSyntax, start, name)
		}
		l.emit(tokSysFunc, start)
		return nil
	case c == '(':
		l.pos++
		l.emit(tokLParen, start)
		return nil
	case c == ')':
		l.pos++
		l.emit(tokRParen, start)
		return nil
	case c == ',':
		l.pos++
		l.emit(tokComma, start)
		return nil
	case c == '?':
		l.pos++
		l.emit(tokQuestion, start)
		return nil
	case c == ':':
		l.pos++
		l.emit(tokColon, start)
		return nil
	}

	for _, op := range operators {
		if strings.HasPrefix(l.src[l.pos:], op) {
			l.pos += len(op)
			l.emit(tokOperator, start)
			return nil
		}
	}
	return l.fail(ErrSyntax, start, string(c))
}

// number scans decimal, real, 0x-prefixed and based ('h, 8'hFF, 'b, 'o, 'd) literals.
func (l *lexer) number() error {
	start := l.pos

	if strings.HasPrefix(l.src[l.pos:], "0x") || strings.HasPrefix(l.src[l.pos:], "0X") {
		l.pos += 2
		return l.digits(start, 16)
	}

	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.pos++
	}

	if l.pos < len(l.src) && l.src[l.pos] == '\'' {
		lit := based{size: strings.ReplaceAll(l.src[start:l.pos], "_", "")}
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == 's' || l.src[l.pos] == 'S') {
			lit.signed = true
			l.pos++
		}
		if l.pos >= len(l.src) {
			return l.fail(ErrMalformedLiteral, start, l.src[start:])
		}
		base := 0
		switch l.src[l.pos] {
		case 'h', 'H':
			base = 16
		case 'd', 'D':
			base = 10
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		default:
			return l.fail(ErrMalformedLiteral, start, l.src[start:l.pos+1])
		}
		l.pos++
		for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
			l.pos++
		}
		lit.base = base
		return l.sized(start, lit)
	}

	fractional := false
	if l.pos+1 < len(l.src) && l.src[l.pos] == '.' && isDigit(l.src[l.pos+1]) {
		fractional = true
		l.pos++
		for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		exp := l.pos + 1
		if exp < len(l.src) && (l.src[exp] == '+' || l.src[exp] == '-') {
			exp++
		}
		if exp < len(l.src) && isDigit(l.src[exp]) {
			fractional = true
			l.pos = exp
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		}
	}
	if l.pos < len(l.src) && isIdentChar(l.src[l.pos]) {
		return l.fail(ErrMalformedLiteral, start, l.literalText(start))
	}

	text := strings.ReplaceAll(l.src[start:l.pos], "_", "")
	if fractional {
		d, err := decimal.NewFromString(text)
		if err != nil {
			return l.fail(ErrMalformedLiteral, start, l.src[start:l.pos])
		}
		l.tokens = append(l.tokens, token{kind: tokNumber, text: l.src[start:l.pos], pos: start, value: value{d: d, real: true}})
		return nil
	}
	return l.integer(start, text, 10)
}

// based is the prefix of a based literal such as 8'sh.
type based struct {
	size   string // Empty when unsized
	signed bool
	base   int
}

// digits consumes the digit run of a prefixed literal and converts it.
func (l *lexer) digits(start, base int) error {
	n, err := l.digitRun(start, base)
	if err != nil {
		return err
	}
	l.emitNumber(start, n)
	return nil
}

// sized converts a based literal and truncates it to its declared width.
// A signed literal with its top bit set is negative.
func (l *lexer) sized(start int, lit based) error {
	n, err := l.digitRun(start, lit.base)
	if err != nil {
		return err
	}
	if lit.size != "" {
		width, err := strconv.Atoi(lit.size)
		if err != nil || width <= 0 || width > maxBits {
			return l.fail(ErrMalformedLiteral, start, l.src[start:l.pos])
		}
		mask := new(big.Int).Lsh(big.NewInt(1), uint(width))
		mask.Sub(mask, big.NewInt(1))
		n.And(n, mask)
		if lit.signed && n.Bit(width-1) == 1 {
			n.Sub(n, mask).Sub(n, big.NewInt(1))
		}
	}
	l.emitNumber(start, n)
	return nil
}

func (l *lexer) digitRun(start, base int) (*big.Int, error) {
	digitStart := l.pos
	for l.pos < len(l.src) && isIdentChar(l.src[l.pos]) {
		l.pos++
	}
	text := strings.ReplaceAll(l.src[digitStart:l.pos], "_", "")
	if text == "" {
		return nil, l.fail(ErrMalformedLiteral, start, l.src[start:l.pos])
	}
	n, ok := new(big.Int).SetString(text, base)
	if !ok {
		return nil, l.fail(ErrMalformedLiteral, start, l.src[start:l.pos])
	}
	return n, nil
}

func (l *lexer) integer(start int, text string, base int) error {
	n, ok := new(big.Int).SetString(text, base)
	if !ok {
		return l.fail(ErrMalformedLiteral, start, l.src[start:l.pos])
	}
	l.emitNumber(start, n)
	return nil
}

func (l *lexer) emitNumber(start int, n *big.Int) {
	l.tokens = append(l.tokens, token{
		kind:  tokNumber,
		text:  l.src[start:l.pos],
		pos:   start,
		value: value{d: decimal.NewFromBigInt(n, 0)},
	})
}

func (l *lexer) literalText(start int) string {
	end := l.pos
	for end < len(l.src) && isIdentChar(l.src[end]) {
		end++
	}
	return l.src[start:end]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
