package lexer

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/eternal-io/keon/kerr"
	"github.com/eternal-io/keon/token"
)

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
	nan    = math.NaN()
)

// lexNumber consumes a numeric literal per spec §4.1: an optional leading
// '-', then a decimal integer, a 0b/0o/0x radix integer, a decimal float
// (optional fraction and exponent), or the specials inf/NaN. A leading '-'
// selects the signed-64 arm for integers; its absence selects unsigned-64;
// floats are always 64-bit regardless of sign.
func (l *Lexer) lexNumber() (token.Token, error) {
	neg := false
	if l.peek() == '-' {
		neg = true
		l.next()
	}

	if l.startsWith("inf") && !isIdentContinue(l.peekAt(3)) {
		l.next3("inf")
		v := posInf
		if neg {
			v = negInf
		}
		return l.emitLit(token.Literal{Kind: token.LitF64, F64: v})
	}
	if l.startsWith("NaN") && !isIdentContinue(l.peekAt(3)) {
		l.next3("NaN")
		return l.emitLit(token.Literal{Kind: token.LitF64, F64: nan})
	}

	if !unicode.IsDigit(l.peek()) {
		return l.errAt(kerr.InvalidNumber, "expected a digit, 'inf', or 'NaN' after '-'")
	}

	if l.peek() == '0' {
		switch l.peekAt(1) {
		case 'b':
			return l.lexRadixInt(neg, 2, "01")
		case 'o':
			return l.lexRadixInt(neg, 8, "01234567")
		case 'x':
			return l.lexRadixInt(neg, 16, "0123456789abcdefABCDEF")
		}
	}

	return l.lexDecimal(neg)
}

func (l *Lexer) lexRadixInt(neg bool, base int, digits string) (token.Token, error) {
	l.next() // '0'
	l.next() // b/o/x
	digitsStart := l.pos
	for strings.ContainsRune(digits, l.peek()) || l.peek() == '_' {
		l.next()
	}
	raw := l.input[digitsStart:l.pos]
	clean := strings.ReplaceAll(raw, "_", "")
	if clean == "" {
		return l.errAt(kerr.InvalidNumber, "radix integer has no digits")
	}
	u, err := strconv.ParseUint(clean, base, 64)
	if err != nil {
		return l.errAt(kerr.InvalidNumber, "invalid base-%d integer %q: %s", base, raw, err)
	}
	if neg {
		return l.emitLit(token.Literal{Kind: token.LitI64, I64: -int64(u)})
	}
	return l.emitLit(token.Literal{Kind: token.LitU64, U64: u})
}

// lexDecimal consumes a decimal integer or float body (mantissa plus
// optional fraction and exponent) after any leading '-' has been consumed.
func (l *Lexer) lexDecimal(neg bool) (token.Token, error) {
	l.acceptDigitRun()

	isFloat := false
	if l.peek() == '.' {
		isFloat = true
		l.next() // '.'
		l.acceptDigitRun()
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		savePos, saveCol := l.pos, l.column
		l.next()
		if l.peek() == '+' || l.peek() == '-' {
			l.next()
		}
		if unicode.IsDigit(l.peek()) {
			isFloat = true
			l.acceptDigitRun()
		} else {
			// Not actually an exponent (e.g. "1e" followed by an identifier
			// character); leave it for the next token. None of the runes
			// skipped over here can be a newline, so line stays untouched.
			l.pos, l.column = savePos, saveCol
		}
	}

	raw := l.text()
	clean := strings.ReplaceAll(raw, "_", "")

	if isFloat {
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return l.errAt(kerr.InvalidNumber, "invalid float %q: %s", raw, err)
		}
		return l.emitLit(token.Literal{Kind: token.LitF64, F64: f})
	}

	if neg {
		i, err := strconv.ParseInt(clean, 10, 64)
		if err != nil {
			return l.errAt(kerr.InvalidNumber, "invalid integer %q: %s", raw, err)
		}
		return l.emitLit(token.Literal{Kind: token.LitI64, I64: i})
	}
	u, err := strconv.ParseUint(clean, 10, 64)
	if err != nil {
		return l.errAt(kerr.InvalidNumber, "invalid integer %q: %s", raw, err)
	}
	return l.emitLit(token.Literal{Kind: token.LitU64, U64: u})
}

func (l *Lexer) acceptDigitRun() {
	for unicode.IsDigit(l.peek()) || l.peek() == '_' {
		l.next()
	}
}
