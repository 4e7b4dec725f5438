package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/eternal-io/keon/kerr"
)

// decodeEscape consumes an escape sequence's characters (the backslash has
// already been consumed by the caller) and writes its decoded value to sb.
// isBytes forbids the \u{} form, matching spec §4.1's byte-literal rules.
func (l *Lexer) decodeEscape(sb *strings.Builder, isBytes bool) error {
	r := l.next()
	switch r {
	case '\\':
		sb.WriteByte('\\')
	case '"':
		sb.WriteByte('"')
	case '\'':
		sb.WriteByte('\'')
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case '0':
		sb.WriteByte(0)
	case 'x':
		return l.decodeAsciiEscape(sb)
	case 'u':
		if isBytes {
			return kerr.New(kerr.UnexpectedUnicodeEscape, l.errPos(), "unicode escape is not allowed in a byte string")
		}
		return l.decodeUnicodeEscape(sb)
	case eof:
		return kerr.New(l.escapeErrKind(isBytes), l.errPos(), "unterminated escape sequence")
	default:
		return kerr.New(l.escapeErrKind(isBytes), l.errPos(), "invalid escape character %q", r)
	}
	return nil
}

func (l *Lexer) escapeErrKind(isBytes bool) kerr.Kind {
	if isBytes {
		return kerr.InvalidBytesEscape
	}
	return kerr.InvalidStringEscape
}

// decodeAsciiEscape consumes "HH" after "\x", requiring HH <= 0x7F.
func (l *Lexer) decodeAsciiEscape(sb *strings.Builder) error {
	digits := make([]byte, 0, 2)
	for i := 0; i < 2; i++ {
		r := l.peek()
		if !isHexDigit(r) {
			return kerr.New(kerr.InvalidAsciiEscape, l.errPos(), "ASCII hex escape requires two hex digits")
		}
		digits = append(digits, byte(r))
		l.next()
	}
	v, err := strconv.ParseUint(string(digits), 16, 8)
	if err != nil || v > 0x7F {
		return kerr.New(kerr.InvalidAsciiEscape, l.errPos(), "ASCII hex escape code must be at most 0x7F")
	}
	sb.WriteByte(byte(v))
	return nil
}

// decodeUnicodeEscape consumes "{H...}" after "\u", requiring the value to
// be a valid Unicode scalar no greater than 0x10FFFF.
func (l *Lexer) decodeUnicodeEscape(sb *strings.Builder) error {
	if l.peek() != '{' {
		return kerr.New(kerr.InvalidUnicodeEscape, l.errPos(), "expected '{' after \\u")
	}
	l.next()

	digitsStart := l.pos
	for isHexDigit(l.peek()) {
		l.next()
	}
	digits := l.input[digitsStart:l.pos]
	if digits == "" || l.peek() != '}' {
		return kerr.New(kerr.InvalidUnicodeEscape, l.errPos(), "unicode escape code must be at most 10FFFF")
	}
	l.next() // '}'

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil || v > 0x10FFFF || !utf8.ValidRune(rune(v)) {
		return kerr.New(kerr.InvalidUnicodeEscape, l.errPos(), "unicode escape code must be at most 10FFFF")
	}
	sb.WriteRune(rune(v))
	return nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
