package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/eternal-io/keon/kerr"
	"github.com/eternal-io/keon/token"
)

func literalName(isBytes bool) string {
	if isBytes {
		return "byte string"
	}
	return "string"
}

func rawLiteral(isBytes bool, raw string) token.Literal {
	if isBytes {
		return token.Literal{Kind: token.LitBorrowedBytes, Bytes: borrowBytes(raw)}
	}
	return token.Literal{Kind: token.LitBorrowedStr, Str: raw}
}

func decodedLiteral(isBytes bool, sb *strings.Builder) token.Literal {
	if isBytes {
		return token.Literal{Kind: token.LitOwnedBytes, Bytes: []byte(sb.String())}
	}
	return token.Literal{Kind: token.LitOwnedStr, Str: sb.String()}
}

// lexQuoted scans a non-raw `"..."` or `b"..."` literal. Per spec §4.1 a
// bare (unescaped) newline inside is disallowed, but — to let the lexer
// still locate the closing quote for a sane error message — scanning does
// not abort at the first one; it keeps going, and if the literal does
// eventually close, UnexpectedNewline is raised at that point with the
// column omitted (spec §3's "(line, absent)" case), rather than at the
// newline itself.
func (l *Lexer) lexQuoted(isBytes bool) (token.Token, error) {
	l.next() // opening quote
	contentStart := l.pos
	var sb strings.Builder
	hadEscape := false
	sawNewline := false

	for {
		r := l.peek()
		switch r {
		case eof:
			return l.errAt(kerr.UnexpectedEof, "unterminated %s literal", literalName(isBytes))
		case '"':
			l.next()
			if sawNewline {
				return token.Token{}, kerr.New(kerr.UnexpectedNewline, kerr.WithoutColumn(l.line), "line break is not allowed in this literal, escape it as \\n")
			}
			if !hadEscape {
				return l.emitLit(rawLiteral(isBytes, l.input[contentStart:l.pos-1]))
			}
			return l.emitLit(decodedLiteral(isBytes, &sb))
		case '\\':
			hadEscape = true
			l.next()
			if err := l.decodeEscape(&sb, isBytes); err != nil {
				return token.Token{}, err
			}
		case '\r':
			hadEscape = true
			sawNewline = true
			l.next()
			if l.peek() == '\n' {
				l.next()
			}
			sb.WriteByte('\n')
		case '\n':
			hadEscape = true
			sawNewline = true
			l.next()
			sb.WriteByte('\n')
		default:
			if isBytes && r > 0x7F {
				return l.errAt(kerr.UnexpectedNonAscii, "byte string literal must be ASCII")
			}
			l.next()
			sb.WriteRune(r)
		}
	}
}

// lexChar scans a `'c'` character literal, requiring exactly one decoded
// Unicode scalar between the quotes.
func (l *Lexer) lexChar() (token.Token, error) {
	l.next() // opening quote

	switch l.peek() {
	case '\'':
		return l.errAt(kerr.InvalidCharacterTooLess, "character literal must contain exactly one code point")
	case eof:
		return l.errAt(kerr.UnexpectedEof, "unterminated character literal")
	case '\n':
		return token.Token{}, kerr.New(kerr.UnexpectedNewline, kerr.WithoutColumn(l.line), "line break is not allowed in a character literal")
	}

	var ch rune
	if l.peek() == '\\' {
		l.next()
		var sb strings.Builder
		if err := l.decodeEscape(&sb, false); err != nil {
			return token.Token{}, err
		}
		ch, _ = utf8.DecodeRuneInString(sb.String())
	} else {
		ch = l.next()
	}

	switch l.peek() {
	case '\'':
		l.next()
		return l.emitLit(token.Literal{Kind: token.LitChar, Char: ch})
	case eof:
		return l.errAt(kerr.UnexpectedEof, "unterminated character literal")
	default:
		return l.errAt(kerr.InvalidCharacterTooMany, "character literal must contain exactly one code point")
	}
}
