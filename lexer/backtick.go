package lexer

import (
	"github.com/eternal-io/keon/kerr"
	"github.com/eternal-io/keon/token"
)

// lexBacktickForm resolves the two backtick-introduced forms: a raw
// identifier (`` `ident ``, single backtick only) and a raw string/byte
// string (one or more backticks followed by a quote, the backtick count
// fixing the terminator). isBytes is true when this was reached via a `b`
// prefix (already consumed by the caller).
func (l *Lexer) lexBacktickForm(isBytes bool) (token.Token, error) {
	n := 0
	for l.peek() == '`' {
		l.next()
		n++
	}

	if l.peek() == '"' {
		return l.lexRawQuoted(isBytes, n)
	}
	if !isBytes && n == 1 && isIdentStart(l.peek()) {
		return l.finishRawIdent()
	}
	return l.errAt(kerr.UnexpectedToken, "expected identifier or '\"' after '`'")
}

func (l *Lexer) finishRawIdent() (token.Token, error) {
	identStart := l.pos
	l.next()
	for isIdentContinue(l.peek()) {
		l.next()
	}
	tok, err := l.emit(token.Ident)
	if err != nil {
		return tok, err
	}
	tok.Text = l.input[identStart:l.pos]
	return tok, nil
}

// lexRawQuoted scans the body of a raw string/byte literal after its N
// leading backticks have been consumed. The terminator is the first '"'
// followed by exactly N backticks; more than N is UnbalancedLiteralClose,
// fewer than N is just ordinary content.
func (l *Lexer) lexRawQuoted(isBytes bool, n int) (token.Token, error) {
	l.next() // opening quote
	contentStart := l.pos

	for {
		r := l.peek()
		if r == eof {
			return l.errAt(kerr.UnexpectedEof, "unterminated raw %s literal", literalName(isBytes))
		}
		if r != '"' {
			l.next()
			continue
		}

		closeQuotePos := l.pos
		l.next() // the quote
		count := 0
		for l.peek() == '`' {
			l.next()
			count++
		}
		switch {
		case count == n:
			return l.emitLit(rawLiteral(isBytes, l.input[contentStart:closeQuotePos]))
		case count > n:
			return l.errAt(kerr.UnbalancedLiteralClose, "raw literal closer has %d backticks, expected %d", count, n)
		default:
			// Not a valid closer; the quote and any backticks are content.
		}
	}
}
